package main

import (
	"log/slog"
	"time"
)

// frameStats is a framehost.Instrument that logs the frame rate and the
// average update and render times every n frames.
type frameStats struct {
	logger *slog.Logger
	every  int
	now    func() time.Time

	frames int
	start  time.Time
	spans  map[string]time.Duration
}

func newFrameStats(logger *slog.Logger, every int, now func() time.Time) *frameStats {
	return &frameStats{
		logger: logger,
		every:  max(every, 1),
		now:    now,
		start:  now(),
		spans:  make(map[string]time.Duration),
	}
}

func (s *frameStats) Span(name string) func() {
	begin := s.now()
	return func() {
		s.spans[name] += s.now().Sub(begin)
	}
}

func (s *frameStats) FrameMark() {
	s.frames++
	if s.frames < s.every {
		return
	}
	now := s.now()
	elapsed := now.Sub(s.start)
	fps := 0.0
	if elapsed > 0 {
		fps = float64(s.frames) / elapsed.Seconds()
	}
	n := time.Duration(s.frames)
	s.logger.Info("frame stats",
		"frames", s.frames,
		"fps", fps,
		"update", s.spans["update"]/n,
		"render", s.spans["render"]/n)
	s.frames = 0
	s.start = now
	clear(s.spans)
}
