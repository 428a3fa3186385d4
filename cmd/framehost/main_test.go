package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/gogpu/framehost"
	"github.com/gogpu/framehost/backend"
	"github.com/gogpu/framehost/backend/headless"
	"github.com/gogpu/gpucontext"
)

func TestRunHeadless(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))
	cfg := defaultConfig()
	cfg.Backend = backend.Headless
	cfg.Frames = 4
	cfg.StatsEvery = 2

	if err := run(context.Background(), cfg, logger); err != nil {
		t.Fatalf("run: %v", err)
	}
	out := buf.String()
	if strings.Count(out, "frame stats") != 2 {
		t.Errorf("expected two stats reports, got:\n%s", out)
	}
	if !strings.Contains(out, "frames=4") {
		t.Errorf("expected the final frame count, got:\n%s", out)
	}
}

func TestClearModeHeadless(t *testing.T) {
	b := headless.New(headless.Options{})
	w := headless.NewWindow(16, 16)
	sc, err := framehost.Initialize(context.Background(), b, w)
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer sc.Release()

	m := newClearMode([4]float64{1, 0, 0, 1})
	if err := sc.RenderFrame(func(view framehost.TextureView, enc framehost.CommandEncoder) error {
		return m.Render(&framehost.Frame{View: view, Encoder: enc, Surface: sc})
	}); err != nil {
		t.Fatalf("RenderFrame: %v", err)
	}
	sub := b.Submitted()
	if len(sub) != 1 || len(sub[0].Commands) != 1 || !strings.HasPrefix(sub[0].Commands[0], "clear 0.750") {
		t.Errorf("submitted = %+v", sub)
	}
}

func TestClearModePause(t *testing.T) {
	m := newClearMode([4]float64{1, 1, 1, 1})
	space := framehost.KeyboardInput{Key: gpucontext.KeySpace, State: framehost.Pressed}

	m.Update(time.Second, nil)
	if !m.Input(space) {
		t.Fatal("space not handled")
	}
	m.Update(time.Second, nil)
	if m.elapsed != time.Second {
		t.Errorf("elapsed = %v while paused", m.elapsed)
	}
	m.Input(space)
	m.Update(time.Second, nil)
	if m.elapsed != 2*time.Second {
		t.Errorf("elapsed = %v after resume", m.elapsed)
	}
	if m.Input(framehost.CursorMoved{}) {
		t.Error("cursor movement handled")
	}
}

func TestClearModeUnsupportedEncoder(t *testing.T) {
	m := newClearMode([4]float64{})
	if err := m.Render(&framehost.Frame{Encoder: nil}); err == nil {
		t.Error("Render accepted a nil encoder")
	}
}

func TestFrameStats(t *testing.T) {
	var buf bytes.Buffer
	now := time.Unix(0, 0)
	clock := func() time.Time {
		now = now.Add(10 * time.Millisecond)
		return now
	}
	s := newFrameStats(slog.New(slog.NewTextHandler(&buf, nil)), 3, clock)

	for range 3 {
		s.Span("update")()
		s.FrameMark()
	}
	out := buf.String()
	if !strings.Contains(out, "frame stats") || !strings.Contains(out, "frames=3") {
		t.Fatalf("no report:\n%s", out)
	}
	if !strings.Contains(out, "update=10ms") {
		t.Errorf("update average missing:\n%s", out)
	}
	if s.frames != 0 || len(s.spans) != 0 {
		t.Error("stats not reset after report")
	}
}

func TestClearModeFactory(t *testing.T) {
	factory := clearModeFactory([4]float64{0, 1, 0, 1})
	if _, err := factory(context.Background(), nil); err == nil {
		t.Error("factory accepted a nil surface context")
	}

	sc, err := framehost.Initialize(context.Background(), headless.New(headless.Options{}), headless.NewWindow(4, 4))
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer sc.Release()
	m, err := factory(context.Background(), sc)
	if err != nil {
		t.Fatalf("factory: %v", err)
	}
	if cm, ok := m.(*clearMode); !ok || cm.base != [4]float64{0, 1, 0, 1} {
		t.Errorf("factory returned %#v", m)
	}
}
