// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import "time"

// Clock is a source of monotonic instants.
type Clock interface {
	Now() time.Time
}

// systemClock reads time.Now, which carries a monotonic reading.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Timestep is the time information of one frame.
type Timestep struct {
	// Now is the instant the frame started.
	Now time.Time

	// Delta is the time elapsed since the previous frame started.
	Delta time.Duration
}

// frameTimer computes timesteps from consecutive clock readings.
type frameTimer struct {
	clock Clock
	last  time.Time
}

func newFrameTimer(c Clock) *frameTimer {
	return &frameTimer{clock: c, last: c.Now()}
}

// reset makes the next step measure from now.
func (t *frameTimer) reset() {
	t.last = t.clock.Now()
}

// step records the current instant and returns the delta to the previous
// one. Delta is never negative.
func (t *frameTimer) step() Timestep {
	now := t.clock.Now()
	delta := now.Sub(t.last)
	if delta < 0 {
		delta = 0
	}
	t.last = now
	return Timestep{Now: now, Delta: delta}
}
