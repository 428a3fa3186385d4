// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import (
	"context"
	"time"
)

// Mode is the application logic driven by the event loop: a game mode,
// level, or scene. The driver owns no mode state; it only calls these
// methods in order.
//
// All methods run on the event loop goroutine with exclusive access to the
// SurfaceContext. Load and Unload may block on GPU setup; Update and Render
// must not wait for GPU completion.
type Mode interface {
	// Input consumes one platform event and reports whether it was handled.
	// The result is advisory.
	Input(ev Event) bool

	// Update advances simulation state by dt.
	Update(dt time.Duration, sc *SurfaceContext)

	// Render records the commands of the current frame. It is called from
	// inside SurfaceContext.RenderFrame; a returned error is classified like
	// an acquisition error.
	Render(f *Frame) error

	// Load acquires resources when the mode becomes active.
	Load(ctx context.Context, sc *SurfaceContext) error

	// Unload releases resources when the mode is deactivated.
	Unload(ctx context.Context, sc *SurfaceContext) error
}

// ModeFactory constructs a mode and its initial GPU resources.
type ModeFactory func(ctx context.Context, sc *SurfaceContext) (Mode, error)

// Frame is what a mode receives to record one frame.
type Frame struct {
	// View is the drawable image view for this frame only.
	View TextureView

	// Encoder is the recording context, exclusively owned for the frame.
	Encoder CommandEncoder

	// Surface is the context the frame belongs to.
	Surface *SurfaceContext

	// Timestep is the timing of this frame.
	Timestep Timestep
}

// BaseMode implements Mode with no-ops. Embed it to implement only the
// methods a mode needs.
type BaseMode struct{}

func (BaseMode) Input(Event) bool                              { return false }
func (BaseMode) Update(time.Duration, *SurfaceContext)         {}
func (BaseMode) Render(*Frame) error                           { return nil }
func (BaseMode) Load(context.Context, *SurfaceContext) error   { return nil }
func (BaseMode) Unload(context.Context, *SurfaceContext) error { return nil }

var _ Mode = BaseMode{}
