// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
)

// ControlFlow is the state of the event loop.
type ControlFlow uint8

const (
	// Polling keeps the loop running.
	Polling ControlFlow = iota

	// Exiting is terminal: no further iterations are scheduled.
	Exiting
)

// String returns "polling" or "exiting".
func (c ControlFlow) String() string {
	if c == Exiting {
		return "exiting"
	}
	return "polling"
}

// Driver is the event loop. It owns the SurfaceContext and the active Mode,
// and turns the platform event stream into input, update and render calls.
//
// Each event is one iteration. The surface guard is held for the whole
// iteration, so input handling, resize, update and render never observe a
// torn configuration. Other goroutines reach the surface through
// WithSurface.
type Driver struct {
	mu      sync.Mutex // surface guard; held for one iteration
	surface *SurfaceContext
	window  Window
	mode    Mode
	loaded  bool
	flow    ControlFlow
	timer   *frameTimer
	inst    Instrument
	last    Timestep
	frames  uint64

	exitRequested atomic.Bool
}

// NewDriver creates a driver for the window presented by sc, running mode.
func NewDriver(sc *SurfaceContext, window Window, mode Mode, opts ...DriverOption) (*Driver, error) {
	if sc == nil {
		return nil, errors.New("framehost: nil surface context")
	}
	if window == nil {
		return nil, ErrNilWindow
	}
	if mode == nil {
		return nil, ErrNilMode
	}
	o := defaultDriverOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Driver{
		surface: sc,
		window:  window,
		mode:    mode,
		timer:   newFrameTimer(o.clock),
		inst:    o.instrument,
	}, nil
}

// State returns the current control-flow state.
func (d *Driver) State() ControlFlow {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.flow
}

// Frames returns the number of frames rendered successfully.
func (d *Driver) Frames() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// LastTimestep returns the timestep of the most recent frame.
func (d *Driver) LastTimestep() Timestep {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last
}

// Exit asks the loop to stop. It is safe to call from any goroutine,
// including from Mode callbacks; the transition happens at the start of
// the next iteration. Work already submitted to the GPU is not aborted.
func (d *Driver) Exit() {
	d.exitRequested.Store(true)
}

// WithSurface runs fn with exclusive access to the surface context.
// It must not be called from Mode callbacks, which already hold the guard.
func (d *Driver) WithSurface(fn func(sc *SurfaceContext)) {
	d.mu.Lock()
	defer d.mu.Unlock()
	fn(d.surface)
}

// Load activates the current mode. Run calls it; it is exported for hosts
// that pump events themselves through HandleEvent.
func (d *Driver) Load(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.loaded {
		return nil
	}
	if err := d.mode.Load(ctx, d.surface); err != nil {
		return fmt.Errorf("framehost: load mode: %w", err)
	}
	d.loaded = true
	d.timer.reset()
	return nil
}

// Unload deactivates the current mode.
func (d *Driver) Unload(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if !d.loaded {
		return nil
	}
	d.loaded = false
	if err := d.mode.Unload(ctx, d.surface); err != nil {
		return fmt.Errorf("framehost: unload mode: %w", err)
	}
	return nil
}

// SwitchMode unloads the active mode and loads next in its place. If the
// active mode fails to unload, or next fails to load, the previous mode is
// loaded again and stays active. If that reload fails too, no mode is
// active and frames are skipped until Load succeeds.
//
// SwitchMode must not be called from Mode callbacks.
func (d *Driver) SwitchMode(ctx context.Context, next Mode) error {
	if next == nil {
		return ErrNilMode
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.loaded {
		d.mode = next
		return nil
	}
	prev := d.mode
	if err := prev.Unload(ctx, d.surface); err != nil {
		return d.reload(ctx, fmt.Errorf("framehost: unload mode: %w", err))
	}
	if err := next.Load(ctx, d.surface); err != nil {
		return d.reload(ctx, fmt.Errorf("framehost: load mode: %w", err))
	}
	d.mode = next
	Logger().Info("framehost: mode switched", "mode", fmt.Sprintf("%T", next))
	return nil
}

// reload loads the current mode again after a failed switch and returns
// cause, joined with the reload error if any. Callers hold d.mu.
func (d *Driver) reload(ctx context.Context, cause error) error {
	if err := d.mode.Load(ctx, d.surface); err != nil {
		d.loaded = false
		Logger().Error("framehost: no active mode", "err", err)
		return errors.Join(cause, fmt.Errorf("framehost: reload previous mode: %w", err))
	}
	return cause
}

// Run loads the mode, then handles events from src until the driver is
// Exiting, src reports ErrEventsClosed, or ctx is done. The mode is
// unloaded before Run returns.
//
// Run must be called on the goroutine that owns the platform window; most
// platforms require that to be the main OS thread.
func (d *Driver) Run(ctx context.Context, src EventSource) (err error) {
	if err := d.Load(ctx); err != nil {
		return err
	}
	defer func() {
		if uerr := d.Unload(context.WithoutCancel(ctx)); uerr != nil {
			err = errors.Join(err, uerr)
		}
	}()

	for {
		ev, nerr := src.NextEvent(ctx)
		if nerr != nil {
			d.mu.Lock()
			d.exit("event stream ended")
			d.mu.Unlock()
			if errors.Is(nerr, ErrEventsClosed) {
				return nil
			}
			return nerr
		}
		if d.HandleEvent(ev) == Exiting {
			return nil
		}
	}
}

// HandleEvent runs one iteration of the loop for ev and returns the
// resulting control-flow state. Once Exiting, further events are ignored.
func (d *Driver) HandleEvent(ev Event) ControlFlow {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.exitRequested.Load() {
		d.exit("exit requested")
	}
	if d.flow == Exiting {
		return Exiting
	}
	if id, ok := windowOf(ev); ok && id != d.window.ID() {
		return d.flow
	}

	switch e := ev.(type) {
	case CloseRequested:
		d.exit("close requested")
	case KeyboardInput:
		if e.State == Pressed && e.Key == gpucontext.KeyEscape {
			d.exit("escape pressed")
			break
		}
		d.input(ev)
	case Resized:
		d.resize(e.Size)
	case ScaleFactorChanged:
		d.resize(e.Size)
	case EventsCleared:
		d.window.RequestRedraw()
	case RedrawRequested:
		d.frame()
	default:
		d.input(ev)
	}
	return d.flow
}

// exit moves to the terminal Exiting state. Callers hold d.mu.
func (d *Driver) exit(reason string) {
	if d.flow == Exiting {
		return
	}
	d.flow = Exiting
	Logger().Info("framehost: exiting", "reason", reason, "frames", d.frames)
}

func (d *Driver) resize(size Size) {
	if err := d.surface.Resize(size); err != nil {
		Logger().Error("framehost: resize failed", "size", size.String(), "err", err)
	}
}

func (d *Driver) input(ev Event) {
	if d.loaded {
		d.mode.Input(ev)
	}
}

// frame computes the timestep, updates the mode and renders one frame.
// Without an active mode the frame is skipped.
func (d *Driver) frame() {
	if !d.loaded {
		Logger().Debug("framehost: frame skipped, no active mode")
		return
	}
	ts := d.timer.step()
	d.last = ts

	end := d.inst.Span("update")
	d.mode.Update(ts.Delta, d.surface)
	end()

	end = d.inst.Span("render")
	err := d.surface.RenderFrame(func(view TextureView, encoder CommandEncoder) error {
		return d.mode.Render(&Frame{
			View:     view,
			Encoder:  encoder,
			Surface:  d.surface,
			Timestep: ts,
		})
	})
	end()

	if err == nil {
		d.frames++
	}
	d.applyRecovery(err)
	d.inst.FrameMark()
}

// applyRecovery applies the recovery policy for a frame result.
func (d *Driver) applyRecovery(err error) {
	switch Classify(err) {
	case RecoveryNone:
	case RecoveryReconfigure:
		size := d.surface.Size()
		Logger().Warn("framehost: surface invalidated, reconfiguring", "size", size.String(), "err", err)
		d.resize(size)
	case RecoveryExit:
		Logger().Error("framehost: unrecoverable frame error", "err", err)
		d.exit("out of memory")
	case RecoverySkip:
		switch {
		case errors.Is(err, ErrTimeout):
			Logger().Warn("framehost: surface timeout")
		case errors.Is(err, ErrSurfaceUnconfigured):
			Logger().Debug("framehost: frame skipped, surface not configured")
		default:
			Logger().Error("framehost: frame failed", "err", err)
		}
	}
}
