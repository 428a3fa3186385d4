// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import (
	"context"

	"github.com/gogpu/gpucontext"
)

// WindowID is a stable window identity assigned by the platform.
type WindowID uint64

// SurfaceTarget carries the native handles a backend needs to create a
// surface: the display connection (X11 Display*, HINSTANCE, 0 where unused)
// and the window (X11 Window, HWND, CAMetalLayer*).
type SurfaceTarget struct {
	Display uintptr
	Window  uintptr
}

// Window is the window collaborator.
type Window interface {
	// ID returns the stable identity used to tag events.
	ID() WindowID

	// InnerSize returns the drawable size in physical pixels.
	InnerSize() Size

	// SurfaceTarget returns the native handles for surface creation.
	SurfaceTarget() SurfaceTarget

	// RequestRedraw asks the platform to deliver a RedrawRequested event.
	RequestRedraw()
}

// EventSource delivers platform events to the driver, one at a time.
//
// NextEvent blocks until an event is available or ctx is done. It returns
// ErrEventsClosed when the stream has ended.
type EventSource interface {
	NextEvent(ctx context.Context) (Event, error)
}

// Event is a tagged platform event.
type Event interface{ isEvent() }

// ElementState is the press state of a key or button.
type ElementState uint8

const (
	Released ElementState = iota
	Pressed
)

// String returns "pressed" or "released".
func (s ElementState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// CloseRequested is delivered when the user asks to close the window.
type CloseRequested struct{ Window WindowID }

// KeyboardInput is a key press or release.
type KeyboardInput struct {
	Window WindowID
	Key    gpucontext.Key
	Mods   gpucontext.Modifiers
	State  ElementState
}

// Resized carries the new physical size of the window.
type Resized struct {
	Window WindowID
	Size   Size
}

// ScaleFactorChanged is delivered when the window moves to a display with a
// different DPI. Size is the new physical inner size.
type ScaleFactorChanged struct {
	Window WindowID
	Scale  float64
	Size   Size
}

// CursorMoved carries the cursor position in physical pixels.
type CursorMoved struct {
	Window WindowID
	X, Y   float64
}

// MouseInput is a mouse button press or release.
type MouseInput struct {
	Window WindowID
	Button int
	State  ElementState
}

// MouseWheel carries scroll deltas.
type MouseWheel struct {
	Window WindowID
	DX, DY float64
}

// Focused reports a keyboard focus change.
type Focused struct {
	Window WindowID
	Focus  bool
}

// RedrawRequested schedules one frame.
type RedrawRequested struct{ Window WindowID }

// EventsCleared is delivered after the platform queue has been drained.
type EventsCleared struct{}

func (CloseRequested) isEvent()     {}
func (KeyboardInput) isEvent()      {}
func (Resized) isEvent()            {}
func (ScaleFactorChanged) isEvent() {}
func (CursorMoved) isEvent()        {}
func (MouseInput) isEvent()         {}
func (MouseWheel) isEvent()         {}
func (Focused) isEvent()            {}
func (RedrawRequested) isEvent()    {}
func (EventsCleared) isEvent()      {}

// windowOf returns the window an event targets. Events without a window,
// such as EventsCleared, report ok=false.
func windowOf(ev Event) (id WindowID, ok bool) {
	switch e := ev.(type) {
	case CloseRequested:
		return e.Window, true
	case KeyboardInput:
		return e.Window, true
	case Resized:
		return e.Window, true
	case ScaleFactorChanged:
		return e.Window, true
	case CursorMoved:
		return e.Window, true
	case MouseInput:
		return e.Window, true
	case MouseWheel:
		return e.Window, true
	case Focused:
		return e.Window, true
	case RedrawRequested:
		return e.Window, true
	default:
		return 0, false
	}
}
