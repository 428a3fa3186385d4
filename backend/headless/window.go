// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"sync"
	"sync/atomic"

	"github.com/gogpu/framehost"
	"github.com/gogpu/gpucontext"
)

var nextWindowID atomic.Uint64

// Window is an in-memory framehost.Window. Redraw requests and the helper
// methods below push events into the window's Events queue, so a Driver
// running on it behaves as on a real platform loop.
type Window struct {
	id     framehost.WindowID
	events *Events

	mu      sync.Mutex
	size    framehost.Size
	redraws int
}

// NewWindow returns a window with the given inner size.
func NewWindow(width, height uint32) *Window {
	return &Window{
		id:     framehost.WindowID(nextWindowID.Add(1)),
		events: NewEvents(),
		size:   framehost.Size{Width: width, Height: height},
	}
}

// ID implements framehost.Window.
func (w *Window) ID() framehost.WindowID { return w.id }

// InnerSize implements framehost.Window.
func (w *Window) InnerSize() framehost.Size {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.size
}

// SurfaceTarget implements framehost.Window. Headless surfaces need no
// native handles.
func (w *Window) SurfaceTarget() framehost.SurfaceTarget {
	return framehost.SurfaceTarget{Window: uintptr(w.id)}
}

// RequestRedraw implements framehost.Window by queueing a RedrawRequested.
func (w *Window) RequestRedraw() {
	w.mu.Lock()
	w.redraws++
	w.mu.Unlock()
	w.events.Push(framehost.RedrawRequested{Window: w.id})
}

// RedrawRequests returns how many redraws were requested.
func (w *Window) RedrawRequests() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.redraws
}

// Events returns the window's event queue.
func (w *Window) Events() *Events { return w.events }

// Resize changes the inner size and queues a Resized event.
func (w *Window) Resize(width, height uint32) {
	size := framehost.Size{Width: width, Height: height}
	w.mu.Lock()
	w.size = size
	w.mu.Unlock()
	w.events.Push(framehost.Resized{Window: w.id, Size: size})
}

// Close queues a CloseRequested event.
func (w *Window) Close() {
	w.events.Push(framehost.CloseRequested{Window: w.id})
}

// Key queues a key press followed by its release.
func (w *Window) Key(key gpucontext.Key) {
	w.events.Push(
		framehost.KeyboardInput{Window: w.id, Key: key, State: framehost.Pressed},
		framehost.KeyboardInput{Window: w.id, Key: key, State: framehost.Released},
	)
}

var _ framehost.Window = (*Window)(nil)
