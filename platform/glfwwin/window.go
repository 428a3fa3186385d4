// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfwwin

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/framehost"
)

// waitTimeout bounds glfw.WaitEventsTimeout so context cancellation is
// observed even when the platform stays idle.
const waitTimeout = 0.1 // seconds

var nextID atomic.Uint64

// Config describes the window to open.
type Config struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Window is a GLFW window without a client API, implementing
// framehost.Window and framehost.EventSource.
//
// All methods except RequestRedraw must be called on the main OS thread.
type Window struct {
	win  *glfw.Window
	id   framehost.WindowID
	pump *pump
}

// Open initializes GLFW and creates a window. Close releases both.
func Open(cfg Config) (*Window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfwwin: init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	resizable := glfw.False
	if cfg.Resizable {
		resizable = glfw.True
	}
	glfw.WindowHint(glfw.Resizable, resizable)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfwwin: create window: %w", err)
	}

	w := &Window{
		win: win,
		id:  framehost.WindowID(nextID.Add(1)),
	}
	w.pump = &pump{
		window: w.id,
		poll:   glfw.PollEvents,
		wait:   func() { glfw.WaitEventsTimeout(waitTimeout) },
	}
	w.installCallbacks()
	framehost.Logger().Debug("glfwwin: window opened", "title", cfg.Title, "size", w.InnerSize().String())
	return w, nil
}

func (w *Window) installCallbacks() {
	id := w.id
	w.win.SetCloseCallback(func(*glfw.Window) {
		w.pump.push(framehost.CloseRequested{Window: id})
	})
	w.win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.pump.push(framehost.Resized{Window: id, Size: framebufferSize(width, height)})
	})
	w.win.SetContentScaleCallback(func(gw *glfw.Window, x, _ float32) {
		w.pump.push(framehost.ScaleFactorChanged{
			Window: id,
			Scale:  float64(x),
			Size:   framebufferSize(gw.GetFramebufferSize()),
		})
	})
	w.win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, mods glfw.ModifierKey) {
		w.pump.push(framehost.KeyboardInput{
			Window: id,
			Key:    translateKey(key),
			Mods:   translateMods(mods),
			State:  translateAction(action),
		})
	})
	w.win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.pump.push(framehost.CursorMoved{Window: id, X: x, Y: y})
	})
	w.win.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		w.pump.push(framehost.MouseInput{Window: id, Button: int(button), State: translateAction(action)})
	})
	w.win.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.pump.push(framehost.MouseWheel{Window: id, DX: dx, DY: dy})
	})
	w.win.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.pump.push(framehost.Focused{Window: id, Focus: focused})
	})
}

// ID implements framehost.Window.
func (w *Window) ID() framehost.WindowID { return w.id }

// InnerSize implements framehost.Window. It reports the framebuffer size
// in physical pixels.
func (w *Window) InnerSize() framehost.Size {
	return framebufferSize(w.win.GetFramebufferSize())
}

// SurfaceTarget implements framehost.Window.
func (w *Window) SurfaceTarget() framehost.SurfaceTarget {
	target, err := nativeTarget(w.win)
	if err != nil {
		framehost.Logger().Error("glfwwin: no native surface handles", "err", err)
	}
	return target
}

// RequestRedraw implements framehost.Window. It is safe to call from any
// goroutine.
func (w *Window) RequestRedraw() {
	w.pump.requestRedraw()
	glfw.PostEmptyEvent()
}

// NextEvent implements framehost.EventSource.
func (w *Window) NextEvent(ctx context.Context) (framehost.Event, error) {
	return w.pump.next(ctx)
}

// Close destroys the window and terminates GLFW. Pending events are
// dropped and NextEvent reports framehost.ErrEventsClosed afterwards.
func (w *Window) Close() {
	w.pump.close()
	w.win.Destroy()
	glfw.Terminate()
}

var (
	_ framehost.Window      = (*Window)(nil)
	_ framehost.EventSource = (*Window)(nil)
)
