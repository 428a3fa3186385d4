// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package headless is an in-memory framehost backend and window.
//
// It performs no GPU work. Surfaces, frames and encoders track the frame
// protocol and count every call, and failures can be injected at each
// step, so hosts and modes can be tested without a display:
//
//	b := headless.New(headless.Options{})
//	win := headless.NewWindow(800, 600)
//	sc, _ := framehost.Initialize(ctx, b, win)
//	d, _ := framehost.NewDriver(sc, win, mode)
//	win.Events().Pump(3)
//	_ = d.Run(ctx, win.Events()) // renders three frames
package headless
