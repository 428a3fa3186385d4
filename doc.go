// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package framehost is the per-frame host of a GPU application: it owns
// the device and window surface, runs the acquire, record, submit, present
// cycle and drives an event loop that feeds input, timing and frames to the
// active mode.
//
// # Overview
//
// A host is assembled from three collaborators:
//
//   - a Backend (see backend/halgpu for the wgpu HAL, backend/headless for
//     an in-memory backend used in tests)
//   - a Window and EventSource (see platform/glfwwin)
//   - a Mode, the application logic
//
// # Quick Start
//
//	b, _ := halgpu.New(gputypes.BackendVulkan)
//	win, _ := glfwwin.Open(glfwwin.Config{Title: "demo", Width: 800, Height: 600})
//	defer win.Close()
//
//	sc, err := framehost.Initialize(ctx, b, win)
//	if err != nil {
//		return err
//	}
//	defer sc.Release()
//
//	d, _ := framehost.NewDriver(sc, win, myMode)
//	return d.Run(ctx, win)
//
// # Frames
//
// SurfaceContext.RenderFrame acquires the next image, hands its view and a
// fresh command encoder to a RecordFunc, submits the recording and
// presents. A frame that fails at any step is discarded, never presented.
// Classify maps the error to a recovery: lost or outdated surfaces are
// reconfigured at the last known size, out-of-memory ends the loop, and
// everything else drops the frame.
//
// # Event Loop
//
// The Driver handles one event per iteration. EventsCleared requests a
// redraw; RedrawRequested computes the timestep, updates the mode and
// renders. CloseRequested and a pressed Escape key make the loop Exiting,
// which is terminal. Resizes to a zero dimension (minimized windows) leave
// the surface configuration untouched.
//
// # Logging
//
// The package is silent by default. Install a logger with SetLogger:
//
//	framehost.SetLogger(slog.Default())
package framehost
