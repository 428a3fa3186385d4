// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import "errors"

// Startup errors. These are fatal: the host cannot continue without a device.
var (
	// ErrNilBackend is returned when Initialize is called without a backend.
	ErrNilBackend = errors.New("framehost: nil backend")

	// ErrNilWindow is returned when Initialize or NewDriver is called without a window.
	ErrNilWindow = errors.New("framehost: nil window")

	// ErrNilMode is returned when a driver is created or switched without a mode.
	ErrNilMode = errors.New("framehost: nil mode")

	// ErrNoAdapter is returned when no adapter compatible with the window
	// surface is available.
	ErrNoAdapter = errors.New("framehost: no compatible GPU adapter")

	// ErrNoDevice is returned when the adapter cannot open a device.
	ErrNoDevice = errors.New("framehost: device request failed")

	// ErrNoSurfaceFormat is returned when the surface reports no supported formats.
	ErrNoSurfaceFormat = errors.New("framehost: surface has no supported formats")
)

// Frame errors. Backends translate their native failure codes into these so
// that Classify can pick a recovery action.
var (
	// ErrSurfaceLost reports that the surface must be reconfigured before
	// further presentation.
	ErrSurfaceLost = errors.New("framehost: surface lost")

	// ErrSurfaceOutdated reports that the surface no longer matches the
	// window, typically after a resize race with the compositor.
	ErrSurfaceOutdated = errors.New("framehost: surface outdated")

	// ErrOutOfMemory reports that the backend exhausted memory.
	ErrOutOfMemory = errors.New("framehost: out of memory")

	// ErrTimeout reports a transient stall while acquiring the next frame.
	ErrTimeout = errors.New("framehost: frame acquire timeout")

	// ErrSurfaceUnconfigured is returned by RenderFrame while the surface has
	// a zero dimension, e.g. while the window is minimized.
	ErrSurfaceUnconfigured = errors.New("framehost: surface not configured")
)

// ErrEventsClosed is returned by an EventSource when no more events will be
// delivered. Driver.Run treats it as a clean shutdown.
var ErrEventsClosed = errors.New("framehost: event source closed")

// Recovery is the action the driver takes after a frame result.
type Recovery int

const (
	// RecoveryNone means the frame succeeded.
	RecoveryNone Recovery = iota

	// RecoveryReconfigure reconfigures the surface at its last known size.
	RecoveryReconfigure

	// RecoveryExit stops the event loop.
	RecoveryExit

	// RecoverySkip drops the frame and keeps looping.
	RecoverySkip
)

// String returns the recovery name.
func (r Recovery) String() string {
	switch r {
	case RecoveryNone:
		return "none"
	case RecoveryReconfigure:
		return "reconfigure"
	case RecoveryExit:
		return "exit"
	case RecoverySkip:
		return "skip"
	default:
		return "unknown"
	}
}

// Classify maps a RenderFrame result to a recovery action.
//
// Errors returned by a RecordFunc are classified exactly like acquisition
// errors. Errors outside the taxonomy drop the frame.
func Classify(err error) Recovery {
	switch {
	case err == nil:
		return RecoveryNone
	case errors.Is(err, ErrSurfaceLost), errors.Is(err, ErrSurfaceOutdated):
		return RecoveryReconfigure
	case errors.Is(err, ErrOutOfMemory):
		return RecoveryExit
	default:
		return RecoverySkip
	}
}
