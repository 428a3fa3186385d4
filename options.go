// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import "github.com/gogpu/gputypes"

// SurfaceOption configures a SurfaceContext during Initialize.
//
// Example:
//
//	sc, err := framehost.Initialize(ctx, backend, window,
//	    framehost.WithPresentMode(framehost.PresentModeMailbox))
type SurfaceOption func(*surfaceOptions)

// surfaceOptions holds optional configuration for Initialize.
type surfaceOptions struct {
	presentMode PresentMode
	alphaMode   AlphaMode
	usage       gputypes.TextureUsage
}

// defaultSurfaceOptions returns vsync-locked presentation, automatic alpha
// compositing and render-attachment usage.
func defaultSurfaceOptions() surfaceOptions {
	return surfaceOptions{
		presentMode: PresentModeFifo,
		alphaMode:   AlphaModeAuto,
		usage:       gputypes.TextureUsageRenderAttachment,
	}
}

// WithPresentMode overrides the default FIFO presentation mode.
func WithPresentMode(m PresentMode) SurfaceOption {
	return func(o *surfaceOptions) {
		o.presentMode = m
	}
}

// WithAlphaMode overrides the default automatic alpha compositing.
func WithAlphaMode(m AlphaMode) SurfaceOption {
	return func(o *surfaceOptions) {
		o.alphaMode = m
	}
}

// WithUsage adds texture usages to the swap images, e.g. CopySrc for
// screenshots. Render-attachment usage is always kept.
func WithUsage(u gputypes.TextureUsage) SurfaceOption {
	return func(o *surfaceOptions) {
		o.usage |= u
	}
}

// DriverOption configures a Driver during NewDriver.
type DriverOption func(*driverOptions)

// driverOptions holds optional configuration for NewDriver.
type driverOptions struct {
	clock      Clock
	instrument Instrument
}

func defaultDriverOptions() driverOptions {
	return driverOptions{
		clock:      systemClock{},
		instrument: nopInstrument{},
	}
}

// WithClock replaces the monotonic system clock used for timesteps.
// Tests use it to drive deterministic deltas.
func WithClock(c Clock) DriverOption {
	return func(o *driverOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithInstrument installs profiling hooks around update and render.
func WithInstrument(in Instrument) DriverOption {
	return func(o *driverOptions) {
		if in != nil {
			o.instrument = in
		}
	}
}
