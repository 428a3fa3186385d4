// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import (
	"context"
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// SurfaceContext owns the GPU device, its queue and the window surface,
// together with the surface configuration last applied.
//
// Invariant: while Configured reports true, Config().Size() equals Size()
// and both dimensions are positive. A window with a zero dimension leaves
// the surface unconfigured.
//
// SurfaceContext is not safe for concurrent use. The Driver serializes
// access; other goroutines must go through Driver.WithSurface.
type SurfaceContext struct {
	backend Backend
	adapter Adapter
	device  Device
	queue   Queue
	surface Surface

	config     SurfaceConfig
	size       Size
	configured bool
	released   bool
}

// Initialize binds a GPU device and queue to the window's surface, selects
// the first supported surface format and configures the surface for
// render-attachment use with FIFO presentation and automatic alpha.
//
// Failure to find an adapter or open a device is fatal; the returned error
// wraps ErrNoAdapter or ErrNoDevice.
func Initialize(ctx context.Context, backend Backend, window Window, opts ...SurfaceOption) (*SurfaceContext, error) {
	if backend == nil {
		return nil, ErrNilBackend
	}
	if window == nil {
		return nil, ErrNilWindow
	}
	o := defaultSurfaceOptions()
	for _, opt := range opts {
		opt(&o)
	}

	surface, err := backend.CreateSurface(window.SurfaceTarget())
	if err != nil {
		return nil, fmt.Errorf("framehost: create surface: %w", err)
	}

	adapter, err := backend.RequestAdapter(ctx, surface)
	if err != nil {
		surface.Destroy()
		if errors.Is(err, ErrNoAdapter) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrNoAdapter, err)
	}

	device, queue, err := adapter.RequestDevice(ctx)
	if err != nil {
		surface.Destroy()
		return nil, fmt.Errorf("%w: %w", ErrNoDevice, err)
	}

	formats := adapter.SurfaceFormats(surface)
	if len(formats) == 0 {
		surface.Destroy()
		device.Destroy()
		return nil, ErrNoSurfaceFormat
	}
	format := formats[0]

	size := window.InnerSize()
	sc := &SurfaceContext{
		backend: backend,
		adapter: adapter,
		device:  device,
		queue:   queue,
		surface: surface,
		config: SurfaceConfig{
			Format:      format,
			Usage:       o.usage | gputypes.TextureUsageRenderAttachment,
			Width:       size.Width,
			Height:      size.Height,
			PresentMode: o.presentMode,
			AlphaMode:   o.alphaMode,
			ViewFormats: []gputypes.TextureFormat{format},
		},
		size: size,
	}

	if size.Positive() {
		if err := surface.Configure(device, &sc.config); err != nil {
			surface.Destroy()
			device.Destroy()
			return nil, fmt.Errorf("framehost: configure surface %s: %w", size, err)
		}
		sc.configured = true
	}

	Logger().Info("framehost: surface initialized",
		"adapter", adapter.Name(),
		"format", format,
		"size", size.String(),
		"present", o.presentMode.String(),
		"configured", sc.configured)
	return sc, nil
}

// Resize reconfigures the surface for a new window size. A size with a zero
// dimension (minimized window) is ignored and leaves the configuration
// untouched.
//
// Resize returns once the backend has applied the configuration. On error
// the previous configuration is kept.
func (s *SurfaceContext) Resize(size Size) error {
	if !size.Positive() {
		Logger().Debug("framehost: ignoring resize to empty size", "size", size.String())
		return nil
	}
	cfg := s.config.clone()
	cfg.Width = size.Width
	cfg.Height = size.Height
	if err := s.surface.Configure(s.device, &cfg); err != nil {
		return fmt.Errorf("framehost: configure surface %s: %w", size, err)
	}
	s.config = cfg
	s.size = size
	s.configured = true
	Logger().Debug("framehost: surface configured", "size", size.String())
	return nil
}

// Config returns a copy of the configuration last applied to the surface.
func (s *SurfaceContext) Config() SurfaceConfig {
	return s.config.clone()
}

// Size returns the last applied window size.
func (s *SurfaceContext) Size() Size {
	return s.size
}

// Configured reports whether the surface is in a presentable state.
func (s *SurfaceContext) Configured() bool {
	return s.configured
}

// AdapterName returns the name of the selected adapter.
func (s *SurfaceContext) AdapterName() string {
	return s.adapter.Name()
}

// AdapterInfo returns the metadata of the selected adapter.
func (s *SurfaceContext) AdapterInfo() gpucontext.AdapterInfo {
	return s.adapter.Info()
}

// Device returns the GPU device.
func (s *SurfaceContext) Device() gpucontext.Device {
	return s.device
}

// Queue returns the submission queue.
func (s *SurfaceContext) Queue() gpucontext.Queue {
	return s.queue
}

// Adapter returns the adapter the device was opened on.
func (s *SurfaceContext) Adapter() gpucontext.Adapter {
	return s.adapter
}

// SurfaceFormat returns the pixel format of the swap images.
func (s *SurfaceContext) SurfaceFormat() gputypes.TextureFormat {
	return s.config.Format
}

// HalDevice returns the backend's HAL device when the backend exposes one,
// allowing gogpu renderers to share it. Otherwise it returns nil.
func (s *SurfaceContext) HalDevice() any {
	if hp, ok := s.device.(interface{ HalDevice() any }); ok {
		return hp.HalDevice()
	}
	return nil
}

// HalQueue returns the backend's HAL queue when the backend exposes one.
func (s *SurfaceContext) HalQueue() any {
	if hp, ok := s.queue.(interface{ HalQueue() any }); ok {
		return hp.HalQueue()
	}
	return nil
}

// Release waits for the device to go idle and destroys the surface, the
// device and the backend. Release is idempotent.
func (s *SurfaceContext) Release() {
	if s.released {
		return
	}
	s.released = true
	s.device.Poll(true)
	if s.configured {
		s.surface.Unconfigure(s.device)
		s.configured = false
	}
	s.surface.Destroy()
	s.device.Destroy()
	s.backend.Destroy()
	Logger().Info("framehost: surface released")
}

var _ gpucontext.DeviceProvider = (*SurfaceContext)(nil)
