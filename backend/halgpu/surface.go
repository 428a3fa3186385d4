// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgpu

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/framehost"
	"github.com/gogpu/wgpu/hal"
)

type surface struct {
	raw     hal.Surface
	adapter *adapter
	device  *device
}

func (s *surface) Configure(dev framehost.Device, cfg *framehost.SurfaceConfig) error {
	d, ok := dev.(*device)
	if !ok {
		return errors.New("halgpu: device from another backend")
	}
	caps := s.capabilities()
	present := presentMode(cfg.PresentMode)
	if caps != nil && !supportsPresentMode(caps, cfg.PresentMode) {
		framehost.Logger().Warn("halgpu: present mode unsupported, using fifo", "mode", cfg.PresentMode.String())
		present = hal.PresentModeFifo
	}
	hc := &hal.SurfaceConfiguration{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Format:      cfg.Format,
		Usage:       cfg.Usage,
		PresentMode: present,
		AlphaMode:   alphaMode(caps, cfg.AlphaMode),
	}
	if err := s.raw.Configure(d.raw, hc); err != nil {
		return translate(err)
	}
	s.device = d
	return nil
}

func (s *surface) capabilities() *hal.SurfaceCapabilities {
	if s.adapter == nil {
		return nil
	}
	return s.adapter.exposed.Adapter.SurfaceCapabilities(s.raw)
}

// alphaMode resolves AlphaModeAuto to the first mode the surface supports.
func alphaMode(caps *hal.SurfaceCapabilities, m framehost.AlphaMode) hal.CompositeAlphaMode {
	switch m {
	case framehost.AlphaModeOpaque:
		return hal.CompositeAlphaModeOpaque
	case framehost.AlphaModePremultiplied:
		return hal.CompositeAlphaModePremultiplied
	case framehost.AlphaModePostmultiplied:
		return hal.CompositeAlphaModeUnpremultiplied
	case framehost.AlphaModeInherit:
		return hal.CompositeAlphaModeInherit
	}
	if caps != nil && len(caps.AlphaModes) > 0 {
		return caps.AlphaModes[0]
	}
	return hal.CompositeAlphaModeOpaque
}

func presentMode(m framehost.PresentMode) hal.PresentMode {
	switch m {
	case framehost.PresentModeFifoRelaxed:
		return hal.PresentModeFifoRelaxed
	case framehost.PresentModeMailbox:
		return hal.PresentModeMailbox
	case framehost.PresentModeImmediate:
		return hal.PresentModeImmediate
	default:
		return hal.PresentModeFifo
	}
}

func (s *surface) Unconfigure(dev framehost.Device) {
	if d, ok := dev.(*device); ok {
		s.raw.Unconfigure(d.raw)
	}
	s.device = nil
}

func (s *surface) AcquireFrame() (framehost.SurfaceFrame, error) {
	if s.device == nil {
		return nil, framehost.ErrSurfaceUnconfigured
	}
	acquired, err := s.raw.AcquireTexture(nil)
	if err != nil {
		return nil, translate(err)
	}
	if acquired.Suboptimal {
		framehost.Logger().Debug("halgpu: acquired suboptimal surface texture")
	}
	view, err := s.device.raw.CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label: "framehost_surface_view",
	})
	if err != nil {
		s.raw.DiscardTexture(acquired.Texture)
		return nil, translate(fmt.Errorf("halgpu: create surface view: %w", err))
	}
	return &frame{s: s, tex: acquired.Texture, view: view}, nil
}

func (s *surface) Destroy() {
	s.raw.Destroy()
}

type frame struct {
	s    *surface
	tex  hal.SurfaceTexture
	view hal.TextureView
	done bool
}

func (f *frame) View() framehost.TextureView { return f.view }

func (f *frame) Present() error {
	if f.done {
		return errors.New("halgpu: frame already finished")
	}
	f.done = true
	dev := f.s.device
	dev.raw.DestroyTextureView(f.view)
	if err := dev.sub.queue.Present(f.s.raw, f.tex, nil); err != nil {
		return translate(err)
	}
	return nil
}

func (f *frame) Discard() {
	if f.done {
		return
	}
	f.done = true
	f.s.device.raw.DestroyTextureView(f.view)
	f.s.raw.DiscardTexture(f.tex)
}

// supportsPresentMode reports whether caps lists m.
func supportsPresentMode(caps *hal.SurfaceCapabilities, m framehost.PresentMode) bool {
	return caps != nil && slices.Contains(caps.PresentModes, presentMode(m))
}
