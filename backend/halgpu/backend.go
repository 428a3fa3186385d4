// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgpu

import (
	"context"
	"fmt"

	"github.com/gogpu/framehost"
	"github.com/gogpu/framehost/backend"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	// Register the Vulkan HAL backend.
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	framehost.ForwardLogger(hal.SetLogger)
	backend.Register(backend.Vulkan, func() (framehost.Backend, error) {
		return New(gputypes.BackendVulkan)
	})
}

// Backend is a framehost.Backend over a wgpu HAL instance.
type Backend struct {
	instance hal.Instance
}

// New creates a HAL instance for the given backend kind, typically
// gputypes.BackendVulkan.
func New(kind gputypes.Backend) (*Backend, error) {
	api, ok := hal.GetBackend(kind)
	if !ok {
		return nil, fmt.Errorf("halgpu: backend %v not available", kind)
	}
	instance, err := api.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("halgpu: create instance: %w", err)
	}
	return &Backend{instance: instance}, nil
}

// NewFromInstance wraps an existing instance. The backend takes ownership
// and destroys it in Destroy.
func NewFromInstance(instance hal.Instance) *Backend {
	return &Backend{instance: instance}
}

// CreateSurface implements framehost.Backend.
func (b *Backend) CreateSurface(target framehost.SurfaceTarget) (framehost.Surface, error) {
	raw, err := b.instance.CreateSurface(target.Display, target.Window)
	if err != nil {
		return nil, fmt.Errorf("halgpu: create surface: %w", err)
	}
	return &surface{raw: raw}, nil
}

// RequestAdapter implements framehost.Backend. Discrete and integrated GPUs
// are preferred over software adapters.
func (b *Backend) RequestAdapter(ctx context.Context, s framehost.Surface) (framehost.Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var hint hal.Surface
	hs, _ := s.(*surface)
	if hs != nil {
		hint = hs.raw
	}
	selected := selectAdapter(b.instance.EnumerateAdapters(hint))
	if selected == nil {
		return nil, framehost.ErrNoAdapter
	}
	a := &adapter{exposed: *selected}
	if hs != nil {
		hs.adapter = a
	}
	framehost.Logger().Debug("halgpu: adapter selected",
		"name", selected.Info.Name,
		"type", selected.Info.DeviceType)
	return a, nil
}

// Destroy implements framehost.Backend.
func (b *Backend) Destroy() {
	if b.instance != nil {
		b.instance.Destroy()
		b.instance = nil
	}
}

func selectAdapter(adapters []hal.ExposedAdapter) *hal.ExposedAdapter {
	if len(adapters) == 0 {
		return nil
	}
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			return &adapters[i]
		}
	}
	return &adapters[0]
}

type adapter struct {
	exposed hal.ExposedAdapter
}

func (a *adapter) Name() string { return a.exposed.Info.Name }

func (a *adapter) Info() gpucontext.AdapterInfo {
	return adapterInfo(a.exposed.Info)
}

// adapterInfo maps HAL device types onto gpucontext adapter types.
func adapterInfo(info gputypes.AdapterInfo) gpucontext.AdapterInfo {
	t := gpucontext.AdapterTypeUnknown
	switch info.DeviceType {
	case gputypes.DeviceTypeDiscreteGPU:
		t = gpucontext.AdapterTypeDiscrete
	case gputypes.DeviceTypeIntegratedGPU:
		t = gpucontext.AdapterTypeIntegrated
	case gputypes.DeviceTypeCPU:
		t = gpucontext.AdapterTypeSoftware
	}
	return gpucontext.AdapterInfo{Name: info.Name, Type: t}
}

func (a *adapter) SurfaceFormats(s framehost.Surface) []gputypes.TextureFormat {
	caps := a.capabilities(s)
	if caps == nil {
		return nil
	}
	return append([]gputypes.TextureFormat(nil), caps.Formats...)
}

func (a *adapter) capabilities(s framehost.Surface) *hal.SurfaceCapabilities {
	hs, ok := s.(*surface)
	if !ok {
		return nil
	}
	return a.exposed.Adapter.SurfaceCapabilities(hs.raw)
}

func (a *adapter) RequestDevice(ctx context.Context) (framehost.Device, framehost.Queue, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	open, err := a.exposed.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		return nil, nil, fmt.Errorf("halgpu: open device: %w", err)
	}
	sub := &submitter{device: open.Device, queue: open.Queue}
	return &device{raw: open.Device, sub: sub}, &queue{raw: open.Queue, sub: sub}, nil
}
