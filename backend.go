// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import (
	"context"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// Backend is the GPU backend collaborator. It creates surfaces for native
// windows and hands out adapters compatible with them.
//
// Implementations live in backend/halgpu (gogpu/wgpu HAL) and
// backend/headless (in-memory, for tests and CI).
type Backend interface {
	// CreateSurface creates a presentable surface for the native window.
	CreateSurface(target SurfaceTarget) (Surface, error)

	// RequestAdapter returns an adapter able to present to surface.
	// A backend with no such adapter returns an error wrapping ErrNoAdapter.
	RequestAdapter(ctx context.Context, surface Surface) (Adapter, error)

	// Destroy releases the backend instance.
	Destroy()
}

// Adapter is a physical GPU selected for a surface.
type Adapter interface {
	// Name returns a human-readable adapter name.
	Name() string

	// Info returns the adapter metadata gogpu renderers use to choose
	// between GPU and CPU rendering.
	Info() gpucontext.AdapterInfo

	// SurfaceFormats returns the pixel formats the surface supports on this
	// adapter, in the backend's order of preference.
	SurfaceFormats(surface Surface) []gputypes.TextureFormat

	// RequestDevice opens a logical device and its submission queue.
	RequestDevice(ctx context.Context) (Device, Queue, error)
}

// Device is a logical GPU device. It satisfies gpucontext.Device.
type Device interface {
	// CreateCommandEncoder returns a fresh recording context.
	CreateCommandEncoder(label string) (CommandEncoder, error)

	// Poll processes completed GPU work; with wait set it blocks until the
	// queue is idle.
	Poll(wait bool)

	// Destroy releases the device.
	Destroy()
}

// Queue consumes recorded command buffers.
type Queue interface {
	// Submit hands finished command buffers to the GPU. It does not wait for
	// them to complete.
	Submit(buffers ...CommandBuffer) error
}

// Surface is the presentable target bound to one window for its lifetime.
type Surface interface {
	// Configure (re)configures the surface. It returns once the backend has
	// applied the configuration.
	Configure(device Device, config *SurfaceConfig) error

	// Unconfigure releases the swap images.
	Unconfigure(device Device)

	// AcquireFrame acquires the next drawable image.
	AcquireFrame() (SurfaceFrame, error)

	// Destroy releases the surface.
	Destroy()
}

// SurfaceFrame is an acquired drawable image. It is scoped to exactly one
// frame: it is either presented or discarded, never both.
type SurfaceFrame interface {
	// View returns the writable view of the image.
	View() TextureView

	// Present queues the image for display.
	Present() error

	// Discard returns the image to the surface without presenting it.
	Discard()
}

// CommandEncoder is an append-only recording context for one frame.
type CommandEncoder interface {
	// Finish closes the encoder and returns the recorded commands.
	Finish() (CommandBuffer, error)

	// Discard abandons the recording.
	Discard()
}

// TextureView is an opaque backend view handle. Modes that record real GPU
// commands type-assert it to the backend's concrete type.
type TextureView any

// CommandBuffer is an opaque finished recording.
type CommandBuffer any
