// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"context"
	"errors"
	"sync"

	"github.com/gogpu/framehost"
	"github.com/gogpu/framehost/backend"
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

func init() {
	backend.Register(backend.Headless, func() (framehost.Backend, error) {
		return New(Options{}), nil
	})
}

// ErrInjected is the default error used by the failure injection helpers
// when called without an explicit error.
var ErrInjected = errors.New("headless: injected failure")

// Options configures a headless Backend.
type Options struct {
	// Formats are the surface formats reported by the adapter.
	// Defaults to BGRA8Unorm, RGBA8Unorm.
	Formats []gputypes.TextureFormat

	// AdapterName defaults to "headless".
	AdapterName string

	// NoAdapter makes RequestAdapter fail with framehost.ErrNoAdapter.
	NoAdapter bool

	// DeviceErr, when set, is returned by RequestDevice.
	DeviceErr error
}

// Stats is a snapshot of backend activity.
type Stats struct {
	Configures   int
	Unconfigures int
	Acquires     int
	Submits      int
	Presents     int
	Discards     int
	Encoders     int
	Destroyed    bool

	// LastConfig is the configuration of the last successful Configure.
	LastConfig framehost.SurfaceConfig
}

// Backend is an in-memory framehost.Backend. It performs no GPU work but
// enforces the frame protocol: views are valid for one frame only, frames
// are presented or discarded exactly once, and an invalidated surface stays
// invalid until it is configured again.
//
// Backend is safe for concurrent use so tests can inspect it while a driver
// runs on another goroutine.
type Backend struct {
	opts Options

	mu            sync.Mutex
	stats         Stats
	configured    bool
	invalid       error
	acquireErrs   []error
	presentErrs   []error
	configureErrs []error
	submitted     []*CommandBuffer
	frameSeq      uint64
}

// New returns a headless backend.
func New(opts Options) *Backend {
	if len(opts.Formats) == 0 {
		opts.Formats = []gputypes.TextureFormat{
			gputypes.TextureFormatBGRA8Unorm,
			gputypes.TextureFormatRGBA8Unorm,
		}
	}
	if opts.AdapterName == "" {
		opts.AdapterName = "headless"
	}
	return &Backend{opts: opts}
}

// CreateSurface implements framehost.Backend.
func (b *Backend) CreateSurface(framehost.SurfaceTarget) (framehost.Surface, error) {
	return &surface{b: b}, nil
}

// RequestAdapter implements framehost.Backend.
func (b *Backend) RequestAdapter(ctx context.Context, _ framehost.Surface) (framehost.Adapter, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b.opts.NoAdapter {
		return nil, framehost.ErrNoAdapter
	}
	return &adapter{b: b}, nil
}

// Destroy implements framehost.Backend.
func (b *Backend) Destroy() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Destroyed = true
}

// Stats returns a snapshot of backend activity.
func (b *Backend) Stats() Stats {
	b.mu.Lock()
	defer b.mu.Unlock()
	s := b.stats
	s.LastConfig.ViewFormats = append([]gputypes.TextureFormat(nil), s.LastConfig.ViewFormats...)
	return s
}

// Submitted returns the command buffers submitted so far.
func (b *Backend) Submitted() []*CommandBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]*CommandBuffer(nil), b.submitted...)
}

// InvalidateSurface makes every acquisition fail with err until the surface
// is configured again, simulating a compositor invalidating the swap chain.
// err is typically framehost.ErrSurfaceLost or framehost.ErrSurfaceOutdated.
func (b *Backend) InvalidateSurface(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.invalid = orInjected(err)
}

// FailAcquire queues errors returned by the next acquisitions, one per call.
func (b *Backend) FailAcquire(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.acquireErrs = append(b.acquireErrs, errs...)
}

// FailPresent queues errors returned by the next presents.
func (b *Backend) FailPresent(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.presentErrs = append(b.presentErrs, errs...)
}

// FailConfigure queues errors returned by the next Configure calls.
func (b *Backend) FailConfigure(errs ...error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.configureErrs = append(b.configureErrs, errs...)
}

func pop(errs *[]error) error {
	if len(*errs) == 0 {
		return nil
	}
	err := (*errs)[0]
	*errs = (*errs)[1:]
	return orInjected(err)
}

func orInjected(err error) error {
	if err == nil {
		return ErrInjected
	}
	return err
}

type adapter struct{ b *Backend }

func (a *adapter) Name() string { return a.b.opts.AdapterName }

func (a *adapter) Info() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: a.b.opts.AdapterName, Type: gpucontext.AdapterTypeSoftware}
}

func (a *adapter) SurfaceFormats(framehost.Surface) []gputypes.TextureFormat {
	return append([]gputypes.TextureFormat(nil), a.b.opts.Formats...)
}

func (a *adapter) RequestDevice(ctx context.Context) (framehost.Device, framehost.Queue, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if a.b.opts.DeviceErr != nil {
		return nil, nil, a.b.opts.DeviceErr
	}
	return &device{b: a.b}, &queue{b: a.b}, nil
}

type device struct{ b *Backend }

func (d *device) CreateCommandEncoder(label string) (framehost.CommandEncoder, error) {
	d.b.mu.Lock()
	defer d.b.mu.Unlock()
	d.b.stats.Encoders++
	return &Encoder{label: label}, nil
}

func (d *device) Poll(bool) {}
func (d *device) Destroy()  {}

type queue struct{ b *Backend }

func (q *queue) Submit(buffers ...framehost.CommandBuffer) error {
	q.b.mu.Lock()
	defer q.b.mu.Unlock()
	for _, buf := range buffers {
		cb, ok := buf.(*CommandBuffer)
		if !ok {
			return errors.New("headless: foreign command buffer")
		}
		q.b.submitted = append(q.b.submitted, cb)
	}
	q.b.stats.Submits++
	return nil
}
