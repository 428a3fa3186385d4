// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/framehost"
	"github.com/gogpu/wgpu/hal"
)

const (
	submitTimeout = 5 * time.Second
	pollInterval  = 100 * time.Microsecond
)

// submitter throttles submissions on the queue's submission index.
// Command buffers are freed only after the queue reports their submission
// complete.
type submitter struct {
	device  hal.Device
	queue   hal.Queue
	last    uint64
	pending []hal.CommandBuffer

	// sleep is time.Sleep outside tests.
	sleep func(time.Duration)
}

// submit waits for the previous submission, frees its buffers, then
// submits bufs. At most one frame is in flight.
func (s *submitter) submit(bufs []hal.CommandBuffer) error {
	if err := s.wait(); err != nil {
		s.free(bufs)
		return err
	}
	idx, err := s.queue.Submit(bufs)
	if err != nil {
		s.free(bufs)
		return translate(fmt.Errorf("halgpu: submit: %w", err))
	}
	s.last = idx
	s.pending = append(s.pending, bufs...)
	return nil
}

// wait blocks until the last submission completes and frees its buffers.
func (s *submitter) wait() error {
	if len(s.pending) == 0 {
		return nil
	}
	sleep := s.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	for waited := time.Duration(0); s.queue.PollCompleted() < s.last; waited += pollInterval {
		if waited >= submitTimeout {
			return fmt.Errorf("halgpu: wait for submission %d: %w", s.last, framehost.ErrTimeout)
		}
		sleep(pollInterval)
	}
	s.free(s.pending)
	s.pending = s.pending[:0]
	return nil
}

func (s *submitter) free(bufs []hal.CommandBuffer) {
	for _, b := range bufs {
		s.device.FreeCommandBuffer(b)
	}
}

func (s *submitter) destroy() {
	if err := s.device.WaitIdle(); err != nil {
		framehost.Logger().Warn("halgpu: idle wait failed", "err", err)
	}
	s.free(s.pending)
	s.pending = nil
}

type device struct {
	raw hal.Device
	sub *submitter
}

// HalDevice returns the underlying hal.Device.
func (d *device) HalDevice() any { return d.raw }

func (d *device) CreateCommandEncoder(label string) (framehost.CommandEncoder, error) {
	raw, err := d.raw.CreateCommandEncoder(&hal.CommandEncoderDescriptor{Label: label})
	if err != nil {
		return nil, translate(fmt.Errorf("halgpu: create command encoder: %w", err))
	}
	if err := raw.BeginEncoding(label); err != nil {
		return nil, translate(fmt.Errorf("halgpu: begin encoding: %w", err))
	}
	return &Encoder{raw: raw}, nil
}

func (d *device) Poll(wait bool) {
	if !wait {
		return
	}
	if err := d.sub.wait(); err != nil {
		framehost.Logger().Warn("halgpu: poll failed", "err", err)
	}
}

func (d *device) Destroy() {
	d.sub.destroy()
	d.raw.Destroy()
}

type queue struct {
	raw hal.Queue
	sub *submitter
}

// HalQueue returns the underlying hal.Queue.
func (q *queue) HalQueue() any { return q.raw }

var errForeignBuffer = errors.New("halgpu: command buffer from another backend")

func (q *queue) Submit(buffers ...framehost.CommandBuffer) error {
	raw := make([]hal.CommandBuffer, 0, len(buffers))
	for _, b := range buffers {
		cb, ok := b.(*CommandBuffer)
		if !ok {
			return errForeignBuffer
		}
		raw = append(raw, cb.raw)
	}
	return q.sub.submit(raw)
}

// Encoder is the frame command encoder. Modes record into it through Raw.
type Encoder struct {
	raw  hal.CommandEncoder
	done bool
}

// Raw returns the underlying hal.CommandEncoder, in the recording state.
func (e *Encoder) Raw() hal.CommandEncoder { return e.raw }

// Finish implements framehost.CommandEncoder.
func (e *Encoder) Finish() (framehost.CommandBuffer, error) {
	if e.done {
		return nil, errors.New("halgpu: encoder already finished")
	}
	e.done = true
	buf, err := e.raw.EndEncoding()
	if err != nil {
		return nil, translate(fmt.Errorf("halgpu: end encoding: %w", err))
	}
	return &CommandBuffer{raw: buf}, nil
}

// Discard implements framehost.CommandEncoder.
func (e *Encoder) Discard() {
	if e.done {
		return
	}
	e.done = true
	e.raw.DiscardEncoding()
}

// CommandBuffer is a finished hal command buffer.
type CommandBuffer struct {
	raw hal.CommandBuffer
}

// EncoderOf returns the hal encoder behind a frame encoder.
func EncoderOf(enc framehost.CommandEncoder) (hal.CommandEncoder, bool) {
	e, ok := enc.(*Encoder)
	if !ok {
		return nil, false
	}
	return e.raw, true
}

// ViewOf returns the hal texture view behind a frame view.
func ViewOf(view framehost.TextureView) (hal.TextureView, bool) {
	v, ok := view.(hal.TextureView)
	return v, ok
}
