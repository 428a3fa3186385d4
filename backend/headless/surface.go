// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package headless

import (
	"errors"
	"fmt"

	"github.com/gogpu/framehost"
	"github.com/gogpu/gputypes"
)

// Errors reported for protocol violations.
var (
	ErrNotConfigured   = errors.New("headless: surface not configured")
	ErrFrameFinished   = errors.New("headless: frame already presented or discarded")
	ErrEncoderFinished = errors.New("headless: encoder already finished or discarded")
)

type surface struct{ b *Backend }

func (s *surface) Configure(_ framehost.Device, cfg *framehost.SurfaceConfig) error {
	if cfg == nil {
		return errors.New("headless: nil surface config")
	}
	if !cfg.Size().Positive() {
		return fmt.Errorf("headless: cannot configure %s surface", cfg.Size())
	}
	b := s.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if err := pop(&b.configureErrs); err != nil {
		return err
	}
	b.stats.Configures++
	b.stats.LastConfig = *cfg
	b.stats.LastConfig.ViewFormats = append([]gputypes.TextureFormat(nil), cfg.ViewFormats...)
	b.configured = true
	b.invalid = nil
	return nil
}

func (s *surface) Unconfigure(framehost.Device) {
	b := s.b
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Unconfigures++
	b.configured = false
}

func (s *surface) AcquireFrame() (framehost.SurfaceFrame, error) {
	b := s.b
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.Acquires++
	switch {
	case !b.configured:
		return nil, ErrNotConfigured
	case b.invalid != nil:
		return nil, b.invalid
	}
	if err := pop(&b.acquireErrs); err != nil {
		return nil, err
	}
	b.frameSeq++
	cfg := b.stats.LastConfig
	return &frame{
		b: b,
		view: &View{
			Frame:  b.frameSeq,
			Format: cfg.Format,
			Size:   cfg.Size(),
		},
	}, nil
}

func (s *surface) Destroy() {}

// View is the texture view handed out for one frame.
type View struct {
	// Frame is the 1-based sequence number of the acquisition.
	Frame  uint64
	Format gputypes.TextureFormat
	Size   framehost.Size
}

type frame struct {
	b    *Backend
	view *View
	done bool
}

func (f *frame) View() framehost.TextureView { return f.view }

func (f *frame) Present() error {
	b := f.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if f.done {
		return ErrFrameFinished
	}
	f.done = true
	if err := pop(&b.presentErrs); err != nil {
		b.stats.Discards++
		return err
	}
	b.stats.Presents++
	return nil
}

func (f *frame) Discard() {
	b := f.b
	b.mu.Lock()
	defer b.mu.Unlock()
	if f.done {
		return
	}
	f.done = true
	b.stats.Discards++
}

// Encoder records named commands. Modes rendering on the headless backend
// type-assert the frame encoder to *Encoder to record into it.
type Encoder struct {
	label    string
	commands []string
	done     bool
}

// Label returns the label the encoder was created with.
func (e *Encoder) Label() string { return e.label }

// Record appends a command.
func (e *Encoder) Record(cmd string) {
	e.commands = append(e.commands, cmd)
}

// Commands returns the commands recorded so far.
func (e *Encoder) Commands() []string {
	return append([]string(nil), e.commands...)
}

// Finish implements framehost.CommandEncoder.
func (e *Encoder) Finish() (framehost.CommandBuffer, error) {
	if e.done {
		return nil, ErrEncoderFinished
	}
	e.done = true
	return &CommandBuffer{Label: e.label, Commands: e.commands}, nil
}

// Discard implements framehost.CommandEncoder.
func (e *Encoder) Discard() {
	e.done = true
	e.commands = nil
}

// CommandBuffer is a finished recording.
type CommandBuffer struct {
	Label    string
	Commands []string
}
