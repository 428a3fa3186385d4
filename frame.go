// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import "fmt"

// RecordFunc records the commands of one frame into encoder, targeting view.
// Errors it returns share the frame error taxonomy (see Classify) and are
// passed through RenderFrame unchanged.
type RecordFunc func(view TextureView, encoder CommandEncoder) error

// RenderFrame runs one acquire, record, submit, present cycle:
//
//  1. acquire the next drawable image from the surface
//  2. create a fresh command encoder on the device
//  3. call record with the image view and the encoder
//  4. submit the recorded commands, then present the image
//
// If any step fails, the image is discarded and never presented. The caller
// decides how to recover; see Classify. While the surface is unconfigured
// RenderFrame returns ErrSurfaceUnconfigured without touching the backend.
func (s *SurfaceContext) RenderFrame(record RecordFunc) error {
	if !s.configured {
		return ErrSurfaceUnconfigured
	}

	frame, err := s.surface.AcquireFrame()
	if err != nil {
		return fmt.Errorf("framehost: acquire frame: %w", err)
	}

	encoder, err := s.device.CreateCommandEncoder("framehost_frame")
	if err != nil {
		frame.Discard()
		return fmt.Errorf("framehost: create command encoder: %w", err)
	}

	if record != nil {
		if err := record(frame.View(), encoder); err != nil {
			encoder.Discard()
			frame.Discard()
			return err
		}
	}

	buf, err := encoder.Finish()
	if err != nil {
		frame.Discard()
		return fmt.Errorf("framehost: finish command encoder: %w", err)
	}
	if err := s.queue.Submit(buf); err != nil {
		frame.Discard()
		return fmt.Errorf("framehost: submit: %w", err)
	}
	if err := frame.Present(); err != nil {
		return fmt.Errorf("framehost: present: %w", err)
	}
	return nil
}
