// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package halgpu implements framehost.Backend on the gogpu/wgpu HAL.
//
// Importing the package registers the Vulkan HAL backend. Surfaces are
// created from the native window handles of a framehost.SurfaceTarget;
// HAL error codes are translated into the framehost frame errors so the
// driver can recover from lost and outdated swap chains.
//
// Modes record into the frame by unwrapping the encoder and view:
//
//	func (m *clearMode) Render(f *framehost.Frame) error {
//		enc, _ := halgpu.EncoderOf(f.Encoder)
//		view, _ := halgpu.ViewOf(f.View)
//		pass := enc.BeginRenderPass(&hal.RenderPassDescriptor{...view...})
//		pass.End()
//		return nil
//	}
//
// At most one frame is in flight: each submission waits on the fence of
// the previous one before its command buffers are freed.
package halgpu
