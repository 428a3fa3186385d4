// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package halgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/framehost"
	"github.com/gogpu/wgpu/hal"
)

// translate maps HAL error codes onto the framehost frame error taxonomy,
// keeping the original error in the chain.
func translate(err error) error {
	var sentinel error
	switch {
	case err == nil:
		return nil
	case errors.Is(err, hal.ErrSurfaceLost):
		sentinel = framehost.ErrSurfaceLost
	case errors.Is(err, hal.ErrSurfaceOutdated):
		sentinel = framehost.ErrSurfaceOutdated
	case errors.Is(err, hal.ErrDeviceOutOfMemory):
		sentinel = framehost.ErrOutOfMemory
	case errors.Is(err, hal.ErrTimeout):
		sentinel = framehost.ErrTimeout
	default:
		return err
	}
	return fmt.Errorf("%w: %w", sentinel, err)
}
