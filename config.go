// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package framehost

import (
	"fmt"
	"slices"

	"github.com/gogpu/gputypes"
)

// Size is a physical pixel size.
type Size struct {
	Width  uint32
	Height uint32
}

// Positive reports whether both dimensions are non-zero.
func (s Size) Positive() bool {
	return s.Width > 0 && s.Height > 0
}

// String returns the size as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// PresentMode governs how completed frames are handed to the display.
type PresentMode uint8

const (
	// PresentModeFifo waits for vertical blank; frames are never dropped.
	PresentModeFifo PresentMode = iota

	// PresentModeFifoRelaxed is like Fifo but presents late frames immediately.
	PresentModeFifoRelaxed

	// PresentModeMailbox replaces the queued frame with the newest one.
	PresentModeMailbox

	// PresentModeImmediate presents without waiting; may tear.
	PresentModeImmediate
)

var presentModeNames = []string{"fifo", "fifo-relaxed", "mailbox", "immediate"}

// String returns the lower-case mode name.
func (m PresentMode) String() string {
	if int(m) < len(presentModeNames) {
		return presentModeNames[m]
	}
	return fmt.Sprintf("PresentMode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m PresentMode) MarshalText() ([]byte, error) {
	if int(m) >= len(presentModeNames) {
		return nil, fmt.Errorf("framehost: invalid present mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *PresentMode) UnmarshalText(text []byte) error {
	i := slices.Index(presentModeNames, string(text))
	if i < 0 {
		return fmt.Errorf("framehost: unknown present mode %q", text)
	}
	*m = PresentMode(i)
	return nil
}

// AlphaMode selects how the compositor blends the surface with the desktop.
type AlphaMode uint8

const (
	// AlphaModeAuto lets the backend pick the first mode the surface supports.
	AlphaModeAuto AlphaMode = iota
	AlphaModeOpaque
	AlphaModePremultiplied
	AlphaModePostmultiplied
	AlphaModeInherit
)

var alphaModeNames = []string{"auto", "opaque", "premultiplied", "postmultiplied", "inherit"}

// String returns the lower-case mode name.
func (m AlphaMode) String() string {
	if int(m) < len(alphaModeNames) {
		return alphaModeNames[m]
	}
	return fmt.Sprintf("AlphaMode(%d)", m)
}

// MarshalText implements encoding.TextMarshaler.
func (m AlphaMode) MarshalText() ([]byte, error) {
	if int(m) >= len(alphaModeNames) {
		return nil, fmt.Errorf("framehost: invalid alpha mode %d", m)
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *AlphaMode) UnmarshalText(text []byte) error {
	i := slices.Index(alphaModeNames, string(text))
	if i < 0 {
		return fmt.Errorf("framehost: unknown alpha mode %q", text)
	}
	*m = AlphaMode(i)
	return nil
}

// SurfaceConfig is the configuration last applied to a surface.
type SurfaceConfig struct {
	Format      gputypes.TextureFormat
	Usage       gputypes.TextureUsage
	Width       uint32
	Height      uint32
	PresentMode PresentMode
	AlphaMode   AlphaMode
	ViewFormats []gputypes.TextureFormat
}

// Size returns the configured dimensions.
func (c SurfaceConfig) Size() Size {
	return Size{Width: c.Width, Height: c.Height}
}

// clone returns a deep copy so callers cannot alias ViewFormats.
func (c SurfaceConfig) clone() SurfaceConfig {
	c.ViewFormats = slices.Clone(c.ViewFormats)
	return c
}
