// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package glfwwin

import (
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/framehost"
	"github.com/gogpu/gpucontext"
)

var keyMap = map[glfw.Key]gpucontext.Key{
	glfw.KeyEscape:    gpucontext.KeyEscape,
	glfw.KeySpace:     gpucontext.KeySpace,
	glfw.KeyEnter:     gpucontext.KeyEnter,
	glfw.KeyTab:       gpucontext.KeyTab,
	glfw.KeyBackspace: gpucontext.KeyBackspace,
	glfw.KeyLeft:      gpucontext.KeyLeft,
	glfw.KeyRight:     gpucontext.KeyRight,
	glfw.KeyUp:        gpucontext.KeyUp,
	glfw.KeyDown:      gpucontext.KeyDown,
}

func translateKey(k glfw.Key) gpucontext.Key {
	if key, ok := keyMap[k]; ok {
		return key
	}
	return gpucontext.KeyUnknown
}

func translateMods(mod glfw.ModifierKey) gpucontext.Modifiers {
	var m gpucontext.Modifiers
	if mod&glfw.ModShift != 0 {
		m |= gpucontext.ModShift
	}
	if mod&glfw.ModControl != 0 {
		m |= gpucontext.ModControl
	}
	if mod&glfw.ModAlt != 0 {
		m |= gpucontext.ModAlt
	}
	if mod&glfw.ModSuper != 0 {
		m |= gpucontext.ModSuper
	}
	return m
}

// translateAction maps press and repeat to Pressed.
func translateAction(a glfw.Action) framehost.ElementState {
	if a == glfw.Release {
		return framehost.Released
	}
	return framehost.Pressed
}

func framebufferSize(w, h int) framehost.Size {
	return framehost.Size{Width: uint32(max(w, 0)), Height: uint32(max(h, 0))}
}
