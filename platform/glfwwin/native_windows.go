// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build windows

package glfwwin

import (
	"unsafe"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/framehost"
)

func nativeTarget(win *glfw.Window) (framehost.SurfaceTarget, error) {
	return framehost.SurfaceTarget{
		Window: uintptr(unsafe.Pointer(win.GetWin32Window())),
	}, nil
}
