// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !linux && !windows

package glfwwin

import (
	"errors"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/framehost"
)

func nativeTarget(*glfw.Window) (framehost.SurfaceTarget, error) {
	return framehost.SurfaceTarget{}, errors.New("glfwwin: native surface handles unsupported on " + runtime.GOOS)
}
