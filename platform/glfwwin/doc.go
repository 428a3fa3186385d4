// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package glfwwin provides a framehost window and event source on GLFW.
//
// The window is created without a client API; the GPU surface is created
// by the backend from the native handles (X11 on Linux, Win32 on Windows).
// GLFW must be driven from the main OS thread, so hosts lock it in init:
//
//	func init() { runtime.LockOSThread() }
package glfwwin
