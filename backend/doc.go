// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package backend is the registry of framehost GPU backends.
//
// Backends register a factory from init(), so importing a backend package
// makes it selectable by name:
//
//	import _ "github.com/gogpu/framehost/backend/halgpu"
//
//	b, err := backend.Open(backend.Vulkan)
//
// Default opens the first backend that works, preferring Vulkan over the
// in-memory headless backend.
package backend
