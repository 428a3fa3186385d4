// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/framehost"
)

// Well-known backend names.
const (
	Vulkan   = "vulkan"
	Headless = "headless"
)

// ErrBackendNotAvailable is returned when no registered backend matches.
var ErrBackendNotAvailable = errors.New("backend: not available")

// Factory creates a new backend instance.
type Factory func() (framehost.Backend, error)

// registry holds registered backends.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for Default (first that opens wins).
	priority = []string{Vulkan, Headless}
)

// Register registers a backend factory with the given name.
// This is typically called from init() functions in backend packages.
// If a backend with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a backend from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered backend names in sorted order.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Open creates the backend registered under name.
func Open(name string) (framehost.Backend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrBackendNotAvailable, name)
	}
	b, err := factory()
	if err != nil {
		return nil, fmt.Errorf("backend %s: %w", name, err)
	}
	return b, nil
}

// Default opens the best available backend by priority, falling back to
// any other registered backend. It returns the name it opened.
func Default() (framehost.Backend, string, error) {
	tried := make(map[string]bool)
	var errs []error
	for _, name := range append(slices.Clone(priority), Available()...) {
		if tried[name] || !IsRegistered(name) {
			continue
		}
		tried[name] = true
		b, err := Open(name)
		if err == nil {
			return b, name, nil
		}
		framehost.Logger().Debug("backend: unavailable", "name", name, "err", err)
		errs = append(errs, err)
	}
	return nil, "", errors.Join(append([]error{ErrBackendNotAvailable}, errs...)...)
}
