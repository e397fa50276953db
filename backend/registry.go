// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"fmt"
	"sort"
	"sync"

	"github.com/gogpu/shaderdemo"
)

// Factory creates a new backend instance. It returns nil when the
// backend cannot run on this platform.
type Factory func() Backend

var (
	registryMu sync.RWMutex
	backends   = make(map[string]Factory)

	// Default tries these first, in order. A window beats offscreen output.
	backendPriority = []string{WebGPU, Native}
)

// Register makes a backend available under name, replacing any earlier
// registration. Backend packages call it from init.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	backends[name] = factory
}

// Unregister removes the backend registered under name.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(backends, name)
}

// Available returns the sorted names of registered backends.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// IsRegistered reports whether name has a registered factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := backends[name]
	return ok
}

// Get creates the backend registered under name.
func Get(name string) (Backend, error) {
	registryMu.RLock()
	factory, ok := backends[name]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q (registered: %v)", shaderdemo.ErrBackendNotAvailable, name, Available())
	}
	b := factory()
	if b == nil {
		return nil, fmt.Errorf("%w: %q cannot run on this platform", shaderdemo.ErrBackendNotAvailable, name)
	}
	return b, nil
}

// Default creates the first backend that can run here, trying webgpu,
// then native, then any other registration in name order.
func Default() (Backend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := backends[name]; ok {
			if b := factory(); b != nil {
				return b, nil
			}
		}
	}

	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if b := backends[name](); b != nil {
			return b, nil
		}
	}

	return nil, shaderdemo.ErrBackendNotAvailable
}

// Select returns the backend named by name, or Default when name is empty.
func Select(name string) (Backend, error) {
	if name == "" {
		return Default()
	}
	return Get(name)
}

// MustDefault is like Default but panics when no backend can run.
func MustDefault() Backend {
	b, err := Default()
	if err != nil {
		panic("backend: no backend available")
	}
	return b
}
