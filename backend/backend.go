// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package backend

import (
	"context"

	"github.com/gogpu/shaderdemo"
)

// Names of the built-in backends.
const (
	// WebGPU renders through wgpu-native into a GLFW window on the desktop
	// and through the browser WebGPU API under js/wasm.
	WebGPU = "webgpu"

	// Native renders offscreen through the Pure Go HAL of gogpu/wgpu.
	Native = "native"
)

// Backend runs a demo on a concrete GPU API and window system.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	// Name returns the backend identifier (e.g., "webgpu", "native").
	Name() string

	// Run acquires a device, builds the pipeline for cfg.Variant and
	// drives the event loop until the window is closed, Escape is pressed
	// or ctx is cancelled.
	//
	// Startup failures are returned wrapping one of the shaderdemo
	// sentinel errors. Per-frame failures are logged and do not stop Run.
	Run(ctx context.Context, cfg shaderdemo.Config) error
}
