// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import "errors"

// Startup errors. Backends wrap these with context using %w so callers can
// match them with errors.Is.
var (
	// ErrNoAdapter is returned when no GPU adapter compatible with the
	// surface could be found.
	ErrNoAdapter = errors.New("shaderdemo: no compatible GPU adapter")

	// ErrDeviceCreation is returned when the adapter refuses to open a device.
	ErrDeviceCreation = errors.New("shaderdemo: device creation failed")

	// ErrSurface is returned when the presentation surface cannot be
	// created or configured.
	ErrSurface = errors.New("shaderdemo: surface configuration failed")

	// ErrShader is returned when a shader binary is missing, malformed or
	// rejected by the device.
	ErrShader = errors.New("shaderdemo: invalid shader")

	// ErrBackendNotAvailable is returned when the requested backend is not
	// registered or cannot run on this platform.
	ErrBackendNotAvailable = errors.New("shaderdemo: backend not available")
)

// Configuration errors.
var (
	ErrInvalidDimensions = errors.New("shaderdemo: invalid dimensions")
	ErrInvalidConfig     = errors.New("shaderdemo: invalid configuration")
)

// ErrFrameUnavailable is returned by FrameRenderer.AcquireFrame when the
// surface has no presentable frame (timeout, outdated or lost surface).
// The demo logs it and skips the frame.
var ErrFrameUnavailable = errors.New("shaderdemo: next frame unavailable")
