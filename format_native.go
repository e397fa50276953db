// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !js

package shaderdemo

// DefaultFormat is the surface format used when none is configured.
const DefaultFormat = FormatBGRA8UnormSrgb
