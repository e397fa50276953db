// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js

package shaderdemo

// DefaultFormat is the surface format used when none is configured.
// Browsers do not expose sRGB canvas formats.
const DefaultFormat = FormatBGRA8Unorm
