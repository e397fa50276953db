// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"github.com/gogpu/gputypes"

	"github.com/gogpu/shaderdemo"
)

// textureFormat maps a surface format to the HAL texture format.
func textureFormat(f shaderdemo.Format) gputypes.TextureFormat {
	switch f {
	case shaderdemo.FormatBGRA8Unorm:
		return gputypes.TextureFormatBGRA8Unorm
	case shaderdemo.FormatRGBA8UnormSrgb:
		return gputypes.TextureFormatRGBA8UnormSrgb
	case shaderdemo.FormatRGBA8Unorm:
		return gputypes.TextureFormatRGBA8Unorm
	default:
		return gputypes.TextureFormatBGRA8UnormSrgb
	}
}

// surfaceFormat maps a HAL texture format back to a surface format.
// ok is false for formats the demo cannot render to.
func surfaceFormat(f gputypes.TextureFormat) (shaderdemo.Format, bool) {
	switch f {
	case gputypes.TextureFormatBGRA8UnormSrgb:
		return shaderdemo.FormatBGRA8UnormSrgb, true
	case gputypes.TextureFormatBGRA8Unorm:
		return shaderdemo.FormatBGRA8Unorm, true
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return shaderdemo.FormatRGBA8UnormSrgb, true
	case gputypes.TextureFormatRGBA8Unorm:
		return shaderdemo.FormatRGBA8Unorm, true
	}
	return 0, false
}

func clearValue(c shaderdemo.Color) gputypes.Color {
	return gputypes.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
