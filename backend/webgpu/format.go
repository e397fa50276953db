// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webgpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/shaderdemo"
)

func textureFormat(f shaderdemo.Format) wgpu.TextureFormat {
	switch f {
	case shaderdemo.FormatBGRA8Unorm:
		return wgpu.TextureFormatBGRA8Unorm
	case shaderdemo.FormatRGBA8UnormSrgb:
		return wgpu.TextureFormatRGBA8UnormSrgb
	case shaderdemo.FormatRGBA8Unorm:
		return wgpu.TextureFormatRGBA8Unorm
	}
	return wgpu.TextureFormatBGRA8UnormSrgb
}

func presentMode(m shaderdemo.PresentMode) wgpu.PresentMode {
	switch m {
	case shaderdemo.PresentModeFifo:
		return wgpu.PresentModeFifo
	case shaderdemo.PresentModeImmediate:
		return wgpu.PresentModeImmediate
	}
	return wgpu.PresentModeMailbox
}

func powerPreference(p shaderdemo.PowerPreference) wgpu.PowerPreference {
	var pp wgpu.PowerPreference
	switch p {
	case shaderdemo.PowerPreferenceLowPower:
		pp = wgpu.PowerPreferenceLowPower
	case shaderdemo.PowerPreferenceHighPerformance:
		pp = wgpu.PowerPreferenceHighPerformance
	}
	return pp
}

func clearValue(c shaderdemo.Color) wgpu.Color {
	return wgpu.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}

// surfaceFormat maps a surface format back to the demo's formats.
func surfaceFormat(f wgpu.TextureFormat) (shaderdemo.Format, bool) {
	switch f {
	case wgpu.TextureFormatBGRA8UnormSrgb:
		return shaderdemo.FormatBGRA8UnormSrgb, true
	case wgpu.TextureFormatBGRA8Unorm:
		return shaderdemo.FormatBGRA8Unorm, true
	case wgpu.TextureFormatRGBA8UnormSrgb:
		return shaderdemo.FormatRGBA8UnormSrgb, true
	case wgpu.TextureFormatRGBA8Unorm:
		return shaderdemo.FormatRGBA8Unorm, true
	}
	return 0, false
}
