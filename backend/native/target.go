// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// copyPitchAlignment is the row alignment required by texture to buffer
// copies.
const copyPitchAlignment = 256

// target is the offscreen presentation surface: a colour texture the
// pipeline renders into, plus a staging buffer for reading frames back.
type target struct {
	width, height uint32
	format        gputypes.TextureFormat

	tex     hal.Texture
	view    hal.TextureView
	staging hal.Buffer
}

// alignedBytesPerRow returns the padded row pitch of a readback.
func alignedBytesPerRow(width uint32) uint32 {
	return (width*4 + copyPitchAlignment - 1) &^ (copyPitchAlignment - 1)
}

// create allocates the texture, its view and, when readback is set, the
// staging buffer. Previously allocated resources must be destroyed first.
func (t *target) create(device hal.Device, width, height uint32, format gputypes.TextureFormat, readback bool) error {
	size := hal.Extent3D{Width: width, Height: height, DepthOrArrayLayers: 1}

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "shaderdemo_surface",
		Size:          size,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        format,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageCopySrc,
	})
	if err != nil {
		return fmt.Errorf("create surface texture: %w", err)
	}
	t.tex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "shaderdemo_surface_view",
	})
	if err != nil {
		t.destroy(device)
		return fmt.Errorf("create surface view: %w", err)
	}
	t.view = view

	if readback {
		staging, err := device.CreateBuffer(&hal.BufferDescriptor{
			Label: "shaderdemo_staging",
			Size:  uint64(alignedBytesPerRow(width)) * uint64(height),
			Usage: gputypes.BufferUsageMapRead | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			t.destroy(device)
			return fmt.Errorf("create staging buffer: %w", err)
		}
		t.staging = staging
	}

	t.width, t.height, t.format = width, height, format
	return nil
}

func (t *target) ready() bool { return t.view != nil }

func (t *target) destroy(device hal.Device) {
	if t.staging != nil {
		device.DestroyBuffer(t.staging)
		t.staging = nil
	}
	if t.view != nil {
		device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		device.DestroyTexture(t.tex)
		t.tex = nil
	}
	t.width, t.height = 0, 0
}
