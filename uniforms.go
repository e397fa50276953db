// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"encoding/binary"
	"math"
	"time"
)

// UniformsSize is the size in bytes of the encoded uniform block.
//
// Layout (WGSL uniform address space, little endian):
//
//	offset 0  time       f32
//	offset 4  _pad       f32
//	offset 8  resolution vec2<f32>
const UniformsSize = 16

// Uniforms is the CPU copy of the block read by the animated shaders.
type Uniforms struct {
	Time       float32
	Resolution [2]float32
}

// Advance adds dt to the elapsed time.
func (u *Uniforms) Advance(dt time.Duration) {
	u.Time += float32(dt.Seconds())
}

// SetResolution records the surface size in pixels.
func (u *Uniforms) SetResolution(width, height uint32) {
	u.Resolution = [2]float32{float32(width), float32(height)}
}

// Bytes encodes the block for upload.
func (u *Uniforms) Bytes() []byte {
	return u.AppendBytes(make([]byte, 0, UniformsSize))
}

// AppendBytes appends the encoded block to b.
func (u *Uniforms) AppendBytes(b []byte) []byte {
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(u.Time))
	b = binary.LittleEndian.AppendUint32(b, 0)
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(u.Resolution[0]))
	b = binary.LittleEndian.AppendUint32(b, math.Float32bits(u.Resolution[1]))
	return b
}
