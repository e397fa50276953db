// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"fmt"
	"strings"
)

// Variant selects which demo is drawn.
type Variant uint8

const (
	// VariantTriangle draws a single static triangle with no uniforms and
	// redraws only when the window system asks for it.
	VariantTriangle Variant = iota

	// VariantAnimated draws a full-screen quad whose fragment shader is
	// driven by an elapsed-time uniform. It redraws continuously.
	VariantAnimated
)

var variantNames = [...]string{
	VariantTriangle: "triangle",
	VariantAnimated: "animated",
}

// String returns the variant name used in flags and config files.
func (v Variant) String() string {
	if int(v) < len(variantNames) {
		return variantNames[v]
	}
	return fmt.Sprintf("Variant(%d)", v)
}

// ParseVariant parses a variant name. Matching is case-insensitive.
func ParseVariant(s string) (Variant, error) {
	for i, name := range variantNames {
		if strings.EqualFold(s, name) {
			return Variant(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown variant %q", ErrInvalidConfig, s)
}

// VertexCount returns the number of vertices issued by the single draw call.
// Geometry is generated in the vertex shader from the vertex index.
func (v Variant) VertexCount() uint32 {
	if v == VariantAnimated {
		return 6
	}
	return 3
}

// Animated reports whether the variant uses the time uniform and requests
// its own redraws.
func (v Variant) Animated() bool { return v == VariantAnimated }

// Valid reports whether v is a known variant.
func (v Variant) Valid() bool { return int(v) < len(variantNames) }

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	if !v.Valid() {
		return nil, fmt.Errorf("%w: unknown variant %d", ErrInvalidConfig, v)
	}
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(b []byte) error {
	p, err := ParseVariant(string(b))
	if err != nil {
		return err
	}
	*v = p
	return nil
}
