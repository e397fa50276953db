// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shader

import (
	"embed"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/naga"

	"github.com/gogpu/shaderdemo"
)

// EntryPoint is the entry point name of every shader stage.
const EntryPoint = "main"

// MagicNumber is the first word of every SPIR-V module.
const MagicNumber uint32 = 0x07230203

// Accepted range of the SPIR-V version word (0x00MMmm00), 1.0 through 1.6.
const (
	MinVersion uint32 = 0x00010000
	MaxVersion uint32 = 0x00010600
)

//go:embed shaders/*.wgsl
var sources embed.FS

// Stage is a programmable pipeline stage.
type Stage uint8

const (
	Vertex Stage = iota
	Fragment
)

func (s Stage) String() string {
	if s == Fragment {
		return "frag"
	}
	return "vert"
}

// Stages lists the stages of a demo pipeline in creation order.
var Stages = [...]Stage{Vertex, Fragment}

// FileName returns the base name of the SPIR-V blob for a variant stage,
// for example "animated.frag.spv".
func FileName(v shaderdemo.Variant, s Stage) string {
	return v.String() + "." + s.String() + ".spv"
}

// WGSL returns the embedded WGSL source of a variant stage.
func WGSL(v shaderdemo.Variant, s Stage) (string, error) {
	if !v.Valid() {
		return "", fmt.Errorf("%w: unknown variant %d", shaderdemo.ErrShader, v)
	}
	b, err := sources.ReadFile("shaders/" + v.String() + "." + s.String() + ".wgsl")
	if err != nil {
		return "", fmt.Errorf("%w: %s %s: %w", shaderdemo.ErrShader, v, s, err)
	}
	return string(b), nil
}

// Set holds the SPIR-V code of both stages of one variant.
type Set struct {
	Variant  shaderdemo.Variant
	Vertex   []uint32
	Fragment []uint32
}

// Code returns the words of stage s.
func (set *Set) Code(s Stage) []uint32 {
	if s == Fragment {
		return set.Fragment
	}
	return set.Vertex
}

// Compile compiles the embedded WGSL of variant v to SPIR-V.
func Compile(v shaderdemo.Variant) (*Set, error) {
	return CompileWithOptions(v, naga.DefaultOptions())
}

// CompileWithOptions is Compile with explicit naga options.
func CompileWithOptions(v shaderdemo.Variant, opts naga.CompileOptions) (*Set, error) {
	set := &Set{Variant: v}
	for _, s := range Stages {
		blob, err := CompileStage(v, s, opts)
		if err != nil {
			return nil, err
		}
		words, err := Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("%s %s: %w", v, s, err)
		}
		if s == Vertex {
			set.Vertex = words
		} else {
			set.Fragment = words
		}
	}
	shaderdemo.Logger().Debug("shader: compiled", "variant", v,
		"vertex_words", len(set.Vertex), "fragment_words", len(set.Fragment))
	return set, nil
}

// CompileStage compiles one embedded stage and returns the SPIR-V blob.
func CompileStage(v shaderdemo.Variant, s Stage, opts naga.CompileOptions) ([]byte, error) {
	src, err := WGSL(v, s)
	if err != nil {
		return nil, err
	}
	blob, err := naga.CompileWithOptions(src, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: compile %s %s: %w", shaderdemo.ErrShader, v, s, err)
	}
	return blob, nil
}

// Decode converts a SPIR-V blob to little-endian words and checks the
// module header: magic number and a version between 1.0 and 1.6.
func Decode(blob []byte) ([]uint32, error) {
	if len(blob) < 20 || len(blob)%4 != 0 {
		return nil, fmt.Errorf("%w: SPIR-V blob of %d bytes", shaderdemo.ErrShader, len(blob))
	}
	words := make([]uint32, len(blob)/4)
	for i := range words {
		words[i] = binary.LittleEndian.Uint32(blob[i*4:])
	}
	if words[0] != MagicNumber {
		return nil, fmt.Errorf("%w: bad SPIR-V magic %#08x", shaderdemo.ErrShader, words[0])
	}
	if v := words[1]; v < MinVersion || v > MaxVersion || v&0xFF0000FF != 0 {
		return nil, fmt.Errorf("%w: unsupported SPIR-V version word %#08x", shaderdemo.ErrShader, v)
	}
	return words, nil
}

// Load reads the precompiled blobs of variant v from dir.
func Load(dir string, v shaderdemo.Variant) (*Set, error) {
	set := &Set{Variant: v}
	for _, s := range Stages {
		path := filepath.Join(dir, FileName(v, s))
		blob, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", shaderdemo.ErrShader, err)
		}
		words, err := Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		if s == Vertex {
			set.Vertex = words
		} else {
			set.Fragment = words
		}
	}
	return set, nil
}

// For returns the shaders of v: loaded from dir when dir is not empty,
// compiled from the embedded WGSL otherwise.
func For(v shaderdemo.Variant, dir string) (*Set, error) {
	if dir != "" {
		return Load(dir, v)
	}
	return Compile(v)
}
