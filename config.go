// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Color is a linear RGBA colour with components in [0, 1].
type Color struct {
	R float64 `toml:"r" yaml:"r"`
	G float64 `toml:"g" yaml:"g"`
	B float64 `toml:"b" yaml:"b"`
	A float64 `toml:"a" yaml:"a"`
}

// Black is opaque black, the default clear colour.
var Black = Color{A: 1}

// ParseColor parses "r,g,b" or "r,g,b,a" with components in [0, 1].
// Alpha defaults to 1.
func ParseColor(s string) (Color, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 && len(parts) != 4 {
		return Color{}, fmt.Errorf("%w: colour %q: want r,g,b[,a]", ErrInvalidConfig, s)
	}
	v := [4]float64{3: 1}
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, fmt.Errorf("%w: colour %q: %v", ErrInvalidConfig, s, err)
		}
		v[i] = f
	}
	c := Color{R: v[0], G: v[1], B: v[2], A: v[3]}
	if err := c.validate(); err != nil {
		return Color{}, err
	}
	return c, nil
}

func (c Color) String() string {
	return strconv.FormatFloat(c.R, 'g', -1, 64) + "," +
		strconv.FormatFloat(c.G, 'g', -1, 64) + "," +
		strconv.FormatFloat(c.B, 'g', -1, 64) + "," +
		strconv.FormatFloat(c.A, 'g', -1, 64)
}

func (c Color) validate() error {
	for _, f := range [...]float64{c.R, c.G, c.B, c.A} {
		if f < 0 || f > 1 {
			return fmt.Errorf("%w: colour component %v out of [0, 1]", ErrInvalidConfig, f)
		}
	}
	return nil
}

// Config holds everything a backend needs to run the demo.
//
// Zero values are not meaningful; start from DefaultConfig and use the
// With methods or LoadConfig.
type Config struct {
	// Title is the window title.
	Title string `toml:"title" yaml:"title"`

	// Width and Height are the initial surface size in pixels.
	Width  uint32 `toml:"width" yaml:"width"`
	Height uint32 `toml:"height" yaml:"height"`

	Variant Variant `toml:"variant" yaml:"variant"`

	// Backend names a registered backend. Empty selects the default.
	Backend string `toml:"backend" yaml:"backend"`

	Format          Format          `toml:"format" yaml:"format"`
	PresentMode     PresentMode     `toml:"present_mode" yaml:"present_mode"`
	PowerPreference PowerPreference `toml:"power_preference" yaml:"power_preference"`
	ClearColor      Color           `toml:"clear_color" yaml:"clear_color"`

	// ElementID is the DOM element the canvas is appended to (web only).
	ElementID string `toml:"element_id" yaml:"element_id"`

	// Frames limits the number of frames rendered by headless backends.
	// Zero runs until the context is cancelled.
	Frames int `toml:"frames" yaml:"frames"`

	// FrameRate caps headless rendering, in frames per second.
	// Zero renders as fast as possible.
	FrameRate float64 `toml:"frame_rate" yaml:"frame_rate"`

	// SnapshotPath, when set, receives the last rendered frame of a
	// headless run. The extension selects PNG, BMP or TIFF.
	SnapshotPath string `toml:"snapshot_path" yaml:"snapshot_path"`

	// SnapshotWidth and SnapshotHeight scale the snapshot. Zero keeps the
	// surface size.
	SnapshotWidth  uint32 `toml:"snapshot_width" yaml:"snapshot_width"`
	SnapshotHeight uint32 `toml:"snapshot_height" yaml:"snapshot_height"`

	// ShaderDir holds precompiled SPIR-V blobs named <variant>.vert.spv and
	// <variant>.frag.spv. Empty uses the embedded shaders.
	ShaderDir string `toml:"shader_dir" yaml:"shader_dir"`
}

// DefaultConfig returns the configuration used when nothing is specified:
// the animated variant at 800x600, mailbox presentation, opaque black
// clear colour.
func DefaultConfig() Config {
	return Config{
		Title:       "shaderdemo",
		Width:       800,
		Height:      600,
		Variant:     VariantAnimated,
		Format:      DefaultFormat,
		PresentMode: PresentModeMailbox,
		ClearColor:  Black,
		ElementID:   "shaderdemo",
	}
}

// WithTitle sets the window title.
func (c Config) WithTitle(title string) Config {
	c.Title = title
	return c
}

// WithSize sets the initial surface size in pixels.
func (c Config) WithSize(width, height uint32) Config {
	c.Width, c.Height = width, height
	return c
}

// WithVariant selects the demo variant.
func (c Config) WithVariant(v Variant) Config {
	c.Variant = v
	return c
}

// WithBackend selects a registered backend by name. Empty means the
// default backend.
func (c Config) WithBackend(name string) Config {
	c.Backend = name
	return c
}

// WithFormat sets the requested surface pixel format.
func (c Config) WithFormat(f Format) Config {
	c.Format = f
	return c
}

// WithPresentMode sets the requested present mode.
func (c Config) WithPresentMode(m PresentMode) Config {
	c.PresentMode = m
	return c
}

// WithClearColor sets the colour the render pass clears to.
func (c Config) WithClearColor(col Color) Config {
	c.ClearColor = col
	return c
}

// WithElementID sets the id of the DOM element the web canvas is
// appended to.
func (c Config) WithElementID(id string) Config {
	c.ElementID = id
	return c
}

// WithShaderDir loads precompiled SPIR-V blobs from dir instead of
// compiling the embedded WGSL.
func (c Config) WithShaderDir(dir string) Config {
	c.ShaderDir = dir
	return c
}

// WithPowerPreference sets the adapter power preference.
func (c Config) WithPowerPreference(p PowerPreference) Config {
	c.PowerPreference = p
	return c
}

// WithFrames limits a headless run to n frames rendered at rate frames
// per second (0 for unthrottled).
func (c Config) WithFrames(n int, rate float64) Config {
	c.Frames, c.FrameRate = n, rate
	return c
}

// WithSnapshot writes the last headless frame to path, scaled to
// width x height when both are non-zero.
func (c Config) WithSnapshot(path string, width, height uint32) Config {
	c.SnapshotPath = path
	c.SnapshotWidth, c.SnapshotHeight = width, height
	return c
}

// FrameInterval returns the target time between headless frames.
func (c Config) FrameInterval() time.Duration {
	if c.FrameRate <= 0 {
		return 0
	}
	return time.Duration(float64(time.Second) / c.FrameRate)
}

// Validate reports the first problem found in c.
func (c Config) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, c.Width, c.Height)
	}
	if !c.Variant.Valid() {
		return fmt.Errorf("%w: unknown variant %d", ErrInvalidConfig, c.Variant)
	}
	if int(c.Format) >= len(formatNames) {
		return fmt.Errorf("%w: unknown format %d", ErrInvalidConfig, c.Format)
	}
	if int(c.PresentMode) >= len(presentModeNames) {
		return fmt.Errorf("%w: unknown present mode %d", ErrInvalidConfig, c.PresentMode)
	}
	if int(c.PowerPreference) >= len(powerPreferenceNames) {
		return fmt.Errorf("%w: unknown power preference %d", ErrInvalidConfig, c.PowerPreference)
	}
	if err := c.ClearColor.validate(); err != nil {
		return err
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: negative frame count %d", ErrInvalidConfig, c.Frames)
	}
	if c.FrameRate < 0 {
		return fmt.Errorf("%w: negative frame rate %v", ErrInvalidConfig, c.FrameRate)
	}
	if (c.SnapshotWidth == 0) != (c.SnapshotHeight == 0) {
		return fmt.Errorf("%w: snapshot size %dx%d", ErrInvalidDimensions, c.SnapshotWidth, c.SnapshotHeight)
	}
	return nil
}

// LoadConfig reads a TOML (.toml) or YAML (.yaml, .yml) file over
// DefaultConfig and validates the result. Unknown keys are rejected.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("shaderdemo: load config: %w", err)
	}
	cfg, err := ParseConfig(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("shaderdemo: load config %s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes data in the format named by ext (".toml", ".yaml"
// or ".yml") over DefaultConfig.
func ParseConfig(data []byte, ext string) (Config, error) {
	cfg := DefaultConfig()

	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves the defaults in place.
		if err := dec.Decode(&cfg); err != nil && len(bytes.TrimSpace(data)) > 0 {
			return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	default:
		return Config{}, fmt.Errorf("%w: unsupported config extension %q", ErrInvalidConfig, ext)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
