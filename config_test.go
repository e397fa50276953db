// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() = %v", err)
	}
	if cfg.Variant != VariantAnimated {
		t.Errorf("default variant = %v, want animated", cfg.Variant)
	}
	if cfg.PresentMode != PresentModeMailbox {
		t.Errorf("default present mode = %v, want mailbox", cfg.PresentMode)
	}
	if cfg.ClearColor != Black {
		t.Errorf("default clear colour = %v, want opaque black", cfg.ClearColor)
	}
}

func TestConfigWith(t *testing.T) {
	base := DefaultConfig()
	cfg := base.
		WithTitle("demo").
		WithSize(320, 240).
		WithVariant(VariantTriangle).
		WithBackend("native").
		WithFormat(FormatRGBA8Unorm).
		WithPresentMode(PresentModeFifo).
		WithPowerPreference(PowerPreferenceLowPower).
		WithClearColor(Color{R: 0.5, A: 1}).
		WithElementID("canvas-host").
		WithShaderDir("shaders").
		WithFrames(10, 30).
		WithSnapshot("out.png", 64, 48)

	want := Config{
		Title:           "demo",
		Width:           320,
		Height:          240,
		Variant:         VariantTriangle,
		Backend:         "native",
		Format:          FormatRGBA8Unorm,
		PresentMode:     PresentModeFifo,
		PowerPreference: PowerPreferenceLowPower,
		ClearColor:      Color{R: 0.5, A: 1},
		ElementID:       "canvas-host",
		ShaderDir:       "shaders",
		Frames:          10,
		FrameRate:       30,
		SnapshotPath:    "out.png",
		SnapshotWidth:   64,
		SnapshotHeight:  48,
	}
	if cfg != want {
		t.Errorf("With chain = %+v\nwant %+v", cfg, want)
	}
	if base.Title != "shaderdemo" {
		t.Error("With methods must not modify the receiver")
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"zero width", DefaultConfig().WithSize(0, 600), ErrInvalidDimensions},
		{"zero height", DefaultConfig().WithSize(800, 0), ErrInvalidDimensions},
		{"bad variant", DefaultConfig().WithVariant(Variant(9)), ErrInvalidConfig},
		{"bad format", DefaultConfig().WithFormat(Format(9)), ErrInvalidConfig},
		{"bad present mode", DefaultConfig().WithPresentMode(PresentMode(9)), ErrInvalidConfig},
		{"bad power preference", DefaultConfig().WithPowerPreference(PowerPreference(9)), ErrInvalidConfig},
		{"colour out of range", DefaultConfig().WithClearColor(Color{R: 2, A: 1}), ErrInvalidConfig},
		{"negative frames", DefaultConfig().WithFrames(-1, 0), ErrInvalidConfig},
		{"negative rate", DefaultConfig().WithFrames(1, -5), ErrInvalidConfig},
		{"half snapshot size", DefaultConfig().WithSnapshot("x.png", 10, 0), ErrInvalidDimensions},
		{"ok", DefaultConfig().WithSnapshot("x.png", 10, 10), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				if err != nil {
					t.Errorf("Validate() = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestConfigFrameInterval(t *testing.T) {
	if d := DefaultConfig().FrameInterval(); d != 0 {
		t.Errorf("FrameInterval() without rate = %v, want 0", d)
	}
	if d := DefaultConfig().WithFrames(0, 50).FrameInterval(); d != 20*time.Millisecond {
		t.Errorf("FrameInterval() at 50fps = %v, want 20ms", d)
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"0,0,0", Color{A: 1}, false},
		{"0.1, 0.2, 0.3, 0.4", Color{R: 0.1, G: 0.2, B: 0.3, A: 0.4}, false},
		{"1,1", Color{}, true},
		{"a,b,c", Color{}, true},
		{"0,0,1.5", Color{}, true},
	}
	for _, tt := range tests {
		got, err := ParseColor(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseColor(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseColor(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
	}
}

const tomlConfig = `
title = "from toml"
width = 1024
height = 768
variant = "triangle"
backend = "native"
format = "rgba8unorm"
present_mode = "fifo"
power_preference = "high-performance"
frames = 5
snapshot_path = "frame.bmp"

[clear_color]
r = 0.25
a = 1.0
`

const yamlConfig = `
title: from yaml
width: 640
height: 480
variant: animated
present_mode: immediate
clear_color: {r: 0, g: 0.5, b: 0, a: 1}
`

func TestParseConfigTOML(t *testing.T) {
	cfg, err := ParseConfig([]byte(tomlConfig), ".toml")
	if err != nil {
		t.Fatalf("ParseConfig(toml) = %v", err)
	}
	if cfg.Title != "from toml" || cfg.Width != 1024 || cfg.Height != 768 {
		t.Errorf("title/size = %q %dx%d", cfg.Title, cfg.Width, cfg.Height)
	}
	if cfg.Variant != VariantTriangle || cfg.Format != FormatRGBA8Unorm || cfg.PresentMode != PresentModeFifo {
		t.Errorf("enums = %v %v %v", cfg.Variant, cfg.Format, cfg.PresentMode)
	}
	if cfg.PowerPreference != PowerPreferenceHighPerformance {
		t.Errorf("power preference = %v", cfg.PowerPreference)
	}
	if cfg.ClearColor != (Color{R: 0.25, A: 1}) {
		t.Errorf("clear colour = %+v", cfg.ClearColor)
	}
	if cfg.ElementID != "shaderdemo" {
		t.Errorf("unset keys should keep defaults, element id = %q", cfg.ElementID)
	}
}

func TestParseConfigYAML(t *testing.T) {
	cfg, err := ParseConfig([]byte(yamlConfig), ".yml")
	if err != nil {
		t.Fatalf("ParseConfig(yaml) = %v", err)
	}
	if cfg.Title != "from yaml" || cfg.Width != 640 || cfg.Height != 480 {
		t.Errorf("title/size = %q %dx%d", cfg.Title, cfg.Width, cfg.Height)
	}
	if cfg.PresentMode != PresentModeImmediate {
		t.Errorf("present mode = %v", cfg.PresentMode)
	}
	if cfg.ClearColor != (Color{G: 0.5, A: 1}) {
		t.Errorf("clear colour = %+v", cfg.ClearColor)
	}
}

func TestParseConfigEmptyYAML(t *testing.T) {
	cfg, err := ParseConfig(nil, ".yaml")
	if err != nil {
		t.Fatalf("ParseConfig(empty) = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Error("empty document should yield the defaults")
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		ext  string
		want error
	}{
		{"unknown extension", "", ".json", ErrInvalidConfig},
		{"unknown toml key", "colour = 1", ".toml", ErrInvalidConfig},
		{"unknown yaml key", "colour: 1", ".yaml", ErrInvalidConfig},
		{"bad variant", `variant = "square"`, ".toml", ErrInvalidConfig},
		{"zero size", "width: 0", ".yaml", ErrInvalidDimensions},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.data), tt.ext)
			if !errors.Is(err, tt.want) {
				t.Errorf("ParseConfig() = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "demo.toml")
	if err := os.WriteFile(path, []byte(tomlConfig), 0o600); err != nil {
		t.Fatal(err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() = %v", err)
	}
	if cfg.Title != "from toml" {
		t.Errorf("Title = %q", cfg.Title)
	}

	if _, err := LoadConfig(filepath.Join(dir, "missing.toml")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("LoadConfig(missing) = %v, want os.ErrNotExist", err)
	}
}
