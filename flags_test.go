// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"flag"
	"io"
	"testing"
)

func parseFlags(t *testing.T, args ...string) (*Flags, error) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	f := NewFlags(fs)
	return f, fs.Parse(args)
}

func TestFlagsOverrideOnlySetValues(t *testing.T) {
	f, err := parseFlags(t, "-width", "1024", "-variant", "triangle", "-present-mode", "fifo", "-clear", "0.5,0.5,0.5")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	// Values that came from a config file.
	file := DefaultConfig().WithTitle("from file").WithSize(300, 200).WithFrames(10, 30)
	got := f.Apply(file)

	want := file
	want.Width = 1024
	want.Variant = VariantTriangle
	want.PresentMode = PresentModeFifo
	want.ClearColor = Color{R: 0.5, G: 0.5, B: 0.5, A: 1}
	if got != want {
		t.Errorf("Apply() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestFlagsAll(t *testing.T) {
	f, err := parseFlags(t,
		"-title", "t",
		"-height", "90",
		"-backend", "native",
		"-format", "rgba8unorm",
		"-power", "low-power",
		"-element", "canvas-host",
		"-frames", "5",
		"-rate", "24",
		"-snapshot", "out.png",
		"-snapshot-size", "64x32",
		"-shaders", "spv",
	)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	got := f.Apply(DefaultConfig())
	want := DefaultConfig().
		WithTitle("t").
		WithSize(800, 90).
		WithBackend("native").
		WithFormat(FormatRGBA8Unorm).
		WithPowerPreference(PowerPreferenceLowPower).
		WithElementID("canvas-host").
		WithFrames(5, 24).
		WithSnapshot("out.png", 64, 32).
		WithShaderDir("spv")
	if got != want {
		t.Errorf("Apply() =\n%+v\nwant\n%+v", got, want)
	}
}

func TestFlagsNoneSet(t *testing.T) {
	f, err := parseFlags(t)
	if err != nil {
		t.Fatal(err)
	}
	cfg := DefaultConfig().WithTitle("kept")
	if got := f.Apply(cfg); got != cfg {
		t.Errorf("Apply() with no flags changed the config: %+v", got)
	}
}

func TestFlagsErrors(t *testing.T) {
	tests := [][]string{
		{"-variant", "square"},
		{"-width", "-1"},
		{"-format", "r8"},
		{"-clear", "red"},
		{"-snapshot-size", "64"},
		{"-snapshot-size", "ax2"},
		{"-present-mode", "vsync"},
	}
	for _, args := range tests {
		if _, err := parseFlags(t, args...); err == nil {
			t.Errorf("Parse(%v) succeeded, want error", args)
		}
	}
}

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("640X480")
	if err != nil || w != 640 || h != 480 {
		t.Errorf("parseSize(640X480) = %d, %d, %v", w, h, err)
	}
}
