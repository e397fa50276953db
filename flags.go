// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Flags binds the fields of Config to command-line flags.
//
// Apply copies only the flags that were set on the command line, so
// explicit flags override a config file while unset flags keep the file's
// values.
type Flags struct {
	fs     *flag.FlagSet
	values Config
}

// NewFlags registers the configuration flags on fs with the defaults of
// DefaultConfig.
func NewFlags(fs *flag.FlagSet) *Flags {
	f := &Flags{fs: fs, values: DefaultConfig()}
	v := &f.values

	fs.StringVar(&v.Title, "title", v.Title, "window title")
	fs.Var(uint32Value{&v.Width}, "width", "surface width in pixels")
	fs.Var(uint32Value{&v.Height}, "height", "surface height in pixels")
	fs.TextVar(&v.Variant, "variant", v.Variant, "demo variant: triangle or animated")
	fs.StringVar(&v.Backend, "backend", v.Backend, "backend name (default: best available)")
	fs.TextVar(&v.Format, "format", v.Format, "surface format")
	fs.TextVar(&v.PresentMode, "present-mode", v.PresentMode, "present mode: mailbox, fifo or immediate")
	fs.TextVar(&v.PowerPreference, "power", v.PowerPreference, "adapter power preference: default, low-power or high-performance")
	fs.Func("clear", "clear colour as r,g,b[,a] in [0, 1] (default "+v.ClearColor.String()+")", func(s string) error {
		c, err := ParseColor(s)
		if err != nil {
			return err
		}
		v.ClearColor = c
		return nil
	})
	fs.StringVar(&v.ElementID, "element", v.ElementID, "DOM element id receiving the canvas (web)")
	fs.IntVar(&v.Frames, "frames", v.Frames, "stop after this many frames (0: run until closed)")
	fs.Float64Var(&v.FrameRate, "rate", v.FrameRate, "frame rate cap in frames per second (0: uncapped)")
	fs.StringVar(&v.SnapshotPath, "snapshot", v.SnapshotPath, "write the last frame to this image file (native backend)")
	fs.Func("snapshot-size", "scale the snapshot to WxH", func(s string) error {
		w, h, err := parseSize(s)
		if err != nil {
			return err
		}
		v.SnapshotWidth, v.SnapshotHeight = w, h
		return nil
	})
	fs.StringVar(&v.ShaderDir, "shaders", v.ShaderDir, "directory of precompiled SPIR-V shaders (native backend)")
	return f
}

// Apply returns cfg with the flags that were set copied over it.
// Call it after the flag set has been parsed.
func (f *Flags) Apply(cfg Config) Config {
	v := f.values
	f.fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "title":
			cfg.Title = v.Title
		case "width":
			cfg.Width = v.Width
		case "height":
			cfg.Height = v.Height
		case "variant":
			cfg.Variant = v.Variant
		case "backend":
			cfg.Backend = v.Backend
		case "format":
			cfg.Format = v.Format
		case "present-mode":
			cfg.PresentMode = v.PresentMode
		case "power":
			cfg.PowerPreference = v.PowerPreference
		case "clear":
			cfg.ClearColor = v.ClearColor
		case "element":
			cfg.ElementID = v.ElementID
		case "frames":
			cfg.Frames = v.Frames
		case "rate":
			cfg.FrameRate = v.FrameRate
		case "snapshot":
			cfg.SnapshotPath = v.SnapshotPath
		case "snapshot-size":
			cfg.SnapshotWidth, cfg.SnapshotHeight = v.SnapshotWidth, v.SnapshotHeight
		case "shaders":
			cfg.ShaderDir = v.ShaderDir
		}
	})
	return cfg
}

func parseSize(s string) (uint32, uint32, error) {
	ws, hs, ok := strings.Cut(strings.ToLower(s), "x")
	if !ok {
		return 0, 0, fmt.Errorf("size %q is not WxH", s)
	}
	w, err := strconv.ParseUint(strings.TrimSpace(ws), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	h, err := strconv.ParseUint(strings.TrimSpace(hs), 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("size %q: %w", s, err)
	}
	return uint32(w), uint32(h), nil
}

type uint32Value struct{ p *uint32 }

func (u uint32Value) String() string {
	if u.p == nil {
		return "0"
	}
	return strconv.FormatUint(uint64(*u.p), 10)
}

func (u uint32Value) Set(s string) error {
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return err
	}
	*u.p = uint32(n)
	return nil
}
