// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webgpu

import (
	"context"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/backend"
)

func init() {
	backend.Register(backend.WebGPU, func() backend.Backend { return New() })
}

// window is the platform window hosting the surface.
type window interface {
	// createSurface creates the presentation surface of the window.
	createSurface(instance *wgpu.Instance) (*wgpu.Surface, error)
	// size returns the drawable size in pixels.
	size() (width, height uint32)
	// run delivers window events to s until the loop exits or ctx is
	// cancelled.
	run(ctx context.Context, s *shaderdemo.Scheduler, cfg shaderdemo.Config) error
	destroy()
}

// Backend opens a window and renders the demo with WebGPU.
type Backend struct{}

// New returns the WebGPU backend.
func New() *Backend { return &Backend{} }

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.WebGPU }

// Run implements backend.Backend. It blocks until the window is closed,
// Escape is pressed, cfg.Frames have been rendered or ctx is cancelled.
func (b *Backend) Run(ctx context.Context, cfg shaderdemo.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	win, err := openWindow(cfg)
	if err != nil {
		return fmt.Errorf("%w: open window: %w", shaderdemo.ErrSurface, err)
	}
	defer win.destroy()

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface, err := win.createSurface(instance)
	if err != nil {
		return fmt.Errorf("%w: %w", shaderdemo.ErrSurface, err)
	}
	defer surface.Release()

	r, err := NewRenderer(instance, surface, cfg)
	if err != nil {
		return err
	}
	if f, ok := r.Format(); ok {
		cfg.Format = f
	}
	if w, h := win.size(); w > 0 && h > 0 {
		cfg = cfg.WithSize(w, h)
	}

	d, err := shaderdemo.New(cfg, r)
	if err != nil {
		r.Destroy()
		return err
	}
	defer d.Close()

	if err := win.run(ctx, shaderdemo.NewScheduler(d, cfg.Frames), cfg); err != nil {
		return err
	}
	stats := d.Stats()
	shaderdemo.Logger().Info("webgpu: run finished", "rendered", stats.Rendered, "dropped", stats.Dropped)
	return nil
}
