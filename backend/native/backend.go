// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"context"
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/backend"
	"github.com/gogpu/shaderdemo/shader"
)

func init() {
	backend.Register(backend.Native, func() backend.Backend { return New() })
}

// Backend renders the demo offscreen with the Pure Go HAL.
//
// Frames are produced as fast as the configured frame rate allows, until
// cfg.Frames have been rendered or the context is cancelled. The triangle
// variant only redraws on request, so a headless run renders it once.
type Backend struct {
	provider gpucontext.DeviceProvider
}

// New returns a backend that opens its own Vulkan device.
func New() *Backend { return &Backend{} }

// NewWithProvider returns a backend that renders on the device of a host
// application. The host keeps ownership of the device.
func NewWithProvider(provider gpucontext.DeviceProvider) *Backend {
	return &Backend{provider: provider}
}

// Name returns the backend identifier.
func (b *Backend) Name() string { return backend.Native }

// Run implements backend.Backend.
func (b *Backend) Run(ctx context.Context, cfg shaderdemo.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	set, err := shader.For(cfg.Variant, cfg.ShaderDir)
	if err != nil {
		return err
	}

	var dev *Device
	if b.provider != nil {
		dev, err = FromProvider(b.provider)
		if f, ok := surfaceFormat(b.provider.SurfaceFormat()); ok && err == nil {
			cfg.Format = f
		}
	} else {
		dev, err = Open(cfg.PowerPreference)
	}
	if err != nil {
		return err
	}
	defer dev.Destroy()

	start := time.Now()
	stats, err := run(ctx, dev, set, cfg)
	if err != nil {
		return err
	}
	shaderdemo.Logger().Info("native: run finished",
		"rendered", stats.Rendered,
		"dropped", stats.Dropped,
		"elapsed", time.Since(start))
	return nil
}

func run(ctx context.Context, dev *Device, set *shader.Set, cfg shaderdemo.Config) (shaderdemo.Stats, error) {
	r, err := NewRenderer(dev, cfg, set, RendererOptions{Readback: cfg.SnapshotPath != ""})
	if err != nil {
		return shaderdemo.Stats{}, err
	}
	d, err := shaderdemo.New(cfg, r)
	if err != nil {
		r.Destroy()
		return shaderdemo.Stats{}, err
	}
	defer d.Close()

	sched := shaderdemo.NewScheduler(d, cfg.Frames)

	var tick <-chan time.Time
	if iv := cfg.FrameInterval(); iv > 0 {
		t := time.NewTicker(iv)
		defer t.Stop()
		tick = t.C
	}

	// Offscreen, nothing but the demo itself asks for frames: once no
	// redraw is pending the run is over.
	for sched.Pending() {
		if tick != nil {
			select {
			case <-ctx.Done():
			case <-tick:
			}
		}
		if ctx.Err() != nil {
			sched.Handle(shaderdemo.CloseRequested{})
			break
		}
		if !sched.Step() {
			break
		}
	}

	if cfg.SnapshotPath != "" {
		img := r.Snapshot()
		if img == nil {
			return d.Stats(), fmt.Errorf("native: no frame presented, snapshot %s not written", cfg.SnapshotPath)
		}
		if err := WriteSnapshot(cfg.SnapshotPath, img, cfg.SnapshotWidth, cfg.SnapshotHeight); err != nil {
			return d.Stats(), err
		}
		shaderdemo.Logger().Info("native: snapshot written", "path", cfg.SnapshotPath)
	}
	return d.Stats(), nil
}
