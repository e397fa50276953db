// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import (
	"errors"
	"fmt"
	"time"
)

// SurfaceConfig describes the presentation surface.
type SurfaceConfig struct {
	Width, Height uint32
	Format        Format
	PresentMode   PresentMode
}

// Frame is a presentable image acquired from the surface. It is owned by
// the FrameRenderer that returned it.
type Frame interface {
	// Discard releases a frame that will not be presented.
	Discard()
}

// FrameRenderer is the GPU side of the demo: a device, a presentation
// surface and a render pipeline built once for the configured variant.
//
// Backends implement FrameRenderer on top of a concrete GPU API.
// Methods are called from the loop goroutine only.
type FrameRenderer interface {
	// Configure discards the presentation surface and recreates it with
	// the given parameters. Width and Height are never zero.
	Configure(SurfaceConfig) error

	// AcquireFrame returns the next presentable frame, or an error wrapping
	// ErrFrameUnavailable when none can be obtained.
	AcquireFrame() (Frame, error)

	// WriteUniforms uploads the uniform block. Only called for variants
	// that use uniforms.
	WriteUniforms(data []byte) error

	// Draw encodes and submits one render pass clearing f and issuing one
	// draw call of vertexCount vertices with no vertex buffers.
	Draw(f Frame, vertexCount uint32) error

	// Present queues f for display. f must not be used afterwards.
	Present(f Frame) error

	// Destroy releases all GPU resources.
	Destroy()
}

// Stats counts frames by outcome.
type Stats struct {
	// Rendered frames were presented.
	Rendered uint64
	// Dropped frames failed during acquisition, upload, drawing or
	// presentation.
	Dropped uint64
	// Skipped frames were not attempted because the surface has zero size.
	Skipped uint64
}

// DemoOption configures a Demo during creation.
type DemoOption func(*demoOptions)

type demoOptions struct {
	now func() time.Time
}

// WithTimeSource replaces time.Now as the source of frame deltas.
func WithTimeSource(now func() time.Time) DemoOption {
	return func(o *demoOptions) {
		o.now = now
	}
}

// Demo owns the per-frame state of one running demo.
type Demo struct {
	cfg      Config
	renderer FrameRenderer
	surface  SurfaceConfig
	uniforms Uniforms
	clock    *Clock
	paused   bool
	closed   bool
	stats    Stats
}

// New validates cfg and configures the presentation surface of r at the
// configured size. The returned Demo owns r.
func New(cfg Config, r FrameRenderer, opts ...DemoOption) (*Demo, error) {
	if r == nil {
		return nil, fmt.Errorf("%w: nil renderer", ErrInvalidConfig)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var o demoOptions
	for _, opt := range opts {
		opt(&o)
	}

	d := &Demo{
		cfg:      cfg,
		renderer: r,
		surface: SurfaceConfig{
			Width:       cfg.Width,
			Height:      cfg.Height,
			Format:      cfg.Format,
			PresentMode: cfg.PresentMode,
		},
	}
	if err := d.configure(); err != nil {
		return nil, err
	}
	d.clock = NewClock(o.now)

	Logger().Info("shaderdemo: demo ready",
		"variant", cfg.Variant,
		"width", cfg.Width,
		"height", cfg.Height,
		"format", cfg.Format,
		"present_mode", cfg.PresentMode)
	return d, nil
}

func (d *Demo) configure() error {
	if err := d.renderer.Configure(d.surface); err != nil {
		if !errors.Is(err, ErrSurface) {
			err = fmt.Errorf("%w: %w", ErrSurface, err)
		}
		return err
	}
	d.uniforms.SetResolution(d.surface.Width, d.surface.Height)
	return nil
}

// Resize stores the new surface size and recreates the presentation
// surface. A zero dimension is stored but the surface is left alone and
// rendering is skipped until a non-zero size arrives. After Close the
// size is stored and the released renderer is not touched.
func (d *Demo) Resize(width, height uint32) error {
	d.surface.Width, d.surface.Height = width, height
	if d.closed {
		return nil
	}
	if width == 0 || height == 0 {
		Logger().Debug("shaderdemo: surface minimised", "width", width, "height", height)
		return nil
	}
	Logger().Debug("shaderdemo: reconfiguring surface", "width", width, "height", height)
	return d.configure()
}

// Size returns the last size passed to New or Resize.
func (d *Demo) Size() (width, height uint32) {
	return d.surface.Width, d.surface.Height
}

// Surface returns the current surface configuration.
func (d *Demo) Surface() SurfaceConfig { return d.surface }

// Config returns the configuration the demo was created with.
func (d *Demo) Config() Config { return d.cfg }

// Render draws one frame. Failures are logged and the frame is dropped;
// Render reports whether a frame was presented.
func (d *Demo) Render() bool {
	if d.closed {
		return false
	}
	if d.surface.Width == 0 || d.surface.Height == 0 {
		d.stats.Skipped++
		return false
	}

	frame, err := d.renderer.AcquireFrame()
	if err != nil {
		Logger().Error("shaderdemo: failed to acquire next frame", "err", err)
		d.stats.Dropped++
		return false
	}

	dt := d.clock.Tick()
	if d.cfg.Variant.Animated() {
		if !d.paused {
			d.uniforms.Advance(dt)
		}
		if err := d.renderer.WriteUniforms(d.uniforms.Bytes()); err != nil {
			d.drop(frame, "upload uniforms", err)
			return false
		}
	}

	if err := d.renderer.Draw(frame, d.cfg.Variant.VertexCount()); err != nil {
		d.drop(frame, "draw", err)
		return false
	}

	if err := d.renderer.Present(frame); err != nil {
		Logger().Error("shaderdemo: frame dropped", "stage", "present", "err", err)
		d.stats.Dropped++
		return false
	}
	d.stats.Rendered++
	return true
}

func (d *Demo) drop(f Frame, stage string, err error) {
	Logger().Error("shaderdemo: frame dropped", "stage", stage, "err", err)
	f.Discard()
	d.stats.Dropped++
}

// TogglePause freezes or resumes the time uniform. The clock keeps
// running while paused, so resuming continues from the frozen time.
// It has no effect on variants without uniforms.
func (d *Demo) TogglePause() {
	if !d.cfg.Variant.Animated() {
		return
	}
	d.paused = !d.paused
	Logger().Info("shaderdemo: pause toggled", "paused", d.paused, "time", d.uniforms.Time)
}

// Paused reports whether the time uniform is frozen.
func (d *Demo) Paused() bool { return d.paused }

// Uniforms returns the current uniform block.
func (d *Demo) Uniforms() Uniforms { return d.uniforms }

// Stats returns frame counters.
func (d *Demo) Stats() Stats { return d.stats }

// Close releases the renderer. It is safe to call more than once.
func (d *Demo) Close() {
	if d.closed {
		return
	}
	d.closed = true
	d.renderer.Destroy()
	Logger().Info("shaderdemo: demo closed",
		"rendered", d.stats.Rendered,
		"dropped", d.stats.Dropped)
}
