// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"image"

	"github.com/gogpu/gpucontext"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/shader"
)

// Host runs a demo inside an application that owns the window and the GPU
// device, such as a gogpu App. The application forwards its events and
// calls Frame from its draw callback.
//
// Example:
//
//	host, err := native.NewHost(provider, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer host.Close()
//
//	events.OnKeyPress(func(key gpucontext.Key, _ gpucontext.Modifiers) {
//	    host.KeyPress(key)
//	})
//	// in the draw callback:
//	host.Frame()
type Host struct {
	dev      *Device
	renderer *Renderer
	demo     *shaderdemo.Demo
	loop     *shaderdemo.Loop
	redraw   bool
}

// NewHost builds the demo pipeline on the device of provider. The surface
// format follows the provider when it is one the demo can render to.
func NewHost(provider gpucontext.DeviceProvider, cfg shaderdemo.Config) (*Host, error) {
	dev, err := FromProvider(provider)
	if err != nil {
		return nil, err
	}
	if f, ok := surfaceFormat(provider.SurfaceFormat()); ok {
		cfg.Format = f
	}
	set, err := shader.For(cfg.Variant, cfg.ShaderDir)
	if err != nil {
		return nil, err
	}
	r, err := NewRenderer(dev, cfg, set, RendererOptions{Readback: true})
	if err != nil {
		return nil, err
	}
	d, err := shaderdemo.New(cfg, r)
	if err != nil {
		r.Destroy()
		return nil, err
	}
	h := &Host{dev: dev, renderer: r, demo: d, redraw: true}
	h.loop = shaderdemo.NewLoop(d, h)
	return h, nil
}

// RequestRedraw implements shaderdemo.Window.
func (h *Host) RequestRedraw() { h.redraw = true }

// NeedsRedraw reports whether the demo wants another frame. Hosts with
// on-demand rendering use it to decide whether to keep animating.
func (h *Host) NeedsRedraw() bool { return h.redraw && !h.loop.Exited() }

// Frame renders one frame and lets the demo schedule the next one.
// It returns false once the demo has exited.
func (h *Host) Frame() bool {
	h.redraw = false
	h.loop.Handle(shaderdemo.RedrawRequested{})
	return h.loop.Handle(shaderdemo.MainEventsCleared{}) != shaderdemo.ControlFlowExit
}

// Resize forwards a window resize.
func (h *Host) Resize(width, height uint32) {
	h.loop.Handle(shaderdemo.Resized{Width: width, Height: height})
}

// KeyPress forwards a key press. It returns false when the key made the
// demo exit.
func (h *Host) KeyPress(key gpucontext.Key) bool {
	return h.loop.Handle(shaderdemo.KeyboardInput{Key: keyFromContext(key), State: shaderdemo.Pressed}) != shaderdemo.ControlFlowExit
}

// Close forwards a close request.
func (h *Host) Close() {
	h.loop.Handle(shaderdemo.CloseRequested{})
	h.demo.Close()
	h.dev.Destroy()
}

// Demo returns the hosted demo.
func (h *Host) Demo() *shaderdemo.Demo { return h.demo }

// Image returns the last rendered frame for the host to draw.
func (h *Host) Image() *image.RGBA { return h.renderer.Snapshot() }

func keyFromContext(k gpucontext.Key) shaderdemo.Key {
	switch k {
	case gpucontext.KeyEscape:
		return shaderdemo.KeyEscape
	case gpucontext.KeySpace:
		return shaderdemo.KeySpace
	}
	return shaderdemo.KeyUnknown
}
