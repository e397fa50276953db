// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package webgpu

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/internal/caps"
	"github.com/gogpu/shaderdemo/shader"
)

// Renderer implements shaderdemo.FrameRenderer on a WebGPU surface.
type Renderer struct {
	surface *wgpu.Surface
	adapter *wgpu.Adapter
	device  *wgpu.Device
	queue   *wgpu.Queue

	surfaceCaps wgpu.SurfaceCapabilities

	variant shaderdemo.Variant
	clear   wgpu.Color

	vs, fs     *wgpu.ShaderModule
	bindLayout *wgpu.BindGroupLayout
	pipeLayout *wgpu.PipelineLayout
	pipeline   *wgpu.RenderPipeline
	format     wgpu.TextureFormat

	uniformBuf *wgpu.Buffer
	bindGroup  *wgpu.BindGroup

	configured bool
	frame      *frame
}

type frame struct {
	r       *Renderer
	texture *wgpu.Texture
	view    *wgpu.TextureView
	drawn   bool
	retired bool
}

// Discard releases the surface texture without presenting it.
func (f *frame) Discard() { f.release() }

func (f *frame) release() {
	if f.retired {
		return
	}
	if f.view != nil {
		f.view.Release()
		f.view = nil
	}
	if f.texture != nil {
		f.texture.Release()
		f.texture = nil
	}
	f.retired = true
	if f.r.frame == f {
		f.r.frame = nil
	}
}

// NewRenderer requests an adapter compatible with surface and a device,
// negotiates the surface format and builds the pipeline of cfg.Variant.
// The surface is configured by the first Configure call.
func NewRenderer(instance *wgpu.Instance, surface *wgpu.Surface, cfg shaderdemo.Config) (*Renderer, error) {
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   powerPreference(cfg.PowerPreference),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shaderdemo.ErrNoAdapter, err)
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{Label: "shaderdemo"})
	if err != nil {
		adapter.Release()
		return nil, fmt.Errorf("%w: %w", shaderdemo.ErrDeviceCreation, err)
	}

	r := &Renderer{
		surface:     surface,
		adapter:     adapter,
		device:      device,
		queue:       device.GetQueue(),
		surfaceCaps: surface.GetCapabilities(adapter),
		variant:     cfg.Variant,
		clear:       clearValue(cfg.ClearColor),
	}

	format, ok := caps.Choose(textureFormat(cfg.Format), r.surfaceCaps.Formats)
	if !ok {
		shaderdemo.Logger().Warn("webgpu: surface format not supported, using preferred format",
			"requested", cfg.Format, "using", format)
	}

	if err := r.createShaders(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createLayout(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createPipeline(format); err != nil {
		r.Destroy()
		return nil, err
	}
	shaderdemo.Logger().Info("webgpu: pipeline created", "variant", cfg.Variant, "format", format)
	return r, nil
}

// Format returns the negotiated surface format.
func (r *Renderer) Format() (shaderdemo.Format, bool) { return surfaceFormat(r.format) }

func (r *Renderer) createShaders() error {
	for _, stage := range shader.Stages {
		src, err := shader.WGSL(r.variant, stage)
		if err != nil {
			return err
		}
		m, err := r.device.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
			Label:          shader.FileName(r.variant, stage),
			WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: src},
		})
		if err != nil {
			return fmt.Errorf("%w: %s module: %w", shaderdemo.ErrShader, stage, err)
		}
		if stage == shader.Vertex {
			r.vs = m
		} else {
			r.fs = m
		}
	}
	return nil
}

func (r *Renderer) createLayout() error {
	var groups []*wgpu.BindGroupLayout

	if r.variant.Animated() {
		bindLayout, err := r.device.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
			Label: "uniform_bind_layout",
			Entries: []wgpu.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:           wgpu.BufferBindingTypeUniform,
					MinBindingSize: shaderdemo.UniformsSize,
				},
			}},
		})
		if err != nil {
			return fmt.Errorf("create bind group layout: %w", err)
		}
		r.bindLayout = bindLayout
		groups = append(groups, bindLayout)

		buf, err := r.device.CreateBuffer(&wgpu.BufferDescriptor{
			Label: "uniform_buffer",
			Size:  shaderdemo.UniformsSize,
			Usage: wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create uniform buffer: %w", err)
		}
		r.uniformBuf = buf

		bg, err := r.device.CreateBindGroup(&wgpu.BindGroupDescriptor{
			Label:  "uniform_bind_group",
			Layout: bindLayout,
			Entries: []wgpu.BindGroupEntry{
				{Binding: 0, Buffer: buf, Offset: 0, Size: shaderdemo.UniformsSize},
			},
		})
		if err != nil {
			return fmt.Errorf("create bind group: %w", err)
		}
		r.bindGroup = bg
	}

	pipeLayout, err := r.device.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "shaderdemo_pipe_layout",
		BindGroupLayouts: groups,
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout
	return nil
}

func (r *Renderer) createPipeline(format wgpu.TextureFormat) error {
	pipeline, err := r.device.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  r.variant.String() + "_pipeline",
		Layout: r.pipeLayout,
		Vertex: wgpu.VertexState{
			Module:     r.vs,
			EntryPoint: shader.EntryPoint,
		},
		Fragment: &wgpu.FragmentState{
			Module:     r.fs,
			EntryPoint: shader.EntryPoint,
			Targets: []wgpu.ColorTargetState{{
				Format:    format,
				WriteMask: wgpu.ColorWriteMaskAll,
			}},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  wgpu.PrimitiveTopologyTriangleList,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  wgpu.CullModeNone,
		},
		Multisample: wgpu.MultisampleState{
			Count: 1,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return fmt.Errorf("%w: create render pipeline: %w", shaderdemo.ErrShader, err)
	}
	r.pipeline = pipeline
	r.format = format
	return nil
}

// Configure (re)configures the surface. A requested format the surface
// does not support keeps the negotiated one; an unsupported present mode
// falls back to FIFO.
func (r *Renderer) Configure(cfg shaderdemo.SurfaceConfig) error {
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: %dx%d", shaderdemo.ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	if r.frame != nil {
		r.frame.Discard()
	}

	if f := textureFormat(cfg.Format); f != r.format && caps.Contains(r.surfaceCaps.Formats, f) {
		old := r.pipeline
		if err := r.createPipeline(f); err != nil {
			return err
		}
		old.Release()
	}

	mode, ok := caps.ChooseOr(presentMode(cfg.PresentMode), wgpu.PresentModeFifo, r.surfaceCaps.PresentModes)
	if !ok {
		shaderdemo.Logger().Warn("webgpu: present mode not supported, using fifo", "requested", cfg.PresentMode)
	}
	var alpha wgpu.CompositeAlphaMode
	if len(r.surfaceCaps.AlphaModes) > 0 {
		alpha = r.surfaceCaps.AlphaModes[0]
	}

	r.surface.Configure(r.adapter, r.device, &wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      r.format,
		Width:       cfg.Width,
		Height:      cfg.Height,
		PresentMode: mode,
		AlphaMode:   alpha,
	})
	r.configured = true
	shaderdemo.Logger().Debug("webgpu: surface configured", "width", cfg.Width, "height", cfg.Height, "present_mode", cfg.PresentMode)
	return nil
}

// AcquireFrame returns the next surface texture.
func (r *Renderer) AcquireFrame() (shaderdemo.Frame, error) {
	if !r.configured {
		return nil, fmt.Errorf("%w: surface not configured", shaderdemo.ErrFrameUnavailable)
	}
	if r.frame != nil {
		return nil, fmt.Errorf("%w: previous frame not yet presented", shaderdemo.ErrFrameUnavailable)
	}
	tex, err := r.surface.GetCurrentTexture()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shaderdemo.ErrFrameUnavailable, err)
	}
	view, err := tex.CreateView(nil)
	if err != nil {
		tex.Release()
		return nil, fmt.Errorf("%w: create view: %w", shaderdemo.ErrFrameUnavailable, err)
	}
	r.frame = &frame{r: r, texture: tex, view: view}
	return r.frame, nil
}

// WriteUniforms uploads the uniform block.
func (r *Renderer) WriteUniforms(data []byte) error {
	if r.uniformBuf == nil {
		return fmt.Errorf("webgpu: variant %s has no uniforms", r.variant)
	}
	if len(data) != shaderdemo.UniformsSize {
		return fmt.Errorf("webgpu: uniform block is %d bytes, want %d", len(data), shaderdemo.UniformsSize)
	}
	return r.queue.WriteBuffer(r.uniformBuf, 0, data)
}

// Draw encodes one render pass into the frame and submits it.
func (r *Renderer) Draw(sf shaderdemo.Frame, vertexCount uint32) error {
	f, err := r.own(sf)
	if err != nil {
		return err
	}
	if f.drawn {
		return fmt.Errorf("webgpu: frame already drawn")
	}

	encoder, err := r.device.CreateCommandEncoder(nil)
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       f.view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: r.clear,
		}},
	})
	pass.SetPipeline(r.pipeline)
	if r.bindGroup != nil {
		pass.SetBindGroup(0, r.bindGroup, nil)
	}
	pass.Draw(vertexCount, 1, 0, 0)
	pass.End()
	pass.Release()

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return fmt.Errorf("finish encoder: %w", err)
	}
	r.queue.Submit(cmd)
	cmd.Release()
	f.drawn = true
	return nil
}

// Present queues the frame for display.
func (r *Renderer) Present(sf shaderdemo.Frame) error {
	f, err := r.own(sf)
	if err != nil {
		return err
	}
	defer f.release()
	if !f.drawn {
		return fmt.Errorf("webgpu: presenting a frame that was not drawn")
	}
	r.surface.Present()
	return nil
}

func (r *Renderer) own(sf shaderdemo.Frame) (*frame, error) {
	f, ok := sf.(*frame)
	if !ok || f.r != r || f.retired {
		return nil, fmt.Errorf("webgpu: frame does not belong to this renderer")
	}
	return f, nil
}

// Destroy releases the pipeline, the device and the adapter. The surface
// is owned by the window.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.frame != nil {
		r.frame.Discard()
	}
	if r.pipeline != nil {
		r.pipeline.Release()
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.pipeLayout.Release()
		r.pipeLayout = nil
	}
	if r.bindGroup != nil {
		r.bindGroup.Release()
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.uniformBuf.Release()
		r.uniformBuf = nil
	}
	if r.bindLayout != nil {
		r.bindLayout.Release()
		r.bindLayout = nil
	}
	if r.fs != nil {
		r.fs.Release()
		r.fs = nil
	}
	if r.vs != nil {
		r.vs.Release()
		r.vs = nil
	}
	r.queue.Release()
	r.device.Release()
	r.adapter.Release()
	r.device = nil
}

var _ shaderdemo.FrameRenderer = (*Renderer)(nil)
