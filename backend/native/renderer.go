// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package native

import (
	"fmt"
	"image"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/shader"
)

// fenceTimeout bounds the wait for a submitted frame.
const fenceTimeout = 5 * time.Second

// RendererOptions configures NewRenderer.
type RendererOptions struct {
	// Readback copies every presented frame to host memory so it can be
	// retrieved with Snapshot.
	Readback bool
}

// Renderer implements shaderdemo.FrameRenderer on a HAL device, rendering
// into an offscreen target.
type Renderer struct {
	dev     *Device
	device  hal.Device
	queue   hal.Queue
	variant shaderdemo.Variant
	clear   gputypes.Color
	opts    RendererOptions

	vs, fs     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	pipeLayout hal.PipelineLayout
	pipeline   hal.RenderPipeline
	format     gputypes.TextureFormat

	uniformBuf hal.Buffer
	bindGroup  hal.BindGroup

	target target
	frame  *frame

	snapshot *image.RGBA
}

// frame is the handle returned by AcquireFrame.
type frame struct {
	r       *Renderer
	cmdBuf  hal.CommandBuffer
	fence   hal.Fence
	drawn   bool
	retired bool
}

// Discard waits for any submitted work and releases the frame.
func (f *frame) Discard() {
	if f.retired {
		return
	}
	if f.fence != nil {
		if _, err := f.r.device.Wait(f.fence, 1, fenceTimeout); err != nil {
			shaderdemo.Logger().Warn("native: wait for discarded frame", "err", err)
		}
	}
	f.release()
}

func (f *frame) release() {
	if f.cmdBuf != nil {
		f.r.device.FreeCommandBuffer(f.cmdBuf)
		f.cmdBuf = nil
	}
	if f.fence != nil {
		f.r.device.DestroyFence(f.fence)
		f.fence = nil
	}
	f.retired = true
	if f.r.frame == f {
		f.r.frame = nil
	}
}

// NewRenderer builds the render pipeline of cfg.Variant from set on dev.
// The presentation target is created by the first Configure call.
func NewRenderer(dev *Device, cfg shaderdemo.Config, set *shader.Set, opts RendererOptions) (*Renderer, error) {
	if dev == nil || dev.device == nil {
		return nil, fmt.Errorf("%w: no device", shaderdemo.ErrDeviceCreation)
	}
	if set == nil || set.Variant != cfg.Variant {
		return nil, fmt.Errorf("%w: shader set does not match variant %s", shaderdemo.ErrShader, cfg.Variant)
	}

	r := &Renderer{
		dev:     dev,
		device:  dev.device,
		queue:   dev.queue,
		variant: cfg.Variant,
		clear:   clearValue(cfg.ClearColor),
		opts:    opts,
	}
	if err := r.createShaders(set); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createLayout(); err != nil {
		r.Destroy()
		return nil, err
	}
	if err := r.createPipeline(textureFormat(cfg.Format)); err != nil {
		r.Destroy()
		return nil, err
	}
	shaderdemo.Logger().Info("native: pipeline created", "variant", cfg.Variant, "format", cfg.Format)
	return r, nil
}

func (r *Renderer) createShaders(set *shader.Set) error {
	vs, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  r.variant.String() + "_vert",
		Source: hal.ShaderSource{SPIRV: set.Vertex},
	})
	if err != nil {
		return fmt.Errorf("%w: vertex module: %w", shaderdemo.ErrShader, err)
	}
	r.vs = vs

	fs, err := r.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  r.variant.String() + "_frag",
		Source: hal.ShaderSource{SPIRV: set.Fragment},
	})
	if err != nil {
		return fmt.Errorf("%w: fragment module: %w", shaderdemo.ErrShader, err)
	}
	r.fs = fs
	return nil
}

// createLayout creates the pipeline layout. Only the animated variant has
// a bind group: the uniform block at group 0, binding 0.
func (r *Renderer) createLayout() error {
	var groups []hal.BindGroupLayout

	if r.variant.Animated() {
		bindLayout, err := r.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
			Label: "uniform_bind_layout",
			Entries: []gputypes.BindGroupLayoutEntry{{
				Binding:    0,
				Visibility: gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
				Buffer:     &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform},
			}},
		})
		if err != nil {
			return fmt.Errorf("create bind group layout: %w", err)
		}
		r.bindLayout = bindLayout
		groups = append(groups, bindLayout)

		buf, err := r.device.CreateBuffer(&hal.BufferDescriptor{
			Label: "uniform_buffer",
			Size:  shaderdemo.UniformsSize,
			Usage: gputypes.BufferUsageUniform | gputypes.BufferUsageCopyDst,
		})
		if err != nil {
			return fmt.Errorf("create uniform buffer: %w", err)
		}
		r.uniformBuf = buf

		bg, err := r.device.CreateBindGroup(&hal.BindGroupDescriptor{
			Label:  "uniform_bind_group",
			Layout: bindLayout,
			Entries: []gputypes.BindGroupEntry{
				{Binding: 0, Resource: gputypes.BufferBinding{Buffer: buf.NativeHandle(), Offset: 0, Size: shaderdemo.UniformsSize}},
			},
		})
		if err != nil {
			return fmt.Errorf("create bind group: %w", err)
		}
		r.bindGroup = bg
	}

	pipeLayout, err := r.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            "shaderdemo_pipe_layout",
		BindGroupLayouts: groups,
	})
	if err != nil {
		return fmt.Errorf("create pipeline layout: %w", err)
	}
	r.pipeLayout = pipeLayout
	return nil
}

func (r *Renderer) createPipeline(format gputypes.TextureFormat) error {
	pipeline, err := r.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  r.variant.String() + "_pipeline",
		Layout: r.pipeLayout,
		Vertex: hal.VertexState{
			Module:     r.vs,
			EntryPoint: shader.EntryPoint,
		},
		Fragment: &hal.FragmentState{
			Module:     r.fs,
			EntryPoint: shader.EntryPoint,
			Targets: []gputypes.ColorTargetState{
				{
					Format:    format,
					WriteMask: gputypes.ColorWriteMaskAll,
				},
			},
		},
		Primitive: gputypes.PrimitiveState{
			Topology: gputypes.PrimitiveTopologyTriangleList,
			CullMode: gputypes.CullModeNone,
		},
		Multisample: gputypes.MultisampleState{
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

// Configure recreates the offscreen target. The pipeline is rebuilt when
// the format changes. Present modes have no meaning offscreen.
func (r *Renderer) Configure(cfg shaderdemo.SurfaceConfig) error {
	if r.device == nil {
		return fmt.Errorf("%w: renderer destroyed", shaderdemo.ErrSurface)
	}
	if cfg.Width == 0 || cfg.Height == 0 {
		return fmt.Errorf("%w: %dx%d", shaderdemo.ErrInvalidDimensions, cfg.Width, cfg.Height)
	}
	if r.frame != nil {
		r.frame.Discard()
	}

	format := textureFormat(cfg.Format)
	if format != r.format {
		if r.pipeline != nil {
			r.device.DestroyRenderPipeline(r.pipeline)
			r.pipeline = nil
		}
		if err := r.createPipeline(format); err != nil {
			return err
		}
	}

	r.target.destroy(r.device)
	if err := r.target.create(r.device, cfg.Width, cfg.Height, format, r.opts.Readback); err != nil {
		return fmt.Errorf("%w: %w", shaderdemo.ErrSurface, err)
	}
	shaderdemo.Logger().Debug("native: target configured", "width", cfg.Width, "height", cfg.Height, "format", cfg.Format)
	return nil
}

// AcquireFrame returns the target for the next frame. Only one frame can
// be in flight.
func (r *Renderer) AcquireFrame() (shaderdemo.Frame, error) {
	if !r.target.ready() {
		return nil, fmt.Errorf("%w: target not configured", shaderdemo.ErrFrameUnavailable)
	}
	if r.frame != nil {
		return nil, fmt.Errorf("%w: previous frame still in flight", shaderdemo.ErrFrameUnavailable)
	}
	r.frame = &frame{r: r}
	return r.frame, nil
}

// WriteUniforms uploads the uniform block.
func (r *Renderer) WriteUniforms(data []byte) error {
	if r.uniformBuf == nil {
		return fmt.Errorf("native: variant %s has no uniforms", r.variant)
	}
	if len(data) != shaderdemo.UniformsSize {
		return fmt.Errorf("native: uniform block is %d bytes, want %d", len(data), shaderdemo.UniformsSize)
	}
	r.queue.WriteBuffer(r.uniformBuf, 0, data)
	return nil
}

// Draw encodes one render pass clearing the target and drawing
// vertexCount vertices, then submits it.
func (r *Renderer) Draw(sf shaderdemo.Frame, vertexCount uint32) error {
	f, err := r.own(sf)
	if err != nil {
		return err
	}
	if f.drawn {
		return fmt.Errorf("native: frame already drawn")
	}

	encoder, err := r.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "shaderdemo_encoder",
	})
	if err != nil {
		return fmt.Errorf("create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("shaderdemo_frame"); err != nil {
		return fmt.Errorf("begin encoding: %w", err)
	}

	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label: "shaderdemo_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{{
			View:       r.target.view,
			LoadOp:     gputypes.LoadOpClear,
			StoreOp:    gputypes.StoreOpStore,
			ClearValue: r.clear,
		}},
	})
	rp.SetPipeline(r.pipeline)
	if r.bindGroup != nil {
		rp.SetBindGroup(0, r.bindGroup, nil)
	}
	rp.Draw(vertexCount, 1, 0, 0)
	rp.End()

	if r.target.staging != nil {
		r.encodeReadback(encoder)
	}

	cmdBuf, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("end encoding: %w", err)
	}
	f.cmdBuf = cmdBuf

	fence, err := r.device.CreateFence()
	if err != nil {
		return fmt.Errorf("create fence: %w", err)
	}
	f.fence = fence

	if err := r.queue.Submit([]hal.CommandBuffer{cmdBuf}, fence, 1); err != nil {
		// Nothing will signal the fence.
		r.device.DestroyFence(fence)
		f.fence = nil
		return fmt.Errorf("submit: %w", err)
	}
	f.drawn = true
	return nil
}

// encodeReadback copies the target to the staging buffer.
func (r *Renderer) encodeReadback(encoder hal.CommandEncoder) {
	w, h := r.target.width, r.target.height

	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageRenderAttachment,
			NewUsage: gputypes.TextureUsageCopySrc,
		},
	}})
	encoder.CopyTextureToBuffer(r.target.tex, r.target.staging, []hal.BufferTextureCopy{{
		BufferLayout: hal.ImageDataLayout{Offset: 0, BytesPerRow: alignedBytesPerRow(w), RowsPerImage: h},
		TextureBase:  hal.ImageCopyTexture{Texture: r.target.tex, MipLevel: 0},
		Size:         hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
	}})
	encoder.TransitionTextures([]hal.TextureBarrier{{
		Texture: r.target.tex,
		Usage: hal.TextureUsageTransition{
			OldUsage: gputypes.TextureUsageCopySrc,
			NewUsage: gputypes.TextureUsageRenderAttachment,
		},
	}})
}

// Present waits for the frame to finish and, with readback enabled,
// stores its pixels for Snapshot.
func (r *Renderer) Present(sf shaderdemo.Frame) error {
	f, err := r.own(sf)
	if err != nil {
		return err
	}
	defer f.release()

	if !f.drawn {
		return fmt.Errorf("native: presenting a frame that was not drawn")
	}
	ok, err := r.device.Wait(f.fence, 1, fenceTimeout)
	if err != nil || !ok {
		return fmt.Errorf("wait for GPU: ok=%v err=%w", ok, err)
	}

	if r.target.staging == nil {
		return nil
	}
	w, h := r.target.width, r.target.height
	pitch := alignedBytesPerRow(w)
	readback := make([]byte, uint64(pitch)*uint64(h))
	if err := r.queue.ReadBuffer(r.target.staging, 0, readback); err != nil {
		return fmt.Errorf("readback: %w", err)
	}
	format, _ := surfaceFormat(r.target.format)
	r.snapshot = toRGBA(readback, w, h, pitch, format.BGR())
	return nil
}

func (r *Renderer) own(sf shaderdemo.Frame) (*frame, error) {
	f, ok := sf.(*frame)
	if !ok || f.r != r || f.retired {
		return nil, fmt.Errorf("native: frame does not belong to this renderer")
	}
	return f, nil
}

// Snapshot returns the last presented frame, or nil when readback is
// disabled or nothing has been presented yet.
func (r *Renderer) Snapshot() *image.RGBA { return r.snapshot }

// Destroy releases all GPU resources. The device is left open.
func (r *Renderer) Destroy() {
	if r.device == nil {
		return
	}
	if r.frame != nil {
		r.frame.Discard()
	}
	r.target.destroy(r.device)
	if r.pipeline != nil {
		r.device.DestroyRenderPipeline(r.pipeline)
		r.pipeline = nil
	}
	if r.pipeLayout != nil {
		r.device.DestroyPipelineLayout(r.pipeLayout)
		r.pipeLayout = nil
	}
	if r.bindGroup != nil {
		r.device.DestroyBindGroup(r.bindGroup)
		r.bindGroup = nil
	}
	if r.uniformBuf != nil {
		r.device.DestroyBuffer(r.uniformBuf)
		r.uniformBuf = nil
	}
	if r.bindLayout != nil {
		r.device.DestroyBindGroupLayout(r.bindLayout)
		r.bindLayout = nil
	}
	if r.fs != nil {
		r.device.DestroyShaderModule(r.fs)
		r.fs = nil
	}
	if r.vs != nil {
		r.device.DestroyShaderModule(r.vs)
		r.vs = nil
	}
	r.device = nil
}

// toRGBA strips the row padding of a readback and swaps BGRA to RGBA when
// needed.
func toRGBA(data []byte, w, h, pitch uint32, bgr bool) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, int(w), int(h)))
	row := int(w) * 4
	for y := 0; y < int(h); y++ {
		src := data[y*int(pitch) : y*int(pitch)+row]
		dst := img.Pix[y*img.Stride : y*img.Stride+row]
		copy(dst, src)
		if bgr {
			for i := 0; i < row; i += 4 {
				dst[i], dst[i+2] = dst[i+2], dst[i]
			}
		}
	}
	return img
}

var _ shaderdemo.FrameRenderer = (*Renderer)(nil)
