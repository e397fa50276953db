// Package shaderdemo is a minimal harness for full-screen shader demos.
//
// # Overview
//
// A demo opens a window (or a browser canvas), acquires a GPU device,
// builds one render pipeline from a vertex and a fragment shader, and
// draws it every frame. Two variants exist:
//
//   - [VariantTriangle] draws a single triangle and redraws only when the
//     window system asks for it.
//   - [VariantAnimated] draws a full-screen quad and uploads an
//     elapsed-time uniform every frame, redrawing continuously.
//
// Geometry is generated in the vertex shader from the vertex index, so no
// vertex buffers are involved.
//
// # Quick Start
//
//	import (
//	    "github.com/gogpu/shaderdemo"
//	    "github.com/gogpu/shaderdemo/backend"
//	    _ "github.com/gogpu/shaderdemo/backend/webgpu"
//	)
//
//	cfg := shaderdemo.DefaultConfig().WithVariant(shaderdemo.VariantAnimated)
//	b, err := backend.Default()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if err := b.Run(ctx, cfg); err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// The root package holds everything that does not touch a GPU API:
//   - [Config]: settings, loadable from TOML or YAML
//   - [Demo]: per-frame logic over a [FrameRenderer]
//   - [Loop]: event dispatch (resize, close, keys, redraw scheduling)
//   - [Scheduler]: a [Window] for hosts that poll instead of scheduling
//     redraws themselves
//   - [Flags]: command-line overrides for [Config]
//
// Backends under backend/ implement [FrameRenderer] and drive the loop:
//   - backend/webgpu: wgpu-native on the desktop (GLFW window) and the
//     browser WebGPU API under js/wasm
//   - backend/native: Pure Go HAL from gogpu/wgpu, rendering offscreen
//
// # Logging
//
// shaderdemo is silent by default. See [SetLogger]. Backends read the
// shared logger through [Logger] on every call, so a logger set while a
// demo runs takes effect immediately.
package shaderdemo
