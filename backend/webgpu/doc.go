// Package webgpu runs the demo on WebGPU through github.com/cogentcore/webgpu.
//
// On the desktop the surface belongs to a GLFW window and events are
// polled continuously. Built for js/wasm, the surface is a canvas appended
// to the DOM element named by Config.ElementID and frames are driven by
// requestAnimationFrame.
//
// The backend registers itself as "webgpu" when imported:
//
//	import _ "github.com/gogpu/shaderdemo/backend/webgpu"
//
// Shaders are handed to the driver as WGSL, so the SPIR-V blobs produced
// by cmd/shaderc are not used here.
package webgpu
