// Package shader provides the demo shaders.
//
// Each variant has a vertex and a fragment stage written in WGSL and
// embedded in the binary. Both use the entry point "main". The native
// backend consumes SPIR-V, either compiled at startup with naga or
// precompiled by cmd/shaderc and loaded from a directory:
//
//	set, err := shader.For(shaderdemo.VariantAnimated, "")
//
// The webgpu backend passes the WGSL source to the driver directly.
package shader
