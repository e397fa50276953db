//go:build js && wasm

// Command webdemo runs the demo in a browser.
//
// It exports a JavaScript function
//
//	shaderdemo(width, height, elementId, variant)
//
// that appends a canvas of the given size to the element and starts the
// WebGPU backend in it. variant is "triangle" or "animated" (default).
// Log output goes to the browser console.
package main

import (
	"context"
	"log/slog"
	"os"
	"syscall/js"

	"github.com/gogpu/shaderdemo"
	"github.com/gogpu/shaderdemo/backend/webgpu"
)

func main() {
	shaderdemo.SetLogger(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo})))

	js.Global().Set("shaderdemo", js.FuncOf(start))
	// Keep the module alive for the exported function.
	select {}
}

func start(_ js.Value, args []js.Value) any {
	cfg := shaderdemo.DefaultConfig()
	if len(args) >= 2 {
		cfg = cfg.WithSize(uint32(args[0].Int()), uint32(args[1].Int()))
	}
	if len(args) >= 3 && args[2].Type() == js.TypeString {
		cfg = cfg.WithElementID(args[2].String())
	}
	if len(args) >= 4 && args[3].Type() == js.TypeString {
		v, err := shaderdemo.ParseVariant(args[3].String())
		if err != nil {
			shaderdemo.Logger().Error("webdemo: bad variant", "err", err)
			return nil
		}
		cfg = cfg.WithVariant(v)
	}

	// Adapter and device requests wait on promises, which cannot happen
	// inside a JavaScript callback.
	go func() {
		if err := webgpu.New().Run(context.Background(), cfg); err != nil {
			shaderdemo.Logger().Error("webdemo: run failed", "err", err)
		}
	}()
	return nil
}
