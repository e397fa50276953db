// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build js

package webgpu

import (
	"context"
	"fmt"
	"syscall/js"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/gogpu/shaderdemo"
)

// domKeys maps KeyboardEvent.key values.
var domKeys = map[string]shaderdemo.Key{
	"Escape": shaderdemo.KeyEscape,
	" ":      shaderdemo.KeySpace,
}

type canvasWindow struct {
	parent        js.Value
	canvas        js.Value
	width, height uint32
	events        []shaderdemo.Event
}

func openWindow(cfg shaderdemo.Config) (window, error) {
	parent := js.Global().Get("document").Call("getElementById", cfg.ElementID)
	if parent.IsNull() || parent.IsUndefined() {
		return nil, fmt.Errorf("no element with id %q", cfg.ElementID)
	}
	return &canvasWindow{parent: parent, width: cfg.Width, height: cfg.Height}, nil
}

func (w *canvasWindow) createSurface(instance *wgpu.Instance) (*wgpu.Surface, error) {
	s := instance.CreateSurface(&wgpu.SurfaceDescriptor{})
	if s == nil {
		return nil, fmt.Errorf("create canvas surface")
	}
	ctx, ok := any(s.CanvasContext()).(js.Value)
	if !ok || ctx.IsNull() || ctx.IsUndefined() {
		s.Release()
		return nil, fmt.Errorf("surface has no canvas context")
	}
	canvas := ctx.Get("canvas")
	canvas.Set("width", w.width)
	canvas.Set("height", w.height)
	if !canvas.Get("parentNode").Equal(w.parent) {
		w.parent.Call("appendChild", canvas)
	}
	w.canvas = canvas
	return s, nil
}

func (w *canvasWindow) size() (uint32, uint32) { return w.width, w.height }

func (w *canvasWindow) keyListener(state shaderdemo.KeyState) js.Func {
	return js.FuncOf(func(_ js.Value, args []js.Value) any {
		if len(args) == 0 {
			return nil
		}
		k, ok := domKeys[args[0].Get("key").String()]
		if !ok {
			k = shaderdemo.KeyUnknown
		}
		w.events = append(w.events, shaderdemo.KeyboardInput{Key: k, State: state})
		return nil
	})
}

// run schedules one loop iteration per animation frame and blocks until
// the loop exits. The browser paces frames, so cfg.FrameRate is ignored.
func (w *canvasWindow) run(ctx context.Context, s *shaderdemo.Scheduler, cfg shaderdemo.Config) error {
	global := js.Global()
	keydown := w.keyListener(shaderdemo.Pressed)
	keyup := w.keyListener(shaderdemo.Released)
	global.Call("addEventListener", "keydown", keydown)
	global.Call("addEventListener", "keyup", keyup)
	defer func() {
		global.Call("removeEventListener", "keydown", keydown)
		global.Call("removeEventListener", "keyup", keyup)
		keydown.Release()
		keyup.Release()
	}()

	done := make(chan struct{})
	var frame js.Func
	frame = js.FuncOf(func(js.Value, []js.Value) any {
		if ctx.Err() != nil {
			s.Handle(shaderdemo.CloseRequested{})
		}
		evs := w.events
		w.events = nil
		for _, ev := range evs {
			s.Handle(ev)
		}
		if s.Exited() || !s.Step() {
			close(done)
			return nil
		}
		global.Call("requestAnimationFrame", frame)
		return nil
	})
	defer frame.Release()

	global.Call("requestAnimationFrame", frame)
	<-done
	return nil
}

func (w *canvasWindow) destroy() {}
