// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

//go:build !js

package webgpu

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/gogpu/shaderdemo"
)

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

var glfwKeys = map[glfw.Key]shaderdemo.Key{
	glfw.KeyEscape: shaderdemo.KeyEscape,
	glfw.KeySpace:  shaderdemo.KeySpace,
}

type glfwWindow struct {
	win    *glfw.Window
	events []shaderdemo.Event
}

func openWindow(cfg shaderdemo.Config) (window, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("glfw init: %w", err)
	}
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	win, err := glfw.CreateWindow(int(cfg.Width), int(cfg.Height), cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("glfw create window: %w", err)
	}

	w := &glfwWindow{win: win}
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events = append(w.events, shaderdemo.Resized{Width: uint32(width), Height: uint32(height)})
	})
	win.SetCloseCallback(func(*glfw.Window) {
		w.events = append(w.events, shaderdemo.CloseRequested{})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		state := shaderdemo.Released
		switch action {
		case glfw.Press:
			state = shaderdemo.Pressed
		case glfw.Repeat:
			return
		}
		k, ok := glfwKeys[key]
		if !ok {
			k = shaderdemo.KeyUnknown
		}
		w.events = append(w.events, shaderdemo.KeyboardInput{Key: k, State: state})
	})
	win.SetRefreshCallback(func(*glfw.Window) {
		w.events = append(w.events, shaderdemo.RedrawRequested{})
	})
	return w, nil
}

func (w *glfwWindow) createSurface(instance *wgpu.Instance) (*wgpu.Surface, error) {
	s := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(w.win))
	if s == nil {
		return nil, fmt.Errorf("create surface for glfw window")
	}
	return s, nil
}

func (w *glfwWindow) size() (uint32, uint32) {
	width, height := w.win.GetFramebufferSize()
	return uint32(width), uint32(height)
}

// run polls events continuously while a frame is pending and waits for
// them otherwise. Refresh callbacks become redraw requests
// served by the scheduler, so a window that is exposed again is redrawn
// even when the variant renders on request only.
func (w *glfwWindow) run(ctx context.Context, s *shaderdemo.Scheduler, cfg shaderdemo.Config) error {
	var tick <-chan time.Time
	if iv := cfg.FrameInterval(); iv > 0 {
		t := time.NewTicker(iv)
		defer t.Stop()
		tick = t.C
	}

	for !s.Exited() {
		if ctx.Err() != nil {
			s.Handle(shaderdemo.CloseRequested{})
			break
		}
		if s.Pending() {
			glfw.PollEvents()
		} else {
			// Nothing to draw: sleep until the window system has news.
			glfw.WaitEventsTimeout(0.1)
		}
		for _, ev := range w.drain() {
			if _, ok := ev.(shaderdemo.RedrawRequested); ok {
				s.RequestRedraw()
				continue
			}
			s.Handle(ev)
		}
		if tick != nil && s.Pending() {
			select {
			case <-ctx.Done():
				continue
			case <-tick:
			}
		}
		s.Step()
	}
	return nil
}

func (w *glfwWindow) drain() []shaderdemo.Event {
	evs := w.events
	w.events = nil
	return evs
}

func (w *glfwWindow) destroy() {
	w.win.Destroy()
	glfw.Terminate()
}
