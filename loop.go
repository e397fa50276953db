// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

// Window is the part of the window system the loop drives.
type Window interface {
	// RequestRedraw schedules a RedrawRequested event.
	RequestRedraw()
}

// Loop dispatches window events to a Demo.
//
// The render-requested flag starts set, so the first frame is requested by
// the window system. Continuous variants then request the next redraw
// themselves once the previous one has been rendered.
type Loop struct {
	demo            *Demo
	window          Window
	renderRequested bool
	exited          bool
}

// NewLoop returns a loop driving d inside w.
func NewLoop(d *Demo, w Window) *Loop {
	return &Loop{demo: d, window: w, renderRequested: true}
}

// Handle processes one event. After it has returned ControlFlowExit it
// ignores further events and keeps returning ControlFlowExit.
func (l *Loop) Handle(ev Event) ControlFlow {
	if l.exited {
		return ControlFlowExit
	}

	switch e := ev.(type) {
	case Resized:
		if err := l.demo.Resize(e.Width, e.Height); err != nil {
			Logger().Error("shaderdemo: resize failed", "width", e.Width, "height", e.Height, "err", err)
		}
	case CloseRequested:
		return l.exit("close requested")
	case KeyboardInput:
		if e.State != Pressed {
			break
		}
		switch e.Key {
		case KeyEscape:
			return l.exit("escape pressed")
		case KeySpace:
			l.demo.TogglePause()
		}
	case RedrawRequested:
		l.demo.Render()
		l.renderRequested = false
	case MainEventsCleared:
		if l.demo.Config().Variant.Animated() && !l.renderRequested {
			l.window.RequestRedraw()
			l.renderRequested = true
		}
	}
	return ControlFlowPoll
}

func (l *Loop) exit(reason string) ControlFlow {
	l.exited = true
	Logger().Info("shaderdemo: exiting", "reason", reason)
	return ControlFlowExit
}

// Exited reports whether the loop has returned ControlFlowExit.
func (l *Loop) Exited() bool { return l.exited }

// Demo returns the demo driven by the loop.
func (l *Loop) Demo() *Demo { return l.demo }
