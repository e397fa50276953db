// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

// Scheduler is a Window for hosts without a redraw mechanism of their own:
// offscreen runs, polled desktop windows and animation-frame callbacks.
// It records redraw requests and turns them into RedrawRequested events on
// the next Step.
type Scheduler struct {
	loop    *Loop
	limit   int
	frames  int
	pending bool
}

// NewScheduler returns a scheduler driving d. With frameLimit > 0 the loop
// is closed once that many frames have been rendered.
func NewScheduler(d *Demo, frameLimit int) *Scheduler {
	s := &Scheduler{limit: frameLimit, pending: true}
	s.loop = NewLoop(d, s)
	return s
}

// RequestRedraw implements Window.
func (s *Scheduler) RequestRedraw() { s.pending = true }

// Handle forwards a window event to the loop.
func (s *Scheduler) Handle(ev Event) ControlFlow { return s.loop.Handle(ev) }

// Pending reports whether a redraw has been requested and not yet served.
func (s *Scheduler) Pending() bool { return s.pending && !s.loop.Exited() }

// Step ends one event loop iteration: it serves a pending redraw, then
// delivers MainEventsCleared. It reports whether the loop keeps running.
func (s *Scheduler) Step() bool {
	if s.Pending() {
		s.pending = false
		rendered := s.loop.Demo().Stats().Rendered
		s.loop.Handle(RedrawRequested{})
		if s.loop.Demo().Stats().Rendered > rendered {
			s.frames++
		}
		if s.limit > 0 && s.frames >= s.limit {
			s.loop.Handle(CloseRequested{})
		}
	}
	return s.loop.Handle(MainEventsCleared{}) != ControlFlowExit
}

// Frames returns the number of frames presented through the scheduler.
// Dropped and skipped redraws are not counted.
func (s *Scheduler) Frames() int { return s.frames }

// Exited reports whether the loop has exited.
func (s *Scheduler) Exited() bool { return s.loop.Exited() }

// Loop returns the underlying loop.
func (s *Scheduler) Loop() *Loop { return s.loop }
