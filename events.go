// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package shaderdemo

import "fmt"

// Event is a window system notification delivered to Loop.Handle.
//
// The concrete types are Resized, CloseRequested, KeyboardInput,
// RedrawRequested and MainEventsCleared.
type Event interface {
	event()
}

// Resized reports a new drawable size in pixels. Zero sizes are delivered
// when the window is minimised.
type Resized struct {
	Width, Height uint32
}

// CloseRequested reports that the user asked to close the window.
type CloseRequested struct{}

// KeyboardInput reports a key press or release.
type KeyboardInput struct {
	Key   Key
	State KeyState
}

// RedrawRequested asks for one frame to be rendered.
type RedrawRequested struct{}

// MainEventsCleared is delivered once per loop iteration after all pending
// input has been handled.
type MainEventsCleared struct{}

func (Resized) event()           {}
func (CloseRequested) event()    {}
func (KeyboardInput) event()     {}
func (RedrawRequested) event()   {}
func (MainEventsCleared) event() {}

// Key identifies a keyboard key. Only keys the demo reacts to are named.
type Key uint16

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
)

func (k Key) String() string {
	switch k {
	case KeyEscape:
		return "Escape"
	case KeySpace:
		return "Space"
	case KeyUnknown:
		return "Unknown"
	}
	return fmt.Sprintf("Key(%d)", k)
}

// KeyState is the direction of a key transition.
type KeyState uint8

const (
	Released KeyState = iota
	Pressed
)

func (s KeyState) String() string {
	if s == Pressed {
		return "Pressed"
	}
	return "Released"
}

// ControlFlow tells the window system what to do after an event.
type ControlFlow uint8

const (
	// ControlFlowPoll keeps the loop running and polling for events.
	ControlFlowPoll ControlFlow = iota
	// ControlFlowExit terminates the loop.
	ControlFlowExit
)

func (c ControlFlow) String() string {
	if c == ControlFlowExit {
		return "Exit"
	}
	return "Poll"
}
