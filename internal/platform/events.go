// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package platform

// Event is a window event already resolved to a window identifier.
type Event interface {
	Window() WindowID
}

// ButtonState is the state of a mouse button.
type ButtonState uint8

const (
	Pressed ButtonState = iota
	Released
)

func (s ButtonState) String() string {
	if s == Pressed {
		return "pressed"
	}
	return "released"
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	ButtonLeft MouseButton = iota
	ButtonRight
	ButtonMiddle
	ButtonOther
)

// ScrollDelta is a wheel movement, either in lines or in pixels.
type ScrollDelta struct {
	X, Y  float64
	Lines bool
}

// TouchPhase is the phase of a scroll gesture.
// Wheels without gesture support always report PhaseMoved.
type TouchPhase uint8

const (
	PhaseStarted TouchPhase = iota
	PhaseMoved
	PhaseEnded
	PhaseCancelled
)

// Resized reports a new inner size. Width or Height is zero while minimized.
type Resized struct {
	ID   WindowID
	Size Size
}

// CloseRequested reports that the user asked to close the window.
type CloseRequested struct {
	ID WindowID
}

// RedrawRequested asks for the window content to be drawn.
type RedrawRequested struct {
	ID WindowID
}

// CursorEntered reports that the pointer entered the window.
type CursorEntered struct {
	ID WindowID
}

// CursorLeft reports that the pointer left the window.
type CursorLeft struct {
	ID WindowID
}

// CursorMoved reports a pointer position in window coordinates.
type CursorMoved struct {
	ID   WindowID
	X, Y float64
}

// MouseInput reports a button press or release.
type MouseInput struct {
	ID     WindowID
	State  ButtonState
	Button MouseButton
}

// MouseWheel reports wheel or touchpad scrolling.
type MouseWheel struct {
	ID    WindowID
	Delta ScrollDelta
	Phase TouchPhase
}

func (e Resized) Window() WindowID         { return e.ID }
func (e CloseRequested) Window() WindowID  { return e.ID }
func (e RedrawRequested) Window() WindowID { return e.ID }
func (e CursorEntered) Window() WindowID   { return e.ID }
func (e CursorLeft) Window() WindowID      { return e.ID }
func (e CursorMoved) Window() WindowID     { return e.ID }
func (e MouseInput) Window() WindowID      { return e.ID }
func (e MouseWheel) Window() WindowID      { return e.ID }
