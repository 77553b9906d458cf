package ggwin

import (
	"fmt"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggwin/internal/platform"
)

// Types shared with the platform layer.
type (
	// WindowID identifies a live window.
	WindowID = platform.WindowID

	// Size is a window size in physical pixels.
	Size = platform.Size

	// WindowSpec describes a window to create. A zero Width or Height
	// selects the default size of 800×600.
	WindowSpec = platform.WindowSpec

	// ButtonState is the state of a mouse button.
	ButtonState = platform.ButtonState

	// MouseButton identifies a mouse button.
	MouseButton = platform.MouseButton

	// ScrollDelta is a mouse wheel movement.
	ScrollDelta = platform.ScrollDelta

	// TouchPhase is the phase of a wheel or touch gesture.
	TouchPhase = platform.TouchPhase
)

// Button states.
const (
	Pressed  = platform.Pressed
	Released = platform.Released
)

// Mouse buttons.
const (
	ButtonLeft   = platform.ButtonLeft
	ButtonRight  = platform.ButtonRight
	ButtonMiddle = platform.ButtonMiddle
	ButtonOther  = platform.ButtonOther
)

// Gesture phases.
const (
	PhaseStarted   = platform.PhaseStarted
	PhaseMoved     = platform.PhaseMoved
	PhaseEnded     = platform.PhaseEnded
	PhaseCancelled = platform.PhaseCancelled
)

// Window is the application behavior bound to one native window.
// Embed BaseWindow to implement only the methods you need.
type Window interface {
	// Open is called once, after the window's resources exist and before
	// it becomes visible.
	Open(cx *WindowCx)

	// Close is called when the user asks to close the window. Returning
	// false keeps the window open.
	Close(cx *WindowCx) bool

	// Draw paints one frame. dc has been cleared to transparent and is
	// exactly the window's size.
	Draw(dc *gg.Context, cx *WindowCx)

	// AfterDraw is called after the frame has been presented.
	AfterDraw(cx *WindowCx)

	// Resize is called with the new size in physical pixels. It is also
	// called once after Open with the initial size.
	Resize(cx *WindowCx, width, height int)

	CursorEnter(cx *WindowCx)
	CursorLeave(cx *WindowCx)
	CursorMove(cx *WindowCx, x, y float64)
	MouseInput(cx *WindowCx, state ButtonState, button MouseButton)
	MouseWheel(cx *WindowCx, delta ScrollDelta, phase TouchPhase)
}

// BaseWindow implements every Window method as a no-op. Close returns true.
type BaseWindow struct{}

func (BaseWindow) Open(*WindowCx)                                 {}
func (BaseWindow) Close(*WindowCx) bool                           { return true }
func (BaseWindow) Draw(*gg.Context, *WindowCx)                    {}
func (BaseWindow) AfterDraw(*WindowCx)                            {}
func (BaseWindow) Resize(*WindowCx, int, int)                     {}
func (BaseWindow) CursorEnter(*WindowCx)                          {}
func (BaseWindow) CursorLeave(*WindowCx)                          {}
func (BaseWindow) CursorMove(*WindowCx, float64, float64)         {}
func (BaseWindow) MouseInput(*WindowCx, ButtonState, MouseButton) {}
func (BaseWindow) MouseWheel(*WindowCx, ScrollDelta, TouchPhase)  {}

var _ Window = BaseWindow{}

// WindowCx gives a handler read-only access to its window.
// It is valid only for the duration of the handler call.
type WindowCx struct {
	id WindowID
	m  *Manager
}

// ID returns the window identifier.
func (cx *WindowCx) ID() WindowID { return cx.id }

// Size returns the window size in physical pixels.
func (cx *WindowCx) Size() Size {
	return cx.m.mustEntry(cx.id).bundle.size()
}

// Backend returns the process's rendering backend.
func (cx *WindowCx) Backend() Backend { return cx.m.backend }

// CursorInside reports whether the pointer is inside the window.
func (cx *WindowCx) CursorInside() bool {
	return cx.m.mustEntry(cx.id).cursorInside
}

// CursorPosition returns the last pointer position in window coordinates.
func (cx *WindowCx) CursorPosition() (x, y float64) {
	e := cx.m.mustEntry(cx.id)
	return e.cursorX, e.cursorY
}

// RequestRedraw schedules a Draw for this window. Requests made before the
// draw happens are coalesced.
func (cx *WindowCx) RequestRedraw() {
	cx.m.mustEntry(cx.id).bundle.window().RequestRedraw()
}

func (cx *WindowCx) String() string {
	return fmt.Sprintf("window %d", cx.id)
}
