// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platform defines the platform-neutral contracts between the window
// manager and a native windowing system: windows, pixel-buffer presenters and
// the event source.
//
// Implementations live in sub-packages (see platform/x11). The window manager
// never talks to a windowing system directly.
package platform

import "errors"

// ErrClosed is returned by operations on a platform connection that was closed.
var ErrClosed = errors.New("platform: closed")

// WindowID is a platform-neutral window identifier.
// It is unique among live windows and stable for the window's lifetime.
type WindowID uint32

// Size is a window size in physical pixels.
type Size struct {
	Width  int
	Height int
}

// Empty reports whether either dimension is zero or negative.
// Platforms report empty sizes while a window is minimized.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// WindowSpec describes a window to build.
type WindowSpec struct {
	Title       string
	X, Y        int
	Width       int
	Height      int
	Transparent bool

	// Visual is the native visual the window must use so that a GPU
	// configuration can render into it. Zero selects the default visual.
	Visual uint32
}

// Window is a native window.
//
// Windows are created invisible; the window manager makes them visible after
// their first size and open notifications have been delivered.
type Window interface {
	// ID returns the window identifier.
	ID() WindowID

	// Size returns the current inner size in physical pixels.
	Size() Size

	// SetVisible maps or unmaps the window.
	SetVisible(visible bool)

	// RequestRedraw asks the event source to deliver a RedrawRequested event.
	// Requests are coalesced until the event is delivered.
	RequestRedraw()

	// Handle returns the native window handle used by GPU bindings.
	Handle() uintptr

	// Destroy releases the native window. It is idempotent.
	Destroy()
}

// Presenter copies CPU-rendered pixels to a window.
type Presenter interface {
	// Present displays a premultiplied RGBA buffer of the given size.
	Present(pix []uint8, width, height int) error

	// Close releases the presenter. It must be called before the window
	// it is bound to is destroyed.
	Close()
}

// EventSource delivers window events on the calling goroutine.
type EventSource interface {
	// NextEvent blocks until the next event is available.
	NextEvent() (Event, error)
}

// Platform is a connection to a native windowing system.
type Platform interface {
	EventSource

	// BuildWindow creates an invisible native window.
	BuildWindow(spec WindowSpec) (Window, error)

	// NewPresenter binds a pixel-buffer presenter to w.
	NewPresenter(w Window) (Presenter, error)

	// NativeDisplay returns the native display handle for GPU bindings.
	// Zero means the GPU binding should use its default display.
	NativeDisplay() uintptr

	// NeedsWindowForDisplay reports whether a GPU display can only be
	// derived from an existing window on this platform.
	NeedsWindowForDisplay() bool

	// TransparentVisual reports whether the native visual supports
	// per-pixel transparency.
	TransparentVisual(visual uint32) bool

	// Close disconnects from the windowing system.
	Close()
}
