package ggwin

import "errors"

var (
	// ErrSurfaceCreation is returned by window creation when the window's
	// rendering resources cannot be built. The window is not registered.
	ErrSurfaceCreation = errors.New("ggwin: surface creation failed")

	// ErrPresentFailed is returned when a frame cannot be presented. It is
	// not recovered: Run returns it.
	ErrPresentFailed = errors.New("ggwin: present failed")

	// ErrUnknownWindow is the panic value (wrapped) for operations on a
	// window identifier that was never registered.
	ErrUnknownWindow = errors.New("ggwin: unknown window")

	// ErrNoWindows is returned by Run when App.Resume created no window.
	ErrNoWindows = errors.New("ggwin: no windows")
)
