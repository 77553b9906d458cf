// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import "fmt"

// API is a client rendering API a context can be created for.
type API uint8

const (
	// APIOpenGL is desktop OpenGL.
	APIOpenGL API = iota
	// APIOpenGLES is OpenGL ES.
	APIOpenGLES
)

func (a API) String() string {
	switch a {
	case APIOpenGL:
		return "OpenGL"
	case APIOpenGLES:
		return "OpenGL ES"
	default:
		return fmt.Sprintf("API(%d)", uint8(a))
	}
}

// ContextAttributes selects the API and version of a rendering context.
// A zero Major lets the driver pick its default version.
type ContextAttributes struct {
	API   API
	Major int
	Minor int
}

func (a ContextAttributes) String() string {
	if a.Major == 0 {
		return a.API.String()
	}
	return fmt.Sprintf("%s %d.%d", a.API, a.Major, a.Minor)
}

// ContextTiers is the context creation preference order: the driver's
// default desktop GL, then GLES for drivers without desktop GL, then GL 2.1
// for old devices that support neither.
var ContextTiers = []ContextAttributes{
	{API: APIOpenGL},
	{API: APIOpenGLES},
	{API: APIOpenGL, Major: 2, Minor: 1},
}

// ConfigTemplate restricts the configurations returned by Display.Configs.
// Only configurations that can render to windows are ever returned.
type ConfigTemplate struct {
	AlphaSize int
}

// Config is a framebuffer configuration offered by a display.
type Config interface {
	// Samples returns the multisample count (0 when not multisampled).
	Samples() int

	// StencilSize returns the stencil buffer depth in bits.
	StencilSize() int

	// SupportsTransparency reports whether windows using this config can
	// be composited with per-pixel alpha.
	SupportsTransparency() bool

	// NativeVisual returns the native visual windows must be built with.
	NativeVisual() uint32
}

// Display is a connection to a GPU driver.
type Display interface {
	// Configs enumerates the window-renderable configurations matching t.
	Configs(t ConfigTemplate) ([]Config, error)

	// CreateContext creates a context that is not current anywhere.
	CreateContext(c Config, attrs ContextAttributes, window uintptr) (Context, error)

	// CreateWindowSurface creates a present-surface for a native window.
	CreateWindowSurface(c Config, window uintptr, width, height int) (Surface, error)

	// ProcAddress resolves a client API function.
	ProcAddress(name string) uintptr

	// Terminate releases the display.
	Terminate()
}

// Context is a rendering context.
type Context interface {
	// MakeCurrent binds the context and s to the calling thread.
	MakeCurrent(s Surface) error

	// MakeNotCurrent unbinds the context from the calling thread.
	MakeNotCurrent() error

	// IsCurrent reports whether the context is current on the calling thread.
	IsCurrent() bool

	// Destroy releases the context. It must not be current.
	Destroy()
}

// Surface is the native buffer a window displays.
type Surface interface {
	// Resize updates the surface size. Some platforms track the window
	// size automatically and implement this as a no-op.
	Resize(width, height int)

	// SwapBuffers presents the back buffer.
	SwapBuffers() error

	// SetSwapInterval sets the number of vertical blanks to wait per swap.
	// The surface's context must be current.
	SetSwapInterval(interval int) error

	// Destroy releases the surface.
	Destroy()
}

// Opener connects to the GPU driver. transparentVisual lets the binding ask
// the windowing system whether a native visual has an alpha channel.
type Opener func(nativeDisplay uintptr, transparentVisual func(visual uint32) bool) (Display, error)
