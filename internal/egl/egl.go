// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package egl implements the gpu binding contracts on EGL.
//
// libEGL is loaded at runtime with purego; no cgo is required. Window
// handles are native window ids (X11 XIDs).
package egl

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/ggwin/internal/gpu"
)

// ErrNoDisplay is returned when EGL offers no display for the native display.
var ErrNoDisplay = errors.New("egl: no display")

// Display is an initialized EGL display.
type Display struct {
	handle            uintptr
	transparentVisual func(visual uint32) bool
	log               *slog.Logger
}

var _ gpu.Display = (*Display)(nil)

// Open is a gpu.Opener backed by libEGL. A zero nativeDisplay selects
// EGL_DEFAULT_DISPLAY.
func Open(nativeDisplay uintptr, transparentVisual func(visual uint32) bool) (gpu.Display, error) {
	return Opener(nil)(nativeDisplay, transparentVisual)
}

// Opener returns a gpu.Opener that logs through l.
func Opener(l *slog.Logger) gpu.Opener {
	return func(nativeDisplay uintptr, transparentVisual func(uint32) bool) (gpu.Display, error) {
		d, err := OpenWithLogger(nativeDisplay, transparentVisual, l)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
}

// OpenWithLogger is Open with an explicit logger.
func OpenWithLogger(nativeDisplay uintptr, transparentVisual func(visual uint32) bool, l *slog.Logger) (*Display, error) {
	if err := load(); err != nil {
		return nil, err
	}
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	native := nativeDisplay
	if native == 0 {
		native = eglDefaultDisplay
	}
	handle := eglGetDisplay(native)
	if handle == eglNoDisplay {
		return nil, ErrNoDisplay
	}
	var major, minor int32
	if eglInitialize(handle, &major, &minor) != eglTrue {
		return nil, fmt.Errorf("egl: initialize: %w", lastError())
	}
	l.Info("egl: display initialized",
		"version", fmt.Sprintf("%d.%d", major, minor),
		"vendor", eglQueryString(handle, eglVendor))
	if transparentVisual == nil {
		transparentVisual = func(uint32) bool { return false }
	}
	return &Display{handle: handle, transparentVisual: transparentVisual, log: l}, nil
}

// Configs enumerates window-renderable configurations.
func (d *Display) Configs(t gpu.ConfigTemplate) ([]gpu.Config, error) {
	attribs := configAttribs(t)
	handles := make([]uintptr, maxConfigs)
	var n int32
	if eglChooseConfig(d.handle, &attribs[0], &handles[0], int32(len(handles)), &n) != eglTrue {
		return nil, fmt.Errorf("egl: choose config: %w", lastError())
	}
	configs := make([]gpu.Config, 0, n)
	for _, h := range handles[:n] {
		c := &Config{handle: h}
		c.samples = d.attrib(h, eglSamples)
		c.stencil = d.attrib(h, eglStencilSize)
		c.visual = uint32(d.attrib(h, eglNativeVisualID))
		c.transparent = d.attrib(h, eglAlphaSize) > 0 && c.visual != 0 && d.transparentVisual(c.visual)
		configs = append(configs, c)
	}
	d.log.Debug("egl: configs", "count", len(configs))
	return configs, nil
}

func (d *Display) attrib(config uintptr, attr int32) int {
	var v int32
	if eglGetConfigAttrib(d.handle, config, attr, &v) != eglTrue {
		return 0
	}
	return int(v)
}

// CreateContext creates a context for attrs. The window handle is unused
// on EGL.
func (d *Display) CreateContext(c gpu.Config, attrs gpu.ContextAttributes, _ uintptr) (gpu.Context, error) {
	cfg, ok := c.(*Config)
	if !ok {
		return nil, fmt.Errorf("egl: foreign config %T", c)
	}
	api := uint32(eglOpenGLAPI)
	if attrs.API == gpu.APIOpenGLES {
		api = eglOpenGLESAPI
	}
	if eglBindAPI(api) != eglTrue {
		return nil, fmt.Errorf("egl: bind %s: %w", attrs.API, lastError())
	}
	list := contextAttribs(attrs)
	h := eglCreateContext(d.handle, cfg.handle, eglNoContext, &list[0])
	if h == eglNoContext {
		return nil, fmt.Errorf("egl: create %s context: %w", attrs, lastError())
	}
	return &Context{display: d, handle: h, api: api}, nil
}

// CreateWindowSurface creates a window surface on a native window id.
func (d *Display) CreateWindowSurface(c gpu.Config, window uintptr, width, height int) (gpu.Surface, error) {
	cfg, ok := c.(*Config)
	if !ok {
		return nil, fmt.Errorf("egl: foreign config %T", c)
	}
	none := []int32{eglNone}
	h := eglCreateWindowSurface(d.handle, cfg.handle, window, &none[0])
	if h == eglNoSurface {
		return nil, fmt.Errorf("egl: create window surface: %w", lastError())
	}
	return &Surface{display: d, handle: h, width: width, height: height}, nil
}

// ProcAddress resolves a client API function.
func (d *Display) ProcAddress(name string) uintptr {
	return eglGetProcAddress(name)
}

// Terminate releases the display.
func (d *Display) Terminate() {
	if d.handle == eglNoDisplay {
		return
	}
	eglMakeCurrent(d.handle, eglNoSurface, eglNoSurface, eglNoContext)
	eglTerminate(d.handle)
	d.handle = eglNoDisplay
}

// Config is an EGL framebuffer configuration.
type Config struct {
	handle      uintptr
	samples     int
	stencil     int
	visual      uint32
	transparent bool
}

func (c *Config) Samples() int               { return c.samples }
func (c *Config) StencilSize() int           { return c.stencil }
func (c *Config) SupportsTransparency() bool { return c.transparent }
func (c *Config) NativeVisual() uint32       { return c.visual }

// Context is an EGL rendering context.
type Context struct {
	display *Display
	handle  uintptr
	api     uint32
}

// MakeCurrent binds the context to s on the calling thread.
func (c *Context) MakeCurrent(s gpu.Surface) error {
	surf, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("egl: foreign surface %T", s)
	}
	if eglBindAPI(c.api) != eglTrue {
		return fmt.Errorf("egl: bind api: %w", lastError())
	}
	if eglMakeCurrent(c.display.handle, surf.handle, surf.handle, c.handle) != eglTrue {
		return fmt.Errorf("egl: make current: %w", lastError())
	}
	return nil
}

// MakeNotCurrent releases the calling thread's current context.
func (c *Context) MakeNotCurrent() error {
	if eglMakeCurrent(c.display.handle, eglNoSurface, eglNoSurface, eglNoContext) != eglTrue {
		return fmt.Errorf("egl: make not current: %w", lastError())
	}
	return nil
}

// IsCurrent reports whether c is current on the calling thread.
func (c *Context) IsCurrent() bool {
	return eglGetCurrentContext() == c.handle
}

// Destroy destroys the context.
func (c *Context) Destroy() {
	if c.handle == eglNoContext {
		return
	}
	if eglDestroyContext(c.display.handle, c.handle) != eglTrue {
		c.display.log.Warn("egl: destroy context failed", "err", lastError())
	}
	c.handle = eglNoContext
}

// Surface is an EGL window surface.
type Surface struct {
	display       *Display
	handle        uintptr
	width, height int
}

// Resize records the new size. EGL window surfaces on X11 follow the window
// size on their own.
func (s *Surface) Resize(width, height int) {
	s.width, s.height = width, height
}

// SwapBuffers presents the back buffer.
func (s *Surface) SwapBuffers() error {
	if eglSwapBuffers(s.display.handle, s.handle) != eglTrue {
		return fmt.Errorf("egl: swap buffers: %w", lastError())
	}
	return nil
}

// SetSwapInterval sets the swap interval of the current surface.
func (s *Surface) SetSwapInterval(interval int) error {
	if eglGetCurrentSurface(eglDraw) != s.handle {
		return errors.New("egl: swap interval: surface not current")
	}
	if eglSwapInterval(s.display.handle, int32(interval)) != eglTrue {
		return fmt.Errorf("egl: swap interval: %w", lastError())
	}
	return nil
}

// Destroy destroys the surface.
func (s *Surface) Destroy() {
	if s.handle == eglNoSurface {
		return
	}
	if eglDestroySurface(s.display.handle, s.handle) != eglTrue {
		s.display.log.Warn("egl: destroy surface failed", "err", lastError())
	}
	s.handle = eglNoSurface
}

// configAttribs builds the EGL attribute list for t.
func configAttribs(t gpu.ConfigTemplate) []int32 {
	list := []int32{
		eglSurfaceType, eglWindowBit,
		// Zero matches every client API.
		eglRenderableType, 0,
	}
	if t.AlphaSize > 0 {
		list = append(list, eglAlphaSize, int32(t.AlphaSize))
	}
	return append(list, eglNone)
}

// contextAttribs builds the EGL context attribute list for attrs.
func contextAttribs(attrs gpu.ContextAttributes) []int32 {
	var list []int32
	switch {
	case attrs.Major > 0:
		list = append(list, eglContextMajor, int32(attrs.Major), eglContextMinor, int32(attrs.Minor))
	case attrs.API == gpu.APIOpenGLES:
		// EGL defaults ES contexts to 1.x.
		list = append(list, eglContextMajor, 2)
	}
	return append(list, eglNone)
}
