// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gputest provides an in-memory GPU display for tests.
//
// The fake tracks which context is current, so tests can assert that
// contexts are made current only when needed and released in order.
package gputest

import (
	"errors"
	"sync"
	"unsafe"

	"github.com/gogpu/ggwin/internal/gl"
	"github.com/gogpu/ggwin/internal/gpu"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("gputest: injected failure")

// Config is a fake configuration.
type Config struct {
	Name        string
	SampleCount int
	Stencil     int
	Transparent bool
	Visual      uint32
}

func (c *Config) Samples() int               { return c.SampleCount }
func (c *Config) StencilSize() int           { return c.Stencil }
func (c *Config) SupportsTransparency() bool { return c.Transparent }
func (c *Config) NativeVisual() uint32       { return c.Visual }

// Display is a fake gpu.Display.
type Display struct {
	mu sync.Mutex

	ConfigList  []gpu.Config
	FailConfigs bool

	// FailAPIs makes context creation fail for the listed attributes.
	FailAPIs map[gpu.ContextAttributes]bool
	// FailSurfaces makes CreateWindowSurface fail.
	FailSurfaces bool
	// FailSwap makes SwapBuffers fail on every surface.
	FailSwap bool
	// FailSwapInterval makes SetSwapInterval fail.
	FailSwapInterval bool
	// FailMakeNotCurrent makes MakeNotCurrent fail after releasing the
	// context.
	FailMakeNotCurrent bool

	Contexts   []*Context
	Surfaces   []*Surface
	Attempts   []gpu.ContextAttributes
	Terminated bool

	// Log records lifecycle events in order.
	Log []string

	current *Context
}

// NewDisplay returns a display offering configs.
func NewDisplay(configs ...gpu.Config) *Display {
	if len(configs) == 0 {
		configs = []gpu.Config{&Config{Name: "default", Stencil: 8}}
	}
	return &Display{ConfigList: configs, FailAPIs: map[gpu.ContextAttributes]bool{}}
}

// Opener returns a gpu.Opener that hands out d and counts calls in *opens.
func (d *Display) Opener(opens *int) gpu.Opener {
	return func(uintptr, func(uint32) bool) (gpu.Display, error) {
		if opens != nil {
			*opens++
		}
		return d, nil
	}
}

// FailingOpener returns an opener that always fails.
func FailingOpener(opens *int) gpu.Opener {
	return func(uintptr, func(uint32) bool) (gpu.Display, error) {
		if opens != nil {
			*opens++
		}
		return nil, ErrInjected
	}
}

func (d *Display) Configs(gpu.ConfigTemplate) ([]gpu.Config, error) {
	if d.FailConfigs {
		return nil, ErrInjected
	}
	return d.ConfigList, nil
}

func (d *Display) CreateContext(c gpu.Config, attrs gpu.ContextAttributes, window uintptr) (gpu.Context, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Attempts = append(d.Attempts, attrs)
	if d.FailAPIs[attrs] {
		return nil, ErrInjected
	}
	ctx := &Context{display: d, Config: c, Attrs: attrs}
	d.Contexts = append(d.Contexts, ctx)
	return ctx, nil
}

func (d *Display) CreateWindowSurface(c gpu.Config, window uintptr, width, height int) (gpu.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.FailSurfaces {
		return nil, ErrInjected
	}
	s := &Surface{display: d, Config: c, Window: window, Width: width, Height: height}
	d.Surfaces = append(d.Surfaces, s)
	return s, nil
}

// ProcAddress returns a non-zero address for every name.
func (d *Display) ProcAddress(string) uintptr { return 1 }

func (d *Display) Terminate() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Terminated = true
	d.Log = append(d.Log, "terminate")
}

// Current returns the context current on the fake thread.
func (d *Display) Current() *Context {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.current
}

func (d *Display) logf(event string) {
	d.Log = append(d.Log, event)
}

// Context is a fake gpu.Context.
type Context struct {
	display *Display
	Config  gpu.Config
	Attrs   gpu.ContextAttributes

	MakeCurrentCalls int
	Surface          *Surface
	Destroyed        bool
}

func (c *Context) MakeCurrent(s gpu.Surface) error {
	c.display.mu.Lock()
	defer c.display.mu.Unlock()
	c.MakeCurrentCalls++
	c.Surface = s.(*Surface)
	c.display.current = c
	c.display.logf("make-current")
	return nil
}

func (c *Context) MakeNotCurrent() error {
	c.display.mu.Lock()
	defer c.display.mu.Unlock()
	if c.display.current == c {
		c.display.current = nil
	}
	c.display.logf("make-not-current")
	if c.display.FailMakeNotCurrent {
		return ErrInjected
	}
	return nil
}

func (c *Context) IsCurrent() bool {
	c.display.mu.Lock()
	defer c.display.mu.Unlock()
	return c.display.current == c
}

func (c *Context) Destroy() {
	c.display.mu.Lock()
	defer c.display.mu.Unlock()
	c.Destroyed = true
	c.display.logf("destroy-context")
}

// Surface is a fake gpu.Surface.
type Surface struct {
	display *Display
	Config  gpu.Config
	Window  uintptr

	Width, Height int
	Swaps         int
	SwapInterval  int
	Destroyed     bool
}

func (s *Surface) Resize(width, height int) {
	s.Width, s.Height = width, height
}

func (s *Surface) SwapBuffers() error {
	if s.display.FailSwap {
		return ErrInjected
	}
	s.Swaps++
	return nil
}

func (s *Surface) SetSwapInterval(interval int) error {
	if s.display.FailSwapInterval {
		return ErrInjected
	}
	s.SwapInterval = interval
	return nil
}

func (s *Surface) Destroy() {
	s.display.mu.Lock()
	defer s.display.mu.Unlock()
	s.Destroyed = true
	s.display.logf("destroy-surface")
}

// Functions returns a GL function table whose calls do nothing, with the
// blit path available.
func Functions() *gl.Functions {
	return &gl.Functions{
		GetError:       func() uint32 { return gl.NO_ERROR },
		GetIntegerv:    func(uint32, *int32) {},
		Viewport:       func(int32, int32, int32, int32) {},
		Flush:          func() {},
		PixelStorei:    func(uint32, int32) {},
		GenTextures:    func(_ int32, t *uint32) { *t = 1 },
		DeleteTextures: func(int32, *uint32) {},
		BindTexture:    func(uint32, uint32) {},
		TexParameteri:  func(uint32, uint32, int32) {},
		TexImage2D: func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer) {
		},
		TexSubImage2D: func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer) {
		},
		GenFramebuffers:        func(_ int32, fb *uint32) { *fb = 1 },
		DeleteFramebuffers:     func(int32, *uint32) {},
		BindFramebuffer:        func(uint32, uint32) {},
		FramebufferTexture2D:   func(uint32, uint32, uint32, uint32, int32) {},
		CheckFramebufferStatus: func(uint32) uint32 { return gl.FRAMEBUFFER_COMPLETE },
		BlitFramebuffer:        func(int32, int32, int32, int32, int32, int32, int32, int32, uint32, uint32) {},
	}
}

// Load is a ProbeParams.Load that returns Functions.
func Load(func(string) uintptr) (*gl.Functions, error) {
	return Functions(), nil
}
