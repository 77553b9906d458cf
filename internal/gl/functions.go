// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gl holds the GL function table loaded against a GPU display and
// the framebuffer uploader used by the GPU drawing surface.
//
// Functions are resolved through the display's proc-address lookup and bound
// with purego, so no cgo is required.
package gl

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/ebitengine/purego"
)

// GL enums used by this package.
const (
	NO_ERROR             = 0
	UNPACK_ALIGNMENT     = 0x0CF5
	TEXTURE_2D           = 0x0DE1
	UNSIGNED_BYTE        = 0x1401
	RGBA                 = 0x1908
	NEAREST              = 0x2600
	TEXTURE_MAG_FILTER   = 0x2800
	TEXTURE_MIN_FILTER   = 0x2801
	COLOR_BUFFER_BIT     = 0x4000
	FRAMEBUFFER_BINDING  = 0x8CA6
	READ_FRAMEBUFFER     = 0x8CA8
	DRAW_FRAMEBUFFER     = 0x8CA9
	FRAMEBUFFER_COMPLETE = 0x8CD5
	COLOR_ATTACHMENT0    = 0x8CE0
	FRAMEBUFFER          = 0x8D40
)

// ErrMissingFunction is returned by Load when a required function cannot be
// resolved.
var ErrMissingFunction = errors.New("gl: missing function")

// Functions is the GL function table of one display. The fields are plain
// Go funcs so tests can fill them with stubs.
//
// BlitFramebuffer and the framebuffer object functions are optional: they are
// nil on legacy GL 2.1 contexts without framebuffer objects, in which case
// DrawPixels is used.
type Functions struct {
	GetError       func() uint32
	GetIntegerv    func(pname uint32, data *int32)
	Viewport       func(x, y, width, height int32)
	Flush          func()
	PixelStorei    func(pname uint32, param int32)
	GenTextures    func(n int32, textures *uint32)
	DeleteTextures func(n int32, textures *uint32)
	BindTexture    func(target, texture uint32)
	TexParameteri  func(target, pname uint32, param int32)
	TexImage2D     func(target uint32, level, internalFormat, width, height, border int32, format, xtype uint32, pixels unsafe.Pointer)
	TexSubImage2D  func(target uint32, level, xoffset, yoffset, width, height int32, format, xtype uint32, pixels unsafe.Pointer)

	GenFramebuffers        func(n int32, framebuffers *uint32)
	DeleteFramebuffers     func(n int32, framebuffers *uint32)
	BindFramebuffer        func(target, framebuffer uint32)
	FramebufferTexture2D   func(target, attachment, textarget, texture uint32, level int32)
	CheckFramebufferStatus func(target uint32) uint32
	BlitFramebuffer        func(srcX0, srcY0, srcX1, srcY1, dstX0, dstY0, dstX1, dstY1 int32, mask, filter uint32)

	RasterPos2i func(x, y int32)
	PixelZoom   func(xfactor, yfactor float32)
	DrawPixels  func(width, height int32, format, xtype uint32, pixels unsafe.Pointer)
}

// Load resolves the function table through procAddr.
//
// It must be called with a context current on the calling thread on
// platforms whose proc addresses are context-dependent.
func Load(procAddr func(name string) uintptr) (*Functions, error) {
	f := &Functions{}
	required := []struct {
		name string
		fn   any
	}{
		{"glGetError", &f.GetError},
		{"glGetIntegerv", &f.GetIntegerv},
		{"glViewport", &f.Viewport},
		{"glFlush", &f.Flush},
		{"glPixelStorei", &f.PixelStorei},
		{"glGenTextures", &f.GenTextures},
		{"glDeleteTextures", &f.DeleteTextures},
		{"glBindTexture", &f.BindTexture},
		{"glTexParameteri", &f.TexParameteri},
		{"glTexImage2D", &f.TexImage2D},
		{"glTexSubImage2D", &f.TexSubImage2D},
	}
	for _, r := range required {
		addr := procAddr(r.name)
		if addr == 0 {
			return nil, fmt.Errorf("%w: %s", ErrMissingFunction, r.name)
		}
		purego.RegisterFunc(r.fn, addr)
	}

	optional := []struct {
		name string
		fn   any
	}{
		{"glGenFramebuffers", &f.GenFramebuffers},
		{"glDeleteFramebuffers", &f.DeleteFramebuffers},
		{"glBindFramebuffer", &f.BindFramebuffer},
		{"glFramebufferTexture2D", &f.FramebufferTexture2D},
		{"glCheckFramebufferStatus", &f.CheckFramebufferStatus},
		{"glBlitFramebuffer", &f.BlitFramebuffer},
		{"glRasterPos2i", &f.RasterPos2i},
		{"glPixelZoom", &f.PixelZoom},
		{"glDrawPixels", &f.DrawPixels},
	}
	for _, o := range optional {
		if addr := procAddr(o.name); addr != 0 {
			purego.RegisterFunc(o.fn, addr)
		}
	}

	if !f.HasBlit() && !f.HasDrawPixels() {
		return nil, fmt.Errorf("%w: neither glBlitFramebuffer nor glDrawPixels", ErrMissingFunction)
	}
	return f, nil
}

// HasBlit reports whether framebuffer objects and blits are available.
func (f *Functions) HasBlit() bool {
	return f.GenFramebuffers != nil && f.DeleteFramebuffers != nil && f.BindFramebuffer != nil &&
		f.FramebufferTexture2D != nil && f.BlitFramebuffer != nil
}

// HasDrawPixels reports whether the legacy pixel drawing path is available.
func (f *Functions) HasDrawPixels() bool {
	return f.RasterPos2i != nil && f.PixelZoom != nil && f.DrawPixels != nil
}

// FramebufferBinding returns the currently bound draw framebuffer.
func (f *Functions) FramebufferBinding() uint32 {
	var fbo int32
	f.GetIntegerv(FRAMEBUFFER_BINDING, &fbo)
	if fbo < 0 {
		return 0
	}
	return uint32(fbo)
}

// SetViewport sets the viewport to cover a width×height target.
func (f *Functions) SetViewport(width, height int) {
	f.Viewport(0, 0, int32(width), int32(height))
}

// CheckError returns the pending GL error, if any.
func (f *Functions) CheckError(op string) error {
	if code := f.GetError(); code != NO_ERROR {
		return fmt.Errorf("gl: %s: error 0x%04X", op, code)
	}
	return nil
}
