// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package egl

import (
	"fmt"
	"sync"

	"github.com/ebitengine/purego"
)

// EGL enums used by this package.
const (
	eglSuccess        = 0x3000
	eglAlphaSize      = 0x3021
	eglStencilSize    = 0x3026
	eglNativeVisualID = 0x302E
	eglSamples        = 0x3031
	eglSurfaceType    = 0x3033
	eglNone           = 0x3038
	eglRenderableType = 0x3040
	eglVendor         = 0x3053
	eglVersion        = 0x3054
	eglDraw           = 0x3059
	eglContextMajor   = 0x3098
	eglContextMinor   = 0x30FB
	eglOpenGLESAPI    = 0x30A0
	eglOpenGLAPI      = 0x30A2
	eglWindowBit      = 0x0004
	eglTrue           = 1

	eglDefaultDisplay = 0
	eglNoContext      = 0
	eglNoSurface      = 0
	eglNoDisplay      = 0

	maxConfigs = 64
)

var errorNames = map[int32]string{
	0x3000: "EGL_SUCCESS",
	0x3001: "EGL_NOT_INITIALIZED",
	0x3002: "EGL_BAD_ACCESS",
	0x3003: "EGL_BAD_ALLOC",
	0x3004: "EGL_BAD_ATTRIBUTE",
	0x3005: "EGL_BAD_CONFIG",
	0x3006: "EGL_BAD_CONTEXT",
	0x3007: "EGL_BAD_CURRENT_SURFACE",
	0x3008: "EGL_BAD_DISPLAY",
	0x3009: "EGL_BAD_MATCH",
	0x300A: "EGL_BAD_NATIVE_PIXMAP",
	0x300B: "EGL_BAD_NATIVE_WINDOW",
	0x300C: "EGL_BAD_PARAMETER",
	0x300D: "EGL_BAD_SURFACE",
	0x300E: "EGL_CONTEXT_LOST",
}

// Error is an EGL error code.
type Error int32

func (e Error) Error() string {
	if name, ok := errorNames[int32(e)]; ok {
		return "egl: " + name
	}
	return fmt.Sprintf("egl: error 0x%04X", int32(e))
}

var (
	libOnce sync.Once
	libErr  error
	lib     uintptr

	eglGetDisplay          func(native uintptr) uintptr
	eglInitialize          func(dpy uintptr, major, minor *int32) uint32
	eglTerminate           func(dpy uintptr) uint32
	eglQueryString         func(dpy uintptr, name int32) string
	eglBindAPI             func(api uint32) uint32
	eglChooseConfig        func(dpy uintptr, attribs *int32, configs *uintptr, size int32, num *int32) uint32
	eglGetConfigAttrib     func(dpy, config uintptr, attr int32, value *int32) uint32
	eglCreateContext       func(dpy, config, share uintptr, attribs *int32) uintptr
	eglDestroyContext      func(dpy, ctx uintptr) uint32
	eglCreateWindowSurface func(dpy, config, win uintptr, attribs *int32) uintptr
	eglDestroySurface      func(dpy, surface uintptr) uint32
	eglMakeCurrent         func(dpy, draw, read, ctx uintptr) uint32
	eglGetCurrentContext   func() uintptr
	eglGetCurrentSurface   func(readdraw int32) uintptr
	eglSwapBuffers         func(dpy, surface uintptr) uint32
	eglSwapInterval        func(dpy uintptr, interval int32) uint32
	eglGetProcAddress      func(name string) uintptr
	eglGetError            func() int32
)

// load opens libEGL once per process.
func load() error {
	libOnce.Do(func() {
		lib, libErr = purego.Dlopen("libEGL.so.1", purego.RTLD_NOW|purego.RTLD_GLOBAL)
		if libErr != nil {
			libErr = fmt.Errorf("egl: load libEGL.so.1: %w", libErr)
			return
		}
		purego.RegisterLibFunc(&eglGetDisplay, lib, "eglGetDisplay")
		purego.RegisterLibFunc(&eglInitialize, lib, "eglInitialize")
		purego.RegisterLibFunc(&eglTerminate, lib, "eglTerminate")
		purego.RegisterLibFunc(&eglQueryString, lib, "eglQueryString")
		purego.RegisterLibFunc(&eglBindAPI, lib, "eglBindAPI")
		purego.RegisterLibFunc(&eglChooseConfig, lib, "eglChooseConfig")
		purego.RegisterLibFunc(&eglGetConfigAttrib, lib, "eglGetConfigAttrib")
		purego.RegisterLibFunc(&eglCreateContext, lib, "eglCreateContext")
		purego.RegisterLibFunc(&eglDestroyContext, lib, "eglDestroyContext")
		purego.RegisterLibFunc(&eglCreateWindowSurface, lib, "eglCreateWindowSurface")
		purego.RegisterLibFunc(&eglDestroySurface, lib, "eglDestroySurface")
		purego.RegisterLibFunc(&eglMakeCurrent, lib, "eglMakeCurrent")
		purego.RegisterLibFunc(&eglGetCurrentContext, lib, "eglGetCurrentContext")
		purego.RegisterLibFunc(&eglGetCurrentSurface, lib, "eglGetCurrentSurface")
		purego.RegisterLibFunc(&eglSwapBuffers, lib, "eglSwapBuffers")
		purego.RegisterLibFunc(&eglSwapInterval, lib, "eglSwapInterval")
		purego.RegisterLibFunc(&eglGetProcAddress, lib, "eglGetProcAddress")
		purego.RegisterLibFunc(&eglGetError, lib, "eglGetError")
	})
	return libErr
}

// lastError returns the calling thread's EGL error.
func lastError() error {
	return Error(eglGetError())
}
