// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"errors"
	"strings"
	"testing"
	"unsafe"
)

// recorder fills a Functions table with stubs that log call names.
type recorder struct {
	calls   []string
	errCode uint32
	binding int32
	blit    [8]int32
}

func (r *recorder) functions(withBlit, withDrawPixels bool) *Functions {
	f := &Functions{
		GetError: func() uint32 { r.calls = append(r.calls, "GetError"); return r.errCode },
		GetIntegerv: func(pname uint32, data *int32) {
			r.calls = append(r.calls, "GetIntegerv")
			if pname == FRAMEBUFFER_BINDING {
				*data = r.binding
			}
		},
		Viewport:    func(x, y, w, h int32) { r.calls = append(r.calls, "Viewport") },
		Flush:       func() { r.calls = append(r.calls, "Flush") },
		PixelStorei: func(uint32, int32) { r.calls = append(r.calls, "PixelStorei") },
		GenTextures: func(n int32, t *uint32) { r.calls = append(r.calls, "GenTextures"); *t = 7 },
		DeleteTextures: func(n int32, t *uint32) {
			r.calls = append(r.calls, "DeleteTextures")
		},
		BindTexture:   func(uint32, uint32) { r.calls = append(r.calls, "BindTexture") },
		TexParameteri: func(uint32, uint32, int32) { r.calls = append(r.calls, "TexParameteri") },
		TexImage2D: func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer) {
			r.calls = append(r.calls, "TexImage2D")
		},
		TexSubImage2D: func(uint32, int32, int32, int32, int32, int32, uint32, uint32, unsafe.Pointer) {
			r.calls = append(r.calls, "TexSubImage2D")
		},
	}
	if withBlit {
		f.GenFramebuffers = func(n int32, fb *uint32) { r.calls = append(r.calls, "GenFramebuffers"); *fb = 3 }
		f.DeleteFramebuffers = func(int32, *uint32) { r.calls = append(r.calls, "DeleteFramebuffers") }
		f.BindFramebuffer = func(uint32, uint32) { r.calls = append(r.calls, "BindFramebuffer") }
		f.FramebufferTexture2D = func(uint32, uint32, uint32, uint32, int32) {
			r.calls = append(r.calls, "FramebufferTexture2D")
		}
		f.CheckFramebufferStatus = func(uint32) uint32 { return FRAMEBUFFER_COMPLETE }
		f.BlitFramebuffer = func(x0, y0, x1, y1, dx0, dy0, dx1, dy1 int32, mask, filter uint32) {
			r.calls = append(r.calls, "BlitFramebuffer")
			r.blit = [8]int32{x0, y0, x1, y1, dx0, dy0, dx1, dy1}
		}
	}
	if withDrawPixels {
		f.RasterPos2i = func(int32, int32) { r.calls = append(r.calls, "RasterPos2i") }
		f.PixelZoom = func(float32, float32) { r.calls = append(r.calls, "PixelZoom") }
		f.DrawPixels = func(int32, int32, uint32, uint32, unsafe.Pointer) { r.calls = append(r.calls, "DrawPixels") }
	}
	return f
}

func (r *recorder) count(name string) int {
	n := 0
	for _, c := range r.calls {
		if c == name {
			n++
		}
	}
	return n
}

func TestFramebufferUploadBlitFlipsRows(t *testing.T) {
	r := &recorder{}
	fb := NewFramebuffer(r.functions(true, true))

	if err := fb.Upload(make([]uint8, 4*3*4), 4, 3); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if got := r.count("BlitFramebuffer"); got != 1 {
		t.Fatalf("BlitFramebuffer calls = %d, want 1", got)
	}
	if r.count("DrawPixels") != 0 {
		t.Error("DrawPixels used although blit is available")
	}
	want := [8]int32{0, 0, 4, 3, 0, 3, 4, 0}
	if r.blit != want {
		t.Errorf("blit rect = %v, want %v", r.blit, want)
	}
}

func TestFramebufferReusesObjects(t *testing.T) {
	r := &recorder{}
	fb := NewFramebuffer(r.functions(true, false))
	pix := make([]uint8, 2*2*4)

	for i := 0; i < 3; i++ {
		if err := fb.Upload(pix, 2, 2); err != nil {
			t.Fatalf("Upload %d: %v", i, err)
		}
	}
	if got := r.count("GenTextures"); got != 1 {
		t.Errorf("GenTextures calls = %d, want 1", got)
	}
	if got := r.count("GenFramebuffers"); got != 1 {
		t.Errorf("GenFramebuffers calls = %d, want 1", got)
	}
	if got := r.count("TexImage2D"); got != 1 {
		t.Errorf("TexImage2D calls = %d, want 1", got)
	}
	if got := r.count("TexSubImage2D"); got != 2 {
		t.Errorf("TexSubImage2D calls = %d, want 2", got)
	}

	// A new size reallocates the texture storage.
	if err := fb.Upload(make([]uint8, 3*3*4), 3, 3); err != nil {
		t.Fatalf("Upload resized: %v", err)
	}
	if got := r.count("TexImage2D"); got != 2 {
		t.Errorf("TexImage2D calls after resize = %d, want 2", got)
	}
}

func TestFramebufferDrawPixelsFallback(t *testing.T) {
	r := &recorder{}
	fb := NewFramebuffer(r.functions(false, true))

	if err := fb.Upload(make([]uint8, 16), 2, 2); err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if r.count("DrawPixels") != 1 {
		t.Errorf("DrawPixels calls = %d, want 1", r.count("DrawPixels"))
	}
	if r.count("GenTextures") != 0 {
		t.Error("texture created on legacy path")
	}
}

func TestFramebufferUploadErrors(t *testing.T) {
	r := &recorder{}
	fb := NewFramebuffer(r.functions(true, false))

	if err := fb.Upload(make([]uint8, 4), 2, 2); err == nil {
		t.Error("short buffer: expected error")
	}
	if err := fb.Upload(nil, 0, 5); err != nil {
		t.Errorf("empty frame: %v", err)
	}

	r.errCode = 0x0502
	err := fb.Upload(make([]uint8, 16), 2, 2)
	if err == nil || !strings.Contains(err.Error(), "0x0502") {
		t.Errorf("GL error not reported: %v", err)
	}
}

func TestFramebufferDelete(t *testing.T) {
	r := &recorder{}
	fb := NewFramebuffer(r.functions(true, false))
	if err := fb.Upload(make([]uint8, 16), 2, 2); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	fb.Delete()
	fb.Delete()
	if r.count("DeleteTextures") != 1 || r.count("DeleteFramebuffers") != 1 {
		t.Errorf("delete calls = %d textures, %d framebuffers, want 1 each",
			r.count("DeleteTextures"), r.count("DeleteFramebuffers"))
	}
	if err := fb.Upload(make([]uint8, 16), 2, 2); !errors.Is(err, ErrFramebufferDeleted) {
		t.Errorf("Upload after Delete = %v, want ErrFramebufferDeleted", err)
	}
}

func TestLoadMissingRequired(t *testing.T) {
	_, err := Load(func(string) uintptr { return 0 })
	if !errors.Is(err, ErrMissingFunction) {
		t.Fatalf("Load = %v, want ErrMissingFunction", err)
	}
	if !strings.Contains(err.Error(), "glGetError") {
		t.Errorf("error does not name the function: %v", err)
	}
}

func TestFunctionsHelpers(t *testing.T) {
	r := &recorder{binding: 5}
	f := r.functions(false, false)
	if got := f.FramebufferBinding(); got != 5 {
		t.Errorf("FramebufferBinding = %d, want 5", got)
	}
	f.SetViewport(10, 20)
	if r.count("Viewport") != 1 {
		t.Error("SetViewport did not call Viewport")
	}
	if f.HasBlit() || f.HasDrawPixels() {
		t.Error("no optional functions loaded, but helpers report availability")
	}
}
