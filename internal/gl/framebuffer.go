// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gl

import (
	"errors"
	"fmt"
	"unsafe"
)

// ErrFramebufferDeleted is returned by Upload after Delete.
var ErrFramebufferDeleted = errors.New("gl: framebuffer deleted")

// Framebuffer uploads CPU pixel frames into the framebuffer currently bound
// for drawing.
//
// With framebuffer objects available the frame is written to a texture that
// backs a read framebuffer and blitted with a vertical flip. Legacy contexts
// fall back to DrawPixels with a negative zoom.
//
// Framebuffer is NOT safe for concurrent use and requires its context to be
// current for every call.
type Framebuffer struct {
	fns     *Functions
	texture uint32
	fbo     uint32
	width   int
	height  int
	deleted bool
}

// NewFramebuffer returns an uploader using fns. GL objects are created lazily
// on the first upload.
func NewFramebuffer(fns *Functions) *Framebuffer {
	return &Framebuffer{fns: fns}
}

// Upload copies a width×height RGBA frame to the bound draw framebuffer.
// Rows in pix run top to bottom.
func (fb *Framebuffer) Upload(pix []uint8, width, height int) error {
	if fb.deleted {
		return ErrFramebufferDeleted
	}
	if width <= 0 || height <= 0 {
		return nil
	}
	if len(pix) < width*height*4 {
		return fmt.Errorf("gl: upload: %d bytes for %dx%d frame", len(pix), width, height)
	}
	fb.fns.PixelStorei(UNPACK_ALIGNMENT, 4)
	if fb.fns.HasBlit() {
		return fb.blit(pix, width, height)
	}
	return fb.drawPixels(pix, width, height)
}

func (fb *Framebuffer) blit(pix []uint8, width, height int) error {
	f := fb.fns
	target := f.FramebufferBinding()
	if fb.texture == 0 {
		f.GenTextures(1, &fb.texture)
		f.BindTexture(TEXTURE_2D, fb.texture)
		f.TexParameteri(TEXTURE_2D, TEXTURE_MIN_FILTER, NEAREST)
		f.TexParameteri(TEXTURE_2D, TEXTURE_MAG_FILTER, NEAREST)
	} else {
		f.BindTexture(TEXTURE_2D, fb.texture)
	}

	w, h := int32(width), int32(height)
	if width != fb.width || height != fb.height {
		f.TexImage2D(TEXTURE_2D, 0, RGBA, w, h, 0, RGBA, UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
		fb.width, fb.height = width, height
	} else {
		f.TexSubImage2D(TEXTURE_2D, 0, 0, 0, w, h, RGBA, UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	}

	if fb.fbo == 0 {
		f.GenFramebuffers(1, &fb.fbo)
	}
	f.BindFramebuffer(READ_FRAMEBUFFER, fb.fbo)
	f.FramebufferTexture2D(READ_FRAMEBUFFER, COLOR_ATTACHMENT0, TEXTURE_2D, fb.texture, 0)
	if f.CheckFramebufferStatus != nil {
		if status := f.CheckFramebufferStatus(READ_FRAMEBUFFER); status != FRAMEBUFFER_COMPLETE {
			f.BindFramebuffer(FRAMEBUFFER, target)
			return fmt.Errorf("gl: upload: framebuffer incomplete: 0x%04X", status)
		}
	}
	f.BindFramebuffer(DRAW_FRAMEBUFFER, target)
	// Texture rows start at the bottom, so flip while blitting.
	f.BlitFramebuffer(0, 0, w, h, 0, h, w, 0, COLOR_BUFFER_BIT, NEAREST)
	f.BindFramebuffer(FRAMEBUFFER, target)
	return f.CheckError("upload")
}

func (fb *Framebuffer) drawPixels(pix []uint8, width, height int) error {
	f := fb.fns
	f.RasterPos2i(-1, 1)
	f.PixelZoom(1, -1)
	f.DrawPixels(int32(width), int32(height), RGBA, UNSIGNED_BYTE, unsafe.Pointer(&pix[0]))
	f.PixelZoom(1, 1)
	return f.CheckError("draw pixels")
}

// Delete releases the GL objects. It is idempotent.
func (fb *Framebuffer) Delete() {
	if fb.deleted {
		return
	}
	fb.deleted = true
	if fb.fbo != 0 {
		fb.fns.DeleteFramebuffers(1, &fb.fbo)
		fb.fbo = 0
	}
	if fb.texture != 0 {
		fb.fns.DeleteTextures(1, &fb.texture)
		fb.texture = 0
	}
}
