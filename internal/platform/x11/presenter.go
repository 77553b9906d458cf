// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"errors"
	"fmt"
	"image"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/xgraphics"
)

// errPresenterClosed is returned by Present after Close.
var errPresenterClosed = errors.New("x11: presenter closed")

// Presenter copies CPU frames to a window through an xgraphics image used as
// the window's background pixmap.
type Presenter struct {
	X      *xgbutil.XUtil
	window xproto.Window
	img    *xgraphics.Image
	closed bool
}

// Present uploads a premultiplied RGBA frame and repaints the window.
func (p *Presenter) Present(pix []uint8, width, height int) error {
	if p.closed {
		return errPresenterClosed
	}
	if len(pix) < width*height*4 {
		return fmt.Errorf("x11: present: %d bytes for %dx%d frame", len(pix), width, height)
	}
	if p.img == nil || p.img.Rect.Dx() != width || p.img.Rect.Dy() != height {
		if p.img != nil {
			p.img.Destroy()
		}
		p.img = xgraphics.New(p.X, image.Rect(0, 0, width, height))
		if err := p.img.XSurfaceSet(p.window); err != nil {
			p.img = nil
			return fmt.Errorf("x11: present: %w", err)
		}
	}
	rgbaToBGRA(p.img.Pix, pix[:width*height*4])
	p.img.XDraw()
	p.img.XPaint(p.window)
	return nil
}

// Close frees the backing pixmap. It is idempotent.
func (p *Presenter) Close() {
	if p.closed {
		return
	}
	p.closed = true
	if p.img != nil {
		p.img.Destroy()
		p.img = nil
	}
}

// rgbaToBGRA converts src into the X server's BGRA byte order.
func rgbaToBGRA(dst, src []uint8) {
	for i := 0; i+3 < len(src) && i+3 < len(dst); i += 4 {
		dst[i+0] = src[i+2]
		dst[i+1] = src[i+1]
		dst[i+2] = src[i+0]
		dst[i+3] = src[i+3]
	}
}
