// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/gogpu/ggwin/internal/platform"
)

// Window is an X11 top-level window.
type Window struct {
	platform *Platform
	xwin     *xwindow.Window
	colormap xproto.Colormap
	depth    byte
	size     platform.Size
}

var _ platform.Window = (*Window)(nil)

// ID returns the window XID.
func (w *Window) ID() platform.WindowID { return platform.WindowID(w.xwin.Id) }

// Size returns the last size reported by the server.
func (w *Window) Size() platform.Size {
	if s, ok := w.platform.translator.size(w.xwin.Id); ok {
		return s
	}
	return w.size
}

// SetVisible maps or unmaps the window.
func (w *Window) SetVisible(visible bool) {
	if visible {
		w.xwin.Map()
	} else {
		w.xwin.Unmap()
	}
	w.platform.X.Sync()
}

// RequestRedraw queues a RedrawRequested event. Requests coalesce until the
// event is delivered.
func (w *Window) RequestRedraw() {
	w.platform.translator.requestRedraw(w.xwin.Id)
}

// Handle returns the XID.
func (w *Window) Handle() uintptr { return uintptr(w.xwin.Id) }

// Destroy destroys the window and its colormap.
func (w *Window) Destroy() {
	if w.xwin.Destroyed {
		return
	}
	w.platform.forget(w.xwin.Id)
	w.xwin.Destroy()
	if w.colormap != 0 {
		xproto.FreeColormap(w.platform.X.Conn(), w.colormap)
		w.colormap = 0
	}
}
