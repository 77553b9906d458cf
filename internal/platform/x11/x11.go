// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package x11 implements the platform contracts on the X Window System using
// BurntSushi/xgb and xgbutil.
//
// GPU bindings receive window XIDs as handles and use their default display;
// NativeDisplay is therefore zero. Software windows are presented through
// xgraphics pixmaps and always use the root visual.
package x11

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/gogpu/ggwin/internal/platform"
)

// eventMask is selected on every window.
const eventMask = xproto.EventMaskStructureNotify |
	xproto.EventMaskExposure |
	xproto.EventMaskEnterWindow |
	xproto.EventMaskLeaveWindow |
	xproto.EventMaskPointerMotion |
	xproto.EventMaskButtonPress |
	xproto.EventMaskButtonRelease

// Platform is a connection to an X server.
//
// Platform is NOT safe for concurrent use. It must be driven from the
// goroutine running the event loop.
type Platform struct {
	X   *xgbutil.XUtil
	log *slog.Logger

	windows    map[xproto.Window]*Window
	translator *translator
	closed     bool
}

var _ platform.Platform = (*Platform)(nil)

// Connect opens a connection to the display named by $DISPLAY.
func Connect(l *slog.Logger) (*Platform, error) {
	X, err := xgbutil.NewConn()
	if err != nil {
		return nil, fmt.Errorf("x11: connect: %w", err)
	}
	if l == nil {
		l = slog.New(slog.DiscardHandler)
	}
	p := &Platform{
		X:       X,
		log:     l,
		windows: make(map[xproto.Window]*Window),
	}
	p.translator = newTranslator(func(ev *xproto.ClientMessageEvent) bool {
		return icccm.IsDeleteProtocol(X, xevent.ClientMessageEvent{ClientMessageEvent: ev})
	})
	l.Debug("x11: connected", "screen", X.Screen().Root, "depth", X.Screen().RootDepth)
	return p, nil
}

// BuildWindow creates an unmapped top-level window.
func (p *Platform) BuildWindow(spec platform.WindowSpec) (platform.Window, error) {
	if p.closed {
		return nil, platform.ErrClosed
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("x11: build window %q: invalid size %dx%d", spec.Title, spec.Width, spec.Height)
	}
	screen := p.X.Screen()
	c := p.X.Conn()

	visual, depth, alpha, err := windowVisual(screen, spec)
	if err != nil {
		return nil, err
	}
	if spec.Transparent && !alpha {
		p.log.Warn("x11: transparency unavailable for visual, window will be opaque", "title", spec.Title, "visual", visual)
	}

	xwin, err := xwindow.Generate(p.X)
	if err != nil {
		return nil, fmt.Errorf("x11: build window: %w", err)
	}

	mask := uint32(xproto.CwBackPixel | xproto.CwBorderPixel | xproto.CwEventMask)
	values := []uint32{0, 0, eventMask}
	var cmap xproto.Colormap
	if depth != screen.RootDepth || visual != screen.RootVisual {
		cmap, err = xproto.NewColormapId(c)
		if err != nil {
			return nil, fmt.Errorf("x11: build window: %w", err)
		}
		if err := xproto.CreateColormapChecked(c, xproto.ColormapAllocNone, cmap, screen.Root, visual).Check(); err != nil {
			return nil, fmt.Errorf("x11: create colormap: %w", err)
		}
		mask |= xproto.CwColormap
		values = append(values, uint32(cmap))
	}

	err = xproto.CreateWindowChecked(c, depth, xwin.Id, screen.Root,
		int16(spec.X), int16(spec.Y), uint16(spec.Width), uint16(spec.Height), 0,
		xproto.WindowClassInputOutput, visual, mask, values).Check()
	if err != nil {
		if cmap != 0 {
			xproto.FreeColormap(c, cmap)
		}
		return nil, fmt.Errorf("x11: create window: %w", err)
	}

	if err := icccm.WmProtocolsSet(p.X, xwin.Id, []string{"WM_DELETE_WINDOW"}); err != nil {
		p.log.Warn("x11: set WM_PROTOCOLS failed", "window", xwin.Id, "err", err)
	}
	if spec.Title != "" {
		if err := icccm.WmNameSet(p.X, xwin.Id, spec.Title); err != nil {
			p.log.Warn("x11: set WM_NAME failed", "window", xwin.Id, "err", err)
		}
	}

	w := &Window{
		platform: p,
		xwin:     xwin,
		colormap: cmap,
		depth:    depth,
		size:     platform.Size{Width: spec.Width, Height: spec.Height},
	}
	p.windows[xwin.Id] = w
	p.translator.track(xwin.Id, w.size)
	p.log.Debug("x11: window built", "window", xwin.Id, "visual", visual, "depth", depth, "transparent", alpha)
	return w, nil
}

// NewPresenter binds an xgraphics presenter to w.
func (p *Platform) NewPresenter(w platform.Window) (platform.Presenter, error) {
	xw, ok := w.(*Window)
	if !ok {
		return nil, fmt.Errorf("x11: foreign window %T", w)
	}
	// xgraphics uploads 24-bit images only.
	if xw.depth != presentDepth {
		return nil, fmt.Errorf("%w: window %d has depth %d", errPresentDepth, xw.xwin.Id, xw.depth)
	}
	return &Presenter{X: p.X, window: xw.xwin.Id}, nil
}

// NativeDisplay returns zero: GPU bindings use their default display.
func (p *Platform) NativeDisplay() uintptr { return 0 }

// NeedsWindowForDisplay returns false on X11.
func (p *Platform) NeedsWindowForDisplay() bool { return false }

// TransparentVisual reports whether visual is a 32-bit TrueColor visual.
func (p *Platform) TransparentVisual(visual uint32) bool {
	return transparentVisual(p.X.Screen(), xproto.Visualid(visual))
}

// NextEvent blocks until the next window event is available.
func (p *Platform) NextEvent() (platform.Event, error) {
	for {
		if p.closed {
			return nil, platform.ErrClosed
		}
		if ev, ok := p.translator.pop(); ok {
			return ev, nil
		}
		// Drain pending X events before delivering coalesced redraws.
		xev, xerr := p.X.Conn().PollForEvent()
		if xev == nil && xerr == nil {
			if ev, ok := p.translator.popRedraw(); ok {
				return ev, nil
			}
			xev, xerr = p.X.Conn().WaitForEvent()
			if xev == nil && xerr == nil {
				return nil, platform.ErrClosed
			}
		}
		if xerr != nil {
			p.log.Warn("x11: protocol error", "err", xerr)
			continue
		}
		p.translator.translate(xev)
	}
}

// Close disconnects from the X server.
func (p *Platform) Close() {
	if p.closed {
		return
	}
	p.closed = true
	p.X.Conn().Close()
}

func (p *Platform) forget(id xproto.Window) {
	delete(p.windows, id)
	p.translator.untrack(id)
}

// presentDepth is the only window depth Presenter can draw to.
const presentDepth = 24

var (
	errUnknownVisual = errors.New("x11: unknown visual")
	errPresentDepth  = errors.New("x11: unsupported depth for software presentation")
)
