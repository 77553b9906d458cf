// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package platformtest provides an in-memory platform for tests.
package platformtest

import (
	"errors"
	"fmt"

	"github.com/gogpu/ggwin/internal/platform"
)

// ErrInjected is returned by operations configured to fail.
var ErrInjected = errors.New("platformtest: injected failure")

// Platform is an in-memory platform.Platform. Events are delivered from
// Queue in FIFO order; NextEvent returns platform.ErrClosed once the queue
// is drained.
type Platform struct {
	Windows []*Window
	Queue   []platform.Event

	NeedsWindow      bool
	FailBuild        bool
	FailPresenter    bool
	FailPresent      bool
	TransparentByVis map[uint32]bool

	// UnpresentableVis makes NewPresenter fail for windows built with
	// these visuals.
	UnpresentableVis map[uint32]bool

	Presenters []*Presenter
	Closed     bool

	nextID platform.WindowID
}

// New returns an empty platform.
func New() *Platform {
	return &Platform{nextID: 1}
}

// Post appends events to the queue.
func (p *Platform) Post(events ...platform.Event) {
	p.Queue = append(p.Queue, events...)
}

// NextEvent pops the next queued event.
func (p *Platform) NextEvent() (platform.Event, error) {
	if len(p.Queue) == 0 {
		return nil, platform.ErrClosed
	}
	ev := p.Queue[0]
	p.Queue = p.Queue[1:]
	return ev, nil
}

// BuildWindow creates a fake window of the spec's size.
func (p *Platform) BuildWindow(spec platform.WindowSpec) (platform.Window, error) {
	if p.FailBuild {
		return nil, fmt.Errorf("build window %q: %w", spec.Title, ErrInjected)
	}
	if p.nextID == 0 {
		p.nextID = 1
	}
	w := &Window{
		platform: p,
		id:       p.nextID,
		Spec:     spec,
		size:     platform.Size{Width: spec.Width, Height: spec.Height},
	}
	p.nextID++
	p.Windows = append(p.Windows, w)
	return w, nil
}

// NewPresenter binds a recording presenter to w.
func (p *Platform) NewPresenter(w platform.Window) (platform.Presenter, error) {
	fw := w.(*Window)
	if p.FailPresenter || p.UnpresentableVis[fw.Spec.Visual] {
		return nil, ErrInjected
	}
	pr := &Presenter{platform: p, Window: fw}
	p.Presenters = append(p.Presenters, pr)
	return pr, nil
}

// NativeDisplay returns zero.
func (p *Platform) NativeDisplay() uintptr { return 0 }

// NeedsWindowForDisplay returns p.NeedsWindow.
func (p *Platform) NeedsWindowForDisplay() bool { return p.NeedsWindow }

// TransparentVisual consults TransparentByVis.
func (p *Platform) TransparentVisual(visual uint32) bool { return p.TransparentByVis[visual] }

// Close marks the platform closed.
func (p *Platform) Close() { p.Closed = true }

// Window is a fake native window.
type Window struct {
	platform *Platform
	id       platform.WindowID
	size     platform.Size

	Spec      platform.WindowSpec
	Visible   bool
	Destroyed bool

	// Redraws counts RequestRedraw calls.
	Redraws int

	// VisibleChanges records every SetVisible call in order.
	VisibleChanges []bool

	// OnDestroy, if set, runs when the window is first destroyed.
	OnDestroy func()
}

// ID returns the window identifier.
func (w *Window) ID() platform.WindowID { return w.id }

// Size returns the current size.
func (w *Window) Size() platform.Size { return w.size }

// SetSize changes the size the window reports.
func (w *Window) SetSize(width, height int) {
	w.size = platform.Size{Width: width, Height: height}
}

// SetVisible records visibility changes.
func (w *Window) SetVisible(visible bool) {
	w.Visible = visible
	w.VisibleChanges = append(w.VisibleChanges, visible)
}

// RequestRedraw counts redraw requests.
func (w *Window) RequestRedraw() { w.Redraws++ }

// Handle returns the window id as a handle.
func (w *Window) Handle() uintptr { return uintptr(w.id) }

// Destroy marks the window destroyed.
func (w *Window) Destroy() {
	if w.Destroyed {
		return
	}
	w.Destroyed = true
	if w.OnDestroy != nil {
		w.OnDestroy()
	}
}

// Frame is one presented buffer.
type Frame struct {
	Width, Height int
	Pix           []uint8
}

// Presenter records presented frames.
type Presenter struct {
	platform *Platform
	Window   *Window
	Frames   []Frame
	Closed   bool

	// ClosedBeforeWindow is set when Close ran while the window was alive.
	ClosedBeforeWindow bool
}

// Present records a copy of pix.
func (p *Presenter) Present(pix []uint8, width, height int) error {
	if p.platform.FailPresent {
		return ErrInjected
	}
	cp := make([]uint8, len(pix))
	copy(cp, pix)
	p.Frames = append(p.Frames, Frame{Width: width, Height: height, Pix: cp})
	return nil
}

// Close marks the presenter closed.
func (p *Presenter) Close() {
	p.Closed = true
	p.ClosedBeforeWindow = !p.Window.Destroyed
}
