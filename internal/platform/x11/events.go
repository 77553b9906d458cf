// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/gogpu/ggwin/internal/platform"
)

// Core pointer buttons. 4-7 are scroll wheel clicks.
const (
	buttonLeft       = 1
	buttonMiddle     = 2
	buttonRight      = 3
	buttonWheelUp    = 4
	buttonWheelDown  = 5
	buttonWheelLeft  = 6
	buttonWheelRight = 7
)

// translator turns X events into platform events for tracked windows and
// coalesces redraw requests.
type translator struct {
	isDelete func(*xproto.ClientMessageEvent) bool

	sizes   map[xproto.Window]platform.Size
	queue   []platform.Event
	redraws []xproto.Window
	pending map[xproto.Window]bool
}

func newTranslator(isDelete func(*xproto.ClientMessageEvent) bool) *translator {
	return &translator{
		isDelete: isDelete,
		sizes:    make(map[xproto.Window]platform.Size),
		pending:  make(map[xproto.Window]bool),
	}
}

func (t *translator) track(id xproto.Window, size platform.Size) {
	t.sizes[id] = size
}

func (t *translator) untrack(id xproto.Window) {
	delete(t.sizes, id)
	if t.pending[id] {
		delete(t.pending, id)
		for i, r := range t.redraws {
			if r == id {
				t.redraws = append(t.redraws[:i], t.redraws[i+1:]...)
				break
			}
		}
	}
}

func (t *translator) size(id xproto.Window) (platform.Size, bool) {
	s, ok := t.sizes[id]
	return s, ok
}

func (t *translator) requestRedraw(id xproto.Window) {
	if _, ok := t.sizes[id]; !ok || t.pending[id] {
		return
	}
	t.pending[id] = true
	t.redraws = append(t.redraws, id)
}

func (t *translator) pop() (platform.Event, bool) {
	if len(t.queue) == 0 {
		return nil, false
	}
	ev := t.queue[0]
	t.queue = t.queue[1:]
	return ev, true
}

func (t *translator) popRedraw() (platform.Event, bool) {
	if len(t.redraws) == 0 {
		return nil, false
	}
	id := t.redraws[0]
	t.redraws = t.redraws[1:]
	delete(t.pending, id)
	return platform.RedrawRequested{ID: platform.WindowID(id)}, true
}

func (t *translator) emit(ev platform.Event) {
	t.queue = append(t.queue, ev)
}

// translate queues the platform events for xev. Events for untracked windows
// are ignored.
func (t *translator) translate(xev xgb.Event) {
	switch ev := xev.(type) {
	case xproto.ConfigureNotifyEvent:
		old, ok := t.sizes[ev.Window]
		if !ok {
			return
		}
		size := platform.Size{Width: int(ev.Width), Height: int(ev.Height)}
		if size == old {
			return
		}
		t.sizes[ev.Window] = size
		t.emit(platform.Resized{ID: platform.WindowID(ev.Window), Size: size})

	case xproto.ExposeEvent:
		// Count is the number of Expose events still to follow.
		if ev.Count == 0 {
			t.requestRedraw(ev.Window)
		}

	case xproto.ClientMessageEvent:
		if _, ok := t.sizes[ev.Window]; !ok {
			return
		}
		if t.isDelete(&ev) {
			t.emit(platform.CloseRequested{ID: platform.WindowID(ev.Window)})
		}

	case xproto.EnterNotifyEvent:
		if _, ok := t.sizes[ev.Event]; ok {
			t.emit(platform.CursorEntered{ID: platform.WindowID(ev.Event)})
		}

	case xproto.LeaveNotifyEvent:
		if _, ok := t.sizes[ev.Event]; ok {
			t.emit(platform.CursorLeft{ID: platform.WindowID(ev.Event)})
		}

	case xproto.MotionNotifyEvent:
		if _, ok := t.sizes[ev.Event]; ok {
			t.emit(platform.CursorMoved{
				ID: platform.WindowID(ev.Event),
				X:  float64(ev.EventX),
				Y:  float64(ev.EventY),
			})
		}

	case xproto.ButtonPressEvent:
		t.button(ev.Event, ev.Detail, platform.Pressed)

	case xproto.ButtonReleaseEvent:
		t.button(ev.Event, ev.Detail, platform.Released)
	}
}

func (t *translator) button(win xproto.Window, detail xproto.Button, state platform.ButtonState) {
	if _, ok := t.sizes[win]; !ok {
		return
	}
	id := platform.WindowID(win)

	var delta platform.ScrollDelta
	switch detail {
	case buttonWheelUp:
		delta.Y = 1
	case buttonWheelDown:
		delta.Y = -1
	case buttonWheelLeft:
		delta.X = -1
	case buttonWheelRight:
		delta.X = 1
	default:
		t.emit(platform.MouseInput{ID: id, State: state, Button: mouseButton(detail)})
		return
	}
	// A wheel click is reported as press and release; the press carries the delta.
	if state == platform.Pressed {
		delta.Lines = true
		t.emit(platform.MouseWheel{ID: id, Delta: delta, Phase: platform.PhaseMoved})
	}
}

func mouseButton(detail xproto.Button) platform.MouseButton {
	switch detail {
	case buttonLeft:
		return platform.ButtonLeft
	case buttonMiddle:
		return platform.ButtonMiddle
	case buttonRight:
		return platform.ButtonRight
	default:
		return platform.ButtonOther
	}
}
