package ggwin

import (
	"fmt"

	"github.com/gogpu/ggwin/internal/platform"
)

// router dispatches platform events to the manager and the handlers.
type router struct {
	m *Manager

	// closed holds windows closed while events for them may still be queued.
	// An id leaves the set when a live window reuses it.
	closed map[WindowID]struct{}
}

func newRouter(m *Manager) *router {
	return &router{m: m, closed: make(map[WindowID]struct{})}
}

// route handles one event. exit is true once the last window has closed.
func (r *router) route(ev platform.Event) (exit bool, err error) {
	id := ev.Window()
	if r.m.Has(id) {
		delete(r.closed, id)
	} else {
		if _, ok := r.closed[id]; ok {
			r.m.log.Debug("ggwin: event for closed window dropped", "window", id, "event", fmt.Sprintf("%T", ev))
			return false, nil
		}
		panic(fmt.Errorf("%w: %d (event %T)", ErrUnknownWindow, id, ev))
	}

	switch ev := ev.(type) {
	case platform.Resized:
		return false, r.m.Resize(id, ev.Size.Width, ev.Size.Height)

	case platform.CloseRequested:
		e := r.m.mustEntry(id)
		if !e.handler.Close(r.m.cx(id)) {
			r.m.log.Debug("ggwin: close vetoed", "window", id)
			return false, nil
		}
		r.closed[id] = struct{}{}
		return r.m.CloseWindow(id), nil

	case platform.RedrawRequested:
		if err := r.m.Draw(id); err != nil {
			return false, err
		}
		r.m.mustEntry(id).handler.AfterDraw(r.m.cx(id))

	case platform.CursorEntered:
		r.m.CursorEntered(id)

	case platform.CursorLeft:
		r.m.CursorLeft(id)

	case platform.CursorMoved:
		r.m.CursorMoved(id, ev.X, ev.Y)

	case platform.MouseInput:
		r.m.MouseInput(id, ev.State, ev.Button)

	case platform.MouseWheel:
		r.m.MouseWheel(id, ev.Delta, ev.Phase)

	default:
		r.m.log.Debug("ggwin: unhandled event", "window", id, "event", fmt.Sprintf("%T", ev))
	}
	return false, nil
}
