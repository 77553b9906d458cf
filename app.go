package ggwin

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/gogpu/ggwin/internal/platform"
	"github.com/gogpu/ggwin/internal/platform/x11"
)

// App creates the application's windows.
type App interface {
	// Resume is called once when the event loop starts. It must create at
	// least one window.
	Resume(cx *AppCx)
}

// AppFunc adapts a function to App.
type AppFunc func(cx *AppCx)

// Resume calls f(cx).
func (f AppFunc) Resume(cx *AppCx) { f(cx) }

// AppCx lets an App create windows.
type AppCx struct {
	m   *Manager
	err error
}

// SpawnWindow creates a window driven by w. The first error is also
// reported by Run.
func (cx *AppCx) SpawnWindow(spec WindowSpec, w Window) (WindowID, error) {
	id, err := cx.m.CreateWindow(spec, w)
	if err != nil && cx.err == nil {
		cx.err = err
	}
	return id, err
}

// Backend returns the committed backend, or BackendUninitialized before the
// first window.
func (cx *AppCx) Backend() Backend { return cx.m.Backend() }

// Run creates the application's windows and processes events until the last
// window closes.
//
// Run locks the calling goroutine to its OS thread: GPU contexts are bound
// to the thread that made them current.
func Run(app App, opts ...Option) error {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	o := newOptions(opts)
	p := o.platform
	if p == nil {
		xp, err := x11.Connect(o.logger)
		if err != nil {
			return err
		}
		p = xp
	}
	defer p.Close()

	m := newManager(p, o)
	defer m.Shutdown()

	cx := &AppCx{m: m}
	app.Resume(cx)
	if m.Len() == 0 {
		if cx.err != nil {
			return cx.err
		}
		return ErrNoWindows
	}

	return loop(p, newRouter(m))
}

// loop routes events until the router reports exit.
func loop(src platform.EventSource, r *router) error {
	for {
		ev, err := src.NextEvent()
		if errors.Is(err, platform.ErrClosed) {
			r.m.log.Debug("ggwin: event source closed")
			return nil
		}
		if err != nil {
			return fmt.Errorf("ggwin: next event: %w", err)
		}
		exit, err := r.route(ev)
		if err != nil {
			return err
		}
		if exit {
			return nil
		}
	}
}
