// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/ggwin/internal/platform"
)

// ContextResource owns one rendering context and the present-surface it is
// current on. It is bound 1:1 to a native window and must be released before
// that window is destroyed.
//
// ContextResource is NOT safe for concurrent use. GPU contexts are bound to
// the calling OS thread.
type ContextResource struct {
	ctx      Context
	surface  Surface
	log      *slog.Logger
	released bool
}

// Bind creates a present-surface with configuration c sized to win and
// makes ctx current on it. ctx must have been created with c. Bind takes
// ownership of ctx: on failure the context is destroyed and any surface
// created for it is released.
func Bind(win platform.Window, shared *Shared, c Config, ctx Context) (*ContextResource, error) {
	size := win.Size()
	surface, err := shared.Display.CreateWindowSurface(c, win.Handle(), size.Width, size.Height)
	if err != nil {
		ctx.Destroy()
		return nil, fmt.Errorf("%w: window %d: %w", ErrSurfaceCreation, win.ID(), err)
	}
	if err := ctx.MakeCurrent(surface); err != nil {
		surface.Destroy()
		ctx.Destroy()
		return nil, fmt.Errorf("%w: make current on window %d: %w", ErrSurfaceCreation, win.ID(), err)
	}
	return &ContextResource{ctx: ctx, surface: surface, log: shared.logger()}, nil
}

// MakeCurrentIfNeeded makes the context current on its surface unless it
// already is. Another window's draw may have made a different context current.
func (r *ContextResource) MakeCurrentIfNeeded() error {
	if r.released {
		return ErrReleased
	}
	if r.ctx.IsCurrent() {
		return nil
	}
	return r.ctx.MakeCurrent(r.surface)
}

// Resize resizes the present-surface. Zero dimensions are ignored.
func (r *ContextResource) Resize(width, height int) error {
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := r.MakeCurrentIfNeeded(); err != nil {
		return err
	}
	r.surface.Resize(width, height)
	return nil
}

// SetSwapInterval sets the swap interval of the surface.
func (r *ContextResource) SetSwapInterval(interval int) error {
	if err := r.MakeCurrentIfNeeded(); err != nil {
		return err
	}
	return r.surface.SetSwapInterval(interval)
}

// SwapBuffers presents the drawn frame.
func (r *ContextResource) SwapBuffers() error {
	if r.released {
		return ErrReleased
	}
	if err := r.surface.SwapBuffers(); err != nil {
		return fmt.Errorf("%w: %w", ErrPresentFailed, err)
	}
	return nil
}

// Release makes the context not current, then destroys the surface and the
// context. It is idempotent.
func (r *ContextResource) Release() {
	if r.released {
		return
	}
	r.released = true
	if r.ctx.IsCurrent() {
		if err := r.ctx.MakeNotCurrent(); err != nil {
			r.log.Warn("gpu: make not current failed", "err", err)
		}
	}
	r.surface.Destroy()
	r.ctx.Destroy()
}
