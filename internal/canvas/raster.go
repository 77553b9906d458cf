// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"
)

// Presenter copies a premultiplied RGBA frame to a window.
type Presenter interface {
	Present(pix []uint8, width, height int) error
}

// Raster is a CPU canvas that presents every frame through a Presenter.
type Raster struct {
	surface
	presenter Presenter
}

// NewRaster creates a raster canvas of the given size.
func NewRaster(p Presenter, width, height int) (*Raster, error) {
	if p == nil {
		return nil, errors.New("canvas: nil presenter")
	}
	s, err := newSurface(width, height)
	if err != nil {
		return nil, err
	}
	return &Raster{surface: s, presenter: p}, nil
}

// Draw renders one frame with paint and presents it.
func (r *Raster) Draw(paint PaintFunc) error {
	pix, err := r.draw(paint)
	if err != nil {
		return err
	}
	if err := r.presenter.Present(pix, r.width, r.height); err != nil {
		return fmt.Errorf("canvas: present %dx%d: %w", r.width, r.height, err)
	}
	return nil
}

// Resize recreates the canvas at the new size.
func (r *Raster) Resize(width, height int) error {
	return r.resize(width, height)
}

// Close releases the gg context. The presenter is not closed.
func (r *Raster) Close() error {
	return r.close()
}
