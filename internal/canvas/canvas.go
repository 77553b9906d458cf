// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gg"
)

var (
	// ErrClosed is returned when operations are attempted on a closed canvas.
	ErrClosed = errors.New("canvas: closed")

	// ErrInvalidDimensions is returned when width or height is not positive.
	ErrInvalidDimensions = errors.New("canvas: invalid dimensions")
)

// PaintFunc draws one frame into dc.
type PaintFunc func(dc *gg.Context)

// surface is the state shared by Raster and GPU.
type surface struct {
	dc     *gg.Context
	width  int
	height int
	closed bool
}

func newSurface(width, height int) (surface, error) {
	if width <= 0 || height <= 0 {
		return surface{}, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	return surface{dc: gg.NewContext(width, height), width: width, height: height}, nil
}

// draw clears the context, paints and returns the pixels to finalize.
func (s *surface) draw(paint PaintFunc) ([]uint8, error) {
	if s.closed {
		return nil, ErrClosed
	}
	s.dc.ClearWithColor(gg.Transparent)
	if paint != nil {
		paint(s.dc)
	}
	return s.dc.ResizeTarget().Data(), nil
}

// resize discards the context and creates a new one at the new size.
func (s *surface) resize(width, height int) error {
	if s.closed {
		return ErrClosed
	}
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	old := s.dc
	s.dc = gg.NewContext(width, height)
	s.width, s.height = width, height
	_ = old.Close()
	return nil
}

// Size returns the canvas size in pixels.
func (s *surface) Size() (width, height int) {
	return s.width, s.height
}

// Context returns the gg context, or nil once closed.
// The context is replaced by every Resize.
func (s *surface) Context() *gg.Context {
	if s.closed {
		return nil
	}
	return s.dc
}

func (s *surface) close() error {
	if s.closed {
		return ErrClosed
	}
	s.closed = true
	return s.dc.Close()
}
