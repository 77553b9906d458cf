// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
)

// Target receives finished frames on the GPU path. gl.Framebuffer is the
// production implementation.
type Target interface {
	Upload(pix []uint8, width, height int) error
}

// FramebufferInfo describes the window framebuffer a GPU canvas renders into.
type FramebufferInfo struct {
	// FBO is the framebuffer object name, 0 for the default framebuffer.
	FBO uint32

	// Format is the color format of the framebuffer.
	Format gputypes.TextureFormat

	// Samples is the multisample count of the configuration.
	Samples int

	// Stencil is the stencil depth in bits.
	Stencil int
}

// GPU is a canvas whose frames are uploaded into the framebuffer of the
// current GL context.
type GPU struct {
	surface
	target Target
	info   FramebufferInfo
}

// NewGPU creates a GPU canvas of the given size rendering into target.
func NewGPU(target Target, info FramebufferInfo, width, height int) (*GPU, error) {
	if target == nil {
		return nil, errors.New("canvas: nil target")
	}
	if info.Format == gputypes.TextureFormatUndefined {
		info.Format = gputypes.TextureFormatRGBA8Unorm
	}
	s, err := newSurface(width, height)
	if err != nil {
		return nil, err
	}
	return &GPU{surface: s, target: target, info: info}, nil
}

// Info returns the framebuffer description captured at creation.
func (g *GPU) Info() FramebufferInfo {
	return g.info
}

// Draw renders one frame with paint, flushes pending accelerator work and
// uploads the frame. The caller presents it by swapping buffers.
func (g *GPU) Draw(paint PaintFunc) error {
	if _, err := g.draw(paint); err != nil {
		return err
	}
	if err := g.dc.FlushGPU(); err != nil {
		return fmt.Errorf("canvas: flush: %w", err)
	}
	pix := g.dc.ResizeTarget().Data()
	if err := g.target.Upload(pix, g.width, g.height); err != nil {
		return fmt.Errorf("canvas: upload %dx%d: %w", g.width, g.height, err)
	}
	return nil
}

// Resize recreates the canvas at the new size.
func (g *GPU) Resize(width, height int) error {
	return g.resize(width, height)
}

// Close releases the gg context. The target is not released.
func (g *GPU) Close() error {
	return g.close()
}
