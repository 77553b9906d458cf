// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas adapts gg.Context to native window surfaces.
//
// A canvas owns one gg.Context sized to its window. Every Draw clears the
// context to transparent, runs the paint function and finalizes the frame:
//
//   - Raster hands the pixmap to a Presenter (CPU path).
//   - GPU flushes pending accelerator work and uploads the pixmap into the
//     framebuffer of the current GL context (GPU path).
//
// Resize always recreates the gg.Context at the new size.
//
// # Thread Safety
//
// Canvases are NOT safe for concurrent use. They are driven from the
// goroutine running the window event loop.
package canvas
