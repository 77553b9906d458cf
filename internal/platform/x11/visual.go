// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/gogpu/ggwin/internal/platform"
)

// windowVisual resolves the visual and depth a window for spec is created
// with, and whether the result can be composited with per-pixel alpha. A zero
// spec visual selects the root visual.
func windowVisual(screen *xproto.ScreenInfo, spec platform.WindowSpec) (visual xproto.Visualid, depth byte, alpha bool, err error) {
	if spec.Visual == 0 {
		return screen.RootVisual, screen.RootDepth, false, nil
	}
	visual = xproto.Visualid(spec.Visual)
	depth, ok := visualDepth(screen, visual)
	if !ok {
		return 0, 0, false, fmt.Errorf("%w: 0x%x", errUnknownVisual, spec.Visual)
	}
	return visual, depth, spec.Transparent && transparentVisual(screen, visual), nil
}

// visualDepth returns the depth of visual on screen.
func visualDepth(screen *xproto.ScreenInfo, visual xproto.Visualid) (byte, bool) {
	for _, d := range screen.AllowedDepths {
		for _, v := range d.Visuals {
			if v.VisualId == visual {
				return d.Depth, true
			}
		}
	}
	return 0, false
}

// transparentVisual reports whether visual is a 32-bit TrueColor visual,
// which compositors blend with per-pixel alpha.
func transparentVisual(screen *xproto.ScreenInfo, visual xproto.Visualid) bool {
	for _, d := range screen.AllowedDepths {
		if d.Depth != 32 {
			continue
		}
		for _, v := range d.Visuals {
			if v.VisualId == visual && v.Class == xproto.VisualClassTrueColor {
				return true
			}
		}
	}
	return false
}
