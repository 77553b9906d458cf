// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"log/slog"

	"github.com/gogpu/ggwin/internal/gl"
)

// Shared is the GPU state created once at backend commitment and used by
// every window: the display connection, the chosen configurations and the GL
// function table.
type Shared struct {
	Display Display

	// Config is the preferred configuration, transparency-capable when the
	// display offers one. Transparent windows use it.
	Config Config

	// Opaque is the configuration for windows that did not ask for
	// transparency. It equals Config when no opaque configuration exists.
	Opaque Config

	Funcs *gl.Functions

	// Log receives probe and context records. Nil uses the package logger.
	Log *slog.Logger
}

// ConfigFor returns the configuration a window should be built with.
func (s *Shared) ConfigFor(transparent bool) Config {
	if transparent || s.Opaque == nil {
		return s.Config
	}
	return s.Opaque
}

// NewContext creates a context for a window using configuration c.
func (s *Shared) NewContext(c Config, window uintptr) (Context, error) {
	return createContext(s.Display, c, window, s.logger())
}

// Release terminates the display. All contexts and surfaces must already be
// released.
func (s *Shared) Release() {
	if s.Display != nil {
		s.Display.Terminate()
		s.Display = nil
	}
}

func (s *Shared) logger() *slog.Logger {
	if s.Log != nil {
		return s.Log
	}
	return slogger()
}
