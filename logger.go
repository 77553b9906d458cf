package ggwin

import (
	"context"
	"log/slog"
	"sync/atomic"

	"github.com/gogpu/ggwin/internal/gpu"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for ggwin and its internal packages.
// By default, ggwin produces no log output. Pass nil to restore the silent
// default.
//
// Log levels used by ggwin:
//   - [slog.LevelDebug]: per-window lifecycle (built, opened, released)
//   - [slog.LevelInfo]: backend commitment, selected GPU configuration
//   - [slog.LevelWarn]: software fallback, vsync failures, release errors
//
// Example:
//
//	ggwin.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
//	    Level: slog.LevelDebug,
//	})))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)
	gpu.SetLogger(l)
}

// Logger returns the current logger used by ggwin.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}
