package ggwin

import (
	"log/slog"
	"os"
	"strings"

	"github.com/gogpu/ggwin/internal/gl"
	"github.com/gogpu/ggwin/internal/gpu"
	"github.com/gogpu/ggwin/internal/platform"
)

// Option configures Run.
//
// Example:
//
//	// Force the software backend and log to stderr
//	err := ggwin.Run(app,
//	    ggwin.WithBackend(ggwin.BackendSoftware),
//	    ggwin.WithLogger(slog.Default()))
type Option func(*options)

// options holds the Run configuration.
type options struct {
	logger       *slog.Logger
	platform     platform.Platform
	opener       gpu.Opener
	backend      Backend
	swapInterval int

	// glLoad replaces gl.Load in the GPU probe.
	glLoad func(procAddr func(name string) uintptr) (*gl.Functions, error)
}

// backendEnv forces a backend when set to "software".
const backendEnv = "GGWIN_BACKEND"

// defaultOptions returns the defaults, honoring GGWIN_BACKEND.
func defaultOptions() options {
	o := options{swapInterval: 1}
	if strings.EqualFold(os.Getenv(backendEnv), "software") {
		o.backend = BackendSoftware
	}
	return o
}

func newOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = Logger()
	}
	return o
}

// WithLogger sets the logger used by this run instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithPlatform replaces the native windowing system connection.
func WithPlatform(p platform.Platform) Option {
	return func(o *options) {
		o.platform = p
	}
}

// WithGPUOpener replaces the GPU driver binding used by the probe.
func WithGPUOpener(open gpu.Opener) Option {
	return func(o *options) {
		o.opener = open
	}
}

// WithBackend forces a backend. Only BackendSoftware has an effect: it
// skips GPU probing. BackendUninitialized restores automatic selection.
func WithBackend(b Backend) Option {
	return func(o *options) {
		o.backend = b
	}
}

// WithSwapInterval sets the swap interval of GPU windows. The default is 1
// (vsync); 0 disables vsync.
func WithSwapInterval(n int) Option {
	return func(o *options) {
		o.swapInterval = n
	}
}

// withGLLoader replaces the GL function loader used by the probe.
func withGLLoader(load func(procAddr func(name string) uintptr) (*gl.Functions, error)) Option {
	return func(o *options) {
		o.glLoad = load
	}
}
