// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/gogpu/ggwin/internal/gl"
	"github.com/gogpu/ggwin/internal/platform"
)

// ProbeParams describes the windowing system to Probe.
type ProbeParams struct {
	// NativeDisplay is the windowing system's display handle.
	NativeDisplay uintptr

	// NeedsWindow reports that a native window must exist before the
	// display can be opened. BuildWindow is then called before Opener.
	NeedsWindow bool

	// BuildWindow builds the first native window.
	BuildWindow func() (platform.Window, error)

	// TransparentVisual reports whether a native visual carries alpha.
	TransparentVisual func(visual uint32) bool

	// Load resolves the GL function table. Defaults to gl.Load.
	Load func(procAddr func(name string) uintptr) (*gl.Functions, error)

	// Logger receives probe records and is kept in Shared.Log. Nil uses
	// the package logger.
	Logger *slog.Logger
}

// Probe opens the GPU display, picks a configuration and loads the GL
// function table.
//
// When the platform needs a window to open the display, the window built for
// that purpose is returned even if probing fails so the caller can reuse it
// for the software backend. All probe failures wrap ErrProbeFailed.
func Probe(open Opener, p ProbeParams) (*Shared, platform.Window, error) {
	log := p.Logger
	if log == nil {
		log = slogger()
	}
	var eager platform.Window
	window := uintptr(0)
	if p.NeedsWindow {
		w, err := p.BuildWindow()
		if err != nil {
			return nil, nil, fmt.Errorf("%w: build window: %w", ErrProbeFailed, err)
		}
		eager = w
		window = w.Handle()
	}

	display, err := open(p.NativeDisplay, p.TransparentVisual)
	if err != nil {
		return nil, eager, fmt.Errorf("%w: open display: %w", ErrProbeFailed, err)
	}

	configs, err := display.Configs(ConfigTemplate{AlphaSize: 8})
	if err != nil {
		display.Terminate()
		return nil, eager, fmt.Errorf("%w: %w", ErrProbeFailed, err)
	}
	cfg := SelectConfig(configs)
	if cfg == nil {
		display.Terminate()
		return nil, eager, fmt.Errorf("%w: %w", ErrProbeFailed, ErrNoConfig)
	}
	opaque := SelectOpaqueConfig(configs)
	if opaque == nil {
		opaque = cfg
	}
	log.Info("gpu: config selected",
		"samples", cfg.Samples(),
		"stencil", cfg.StencilSize(),
		"transparent", cfg.SupportsTransparency(),
		"opaque_samples", opaque.Samples(),
		"window", window)

	load := p.Load
	if load == nil {
		load = gl.Load
	}
	funcs, err := load(display.ProcAddress)
	if err != nil {
		display.Terminate()
		return nil, eager, fmt.Errorf("%w: %w", ErrProbeFailed, err)
	}

	return &Shared{Display: display, Config: cfg, Opaque: opaque, Funcs: funcs, Log: p.Logger}, eager, nil
}

// SelectConfig picks the preferred configuration: one supporting
// transparency wins over one that does not, then the higher sample count
// wins. Ties keep the earlier configuration. It returns nil for an empty
// list.
func SelectConfig(configs []Config) Config {
	var best Config
	for _, c := range configs {
		if best == nil {
			best = c
			continue
		}
		ct, bt := c.SupportsTransparency(), best.SupportsTransparency()
		switch {
		case ct && !bt:
			best = c
		case ct == bt && c.Samples() > best.Samples():
			best = c
		}
	}
	return best
}

// SelectOpaqueConfig picks the configuration with the most samples among
// those without transparency. Ties keep the earlier configuration. It
// returns nil when every configuration supports transparency.
func SelectOpaqueConfig(configs []Config) Config {
	var best Config
	for _, c := range configs {
		if c.SupportsTransparency() {
			continue
		}
		if best == nil || c.Samples() > best.Samples() {
			best = c
		}
	}
	return best
}

// CreateContext creates a context trying each of ContextTiers in order.
// When all tiers fail the returned error wraps ErrContextCreation and every
// tier's error.
func CreateContext(d Display, c Config, window uintptr) (Context, error) {
	return createContext(d, c, window, slogger())
}

func createContext(d Display, c Config, window uintptr, log *slog.Logger) (Context, error) {
	var errs []error
	for _, attrs := range ContextTiers {
		ctx, err := d.CreateContext(c, attrs, window)
		if err == nil {
			log.Debug("gpu: context created", "api", attrs.String())
			return ctx, nil
		}
		log.Debug("gpu: context tier failed", "api", attrs.String(), "err", err)
		errs = append(errs, fmt.Errorf("%s: %w", attrs, err))
	}
	return nil, fmt.Errorf("%w: %w", ErrContextCreation, errors.Join(errs...))
}
