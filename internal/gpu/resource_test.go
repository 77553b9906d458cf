// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gpu_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"strings"
	"testing"

	"github.com/gogpu/ggwin/internal/gpu"
	"github.com/gogpu/ggwin/internal/gpu/gputest"
	"github.com/gogpu/ggwin/internal/platform"
	"github.com/gogpu/ggwin/internal/platform/platformtest"
)

func newShared(t *testing.T) (*gpu.Shared, *gputest.Display) {
	t.Helper()
	d := gputest.NewDisplay()
	shared, _, err := gpu.Probe(d.Opener(nil), gpu.ProbeParams{Load: gputest.Load})
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	return shared, d
}

func bind(t *testing.T, p *platformtest.Platform, shared *gpu.Shared, w, h int) (*gpu.ContextResource, *platformtest.Window) {
	t.Helper()
	win, err := p.BuildWindow(platform.WindowSpec{Width: w, Height: h})
	if err != nil {
		t.Fatalf("BuildWindow: %v", err)
	}
	ctx, err := shared.NewContext(shared.Config, win.Handle())
	if err != nil {
		t.Fatalf("NewContext: %v", err)
	}
	res, err := gpu.Bind(win, shared, shared.Config, ctx)
	if err != nil {
		t.Fatalf("Bind: %v", err)
	}
	return res, win.(*platformtest.Window)
}

func TestBindMakesCurrent(t *testing.T) {
	shared, d := newShared(t)
	_, _ = bind(t, platformtest.New(), shared, 640, 480)

	ctx := d.Contexts[0]
	if d.Current() != ctx {
		t.Fatal("context not current after Bind")
	}
	if s := d.Surfaces[0]; s.Width != 640 || s.Height != 480 {
		t.Errorf("surface size = %dx%d, want 640x480", s.Width, s.Height)
	}
}

func TestMakeCurrentIfNeededIsIdempotent(t *testing.T) {
	shared, d := newShared(t)
	res, _ := bind(t, platformtest.New(), shared, 100, 100)
	ctx := d.Contexts[0]

	for i := 0; i < 3; i++ {
		if err := res.MakeCurrentIfNeeded(); err != nil {
			t.Fatalf("MakeCurrentIfNeeded: %v", err)
		}
	}
	if ctx.MakeCurrentCalls != 1 {
		t.Errorf("MakeCurrent calls = %d, want 1", ctx.MakeCurrentCalls)
	}
}

func TestMakeCurrentIfNeededSwitchesBetweenWindows(t *testing.T) {
	shared, d := newShared(t)
	p := platformtest.New()
	a, _ := bind(t, p, shared, 100, 100)
	b, _ := bind(t, p, shared, 100, 100)
	ctxA, ctxB := d.Contexts[0], d.Contexts[1]

	if d.Current() != ctxB {
		t.Fatal("second context should be current after its Bind")
	}
	if err := a.MakeCurrentIfNeeded(); err != nil {
		t.Fatal(err)
	}
	if d.Current() != ctxA || ctxA.MakeCurrentCalls != 2 {
		t.Errorf("switch to A: current=%v calls=%d", d.Current() == ctxA, ctxA.MakeCurrentCalls)
	}
	if err := b.MakeCurrentIfNeeded(); err != nil {
		t.Fatal(err)
	}
	if d.Current() != ctxB || ctxB.MakeCurrentCalls != 2 {
		t.Errorf("switch to B: current=%v calls=%d", d.Current() == ctxB, ctxB.MakeCurrentCalls)
	}
}

func TestResourceResize(t *testing.T) {
	shared, d := newShared(t)
	res, _ := bind(t, platformtest.New(), shared, 100, 100)
	s := d.Surfaces[0]

	if err := res.Resize(0, 50); err != nil {
		t.Fatal(err)
	}
	if s.Width != 100 || s.Height != 100 {
		t.Errorf("zero-size resize changed surface to %dx%d", s.Width, s.Height)
	}
	if err := res.Resize(300, 200); err != nil {
		t.Fatal(err)
	}
	if s.Width != 300 || s.Height != 200 {
		t.Errorf("surface = %dx%d, want 300x200", s.Width, s.Height)
	}
}

func TestResourceSwapBuffers(t *testing.T) {
	shared, d := newShared(t)
	res, _ := bind(t, platformtest.New(), shared, 100, 100)

	if err := res.SwapBuffers(); err != nil {
		t.Fatal(err)
	}
	if d.Surfaces[0].Swaps != 1 {
		t.Errorf("swaps = %d, want 1", d.Surfaces[0].Swaps)
	}

	d.FailSwap = true
	if err := res.SwapBuffers(); !errors.Is(err, gpu.ErrPresentFailed) {
		t.Errorf("SwapBuffers = %v, want ErrPresentFailed", err)
	}
}

func TestResourceReleaseOrder(t *testing.T) {
	shared, d := newShared(t)
	res, _ := bind(t, platformtest.New(), shared, 100, 100)
	d.Log = nil

	res.Release()
	res.Release()

	want := []string{"make-not-current", "destroy-surface", "destroy-context"}
	if !reflect.DeepEqual(d.Log, want) {
		t.Errorf("release log = %v, want %v", d.Log, want)
	}
	if err := res.MakeCurrentIfNeeded(); !errors.Is(err, gpu.ErrReleased) {
		t.Errorf("MakeCurrentIfNeeded after Release = %v, want ErrReleased", err)
	}
	if err := res.SwapBuffers(); !errors.Is(err, gpu.ErrReleased) {
		t.Errorf("SwapBuffers after Release = %v, want ErrReleased", err)
	}
}

func TestBindSurfaceFailureDestroysContext(t *testing.T) {
	shared, d := newShared(t)
	p := platformtest.New()
	win, _ := p.BuildWindow(platform.WindowSpec{Width: 10, Height: 10})
	ctx, err := shared.NewContext(shared.Config, win.Handle())
	if err != nil {
		t.Fatal(err)
	}
	d.FailSurfaces = true

	if _, err := gpu.Bind(win, shared, shared.Config, ctx); !errors.Is(err, gpu.ErrSurfaceCreation) {
		t.Fatalf("Bind = %v, want ErrSurfaceCreation", err)
	}
	if !d.Contexts[0].Destroyed {
		t.Error("context leaked after failed Bind")
	}
}

func TestReleaseLogsThroughSharedLogger(t *testing.T) {
	shared, d := newShared(t)
	var buf bytes.Buffer
	shared.Log = slog.New(slog.NewTextHandler(&buf, nil))
	res, _ := bind(t, platformtest.New(), shared, 10, 10)
	d.FailMakeNotCurrent = true

	res.Release()
	if !strings.Contains(buf.String(), "make not current failed") {
		t.Errorf("log output = %q, want the make-not-current warning", buf.String())
	}
	if !d.Contexts[0].Destroyed || !d.Surfaces[0].Destroyed {
		t.Error("resources not released after make-not-current failure")
	}
}

func TestBindUsesGivenConfig(t *testing.T) {
	alpha := &gputest.Config{Name: "alpha", Transparent: true, Visual: 0x60}
	opaque := &gputest.Config{Name: "opaque", Visual: 0x21}
	d := gputest.NewDisplay(alpha, opaque)
	shared, _, err := gpu.Probe(d.Opener(nil), gpu.ProbeParams{Load: gputest.Load})
	if err != nil {
		t.Fatal(err)
	}
	win, _ := platformtest.New().BuildWindow(platform.WindowSpec{Width: 10, Height: 10})
	c := shared.ConfigFor(false)
	ctx, err := shared.NewContext(c, win.Handle())
	if err != nil {
		t.Fatal(err)
	}
	if _, err := gpu.Bind(win, shared, c, ctx); err != nil {
		t.Fatal(err)
	}
	if d.Contexts[0].Config != gpu.Config(opaque) || d.Surfaces[0].Config != gpu.Config(opaque) {
		t.Errorf("context/surface config = %v/%v, want opaque", d.Contexts[0].Config, d.Surfaces[0].Config)
	}
}
