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

	"github.com/gogpu/ggwin/internal/gl"
	"github.com/gogpu/ggwin/internal/gpu"
	"github.com/gogpu/ggwin/internal/gpu/gputest"
	"github.com/gogpu/ggwin/internal/platform"
	"github.com/gogpu/ggwin/internal/platform/platformtest"
)

func TestSelectConfig(t *testing.T) {
	plain4 := &gputest.Config{Name: "plain4", SampleCount: 4}
	plain8 := &gputest.Config{Name: "plain8", SampleCount: 8}
	alpha0 := &gputest.Config{Name: "alpha0", Transparent: true}
	alpha2 := &gputest.Config{Name: "alpha2", Transparent: true, SampleCount: 2}
	alpha2b := &gputest.Config{Name: "alpha2b", Transparent: true, SampleCount: 2}

	tests := []struct {
		name    string
		configs []gpu.Config
		want    gpu.Config
	}{
		{"empty", nil, nil},
		{"single", []gpu.Config{plain4}, plain4},
		{"more samples wins", []gpu.Config{plain4, plain8}, plain8},
		{"transparency beats samples", []gpu.Config{plain8, alpha0}, alpha0},
		{"transparency first then samples", []gpu.Config{alpha0, plain8, alpha2}, alpha2},
		{"tie keeps first", []gpu.Config{alpha2, alpha2b}, alpha2},
		{"opaque never replaces transparent", []gpu.Config{alpha0, plain8}, alpha0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := gpu.SelectConfig(tt.configs)
			if got != tt.want {
				t.Errorf("SelectConfig = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSelectOpaqueConfig(t *testing.T) {
	plain2 := &gputest.Config{Name: "plain2", SampleCount: 2}
	plain4 := &gputest.Config{Name: "plain4", SampleCount: 4}
	plain4b := &gputest.Config{Name: "plain4b", SampleCount: 4}
	alpha8 := &gputest.Config{Name: "alpha8", Transparent: true, SampleCount: 8}

	tests := []struct {
		name    string
		configs []gpu.Config
		want    gpu.Config
	}{
		{"empty", nil, nil},
		{"only transparent", []gpu.Config{alpha8}, nil},
		{"transparent skipped", []gpu.Config{alpha8, plain2}, plain2},
		{"more samples wins", []gpu.Config{plain2, plain4}, plain4},
		{"tie keeps first", []gpu.Config{plain4, plain4b}, plain4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := gpu.SelectOpaqueConfig(tt.configs); got != tt.want {
				t.Errorf("SelectOpaqueConfig = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfigFor(t *testing.T) {
	alpha := &gputest.Config{Name: "alpha", Transparent: true}
	opaque := &gputest.Config{Name: "opaque"}

	shared, _, err := gpu.Probe(gputest.NewDisplay(opaque, alpha).Opener(nil), gpu.ProbeParams{Load: gputest.Load})
	if err != nil {
		t.Fatal(err)
	}
	if got := shared.ConfigFor(true); got != gpu.Config(alpha) {
		t.Errorf("ConfigFor(true) = %v, want alpha", got)
	}
	if got := shared.ConfigFor(false); got != gpu.Config(opaque) {
		t.Errorf("ConfigFor(false) = %v, want opaque", got)
	}

	// Without an opaque configuration every window uses the preferred one.
	shared, _, err = gpu.Probe(gputest.NewDisplay(alpha).Opener(nil), gpu.ProbeParams{Load: gputest.Load})
	if err != nil {
		t.Fatal(err)
	}
	if got := shared.ConfigFor(false); got != gpu.Config(alpha) {
		t.Errorf("ConfigFor(false) without opaque configs = %v, want alpha", got)
	}
}

func TestProbeLogsThroughParamsLogger(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, nil))
	shared, _, err := gpu.Probe(gputest.NewDisplay().Opener(nil), gpu.ProbeParams{Load: gputest.Load, Logger: l})
	if err != nil {
		t.Fatal(err)
	}
	if shared.Log != l {
		t.Error("Shared.Log is not the probe logger")
	}
	if !strings.Contains(buf.String(), "config selected") {
		t.Errorf("log output = %q, want the selected config", buf.String())
	}
}

func TestCreateContextTiers(t *testing.T) {
	d := gputest.NewDisplay()
	d.FailAPIs[gpu.ContextTiers[0]] = true

	ctx, err := gpu.CreateContext(d, d.ConfigList[0], 0)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	got := ctx.(*gputest.Context).Attrs
	if got != gpu.ContextTiers[1] {
		t.Errorf("context attrs = %v, want %v", got, gpu.ContextTiers[1])
	}
	if !reflect.DeepEqual(d.Attempts, gpu.ContextTiers[:2]) {
		t.Errorf("attempts = %v, want %v", d.Attempts, gpu.ContextTiers[:2])
	}
}

func TestCreateContextLastTier(t *testing.T) {
	d := gputest.NewDisplay()
	d.FailAPIs[gpu.ContextTiers[0]] = true
	d.FailAPIs[gpu.ContextTiers[1]] = true

	ctx, err := gpu.CreateContext(d, d.ConfigList[0], 0)
	if err != nil {
		t.Fatalf("CreateContext: %v", err)
	}
	want := gpu.ContextAttributes{API: gpu.APIOpenGL, Major: 2, Minor: 1}
	if got := ctx.(*gputest.Context).Attrs; got != want {
		t.Errorf("context attrs = %v, want %v", got, want)
	}
}

func TestCreateContextAllTiersFail(t *testing.T) {
	d := gputest.NewDisplay()
	for _, tier := range gpu.ContextTiers {
		d.FailAPIs[tier] = true
	}

	_, err := gpu.CreateContext(d, d.ConfigList[0], 0)
	if !errors.Is(err, gpu.ErrContextCreation) {
		t.Fatalf("err = %v, want ErrContextCreation", err)
	}
	if !errors.Is(err, gputest.ErrInjected) {
		t.Errorf("tier errors not joined: %v", err)
	}
	if len(d.Attempts) != len(gpu.ContextTiers) {
		t.Errorf("attempts = %d, want %d", len(d.Attempts), len(gpu.ContextTiers))
	}
}

func TestProbe(t *testing.T) {
	best := &gputest.Config{Name: "best", Transparent: true, SampleCount: 4}
	d := gputest.NewDisplay(&gputest.Config{Name: "plain"}, best)
	opens := 0

	shared, eager, err := gpu.Probe(d.Opener(&opens), gpu.ProbeParams{Load: gputest.Load})
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if eager != nil {
		t.Error("window built although the platform does not need one")
	}
	if shared.Config != best {
		t.Errorf("Config = %v, want %v", shared.Config, best)
	}
	if shared.Funcs == nil {
		t.Error("Funcs not loaded")
	}
	if opens != 1 {
		t.Errorf("opens = %d, want 1", opens)
	}

	shared.Release()
	if !d.Terminated {
		t.Error("Release did not terminate the display")
	}
}

func TestProbeEagerWindowReturnedOnFailure(t *testing.T) {
	p := platformtest.New()
	params := gpu.ProbeParams{
		NeedsWindow: true,
		BuildWindow: func() (platform.Window, error) {
			return p.BuildWindow(platform.WindowSpec{Width: 10, Height: 10})
		},
		Load: gputest.Load,
	}

	shared, eager, err := gpu.Probe(gputest.FailingOpener(nil), params)
	if !errors.Is(err, gpu.ErrProbeFailed) {
		t.Fatalf("err = %v, want ErrProbeFailed", err)
	}
	if shared != nil {
		t.Error("shared state returned on failure")
	}
	if eager == nil || eager != platform.Window(p.Windows[0]) {
		t.Fatalf("eager window = %v, want the built window", eager)
	}
	if p.Windows[0].Destroyed {
		t.Error("eager window destroyed by Probe")
	}
}

func TestProbeFailures(t *testing.T) {
	loadErr := errors.New("load failed")
	tests := []struct {
		name    string
		display func() *gputest.Display
		load    func(func(string) uintptr) (*gl.Functions, error)
		want    error
	}{
		{
			name:    "no configs",
			display: func() *gputest.Display { d := gputest.NewDisplay(); d.ConfigList = nil; return d },
			load:    gputest.Load,
			want:    gpu.ErrNoConfig,
		},
		{
			name:    "configs error",
			display: func() *gputest.Display { d := gputest.NewDisplay(); d.FailConfigs = true; return d },
			load:    gputest.Load,
			want:    gputest.ErrInjected,
		},
		{
			name:    "load error",
			display: func() *gputest.Display { return gputest.NewDisplay() },
			load:    func(func(string) uintptr) (*gl.Functions, error) { return nil, loadErr },
			want:    loadErr,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := tt.display()
			_, _, err := gpu.Probe(d.Opener(nil), gpu.ProbeParams{Load: tt.load})
			if !errors.Is(err, gpu.ErrProbeFailed) || !errors.Is(err, tt.want) {
				t.Fatalf("err = %v, want ErrProbeFailed wrapping %v", err, tt.want)
			}
			if !d.Terminated {
				t.Error("display not terminated after failed probe")
			}
		})
	}
}

func TestProbeBuildWindowFailure(t *testing.T) {
	opens := 0
	d := gputest.NewDisplay()
	_, eager, err := gpu.Probe(d.Opener(&opens), gpu.ProbeParams{
		NeedsWindow: true,
		BuildWindow: func() (platform.Window, error) { return nil, platformtest.ErrInjected },
	})
	if !errors.Is(err, gpu.ErrProbeFailed) {
		t.Fatalf("err = %v, want ErrProbeFailed", err)
	}
	if eager != nil {
		t.Error("eager window returned although building failed")
	}
	if opens != 0 {
		t.Errorf("display opened %d times without a window", opens)
	}
}
