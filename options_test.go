package ggwin

import (
	"log/slog"
	"testing"

	"github.com/gogpu/ggwin/internal/gpu/gputest"
)

func TestDefaultOptions(t *testing.T) {
	t.Setenv(backendEnv, "")
	o := newOptions(nil)
	if o.backend != BackendUninitialized {
		t.Errorf("backend = %v, want automatic selection", o.backend)
	}
	if o.swapInterval != 1 {
		t.Errorf("swapInterval = %d, want 1", o.swapInterval)
	}
	if o.logger != Logger() {
		t.Error("logger does not default to the package logger")
	}
}

func TestBackendEnv(t *testing.T) {
	tests := []struct {
		value string
		want  Backend
	}{
		{"software", BackendSoftware},
		{"SOFTWARE", BackendSoftware},
		{"gpu", BackendUninitialized},
		{"", BackendUninitialized},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv(backendEnv, tt.value)
			if got := newOptions(nil).backend; got != tt.want {
				t.Errorf("%s=%q: backend = %v, want %v", backendEnv, tt.value, got, tt.want)
			}
		})
	}
}

func TestOptionsApply(t *testing.T) {
	t.Setenv(backendEnv, "software")
	l := slog.Default()
	p := newTestPlatform()
	d := gputest.NewDisplay()

	o := newOptions([]Option{
		WithLogger(l),
		WithPlatform(p),
		WithGPUOpener(d.Opener(nil)),
		WithBackend(BackendUninitialized),
		WithSwapInterval(0),
	})
	if o.logger != l {
		t.Error("WithLogger not applied")
	}
	if o.platform != p {
		t.Error("WithPlatform not applied")
	}
	if o.opener == nil {
		t.Error("WithGPUOpener not applied")
	}
	if o.backend != BackendUninitialized {
		t.Error("WithBackend does not override the environment")
	}
	if o.swapInterval != 0 {
		t.Errorf("swapInterval = %d, want 0", o.swapInterval)
	}
}

func TestBackendString(t *testing.T) {
	tests := []struct {
		b    Backend
		want string
	}{
		{BackendUninitialized, "uninitialized"},
		{BackendGPU, "gpu"},
		{BackendSoftware, "software"},
		{Backend(9), "Backend(9)"},
	}
	for _, tt := range tests {
		if got := tt.b.String(); got != tt.want {
			t.Errorf("Backend(%d).String() = %q, want %q", uint8(tt.b), got, tt.want)
		}
	}
}
