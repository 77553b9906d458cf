package ggwin

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/ggwin/internal/canvas"
	"github.com/gogpu/ggwin/internal/gl"
	"github.com/gogpu/ggwin/internal/gpu"
	"github.com/gogpu/ggwin/internal/platform"
)

// bundle owns the rendering resources of one window. Every bundle of a
// process has the variant of the committed backend.
type bundle interface {
	id() WindowID
	window() platform.Window
	size() Size
	resize(width, height int) error
	draw(paint canvas.PaintFunc) error

	// release frees the rendering resources, then destroys the window.
	release()
}

// gpuBundle renders through a GL context current on the window's surface.
// It borrows the shared GPU state.
type gpuBundle struct {
	win     platform.Window
	ctx     *gpu.ContextResource
	fb      *gl.Framebuffer
	surface *canvas.GPU
	shared  *gpu.Shared
	log     *slog.Logger
}

// newGPUBundle builds the context, surface and canvas of win with
// configuration cfg. On failure everything created here is released; win is
// left to the caller.
func newGPUBundle(win platform.Window, shared *gpu.Shared, cfg gpu.Config, swapInterval int, log *slog.Logger) (*gpuBundle, error) {
	ctx, err := shared.NewContext(cfg, win.Handle())
	if err != nil {
		return nil, err
	}
	res, err := gpu.Bind(win, shared, cfg, ctx)
	if err != nil {
		return nil, err
	}
	if err := res.SetSwapInterval(swapInterval); err != nil {
		log.Warn("ggwin: set swap interval failed", "window", win.ID(), "interval", swapInterval, "err", err)
	}

	size := win.Size()
	shared.Funcs.SetViewport(size.Width, size.Height)
	fb := gl.NewFramebuffer(shared.Funcs)
	info := canvas.FramebufferInfo{
		FBO:     shared.Funcs.FramebufferBinding(),
		Samples: cfg.Samples(),
		Stencil: cfg.StencilSize(),
	}
	surface, err := canvas.NewGPU(fb, info, size.Width, size.Height)
	if err != nil {
		res.Release()
		return nil, err
	}
	return &gpuBundle{win: win, ctx: res, fb: fb, surface: surface, shared: shared, log: log}, nil
}

func (b *gpuBundle) id() WindowID            { return b.win.ID() }
func (b *gpuBundle) window() platform.Window { return b.win }

func (b *gpuBundle) size() Size {
	w, h := b.surface.Size()
	return Size{Width: w, Height: h}
}

func (b *gpuBundle) resize(width, height int) error {
	if err := b.ctx.Resize(width, height); err != nil {
		return err
	}
	b.shared.Funcs.SetViewport(width, height)
	return b.surface.Resize(width, height)
}

func (b *gpuBundle) draw(paint canvas.PaintFunc) error {
	if err := b.ctx.MakeCurrentIfNeeded(); err != nil {
		return err
	}
	if err := b.surface.Draw(paint); err != nil {
		return err
	}
	return b.ctx.SwapBuffers()
}

func (b *gpuBundle) release() {
	if err := b.surface.Close(); err != nil {
		b.log.Warn("ggwin: close canvas failed", "window", b.win.ID(), "err", err)
	}
	// GL objects belong to this context.
	if err := b.ctx.MakeCurrentIfNeeded(); err == nil {
		b.fb.Delete()
	}
	b.ctx.Release()
	b.win.Destroy()
}

// softwareBundle renders on the CPU and copies frames to the window.
type softwareBundle struct {
	win       platform.Window
	presenter platform.Presenter
	surface   *canvas.Raster
	log       *slog.Logger
}

// newSoftwareBundle binds a presenter and a raster canvas to win. On
// failure everything created here is released; win is left to the caller.
func newSoftwareBundle(p platform.Platform, win platform.Window, log *slog.Logger) (*softwareBundle, error) {
	presenter, err := p.NewPresenter(win)
	if err != nil {
		return nil, fmt.Errorf("presenter: %w", err)
	}
	size := win.Size()
	surface, err := canvas.NewRaster(presenter, size.Width, size.Height)
	if err != nil {
		presenter.Close()
		return nil, err
	}
	return &softwareBundle{win: win, presenter: presenter, surface: surface, log: log}, nil
}

func (b *softwareBundle) id() WindowID            { return b.win.ID() }
func (b *softwareBundle) window() platform.Window { return b.win }

func (b *softwareBundle) size() Size {
	w, h := b.surface.Size()
	return Size{Width: w, Height: h}
}

func (b *softwareBundle) resize(width, height int) error {
	return b.surface.Resize(width, height)
}

func (b *softwareBundle) draw(paint canvas.PaintFunc) error {
	return b.surface.Draw(paint)
}

func (b *softwareBundle) release() {
	if err := b.surface.Close(); err != nil {
		b.log.Warn("ggwin: close canvas failed", "window", b.win.ID(), "err", err)
	}
	b.presenter.Close()
	b.win.Destroy()
}
