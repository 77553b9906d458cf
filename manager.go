package ggwin

import (
	"fmt"
	"log/slog"

	"github.com/gogpu/gg"

	"github.com/gogpu/ggwin/internal/egl"
	"github.com/gogpu/ggwin/internal/gpu"
	"github.com/gogpu/ggwin/internal/platform"
)

// Backend is the rendering backend a process is committed to.
type Backend uint8

const (
	// BackendUninitialized means no window has been created yet.
	BackendUninitialized Backend = iota

	// BackendGPU renders through per-window GL contexts.
	BackendGPU

	// BackendSoftware renders on the CPU.
	BackendSoftware
)

func (b Backend) String() string {
	switch b {
	case BackendUninitialized:
		return "uninitialized"
	case BackendGPU:
		return "gpu"
	case BackendSoftware:
		return "software"
	default:
		return fmt.Sprintf("Backend(%d)", uint8(b))
	}
}

// Default window size for specs without one.
const (
	defaultWidth  = 800
	defaultHeight = 600
)

// entry is one registered window.
type entry struct {
	bundle  bundle
	handler Window

	cursorInside     bool
	cursorX, cursorY float64
}

// Manager owns the backend commitment and the window registry.
//
// The backend is committed on the first CreateWindow and never changes:
// Uninitialized → GPU when the probe succeeds, Uninitialized → Software
// otherwise. Every window shares the committed backend.
//
// Manager is NOT safe for concurrent use. It is driven from the event loop
// goroutine.
type Manager struct {
	platform platform.Platform
	opts     options
	log      *slog.Logger

	backend Backend
	shared  *gpu.Shared
	probes  int

	windows map[WindowID]*entry
}

func newManager(p platform.Platform, o options) *Manager {
	if o.opener == nil {
		o.opener = egl.Opener(o.logger)
	}
	return &Manager{
		platform: p,
		opts:     o,
		log:      o.logger,
		windows:  make(map[WindowID]*entry),
	}
}

// Backend returns the committed backend.
func (m *Manager) Backend() Backend { return m.backend }

// Len returns the number of registered windows.
func (m *Manager) Len() int { return len(m.windows) }

// Probes returns how many GPU probes were attempted. It is at most one.
func (m *Manager) Probes() int { return m.probes }

// Has reports whether id is registered.
func (m *Manager) Has(id WindowID) bool {
	_, ok := m.windows[id]
	return ok
}

// CreateWindow builds a window for spec, backed by the committed backend,
// and registers handler for it. The first call commits the backend.
//
// The handler's Open and Resize are called before the window is made
// visible. On error nothing is registered and no resources remain.
func (m *Manager) CreateWindow(spec WindowSpec, handler Window) (WindowID, error) {
	if handler == nil {
		handler = BaseWindow{}
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		spec.Width, spec.Height = defaultWidth, defaultHeight
	}

	first := m.backend == BackendUninitialized
	var prebuilt platform.Window
	if first {
		prebuilt = m.commit(spec)
	}

	var (
		b   bundle
		err error
	)
	switch m.backend {
	case BackendGPU:
		b, err = m.createGPU(spec, prebuilt, first)
	default:
		b, err = m.createSoftware(spec, prebuilt)
	}
	if err != nil {
		return 0, err
	}

	id := b.id()
	m.windows[id] = &entry{bundle: b, handler: handler}
	cx := m.cx(id)
	handler.Open(cx)
	size := b.size()
	handler.Resize(cx, size.Width, size.Height)
	b.window().SetVisible(true)

	m.log.Debug("ggwin: window created", "window", id, "backend", m.backend, "width", size.Width, "height", size.Height)
	return id, nil
}

// commit probes the GPU once and commits the backend. It returns any window
// built while probing.
func (m *Manager) commit(spec WindowSpec) platform.Window {
	if m.opts.backend == BackendSoftware {
		m.backend = BackendSoftware
		m.log.Info("ggwin: backend committed", "backend", m.backend, "reason", "forced")
		return nil
	}

	m.probes++
	shared, prebuilt, err := gpu.Probe(m.opts.opener, gpu.ProbeParams{
		NativeDisplay: m.platform.NativeDisplay(),
		NeedsWindow:   m.platform.NeedsWindowForDisplay(),
		BuildWindow: func() (platform.Window, error) {
			return m.platform.BuildWindow(spec)
		},
		TransparentVisual: m.platform.TransparentVisual,
		Load:              m.opts.glLoad,
		Logger:            m.log,
	})
	if err != nil {
		m.backend = BackendSoftware
		m.log.Warn("ggwin: GPU unavailable, using software rendering", "err", err)
		return prebuilt
	}
	m.backend = BackendGPU
	m.shared = shared
	m.log.Info("ggwin: backend committed", "backend", m.backend, "samples", shared.Config.Samples())
	return prebuilt
}

func (m *Manager) createGPU(spec WindowSpec, win platform.Window, first bool) (bundle, error) {
	cfg := m.shared.ConfigFor(spec.Transparent)
	if spec.Transparent && !cfg.SupportsTransparency() {
		m.log.Warn("ggwin: no transparent GPU configuration, window will be opaque", "title", spec.Title)
	}
	if win == nil {
		spec.Visual = cfg.NativeVisual()
		var err error
		win, err = m.platform.BuildWindow(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
		}
	}

	b, err := newGPUBundle(win, m.shared, cfg, m.opts.swapInterval, m.log)
	if err == nil {
		return b, nil
	}
	if !first {
		win.Destroy()
		return nil, fmt.Errorf("%w: window %d: %w", ErrSurfaceCreation, win.ID(), err)
	}

	// The first GPU window failed: the GPU path is unusable. Degrade the
	// whole process to software and keep the window.
	m.log.Warn("ggwin: first GPU window failed, using software rendering", "window", win.ID(), "err", err)
	m.shared.Release()
	m.shared = nil
	m.backend = BackendSoftware
	return m.createSoftware(spec, win)
}

func (m *Manager) createSoftware(spec WindowSpec, win platform.Window) (bundle, error) {
	if spec.Transparent {
		m.log.Warn("ggwin: transparency is not supported by software rendering, window will be opaque", "title", spec.Title)
	}
	spec.Visual = 0
	spec.Transparent = false
	if win != nil {
		b, err := newSoftwareBundle(m.platform, win, m.log)
		if err == nil {
			return b, nil
		}
		// The window cannot be presented to; build a plain one.
		m.log.Debug("ggwin: rebuilding window for software presentation", "window", win.ID(), "err", err)
		win.Destroy()
	}

	win, err := m.platform.BuildWindow(spec)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSurfaceCreation, err)
	}
	b, err := newSoftwareBundle(m.platform, win, m.log)
	if err != nil {
		win.Destroy()
		return nil, fmt.Errorf("%w: window %d: %w", ErrSurfaceCreation, win.ID(), err)
	}
	return b, nil
}

// Resize resizes the window's rendering resources, notifies the handler and
// requests a redraw. A zero dimension is ignored.
func (m *Manager) Resize(id WindowID, width, height int) error {
	e := m.mustEntry(id)
	if width <= 0 || height <= 0 {
		return nil
	}
	if err := e.bundle.resize(width, height); err != nil {
		return fmt.Errorf("ggwin: resize window %d to %dx%d: %w", id, width, height, err)
	}
	e.handler.Resize(m.cx(id), width, height)
	e.bundle.window().RequestRedraw()
	return nil
}

// Draw renders and presents one frame through the handler's Draw.
// Failures wrap ErrPresentFailed and are not recoverable.
func (m *Manager) Draw(id WindowID) error {
	e := m.mustEntry(id)
	cx := m.cx(id)
	err := e.bundle.draw(func(dc *gg.Context) {
		e.handler.Draw(dc, cx)
	})
	if err != nil {
		return fmt.Errorf("%w: window %d: %w", ErrPresentFailed, id, err)
	}
	return nil
}

// CloseWindow unregisters the window and releases its resources. It
// reports whether no windows remain.
func (m *Manager) CloseWindow(id WindowID) bool {
	e := m.mustEntry(id)
	delete(m.windows, id)
	e.bundle.release()
	m.log.Debug("ggwin: window closed", "window", id, "remaining", len(m.windows))
	return len(m.windows) == 0
}

// CursorEntered forwards a cursor enter to the handler.
func (m *Manager) CursorEntered(id WindowID) {
	e := m.mustEntry(id)
	e.cursorInside = true
	e.handler.CursorEnter(m.cx(id))
}

// CursorLeft forwards a cursor leave to the handler.
func (m *Manager) CursorLeft(id WindowID) {
	e := m.mustEntry(id)
	e.cursorInside = false
	e.handler.CursorLeave(m.cx(id))
}

// CursorMoved forwards a cursor move to the handler.
func (m *Manager) CursorMoved(id WindowID, x, y float64) {
	e := m.mustEntry(id)
	e.cursorX, e.cursorY = x, y
	e.handler.CursorMove(m.cx(id), x, y)
}

// MouseInput forwards a button press or release to the handler.
func (m *Manager) MouseInput(id WindowID, state ButtonState, button MouseButton) {
	e := m.mustEntry(id)
	e.handler.MouseInput(m.cx(id), state, button)
}

// MouseWheel forwards a wheel movement to the handler.
func (m *Manager) MouseWheel(id WindowID, delta ScrollDelta, phase TouchPhase) {
	e := m.mustEntry(id)
	e.handler.MouseWheel(m.cx(id), delta, phase)
}

// Shutdown closes every remaining window and releases the shared GPU state.
func (m *Manager) Shutdown() {
	for id := range m.windows {
		m.CloseWindow(id)
	}
	if m.shared != nil {
		m.shared.Release()
		m.shared = nil
	}
}

func (m *Manager) cx(id WindowID) *WindowCx {
	return &WindowCx{id: id, m: m}
}

// mustEntry returns the entry for id. Unknown ids are a logic error.
func (m *Manager) mustEntry(id WindowID) *entry {
	e, ok := m.windows[id]
	if !ok {
		panic(fmt.Errorf("%w: %d", ErrUnknownWindow, id))
	}
	return e
}
