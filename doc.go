// Package ggwin renders gg drawing into native windows.
//
// # Overview
//
// ggwin is a multi-window application runtime for gg. Applications supply a
// [Window] handler per window; ggwin creates the native window, calls the
// handler's Draw with a *gg.Context sized to the window and presents the
// result.
//
// # Quick Start
//
//	type hello struct{ ggwin.BaseWindow }
//
//	func (hello) Draw(dc *gg.Context, cx *ggwin.WindowCx) {
//	    dc.SetRGB(1, 0, 0)
//	    dc.DrawCircle(100, 100, 50)
//	    dc.Fill()
//	}
//
//	type app struct{}
//
//	func (app) Resume(cx *ggwin.AppCx) {
//	    cx.SpawnWindow(ggwin.WindowSpec{Title: "hello", Width: 400, Height: 300}, hello{})
//	}
//
//	func main() {
//	    if err := ggwin.Run(app{}); err != nil {
//	        log.Fatal(err)
//	    }
//	}
//
// # Backends
//
// The rendering backend is chosen once per process, when the first window is
// created:
//   - GPU: an EGL context per window; frames are uploaded into the window
//     framebuffer and presented with a buffer swap.
//   - Software: frames are copied to the window through the windowing
//     system's pixel-buffer path.
//
// The GPU backend is probed first. When no GPU context can be obtained the
// process falls back to the software backend for its whole lifetime; GPU
// probing is never retried. Set GGWIN_BACKEND=software or pass
// [WithBackend] to skip probing.
//
// # Lifecycle
//
// Windows are built invisible, opened (Window.Open), sized (Window.Resize)
// and only then mapped, so no undrawn frame is ever shown. Closing the last
// window ends [Run].
//
// # Thread Safety
//
// All handler methods run on the goroutine that called [Run], which is
// locked to its OS thread for the lifetime of the loop.
package ggwin
