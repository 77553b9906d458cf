// Command ggwin-demo opens one or more windows drawn with gg.
//
// Usage:
//
//	ggwin-demo [-config demo.yaml] [-software] [-v]
//
// Move the pointer to drag the circle, click to change its color and use
// the wheel to resize it. Closing the last window exits.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/ggwin"
)

var palette = []string{"#e06c75", "#98c379", "#61afef", "#e5c07b", "#c678dd"}

func main() {
	var (
		configPath = flag.String("config", "", "YAML configuration file")
		software   = flag.Bool("software", false, "force software rendering")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("ggwin-demo: %v", err)
	}
	if *software {
		cfg.Backend = "software"
	}
	level, _ := cfg.level()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	ggwin.SetLogger(logger)

	source, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		log.Fatalf("ggwin-demo: load font: %v", err)
	}
	defer source.Close()

	app := ggwin.AppFunc(func(cx *ggwin.AppCx) {
		for _, wc := range cfg.Windows {
			w := newDemoWindow(wc, source)
			if _, err := cx.SpawnWindow(wc.spec(), w); err != nil {
				logger.Error("ggwin-demo: spawn window failed", "title", wc.Title, "err", err)
			}
		}
	})
	if err := ggwin.Run(app, cfg.options(logger)...); err != nil {
		log.Fatalf("ggwin-demo: %v", err)
	}
}

// demoWindow draws a circle that follows the pointer.
type demoWindow struct {
	ggwin.BaseWindow

	background gg.RGBA
	face       text.Face
	small      text.Face

	radius float64
	color  int
	clicks int
	frames int
}

func newDemoWindow(wc windowConfig, source *text.FontSource) *demoWindow {
	bg := gg.Hex("#202020")
	if wc.Background != "" {
		bg = gg.Hex(wc.Background)
	}
	return &demoWindow{
		background: bg,
		face:       source.Face(22),
		small:      source.Face(14),
		radius:     40,
	}
}

func (w *demoWindow) Open(cx *ggwin.WindowCx) {
	ggwin.Logger().Debug("ggwin-demo: window opened", "window", cx.ID(), "backend", cx.Backend())
}

func (w *demoWindow) Draw(dc *gg.Context, cx *ggwin.WindowCx) {
	width, height := float64(dc.Width()), float64(dc.Height())
	w.frames++

	dc.ClearWithColor(w.background)

	// Grid
	dc.SetRGBA(1, 1, 1, 0.08)
	dc.SetLineWidth(1)
	for x := 0.0; x < width; x += 40 {
		dc.DrawLine(x, 0, x, height)
	}
	for y := 0.0; y < height; y += 40 {
		dc.DrawLine(0, y, width, y)
	}
	_ = dc.Stroke()

	x, y := width/2, height/2
	if cx.CursorInside() {
		x, y = cx.CursorPosition()
	}
	dc.SetHexColor(palette[w.color%len(palette)])
	dc.DrawCircle(x, y, w.radius)
	_ = dc.Fill()

	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(3)
	dc.DrawRoundedRectangle(10, 10, width-20, height-20, 12)
	_ = dc.Stroke()

	dc.SetFont(w.face)
	dc.DrawStringAnchored(fmt.Sprintf("%s backend", cx.Backend()), width/2, 40, 0.5, 0.5)

	dc.SetFont(w.small)
	dc.SetRGBA(1, 1, 1, 0.7)
	size := cx.Size()
	status := fmt.Sprintf("%dx%d  clicks %d  frame %d", size.Width, size.Height, w.clicks, w.frames)
	dc.DrawStringAnchored(status, width/2, height-30, 0.5, 0.5)
}

func (w *demoWindow) CursorMove(cx *ggwin.WindowCx, _, _ float64) { cx.RequestRedraw() }
func (w *demoWindow) CursorEnter(cx *ggwin.WindowCx)              { cx.RequestRedraw() }
func (w *demoWindow) CursorLeave(cx *ggwin.WindowCx)              { cx.RequestRedraw() }

func (w *demoWindow) MouseInput(cx *ggwin.WindowCx, state ggwin.ButtonState, button ggwin.MouseButton) {
	if state != ggwin.Pressed {
		return
	}
	w.clicks++
	if button == ggwin.ButtonLeft {
		w.color++
	}
	cx.RequestRedraw()
}

func (w *demoWindow) MouseWheel(cx *ggwin.WindowCx, delta ggwin.ScrollDelta, _ ggwin.TouchPhase) {
	step := delta.Y
	if delta.Lines {
		step *= 8
	}
	w.radius = min(max(w.radius+step, 5), 300)
	cx.RequestRedraw()
}
