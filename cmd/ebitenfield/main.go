// Command ebitenfield runs the particle field in an ebiten window.
//
// The field draws into a display list during Update and the list is replayed
// onto the screen in Draw. Esc or q quits, r respawns the particle set.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/renderer/ebitensurface"
	"github.com/pthm-cable/backdrop/telemetry"
)

type app struct {
	field     *field.Field
	rec       *field.Recorder
	surf      *ebitensurface.Surface
	collector *telemetry.Collector
	logStats  bool

	// Window size applied to the field, and the latest size from Layout.
	w, h    int
	layoutW int
	layoutH int
}

func newApp(cfg *config.Config, seed int64, logStats bool) *app {
	w, h := cfg.Screen.Width, cfg.Screen.Height
	rec := field.NewRecorder(float64(w), float64(h))
	bg := cfg.Screen.Background

	opts := field.OptionsFromConfig(cfg)
	opts.Sizing = field.SizeViewport

	return &app{
		field:     field.New(rec, field.Viewport{Width: float64(w), Height: float64(h)}, opts, rand.New(rand.NewSource(seed))),
		rec:       rec,
		surf:      ebitensurface.New(field.Paint{R: bg.R, G: bg.G, B: bg.B, Alpha: 1}),
		collector: telemetry.NewCollector(cfg.Derived.WindowFrames),
		logStats:  logStats,
		w:         w,
		h:         h,
		layoutW:   w,
		layoutH:   h,
	}
}

// Layout tracks the window size; the field follows it on the next Update.
func (a *app) Layout(outsideWidth, outsideHeight int) (int, int) {
	a.layoutW, a.layoutH = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

func (a *app) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) || ebiten.IsKeyPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		a.respawn()
	}

	cx, cy := ebiten.CursorPosition()
	a.step(cx, cy, ebiten.IsFocused())
	return nil
}

// step applies pending window changes and pointer state, then runs one frame.
func (a *app) step(cx, cy int, focused bool) field.FrameStats {
	if a.layoutW != a.w || a.layoutH != a.h {
		a.w, a.h = a.layoutW, a.layoutH
		a.field.Resize(field.Viewport{Width: float64(a.w), Height: float64(a.h)})
		a.collector.RecordResize()
		slog.Debug("window resized", "width", a.w, "height", a.h, "particles", a.field.Count())
	}

	if focused && a.inside(cx, cy) {
		a.field.MovePointer(float64(cx), float64(cy))
	} else {
		a.field.LeavePointer()
	}

	stats := a.field.Frame()
	a.collector.Record(stats)
	if a.collector.ShouldFlush() {
		w := a.collector.Flush()
		if a.logStats {
			w.LogStats()
		}
	}
	return stats
}

// respawn resamples the particle set over the current bounds.
func (a *app) respawn() {
	a.field.Respawn()
	slog.Debug("respawned", "particles", a.field.Count())
}

// inside reports whether a cursor position lies in the window. ebiten keeps
// reporting the last position after the cursor leaves.
func (a *app) inside(x, y int) bool {
	return x >= 0 && y >= 0 && x < a.w && y < a.h
}

func (a *app) Draw(screen *ebiten.Image) {
	a.surf.SetTarget(screen)
	a.rec.Replay(a.surf)
}

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	a := newApp(cfg, rngSeed, *logStats)
	slog.Info("field created", "particles", a.field.Count(), "seed", rngSeed)

	ebiten.SetWindowSize(cfg.Screen.Width, cfg.Screen.Height)
	ebiten.SetWindowTitle("Particle Field")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.Screen.TargetFPS)

	if err := ebiten.RunGame(a); err != nil && !errors.Is(err, ebiten.Termination) {
		fmt.Fprintln(os.Stderr, "ebitenfield:", err)
		os.Exit(1)
	}
}
