// Package game runs the particle field in a raylib window, or headless for
// telemetry runs.
package game

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/pthm-cable/backdrop/camera"
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/renderer"
	"github.com/pthm-cable/backdrop/telemetry"
	"github.com/pthm-cable/backdrop/ui"
)

// Options configures a Game.
type Options struct {
	Config      *config.Config // nil = config.Cfg()
	Seed        int64          // 0 = time-based
	LogStats    bool
	StatsWindow float64 // seconds; 0 = telemetry.stats_window
	OutputDir   string
	Headless    bool
	Orbit       bool // headless only: drive the pointer along a scripted orbit

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the field and everything that feeds or observes it.
type Game struct {
	cfg  *config.Config
	rng  *rand.Rand
	seed int64

	field   *field.Field
	surface *renderer.Surface // nil when headless
	cam     *camera.Camera

	// Overlays
	hud        *ui.HUD
	perfPanel  *ui.PerfPanel
	tuning     *ui.TuningPanel
	tuningVals ui.Tuning
	showHUD    bool

	headless bool
	orbit    *Orbit

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	last          field.FrameStats

	screenWidth, screenHeight float32
}

// NewGameWithOptions creates a game. In graphical mode the raylib window must
// already be open.
func NewGameWithOptions(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	windowFrames := cfg.Derived.WindowFrames
	if opts.StatsWindow > 0 {
		windowFrames = int(opts.StatsWindow * float64(cfg.Screen.TargetFPS))
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, fmt.Errorf("creating output: %w", err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, fmt.Errorf("writing config snapshot: %w", err)
	}

	g := &Game{
		cfg:           cfg,
		rng:           rand.New(rand.NewSource(seed)),
		seed:          seed,
		headless:      opts.Headless,
		collector:     telemetry.NewCollector(windowFrames),
		perfCollector: telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		outputManager: om,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		screenWidth:   float32(cfg.Screen.Width),
		screenHeight:  float32(cfg.Screen.Height),
	}

	fopts := field.OptionsFromConfig(cfg)

	var surface field.Surface
	if opts.Headless {
		surface = &field.Discard{}
		if opts.Orbit {
			g.orbit = NewOrbit(float64(g.screenWidth), float64(g.screenHeight))
		}
	} else {
		bg := cfg.Screen.Background
		g.cam = camera.New(g.screenWidth, g.screenHeight, g.screenWidth, g.screenHeight)
		g.surface = renderer.NewSurface(g.cam, field.Paint{R: bg.R, G: bg.G, B: bg.B, Alpha: 1})
		surface = g.surface

		g.hud = ui.NewHUD()
		g.perfPanel = ui.NewPerfPanel(10, 0)
		g.tuning = ui.NewTuningPanel(int32(g.screenWidth)-tuningPanelWidth-10, 10, tuningPanelWidth)
		g.showHUD = true
	}

	g.field = field.New(surface, g.viewport(), fopts, g.rng)
	g.tuningVals = tuningFromConfig(cfg)

	w, h := g.field.Bounds()
	slog.Info("field created",
		"seed", seed,
		"particles", g.field.Count(),
		"width", w,
		"height", h,
		"sizing", fopts.Sizing.String(),
		"policy", policyName(fopts.Repulsion),
		"window_frames", g.collector.WindowFrames(),
	)

	return g, nil
}

// viewport returns the current window metrics.
func (g *Game) viewport() field.Viewport {
	return field.Viewport{
		Width:          float64(g.screenWidth),
		Height:         float64(g.screenHeight),
		DocumentHeight: float64(g.cfg.Derived.DocumentHeight),
	}
}

// UpdateHeadless runs one frame without graphics.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()

	g.perfCollector.StartPhase(telemetry.PhaseEvents)
	if g.orbit != nil {
		if x, y, ok := g.orbit.At(g.last.Frame); ok {
			g.field.MovePointer(x, y)
		} else {
			g.field.LeavePointer()
		}
	}

	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	g.last = g.field.Frame()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordFrame()

	g.perfCollector.EndFrame()
}

// Update processes window input for the next frame.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseEvents)
	g.handleInput()
}

// Resize applies new window dimensions and recreates the particle set.
func (g *Game) Resize(width, height int) {
	w, h := float32(width), float32(height)
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth, g.screenHeight = w, h

	if g.cam != nil {
		g.cam.Resize(w, h, g.cam.SurfaceW, g.cam.SurfaceH)
	}
	if g.tuning != nil {
		g.tuning.SetPosition(int32(w)-tuningPanelWidth-10, 10)
	}

	g.field.Resize(g.viewport())
	g.collector.RecordResize()

	slog.Info("resized", "width", width, "height", height, "particles", g.field.Count())
}

// Respawn resamples the particle set in place.
func (g *Game) Respawn() {
	g.field.Respawn()
	slog.Info("respawned", "frame", g.last.Frame, "particles", g.field.Count())
}

// Unload flushes and closes run output.
func (g *Game) Unload() {
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output", "error", err)
	}
}

// Frame returns the number of frames rendered so far.
func (g *Game) Frame() int64 {
	return g.last.Frame
}

// LastStats returns the counters of the most recent frame.
func (g *Game) LastStats() field.FrameStats {
	return g.last
}

// Field returns the simulated field.
func (g *Game) Field() *field.Field {
	return g.field
}

// Seed returns the RNG seed in use.
func (g *Game) Seed() int64 {
	return g.seed
}

// policyName returns the config name of a repulsion policy.
func policyName(r field.Repulsion) string {
	if _, ok := r.(field.FalloffRepulsion); ok {
		return config.PolicyFalloff
	}
	return config.PolicyDivisor
}
