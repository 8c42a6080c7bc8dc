// Command termfield renders the particle field in a terminal.
//
// The terminal maps to a pixel space of cols×cell_width by rows×cell_height;
// mouse motion moves the pointer and losing focus clears it. Esc, q or
// Ctrl-C quits, r respawns the particle set.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/renderer/termsurface"
	"github.com/pthm-cable/backdrop/telemetry"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	logPath := flag.String("log", "", "Write JSON logs to this file (the terminal is the display)")
	logStats := flag.Bool("log-stats", false, "Log window stats (requires -log)")
	flag.Parse()

	if err := run(*configPath, *seed, *logPath, *logStats); err != nil {
		fmt.Fprintln(os.Stderr, "termfield:", err)
		os.Exit(1)
	}
}

func run(configPath string, seed int64, logPath string, logStats bool) error {
	var logOut io.Writer = io.Discard
	if logPath != "" {
		f, err := os.Create(logPath)
		if err != nil {
			return fmt.Errorf("opening log: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(logOut, nil)))

	if err := config.Init(configPath); err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg := config.Cfg()

	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initialising screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse(tcell.MouseMotionEvents)
	screen.EnableFocus()
	screen.HideCursor()

	bg := cfg.Screen.Background
	surf := termsurface.New(screen,
		float64(cfg.Terminal.CellWidth), float64(cfg.Terminal.CellHeight),
		field.Paint{R: bg.R, G: bg.G, B: bg.B, Alpha: 1})

	cols, rows := screen.Size()
	opts := field.OptionsFromConfig(cfg)
	opts.Sizing = field.SizeViewport
	f := field.New(surf, surf.Viewport(cols, rows), opts, rand.New(rand.NewSource(seed)))

	collector := telemetry.NewCollector(cfg.Derived.WindowFrames)
	loop := field.NewLoop(f,
		field.WithFrameInterval(time.Second/time.Duration(cfg.Screen.TargetFPS)),
		field.WithFrameHook(func(stats field.FrameStats) {
			screen.Show()
			collector.Record(stats)
			if collector.ShouldFlush() {
				w := collector.Flush()
				if logStats {
					w.LogStats()
				}
			}
		}),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := loop.Start(ctx); err != nil {
		return err
	}
	slog.Info("termfield started", "cols", cols, "rows", rows, "particles", f.Count(), "seed", seed)

	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if handleEvent(ev, loop, surf, collector) {
				loop.Stop()
				return
			}
		}
	}()

	<-loop.Done()
	slog.Info("termfield stopped")
	return nil
}
