package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("loading defaults: %v", err)
	}

	if cfg.Particles.Breakpoint != 768 {
		t.Errorf("expected breakpoint 768, got %d", cfg.Particles.Breakpoint)
	}
	if cfg.Particles.SmallCount != 40 || cfg.Particles.LargeCount != 70 {
		t.Errorf("expected counts 40/70, got %d/%d", cfg.Particles.SmallCount, cfg.Particles.LargeCount)
	}
	if cfg.Links.Distance != 90 || cfg.Links.Opacity != 0.12 {
		t.Errorf("expected link 90px @ 0.12, got %vpx @ %v", cfg.Links.Distance, cfg.Links.Opacity)
	}
	if cfg.Pointer.Radius != 120 || cfg.Pointer.Divisor != 25 || cfg.Pointer.Policy != PolicyDivisor {
		t.Errorf("unexpected pointer defaults: %+v", cfg.Pointer)
	}
	if cfg.Surface.Sizing != SizingViewport {
		t.Errorf("expected viewport sizing, got %q", cfg.Surface.Sizing)
	}
	if cfg.Particles.Fill != (Color{R: 11, G: 45, B: 91, A: 0.25}) {
		t.Errorf("unexpected fill %+v", cfg.Particles.Fill)
	}
}

func TestLoadMergesUserFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	data := []byte("particles:\n  large_count: 80\npointer:\n  policy: falloff\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("loading override: %v", err)
	}
	if cfg.Particles.LargeCount != 80 {
		t.Errorf("expected large_count 80, got %d", cfg.Particles.LargeCount)
	}
	if cfg.Pointer.Policy != PolicyFalloff {
		t.Errorf("expected falloff policy, got %q", cfg.Pointer.Policy)
	}
	// Untouched keys keep their defaults
	if cfg.Particles.SmallCount != 40 {
		t.Errorf("expected small_count 40 to survive merge, got %d", cfg.Particles.SmallCount)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero link distance", func(c *Config) { c.Links.Distance = 0 }},
		{"unknown policy", func(c *Config) { c.Pointer.Policy = "spring" }},
		{"zero divisor", func(c *Config) { c.Pointer.Divisor = 0 }},
		{"unknown sizing", func(c *Config) { c.Surface.Sizing = "page" }},
		{"inverted sizes", func(c *Config) { c.Particles.MinSize = 5 }},
		{"negative count", func(c *Config) { c.Particles.SmallCount = -1 }},
		{"zero target fps", func(c *Config) { c.Screen.TargetFPS = 0 }},
		{"negative target fps", func(c *Config) { c.Screen.TargetFPS = -30 }},
		{"zero cell width", func(c *Config) { c.Terminal.CellWidth = 0 }},
		{"zero cell height", func(c *Config) { c.Terminal.CellHeight = 0 }},
	}

	for _, tc := range tests {
		cfg := Default()
		tc.mutate(cfg)
		err := cfg.Validate()
		if !errors.Is(err, ErrInvalid) {
			t.Errorf("%s: expected ErrInvalid, got %v", tc.name, err)
		}
	}
}

func TestLoadRejectsZeroFrameRate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("screen:\n  target_fps: 0\nterminal:\n  cell_width: 0\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Errorf("expected ErrInvalid, got %v", err)
	}
}

func TestDerivedValues(t *testing.T) {
	cfg := Default()
	cfg.Screen.DocumentHeight = 100 // shorter than the window
	cfg.Telemetry.StatsWindow = 2
	cfg.Screen.TargetFPS = 30
	if err := cfg.Recompute(); err != nil {
		t.Fatal(err)
	}

	if cfg.Derived.DocumentHeight != cfg.Screen.Height {
		t.Errorf("expected document height clamped to %d, got %d", cfg.Screen.Height, cfg.Derived.DocumentHeight)
	}
	if cfg.Derived.WindowFrames != 60 {
		t.Errorf("expected 60 window frames, got %d", cfg.Derived.WindowFrames)
	}
}

func TestWriteYAMLRoundtrip(t *testing.T) {
	cfg := Default()
	cfg.Pointer.Radius = 150

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := cfg.WriteYAML(path); err != nil {
		t.Fatalf("writing: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("reloading: %v", err)
	}
	if loaded.Pointer.Radius != 150 {
		t.Errorf("expected radius 150 after reload, got %v", loaded.Pointer.Radius)
	}
}
