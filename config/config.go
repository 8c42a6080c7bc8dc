// Package config provides configuration loading and access for the backdrop.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Sizing policies for the drawing surface.
const (
	SizingViewport = "viewport"
	SizingDocument = "document"
)

// Repulsion policies for the pointer.
const (
	PolicyDivisor = "divisor"
	PolicyFalloff = "falloff"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all backdrop configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Particles ParticlesConfig `yaml:"particles"`
	Links     LinksConfig     `yaml:"links"`
	Pointer   PointerConfig   `yaml:"pointer"`
	Surface   SurfaceConfig   `yaml:"surface"`
	Terminal  TerminalConfig  `yaml:"terminal"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// Color is an RGB triple with a [0,1] alpha.
type Color struct {
	R uint8   `yaml:"r"`
	G uint8   `yaml:"g"`
	B uint8   `yaml:"b"`
	A float64 `yaml:"a"`
}

// ScreenConfig holds window and page settings.
type ScreenConfig struct {
	Width          int   `yaml:"width"`
	Height         int   `yaml:"height"`
	TargetFPS      int   `yaml:"target_fps"`
	DocumentHeight int   `yaml:"document_height"` // 0 = same as height
	Background     Color `yaml:"background"`
}

// ParticlesConfig holds particle population parameters.
type ParticlesConfig struct {
	Breakpoint int     `yaml:"breakpoint"`
	SmallCount int     `yaml:"small_count"`
	LargeCount int     `yaml:"large_count"`
	MinSize    float64 `yaml:"min_size"`
	MaxSize    float64 `yaml:"max_size"`
	DriftSpeed float64 `yaml:"drift_speed"`
	Fill       Color   `yaml:"fill"`
	Palette    []Color `yaml:"palette"`
}

// LinksConfig holds proximity link parameters.
type LinksConfig struct {
	Distance float64 `yaml:"distance"`
	Opacity  float64 `yaml:"opacity"`
	Width    float64 `yaml:"width"`
	Color    Color   `yaml:"color"`
}

// PointerConfig holds pointer repulsion parameters.
type PointerConfig struct {
	Radius  float64 `yaml:"radius"`
	Policy  string  `yaml:"policy"`
	Divisor float64 `yaml:"divisor"`
	Scale   float64 `yaml:"scale"`
}

// SurfaceConfig holds drawing surface sizing.
type SurfaceConfig struct {
	Sizing string `yaml:"sizing"`
}

// TerminalConfig maps terminal cells to surface pixels.
type TerminalConfig struct {
	CellWidth  int `yaml:"cell_width"`
	CellHeight int `yaml:"cell_height"`
}

// TelemetryConfig holds stats collection parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // seconds
	PerfWindow  int     `yaml:"perf_window"`  // frames
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	DocumentHeight int // Screen.DocumentHeight, never below Screen.Height
	WindowFrames   int // Telemetry.StatsWindow * Screen.TargetFPS
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Default returns the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are broken: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

// Validate reports the first unusable value.
func (c *Config) Validate() error {
	switch {
	case c.Particles.SmallCount < 0 || c.Particles.LargeCount < 0:
		return fmt.Errorf("%w: particle counts must not be negative", ErrInvalid)
	case c.Particles.MinSize > c.Particles.MaxSize:
		return fmt.Errorf("%w: particles.min_size %.2f exceeds max_size %.2f", ErrInvalid, c.Particles.MinSize, c.Particles.MaxSize)
	case c.Links.Distance <= 0:
		return fmt.Errorf("%w: links.distance must be positive", ErrInvalid)
	case c.Pointer.Radius < 0:
		return fmt.Errorf("%w: pointer.radius must not be negative", ErrInvalid)
	case c.Screen.TargetFPS <= 0:
		return fmt.Errorf("%w: screen.target_fps must be positive", ErrInvalid)
	case c.Terminal.CellWidth <= 0 || c.Terminal.CellHeight <= 0:
		return fmt.Errorf("%w: terminal cell size must be positive", ErrInvalid)
	}

	switch c.Pointer.Policy {
	case PolicyDivisor:
		if c.Pointer.Divisor <= 0 {
			return fmt.Errorf("%w: pointer.divisor must be positive", ErrInvalid)
		}
	case PolicyFalloff:
	default:
		return fmt.Errorf("%w: unknown pointer.policy %q", ErrInvalid, c.Pointer.Policy)
	}

	switch c.Surface.Sizing {
	case SizingViewport, SizingDocument:
	default:
		return fmt.Errorf("%w: unknown surface.sizing %q", ErrInvalid, c.Surface.Sizing)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DocumentHeight = c.Screen.DocumentHeight
	if c.Derived.DocumentHeight < c.Screen.Height {
		c.Derived.DocumentHeight = c.Screen.Height
	}

	c.Derived.WindowFrames = int(c.Telemetry.StatsWindow * float64(c.Screen.TargetFPS))
	if c.Derived.WindowFrames < 1 {
		c.Derived.WindowFrames = 1
	}
}

// Recompute refreshes derived values after fields were changed in code.
func (c *Config) Recompute() error {
	if err := c.Validate(); err != nil {
		return err
	}
	c.computeDerived()
	return nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
