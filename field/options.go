package field

import (
	"errors"
	"fmt"

	"github.com/pthm-cable/backdrop/config"
)

// Options configures a Field. Population settings (counts, sizes, drift,
// colours, sizing) take effect whenever the particle set is recreated; link
// and pointer settings take effect on the next frame.
type Options struct {
	Sizing Sizing

	// Population
	Breakpoint float64 // Viewport widths below this use SmallCount
	SmallCount int
	LargeCount int
	MinSize    float64
	MaxSize    float64
	DriftSpeed float64 // Velocity components are uniform in [-DriftSpeed/2, DriftSpeed/2)
	Fill       Paint
	Palette    []Paint

	// Links
	LinkDistance float64
	LinkOpacity  float64
	LinkWidth    float64
	LinkColor    Paint

	// Pointer
	PointerRadius float64
	Repulsion     Repulsion
}

// DefaultOptions returns the stock backdrop look.
func DefaultOptions() Options {
	ink := Paint{R: 11, G: 45, B: 91}
	return Options{
		Sizing:        SizeViewport,
		Breakpoint:    768,
		SmallCount:    40,
		LargeCount:    70,
		MinSize:       1,
		MaxSize:       4,
		DriftSpeed:    0.4,
		Fill:          ink.WithAlpha(0.25),
		LinkDistance:  90,
		LinkOpacity:   0.12,
		LinkWidth:     0.5,
		LinkColor:     ink.WithAlpha(1),
		PointerRadius: 120,
		Repulsion:     DivisorRepulsion{Divisor: 25},
	}
}

// OptionsFromConfig maps a loaded configuration onto field options.
func OptionsFromConfig(cfg *config.Config) Options {
	o := Options{
		Sizing:        SizeViewport,
		Breakpoint:    float64(cfg.Particles.Breakpoint),
		SmallCount:    cfg.Particles.SmallCount,
		LargeCount:    cfg.Particles.LargeCount,
		MinSize:       cfg.Particles.MinSize,
		MaxSize:       cfg.Particles.MaxSize,
		DriftSpeed:    cfg.Particles.DriftSpeed,
		Fill:          paintFromConfig(cfg.Particles.Fill),
		LinkDistance:  cfg.Links.Distance,
		LinkOpacity:   cfg.Links.Opacity,
		LinkWidth:     cfg.Links.Width,
		LinkColor:     paintFromConfig(cfg.Links.Color),
		PointerRadius: cfg.Pointer.Radius,
		Repulsion:     DivisorRepulsion{Divisor: cfg.Pointer.Divisor},
	}
	if cfg.Surface.Sizing == config.SizingDocument {
		o.Sizing = SizeDocument
	}
	if cfg.Pointer.Policy == config.PolicyFalloff {
		o.Repulsion = FalloffRepulsion{Scale: cfg.Pointer.Scale}
	}
	for _, c := range cfg.Particles.Palette {
		o.Palette = append(o.Palette, paintFromConfig(c))
	}
	return o
}

func paintFromConfig(c config.Color) Paint {
	return Paint{R: c.R, G: c.G, B: c.B, Alpha: c.A}
}

var errOptions = errors.New("invalid field options")

// Validate reports options the simulator cannot work with.
func (o Options) Validate() error {
	switch {
	case o.SmallCount < 0 || o.LargeCount < 0:
		return fmt.Errorf("%w: negative particle count", errOptions)
	case o.MinSize > o.MaxSize:
		return fmt.Errorf("%w: min size %.2f > max size %.2f", errOptions, o.MinSize, o.MaxSize)
	case o.LinkDistance <= 0:
		return fmt.Errorf("%w: link distance must be positive", errOptions)
	case o.Repulsion == nil:
		return fmt.Errorf("%w: no repulsion policy", errOptions)
	}
	if d, ok := o.Repulsion.(DivisorRepulsion); ok && d.Divisor <= 0 {
		return fmt.Errorf("%w: repulsion divisor must be positive", errOptions)
	}
	return nil
}

// CountFor returns the particle count for a viewport of the given width.
func (o Options) CountFor(width float64) int {
	if width < o.Breakpoint {
		return o.SmallCount
	}
	return o.LargeCount
}
