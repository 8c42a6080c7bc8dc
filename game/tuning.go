package game

import (
	"github.com/pthm-cable/backdrop/config"
	"github.com/pthm-cable/backdrop/field"
	"github.com/pthm-cable/backdrop/ui"
)

const tuningPanelWidth = 240

// tuningFromConfig seeds the tuning panel. Both repulsion constants come
// from config so switching policy keeps the other one's value.
func tuningFromConfig(cfg *config.Config) ui.Tuning {
	return ui.Tuning{
		LinkDistance:  float32(cfg.Links.Distance),
		LinkOpacity:   float32(cfg.Links.Opacity),
		PointerRadius: float32(cfg.Pointer.Radius),
		Divisor:       float32(cfg.Pointer.Divisor),
		Scale:         float32(cfg.Pointer.Scale),
		Falloff:       cfg.Pointer.Policy == config.PolicyFalloff,
	}
}

// applyTuning returns o with the panel values applied.
func applyTuning(o field.Options, t ui.Tuning) field.Options {
	o.LinkDistance = float64(t.LinkDistance)
	o.LinkOpacity = float64(t.LinkOpacity)
	o.PointerRadius = float64(t.PointerRadius)
	if t.Falloff {
		o.Repulsion = field.FalloffRepulsion{Scale: float64(t.Scale)}
	} else {
		o.Repulsion = field.DivisorRepulsion{Divisor: float64(t.Divisor)}
	}
	return o
}
