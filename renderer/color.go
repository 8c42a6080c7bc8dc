package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/field"
)

// Color converts a paint to a raylib colour with straight alpha.
func Color(p field.Paint) rl.Color {
	c := p.NRGBA()
	return rl.Color{R: c.R, G: c.G, B: c.B, A: c.A}
}
