// Package ebitensurface draws the particle field onto an ebiten image.
package ebitensurface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/pthm-cable/backdrop/field"
)

// Surface is a field.Surface that draws with ebiten's vector package.
// Without a target image every draw call is a no-op, so a field can be
// stepped before the first Draw.
type Surface struct {
	dst  *ebiten.Image
	bg   color.NRGBA
	w, h float64

	// AntiAlias smooths disc and line edges.
	AntiAlias bool
}

// New creates a surface that clears to bg.
func New(bg field.Paint) *Surface {
	return &Surface{bg: bg.WithAlpha(1).NRGBA(), AntiAlias: true}
}

// SetTarget sets the image drawn into by the following calls.
func (s *Surface) SetTarget(dst *ebiten.Image) { s.dst = dst }

// Size returns the logical surface size in pixels.
func (s *Surface) Size() (float64, float64) { return s.w, s.h }

// SetSize records the logical size. The target image is owned by ebiten.
func (s *Surface) SetSize(w, h float64) { s.w, s.h = w, h }

// Clear fills the target with the background colour.
func (s *Surface) Clear() {
	if s.dst == nil {
		return
	}
	s.dst.Fill(s.bg)
}

// FillCircle draws a filled disc.
func (s *Surface) FillCircle(x, y, r float64, p field.Paint) {
	if s.dst == nil || r <= 0 {
		return
	}
	vector.DrawFilledCircle(s.dst, float32(x), float32(y), float32(r), p.NRGBA(), s.AntiAlias)
}

// StrokeLine draws a segment of the given width.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, p field.Paint) {
	if s.dst == nil || p.Alpha <= 0 {
		return
	}
	vector.StrokeLine(s.dst, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), p.NRGBA(), s.AntiAlias)
}
