// Package field simulates the drifting particle backdrop: points that bounce
// off the surface bounds, shy away from the pointer and draw faint links to
// their near neighbours.
package field

import (
	"image/color"
	"math"
)

// Paint is an RGB colour with a [0,1] alpha channel.
type Paint struct {
	R, G, B uint8
	Alpha   float64
}

// WithAlpha returns a copy of p with the given alpha.
func (p Paint) WithAlpha(a float64) Paint {
	p.Alpha = a
	return p
}

// NRGBA converts p to a non-premultiplied 8-bit colour.
func (p Paint) NRGBA() color.NRGBA {
	return color.NRGBA{R: p.R, G: p.G, B: p.B, A: alpha8(p.Alpha)}
}

func alpha8(a float64) uint8 {
	if a <= 0 {
		return 0
	}
	if a >= 1 {
		return 255
	}
	return uint8(math.Round(a * 255))
}

// Particle is one drifting point. Size and Color never change after creation.
type Particle struct {
	X, Y           float64
	SpeedX, SpeedY float64
	Size           float64
	Color          Paint
}

// Pointer tracks the cursor. Active == false means no pointer is present.
type Pointer struct {
	X, Y   float64
	Radius float64
	Active bool
}

// Viewport holds the host window metrics.
type Viewport struct {
	Width, Height  float64
	DocumentHeight float64 // Full scrollable height; 0 = same as Height
}

// Sizing selects how the surface backing buffer is sized.
type Sizing uint8

const (
	SizeViewport Sizing = iota // Surface matches the viewport
	SizeDocument               // Surface spans the full document height
)

// String returns the config name of the sizing policy.
func (s Sizing) String() string {
	if s == SizeDocument {
		return "document"
	}
	return "viewport"
}

// surfaceSize returns the backing buffer dimensions for vp.
func (s Sizing) surfaceSize(vp Viewport) (w, h float64) {
	w, h = vp.Width, vp.Height
	if s == SizeDocument && vp.DocumentHeight > h {
		h = vp.DocumentHeight
	}
	return w, h
}

// Source supplies uniform values in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

// FrameStats counts what happened during one frame.
type FrameStats struct {
	Frame       int64
	Particles   int
	Links       int
	Repelled    int
	Reflections int
}
