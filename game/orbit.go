package game

import "math"

// Orbit scripts a pointer circling the viewport centre for headless runs.
// The pointer is present for the first three quarters of each lap and
// absent for the rest.
type Orbit struct {
	CX, CY float64
	Radius float64
	Period int64 // frames per lap
}

// NewOrbit creates an orbit around the centre of a w×h viewport.
func NewOrbit(w, h float64) *Orbit {
	return &Orbit{
		CX:     w / 2,
		CY:     h / 2,
		Radius: math.Min(w, h) / 3,
		Period: 600,
	}
}

// At returns the pointer position for a frame.
func (o *Orbit) At(frame int64) (x, y float64, active bool) {
	phase := frame % o.Period
	if phase >= o.Period*3/4 {
		return 0, 0, false
	}
	a := 2 * math.Pi * float64(phase) / float64(o.Period)
	return o.CX + o.Radius*math.Cos(a), o.CY + o.Radius*math.Sin(a), true
}
