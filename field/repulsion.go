package field

// Repulsion computes how far a particle is pushed away from the pointer.
// dx, dy is the vector from the particle to the pointer, dist its length and
// radius the pointer influence radius. Callers only invoke it when
// dist < radius. The returned offset is added to the particle position.
type Repulsion interface {
	Displace(dx, dy, dist, radius float64) (ox, oy float64)
}

// DivisorRepulsion moves the particle by (vector to pointer) / Divisor in the
// opposite direction. The push is strongest near the edge of the radius and
// vanishes when the particle sits on the pointer.
type DivisorRepulsion struct {
	Divisor float64
}

func (r DivisorRepulsion) Displace(dx, dy, _, _ float64) (float64, float64) {
	return -dx / r.Divisor, -dy / r.Divisor
}

// FalloffRepulsion pushes with magnitude Scale * (radius - dist) / radius
// along the unit vector away from the pointer, so the push grows as the
// pointer gets closer. A particle exactly on the pointer has no direction
// and is pushed along +x.
type FalloffRepulsion struct {
	Scale float64
}

func (r FalloffRepulsion) Displace(dx, dy, dist, radius float64) (float64, float64) {
	force := (radius - dist) / radius
	if dist == 0 {
		return force * r.Scale, 0
	}
	return -dx / dist * force * r.Scale, -dy / dist * force * r.Scale
}
