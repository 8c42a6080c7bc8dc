package field

import (
	"math"
	"math/rand"
	"time"
)

// Field owns the particle set and pointer state and renders one frame per
// Frame call. It is not safe for concurrent use; Loop serialises access when
// events arrive from other goroutines.
type Field struct {
	surface Surface
	opts    Options
	rng     Source

	particles []Particle
	pointer   Pointer
	viewport  Viewport
	width     float64
	height    float64
	frame     int64
}

// New sizes surface from vp and samples the initial particle set.
// A nil surface yields a disabled Field on which every call is a no-op.
// A nil rng is replaced by a time-seeded source.
func New(surface Surface, vp Viewport, opts Options, rng Source) *Field {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	f := &Field{
		surface: surface,
		opts:    opts,
		rng:     rng,
		pointer: Pointer{Radius: opts.PointerRadius},
	}
	if surface == nil {
		return f
	}
	f.Resize(vp)
	return f
}

// Enabled reports whether the field has a surface to draw on.
func (f *Field) Enabled() bool { return f.surface != nil }

// Resize applies new viewport metrics: the surface is resized and the particle
// set is discarded and sampled again over the new bounds.
func (f *Field) Resize(vp Viewport) {
	if f.surface == nil {
		return
	}
	f.viewport = vp
	f.surface.SetSize(f.opts.Sizing.surfaceSize(vp))
	f.width, f.height = f.surface.Size()
	f.spawn(f.opts.CountFor(vp.Width))
}

// Respawn resamples the particle set without changing the surface.
func (f *Field) Respawn() {
	if f.surface == nil {
		return
	}
	f.spawn(f.opts.CountFor(f.viewport.Width))
}

// spawn replaces the particle set with n freshly sampled particles.
func (f *Field) spawn(n int) {
	o := &f.opts
	particles := make([]Particle, n)
	for i := range particles {
		p := &particles[i]
		p.X = f.rng.Float64() * f.width
		p.Y = f.rng.Float64() * f.height
		p.Size = o.MinSize + f.rng.Float64()*(o.MaxSize-o.MinSize)
		p.SpeedX = (f.rng.Float64() - 0.5) * o.DriftSpeed
		p.SpeedY = (f.rng.Float64() - 0.5) * o.DriftSpeed
		p.Color = o.Fill
		if len(o.Palette) > 0 {
			idx := int(f.rng.Float64() * float64(len(o.Palette)))
			if idx >= len(o.Palette) {
				idx = len(o.Palette) - 1
			}
			p.Color = o.Palette[idx]
		}
	}
	f.particles = particles
}

// MovePointer records the cursor position.
func (f *Field) MovePointer(x, y float64) {
	f.pointer.X = x
	f.pointer.Y = y
	f.pointer.Active = true
}

// LeavePointer marks the pointer as absent.
func (f *Field) LeavePointer() {
	f.pointer.Active = false
}

// Pointer returns the current pointer state.
func (f *Field) Pointer() Pointer { return f.pointer }

// Particles returns a copy of the particle set in index order.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	copy(out, f.particles)
	return out
}

// Count returns the number of particles.
func (f *Field) Count() int { return len(f.particles) }

// Bounds returns the simulation bounds (the surface size at the last resize).
func (f *Field) Bounds() (w, h float64) { return f.width, f.height }

// Options returns the current options.
func (f *Field) Options() Options { return f.opts }

// SetOptions replaces the options. The particle set is kept; population
// settings apply at the next Resize or Respawn.
func (f *Field) SetOptions(opts Options) {
	f.opts = opts
	f.pointer.Radius = opts.PointerRadius
}

// Frame advances every particle by one step and draws the result.
//
// The surface is cleared once, then each particle in index order is
// integrated, reflected, repelled and drawn, followed by its links to every
// particle with a higher index. Those later particles have not moved yet this
// frame, and stroke order follows the loop order; both are part of the look.
func (f *Field) Frame() FrameStats {
	if f.surface == nil {
		return FrameStats{}
	}
	f.frame++
	stats := FrameStats{Frame: f.frame, Particles: len(f.particles)}

	o := &f.opts
	ptr := f.pointer
	f.surface.Clear()

	for i := range f.particles {
		p := &f.particles[i]

		p.X += p.SpeedX
		p.Y += p.SpeedY

		// Post-integration check; a particle may overshoot by one step.
		if p.X < 0 || p.X > f.width {
			p.SpeedX = -p.SpeedX
			stats.Reflections++
		}
		if p.Y < 0 || p.Y > f.height {
			p.SpeedY = -p.SpeedY
			stats.Reflections++
		}

		if ptr.Active {
			dx := ptr.X - p.X
			dy := ptr.Y - p.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < ptr.Radius {
				ox, oy := o.Repulsion.Displace(dx, dy, dist, ptr.Radius)
				p.X += ox
				p.Y += oy
				stats.Repelled++
			}
		}

		f.surface.FillCircle(p.X, p.Y, p.Size, p.Color)

		for j := i + 1; j < len(f.particles); j++ {
			q := &f.particles[j]
			dx := p.X - q.X
			dy := p.Y - q.Y
			dist := math.Sqrt(dx*dx + dy*dy)
			if dist < o.LinkDistance {
				f.surface.StrokeLine(p.X, p.Y, q.X, q.Y, o.LinkWidth, o.LinkColor.WithAlpha(LinkAlpha(o.LinkOpacity, dist, o.LinkDistance)))
				stats.Links++
			}
		}
	}

	return stats
}

// LinkAlpha is the stroke opacity of a link of length dist: base at zero,
// falling linearly to zero at threshold.
func LinkAlpha(base, dist, threshold float64) float64 {
	return base * (1 - dist/threshold)
}
