// Package renderer draws the particle field with raylib.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/camera"
	"github.com/pthm-cable/backdrop/field"
)

// Surface is a field.Surface that draws to the current raylib render
// target. Surface coordinates are mapped to the window through the camera;
// primitives outside the visible band are skipped.
type Surface struct {
	cam        *camera.Camera
	background rl.Color
	w, h       float64

	// Per-frame counters, reset by Clear
	drawn  int
	culled int
}

// NewSurface creates a surface viewed through cam and cleared to background.
func NewSurface(cam *camera.Camera, background field.Paint) *Surface {
	return &Surface{
		cam:        cam,
		background: Color(background),
		w:          float64(cam.SurfaceW),
		h:          float64(cam.SurfaceH),
	}
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (float64, float64) { return s.w, s.h }

// SetSize resizes the surface and re-clamps the camera scroll.
func (s *Surface) SetSize(w, h float64) {
	s.w, s.h = w, h
	s.cam.Resize(s.cam.ViewportW, s.cam.ViewportH, float32(w), float32(h))
}

// Clear fills the window with the background colour.
func (s *Surface) Clear() {
	s.drawn, s.culled = 0, 0
	rl.ClearBackground(s.background)
}

// FillCircle draws a filled disc.
func (s *Surface) FillCircle(x, y, r float64, p field.Paint) {
	if !s.cam.IsVisible(float32(x), float32(y), float32(r)) {
		s.culled++
		return
	}
	sx, sy := s.cam.SurfaceToScreen(float32(x), float32(y))
	rl.DrawCircleV(rl.Vector2{X: sx, Y: sy}, float32(r), Color(p))
	s.drawn++
}

// StrokeLine draws a line segment of the given width.
func (s *Surface) StrokeLine(x0, y0, x1, y1, width float64, p field.Paint) {
	if !s.cam.SegmentVisible(float32(x0), float32(y0), float32(x1), float32(y1)) {
		s.culled++
		return
	}
	sx0, sy0 := s.cam.SurfaceToScreen(float32(x0), float32(y0))
	sx1, sy1 := s.cam.SurfaceToScreen(float32(x1), float32(y1))
	rl.DrawLineEx(rl.Vector2{X: sx0, Y: sy0}, rl.Vector2{X: sx1, Y: sy1}, float32(width), Color(p))
	s.drawn++
}

// Counts returns primitives drawn and culled since the last Clear.
func (s *Surface) Counts() (drawn, culled int) {
	return s.drawn, s.culled
}

// Camera returns the camera the surface is viewed through.
func (s *Surface) Camera() *camera.Camera {
	return s.cam
}
