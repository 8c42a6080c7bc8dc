// Package camera provides the scroll viewport onto the drawing surface.
package camera

// Camera controls which part of the surface is visible in the window.
// The surface can be taller than the window (document sizing); the camera
// then scrolls vertically, clamped to the surface.
type Camera struct {
	// ScrollY is the surface row shown at the top of the window
	ScrollY float32

	// Viewport dimensions (window size)
	ViewportW, ViewportH float32

	// Surface dimensions
	SurfaceW, SurfaceH float32

	// Pixels scrolled per wheel notch
	WheelStep float32
}

// New creates a camera scrolled to the top of the surface.
func New(viewportW, viewportH, surfaceW, surfaceH float32) *Camera {
	return &Camera{
		ViewportW: viewportW,
		ViewportH: viewportH,
		SurfaceW:  surfaceW,
		SurfaceH:  surfaceH,
		WheelStep: 60,
	}
}

// MaxScroll returns the largest valid ScrollY.
func (c *Camera) MaxScroll() float32 {
	if c.SurfaceH <= c.ViewportH {
		return 0
	}
	return c.SurfaceH - c.ViewportH
}

// SurfaceToScreen converts surface coordinates to window coordinates.
func (c *Camera) SurfaceToScreen(x, y float32) (sx, sy float32) {
	return x, y - c.ScrollY
}

// ScreenToSurface converts window coordinates to surface coordinates.
func (c *Camera) ScreenToSurface(sx, sy float32) (x, y float32) {
	return sx, sy + c.ScrollY
}

// IsVisible returns true if a shape centred at surface (x, y) extending
// radius in every direction could be visible in the window.
func (c *Camera) IsVisible(x, y, radius float32) bool {
	_, sy := c.SurfaceToScreen(x, y)
	return x+radius >= 0 && x-radius <= c.ViewportW &&
		sy+radius >= 0 && sy-radius <= c.ViewportH
}

// SegmentVisible returns true if the segment's bounding box overlaps the window.
func (c *Camera) SegmentVisible(x0, y0, x1, y1 float32) bool {
	minX, maxX := minmax(x0, x1)
	minY, maxY := minmax(y0, y1)
	minY -= c.ScrollY
	maxY -= c.ScrollY
	return maxX >= 0 && minX <= c.ViewportW && maxY >= 0 && minY <= c.ViewportH
}

// Resize updates viewport and surface dimensions and re-clamps the scroll.
func (c *Camera) Resize(viewportW, viewportH, surfaceW, surfaceH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
	c.SurfaceW = surfaceW
	c.SurfaceH = surfaceH
	c.ScrollY = clamp(c.ScrollY, 0, c.MaxScroll())
}

// Scroll moves the view down by dy surface pixels (negative scrolls up).
func (c *Camera) Scroll(dy float32) {
	c.ScrollY = clamp(c.ScrollY+dy, 0, c.MaxScroll())
}

// Wheel scrolls by mouse wheel notches; positive notches scroll up.
func (c *Camera) Wheel(notches float32) {
	c.Scroll(-notches * c.WheelStep)
}

// Reset scrolls back to the top.
func (c *Camera) Reset() {
	c.ScrollY = 0
}

func minmax(a, b float32) (float32, float32) {
	if a < b {
		return a, b
	}
	return b, a
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
