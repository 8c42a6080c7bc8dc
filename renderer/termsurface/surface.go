// Package termsurface draws the particle field into terminal cells.
//
// The surface keeps a pixel coordinate space of cols×cellW by rows×cellH so
// particle motion stays smooth; each primitive is rasterised onto the cells
// it covers and its paint is alpha-blended into the cell colour.
package termsurface

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/backdrop/field"
)

// Glyphs used for each primitive.
const (
	GlyphEmpty = ' '
	GlyphDot   = '•' // disc smaller than a cell
	GlyphDisc  = '●' // disc at least half a cell wide
	GlyphLink  = '·'
)

type cell struct {
	r, g, b float64
	glyph   rune
}

// Surface is a field.Surface backed by a tcell screen.
type Surface struct {
	screen       tcell.Screen
	cellW, cellH float64
	bg           field.Paint
	bgColor      tcell.Color

	cols, rows int
	cells      []cell
}

// New creates a surface on screen with the given cell size in pixels.
func New(screen tcell.Screen, cellW, cellH float64, bg field.Paint) *Surface {
	return &Surface{
		screen:  screen,
		cellW:   cellW,
		cellH:   cellH,
		bg:      bg,
		bgColor: tcell.NewRGBColor(int32(bg.R), int32(bg.G), int32(bg.B)),
	}
}

// Viewport returns the pixel viewport for a terminal of cols×rows cells.
func (s *Surface) Viewport(cols, rows int) field.Viewport {
	return field.Viewport{
		Width:  float64(cols) * s.cellW,
		Height: float64(rows) * s.cellH,
	}
}

// CellCenter returns the pixel position of the centre of a cell.
func (s *Surface) CellCenter(col, row int) (x, y float64) {
	return (float64(col) + 0.5) * s.cellW, (float64(row) + 0.5) * s.cellH
}

// Size returns the surface dimensions in pixels.
func (s *Surface) Size() (float64, float64) {
	return float64(s.cols) * s.cellW, float64(s.rows) * s.cellH
}

// SetSize resizes the cell grid to cover w×h pixels.
func (s *Surface) SetSize(w, h float64) {
	s.cols = int(w / s.cellW)
	s.rows = int(h / s.cellH)
	if s.cols < 0 {
		s.cols = 0
	}
	if s.rows < 0 {
		s.rows = 0
	}
	s.cells = make([]cell, s.cols*s.rows)
}

// Clear resets every cell to the background.
func (s *Surface) Clear() {
	style := tcell.StyleDefault.Background(s.bgColor).Foreground(s.bgColor)
	for i := range s.cells {
		s.cells[i] = cell{r: float64(s.bg.R), g: float64(s.bg.G), b: float64(s.bg.B), glyph: GlyphEmpty}
	}
	for row := 0; row < s.rows; row++ {
		for col := 0; col < s.cols; col++ {
			s.screen.SetContent(col, row, GlyphEmpty, nil, style)
		}
	}
}

// FillCircle marks the cell holding the centre and every cell whose centre
// lies inside the disc.
func (s *Surface) FillCircle(x, y, r float64, p field.Paint) {
	glyph := GlyphDot
	if 2*r >= s.cellW {
		glyph = GlyphDisc
	}

	cc, cr := s.cellAt(x, y)
	s.plot(cc, cr, p, glyph, true)

	c0, r0 := s.cellAt(x-r, y-r)
	c1, r1 := s.cellAt(x+r, y+r)
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if col == cc && row == cr {
				continue
			}
			px, py := s.CellCenter(col, row)
			if math.Hypot(px-x, py-y) <= r {
				s.plot(col, row, p, glyph, true)
			}
		}
	}
}

// StrokeLine walks the cells between the endpoints. Link glyphs never
// replace a disc. The width is ignored: a link is at most one cell wide.
func (s *Surface) StrokeLine(x0, y0, x1, y1, _ float64, p field.Paint) {
	c0, r0 := s.cellAt(x0, y0)
	c1, r1 := s.cellAt(x1, y1)

	dc := abs(c1 - c0)
	dr := -abs(r1 - r0)
	sc, sr := 1, 1
	if c0 > c1 {
		sc = -1
	}
	if r0 > r1 {
		sr = -1
	}
	e := dc + dr
	for {
		s.plot(c0, r0, p, GlyphLink, false)
		if c0 == c1 && r0 == r1 {
			return
		}
		e2 := 2 * e
		if e2 >= dr {
			e += dr
			c0 += sc
		}
		if e2 <= dc {
			e += dc
			r0 += sr
		}
	}
}

// cellAt returns the cell containing a pixel position.
func (s *Surface) cellAt(x, y float64) (col, row int) {
	return int(math.Floor(x / s.cellW)), int(math.Floor(y / s.cellH))
}

// plot blends p into a cell and writes it to the screen. Cells outside the
// grid are ignored.
func (s *Surface) plot(col, row int, p field.Paint, glyph rune, replace bool) {
	if col < 0 || row < 0 || col >= s.cols || row >= s.rows {
		return
	}
	c := &s.cells[row*s.cols+col]

	a := math.Max(0, math.Min(1, p.Alpha))
	c.r += (float64(p.R) - c.r) * a
	c.g += (float64(p.G) - c.g) * a
	c.b += (float64(p.B) - c.b) * a
	if replace || c.glyph == GlyphEmpty {
		c.glyph = glyph
	}

	fg := tcell.NewRGBColor(int32(math.Round(c.r)), int32(math.Round(c.g)), int32(math.Round(c.b)))
	s.screen.SetContent(col, row, c.glyph, nil, tcell.StyleDefault.Background(s.bgColor).Foreground(fg))
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
