package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning holds the live-editable field parameters shown in the panel.
type Tuning struct {
	LinkDistance  float32
	LinkOpacity   float32
	PointerRadius float32
	Divisor       float32
	Scale         float32
	Falloff       bool
}

// Slider ranges
const (
	minLinkDistance  = 20
	maxLinkDistance  = 250
	minPointerRadius = 20
	maxPointerRadius = 400
	minDivisor       = 5
	maxDivisor       = 100
	maxScale         = 20
)

// TuningPanel renders raygui controls for the field parameters.
type TuningPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewTuningPanel creates a hidden tuning panel.
func NewTuningPanel(x, y, width int32) *TuningPanel {
	return &TuningPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (p *TuningPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Toggle switches panel visibility.
func (p *TuningPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Contains reports whether a window point lies over the visible panel.
func (p *TuningPanel) Contains(x, y float32) bool {
	if !p.visible {
		return false
	}
	return x >= float32(p.x) && x <= float32(p.x+p.width) &&
		y >= float32(p.y) && y <= float32(p.y+p.height())
}

func (p *TuningPanel) height() int32 {
	return p.renderer.Theme.Padding*2 + 6*38 + 30
}

// Draw renders the panel, writing slider changes into t.
// Returns whether any value changed and whether respawn was pressed.
func (p *TuningPanel) Draw(t *Tuning) (changed, respawn bool) {
	if !p.visible {
		return false, false
	}

	r := p.renderer
	r.DrawPanel(p.x, p.y, p.width, p.height())

	x := float32(p.x + r.Theme.Padding)
	y := float32(p.y + r.Theme.Padding)
	sliderW := float32(p.width - r.Theme.Padding*2 - 50)

	slider := func(label string, value *float32, min, max float32, format string) {
		rl.DrawText(label, int32(x), int32(y), r.Theme.FontSize, r.Theme.LabelColor)
		y += 14
		next := gui.SliderBar(rl.Rectangle{X: x, Y: y, Width: sliderW, Height: 16}, "", "", *value, min, max)
		rl.DrawText(fmt.Sprintf(format, next), int32(x+sliderW+6), int32(y+2), r.Theme.FontSize, r.Theme.ValueColor)
		if next != *value {
			*value = next
			changed = true
		}
		y += 24
	}

	slider("Link distance", &t.LinkDistance, minLinkDistance, maxLinkDistance, "%.0f")
	slider("Link opacity", &t.LinkOpacity, 0, 1, "%.2f")
	slider("Pointer radius", &t.PointerRadius, minPointerRadius, maxPointerRadius, "%.0f")
	slider("Divisor", &t.Divisor, minDivisor, maxDivisor, "%.0f")
	slider("Falloff scale", &t.Scale, 0, maxScale, "%.1f")

	falloff := gui.CheckBox(rl.Rectangle{X: x, Y: y, Width: 16, Height: 16}, "Falloff repulsion", t.Falloff)
	if falloff != t.Falloff {
		t.Falloff = falloff
		changed = true
	}
	y += 30

	respawn = gui.Button(rl.Rectangle{X: x, Y: y, Width: 120, Height: 24}, "Respawn")
	return changed, respawn
}
