package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/telemetry"
)

// HUDData holds everything the heads-up display shows.
type HUDData struct {
	Frame     int64
	Particles int
	Links     int
	Repelled  int
	FPS       int32

	// Primitives the renderer drew and culled this frame
	Drawn  int
	Culled int

	PointerActive bool
	PointerX      float64
	PointerY      float64

	Sizing    string
	Policy    string
	ScrollY   float32
	MaxScroll float32
}

// HUD renders the heads-up display in the top-left corner.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{
		renderer: NewRenderer(),
		x:        10,
		y:        10,
		width:    220,
	}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	lines := int32(9)
	if data.MaxScroll > 0 {
		lines++
	}
	height := r.Theme.Padding*2 + r.Theme.LineHeight*lines + 2

	r.DrawPanel(h.x, h.y, h.width, height)

	x := h.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, h.y+r.Theme.Padding, "Particle field")
	y = r.DrawLabelValue(x, y, "Frame", fmt.Sprintf("%d", data.Frame))
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	y = r.DrawLabelValue(x, y, "Particles", fmt.Sprintf("%d", data.Particles))
	y = r.DrawLabelValue(x, y, "Links", fmt.Sprintf("%d", data.Links))
	y = r.DrawLabelValue(x, y, "Repelled", fmt.Sprintf("%d", data.Repelled))
	y = r.DrawLabelValue(x, y, "Drawn", fmt.Sprintf("%d (%d culled)", data.Drawn, data.Culled))

	pointer := "absent"
	if data.PointerActive {
		pointer = fmt.Sprintf("%.0f, %.0f", data.PointerX, data.PointerY)
	}
	y = r.DrawLabelValue(x, y, "Pointer", pointer)
	y = r.DrawLabelValue(x, y, "Mode", data.Sizing+" / "+data.Policy)
	if data.MaxScroll > 0 {
		y = r.DrawLabelValue(x, y, "Scroll", fmt.Sprintf("%.0f / %.0f", data.ScrollY, data.MaxScroll))
	}

	return h.y + height + 4
}

// DrawControls renders the key legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}

// PerfPanel renders frame timing with a per-phase breakdown.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(x, y int32) *PerfPanel {
	return &PerfPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    220,
	}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the performance panel.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) {
	r := p.renderer
	height := r.Theme.Padding*2 + r.Theme.LineHeight*int32(3+len(telemetry.Phases)) + 2
	r.DrawPanel(p.x, p.y, p.width, height)

	x := p.x + r.Theme.Padding
	y := r.DrawSectionHeader(x, p.y+r.Theme.Padding, "Frame time")
	y = r.DrawLabelValue(x, y, "avg / p99", fmt.Sprintf("%d / %d us",
		stats.AvgFrame.Microseconds(), stats.P99Frame.Microseconds()))
	y = r.DrawLabelValue(x, y, "headroom", fmt.Sprintf("%.0f fps", stats.Headroom))

	for _, phase := range telemetry.Phases {
		pct := stats.PhasePct[phase]
		color := r.Theme.ValueColor
		if pct > 50 {
			color = rl.Orange
		}
		rl.DrawText(phase+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
		rl.DrawText(fmt.Sprintf("%5.1f%%", pct), x+r.Theme.LabelWidth, y, r.Theme.FontSize, color)
		y += r.Theme.LineHeight
	}
}
