package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/backdrop/telemetry"
	"github.com/pthm-cable/backdrop/ui"
)

const controlsLegend = "F1 hud  D tuning  R respawn  wheel/PgUp/PgDn scroll  F11 fullscreen"

// Draw renders one frame of the field plus overlays.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhaseSimulate)
	rl.BeginDrawing()
	g.last = g.field.Frame()

	g.perfCollector.StartPhase(telemetry.PhasePresent)
	g.drawUI()
	rl.EndDrawing()
	g.perfCollector.RecordPresent()

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.recordFrame()

	g.perfCollector.EndFrame()
}

// drawUI draws the HUD, perf readout and tuning panel.
func (g *Game) drawUI() {
	if g.showHUD {
		p := g.field.Pointer()
		drawn, culled := g.surface.Counts()
		y := g.hud.Draw(ui.HUDData{
			Frame:         g.last.Frame,
			Particles:     g.last.Particles,
			Links:         g.last.Links,
			Repelled:      g.last.Repelled,
			FPS:           rl.GetFPS(),
			Drawn:         drawn,
			Culled:        culled,
			PointerActive: p.Active,
			PointerX:      p.X,
			PointerY:      p.Y,
			Sizing:        g.field.Options().Sizing.String(),
			Policy:        policyName(g.field.Options().Repulsion),
			ScrollY:       g.cam.ScrollY,
			MaxScroll:     g.cam.MaxScroll(),
		})
		g.perfPanel.SetPosition(10, y)
		g.perfPanel.Draw(g.perfCollector.Stats())
		g.hud.DrawControls(int32(g.screenHeight), controlsLegend)
	}

	changed, respawn := g.tuning.Draw(&g.tuningVals)
	if changed {
		g.field.SetOptions(applyTuning(g.field.Options(), g.tuningVals))
	}
	if respawn {
		g.Respawn()
	}
}
