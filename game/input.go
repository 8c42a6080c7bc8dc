package game

import rl "github.com/gen2brain/raylib-go/raylib"

// handleInput processes window, keyboard and mouse input.
func (g *Game) handleInput() {
	// Window resize propagation
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}
	if rl.IsKeyPressed(rl.KeyF1) {
		g.showHUD = !g.showHUD
	}
	if rl.IsKeyPressed(rl.KeyD) {
		g.tuning.Toggle()
	}
	if rl.IsKeyPressed(rl.KeyR) {
		g.Respawn()
	}

	g.handlePointer()
	g.handleScroll()
}

// handleResize checks for window resize and propagates new dimensions.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	g.Resize(rl.GetScreenWidth(), rl.GetScreenHeight())
}

// handlePointer feeds the cursor to the field in window coordinates.
func (g *Game) handlePointer() {
	pos := rl.GetMousePosition()
	g.setPointer(pos.X, pos.Y, rl.IsCursorOnScreen())
}

// setPointer moves the field pointer, or clears it when the cursor is off
// the window or over the tuning panel.
func (g *Game) setPointer(x, y float32, onScreen bool) {
	if !onScreen || (g.tuning != nil && g.tuning.Contains(x, y)) {
		g.field.LeavePointer()
		return
	}
	g.field.MovePointer(float64(x), float64(y))
}

// handleScroll moves the camera over a document-height surface.
func (g *Game) handleScroll() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		g.cam.Wheel(wheel)
	}
	if rl.IsKeyPressed(rl.KeyPageDown) {
		g.cam.Scroll(g.cam.ViewportH)
	}
	if rl.IsKeyPressed(rl.KeyPageUp) {
		g.cam.Scroll(-g.cam.ViewportH)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		g.cam.Reset()
	}
}
