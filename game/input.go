package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heatfield/palette"
)

// handleInput processes keyboard and mouse input.
func (g *Game) handleInput() {
	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	if rl.IsKeyPressed(rl.KeySpace) {
		g.paused = !g.paused
	}

	if rl.IsKeyPressed(rl.KeyS) {
		g.heat.SetShape(nextShape(g.heat.Shape()))
	}

	if rl.IsKeyPressed(rl.KeyP) {
		name := nextPalette(g.palette)
		color, err := palette.ByName(name, g.cfg.Display.Alpha)
		if err != nil {
			slog.Error("failed to switch palette", "palette", name, "error", err)
		} else {
			g.palette = name
			g.heat.SetPalette(color)
		}
	}

	if rl.IsKeyPressed(rl.KeyB) {
		g.brushPanel.Toggle()
	}

	if rl.IsKeyPressed(rl.KeyE) {
		g.sim.ToggleEmitters()
	}

	if rl.IsKeyPressed(rl.KeyC) {
		g.sim.Field().Reset()
	}

	g.handlePointer()
}

// handlePointer queues heat while the left button is held.
func (g *Game) handlePointer() {
	if !rl.IsMouseButtonDown(rl.MouseButtonLeft) {
		return
	}
	pos := rl.GetMousePosition()
	// Sliders own the mouse while the panel is open
	if g.brushPanel.IsVisible() && pos.X >= float32(g.screenWidth-240) && pos.Y < 200 {
		return
	}
	g.sim.PushPointer(float64(pos.X), float64(pos.Y))
}

// handleResize keeps the panel anchored to the right edge.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := int32(rl.GetScreenWidth())
	h := int32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h
	g.brushPanel.Move(w-230, 10)
}
