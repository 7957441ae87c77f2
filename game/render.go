package game

import (
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heatfield/ui"
)

// Draw renders the field and overlays.
func (g *Game) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	g.heat.Draw()
	g.drawUI()

	rl.EndDrawing()
}

// drawUI renders the HUD, brush panel and control legend.
func (g *Game) drawUI() {
	stats := g.sim.LastStats()
	g.hud.Draw(ui.HUDData{
		Tick:     g.sim.Tick(),
		Active:   stats.Active,
		MaxValue: stats.Max,
		Pending:  g.sim.Pending(),
		Emitters: g.sim.EmitterCount(),
		FPS:      rl.GetFPS(),
		Paused:   g.paused,
		Static:   g.sim.Static(),
	})

	p := g.sim.Field().Params()
	current := ui.BrushSettings{
		Radius:      float32(p.BrushRadius),
		Intensity:   float32(p.BrushIntensity),
		PointerHeat: float32(g.sim.PointerHeat()),
	}
	if next, changed := g.brushPanel.Draw(current); changed {
		if err := g.sim.SetBrush(float64(next.Radius), float64(next.Intensity)); err != nil {
			slog.Error("failed to update brush", "error", err)
		}
		g.sim.SetPointerHeat(float64(next.PointerHeat))
	}

	g.hud.DrawControls(g.screenHeight, controlsText)
}
