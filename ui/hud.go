package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// HUDData holds all the data needed to render the main HUD.
type HUDData struct {
	Tick     int32
	Active   int
	MaxValue float64
	Pending  int
	Emitters int
	FPS      int32
	Paused   bool
	Static   bool
}

// HUD renders the main heads-up display.
type HUD struct {
	renderer *Renderer
}

// NewHUD creates a new HUD renderer.
func NewHUD() *HUD {
	return &HUD{renderer: NewRenderer()}
}

// Draw renders the HUD.
func (h *HUD) Draw(data HUDData) {
	mode := "dynamic"
	if data.Static {
		mode = "static"
	}
	rl.DrawText(fmt.Sprintf("Heat field (%s)", mode), 10, 10, 20, rl.White)
	rl.DrawText(
		fmt.Sprintf("Tick: %d | Active: %d | Peak: %.0f | FPS: %d", data.Tick, data.Active, data.MaxValue, data.FPS),
		10, 35, 16, rl.LightGray,
	)
	y := h.renderer.DrawLabelValue(10, 58, "Pending", fmt.Sprintf("%d", data.Pending))
	y = h.renderer.DrawLabelValue(10, y, "Emitters", fmt.Sprintf("%d", data.Emitters))
	if data.Paused {
		rl.DrawText("PAUSED", 10, y+4, 16, rl.Yellow)
	}
}

// DrawControls renders the control legend at the bottom of the screen.
func (h *HUD) DrawControls(screenHeight int32, controls string) {
	rl.DrawText(controls, 10, screenHeight-25, 14, rl.Gray)
}
