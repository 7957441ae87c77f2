// Brush preview tool - stamps a single brush on an empty field and shows the
// result after a number of decay ticks, with sliders for every brush input.
//
// Usage: go run ./cmd/brushpreview
package main

import (
	"fmt"
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"

	"github.com/pthm-cable/heatfield/palette"
	"github.com/pthm-cable/heatfield/telemetry"
)

const (
	windowWidth  = 1000
	windowHeight = 620
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Brush Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultPreviewParams()
	paint := palette.Thermal(1)

	img := rl.GenImageColor(previewGrid, previewGrid, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	field, err := stampPreview(params)
	needsRegen := true

	for !rl.WindowShouldClose() {
		if needsRegen {
			field, err = stampPreview(params)
			if err == nil {
				updateTexture(texture, field.Values(), field.MaxSaturation(), paint)
			}
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: previewGrid, Height: previewGrid},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		if err != nil {
			rl.DrawText(err.Error(), 15, statsY, 16, rl.Red)
		} else {
			s := telemetry.ComputeFieldStats(0, field)
			rl.DrawText(fmt.Sprintf("Active: %d  Peak: %.0f  Total: %.0f", s.Active, s.Max, s.Total), 15, statsY, 16, rl.DarkGray)
			rl.DrawText(fmt.Sprintf("Saturated: %d  Mean: %.1f", s.Saturated, s.Mean), 15, statsY+20, 16, rl.DarkGray)
		}

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Brush Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		slider := func(label string, value *float32, lo, hi float32, format string) {
			rl.DrawText(label, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 18
			nv := gui.SliderBar(
				rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
				"", "",
				*value, lo, hi,
			)
			rl.DrawText(fmt.Sprintf(format, nv), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
			if nv != *value {
				*value = nv
				needsRegen = true
			}
			panelY += 35
		}

		slider("Radius (cells, scaled by heat)", &params.Radius, 0, 30, "%.1f")
		slider("Intensity (centre value, scaled by heat)", &params.Intensity, 0, 255, "%.0f")
		slider("Heat", &params.Heat, 0, 5, "%.2f")
		slider("Cell spacing", &params.Spacing, 0.5, 4, "%.2f")
		slider("Max saturation", &params.MaxSaturation, 1, 255, "%.0f")
		slider("Decay ticks after stamp", &params.Ticks, 0, 100, "%.0f")

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultPreviewParams()
			needsRegen = true
		}
		panelY += 55

		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yaml := brushYAML(params)
		rl.DrawText(yaml, int32(panelX), int32(panelY), 14, rl.Gray)

		rl.DrawText("Press C to copy YAML to clipboard", int32(panelX), int32(windowHeight-30), 12, rl.LightGray)
		if rl.IsKeyPressed(rl.KeyC) {
			rl.SetClipboardText(yaml)
		}

		rl.EndDrawing()
	}
}

// updateTexture uploads field values to the preview texture.
func updateTexture(texture rl.Texture2D, values []uint32, maxSat uint32, paint palette.Func) {
	pixels := make([]color.RGBA, len(values))
	for i, v := range values {
		pixels[i] = paint(v, maxSat)
	}
	rl.UpdateTexture(texture, pixels)
}
