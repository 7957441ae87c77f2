package main

import (
	"fmt"

	"github.com/pthm-cable/heatfield/heatmap"
)

// previewGrid is the preview field size in cells per side.
const previewGrid = 64

// PreviewParams holds the slider values. Sliders work in float32.
type PreviewParams struct {
	Radius        float32
	Intensity     float32
	Heat          float32
	Spacing       float32
	MaxSaturation float32
	Ticks         float32
}

func defaultPreviewParams() PreviewParams {
	return PreviewParams{
		Radius:        9,
		Intensity:     10,
		Heat:          2,
		Spacing:       1,
		MaxSaturation: 255,
		Ticks:         0,
	}
}

// stampPreview builds a preview field, stamps one brush at its centre and
// runs the requested number of decay-only ticks.
func stampPreview(p PreviewParams) (*heatmap.Field, error) {
	f, err := heatmap.New(heatmap.Params{
		Width:          previewGrid,
		Height:         previewGrid,
		CellSpacing:    float64(p.Spacing),
		BrushRadius:    float64(p.Radius),
		BrushIntensity: float64(p.Intensity),
		MaxSaturation:  uint32(p.MaxSaturation),
	})
	if err != nil {
		return nil, err
	}

	cx, cy := f.CellPosition(previewGrid/2, previewGrid/2)
	f.Update(cx, cy, float64(p.Heat), true)
	for i := 0; i < int(p.Ticks); i++ {
		f.Update(0, 0, 0, false)
	}
	return f, nil
}

func brushYAML(p PreviewParams) string {
	return fmt.Sprintf("grid:\n  cell_spacing: %.2f\n  max_saturation: %d\nbrush:\n  radius: %.1f\n  intensity: %.0f\n  pointer_heat: %.2f",
		p.Spacing, uint32(p.MaxSaturation), p.Radius, p.Intensity, p.Heat)
}
