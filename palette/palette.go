// Package palette maps heat cell values to colours.
package palette

import (
	"fmt"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/pthm-cable/heatfield/config"
	"github.com/pthm-cable/heatfield/heatmap"
)

// Func maps a cell value to a colour given the field's saturation cap.
type Func func(value, maxSaturation uint32) color.RGBA

// coldHue is the hue of an almost-empty cell in the thermal ramp (blue).
const coldHue = 240.0

// Level returns value as a fraction of maxSaturation in [0, 1].
func Level(value, maxSaturation uint32) float64 {
	if maxSaturation == 0 {
		return 0
	}
	return heatmap.Constrain(float64(value)/float64(maxSaturation), 0, 1)
}

// Red scales the red channel with the cell value.
func Red(alpha float64) Func {
	a := alphaByte(alpha)
	return func(value, maxSaturation uint32) color.RGBA {
		return color.RGBA{R: uint8(Level(value, maxSaturation)*255 + 0.5), A: a}
	}
}

// Thermal sweeps hue from blue for cool cells to red for saturated ones.
func Thermal(alpha float64) Func {
	a := alphaByte(alpha)
	return func(value, maxSaturation uint32) color.RGBA {
		hue := coldHue * (1 - Level(value, maxSaturation))
		r, g, b := colorful.Hsv(hue, 1, 1).Clamped().RGB255()
		return color.RGBA{R: r, G: g, B: b, A: a}
	}
}

// ByName returns the palette registered under name.
func ByName(name string, alpha float64) (Func, error) {
	switch name {
	case config.PaletteRed:
		return Red(alpha), nil
	case config.PaletteThermal:
		return Thermal(alpha), nil
	}
	return nil, fmt.Errorf("%w: unknown palette %q", heatmap.ErrConfiguration, name)
}

func alphaByte(alpha float64) uint8 {
	return uint8(heatmap.Constrain(alpha, 0, 1)*255 + 0.5)
}
