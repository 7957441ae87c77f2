package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	gui "github.com/gen2brain/raylib-go/raygui"
)

// BrushSettings are the live-tunable brush parameters.
type BrushSettings struct {
	Radius      float32
	Intensity   float32
	PointerHeat float32
}

// BrushPanel renders sliders for the brush settings.
type BrushPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	visible  bool
}

// NewBrushPanel creates a new brush panel.
func NewBrushPanel(x, y, width int32) *BrushPanel {
	return &BrushPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// Toggle switches panel visibility.
func (p *BrushPanel) Toggle() bool {
	p.visible = !p.visible
	return p.visible
}

// Move repositions the panel.
func (p *BrushPanel) Move(x, y int32) {
	p.x, p.y = x, y
}

// IsVisible returns whether the panel is shown.
func (p *BrushPanel) IsVisible() bool {
	return p.visible
}

// Draw renders the panel and returns the possibly edited settings and
// whether anything changed.
func (p *BrushPanel) Draw(s BrushSettings) (BrushSettings, bool) {
	if !p.visible {
		return s, false
	}

	r := p.renderer
	pad := r.Theme.Padding
	height := int32(3*44) + pad*2 + r.Theme.LineHeight
	r.DrawPanel(p.x, p.y, p.width, height)

	y := r.DrawSectionHeader(p.x+pad, p.y+pad, "Brush")
	out := s

	out.Radius = p.slider(&y, "Radius", s.Radius, 1, 40)
	out.Intensity = p.slider(&y, "Intensity", s.Intensity, 1, 100)
	out.PointerHeat = p.slider(&y, "Pointer heat", s.PointerHeat, 0, 5)

	return out, out != s
}

func (p *BrushPanel) slider(y *int32, label string, value, lo, hi float32) float32 {
	r := p.renderer
	x := p.x + r.Theme.Padding
	w := float32(p.width - r.Theme.Padding*2 - 50)

	rl.DrawText(label, x, *y, r.Theme.FontSize, r.Theme.LabelColor)
	*y += r.Theme.LineHeight
	nv := gui.SliderBar(
		rl.Rectangle{X: float32(x), Y: float32(*y), Width: w, Height: 18},
		"", "",
		value, lo, hi,
	)
	rl.DrawText(fmt.Sprintf("%.1f", nv), x+int32(w)+8, *y+3, r.Theme.FontSize, r.Theme.ValueColor)
	*y += 28
	return nv
}
