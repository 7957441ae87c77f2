// Package renderer draws the heat field with raylib.
package renderer

import (
	"image/color"
	"strconv"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/heatfield/config"
	"github.com/pthm-cable/heatfield/heatmap"
	"github.com/pthm-cable/heatfield/palette"
)

// HeatRenderer paints the active cells of a field. It is a heatmap.CellVisitor.
type HeatRenderer struct {
	field    *heatmap.Field
	shape    string
	cellSize float32
	color    palette.Func
	maxSat   uint32
}

// NewHeatRenderer creates a renderer for field.
func NewHeatRenderer(field *heatmap.Field, shape string, cellSize float32, color palette.Func) *HeatRenderer {
	return &HeatRenderer{
		field:    field,
		shape:    shape,
		cellSize: cellSize,
		color:    color,
		maxSat:   field.MaxSaturation(),
	}
}

// SetShape changes how cells are drawn.
func (r *HeatRenderer) SetShape(shape string) {
	r.shape = shape
}

// Shape returns the current cell shape.
func (r *HeatRenderer) Shape() string {
	return r.shape
}

// SetPalette changes the cell colouring.
func (r *HeatRenderer) SetPalette(color palette.Func) {
	r.color = color
}

// Draw renders every active cell. Call between BeginDrawing and EndDrawing.
func (r *HeatRenderer) Draw() {
	r.field.ForEachActiveCell(r)
}

// VisitCell draws one cell centred on its world position.
func (r *HeatRenderer) VisitCell(p heatmap.HeatPoint) {
	wx, wy := r.field.CellPosition(p.Column, p.Row)
	x, y := float32(wx), float32(wy)
	half := r.cellSize / 2
	c := r.color(p.Value, r.maxSat)

	switch r.shape {
	case config.ShapeRounded:
		rec := rl.Rectangle{X: x - half, Y: y - half, Width: r.cellSize, Height: r.cellSize}
		rl.DrawRectangleRounded(rec, 0.5, 4, c)
	case config.ShapeEllipse:
		rl.DrawEllipse(int32(x), int32(y), half, half, c)
	case config.ShapeNumbers:
		drawValue(p.Value, x, y, r.cellSize, c)
	default:
		rl.DrawRectangleV(rl.Vector2{X: x - half, Y: y - half}, rl.Vector2{X: r.cellSize, Y: r.cellSize}, c)
	}
}

func drawValue(v uint32, x, y, size float32, c color.RGBA) {
	text := strconv.FormatUint(uint64(v), 10)
	fontSize := int32(size)
	if fontSize < 8 {
		fontSize = 8
	}
	c.A = 255
	w := rl.MeasureText(text, fontSize)
	rl.DrawText(text, int32(x)-w/2, int32(y)-fontSize/2, fontSize, c)
}
