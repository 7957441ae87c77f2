// Package heatmap implements a decaying 2-D heat grid that accumulates
// circular brush strokes and exposes its active cells for drawing.
package heatmap

import (
	"fmt"
	"log/slog"
	"math"
)

// Params configures a Field. All world-space values share one unit.
type Params struct {
	Width, Height int // Grid size in cells

	CellSpacing    float64 // World-space distance between neighbouring cells
	BrushRadius    float64 // Brush radius in cells, scaled by heat
	BrushIntensity float64 // Heat added at the brush centre, scaled by heat
	MaxSaturation  uint32  // Inclusive cap on any cell value

	XStart, YStart float64 // World position of cell (0, 0)
}

// Validate reports whether p can build a field.
func (p Params) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: grid size %dx%d", ErrConfiguration, p.Width, p.Height)
	}
	nonNegative := []struct {
		name string
		v    float64
	}{
		{"cell spacing", p.CellSpacing},
		{"brush radius", p.BrushRadius},
		{"brush intensity", p.BrushIntensity},
	}
	for _, f := range nonNegative {
		if !isFinite(f.v) || f.v < 0 {
			return fmt.Errorf("%w: %s %g", ErrConfiguration, f.name, f.v)
		}
	}
	if !isFinite(p.XStart) || !isFinite(p.YStart) {
		return fmt.Errorf("%w: origin (%g, %g)", ErrConfiguration, p.XStart, p.YStart)
	}
	return nil
}

// Option customizes a Field at construction.
type Option func(*Field)

// WithLogger sets the logger used by the field. Nil keeps slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(f *Field) {
		if l != nil {
			f.log = l
		}
	}
}

// UpdateStats describes the work done by the most recent Update.
type UpdateStats struct {
	Visited int // Cells walked, always Width*Height
	Stamped int // Cells that received a brush contribution
	Active  int // Cells left with a value > 0
}

// Field is a row-major grid of saturation values in [0, MaxSaturation].
// It is not safe for concurrent use; Update must finish before any read.
type Field struct {
	p     Params
	cells []uint32
	log   *slog.Logger
	last  UpdateStats
}

// New creates a field with every cell at zero.
func New(p Params, opts ...Option) (*Field, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	f := &Field{
		p:     p,
		cells: make([]uint32, p.Width*p.Height),
		log:   slog.Default(),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.log.Debug("created heat field",
		"width", p.Width,
		"height", p.Height,
		"cell_spacing", p.CellSpacing,
		"max_saturation", p.MaxSaturation,
	)
	return f, nil
}

// Update runs one tick: every positive cell decays by one, then, when
// canApply is set, a brush of size and strength scaled by heat is stamped
// at world position (x, y). Decay is applied to a cell before its injection.
func (f *Field) Update(x, y, heat float64, canApply bool) {
	spacing := f.p.CellSpacing
	radius := f.p.BrushRadius * heat
	intensity := f.p.BrushIntensity * heat
	reach := radius * spacing
	ceiling := float64(f.p.MaxSaturation)

	// reach <= 0 or NaN means no cell can be strictly inside the brush
	inject := canApply && reach > 0 && !math.IsInf(reach, 0)
	stats := UpdateStats{Visited: len(f.cells)}

	for row := 0; row < f.p.Height; row++ {
		wy := float64(row)*spacing + f.p.YStart
		base := row * f.p.Width
		for col := 0; col < f.p.Width; col++ {
			v := f.cells[base+col]
			if v > 0 {
				v--
			}

			if inject {
				wx := float64(col)*spacing + f.p.XStart
				d := math.Hypot(wx-x, wy-y)
				if d < reach {
					c, err := Remap(d, 0, radius+spacing, intensity, 0, true)
					if err == nil && !math.IsNaN(c) {
						v = uint32(Constrain(float64(v)+math.Round(c), 0, ceiling))
						stats.Stamped++
					}
				}
			}

			f.cells[base+col] = v
			if v > 0 {
				stats.Active++
			}
		}
	}
	f.last = stats
}

// LastUpdate returns the work counters of the most recent Update.
func (f *Field) LastUpdate() UpdateStats {
	return f.last
}

// ForEachActiveCell calls v for every cell with a non-zero value, in
// row-major order.
func (f *Field) ForEachActiveCell(v CellVisitor) {
	for row := 0; row < f.p.Height; row++ {
		base := row * f.p.Width
		for col := 0; col < f.p.Width; col++ {
			if val := f.cells[base+col]; val > 0 {
				v.VisitCell(HeatPoint{Column: col, Row: row, Value: val})
			}
		}
	}
}

// ActivePoints returns the active cells in row-major order.
func (f *Field) ActivePoints() []HeatPoint {
	var points []HeatPoint
	f.ForEachActiveCell(CellVisitorFunc(func(p HeatPoint) {
		points = append(points, p)
	}))
	return points
}

// At returns the value at (col, row), or 0 outside the grid.
func (f *Field) At(col, row int) uint32 {
	if col < 0 || col >= f.p.Width || row < 0 || row >= f.p.Height {
		return 0
	}
	return f.cells[row*f.p.Width+col]
}

// CellPosition returns the world position of cell (col, row).
func (f *Field) CellPosition(col, row int) (x, y float64) {
	return float64(col)*f.p.CellSpacing + f.p.XStart, float64(row)*f.p.CellSpacing + f.p.YStart
}

// CellAt maps a world position to the nearest cell. ok is false when the
// position falls outside the grid.
func (f *Field) CellAt(x, y float64) (col, row int, ok bool) {
	if f.p.CellSpacing <= 0 || !isFinite(x) || !isFinite(y) {
		return 0, 0, false
	}
	fc := (x - f.p.XStart) / f.p.CellSpacing
	fr := (y - f.p.YStart) / f.p.CellSpacing
	// Bound in float space so the int conversion never sees an out-of-range value
	if !(fc > -0.5 && fc < float64(f.p.Width)-0.5 && fr > -0.5 && fr < float64(f.p.Height)-0.5) {
		return 0, 0, false
	}
	return int(math.Round(fc)), int(math.Round(fr)), true
}

// Values returns a copy of the backing grid in row-major order.
func (f *Field) Values() []uint32 {
	out := make([]uint32, len(f.cells))
	copy(out, f.cells)
	return out
}

// Reset zeroes every cell.
func (f *Field) Reset() {
	clear(f.cells)
	f.last.Active = 0
}

// GridSize returns the grid dimensions in cells.
func (f *Field) GridSize() (int, int) {
	return f.p.Width, f.p.Height
}

// Params returns the parameters the field was built with.
func (f *Field) Params() Params {
	return f.p
}

// SetBrush replaces the brush radius and intensity used by later updates.
// Cell values are kept.
func (f *Field) SetBrush(radius, intensity float64) error {
	p := f.p
	p.BrushRadius = radius
	p.BrushIntensity = intensity
	if err := p.Validate(); err != nil {
		return err
	}
	f.p = p
	return nil
}

// MaxSaturation returns the cell value cap.
func (f *Field) MaxSaturation() uint32 {
	return f.p.MaxSaturation
}

// WorldBounds returns the world-space rectangle spanned by the cell centres.
func (f *Field) WorldBounds() (minX, minY, maxX, maxY float64) {
	maxX, maxY = f.CellPosition(f.p.Width-1, f.p.Height-1)
	return f.p.XStart, f.p.YStart, maxX, maxY
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
