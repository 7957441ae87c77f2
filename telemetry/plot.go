package telemetry

import (
	"fmt"

	"gonum.org/v1/plot"
	plotpalette "gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/pthm-cable/heatfield/heatmap"
)

// plotColors is the number of steps in the heat map colour ramp.
const plotColors = 32

// fieldGrid adapts a snapshot of a field to plotter.GridXYZ.
type fieldGrid struct {
	values []uint32
	width  int
	height int
	params heatmap.Params
}

func newFieldGrid(f *heatmap.Field) fieldGrid {
	w, h := f.GridSize()
	return fieldGrid{values: f.Values(), width: w, height: h, params: f.Params()}
}

func (g fieldGrid) Dims() (c, r int) { return g.width, g.height }

func (g fieldGrid) Z(c, r int) float64 { return float64(g.values[r*g.width+c]) }

func (g fieldGrid) X(c int) float64 {
	return float64(c)*g.params.CellSpacing + g.params.XStart
}

func (g fieldGrid) Y(r int) float64 {
	return float64(r)*g.params.CellSpacing + g.params.YStart
}

// PlotField renders the whole field as a heat map scaled to [0, MaxSaturation].
// Row 0 is drawn at the top, matching screen orientation.
func PlotField(f *heatmap.Field, title string) *plot.Plot {
	grid := newFieldGrid(f)

	hm := plotter.NewHeatMap(grid, plotpalette.Heat(plotColors, 1))
	hm.Min = 0
	hm.Max = float64(f.MaxSaturation())
	if hm.Max <= hm.Min {
		hm.Max = hm.Min + 1
	}

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"
	p.Y.Scale = plot.InvertedScale{Normalizer: p.Y.Scale}
	p.Add(hm)
	return p
}

// SaveFieldPNG writes PlotField to path as a PNG image.
func SaveFieldPNG(f *heatmap.Field, title, path string) error {
	p := PlotField(f, title)
	if err := p.Save(6*vg.Inch, 6*vg.Inch, path); err != nil {
		return fmt.Errorf("saving heat map plot: %w", err)
	}
	return nil
}
