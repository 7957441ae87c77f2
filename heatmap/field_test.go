package heatmap

import (
	"bytes"
	"errors"
	"log/slog"
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustField(t *testing.T, p Params) *Field {
	t.Helper()
	f, err := New(p)
	if err != nil {
		t.Fatalf("unexpected error creating field: %v", err)
	}
	return f
}

func TestNewStartsEmpty(t *testing.T) {
	f := mustField(t, Params{Width: 4, Height: 3, CellSpacing: 2, BrushRadius: 1, BrushIntensity: 5, MaxSaturation: 10})

	w, h := f.GridSize()
	if w != 4 || h != 3 {
		t.Errorf("expected grid size 4x3, got %dx%d", w, h)
	}
	for i, v := range f.Values() {
		if v != 0 {
			t.Fatalf("expected cell %d to start at 0, got %d", i, v)
		}
	}
	if pts := f.ActivePoints(); len(pts) != 0 {
		t.Errorf("expected no active points, got %d", len(pts))
	}
}

func TestNewRejectsInvalidParams(t *testing.T) {
	valid := Params{Width: 3, Height: 3, CellSpacing: 1, BrushRadius: 2, BrushIntensity: 10, MaxSaturation: 5}

	testCases := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"zero width", func(p *Params) { p.Width = 0 }},
		{"zero height", func(p *Params) { p.Height = 0 }},
		{"negative width", func(p *Params) { p.Width = -2 }},
		{"negative spacing", func(p *Params) { p.CellSpacing = -1 }},
		{"negative radius", func(p *Params) { p.BrushRadius = -0.5 }},
		{"negative intensity", func(p *Params) { p.BrushIntensity = -10 }},
		{"NaN spacing", func(p *Params) { p.CellSpacing = math.NaN() }},
		{"infinite radius", func(p *Params) { p.BrushRadius = math.Inf(1) }},
		{"NaN origin", func(p *Params) { p.XStart = math.NaN() }},
	}

	for _, tc := range testCases {
		p := valid
		tc.mutate(&p)
		f, err := New(p)
		if !errors.Is(err, ErrConfiguration) {
			t.Errorf("%s: expected ErrConfiguration, got %v", tc.name, err)
		}
		if f != nil {
			t.Errorf("%s: expected nil field on error", tc.name)
		}
	}
}

func TestUpdateEndToEnd(t *testing.T) {
	f := mustField(t, Params{Width: 3, Height: 3, CellSpacing: 1, BrushRadius: 2, BrushIntensity: 10, MaxSaturation: 5})

	f.Update(1, 1, 1, true)

	center := f.At(1, 1)
	if center != 5 {
		t.Fatalf("expected center saturated at 5, got %d", center)
	}
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			if v := f.At(col, row); v > center {
				t.Errorf("cell (%d,%d)=%d exceeds center %d", col, row, v, center)
			}
		}
	}

	before := f.Values()
	f.Update(0, 0, 0, false)
	after := f.Values()
	for i := range before {
		if before[i] > 0 && after[i] != before[i]-1 {
			t.Errorf("cell %d: expected %d after decay, got %d", i, before[i]-1, after[i])
		}
	}
}

func TestUpdateOutsideReachGetsNothing(t *testing.T) {
	f := mustField(t, Params{Width: 5, Height: 5, CellSpacing: 1, BrushRadius: 2, BrushIntensity: 10, MaxSaturation: 5})

	f.Update(2, 2, 1, true)

	// Distance >= radius * spacing is excluded (strict less-than)
	for _, c := range [][2]int{{0, 0}, {4, 4}, {0, 2}, {2, 0}, {4, 2}, {0, 4}} {
		if v := f.At(c[0], c[1]); v != 0 {
			t.Errorf("expected cell (%d,%d) outside brush to be 0, got %d", c[0], c[1], v)
		}
	}
	if v := f.At(1, 1); v != 5 {
		t.Errorf("expected diagonal neighbour at 5, got %d", v)
	}
}

func TestLastUpdate(t *testing.T) {
	f := mustField(t, Params{Width: 5, Height: 5, CellSpacing: 1, BrushRadius: 2, BrushIntensity: 10, MaxSaturation: 5})

	if got := f.LastUpdate(); got != (UpdateStats{}) {
		t.Errorf("expected zero stats before any update, got %+v", got)
	}

	// Centre, 4 edge neighbours and 4 diagonals fall inside reach 2
	f.Update(2, 2, 1, true)
	if got, want := f.LastUpdate(), (UpdateStats{Visited: 25, Stamped: 9, Active: 9}); got != want {
		t.Errorf("after stamp: expected %+v, got %+v", want, got)
	}

	f.Update(0, 0, 0, false)
	if got, want := f.LastUpdate(), (UpdateStats{Visited: 25, Stamped: 0, Active: 9}); got != want {
		t.Errorf("after decay: expected %+v, got %+v", want, got)
	}

	f.Reset()
	if got := f.LastUpdate().Active; got != 0 {
		t.Errorf("expected no active cells after reset, got %d", got)
	}
}

func TestUpdateFalloff(t *testing.T) {
	f := mustField(t, Params{Width: 9, Height: 9, CellSpacing: 1, BrushRadius: 4, BrushIntensity: 100, MaxSaturation: 1000})

	f.Update(4, 4, 1, true)

	// remap(d, 0, radius+spacing, intensity, 0)
	testCases := []struct {
		col, row int
		want     uint32
	}{
		{4, 4, 100},
		{4, 1, 40},
		{2, 2, 43},
		{4, 0, 0},
		{1, 1, 0},
	}
	for _, tc := range testCases {
		if got := f.At(tc.col, tc.row); got != tc.want {
			t.Errorf("cell (%d,%d): expected %d, got %d", tc.col, tc.row, tc.want, got)
		}
	}

	if f.At(4, 4) <= f.At(4, 1) {
		t.Errorf("expected center to receive more heat than the brush edge")
	}
}

func TestUpdateScalesWithHeat(t *testing.T) {
	f := mustField(t, Params{Width: 9, Height: 9, CellSpacing: 1, BrushRadius: 2, BrushIntensity: 10, MaxSaturation: 1000})

	f.Update(4, 4, 2, true)

	if got := f.At(4, 4); got != 20 {
		t.Errorf("expected center 20 with doubled heat, got %d", got)
	}
	if got := f.At(4, 1); got != 8 {
		t.Errorf("expected cell 3 away to get 8, got %d", got)
	}
}

func TestUpdateZeroHeatOnlyDecays(t *testing.T) {
	f := mustField(t, Params{Width: 3, Height: 3, CellSpacing: 1, BrushRadius: 2, BrushIntensity: 10, MaxSaturation: 50})
	f.Update(1, 1, 1, true)
	before := f.At(1, 1)

	f.Update(1, 1, 0, true)
	if got := f.At(1, 1); got != before-1 {
		t.Errorf("expected zero heat to only decay, got %d from %d", got, before)
	}

	f.Update(1, 1, -3, true)
	if got := f.At(1, 1); got != before-2 {
		t.Errorf("expected negative heat to only decay, got %d from %d", got, before)
	}
}

func TestUpdateDecayBeforeInjection(t *testing.T) {
	f := mustField(t, Params{Width: 1, Height: 1, CellSpacing: 1, BrushRadius: 1, BrushIntensity: 3, MaxSaturation: 100})

	f.Update(0, 0, 1, true) // 0 -> 3
	f.Update(0, 0, 1, true) // 3 -> 2 -> 5
	if got := f.At(0, 0); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
}

func TestUpdateSaturationHoldsAtCap(t *testing.T) {
	f := mustField(t, Params{Width: 3, Height: 3, CellSpacing: 1, BrushRadius: 2, BrushIntensity: 10, MaxSaturation: 5})

	for i := 0; i < 20; i++ {
		f.Update(1, 1, 1, true)
		if got := f.At(1, 1); got != 5 {
			t.Fatalf("iteration %d: expected center held at cap 5, got %d", i, got)
		}
	}
}

func TestUpdateOrigin(t *testing.T) {
	f := mustField(t, Params{Width: 4, Height: 4, CellSpacing: 10, BrushRadius: 1, BrushIntensity: 7, MaxSaturation: 100, XStart: 100, YStart: 200})

	f.Update(100, 200, 1, true)

	if got := f.At(0, 0); got != 7 {
		t.Errorf("expected origin cell to get 7, got %d", got)
	}
	if got := f.At(1, 0); got != 0 {
		t.Errorf("expected neighbour one spacing away to get 0, got %d", got)
	}
}

func TestDecayReachesZero(t *testing.T) {
	f := mustField(t, Params{Width: 6, Height: 6, CellSpacing: 1, BrushRadius: 3, BrushIntensity: 12, MaxSaturation: 40})
	f.Update(2, 3, 1, true)
	f.Update(3, 2, 1, true)

	var peak uint32
	for _, v := range f.Values() {
		peak = max(peak, v)
	}
	if peak == 0 {
		t.Fatal("expected some heat before decay")
	}

	for i := uint32(0); i < peak; i++ {
		prev := f.Values()
		f.Update(0, 0, 1, false)
		for j, v := range f.Values() {
			if prev[j] > 0 && v != prev[j]-1 {
				t.Fatalf("tick %d cell %d: expected %d, got %d", i, j, prev[j]-1, v)
			}
			if prev[j] == 0 && v != 0 {
				t.Fatalf("tick %d cell %d: expected 0 to hold, got %d", i, j, v)
			}
		}
	}

	if pts := f.ActivePoints(); len(pts) != 0 {
		t.Errorf("expected all-zero grid after %d ticks, got %d active", peak, len(pts))
	}
}

func TestUpdateKeepsBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	f := mustField(t, Params{Width: 16, Height: 12, CellSpacing: 3, BrushRadius: 5, BrushIntensity: 40, MaxSaturation: 90, XStart: -5, YStart: 8})

	for i := 0; i < 500; i++ {
		x := rng.Float64()*70 - 10
		y := rng.Float64()*50 - 5
		heat := rng.Float64()*4 - 1
		f.Update(x, y, heat, rng.Intn(4) != 0)
	}
	f.Update(math.NaN(), 0, 1, true)
	f.Update(0, 0, math.Inf(1), true)

	for i, v := range f.Values() {
		if v > 90 {
			t.Fatalf("cell %d exceeds saturation cap: %d", i, v)
		}
	}
}

func TestForEachActiveCellRowMajor(t *testing.T) {
	f := mustField(t, Params{Width: 4, Height: 3, CellSpacing: 1, BrushRadius: 1, BrushIntensity: 9, MaxSaturation: 100})

	f.Update(3, 0, 1, true)
	f.Update(0, 2, 1, true)

	want := []HeatPoint{
		{Column: 3, Row: 0, Value: 8},
		{Column: 0, Row: 2, Value: 9},
	}
	if diff := cmp.Diff(want, f.ActivePoints()); diff != "" {
		t.Errorf("ActivePoints mismatch (-want +got):\n%s", diff)
	}

	var visited []HeatPoint
	f.ForEachActiveCell(CellVisitorFunc(func(p HeatPoint) {
		visited = append(visited, p)
	}))
	if diff := cmp.Diff(want, visited); diff != "" {
		t.Errorf("visitor mismatch (-want +got):\n%s", diff)
	}
}

func TestCellAt(t *testing.T) {
	f := mustField(t, Params{Width: 5, Height: 5, CellSpacing: 2, BrushRadius: 1, BrushIntensity: 1, MaxSaturation: 1, XStart: 10, YStart: 10})

	testCases := []struct {
		x, y     float64
		col, row int
		ok       bool
	}{
		{10, 10, 0, 0, true},
		{14.9, 10, 2, 0, true},
		{18, 18, 4, 4, true},
		{19.1, 10, 0, 0, false},
		{9.1, 10, 0, 0, true},
		{18.9, 18.9, 4, 4, true},
		{0, 0, 0, 0, false},
		{1e300, 10, 0, 0, false},
		{-1e300, 10, 0, 0, false},
		{10, 1e300, 0, 0, false},
		{math.MaxFloat64, -math.MaxFloat64, 0, 0, false},
		{math.Inf(1), 10, 0, 0, false},
		{math.NaN(), 10, 0, 0, false},
	}
	for _, tc := range testCases {
		col, row, ok := f.CellAt(tc.x, tc.y)
		if ok != tc.ok || col != tc.col || row != tc.row {
			t.Errorf("CellAt(%v,%v): expected (%d,%d,%v), got (%d,%d,%v)", tc.x, tc.y, tc.col, tc.row, tc.ok, col, row, ok)
		}
	}
}

func TestValuesIsCopy(t *testing.T) {
	f := mustField(t, Params{Width: 2, Height: 2, CellSpacing: 1, BrushRadius: 1, BrushIntensity: 4, MaxSaturation: 10})
	f.Update(0, 0, 1, true)

	vals := f.Values()
	vals[0] = 99
	if f.At(0, 0) != 4 {
		t.Errorf("expected field unaffected by mutation of Values copy, got %d", f.At(0, 0))
	}

	f.Reset()
	if f.At(0, 0) != 0 {
		t.Errorf("expected Reset to clear cells, got %d", f.At(0, 0))
	}
}

func TestWithLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	if _, err := New(Params{Width: 2, Height: 2}, WithLogger(logger)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), "created heat field") {
		t.Errorf("expected creation log, got %q", buf.String())
	}
}

func TestSetBrush(t *testing.T) {
	f := mustField(t, Params{Width: 9, Height: 9, CellSpacing: 1, BrushRadius: 2, BrushIntensity: 10, MaxSaturation: 1000})
	f.Update(4, 4, 1, true)

	if err := f.SetBrush(4, 100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.At(4, 4) != 10 {
		t.Errorf("expected existing heat kept, got %d", f.At(4, 4))
	}

	f.Update(4, 4, 1, true)
	if got := f.At(4, 4); got != 109 {
		t.Errorf("expected 10-1+100=109 with new brush, got %d", got)
	}

	if err := f.SetBrush(-1, 5); !errors.Is(err, ErrConfiguration) {
		t.Errorf("expected ErrConfiguration for negative radius, got %v", err)
	}
	if p := f.Params(); p.BrushRadius != 4 || p.BrushIntensity != 100 {
		t.Errorf("expected rejected brush to leave params unchanged, got %+v", p)
	}
}
