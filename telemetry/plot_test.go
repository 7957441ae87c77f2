package telemetry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pthm-cable/heatfield/heatmap"
)

func TestFieldGrid(t *testing.T) {
	f, err := heatmap.New(heatmap.Params{
		Width: 4, Height: 3,
		CellSpacing: 2, BrushRadius: 1, BrushIntensity: 7, MaxSaturation: 50,
		XStart: 10, YStart: 20,
	})
	if err != nil {
		t.Fatal(err)
	}
	f.Update(12, 24, 1, true) // cell (1, 2)

	g := newFieldGrid(f)
	if c, r := g.Dims(); c != 4 || r != 3 {
		t.Fatalf("expected 4x3 dims, got %dx%d", c, r)
	}
	if z := g.Z(1, 2); z != 7 {
		t.Errorf("expected Z(1,2)=7, got %g", z)
	}
	if z := g.Z(0, 0); z != 0 {
		t.Errorf("expected Z(0,0)=0, got %g", z)
	}
	if x := g.X(3); x != 16 {
		t.Errorf("expected X(3)=16, got %g", x)
	}
	if y := g.Y(2); y != 24 {
		t.Errorf("expected Y(2)=24, got %g", y)
	}
}

func TestSaveFieldPNG(t *testing.T) {
	f, err := heatmap.New(heatmap.Params{
		Width: 8, Height: 8,
		CellSpacing: 1, BrushRadius: 3, BrushIntensity: 20, MaxSaturation: 255,
	})
	if err != nil {
		t.Fatal(err)
	}
	f.Update(4, 4, 1, true)

	path := filepath.Join(t.TempDir(), "field.png")
	if err := SaveFieldPNG(f, "test", path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("expected non-empty image")
	}
}

func TestSaveFieldPNGColdField(t *testing.T) {
	// An all-zero field must still render
	f, err := heatmap.New(heatmap.Params{Width: 2, Height: 2, CellSpacing: 1, MaxSaturation: 10})
	if err != nil {
		t.Fatal(err)
	}
	if err := SaveFieldPNG(f, "cold", filepath.Join(t.TempDir(), "cold.png")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
