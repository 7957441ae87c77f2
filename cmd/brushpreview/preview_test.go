package main

import (
	"strings"
	"testing"
)

func TestStampPreview(t *testing.T) {
	p := defaultPreviewParams()
	f, err := stampPreview(p)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Intensity 10 scaled by heat 2
	if got := f.At(previewGrid/2, previewGrid/2); got != 20 {
		t.Errorf("expected centre 20, got %d", got)
	}

	p.Ticks = 5
	f, err = stampPreview(p)
	if err != nil {
		t.Fatal(err)
	}
	if got := f.At(previewGrid/2, previewGrid/2); got != 15 {
		t.Errorf("expected centre 15 after 5 ticks, got %d", got)
	}
}

func TestStampPreviewZeroHeat(t *testing.T) {
	p := defaultPreviewParams()
	p.Heat = 0
	f, err := stampPreview(p)
	if err != nil {
		t.Fatal(err)
	}
	if n := len(f.ActivePoints()); n != 0 {
		t.Errorf("expected no active cells, got %d", n)
	}
}

func TestBrushYAML(t *testing.T) {
	y := brushYAML(defaultPreviewParams())
	for _, want := range []string{"radius: 9.0", "intensity: 10", "pointer_heat: 2.00", "max_saturation: 255"} {
		if !strings.Contains(y, want) {
			t.Errorf("expected %q in:\n%s", want, y)
		}
	}
}
