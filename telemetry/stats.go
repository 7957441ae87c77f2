// Package telemetry collects heat field statistics and timing, and writes
// them out as CSV.
package telemetry

import (
	"log/slog"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/heatfield/heatmap"
)

// FieldReader is the read-only view of a heat field telemetry needs.
type FieldReader interface {
	ActivePoints() []heatmap.HeatPoint
	GridSize() (int, int)
	MaxSaturation() uint32
}

// FieldStats summarizes the active cells of a field at one tick.
type FieldStats struct {
	Tick      int32   `csv:"tick"`
	Active    int     `csv:"active"`    // Cells with value > 0
	Saturated int     `csv:"saturated"` // Cells at the cap
	Coverage  float64 `csv:"coverage"`  // Active / total cells
	Total     float64 `csv:"total_heat"`
	Mean      float64 `csv:"mean"`
	StdDev    float64 `csv:"std_dev"`
	P50       float64 `csv:"p50"`
	P90       float64 `csv:"p90"`
	Max       float64 `csv:"max"`

	// Filled in by the host loop
	Pending      int     `csv:"pending"`       // Queued heat inputs
	Emitters     int     `csv:"emitters"`      // Live emitters
	EmitterSpeed float64 `csv:"emitter_speed"` // Mean emitter speed, world units per tick
}

// ComputeFieldStats calculates statistics over the active cells of f.
func ComputeFieldStats(tick int32, f FieldReader) FieldStats {
	points := f.ActivePoints()
	w, h := f.GridSize()
	ceiling := f.MaxSaturation()

	s := FieldStats{Tick: tick, Active: len(points)}
	if len(points) == 0 {
		return s
	}

	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = float64(p.Value)
		if p.Value >= ceiling {
			s.Saturated++
		}
	}
	sort.Float64s(values)

	s.Coverage = float64(len(points)) / float64(w*h)
	s.Total = floats.Sum(values)
	s.Mean = stat.Mean(values, nil)
	if len(values) > 1 {
		s.StdDev = stat.StdDev(values, nil)
	}
	s.P50 = stat.Quantile(0.5, stat.Empirical, values, nil)
	s.P90 = stat.Quantile(0.9, stat.Empirical, values, nil)
	s.Max = floats.Max(values)
	return s
}

// LogValue implements slog.LogValuer for structured logging.
func (s FieldStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("tick", int(s.Tick)),
		slog.Int("active", s.Active),
		slog.Int("saturated", s.Saturated),
		slog.Float64("coverage", s.Coverage),
		slog.Float64("total_heat", s.Total),
		slog.Float64("mean", s.Mean),
		slog.Float64("std_dev", s.StdDev),
		slog.Float64("p50", s.P50),
		slog.Float64("p90", s.P90),
		slog.Float64("max", s.Max),
		slog.Int("pending", s.Pending),
		slog.Int("emitters", s.Emitters),
		slog.Float64("emitter_speed", s.EmitterSpeed),
	)
}

// LogStats logs the field stats using slog.
func (s FieldStats) LogStats() {
	slog.Info("stats",
		"tick", s.Tick,
		"active", s.Active,
		"saturated", s.Saturated,
		"total_heat", s.Total,
		"mean", s.Mean,
		"max", s.Max,
		"pending", s.Pending,
		"emitters", s.Emitters,
	)
}
