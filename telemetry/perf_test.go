package telemetry

import (
	"testing"
	"time"

	"github.com/pthm-cable/heatfield/heatmap"
)

func runTick(pc *PerfCollector, work heatmap.UpdateStats, update time.Duration) {
	pc.StartTick()
	pc.StartPhase(PhaseInput)
	pc.StartPhase(PhaseUpdate)
	time.Sleep(update)
	pc.StartPhase(PhaseTelemetry)
	pc.EndTick(work)
}

func TestPhaseString(t *testing.T) {
	tests := []struct {
		phase Phase
		want  string
	}{
		{PhaseEmitters, "emitters"},
		{PhaseInput, "input"},
		{PhaseUpdate, "update"},
		{PhaseTelemetry, "telemetry"},
		{numPhases, "unknown"},
	}
	for _, tt := range tests {
		if got := tt.phase.String(); got != tt.want {
			t.Errorf("Phase(%d).String() = %q, want %q", tt.phase, got, tt.want)
		}
	}
}

func TestPerfCollectorEmpty(t *testing.T) {
	s := NewPerfCollector(10).Stats()
	if s.Ticks != 0 || s.AvgTick != 0 || s.CellsPerSecond != 0 {
		t.Errorf("expected zero stats from empty collector, got %+v", s)
	}
}

func TestPerfCollectorHeatWork(t *testing.T) {
	pc := NewPerfCollector(10)

	runTick(pc, heatmap.UpdateStats{Visited: 100, Stamped: 9, Active: 9}, 200*time.Microsecond)
	runTick(pc, heatmap.UpdateStats{Visited: 100, Stamped: 0, Active: 7}, 200*time.Microsecond)

	s := pc.Stats()
	if s.Ticks != 2 {
		t.Fatalf("expected 2 ticks, got %d", s.Ticks)
	}
	if s.StampedPerTick != 4.5 {
		t.Errorf("expected 4.5 stamped cells per tick, got %v", s.StampedPerTick)
	}
	if s.ActivePerTick != 8 {
		t.Errorf("expected 8 active cells per tick, got %v", s.ActivePerTick)
	}
	// 100 cells per tick over ticks of at least 200us: at most 500k cells/s
	if s.CellsPerSecond <= 0 || s.CellsPerSecond > 500_000 {
		t.Errorf("expected cells/s in (0, 500000], got %v", s.CellsPerSecond)
	}
	if want := s.TicksPerSecond * 100; s.CellsPerSecond < want*0.999 || s.CellsPerSecond > want*1.001 {
		t.Errorf("expected cells/s = ticks/s * 100 = %v, got %v", want, s.CellsPerSecond)
	}
	if s.MaxTick < s.AvgTick || s.AvgTick < 200*time.Microsecond {
		t.Errorf("expected avg >= 200us and max >= avg, got avg %v max %v", s.AvgTick, s.MaxTick)
	}
}

func TestPerfCollectorPhaseShare(t *testing.T) {
	pc := NewPerfCollector(10)
	for i := 0; i < 3; i++ {
		runTick(pc, heatmap.UpdateStats{Visited: 4}, time.Millisecond)
	}

	s := pc.Stats()
	update := s.PhasePct[PhaseUpdate]
	if update <= s.PhasePct[PhaseInput] || update <= s.PhasePct[PhaseTelemetry] {
		t.Errorf("expected update to dominate, got %v", s.PhasePct)
	}
	if s.PhasePct[PhaseEmitters] != 0 {
		t.Errorf("expected no emitter time, got %v", s.PhasePct[PhaseEmitters])
	}
	var sum float64
	for _, pct := range s.PhasePct {
		sum += pct
	}
	if sum > 100.0001 {
		t.Errorf("expected phase shares to sum to at most 100, got %v", sum)
	}
}

func TestPerfCollectorWindowDropsOldTicks(t *testing.T) {
	pc := NewPerfCollector(2)
	runTick(pc, heatmap.UpdateStats{Active: 100}, 0)
	runTick(pc, heatmap.UpdateStats{Active: 2}, 0)
	runTick(pc, heatmap.UpdateStats{Active: 4}, 0)

	s := pc.Stats()
	if s.Ticks != 2 {
		t.Errorf("expected window of 2 ticks, got %d", s.Ticks)
	}
	if s.ActivePerTick != 3 {
		t.Errorf("expected oldest tick evicted (mean 3), got %v", s.ActivePerTick)
	}
}

func TestPerfCollectorFrameRate(t *testing.T) {
	pc := NewPerfCollector(10)
	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	fps := pc.Stats().FPS
	if fps <= 0 || fps > 65 {
		t.Errorf("expected FPS in (0, 65] for 16ms frames, got %v", fps)
	}
}

func TestPerfStatsToCSV(t *testing.T) {
	s := PerfStats{
		Ticks:          3,
		AvgTick:        1500 * time.Microsecond,
		CellsPerSecond: 42,
		PhasePct:       [numPhases]float64{10, 20, 60, 10},
	}
	row := s.ToCSV(90)
	if row.WindowEnd != 90 || row.Ticks != 3 || row.AvgTickUS != 1500 || row.CellsPerSec != 42 {
		t.Errorf("unexpected row %+v", row)
	}
	if row.EmittersPct != 10 || row.InputPct != 20 || row.UpdatePct != 60 || row.TelemetryPct != 10 {
		t.Errorf("phase columns out of order: %+v", row)
	}
}
