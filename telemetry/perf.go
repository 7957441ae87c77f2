package telemetry

import (
	"log/slog"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/heatfield/heatmap"
)

// Phase is one stage of a heat field tick.
type Phase uint8

// Tick phases, in the order Simulation.Step runs them.
const (
	PhaseEmitters Phase = iota
	PhaseInput
	PhaseUpdate
	PhaseTelemetry
	numPhases
)

var phaseNames = [numPhases]string{"emitters", "input", "update", "telemetry"}

func (p Phase) String() string {
	if p < numPhases {
		return phaseNames[p]
	}
	return "unknown"
}

// TickSample is the cost and the grid work of one tick.
type TickSample struct {
	Duration time.Duration
	Phases   [numPhases]time.Duration
	Work     heatmap.UpdateStats
}

// PerfCollector keeps the most recent ticks in a ring and summarizes them.
type PerfCollector struct {
	ring   []TickSample
	next   int
	filled int

	cur        TickSample
	tickStart  time.Time
	phaseStart time.Time
	phase      Phase
	inPhase    bool

	lastFrame time.Time
	frame     time.Duration
}

// NewPerfCollector creates a collector averaging over size ticks.
func NewPerfCollector(size int) *PerfCollector {
	if size < 1 {
		size = 60
	}
	return &PerfCollector{ring: make([]TickSample, size)}
}

// StartTick begins timing a tick.
func (p *PerfCollector) StartTick() {
	p.cur = TickSample{}
	p.tickStart = time.Now()
	p.inPhase = false
}

// StartPhase closes the running phase, if any, and opens ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phase = ph
	p.phaseStart = now
	p.inPhase = ph < numPhases
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.inPhase {
		p.cur.Phases[p.phase] += now.Sub(p.phaseStart)
		p.inPhase = false
	}
}

// EndTick records the tick together with the work the field reported for it.
func (p *PerfCollector) EndTick(work heatmap.UpdateStats) {
	now := time.Now()
	p.closePhase(now)
	p.cur.Duration = now.Sub(p.tickStart)
	p.cur.Work = work

	p.ring[p.next] = p.cur
	p.next = (p.next + 1) % len(p.ring)
	if p.filled < len(p.ring) {
		p.filled++
	}
}

// RecordFrame marks a presented frame in windowed mode.
func (p *PerfCollector) RecordFrame() {
	now := time.Now()
	if !p.lastFrame.IsZero() {
		p.frame = now.Sub(p.lastFrame)
	}
	p.lastFrame = now
}

// PerfStats summarizes the ticks currently held by a collector.
type PerfStats struct {
	Ticks          int
	AvgTick        time.Duration
	MaxTick        time.Duration
	TicksPerSecond float64
	CellsPerSecond float64 // Grid cells walked by Update per second of tick time
	StampedPerTick float64 // Mean cells reached by the brush
	ActivePerTick  float64 // Mean cells left warm
	PhasePct       [numPhases]float64
	FPS            float64
}

// Stats summarizes the window.
func (p *PerfCollector) Stats() PerfStats {
	var s PerfStats
	if p.frame > 0 {
		s.FPS = float64(time.Second) / float64(p.frame)
	}
	if p.filled == 0 {
		return s
	}

	secs := make([]float64, p.filled)
	stamped := make([]float64, p.filled)
	active := make([]float64, p.filled)
	var visited float64
	var phases [numPhases]time.Duration
	for i, t := range p.ring[:p.filled] {
		secs[i] = t.Duration.Seconds()
		stamped[i] = float64(t.Work.Stamped)
		active[i] = float64(t.Work.Active)
		visited += float64(t.Work.Visited)
		for ph, d := range t.Phases {
			phases[ph] += d
		}
	}

	total := floats.Sum(secs)
	s.Ticks = p.filled
	s.AvgTick = time.Duration(stat.Mean(secs, nil) * float64(time.Second))
	s.MaxTick = time.Duration(floats.Max(secs) * float64(time.Second))
	s.StampedPerTick = stat.Mean(stamped, nil)
	s.ActivePerTick = stat.Mean(active, nil)
	if total > 0 {
		s.TicksPerSecond = float64(p.filled) / total
		s.CellsPerSecond = visited / total
		for ph, d := range phases {
			s.PhasePct[ph] = d.Seconds() / total * 100
		}
	}
	return s
}

// LogStats logs the summary using slog.
func (s PerfStats) LogStats() {
	slog.Info("perf", "perf", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("ticks", s.Ticks),
		slog.Int64("avg_tick_us", s.AvgTick.Microseconds()),
		slog.Int64("max_tick_us", s.MaxTick.Microseconds()),
		slog.Float64("ticks_per_sec", s.TicksPerSecond),
		slog.Float64("cells_per_sec", s.CellsPerSecond),
		slog.Float64("stamped_per_tick", s.StampedPerTick),
		slog.Float64("active_per_tick", s.ActivePerTick),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Float64("fps", s.FPS))
	}
	for ph, pct := range s.PhasePct {
		attrs = append(attrs, slog.Float64(Phase(ph).String()+"_pct", pct))
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is the perf.csv row.
type PerfStatsCSV struct {
	WindowEnd      int32   `csv:"window_end"`
	Ticks          int     `csv:"ticks"`
	AvgTickUS      int64   `csv:"avg_tick_us"`
	MaxTickUS      int64   `csv:"max_tick_us"`
	TicksPerSec    float64 `csv:"ticks_per_sec"`
	CellsPerSec    float64 `csv:"cells_per_sec"`
	StampedPerTick float64 `csv:"stamped_per_tick"`
	ActivePerTick  float64 `csv:"active_per_tick"`
	FPS            float64 `csv:"fps"`
	EmittersPct    float64 `csv:"emitters_pct"`
	InputPct       float64 `csv:"input_pct"`
	UpdatePct      float64 `csv:"update_pct"`
	TelemetryPct   float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:      windowEnd,
		Ticks:          s.Ticks,
		AvgTickUS:      s.AvgTick.Microseconds(),
		MaxTickUS:      s.MaxTick.Microseconds(),
		TicksPerSec:    s.TicksPerSecond,
		CellsPerSec:    s.CellsPerSecond,
		StampedPerTick: s.StampedPerTick,
		ActivePerTick:  s.ActivePerTick,
		FPS:            s.FPS,
		EmittersPct:    s.PhasePct[PhaseEmitters],
		InputPct:       s.PhasePct[PhaseInput],
		UpdatePct:      s.PhasePct[PhaseUpdate],
		TelemetryPct:   s.PhasePct[PhaseTelemetry],
	}
}
