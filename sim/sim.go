// Package sim runs the heat field tick loop without any graphics, so every
// host (window, terminal, headless) shares the same stepping logic.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/heatfield/components"
	"github.com/pthm-cable/heatfield/config"
	"github.com/pthm-cable/heatfield/heatmap"
	"github.com/pthm-cable/heatfield/systems"
	"github.com/pthm-cable/heatfield/telemetry"
)

// Options configures a Simulation beyond the loaded config.
type Options struct {
	Seed          int64
	LogStats      bool
	OutputDir     string
	SnapshotEvery int                 // Ticks between snapshots (0 = off)
	Points        []systems.HeatInput // Initial queue contents
	Logger        *slog.Logger
}

// Simulation owns the field, its input queue, the emitter world and telemetry.
type Simulation struct {
	id    uuid.UUID
	cfg   *config.Config
	opts  Options
	log   *slog.Logger
	rng   *rand.Rand
	field *heatmap.Field
	queue *systems.HeatQueue

	world    *ecs.World
	emitters *systems.EmitterSystem

	perf   *telemetry.PerfCollector
	output *telemetry.OutputManager

	tick           int32
	pointerHeat    float64
	emittersPaused bool
	lastStats      telemetry.FieldStats
}

// New builds a simulation from cfg.
func New(cfg *config.Config, opts Options) (*Simulation, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	id := uuid.New()
	logger = logger.With("run_id", id.String())

	field, err := heatmap.New(cfg.FieldParams(), heatmap.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("creating heat field: %w", err)
	}

	output, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	if err := output.WriteConfig(cfg); err != nil {
		output.Close()
		return nil, err
	}

	s := &Simulation{
		id:          id,
		cfg:         cfg,
		opts:        opts,
		log:         logger,
		rng:         rand.New(rand.NewSource(opts.Seed)),
		field:       field,
		queue:       systems.NewHeatQueue(cfg.Mode.Static, opts.Points),
		world:       ecs.NewWorld(),
		perf:        telemetry.NewPerfCollector(cfg.Telemetry.PerfWindow),
		output:      output,
		pointerHeat: cfg.Brush.PointerHeat,
	}

	minX, minY, maxX, maxY := field.WorldBounds()
	s.emitters = systems.NewEmitterSystem(s.world, components.Bounds{
		MinX: float32(minX), MinY: float32(minY),
		MaxX: float32(maxX), MaxY: float32(maxY),
	})
	// Emitters would keep a static replay from ever draining
	if !cfg.Mode.Static && cfg.Emitters.Count > 0 {
		s.emitters.Spawn(s.rng, cfg.Emitters.Count, float32(cfg.Emitters.Speed), float32(cfg.Emitters.Heat))
	}

	logger.Info("simulation ready",
		"grid_width", cfg.Grid.Width,
		"grid_height", cfg.Grid.Height,
		"static", cfg.Mode.Static,
		"points", len(opts.Points),
		"emitters", cfg.Emitters.Count,
	)
	return s, nil
}

// Step runs one tick: emitters move and queue heat, the next queued input is
// applied to the field, and telemetry is flushed at window boundaries.
func (s *Simulation) Step() {
	s.perf.StartTick()

	s.perf.StartPhase(telemetry.PhaseEmitters)
	s.emitters.Update()
	s.emitters.Emit(s.queue)

	s.perf.StartPhase(telemetry.PhaseInput)
	in, ok := s.queue.Next()

	s.perf.StartPhase(telemetry.PhaseUpdate)
	s.field.Update(in.X, in.Y, in.Heat, ok)
	s.tick++

	s.perf.StartPhase(telemetry.PhaseTelemetry)
	if s.tick%int32(s.cfg.Telemetry.StatsWindow) == 0 {
		s.flushTelemetry()
	}
	if s.opts.SnapshotEvery > 0 && s.tick%int32(s.opts.SnapshotEvery) == 0 {
		s.writeSnapshot()
	}

	s.perf.EndTick(s.field.LastUpdate())
}

// flushTelemetry computes field stats and hands them to the log and CSV output.
func (s *Simulation) flushTelemetry() {
	stats := telemetry.ComputeFieldStats(s.tick, s.field)
	stats.Pending = s.queue.Len()
	stats.Emitters = s.emitters.Count()
	stats.EmitterSpeed = float64(s.emitters.MeanSpeed())
	s.lastStats = stats
	perfStats := s.perf.Stats()

	if s.opts.LogStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := s.output.WriteStats(stats); err != nil {
		s.log.Error("failed to write stats", "error", err)
	}
	if err := s.output.WritePerf(perfStats, s.tick); err != nil {
		s.log.Error("failed to write perf", "error", err)
	}
}

func (s *Simulation) writeSnapshot() {
	path, err := s.output.WriteSnapshot(s.tick, s.field.ActivePoints())
	if err != nil {
		s.log.Error("failed to write snapshot", "error", err)
		return
	}
	if path == "" {
		return
	}
	img, err := s.output.WriteHeatmap(s.tick, s.field)
	if err != nil {
		s.log.Error("failed to write heat map", "error", err)
		return
	}
	s.log.Debug("wrote snapshot", "tick", s.tick, "path", path, "image", img)
}

// PushPointer queues heat at a world position using the pointer heat.
// It reports false in static mode, where live input is ignored.
func (s *Simulation) PushPointer(x, y float64) bool {
	return s.queue.Push(systems.HeatInput{X: x, Y: y, Heat: s.pointerHeat})
}

// PushCell queues pointer heat at the centre of a grid cell.
func (s *Simulation) PushCell(col, row int) bool {
	x, y := s.field.CellPosition(col, row)
	return s.PushPointer(x, y)
}

// SetPointerHeat changes the heat attached to pointer input.
func (s *Simulation) SetPointerHeat(h float64) {
	s.pointerHeat = h
}

// PointerHeat returns the heat attached to pointer input.
func (s *Simulation) PointerHeat() float64 {
	return s.pointerHeat
}

// SetBrush changes the brush radius and intensity.
func (s *Simulation) SetBrush(radius, intensity float64) error {
	return s.field.SetBrush(radius, intensity)
}

// Drained reports whether a static replay has finished and the field cooled.
func (s *Simulation) Drained() bool {
	return s.queue.Len() == 0 && s.field.LastUpdate().Active == 0
}

// ID returns the identifier attached to this run's log records.
func (s *Simulation) ID() uuid.UUID { return s.id }

// Field returns the heat field.
func (s *Simulation) Field() *heatmap.Field { return s.field }

// Config returns the configuration the simulation was built with.
func (s *Simulation) Config() *config.Config { return s.cfg }

// Tick returns the number of completed ticks.
func (s *Simulation) Tick() int32 { return s.tick }

// Pending returns the number of queued heat inputs.
func (s *Simulation) Pending() int { return s.queue.Len() }

// Static reports whether the simulation replays a fixed history.
func (s *Simulation) Static() bool { return s.queue.Static() }

// ToggleEmitters pauses or resumes all emitters and reports whether they
// are now paused.
func (s *Simulation) ToggleEmitters() bool {
	s.emittersPaused = !s.emittersPaused
	s.emitters.SetPaused(s.emittersPaused)
	return s.emittersPaused
}

// EmitterCount returns the number of live emitters.
func (s *Simulation) EmitterCount() int { return s.emitters.Count() }

// LastStats returns the most recently flushed field stats.
func (s *Simulation) LastStats() telemetry.FieldStats { return s.lastStats }

// Perf returns the performance collector.
func (s *Simulation) Perf() *telemetry.PerfCollector { return s.perf }

// Close flushes a final stats record and closes output files.
func (s *Simulation) Close() error {
	if s.tick%int32(s.cfg.Telemetry.StatsWindow) != 0 {
		s.flushTelemetry()
	}
	return s.output.Close()
}
