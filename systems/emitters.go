package systems

import (
	"math"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/heatfield/components"
)

// EmitterSystem moves heat emitters around the field and feeds their
// positions into a HeatQueue, one emitter per tick in rotation.
type EmitterSystem struct {
	mapper *ecs.Map3[components.Position, components.Velocity, components.Emitter]
	filter ecs.Filter3[components.Position, components.Velocity, components.Emitter]
	bounds components.Bounds

	nextID  uint32
	cursor  int
	scratch []HeatInput
}

// NewEmitterSystem creates an emitter system confined to bounds.
func NewEmitterSystem(w *ecs.World, bounds components.Bounds) *EmitterSystem {
	return &EmitterSystem{
		mapper: ecs.NewMap3[components.Position, components.Velocity, components.Emitter](w),
		filter: *ecs.NewFilter3[components.Position, components.Velocity, components.Emitter](w),
		bounds: bounds,
	}
}

// Spawn creates n emitters at random positions with random headings.
func (s *EmitterSystem) Spawn(rng *rand.Rand, n int, speed, heat float32) {
	w := s.bounds.MaxX - s.bounds.MinX
	h := s.bounds.MaxY - s.bounds.MinY
	for i := 0; i < n; i++ {
		s.Add(
			s.bounds.MinX+rng.Float32()*w,
			s.bounds.MinY+rng.Float32()*h,
			rng.Float64()*2*math.Pi,
			speed, heat,
		)
	}
}

// Add creates a single emitter moving along heading (radians).
func (s *EmitterSystem) Add(x, y float32, heading float64, speed, heat float32) ecs.Entity {
	pos := components.Position{X: x, Y: y}
	vel := components.Velocity{
		X: speed * float32(math.Cos(heading)),
		Y: speed * float32(math.Sin(heading)),
	}
	em := components.Emitter{ID: s.nextID, Heat: heat}
	s.nextID++
	return s.mapper.NewEntity(&pos, &vel, &em)
}

// Update advances every emitter by one tick, bouncing off the bounds.
func (s *EmitterSystem) Update() {
	query := s.filter.Query()
	for query.Next() {
		pos, vel, _ := query.Get()
		pos.X += vel.X
		pos.Y += vel.Y
		pos.X, vel.X = bounce(pos.X, vel.X, s.bounds.MinX, s.bounds.MaxX)
		pos.Y, vel.Y = bounce(pos.Y, vel.Y, s.bounds.MinY, s.bounds.MaxY)
	}
}

// Emit pushes the next active emitter's position into q and reports whether
// anything was queued.
func (s *EmitterSystem) Emit(q *HeatQueue) bool {
	s.scratch = s.scratch[:0]
	query := s.filter.Query()
	for query.Next() {
		pos, _, em := query.Get()
		if em.Paused {
			continue
		}
		s.scratch = append(s.scratch, HeatInput{X: float64(pos.X), Y: float64(pos.Y), Heat: float64(em.Heat)})
	}
	if len(s.scratch) == 0 {
		return false
	}

	s.cursor %= len(s.scratch)
	in := s.scratch[s.cursor]
	s.cursor++
	q.Append(in)
	return true
}

// SetPaused pauses or resumes every emitter.
func (s *EmitterSystem) SetPaused(paused bool) {
	query := s.filter.Query()
	for query.Next() {
		_, _, em := query.Get()
		em.Paused = paused
	}
}

// Count returns the number of emitters.
func (s *EmitterSystem) Count() int {
	n := 0
	query := s.filter.Query()
	for query.Next() {
		n++
	}
	return n
}

// MeanSpeed returns the average emitter speed, used for telemetry.
func (s *EmitterSystem) MeanSpeed() float32 {
	var sum float32
	var n int
	query := s.filter.Query()
	for query.Next() {
		_, vel, _ := query.Get()
		sum += velocityMagnitude(vel.X, vel.Y)
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float32(n)
}
