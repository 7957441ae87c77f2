// Package components defines ECS components for heat emitters.
package components

// Emitter marks an entity that stamps heat onto the field at its position.
type Emitter struct {
	ID     uint32
	Heat   float32 // Heat magnitude handed to the brush
	Paused bool    // Paused emitters keep moving but stamp nothing
}

// Bounds is a world-space rectangle emitters are confined to.
type Bounds struct {
	MinX, MinY float32
	MaxX, MaxY float32
}

// Contains reports whether (x, y) lies inside the bounds.
func (b Bounds) Contains(x, y float32) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}
