package systems

import "math"

// clampFloat clamps a float32 value between min and max.
func clampFloat(v, minVal, maxVal float32) float32 {
	if v < minVal {
		return minVal
	}
	if v > maxVal {
		return maxVal
	}
	return v
}

// bounce reflects a coordinate and its velocity off [lo, hi].
func bounce(pos, vel, lo, hi float32) (float32, float32) {
	if hi <= lo {
		return lo, 0
	}
	if pos < lo {
		pos = lo + (lo - pos)
		vel = -vel
	} else if pos > hi {
		pos = hi - (pos - hi)
		vel = -vel
	}
	// Overshoot larger than the span lands outside again
	return clampFloat(pos, lo, hi), vel
}

// velocityMagnitude returns the magnitude of a velocity vector.
func velocityMagnitude(vx, vy float32) float32 {
	return float32(math.Sqrt(float64(vx*vx + vy*vy)))
}
