package heatmap

import (
	"fmt"
	"math"
)

// Remap linearly maps value from [fromLow, fromHigh] onto [toLow, toHigh].
// Reversed target ranges are allowed. When clampToRange is set the result is
// bounded to the target range regardless of its orientation.
func Remap(value, fromLow, fromHigh, toLow, toHigh float64, clampToRange bool) (float64, error) {
	if fromHigh == fromLow {
		return 0, fmt.Errorf("%w: empty source range [%g, %g]", ErrInvalidRange, fromLow, fromHigh)
	}

	v := (value-fromLow)/(fromHigh-fromLow)*(toHigh-toLow) + toLow
	if !clampToRange {
		return v, nil
	}
	return Constrain(v, math.Min(toLow, toHigh), math.Max(toLow, toHigh)), nil
}

// Constrain bounds value to [low, high].
func Constrain(value, low, high float64) float64 {
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}
