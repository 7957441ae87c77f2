package heatmap

import "errors"

var (
	// ErrConfiguration is returned when a field is built from invalid parameters.
	ErrConfiguration = errors.New("heatmap: invalid configuration")

	// ErrInvalidRange is returned by Remap when the source range is empty.
	ErrInvalidRange = errors.New("heatmap: invalid range")

	// ErrResourceUnavailable is returned by rendering hosts when their drawing
	// surface cannot be acquired. The field itself never returns it.
	ErrResourceUnavailable = errors.New("heatmap: resource unavailable")
)
