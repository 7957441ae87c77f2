// Package systems contains the input-side systems that feed the heat field.
package systems

// maxPending bounds the dynamic queue; the oldest input is dropped first.
const maxPending = 1024

// HeatInput is a world-space brush request.
type HeatInput struct {
	X    float64 `csv:"x"`
	Y    float64 `csv:"y"`
	Heat float64 `csv:"heat"`
}

// HeatQueue buffers brush requests between ticks.
//
// In dynamic mode the most recent input is consumed first, so the brush
// follows the pointer and stale positions are only used once the backlog
// drains. In static mode inputs are replayed in the order they were added,
// so earlier points have decayed the longest by the end of the replay.
type HeatQueue struct {
	static bool
	items  []HeatInput
	head   int // first unread item in static mode
}

// NewHeatQueue creates a queue seeded with the given inputs.
func NewHeatQueue(static bool, initial []HeatInput) *HeatQueue {
	q := &HeatQueue{static: static}
	q.items = append(q.items, initial...)
	return q
}

// Static reports whether the queue replays a fixed history.
func (q *HeatQueue) Static() bool {
	return q.static
}

// Push adds live input. It is ignored in static mode and reports whether the
// input was queued.
func (q *HeatQueue) Push(in HeatInput) bool {
	if q.static {
		return false
	}
	q.Append(in)
	return true
}

// Append adds input regardless of mode.
func (q *HeatQueue) Append(in HeatInput) {
	q.items = append(q.items, in)
	if !q.static && len(q.items) > maxPending {
		n := copy(q.items, q.items[len(q.items)-maxPending:])
		q.items = q.items[:n]
	}
}

// Next removes and returns the next input. ok is false when the queue is
// empty, in which case the zero input is returned.
func (q *HeatQueue) Next() (in HeatInput, ok bool) {
	if q.Len() == 0 {
		return HeatInput{}, false
	}
	if q.static {
		in = q.items[q.head]
		q.head++
		if q.head == len(q.items) {
			q.items = q.items[:0]
			q.head = 0
		}
		return in, true
	}
	last := len(q.items) - 1
	in = q.items[last]
	q.items = q.items[:last]
	return in, true
}

// Len returns the number of pending inputs.
func (q *HeatQueue) Len() int {
	return len(q.items) - q.head
}
