package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/geom"
)

// Turn describes the circular arc a segment follows around a corner. A corner
// takes two move-cycles: the first half sweeps from the start to the arc
// midpoint, the second from the midpoint to the final target.
type Turn struct {
	turning  bool
	halfDone bool
	center   r3.Vec
	start    r3.Vec
	target   r3.Vec
}

func (t *Turn) Turning() bool  { return t.turning }
func (t *Turn) HalfDone() bool { return t.halfDone }
func (t *Turn) Center() r3.Vec { return t.center }
func (t *Turn) Start() r3.Vec  { return t.start }
func (t *Turn) Target() r3.Vec { return t.target }

// Begin starts the first half of a turn.
func (t *Turn) Begin(center, start, mid r3.Vec) {
	t.turning = true
	t.center = center
	t.start = start
	t.target = mid
}

// Resume starts the second half of a turn: the arc continues from the
// midpoint reached last cycle to target around the same center.
func (t *Turn) Resume(target r3.Vec) {
	t.turning = true
	t.start = t.target
	t.target = target
}

// EndCycle closes the current half of a turn and returns the position the
// segment must be snapped to. ok is false when the segment is not turning.
// This is the only place halfDone changes.
func (t *Turn) EndCycle() (pos r3.Vec, ok bool) {
	if !t.turning {
		return r3.Vec{}, false
	}
	if t.halfDone {
		t.turning = false
		t.halfDone = false
		return t.target, true
	}
	t.halfDone = true
	return t.target, true
}

// Reset abandons any turn in progress.
func (t *Turn) Reset() {
	*t = Turn{}
}

// Position returns the point on the arc at fraction f of the current half.
func (t *Turn) Position(f float64) r3.Vec {
	return r3.Add(t.center, geom.Slerp(r3.Sub(t.start, t.center), r3.Sub(t.target, t.center), f))
}

// Tangent returns the direction of travel along the arc at fraction f. It is
// not normalized.
func (t *Turn) Tangent(f float64) r3.Vec {
	axis := r3.Cross(r3.Sub(t.start, t.center), r3.Sub(t.target, t.center))
	return r3.Cross(axis, r3.Sub(t.Position(f), t.center))
}
