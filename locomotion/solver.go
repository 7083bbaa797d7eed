// Package locomotion moves a chain across the lattice: a controller drives
// the head one move-cycle at a time and the followers trail it, rounding
// corners on circular arcs set up by the solver.
package locomotion

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/chain"
	"github.com/pthm-cable/gridsnake/geom"
)

// Solver sets up the arc a follower takes around a corner.
type Solver struct {
	Lattice geom.Lattice
}

// Solve inspects a follower whose start and target were just planned and
// updates its turn state. prevTarget is the target the segment ahead moves to
// this cycle. A corner exists when prevTarget, target and start are not
// collinear; it is traversed in two halves, the second resuming the arc
// begun by the first.
func (s Solver) Solve(seg *chain.Segment, prevTarget r3.Vec) error {
	start, target := seg.Motion.Start(), seg.Motion.Target()

	if seg.Turn.HalfDone() {
		seg.Turn.Resume(target)
		return nil
	}
	if geom.Collinear(prevTarget, target, start) {
		return nil
	}

	center, mid, err := s.arc(start, target, prevTarget)
	if err != nil {
		return fmt.Errorf("segment %d: %w", seg.Index, err)
	}
	seg.Turn.Begin(center, start, mid)
	return nil
}

// arc returns the center of the circle tangent to both legs of the corner at
// corner, and the point halfway along the arc from start.
func (s Solver) arc(start, corner, next r3.Vec) (center, mid r3.Vec, err error) {
	if s.Lattice.Type == geom.Hexagonal {
		return hexArc(start, corner, next)
	}
	return squareArc(start, corner, next)
}

// squareArc handles 90 degree corners. The legs are one step long, so the
// center completes the square spanned by start, corner and next.
func squareArc(start, corner, next r3.Vec) (center, mid r3.Vec, err error) {
	center = r3.Add(start, r3.Sub(next, corner))
	radius := r3.Norm(r3.Sub(start, center))

	bisector := r3.Add(r3.Sub(start, center), r3.Sub(next, center))
	if radius < geom.Epsilon || r3.Norm2(bisector) < geom.Epsilon {
		return r3.Vec{}, r3.Vec{}, fmt.Errorf("square corner at %v: %w", corner, geom.ErrDegenerate)
	}
	mid = r3.Add(center, r3.Scale(radius, r3.Unit(bisector)))
	return center, mid, nil
}

// hexArc handles 60 degree heading changes. The circles of radius |start-next|
// around start and next meet inside the bend, on the far side of the chord
// from the corner; the arc midpoint is where the ray from the center through
// the corner crosses the arc.
func hexArc(start, corner, next r3.Vec) (center, mid r3.Vec, err error) {
	center, err = geom.CircleIntersectionOnFarSide(start, corner, next)
	if err != nil {
		return r3.Vec{}, r3.Vec{}, fmt.Errorf("hex corner at %v: %w", corner, err)
	}
	radius := r3.Norm(r3.Sub(start, center))
	mid, err = geom.ClosestForwardLineCircleIntersection(center, corner, center, radius)
	if err != nil {
		return r3.Vec{}, r3.Vec{}, fmt.Errorf("hex corner at %v: %w", corner, err)
	}
	return center, mid, nil
}
