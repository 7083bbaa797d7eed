package locomotion

import (
	"log/slog"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/chain"
	"github.com/pthm-cable/gridsnake/geom"
)

// Body moves the followers of a chain behind its head. The controller calls
// its hooks once per cycle start, per tick and per cycle end.
type Body struct {
	chain  *chain.Chain
	solver Solver
	logger *slog.Logger

	degenerate int // corners that fell back to straight motion
}

// NewBody creates the follower driver for c.
func NewBody(c *chain.Chain, logger *slog.Logger) *Body {
	if logger == nil {
		logger = slog.Default()
	}
	return &Body{
		chain:  c,
		solver: Solver{Lattice: c.Lattice()},
		logger: logger,
	}
}

// Degenerate returns how many corners were replaced by straight motion.
func (b *Body) Degenerate() int { return b.degenerate }

// OnCycleStart plans every follower front to back. Each one moves from the
// lattice point it reached last cycle to where the segment ahead started this
// cycle, so the segment ahead must already be planned.
func (b *Body) OnCycleStart() {
	for i := 1; i < b.chain.Len(); i++ {
		prev := b.chain.Segment(i - 1)
		seg := b.chain.Segment(i)

		start := seg.Motion.Target()
		target := prev.Motion.Start()
		seg.Motion.Plan(start, target)
		if leg := r3.Sub(target, start); r3.Norm2(leg) > geom.Epsilon {
			seg.Motion.Follow(r3.Unit(leg))
		}

		if err := b.solver.Solve(seg, prev.Motion.Target()); err != nil {
			b.degenerate++
			b.logger.Warn("corner fallback to straight motion",
				"segment", i,
				"start", start,
				"target", target,
				"error", err,
			)
			seg.Turn.Reset()
		}
	}
}

// OnCycleTick places every follower at fraction t of its cycle and turns it
// to face its direction of travel.
func (b *Body) OnCycleTick(t float64) {
	for _, seg := range b.chain.Followers() {
		if seg.Turn.Turning() {
			seg.Pose.Position = seg.Turn.Position(t)
			seg.Pose.Face(seg.Turn.Tangent(t))
			continue
		}
		start, target := seg.Motion.Start(), seg.Motion.Target()
		seg.Pose.Position = geom.Lerp(start, target, t)
		seg.Pose.Face(r3.Sub(target, start))
	}
}

// OnCycleEnd snaps every follower. A segment halfway round a corner rests on
// the arc midpoint; everything else rests on its lattice target.
func (b *Body) OnCycleEnd() {
	lat := b.chain.Lattice()
	for _, seg := range b.chain.Followers() {
		pos, ok := seg.Turn.EndCycle()
		if !ok || !seg.Turn.Turning() {
			pos = lat.Snap(seg.Motion.Target())
		}
		seg.Pose.Position = pos
		seg.Motion.Settle()
	}
}
