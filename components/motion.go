package components

import "gonum.org/v1/gonum/spatial/r3"

// Motion holds a segment's heading and the endpoints of its current
// move-cycle. Fields are written through methods so the buffered heading can
// only be committed on a grid point.
type Motion struct {
	direction r3.Vec // heading used by the current cycle
	pending   r3.Vec // heading requested for the next grid point
	start     r3.Vec // lattice point the cycle starts from
	target    r3.Vec // lattice point the cycle ends on
}

// NewMotion returns a segment at rest on position, heading along direction.
func NewMotion(position, direction r3.Vec) Motion {
	return Motion{
		direction: direction,
		pending:   direction,
		start:     position,
		target:    position,
	}
}

func (m *Motion) Direction() r3.Vec { return m.direction }
func (m *Motion) Pending() r3.Vec   { return m.pending }
func (m *Motion) Start() r3.Vec     { return m.start }
func (m *Motion) Target() r3.Vec    { return m.target }

// SetPending buffers the heading to adopt at the next grid point.
func (m *Motion) SetPending(dir r3.Vec) {
	m.pending = dir
}

// CommitPending adopts the buffered heading when the segment sits on a grid
// point and reports whether it did.
func (m *Motion) CommitPending(onGrid bool) bool {
	if !onGrid {
		return false
	}
	m.direction = m.pending
	return true
}

// Follow copies the heading of the segment ahead. Followers never buffer.
func (m *Motion) Follow(dir r3.Vec) {
	m.direction = dir
	m.pending = dir
}

// Plan sets the endpoints of the coming cycle.
func (m *Motion) Plan(start, target r3.Vec) {
	m.start = start
	m.target = target
}

// Settle prepares the next cycle: the target just reached becomes the start.
func (m *Motion) Settle() {
	m.start = m.target
}
