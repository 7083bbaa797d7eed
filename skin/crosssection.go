// Package skin turns an ordered chain of segment poses into a tube mesh.
package skin

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/geom"
)

// Ring vertex slots.
const (
	RingRight = iota
	RingLeft
	RingUp
	RingDown
	RingSize
)

// ringU is the texture u coordinate of each ring slot.
var ringU = [RingSize]float32{
	RingRight: 0,
	RingLeft:  1,
	RingUp:    0.5,
	RingDown:  0.5,
}

// Section is one skin input: a pose plus the radii of its cross-section.
type Section struct {
	Position r3.Vec
	Rotation r3.Rotation
	RadiusX  float64 // right/left
	RadiusY  float64 // up/down
}

// CrossSection holds the four lateral vertices of a section and their
// outward normals.
type CrossSection struct {
	Vertices [RingSize]r3.Vec
	Normals  [RingSize]r3.Vec
}

// NewCrossSection derives the ring for a pose. The normals are the unit local
// axes, so they stay valid for zero radii.
func NewCrossSection(pos r3.Vec, rot r3.Rotation, rx, ry float64) CrossSection {
	right, up, _ := geom.Axes(rot)

	var cs CrossSection
	cs.Normals[RingRight] = right
	cs.Normals[RingLeft] = r3.Scale(-1, right)
	cs.Normals[RingUp] = up
	cs.Normals[RingDown] = r3.Scale(-1, up)

	cs.Vertices[RingRight] = r3.Add(pos, r3.Scale(rx, right))
	cs.Vertices[RingLeft] = r3.Sub(pos, r3.Scale(rx, right))
	cs.Vertices[RingUp] = r3.Add(pos, r3.Scale(ry, up))
	cs.Vertices[RingDown] = r3.Sub(pos, r3.Scale(ry, up))
	return cs
}

// frame returns the orientation used to skin section i. Sections are ordered
// head first, so forward points from the next section to the previous one;
// the ends use their single neighbour. A degenerate difference falls back to
// the section's own rotation.
func frame(sections []Section, i int) r3.Rotation {
	prev, next := i-1, i+1
	if prev < 0 {
		prev = i
	}
	if next >= len(sections) {
		next = i
	}
	forward := r3.Sub(sections[prev].Position, sections[next].Position)
	if rot, ok := geom.LookRotation(forward); ok {
		return rot
	}
	return sections[i].Rotation
}
