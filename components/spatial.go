// Package components defines the ECS components that make up a chain segment.
package components

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/geom"
)

// Pose represents a segment's world position and orientation.
type Pose struct {
	Position r3.Vec
	Rotation r3.Rotation
}

// NewPose returns a pose at p facing Forward.
func NewPose(p r3.Vec) Pose {
	return Pose{Position: p, Rotation: geom.Identity}
}

// Forward returns the unit forward axis.
func (p Pose) Forward() r3.Vec { return p.Rotation.Rotate(geom.Forward) }

// Right returns the unit right axis.
func (p Pose) Right() r3.Vec { return p.Rotation.Rotate(geom.Right) }

// Up returns the unit up axis.
func (p Pose) Up() r3.Vec { return p.Rotation.Rotate(geom.Up) }

// Offset returns the world point at the given distances along the local
// forward, right and up axes.
func (p Pose) Offset(forward, right, up float64) r3.Vec {
	f, r, u := p.Forward(), p.Right(), p.Up()
	out := p.Position
	out = r3.Add(out, r3.Scale(forward, f))
	out = r3.Add(out, r3.Scale(right, r))
	out = r3.Add(out, r3.Scale(up, u))
	return out
}

// Face orients the pose along dir. Zero-length directions keep the current
// orientation.
func (p *Pose) Face(dir r3.Vec) {
	if rot, ok := geom.LookRotation(dir); ok {
		p.Rotation = rot
	}
}
