// Package camera provides a chase camera that trails the snake head.
package camera

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Camera trails a focus point from behind and above.
// It is pure math; the renderer converts it to a raylib camera.
type Camera struct {
	// Position is the eye in world coordinates, Target the point looked at.
	Position r3.Vec
	Target   r3.Vec

	// Distance behind and Height above the focus.
	Distance float64
	Height   float64

	// Stiffness is the rate at which the camera closes the gap to its
	// desired placement, per second.
	Stiffness float64

	// Fovy is the vertical field of view in degrees.
	Fovy float64

	// Zoom constraints on Distance
	MinDistance, MaxDistance float64

	defaultDistance float64
}

// New creates a camera behind the origin looking along +Z.
func New(distance, height, stiffness, fovy float64) *Camera {
	c := &Camera{
		Distance:        distance,
		Height:          height,
		Stiffness:       stiffness,
		Fovy:            fovy,
		MinDistance:     distance / 4,
		MaxDistance:     distance * 4,
		defaultDistance: distance,
	}
	c.Snap(r3.Vec{}, r3.Vec{Z: 1})
	return c
}

// Desired returns where the eye should sit for a focus moving along forward.
// Only the ground-plane part of forward is used so the camera never rolls.
func (c *Camera) Desired(focus, forward r3.Vec) r3.Vec {
	flat := r3.Vec{X: forward.X, Z: forward.Z}
	if r3.Norm2(flat) < 1e-12 {
		flat = r3.Vec{Z: 1}
	}
	back := r3.Scale(-c.Distance, r3.Unit(flat))
	return r3.Add(focus, r3.Add(back, r3.Vec{Y: c.Height}))
}

// Snap places the camera at its desired placement immediately.
func (c *Camera) Snap(focus, forward r3.Vec) {
	c.Position = c.Desired(focus, forward)
	c.Target = focus
}

// Follow eases the camera toward its desired placement. The easing is frame
// rate independent: the remaining gap decays by exp(-Stiffness*dt).
func (c *Camera) Follow(focus, forward r3.Vec, dt float64) {
	if dt <= 0 {
		return
	}
	f := 1 - math.Exp(-c.Stiffness*dt)
	c.Position = lerp(c.Position, c.Desired(focus, forward), f)
	c.Target = lerp(c.Target, focus, f)
}

// ZoomBy multiplies the follow distance by the given factor.
func (c *Camera) ZoomBy(factor float64) {
	c.Distance = clamp(c.Distance*factor, c.MinDistance, c.MaxDistance)
}

// Reset restores the default follow distance.
func (c *Camera) Reset() {
	c.Distance = c.defaultDistance
}

func lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// clamp restricts a value to a range.
func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}
