// Package geom provides the stateless numeric primitives shared by locomotion
// and skinning: collinearity, lattice rounding, circle intersections and
// rotation helpers.
//
// The world is Y-up. Movement happens on the XZ ground plane, forward is +Z
// and right is +X.
package geom

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Epsilon is the squared-magnitude threshold used by Collinear.
const Epsilon = 1e-6

// tiny guards divisions and normalisations.
const tiny = 1e-12

// Canonical axes.
var (
	Right   = r3.Vec{X: 1}
	Up      = r3.Vec{Y: 1}
	Forward = r3.Vec{Z: 1}
)

// Identity is the unit rotation. The zero r3.Rotation is not a valid
// orientation, so poses must start from this.
var Identity = r3.Rotation{Real: 1}

// Collinear reports whether a, b and c lie on one line.
func Collinear(a, b, c r3.Vec) bool {
	return r3.Norm2(r3.Cross(r3.Sub(b, a), r3.Sub(c, a))) < Epsilon
}

// RoundToHalfStep rounds every coordinate of v to the nearest multiple of
// spacing/2. A non-positive spacing returns v unchanged.
func RoundToHalfStep(v r3.Vec, spacing float64) r3.Vec {
	half := spacing / 2
	if half <= 0 {
		return v
	}
	return r3.Vec{
		X: math.Round(v.X/half) * half,
		Y: math.Round(v.Y/half) * half,
		Z: math.Round(v.Z/half) * half,
	}
}

// Lerp linearly interpolates between a and b.
func Lerp(a, b r3.Vec, t float64) r3.Vec {
	return r3.Add(a, r3.Scale(t, r3.Sub(b, a)))
}

// Slerp spherically interpolates between the directions of a and b while
// interpolating their magnitudes linearly. Rotating an offset from a turn
// center with Slerp moves a point along the arc between a and b.
func Slerp(a, b r3.Vec, t float64) r3.Vec {
	la, lb := r3.Norm(a), r3.Norm(b)
	if la < tiny || lb < tiny {
		return Lerp(a, b, t)
	}
	ua := r3.Scale(1/la, a)
	ub := r3.Scale(1/lb, b)
	mag := la + (lb-la)*t

	theta := math.Acos(clamp(r3.Dot(ua, ub), -1, 1))
	if theta < 1e-9 {
		return r3.Scale(mag, ua)
	}

	axis := r3.Cross(ua, ub)
	if r3.Norm2(axis) < tiny {
		// Antiparallel: any perpendicular axis is a valid great circle.
		axis = r3.Cross(ua, Up)
		if r3.Norm2(axis) < tiny {
			axis = r3.Cross(ua, Right)
		}
	}
	dir := r3.Rotate(ua, theta*t, r3.Unit(axis))
	return r3.Scale(mag, dir)
}

// LookRotation returns the rotation that maps Forward onto forward while
// keeping Up as close to world up as possible. The second result is false
// when forward has no usable length.
func LookRotation(forward r3.Vec) (r3.Rotation, bool) {
	n := r3.Norm(forward)
	if n < tiny {
		return Identity, false
	}
	f := r3.Scale(1/n, forward)
	yaw := math.Atan2(f.X, f.Z)
	pitch := -math.Atan2(f.Y, math.Hypot(f.X, f.Z))

	qYaw := quat.Number(r3.NewRotation(yaw, Up))
	qPitch := quat.Number(r3.NewRotation(pitch, Right))
	return r3.Rotation(quat.Mul(qYaw, qPitch)), true
}

// SlerpRotation interpolates between two unit rotations along the shortest
// path.
func SlerpRotation(a, b r3.Rotation, t float64) r3.Rotation {
	qa, qb := quat.Number(a), quat.Number(b)
	dot := qa.Real*qb.Real + qa.Imag*qb.Imag + qa.Jmag*qb.Jmag + qa.Kmag*qb.Kmag
	if dot < 0 {
		qb = quat.Scale(-1, qb)
		dot = -dot
	}

	var out quat.Number
	if dot > 0.9995 {
		out = quat.Add(qa, quat.Scale(t, quat.Sub(qb, qa)))
	} else {
		theta := math.Acos(clamp(dot, -1, 1))
		sin := math.Sin(theta)
		wa := math.Sin((1-t)*theta) / sin
		wb := math.Sin(t*theta) / sin
		out = quat.Add(quat.Scale(wa, qa), quat.Scale(wb, qb))
	}

	abs := quat.Abs(out)
	if abs < tiny {
		return Identity
	}
	return r3.Rotation(quat.Scale(1/abs, out))
}

// Axes returns the right, up and forward unit axes of a rotation.
func Axes(r r3.Rotation) (right, up, forward r3.Vec) {
	return r.Rotate(Right), r.Rotate(Up), r.Rotate(Forward)
}

// ApproxEqual reports whether a and b are within tol on every axis.
func ApproxEqual(a, b r3.Vec, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
