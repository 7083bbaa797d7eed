package geom

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

var (
	// ErrNoIntersection is returned when two shapes do not meet.
	ErrNoIntersection = errors.New("geom: no intersection")

	// ErrDegenerate is returned when the input does not define a unique answer.
	ErrDegenerate = errors.New("geom: degenerate input")
)

// CircleIntersections returns the two ground-plane intersection points of the
// circles (c0, r0) and (c1, r1). The Y coordinate of the results is c0.Y.
// Tangent circles return the touching point twice.
func CircleIntersections(c0 r3.Vec, r0 float64, c1 r3.Vec, r1 float64) (p, q r3.Vec, err error) {
	dx := c1.X - c0.X
	dz := c1.Z - c0.Z
	d := math.Hypot(dx, dz)
	if d < tiny {
		return p, q, ErrNoIntersection
	}
	if d > r0+r1+tiny || d < math.Abs(r0-r1)-tiny {
		return p, q, ErrNoIntersection
	}

	// Distance from c0 to the chord, then half the chord length.
	a := (r0*r0 - r1*r1 + d*d) / (2 * d)
	h := math.Sqrt(math.Max(r0*r0-a*a, 0))

	ux, uz := dx/d, dz/d
	mx, mz := c0.X+a*ux, c0.Z+a*uz

	p = r3.Vec{X: mx - h*uz, Y: c0.Y, Z: mz + h*ux}
	q = r3.Vec{X: mx + h*uz, Y: c0.Y, Z: mz - h*ux}
	return p, q, nil
}

// CircleIntersectionOnFarSide intersects the circles centred at a and c, both
// with radius |a-c|, and returns the intersection on the opposite side of
// line ac from the reference point b.
func CircleIntersectionOnFarSide(a, b, c r3.Vec) (r3.Vec, error) {
	radius := math.Hypot(c.X-a.X, c.Z-a.Z)
	p, q, err := CircleIntersections(a, radius, c, radius)
	if err != nil {
		return r3.Vec{}, err
	}

	ref := side(a, c, b)
	if math.Abs(ref) < tiny {
		return r3.Vec{}, ErrDegenerate
	}
	if side(a, c, p)*ref < 0 {
		return p, nil
	}
	return q, nil
}

// ClosestForwardLineCircleIntersection casts a ground-plane ray from lineFrom
// through lineTowards and returns its first intersection with the circle at
// circleCenter. Intersections behind the origin of the ray are ignored.
func ClosestForwardLineCircleIntersection(lineFrom, lineTowards, circleCenter r3.Vec, radius float64) (r3.Vec, error) {
	dx := lineTowards.X - lineFrom.X
	dz := lineTowards.Z - lineFrom.Z
	l := math.Hypot(dx, dz)
	if l < tiny {
		return r3.Vec{}, ErrDegenerate
	}
	dx, dz = dx/l, dz/l

	fx := lineFrom.X - circleCenter.X
	fz := lineFrom.Z - circleCenter.Z

	// |f + t*d|^2 = r^2 with |d| = 1.
	b := 2 * (fx*dx + fz*dz)
	c := fx*fx + fz*fz - radius*radius
	disc := b*b - 4*c
	if disc < 0 {
		return r3.Vec{}, ErrNoIntersection
	}

	sq := math.Sqrt(disc)
	t0 := (-b - sq) / 2
	t1 := (-b + sq) / 2

	var t float64
	switch {
	case t0 >= 0:
		t = t0
	case t1 >= 0:
		t = t1
	default:
		return r3.Vec{}, ErrNoIntersection
	}
	return r3.Vec{X: lineFrom.X + t*dx, Y: lineFrom.Y, Z: lineFrom.Z + t*dz}, nil
}

// side returns the signed ground-plane area of (a, c, p): positive on one side
// of line ac, negative on the other, zero on the line.
func side(a, c, p r3.Vec) float64 {
	return (c.X-a.X)*(p.Z-a.Z) - (c.Z-a.Z)*(p.X-a.X)
}
