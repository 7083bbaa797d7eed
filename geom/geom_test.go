package geom

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

const tol = 1e-9

func TestCollinear(t *testing.T) {
	tests := []struct {
		name    string
		a, b, c r3.Vec
		want    bool
	}{
		{"straight along z", r3.Vec{Z: 1}, r3.Vec{}, r3.Vec{Z: -1}, true},
		{"straight along x", r3.Vec{X: 2}, r3.Vec{X: 1}, r3.Vec{}, true},
		{"coincident points", r3.Vec{X: 1}, r3.Vec{X: 1}, r3.Vec{X: 1}, true},
		{"hex straight", r3.Vec{X: sin60, Z: cos60}, r3.Vec{}, r3.Vec{X: -sin60, Z: -cos60}, true},
		{"square right angle", r3.Vec{X: 1}, r3.Vec{}, r3.Vec{Z: -1}, false},
		{"square left angle", r3.Vec{X: -0.5}, r3.Vec{}, r3.Vec{Z: -0.5}, false},
		{"hex 60 degree turn", r3.Vec{X: sin60, Z: cos60}, r3.Vec{}, r3.Vec{Z: -1}, false},
		{"hex 120 degree bend", r3.Vec{X: sin60, Z: -cos60}, r3.Vec{}, r3.Vec{Z: -1}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Collinear(tc.a, tc.b, tc.c); got != tc.want {
				t.Errorf("Collinear(%v, %v, %v) = %v, want %v", tc.a, tc.b, tc.c, got, tc.want)
			}
		})
	}
}

func TestRoundToHalfStep(t *testing.T) {
	got := RoundToHalfStep(r3.Vec{X: 0.26, Y: -0.01, Z: -1.74}, 1)
	want := r3.Vec{X: 0.5, Y: 0, Z: -1.5}
	if !ApproxEqual(got, want, tol) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Non-positive spacing leaves the vector alone.
	v := r3.Vec{X: 0.3, Z: 0.7}
	if got := RoundToHalfStep(v, 0); got != v {
		t.Errorf("expected %v unchanged, got %v", v, got)
	}
}

func TestRoundToHalfStepIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for _, spacing := range []float64{1, 0.3, 2.5} {
		for i := 0; i < 500; i++ {
			v := r3.Vec{
				X: (rng.Float64() - 0.5) * 40,
				Y: (rng.Float64() - 0.5) * 4,
				Z: (rng.Float64() - 0.5) * 40,
			}
			once := RoundToHalfStep(v, spacing)
			twice := RoundToHalfStep(once, spacing)
			if once != twice {
				t.Fatalf("spacing %v: round(round(%v)) = %v, want %v", spacing, v, twice, once)
			}
		}
	}
}

func TestCircleIntersectionOnFarSide(t *testing.T) {
	a := r3.Vec{}
	b := r3.Vec{X: 1, Z: 1}
	c := r3.Vec{X: 1}

	got, err := CircleIntersectionOnFarSide(a, b, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := r3.Vec{X: 0.5, Z: -sin60}
	if !ApproxEqual(got, want, tol) {
		t.Errorf("expected %v, got %v", want, got)
	}

	// Both circles have radius |a-c|, so the result is equidistant.
	if d := r3.Norm(r3.Sub(got, a)); math.Abs(d-1) > tol {
		t.Errorf("expected distance 1 from a, got %f", d)
	}
	if d := r3.Norm(r3.Sub(got, c)); math.Abs(d-1) > tol {
		t.Errorf("expected distance 1 from c, got %f", d)
	}

	// Mirroring the reference flips the answer.
	mirrored, err := CircleIntersectionOnFarSide(a, r3.Vec{X: 1, Z: -1}, c)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ApproxEqual(mirrored, r3.Vec{X: 0.5, Z: sin60}, tol) {
		t.Errorf("expected mirrored point, got %v", mirrored)
	}
}

func TestCircleIntersectionOnFarSideFailures(t *testing.T) {
	if _, err := CircleIntersectionOnFarSide(r3.Vec{X: 1}, r3.Vec{Z: 1}, r3.Vec{X: 1}); !errors.Is(err, ErrNoIntersection) {
		t.Errorf("coincident centers: expected ErrNoIntersection, got %v", err)
	}
	if _, err := CircleIntersectionOnFarSide(r3.Vec{}, r3.Vec{X: 3}, r3.Vec{X: 1}); !errors.Is(err, ErrDegenerate) {
		t.Errorf("reference on the line: expected ErrDegenerate, got %v", err)
	}
}

func TestCircleIntersections(t *testing.T) {
	if _, _, err := CircleIntersections(r3.Vec{}, 1, r3.Vec{X: 3}, 1); !errors.Is(err, ErrNoIntersection) {
		t.Errorf("disjoint circles: expected ErrNoIntersection, got %v", err)
	}
	if _, _, err := CircleIntersections(r3.Vec{}, 3, r3.Vec{X: 0.5}, 1); !errors.Is(err, ErrNoIntersection) {
		t.Errorf("nested circles: expected ErrNoIntersection, got %v", err)
	}

	p, q, err := CircleIntersections(r3.Vec{}, 1, r3.Vec{X: 2}, 1)
	if err != nil {
		t.Fatalf("tangent circles: unexpected error: %v", err)
	}
	if !ApproxEqual(p, r3.Vec{X: 1}, 1e-6) || !ApproxEqual(q, r3.Vec{X: 1}, 1e-6) {
		t.Errorf("tangent circles: expected both points at (1,0,0), got %v %v", p, q)
	}
}

func TestClosestForwardLineCircleIntersection(t *testing.T) {
	tests := []struct {
		name     string
		from, to r3.Vec
		center   r3.Vec
		radius   float64
		want     r3.Vec
		wantErr  error
	}{
		{
			name:   "ray from outside hits near side",
			from:   r3.Vec{X: -3},
			to:     r3.Vec{X: -2},
			center: r3.Vec{},
			radius: 1,
			want:   r3.Vec{X: -1},
		},
		{
			name:   "ray from inside hits forward side",
			from:   r3.Vec{},
			to:     r3.Vec{Z: 5},
			center: r3.Vec{},
			radius: 2,
			want:   r3.Vec{Z: 2},
		},
		{
			name:   "keeps the ray height",
			from:   r3.Vec{X: 1, Y: 0.25},
			to:     r3.Vec{X: 1, Y: 0.25, Z: 1},
			center: r3.Vec{X: 1, Z: 3},
			radius: 1,
			want:   r3.Vec{X: 1, Y: 0.25, Z: 2},
		},
		{
			name:    "ray misses",
			from:    r3.Vec{X: -3, Z: 2},
			to:      r3.Vec{X: -2, Z: 2},
			center:  r3.Vec{},
			radius:  1,
			wantErr: ErrNoIntersection,
		},
		{
			name:    "ray points away",
			from:    r3.Vec{X: -3},
			to:      r3.Vec{X: -4},
			center:  r3.Vec{},
			radius:  1,
			wantErr: ErrNoIntersection,
		},
		{
			name:    "zero length ray",
			from:    r3.Vec{X: -3},
			to:      r3.Vec{X: -3},
			center:  r3.Vec{},
			radius:  1,
			wantErr: ErrDegenerate,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ClosestForwardLineCircleIntersection(tc.from, tc.to, tc.center, tc.radius)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !ApproxEqual(got, tc.want, tol) {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestSlerpFollowsArc(t *testing.T) {
	a := r3.Vec{X: -1}
	b := r3.Vec{Z: 1}
	for _, step := range []float64{0, 0.25, 0.5, 0.75, 1} {
		p := Slerp(a, b, step)
		if n := r3.Norm(p); math.Abs(n-1) > tol {
			t.Errorf("t=%v: expected radius 1, got %f", step, n)
		}
	}
	if got := Slerp(a, b, 0.5); !ApproxEqual(got, r3.Vec{X: -math.Sqrt2 / 2, Z: math.Sqrt2 / 2}, tol) {
		t.Errorf("expected midpoint on the bisector, got %v", got)
	}
	if got := Slerp(a, b, 1); !ApproxEqual(got, b, tol) {
		t.Errorf("expected end point %v, got %v", b, got)
	}

	// Magnitudes are interpolated linearly.
	if got := Slerp(r3.Vec{X: 1}, r3.Vec{X: 3}, 0.5); !ApproxEqual(got, r3.Vec{X: 2}, tol) {
		t.Errorf("expected (2,0,0), got %v", got)
	}
}

func TestLookRotation(t *testing.T) {
	dirs := []r3.Vec{
		{Z: 1}, {X: 1}, {Z: -1}, {X: -1},
		{X: sin60, Z: cos60},
		{X: 1, Y: 1, Z: 1},
	}
	for _, d := range dirs {
		rot, ok := LookRotation(d)
		if !ok {
			t.Fatalf("LookRotation(%v) not ok", d)
		}
		_, up, fwd := Axes(rot)
		if !ApproxEqual(fwd, r3.Unit(d), 1e-9) {
			t.Errorf("LookRotation(%v): forward = %v", d, fwd)
		}
		if up.Y <= 0 {
			t.Errorf("LookRotation(%v): up %v points downward", d, up)
		}
	}

	if _, ok := LookRotation(r3.Vec{}); ok {
		t.Error("expected zero direction to be rejected")
	}

	// Facing +Z keeps right on +X.
	rot, _ := LookRotation(Forward)
	right, _, _ := Axes(rot)
	if !ApproxEqual(right, Right, tol) {
		t.Errorf("expected right (1,0,0), got %v", right)
	}
}

func TestSlerpRotation(t *testing.T) {
	a, _ := LookRotation(Forward)
	b, _ := LookRotation(Right)

	mid := SlerpRotation(a, b, 0.5)
	_, _, fwd := Axes(mid)
	want := r3.Unit(r3.Vec{X: 1, Z: 1})
	if !ApproxEqual(fwd, want, 1e-9) {
		t.Errorf("expected forward %v, got %v", want, fwd)
	}

	end := SlerpRotation(a, b, 1)
	_, _, fwd = Axes(end)
	if !ApproxEqual(fwd, Right, 1e-9) {
		t.Errorf("expected forward %v, got %v", Right, fwd)
	}
}
