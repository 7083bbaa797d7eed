package camera

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func near(a, b r3.Vec, tol float64) bool {
	return r3.Norm(r3.Sub(a, b)) <= tol
}

func TestNew(t *testing.T) {
	cam := New(6, 5, 3, 45)

	// Behind the origin, looking at it.
	if !near(cam.Position, r3.Vec{Y: 5, Z: -6}, 1e-12) {
		t.Errorf("expected camera at (0, 5, -6), got %v", cam.Position)
	}
	if cam.Target != (r3.Vec{}) {
		t.Errorf("expected target at origin, got %v", cam.Target)
	}
}

func TestDesiredIgnoresPitch(t *testing.T) {
	cam := New(6, 5, 3, 45)

	tests := []struct {
		name    string
		forward r3.Vec
		want    r3.Vec
	}{
		{"+X", r3.Vec{X: 1}, r3.Vec{X: 4, Y: 5}},
		{"pitched +X", r3.Vec{X: 1, Y: 1}, r3.Vec{X: 4, Y: 5}},
		{"-Z", r3.Vec{Z: -2}, r3.Vec{X: 10, Y: 5, Z: 6}},
		{"straight up", r3.Vec{Y: 1}, r3.Vec{X: 10, Y: 5, Z: -6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := cam.Desired(r3.Vec{X: 10}, tt.forward)
			if !near(got, tt.want, 1e-9) {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestFollowConverges(t *testing.T) {
	cam := New(6, 5, 3, 45)
	focus := r3.Vec{X: 3, Z: 3}
	forward := r3.Vec{X: 1}

	prev := r3.Norm(r3.Sub(cam.Position, cam.Desired(focus, forward)))
	for i := 0; i < 600; i++ {
		cam.Follow(focus, forward, 1.0/60)
		gap := r3.Norm(r3.Sub(cam.Position, cam.Desired(focus, forward)))
		if gap > prev+1e-12 {
			t.Fatalf("step %d: gap grew from %f to %f", i, prev, gap)
		}
		prev = gap
	}
	if prev > 1e-3 {
		t.Errorf("expected camera to settle, gap %f", prev)
	}
	if !near(cam.Target, focus, 1e-3) {
		t.Errorf("expected target near focus, got %v", cam.Target)
	}
}

func TestFollowFrameRateIndependent(t *testing.T) {
	a := New(6, 5, 3, 45)
	b := New(6, 5, 3, 45)
	focus := r3.Vec{X: 2}

	a.Follow(focus, r3.Vec{Z: 1}, 0.1)
	for i := 0; i < 10; i++ {
		b.Follow(focus, r3.Vec{Z: 1}, 0.01)
	}
	if !near(a.Position, b.Position, 1e-9) {
		t.Errorf("one 0.1s step %v differs from ten 0.01s steps %v", a.Position, b.Position)
	}
}

func TestZoomClamp(t *testing.T) {
	cam := New(6, 5, 3, 45)

	for i := 0; i < 20; i++ {
		cam.ZoomBy(2)
	}
	if cam.Distance != cam.MaxDistance {
		t.Errorf("expected distance clamped to %f, got %f", cam.MaxDistance, cam.Distance)
	}
	for i := 0; i < 20; i++ {
		cam.ZoomBy(0.5)
	}
	if math.Abs(cam.Distance-cam.MinDistance) > 1e-12 {
		t.Errorf("expected distance clamped to %f, got %f", cam.MinDistance, cam.Distance)
	}

	cam.Reset()
	if cam.Distance != 6 {
		t.Errorf("expected reset to 6, got %f", cam.Distance)
	}
}
