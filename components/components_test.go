package components

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/geom"
)

func TestMotionCommitOnlyOnGrid(t *testing.T) {
	m := NewMotion(r3.Vec{}, geom.Forward)
	m.SetPending(geom.Right)

	if m.CommitPending(false) {
		t.Fatal("expected commit to be refused off the grid")
	}
	if m.Direction() != geom.Forward {
		t.Errorf("expected direction to stay %v, got %v", geom.Forward, m.Direction())
	}

	if !m.CommitPending(true) {
		t.Fatal("expected commit on the grid")
	}
	if m.Direction() != geom.Right {
		t.Errorf("expected direction %v, got %v", geom.Right, m.Direction())
	}
}

func TestMotionSettle(t *testing.T) {
	m := NewMotion(r3.Vec{Z: -1}, geom.Forward)
	m.Plan(r3.Vec{Z: -1}, r3.Vec{Z: -0.5})
	m.Settle()
	if m.Start() != (r3.Vec{Z: -0.5}) {
		t.Errorf("expected start to become the target, got %v", m.Start())
	}
}

func TestTurnTwoHalves(t *testing.T) {
	var turn Turn
	center := r3.Vec{X: 0.5, Z: -0.5}
	start := r3.Vec{Z: -0.5}
	mid := r3.Vec{X: 0.5 - math.Sqrt2/4, Z: -0.5 + math.Sqrt2/4}
	final := r3.Vec{X: 0.5}

	turn.Begin(center, start, mid)
	if !turn.Turning() || turn.HalfDone() {
		t.Fatalf("after Begin: turning=%v halfDone=%v, want true/false", turn.Turning(), turn.HalfDone())
	}

	pos, ok := turn.EndCycle()
	if !ok || pos != mid {
		t.Fatalf("first EndCycle = %v, %v; want %v, true", pos, ok, mid)
	}
	if !turn.Turning() || !turn.HalfDone() {
		t.Fatalf("after first half: turning=%v halfDone=%v, want true/true", turn.Turning(), turn.HalfDone())
	}

	turn.Resume(final)
	if turn.Start() != mid || turn.Target() != final {
		t.Errorf("Resume: arc %v -> %v, want %v -> %v", turn.Start(), turn.Target(), mid, final)
	}
	if turn.Center() != center {
		t.Errorf("Resume must keep the center, got %v", turn.Center())
	}

	pos, ok = turn.EndCycle()
	if !ok || pos != final {
		t.Fatalf("second EndCycle = %v, %v; want %v, true", pos, ok, final)
	}
	if turn.Turning() || turn.HalfDone() {
		t.Errorf("after second half: turning=%v halfDone=%v, want false/false", turn.Turning(), turn.HalfDone())
	}

	if _, ok := turn.EndCycle(); ok {
		t.Error("expected EndCycle on an idle turn to report false")
	}
}

func TestTurnPositionStaysOnArc(t *testing.T) {
	var turn Turn
	center := r3.Vec{X: 0.5, Z: -0.5}
	turn.Begin(center, r3.Vec{Z: -0.5}, r3.Vec{X: 0.5, Z: 0})

	for _, f := range []float64{0, 0.3, 0.6, 1} {
		p := turn.Position(f)
		if d := r3.Norm(r3.Sub(p, center)); math.Abs(d-0.5) > 1e-9 {
			t.Errorf("f=%v: expected radius 0.5, got %f", f, d)
		}
	}
}

func TestPoseOffset(t *testing.T) {
	p := NewPose(r3.Vec{X: 1})
	p.Face(geom.Right)

	// Facing +X: forward is +X, right is -Z.
	got := p.Offset(2, 1, 0.5)
	want := r3.Vec{X: 3, Y: 0.5, Z: -1}
	if !geom.ApproxEqual(got, want, 1e-9) {
		t.Errorf("expected %v, got %v", want, got)
	}

	before := p.Rotation
	p.Face(r3.Vec{})
	if p.Rotation != before {
		t.Error("expected zero direction to keep the orientation")
	}
}

func TestTurnTangent(t *testing.T) {
	var turn Turn
	// Quarter circle from -Z to +X around the origin.
	turn.Begin(r3.Vec{}, r3.Vec{Z: -1}, r3.Vec{X: 1})

	got := r3.Unit(turn.Tangent(0))
	if !geom.ApproxEqual(got, r3.Vec{X: 1}, 1e-9) {
		t.Errorf("expected tangent +X at the start, got %v", got)
	}
	got = r3.Unit(turn.Tangent(1))
	if !geom.ApproxEqual(got, r3.Vec{Z: 1}, 1e-9) {
		t.Errorf("expected tangent +Z at the end, got %v", got)
	}
}
