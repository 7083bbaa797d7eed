package geom

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// GridType selects the lattice topology.
type GridType int

const (
	Square GridType = iota
	Hexagonal
)

func (g GridType) String() string {
	switch g {
	case Square:
		return "square"
	case Hexagonal:
		return "hexagonal"
	default:
		return fmt.Sprintf("GridType(%d)", int(g))
	}
}

// ParseGridType parses "square" or "hexagonal" (also "hex").
func ParseGridType(s string) (GridType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "square", "":
		return Square, nil
	case "hexagonal", "hex":
		return Hexagonal, nil
	default:
		return 0, fmt.Errorf("unknown grid type %q", s)
	}
}

var (
	sin60 = math.Sqrt(3) / 2
	cos60 = 0.5
)

// Lattice describes the grid the chain moves on. Grid points are Spacing
// apart; one move-cycle advances half of that (Step), so every position at
// rest lies on the half-step lattice and turns commit on full grid points.
type Lattice struct {
	Type    GridType
	Spacing float64
}

// NewLattice validates and returns a lattice.
func NewLattice(t GridType, spacing float64) (Lattice, error) {
	if spacing <= 0 || math.IsNaN(spacing) || math.IsInf(spacing, 0) {
		return Lattice{}, fmt.Errorf("grid spacing must be positive, got %v", spacing)
	}
	if t != Square && t != Hexagonal {
		return Lattice{}, fmt.Errorf("unsupported %v", t)
	}
	return Lattice{Type: t, Spacing: spacing}, nil
}

// Valid reports whether the lattice can be used for movement.
func (l Lattice) Valid() bool {
	return l.Spacing > 0 && (l.Type == Square || l.Type == Hexagonal)
}

// Step is the distance covered by one move-cycle.
func (l Lattice) Step() float64 {
	return l.Spacing / 2
}

// TurnAngle is the heading change of a single turn in radians.
func (l Lattice) TurnAngle() float64 {
	if l.Type == Hexagonal {
		return math.Pi / 3
	}
	return math.Pi / 2
}

// ArcRadius is the radius of the circle tangent to both legs of a corner
// whose legs are one Step long: Step for the square grid, Step*sqrt(3) for
// the hexagonal one.
func (l Lattice) ArcRadius() float64 {
	return l.Step() / math.Tan(l.TurnAngle()/2)
}

// Directions lists the unit headings available on the lattice, starting at
// Forward and sweeping by TurnAngle.
func (l Lattice) Directions() []r3.Vec {
	n := 4
	if l.Type == Hexagonal {
		n = 6
	}
	dirs := make([]r3.Vec, n)
	for i := range dirs {
		s, c := math.Sincos(float64(i) * l.TurnAngle())
		dirs[i] = r3.Vec{X: s, Z: c}
	}
	return dirs
}

// Snap moves v onto the nearest half-step lattice point. Y is rounded to the
// half step on both topologies.
func (l Lattice) Snap(v r3.Vec) r3.Vec {
	if !l.Valid() {
		return v
	}
	if l.Type == Square {
		return RoundToHalfStep(v, l.Spacing)
	}
	a, b := l.hexCoords(v)
	return l.hexPoint(math.Round(a), math.Round(b), v.Y)
}

// OnGrid reports whether v sits on a full grid point, the only place a turn
// may be committed.
func (l Lattice) OnGrid(v r3.Vec) bool {
	if !l.Valid() {
		return false
	}
	if l.Type == Square {
		s := l.Step()
		return even(v.X/s) && even(v.Z/s)
	}
	a, b := l.hexCoords(v)
	return even(a) && even(b)
}

// hexCoords expresses v in the half-step triangular basis
// u = (0, 0, s) and w = (s*sin60, 0, s*cos60).
func (l Lattice) hexCoords(v r3.Vec) (a, b float64) {
	s := l.Step()
	b = v.X / (s * sin60)
	a = (v.Z - b*s*cos60) / s
	return a, b
}

func (l Lattice) hexPoint(a, b, y float64) r3.Vec {
	s := l.Step()
	return r3.Vec{
		X: b * s * sin60,
		Y: math.Round(y/s) * s,
		Z: a*s + b*s*cos60,
	}
}

func even(f float64) bool {
	return int64(math.Round(f))%2 == 0
}
