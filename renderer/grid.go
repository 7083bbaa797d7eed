package renderer

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/geom"
)

// Grid colors
var (
	ColorGridLine  = rl.Color{R: 60, G: 66, B: 74, A: 255}
	ColorGridPoint = rl.Color{R: 120, G: 130, B: 140, A: 255}
)

// GridRenderer draws the lattice around a focus point.
type GridRenderer struct {
	extent int // grid points drawn on each side of the focus
}

// NewGridRenderer creates a grid renderer drawing extent points each way.
func NewGridRenderer(extent int) *GridRenderer {
	if extent < 1 {
		extent = 1
	}
	return &GridRenderer{extent: extent}
}

// Draw renders the full grid points of lat near focus and the lines between
// them. Must be called between BeginMode3D and EndMode3D.
func (r *GridRenderer) Draw(lat geom.Lattice, focus r3.Vec) {
	if !lat.Valid() {
		return
	}

	u, w, links := basis(lat)
	a0, b0 := gridCoords(u, w, focus)

	for i := a0 - r.extent; i <= a0+r.extent; i++ {
		for j := b0 - r.extent; j <= b0+r.extent; j++ {
			p := r3.Add(r3.Scale(float64(i), u), r3.Scale(float64(j), w))
			from := ToRL(p)
			for _, d := range links {
				rl.DrawLine3D(from, ToRL(r3.Add(p, d)), ColorGridLine)
			}
			rl.DrawCube(from, 0.04, 0.01, 0.04, ColorGridPoint)
		}
	}
}

// basis returns two lattice vectors spanning the full grid points and the
// links drawn from every point.
func basis(lat geom.Lattice) (u, w r3.Vec, links []r3.Vec) {
	dirs := lat.Directions()
	u = r3.Scale(lat.Spacing, dirs[0])
	w = r3.Scale(lat.Spacing, dirs[1])
	links = []r3.Vec{u, w}
	if lat.Type == geom.Hexagonal {
		links = append(links, r3.Scale(lat.Spacing, dirs[2]))
	}
	return u, w, links
}

// gridCoords expresses p in the (u, w) basis on the ground plane, rounded.
func gridCoords(u, w, p r3.Vec) (a, b int) {
	det := u.Z*w.X - u.X*w.Z
	if math.Abs(det) < 1e-12 {
		return 0, 0
	}
	fa := (p.Z*w.X - p.X*w.Z) / det
	fb := (u.Z*p.X - u.X*p.Z) / det
	return int(math.Round(fa)), int(math.Round(fb))
}
