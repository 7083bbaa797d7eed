// Package renderer draws the snake, the lattice and the HUD with raylib.
//
// The engine works in a Y-up frame with +Z forward and +X to the right when
// seen from behind. raylib is right-handed, so X is mirrored when vertices
// cross into raylib and triangle winding is reversed to match.
package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/gridsnake/chain"
	"github.com/pthm-cable/gridsnake/skin"
)

// Palette colors, indexed by skin.Material.
var (
	ColorScaleA = rl.Color{R: 70, G: 140, B: 60, A: 255}
	ColorScaleB = rl.Color{R: 110, G: 170, B: 70, A: 255}
	ColorHead   = rl.Color{R: 60, G: 120, B: 55, A: 255}
	ColorEye    = rl.Color{R: 20, G: 20, B: 25, A: 255}
	ColorEyeRim = rl.Color{R: 230, G: 220, B: 160, A: 255}
)

// light is the unit direction toward the key light, in engine space.
var light = r3.Unit(r3.Vec{X: 0.4, Y: 1, Z: -0.3})

// SnakeRenderer draws a skin mesh and the head attachments.
type SnakeRenderer struct {
	palette [3]rl.Color
	ambient float32
}

// NewSnakeRenderer creates a snake renderer with the default palette.
func NewSnakeRenderer() *SnakeRenderer {
	return &SnakeRenderer{
		palette: [3]rl.Color{
			skin.MaterialScaleA: ColorScaleA,
			skin.MaterialScaleB: ColorScaleB,
			skin.MaterialHead:   ColorHead,
		},
		ambient: 0.35,
	}
}

// Draw renders every submesh of m, then the eyes. Must be called between
// BeginMode3D and EndMode3D.
func (r *SnakeRenderer) Draw(m *skin.Mesh, att chain.Attachments, eyeRadius float64) {
	for _, sub := range m.Submeshes {
		base := r.palette[sub.Material]
		idx := m.Indices[sub.Start : sub.Start+sub.Count]
		for t := 0; t+2 < len(idx); t += 3 {
			a, b, c := idx[t], idx[t+1], idx[t+2]
			color := r.shade(base, m, a)
			// Reversed order keeps the faces outward after mirroring X.
			rl.DrawTriangle3D(vertex(m, a), vertex(m, c), vertex(m, b), color)
		}
	}

	er := float32(eyeRadius)
	for _, eye := range []r3.Vec{att.LeftEye, att.RightEye} {
		rl.DrawSphere(ToRL(eye), er*1.3, ColorEyeRim)
		rl.DrawSphere(ToRL(eye), er, ColorEye)
	}
}

// shade applies Lambert lighting from the normal of vertex i.
func (r *SnakeRenderer) shade(base rl.Color, m *skin.Mesh, i uint32) rl.Color {
	n := r3.Vec{
		X: float64(m.Normals[3*i]),
		Y: float64(m.Normals[3*i+1]),
		Z: float64(m.Normals[3*i+2]),
	}
	diffuse := float32(max(r3.Dot(n, light), 0))
	k := r.ambient + (1-r.ambient)*diffuse
	return rl.Color{
		R: uint8(float32(base.R) * k),
		G: uint8(float32(base.G) * k),
		B: uint8(float32(base.B) * k),
		A: base.A,
	}
}

func vertex(m *skin.Mesh, i uint32) rl.Vector3 {
	return rl.NewVector3(-m.Positions[3*i], m.Positions[3*i+1], m.Positions[3*i+2])
}

// ToRL converts an engine point to raylib space.
func ToRL(v r3.Vec) rl.Vector3 {
	return rl.NewVector3(float32(-v.X), float32(v.Y), float32(v.Z))
}
