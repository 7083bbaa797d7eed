package skin

// Material indexes the renderer's material table.
type Material uint8

const (
	MaterialScaleA Material = iota
	MaterialScaleB
	MaterialHead
)

func (m Material) String() string {
	switch m {
	case MaterialScaleA:
		return "scale_a"
	case MaterialScaleB:
		return "scale_b"
	case MaterialHead:
		return "head"
	default:
		return "unknown"
	}
}

const (
	vertsPerSpan   = 2 * RingSize
	indicesPerSpan = 24
)

// faces lists the ring slot pairs stitched into quads, walking
// right, up, left, down around the outside.
var faces = [4][2]int{
	{RingRight, RingUp},
	{RingUp, RingLeft},
	{RingLeft, RingDown},
	{RingDown, RingRight},
}

// Submesh is the index range of one span.
type Submesh struct {
	Start    int // first index into Mesh.Indices
	Count    int
	Material Material
}

// Mesh holds flat render buffers. Positions and Normals hold three floats per
// vertex, UVs two.
type Mesh struct {
	Positions []float32
	Normals   []float32
	UVs       []float32
	Indices   []uint32
	Submeshes []Submesh
}

// VertexCount returns the number of vertices in the mesh.
func (m *Mesh) VertexCount() int { return len(m.Positions) / 3 }

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int { return len(m.Indices) / 3 }

// Materials returns the material of every submesh in order.
func (m *Mesh) Materials() []Material {
	out := make([]Material, len(m.Submeshes))
	for i, s := range m.Submeshes {
		out[i] = s.Material
	}
	return out
}

// Builder rebuilds a Mesh from sections, reusing its buffers between calls.
type Builder struct {
	// HeadSpans is the number of leading spans drawn with MaterialHead.
	HeadSpans int

	mesh  Mesh
	rings []CrossSection
}

// NewBuilder creates a builder.
func NewBuilder(headSpans int) *Builder {
	return &Builder{HeadSpans: headSpans}
}

// Mesh returns the last built mesh.
func (b *Builder) Mesh() *Mesh { return &b.mesh }

// Build clears and refills the mesh from sections ordered head to tail. With
// fewer than two sections there is nothing to stitch: the previous mesh is
// left untouched and ok is false.
func (b *Builder) Build(sections []Section) (mesh *Mesh, ok bool) {
	n := len(sections)
	if n < 2 {
		return &b.mesh, false
	}

	b.rings = b.rings[:0]
	for i := range sections {
		s := sections[i]
		b.rings = append(b.rings, NewCrossSection(s.Position, frame(sections, i), s.RadiusX, s.RadiusY))
	}

	m := &b.mesh
	m.Positions = m.Positions[:0]
	m.Normals = m.Normals[:0]
	m.UVs = m.UVs[:0]
	m.Indices = m.Indices[:0]
	m.Submeshes = m.Submeshes[:0]

	last := float32(n - 1)
	for span := 0; span < n-1; span++ {
		base := uint32(m.VertexCount())
		b.appendRing(b.rings[span], float32(span)/last)
		b.appendRing(b.rings[span+1], float32(span+1)/last)

		start := len(m.Indices)
		for _, f := range faces {
			ca, cb := base+uint32(f[0]), base+uint32(f[1])
			na, nb := ca+RingSize, cb+RingSize
			m.Indices = append(m.Indices, ca, na, nb, ca, nb, cb)
		}
		m.Submeshes = append(m.Submeshes, Submesh{
			Start:    start,
			Count:    indicesPerSpan,
			Material: b.material(span),
		})
	}
	return m, true
}

func (b *Builder) appendRing(cs CrossSection, v float32) {
	m := &b.mesh
	for k := 0; k < RingSize; k++ {
		p, nrm := cs.Vertices[k], cs.Normals[k]
		m.Positions = append(m.Positions, float32(p.X), float32(p.Y), float32(p.Z))
		m.Normals = append(m.Normals, float32(nrm.X), float32(nrm.Y), float32(nrm.Z))
		m.UVs = append(m.UVs, ringU[k], v)
	}
}

func (b *Builder) material(span int) Material {
	if span < b.HeadSpans {
		return MaterialHead
	}
	return Material(span % 2)
}
