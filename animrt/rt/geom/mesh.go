package geom

import (
	"github.com/gekko3d/ambient/animrt/rt/core"
	"github.com/go-gl/mathgl/mgl32"
)

// Vertex is the per-vertex record uploaded to the vertex buffer.
type Vertex struct {
	Position [3]float32 `layout:"vertex" format:"float3" location:"0"`
	Normal   [3]float32 `layout:"vertex" format:"float3" location:"1"`
}

type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
}

const (
	DefaultRings    = 12
	DefaultSegments = 18
)

// Build returns the mesh for a shape, sized to fit a unit cube centred on the origin.
func Build(shape core.Shape) Mesh {
	switch shape {
	case core.Sphere:
		return SphereMesh(DefaultRings, DefaultSegments)
	case core.Pyramid:
		return PyramidMesh()
	default:
		return CubeMesh()
	}
}

// CubeMesh builds six axis-aligned quads with per-face normals.
func CubeMesh() Mesh {
	faces := [6][3]mgl32.Vec3{
		// normal, u, v with u × v = normal
		{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {0, 0, 1}, {1, 0, 0}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {0, 1, 0}, {1, 0, 0}},
	}
	m := Mesh{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range faces {
		n, u, v := f[0], f[1].Mul(0.5), f[2].Mul(0.5)
		c := n.Mul(0.5)
		base := uint32(len(m.Vertices))
		for _, p := range []mgl32.Vec3{
			c.Sub(u).Sub(v),
			c.Add(u).Sub(v),
			c.Add(u).Add(v),
			c.Sub(u).Add(v),
		} {
			m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: n})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return m
}

// SphereMesh builds a latitude/longitude sphere of radius 0.5. Rings are
// clamped to at least 2 and segments to at least 3. Pole rows emit one
// triangle per segment so no degenerate triangles are produced.
func SphereMesh(rings, segments int) Mesh {
	if rings < 2 {
		rings = 2
	}
	if segments < 3 {
		segments = 3
	}
	stride := uint32(segments + 1)
	m := Mesh{
		Vertices: make([]Vertex, 0, (rings+1)*(segments+1)),
		Indices:  make([]uint32, 0, 6*segments*(rings-1)),
	}
	for r := 0; r <= rings; r++ {
		theta := float64(r) / float64(rings) * pi
		st, ct := sincos(theta)
		for s := 0; s <= segments; s++ {
			phi := float64(s) / float64(segments) * 2 * pi
			sp, cp := sincos(phi)
			n := mgl32.Vec3{st * cp, ct, st * sp}
			m.Vertices = append(m.Vertices, Vertex{Position: n.Mul(0.5), Normal: n})
		}
	}
	for r := 0; r < rings; r++ {
		for s := 0; s < segments; s++ {
			a := uint32(r)*stride + uint32(s)
			b := a + stride
			if r != rings-1 {
				m.Indices = append(m.Indices, a+1, b+1, b)
			}
			if r != 0 {
				m.Indices = append(m.Indices, a, a+1, b)
			}
		}
	}
	return m
}

// PyramidMesh builds four slanted triangular faces and a quad base. Face
// normals come from the cross product of each face's edges.
func PyramidMesh() Mesh {
	apex := mgl32.Vec3{0, 0.5, 0}
	b := [4]mgl32.Vec3{
		{-0.5, -0.5, -0.5},
		{0.5, -0.5, -0.5},
		{0.5, -0.5, 0.5},
		{-0.5, -0.5, 0.5},
	}
	m := Mesh{
		Vertices: make([]Vertex, 0, 16),
		Indices:  make([]uint32, 0, 18),
	}
	tri := func(p0, p1, p2 mgl32.Vec3) {
		n := p1.Sub(p0).Cross(p2.Sub(p0)).Normalize()
		base := uint32(len(m.Vertices))
		m.Vertices = append(m.Vertices,
			Vertex{Position: p0, Normal: n},
			Vertex{Position: p1, Normal: n},
			Vertex{Position: p2, Normal: n},
		)
		m.Indices = append(m.Indices, base, base+1, base+2)
	}
	tri(b[3], b[2], apex)
	tri(b[2], b[1], apex)
	tri(b[1], b[0], apex)
	tri(b[0], b[3], apex)

	n := b[1].Sub(b[0]).Cross(b[2].Sub(b[0])).Normalize()
	base := uint32(len(m.Vertices))
	for _, p := range b {
		m.Vertices = append(m.Vertices, Vertex{Position: p, Normal: n})
	}
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	return m
}
