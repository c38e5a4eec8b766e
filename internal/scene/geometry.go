package scene

import (
	"errors"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

var ErrNoGeometry = errors.New("scene: missing geometry")

// Geometry is a vertex soup in local space. Triangle geometry is indexed in
// threes (or unindexed when Indices is empty); line geometry in pairs.
type Geometry struct {
	Vertices []rl.Vector3
	Indices  []uint16
	Lines    bool
}

// Clone returns a deep copy safe to hand to another node.
func (g *Geometry) Clone() (*Geometry, error) {
	if g == nil || len(g.Vertices) == 0 {
		return nil, ErrNoGeometry
	}
	c := &Geometry{
		Vertices: make([]rl.Vector3, len(g.Vertices)),
		Lines:    g.Lines,
	}
	copy(c.Vertices, g.Vertices)
	if len(g.Indices) > 0 {
		c.Indices = make([]uint16, len(g.Indices))
		copy(c.Indices, g.Indices)
	}
	return c, nil
}

// Bounds returns the local-space AABB.
func (g *Geometry) Bounds() rl.BoundingBox {
	if g == nil || len(g.Vertices) == 0 {
		return rl.BoundingBox{}
	}
	box := rl.BoundingBox{Min: g.Vertices[0], Max: g.Vertices[0]}
	for _, v := range g.Vertices[1:] {
		box.Min = rl.Vector3Min(box.Min, v)
		box.Max = rl.Vector3Max(box.Max, v)
	}
	return box
}

// Triangles calls fn for every triangle of a triangle geometry.
func (g *Geometry) Triangles(fn func(a, b, c rl.Vector3)) {
	if g == nil || g.Lines {
		return
	}
	if len(g.Indices) == 0 {
		for i := 0; i+2 < len(g.Vertices); i += 3 {
			fn(g.Vertices[i], g.Vertices[i+1], g.Vertices[i+2])
		}
		return
	}
	n := uint16(len(g.Vertices))
	for i := 0; i+2 < len(g.Indices); i += 3 {
		a, b, c := g.Indices[i], g.Indices[i+1], g.Indices[i+2]
		if a >= n || b >= n || c >= n {
			continue
		}
		fn(g.Vertices[a], g.Vertices[b], g.Vertices[c])
	}
}

// Segments calls fn for every segment of a line geometry.
func (g *Geometry) Segments(fn func(a, b rl.Vector3)) {
	if g == nil || !g.Lines {
		return
	}
	if len(g.Indices) == 0 {
		for i := 0; i+1 < len(g.Vertices); i += 2 {
			fn(g.Vertices[i], g.Vertices[i+1])
		}
		return
	}
	n := uint16(len(g.Vertices))
	for i := 0; i+1 < len(g.Indices); i += 2 {
		a, b := g.Indices[i], g.Indices[i+1]
		if a >= n || b >= n {
			continue
		}
		fn(g.Vertices[a], g.Vertices[b])
	}
}

type edge struct{ a, b rl.Vector3 }

func orderedEdge(a, b rl.Vector3) edge {
	if a.X < b.X || (a.X == b.X && (a.Y < b.Y || (a.Y == b.Y && a.Z < b.Z))) {
		return edge{a, b}
	}
	return edge{b, a}
}

// Wireframe builds a line geometry holding each distinct triangle edge once.
func (g *Geometry) Wireframe() (*Geometry, error) {
	if g == nil || len(g.Vertices) == 0 {
		return nil, ErrNoGeometry
	}
	if g.Lines {
		return g.Clone()
	}

	seen := make(map[edge]struct{})
	wire := &Geometry{Lines: true}
	add := func(a, b rl.Vector3) {
		e := orderedEdge(a, b)
		if _, ok := seen[e]; ok {
			return
		}
		seen[e] = struct{}{}
		wire.Vertices = append(wire.Vertices, e.a, e.b)
	}
	g.Triangles(func(a, b, c rl.Vector3) {
		add(a, b)
		add(b, c)
		add(c, a)
	})
	if len(wire.Vertices) == 0 {
		return nil, ErrNoGeometry
	}
	return wire, nil
}

// BoxGeometry is an axis-aligned box centred on the origin.
func BoxGeometry(w, h, d float32) *Geometry {
	x, y, z := w/2, h/2, d/2
	return &Geometry{
		Vertices: []rl.Vector3{
			{X: -x, Y: -y, Z: z}, {X: x, Y: -y, Z: z}, {X: x, Y: y, Z: z}, {X: -x, Y: y, Z: z},
			{X: -x, Y: -y, Z: -z}, {X: x, Y: -y, Z: -z}, {X: x, Y: y, Z: -z}, {X: -x, Y: y, Z: -z},
		},
		Indices: []uint16{
			0, 1, 2, 0, 2, 3, // front
			5, 4, 7, 5, 7, 6, // back
			4, 0, 3, 4, 3, 7, // left
			1, 5, 6, 1, 6, 2, // right
			3, 2, 6, 3, 6, 7, // top
			4, 5, 1, 4, 1, 0, // bottom
		},
	}
}

// PlaneGeometry is a w x h quad in the XY plane facing +Z.
func PlaneGeometry(w, h float32) *Geometry {
	x, y := w/2, h/2
	return &Geometry{
		Vertices: []rl.Vector3{
			{X: -x, Y: -y}, {X: x, Y: -y}, {X: x, Y: y}, {X: -x, Y: y},
		},
		Indices: []uint16{0, 1, 2, 0, 2, 3},
	}
}

// CylinderGeometry is a capped cylinder along Y centred on the origin. A
// zero top radius gives a cone.
func CylinderGeometry(radiusTop, radiusBottom, height float32, segments int) *Geometry {
	segments = max(segments, 3)
	g := &Geometry{}
	y := height / 2
	for i := 0; i < segments; i++ {
		a := 2 * math32.Pi * float32(i) / float32(segments)
		s, c := math32.Sincos(a)
		g.Vertices = append(g.Vertices,
			rl.NewVector3(radiusTop*s, y, radiusTop*c),
			rl.NewVector3(radiusBottom*s, -y, radiusBottom*c),
		)
	}
	top := uint16(len(g.Vertices))
	g.Vertices = append(g.Vertices, rl.NewVector3(0, y, 0), rl.NewVector3(0, -y, 0))
	bottom := top + 1
	for i := 0; i < segments; i++ {
		t0, b0 := uint16(2*i), uint16(2*i+1)
		t1, b1 := uint16(2*((i+1)%segments)), uint16(2*((i+1)%segments)+1)
		g.Indices = append(g.Indices,
			t0, b0, b1, t0, b1, t1, // side
			top, t0, t1,
			bottom, b1, b0,
		)
	}
	return g
}

// SphereGeometry is a UV sphere centred on the origin.
func SphereGeometry(radius float32, segments int) *Geometry {
	segments = max(segments, 3)
	rings := max(segments/2, 2)
	g := &Geometry{}
	for r := 0; r <= rings; r++ {
		phi := math32.Pi * float32(r) / float32(rings)
		sp, cp := math32.Sincos(phi)
		for i := 0; i <= segments; i++ {
			theta := 2 * math32.Pi * float32(i) / float32(segments)
			st, ct := math32.Sincos(theta)
			g.Vertices = append(g.Vertices, rl.NewVector3(radius*sp*st, radius*cp, radius*sp*ct))
		}
	}
	stride := uint16(segments + 1)
	for r := 0; r < rings; r++ {
		for i := 0; i < segments; i++ {
			a := uint16(r)*stride + uint16(i)
			b := a + stride
			g.Indices = append(g.Indices, a, b, b+1, a, b+1, a+1)
		}
	}
	return g
}
