package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Material describes how a node is drawn. The renderer switches on the
// concrete type.
type Material interface {
	MaterialName() string
}

// BasicMaterial is a flat-shaded colour.
type BasicMaterial struct {
	Color rl.Color
}

func (BasicMaterial) MaterialName() string { return "basic" }

// Node is a transform in the scene graph, optionally carrying geometry.
type Node struct {
	Name     string
	Position rl.Vector3
	Rotation rl.Vector3 // Euler XYZ, radians
	Scale    rl.Vector3

	// When MatrixAutoUpdate is false, Matrix is used as the local transform
	// as-is instead of being composed from Position/Rotation/Scale.
	MatrixAutoUpdate bool
	Matrix           rl.Matrix
	WorldMatrix      rl.Matrix

	Geometry    *Geometry
	Material    Material
	RenderOrder int
	DepthTest   bool
	DepthWrite  bool
	Visible     bool

	parent   *Node
	children []*Node
}

func NewNode(name string) *Node {
	return &Node{
		Name:             name,
		Scale:            rl.NewVector3(1, 1, 1),
		MatrixAutoUpdate: true,
		Matrix:           rl.MatrixIdentity(),
		WorldMatrix:      rl.MatrixIdentity(),
		DepthTest:        true,
		DepthWrite:       true,
		Visible:          true,
	}
}

func NewMesh(name string, geometry *Geometry, material Material) *Node {
	n := NewNode(name)
	n.Geometry = geometry
	n.Material = material
	return n
}

func (n *Node) Parent() *Node     { return n.parent }
func (n *Node) Children() []*Node { return n.children }
func (n *Node) IsMesh() bool      { return n.Geometry != nil }

// Add attaches child, detaching it from any previous parent first.
func (n *Node) Add(child *Node) {
	if child == nil || child == n {
		return
	}
	if child.parent != nil {
		child.parent.Remove(child)
	}
	child.parent = n
	n.children = append(n.children, child)
}

// Remove detaches child. It reports whether child was attached to n.
func (n *Node) Remove(child *Node) bool {
	for i, c := range n.children {
		if c == child {
			copy(n.children[i:], n.children[i+1:])
			n.children[len(n.children)-1] = nil
			n.children = n.children[:len(n.children)-1]
			child.parent = nil
			return true
		}
	}
	return false
}

// Root returns the top-most ancestor.
func (n *Node) Root() *Node {
	r := n
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Traverse visits n and its descendants depth-first, parents first.
func (n *Node) Traverse(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.Traverse(fn)
	}
}

// Meshes returns every node under n (inclusive) that carries geometry.
func (n *Node) Meshes() []*Node {
	var out []*Node
	n.Traverse(func(c *Node) {
		if c.IsMesh() {
			out = append(out, c)
		}
	})
	return out
}

// LocalMatrix composes T * R * S, or returns Matrix when auto update is off.
func (n *Node) LocalMatrix() rl.Matrix {
	if !n.MatrixAutoUpdate {
		return n.Matrix
	}
	s := rl.MatrixScale(n.Scale.X, n.Scale.Y, n.Scale.Z)
	r := rl.MatrixRotateXYZ(n.Rotation)
	t := rl.MatrixTranslate(n.Position.X, n.Position.Y, n.Position.Z)
	return rl.MatrixMultiply(rl.MatrixMultiply(s, r), t)
}

// RefreshWorld recomputes world matrices along the ancestor chain down to n
// and then for all of n's descendants.
func (n *Node) RefreshWorld() {
	chain := []*Node{}
	for p := n; p != nil; p = p.parent {
		chain = append(chain, p)
	}
	parentWorld := rl.MatrixIdentity()
	for i := len(chain) - 1; i >= 1; i-- {
		c := chain[i]
		c.WorldMatrix = rl.MatrixMultiply(c.LocalMatrix(), parentWorld)
		parentWorld = c.WorldMatrix
	}
	n.updateSubtree(parentWorld)
}

func (n *Node) updateSubtree(parentWorld rl.Matrix) {
	n.WorldMatrix = rl.MatrixMultiply(n.LocalMatrix(), parentWorld)
	for _, c := range n.children {
		c.updateSubtree(n.WorldMatrix)
	}
}

// WorldBounds is the world-space AABB around every mesh under n. ok is false
// when n holds no geometry.
func WorldBounds(n *Node) (box rl.BoundingBox, ok bool) {
	if n == nil {
		return box, false
	}
	n.RefreshWorld()
	n.Traverse(func(c *Node) {
		if !c.IsMesh() || len(c.Geometry.Vertices) == 0 {
			return
		}
		local := c.Geometry.Bounds()
		for _, corner := range Corners(local) {
			p := rl.Vector3Transform(corner, c.WorldMatrix)
			if !ok {
				box = rl.BoundingBox{Min: p, Max: p}
				ok = true
				continue
			}
			box.Min = rl.Vector3Min(box.Min, p)
			box.Max = rl.Vector3Max(box.Max, p)
		}
	})
	return box, ok
}

// Corners lists the eight corners of box.
func Corners(box rl.BoundingBox) [8]rl.Vector3 {
	lo, hi := box.Min, box.Max
	return [8]rl.Vector3{
		{X: lo.X, Y: lo.Y, Z: lo.Z},
		{X: lo.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: lo.Z},
		{X: hi.X, Y: hi.Y, Z: hi.Z},
		{X: hi.X, Y: hi.Y, Z: lo.Z},
		{X: hi.X, Y: lo.Y, Z: hi.Z},
		{X: lo.X, Y: hi.Y, Z: hi.Z},
	}
}
