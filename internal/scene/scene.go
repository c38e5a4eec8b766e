package scene

// Scene is a named graph root. It is the host that ghost overlays and
// world objects are attached to.
type Scene struct {
	Name string
	Root *Node
}

func New(name string) *Scene {
	return &Scene{Name: name, Root: NewNode(name)}
}

func (s *Scene) AddNode(n *Node) {
	if s == nil || n == nil {
		return
	}
	s.Root.Add(n)
}

// RemoveNode detaches n from wherever it sits inside this scene.
func (s *Scene) RemoveNode(n *Node) {
	if s == nil || n == nil || n.parent == nil {
		return
	}
	if !s.Contains(n) {
		return
	}
	n.parent.Remove(n)
}

// Contains reports whether n is currently attached under this scene's root.
func (s *Scene) Contains(n *Node) bool {
	if s == nil || n == nil || n == s.Root {
		return false
	}
	return n.Root() == s.Root
}

// Nodes returns the direct children of the root.
func (s *Scene) Nodes() []*Node {
	return s.Root.Children()
}

// Refresh recomputes every world matrix in the scene.
func (s *Scene) Refresh() {
	s.Root.RefreshWorld()
}
