// Package world keeps track of what lives in each scene: which nodes the
// player can interact with, what they are, and what has been picked up.
package world

import (
	"portfolio3d/internal/scene"
	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Kind int

const (
	KindProp Kind = iota
	KindPortal
	KindReturnPortal
	KindGalleryFrame
	KindCollision
)

var kindNames = map[Kind]string{
	KindProp:         "prop",
	KindPortal:       "portal",
	KindReturnPortal: "return-portal",
	KindGalleryFrame: "gallery-frame",
	KindCollision:    "collision",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return KindProp, false
}

// Meta describes a registered node. It is kept beside the node, never on it.
type Meta struct {
	Kind        Kind
	Label       string
	Destination vision.SceneContext
	ArtIndex    int
	Collectible bool
}

// Registry maps scene contexts to their scenes and interactive nodes.
type Registry struct {
	scenes  map[vision.SceneContext]*scene.Scene
	objects map[vision.SceneContext][]*scene.Node
	meta    map[*scene.Node]Meta
	home    map[*scene.Node]vision.SceneContext
}

func NewRegistry() *Registry {
	return &Registry{
		scenes:  make(map[vision.SceneContext]*scene.Scene),
		objects: make(map[vision.SceneContext][]*scene.Node),
		meta:    make(map[*scene.Node]Meta),
		home:    make(map[*scene.Node]vision.SceneContext),
	}
}

func (r *Registry) AddScene(ctx vision.SceneContext, s *scene.Scene) {
	r.scenes[ctx] = s
}

func (r *Registry) Scene(ctx vision.SceneContext) (*scene.Scene, bool) {
	s, ok := r.scenes[ctx]
	return s, ok
}

// Host implements vision.HostProvider.
func (r *Registry) Host(ctx vision.SceneContext) (vision.Host, bool) {
	s, ok := r.scenes[ctx]
	if !ok {
		return nil, false
	}
	return s, true
}

// Contexts lists the registered scene contexts.
func (r *Registry) Contexts() []vision.SceneContext {
	out := make([]vision.SceneContext, 0, len(r.scenes))
	for ctx := range r.scenes {
		out = append(out, ctx)
	}
	return out
}

// Register records n under ctx and attaches it to that scene if needed.
// Registering a node again replaces its metadata.
func (r *Registry) Register(ctx vision.SceneContext, n *scene.Node, m Meta) {
	if n == nil {
		return
	}
	if prev, ok := r.home[n]; ok && prev != ctx {
		r.Unregister(n)
	}
	if _, ok := r.meta[n]; !ok {
		r.objects[ctx] = append(r.objects[ctx], n)
	}
	r.meta[n] = m
	r.home[n] = ctx
	if s, ok := r.scenes[ctx]; ok && !s.Contains(n) {
		s.AddNode(n)
	}
}

// Unregister forgets n. The node stays wherever it is in the scene graph.
func (r *Registry) Unregister(n *scene.Node) {
	ctx, ok := r.home[n]
	if !ok {
		return
	}
	list := r.objects[ctx]
	for i, o := range list {
		if o == n {
			r.objects[ctx] = append(list[:i], list[i+1:]...)
			break
		}
	}
	delete(r.meta, n)
	delete(r.home, n)
}

func (r *Registry) Meta(n *scene.Node) (Meta, bool) {
	m, ok := r.meta[n]
	return m, ok
}

// Objects returns every registered node of ctx still attached to its scene.
func (r *Registry) Objects(ctx vision.SceneContext) []*scene.Node {
	return r.filter(ctx, func(Meta) bool { return true })
}

// Candidates implements vision.CandidateSource. Collision volumes are never
// candidates.
func (r *Registry) Candidates(ctx vision.SceneContext) []*scene.Node {
	return r.filter(ctx, func(m Meta) bool { return m.Kind != KindCollision })
}

func (r *Registry) Colliders(ctx vision.SceneContext) []*scene.Node {
	return r.filter(ctx, func(m Meta) bool { return m.Kind == KindCollision })
}

func (r *Registry) filter(ctx vision.SceneContext, keep func(Meta) bool) []*scene.Node {
	s := r.scenes[ctx]
	var out []*scene.Node
	for _, n := range r.objects[ctx] {
		if s != nil && !s.Contains(n) {
			continue
		}
		if keep(r.meta[n]) {
			out = append(out, n)
		}
	}
	return out
}

// Nearest returns the closest candidate of ctx whose bounds centre is within
// reach of pos.
func (r *Registry) Nearest(ctx vision.SceneContext, pos rl.Vector3, reach float32) (*scene.Node, Meta, bool) {
	var best *scene.Node
	bestDist := reach
	for _, n := range r.Candidates(ctx) {
		box, ok := scene.WorldBounds(n)
		if !ok {
			continue
		}
		center := rl.Vector3Scale(rl.Vector3Add(box.Min, box.Max), 0.5)
		if d := rl.Vector3Distance(center, pos); d <= bestDist {
			best, bestDist = n, d
		}
	}
	if best == nil {
		return nil, Meta{}, false
	}
	return best, r.meta[best], true
}

// Blocked reports whether a sphere at pos overlaps any collision volume.
func (r *Registry) Blocked(ctx vision.SceneContext, pos rl.Vector3, radius float32) bool {
	for _, n := range r.Colliders(ctx) {
		box, ok := scene.WorldBounds(n)
		if !ok {
			continue
		}
		if rl.CheckCollisionBoxSphere(box, pos, radius) {
			return true
		}
	}
	return false
}

var (
	_ vision.CandidateSource = (*Registry)(nil)
	_ vision.HostProvider    = (*Registry)(nil)
)
