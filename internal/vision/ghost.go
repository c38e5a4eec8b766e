package vision

import (
	"errors"
	"fmt"

	"portfolio3d/internal/scene"
	"portfolio3d/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// GhostPair is the glow surface and wireframe outline drawn over one source
// mesh. Either piece may be nil when it could not be built.
type GhostPair struct {
	Source  *scene.Node
	Glow    *scene.Node
	Outline *scene.Node

	host Host
}

// Nodes returns the pieces that exist.
func (g *GhostPair) Nodes() []*scene.Node {
	out := make([]*scene.Node, 0, 2)
	if g.Glow != nil {
		out = append(out, g.Glow)
	}
	if g.Outline != nil {
		out = append(out, g.Outline)
	}
	return out
}

// Sync copies the source mesh's current world matrix onto both pieces. It
// does nothing and returns false once the source has left the host scene.
func (g *GhostPair) Sync() bool {
	if g.host == nil || !g.host.Contains(g.Source) {
		return false
	}
	g.Source.RefreshWorld()
	for _, n := range g.Nodes() {
		n.Matrix = g.Source.WorldMatrix
		n.WorldMatrix = g.Source.WorldMatrix
	}
	return true
}

func (g *GhostPair) SetEnvelope(env float32) {
	if g.Glow != nil {
		if m, ok := g.Glow.Material.(*GlowMaterial); ok {
			m.SetEnvelope(env)
		}
	}
	if g.Outline != nil {
		if m, ok := g.Outline.Material.(*OutlineMaterial); ok {
			m.SetEnvelope(env)
		}
	}
}

func (g *GhostPair) SetClip(c ClipUniforms) {
	if g.Glow != nil {
		if m, ok := g.Glow.Material.(*GlowMaterial); ok {
			m.ClipUniforms = c
		}
	}
	if g.Outline != nil {
		if m, ok := g.Outline.Material.(*OutlineMaterial); ok {
			m.ClipUniforms = c
		}
	}
}

// Detach removes both pieces from the scene they were attached to.
func (g *GhostPair) Detach() {
	if g.host == nil {
		return
	}
	for _, n := range g.Nodes() {
		g.host.RemoveNode(n)
	}
}

// Factory builds ghost pairs.
type Factory struct {
	Accent        rl.Color
	OutlineColor  rl.Color
	BaseIntensity float32
	Alpha         float32
}

func DefaultFactory() Factory {
	return Factory{
		Accent:        rl.NewColor(0, 255, 255, 255),
		OutlineColor:  rl.NewColor(0, 255, 255, 255),
		BaseIntensity: 0.7,
		Alpha:         0.8,
	}
}

// CreateGhost builds the pieces for a single mesh without attaching them.
// A partial pair is returned when only one piece fails; an error is returned
// only when neither could be built.
func (f Factory) CreateGhost(src *scene.Node, clip ClipUniforms) (*GhostPair, error) {
	if src == nil {
		return nil, scene.ErrNoGeometry
	}
	src.RefreshWorld()
	pair := &GhostPair{Source: src}

	glowGeo, glowErr := src.Geometry.Clone()
	if glowErr == nil {
		glow := scene.NewMesh(src.Name+"#glow", glowGeo, &GlowMaterial{
			ClipUniforms:  clip,
			Emissive:      f.Accent,
			BaseIntensity: f.BaseIntensity,
			Intensity:     f.BaseIntensity,
			Alpha:         f.Alpha,
		})
		pinTo(glow, src.WorldMatrix, GlowRenderOrder)
		pair.Glow = glow
	}

	wireGeo, wireErr := src.Geometry.Wireframe()
	if wireErr == nil {
		outline := scene.NewMesh(src.Name+"#outline", wireGeo, &OutlineMaterial{
			ClipUniforms: clip,
			Color:        f.OutlineColor,
			Opacity:      1,
		})
		pinTo(outline, src.WorldMatrix, OutlineRenderOrder)
		pair.Outline = outline
	}

	if pair.Glow == nil && pair.Outline == nil {
		return nil, fmt.Errorf("ghost for %q: %w", src.Name, errors.Join(glowErr, wireErr))
	}
	if glowErr != nil || wireErr != nil {
		utils.Debug("Vision: partial ghost for %q (glow: %v, outline: %v)", src.Name, glowErr, wireErr)
	}
	return pair, nil
}

func pinTo(n *scene.Node, world rl.Matrix, order int) {
	n.MatrixAutoUpdate = false
	n.Matrix = world
	n.WorldMatrix = world
	n.DepthTest = false
	n.DepthWrite = false
	n.RenderOrder = order
}

// Build creates and attaches one ghost pair per mesh inside obj. Meshes that
// fail are skipped. Nothing is built when obj is no longer in host.
func (f Factory) Build(obj *scene.Node, host Host, clip ClipUniforms) []*GhostPair {
	if obj == nil || host == nil {
		return nil
	}
	if !host.Contains(obj) {
		utils.Debug("Vision: %q left its scene before ghosting, skipped", obj.Name)
		return nil
	}

	var pairs []*GhostPair
	for _, mesh := range obj.Meshes() {
		pair, err := f.CreateGhost(mesh, clip)
		if err != nil {
			utils.Debug("Vision: skipping mesh: %v", err)
			continue
		}
		pair.host = host
		for _, n := range pair.Nodes() {
			host.AddNode(n)
		}
		pairs = append(pairs, pair)
	}
	return pairs
}
