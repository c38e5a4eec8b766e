// Package engine3D draws scenes with raylib and provides the camera and
// viewport the vision overlay classifies against.
package engine3D

import (
	"sort"

	"portfolio3d/internal/engine3D/shader"
	"portfolio3d/internal/scene"
	"portfolio3d/internal/utils"
	"portfolio3d/internal/vision"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// ArtworkMaterial maps a texture onto a plane.
type ArtworkMaterial struct {
	Texture rl.Texture2D
	Tint    rl.Color
}

func (*ArtworkMaterial) MaterialName() string { return "artwork" }

// Stats counts what the last Draw submitted.
type Stats struct {
	Meshes int
	Ghosts int
}

type Renderer struct {
	Cam       rl.Camera3D
	Near, Far float32
	Sky       rl.Color
	Light     rl.Vector3

	ghost         *shader.Ghost
	width, height int
	stats         Stats
}

func NewRenderer(fovy float32, width, height int) *Renderer {
	return &Renderer{
		Cam: rl.Camera3D{
			Position:   rl.NewVector3(0, 1.6, 6),
			Target:     rl.NewVector3(0, 1.6, 0),
			Up:         rl.NewVector3(0, 1, 0),
			Fovy:       fovy,
			Projection: rl.CameraPerspective,
		},
		// raylib's own clip distances, so classification sees what BeginMode3D draws.
		Near:   0.01,
		Far:    1000,
		Sky:    rl.NewColor(20, 24, 40, 255),
		Light:  rl.Vector3Normalize(rl.NewVector3(0.4, 1, 0.3)),
		width:  width,
		height: height,
	}
}

// Init compiles the ghost shaders. Without them ghosts are not drawn, and
// the rest of the scene still is.
func (r *Renderer) Init() {
	g, err := shader.LoadGhost()
	if err != nil {
		utils.Warn("Vision ghosts disabled: %v", err)
		return
	}
	r.ghost = g
}

func (r *Renderer) Close() {
	if r.ghost != nil {
		r.ghost.Unload()
		r.ghost = nil
	}
}

func (r *Renderer) Stats() Stats { return r.stats }

// ScreenSize implements vision.ViewportProvider.
func (r *Renderer) ScreenSize() (int, int) {
	if rl.IsWindowReady() {
		r.width, r.height = rl.GetScreenWidth(), rl.GetScreenHeight()
	}
	return r.width, r.height
}

// Camera implements vision.CameraProvider with the matrices BeginMode3D uses.
func (r *Renderer) Camera() (vision.CameraState, bool) {
	w, h := r.ScreenSize()
	if w <= 0 || h <= 0 {
		return vision.CameraState{}, false
	}
	return CameraState(r.Cam, float32(w)/float32(h), r.Near, r.Far), true
}

// CameraState derives view and projection matrices from a raylib camera.
func CameraState(cam rl.Camera3D, aspect, near, far float32) vision.CameraState {
	return vision.CameraState{
		View:       rl.MatrixLookAt(cam.Position, cam.Target, cam.Up),
		Projection: rl.MatrixPerspective(cam.Fovy*rl.Deg2rad, aspect, near, far),
		Position:   cam.Position,
	}
}

// DrawOrder lists the visible meshes of s, lowest render order first. Ties
// keep scene order.
func DrawOrder(s *scene.Scene) []*scene.Node {
	var out []*scene.Node
	var walk func(n *scene.Node)
	walk = func(n *scene.Node) {
		if !n.Visible {
			return
		}
		if n.IsMesh() {
			out = append(out, n)
		}
		for _, c := range n.Children() {
			walk(c)
		}
	}
	walk(s.Root)
	sort.SliceStable(out, func(i, j int) bool { return out[i].RenderOrder < out[j].RenderOrder })
	return out
}

// Draw renders s from the current camera. The caller owns BeginDrawing.
func (r *Renderer) Draw(s *scene.Scene) {
	r.stats = Stats{}
	rl.ClearBackground(r.Sky)
	if s == nil {
		return
	}
	s.Refresh()

	rl.BeginMode3D(r.Cam)
	rl.DisableBackfaceCulling()
	for _, n := range DrawOrder(s) {
		r.drawNode(n)
	}
	rl.EnableBackfaceCulling()
	rl.EndMode3D()
}

func (r *Renderer) drawNode(n *scene.Node) {
	switch m := n.Material.(type) {
	case *vision.GlowMaterial:
		if r.ghost == nil {
			return
		}
		r.withGhostState(n, r.ghost.Glow.Shader, func() {
			r.ghost.ApplyGlow(m)
			rl.BeginBlendMode(rl.BlendAdditive)
			drawTriangles(n, func(rl.Vector3) rl.Color { return rl.White })
			rl.EndBlendMode()
		})
		r.stats.Ghosts++
	case *vision.OutlineMaterial:
		if r.ghost == nil {
			return
		}
		r.withGhostState(n, r.ghost.Outline.Shader, func() {
			r.ghost.ApplyOutline(m)
			drawSegments(n, rl.White)
		})
		r.stats.Ghosts++
	case *ArtworkMaterial:
		drawArtwork(n, m)
		r.stats.Meshes++
	case scene.BasicMaterial:
		if n.Geometry.Lines {
			drawSegments(n, m.Color)
		} else {
			drawTriangles(n, func(normal rl.Vector3) rl.Color { return Shade(m.Color, normal, r.Light) })
		}
		r.stats.Meshes++
	default:
		utils.Debug("Renderer: no draw path for material %q on %s", n.Material.MaterialName(), n.Name)
	}
}

// withGhostState wraps fn in the node's depth flags and the given shader.
// The batch is flushed first so the state change only affects fn's geometry.
func (r *Renderer) withGhostState(n *scene.Node, s rl.Shader, fn func()) {
	rl.DrawRenderBatchActive()
	if !n.DepthTest {
		rl.DisableDepthTest()
	}
	if !n.DepthWrite {
		rl.DisableDepthMask()
	}
	rl.BeginShaderMode(s)
	fn()
	rl.EndShaderMode()
	rl.DrawRenderBatchActive()
	rl.EnableDepthMask()
	rl.EnableDepthTest()
}

func drawTriangles(n *scene.Node, color func(normal rl.Vector3) rl.Color) {
	world := n.WorldMatrix
	n.Geometry.Triangles(func(a, b, c rl.Vector3) {
		a = rl.Vector3Transform(a, world)
		b = rl.Vector3Transform(b, world)
		c = rl.Vector3Transform(c, world)
		normal := rl.Vector3Normalize(rl.Vector3CrossProduct(rl.Vector3Subtract(b, a), rl.Vector3Subtract(c, a)))
		rl.DrawTriangle3D(a, b, c, color(normal))
	})
}

func drawSegments(n *scene.Node, col rl.Color) {
	world := n.WorldMatrix
	n.Geometry.Segments(func(a, b rl.Vector3) {
		rl.DrawLine3D(rl.Vector3Transform(a, world), rl.Vector3Transform(b, world), col)
	})
}

// drawArtwork maps the texture over the first four vertices of a plane.
func drawArtwork(n *scene.Node, m *ArtworkMaterial) {
	v := n.Geometry.Vertices
	if len(v) < 4 || m.Texture.ID == 0 {
		return
	}
	uv := [4]rl.Vector2{{X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}, {X: 0, Y: 0}}

	rl.SetTexture(m.Texture.ID)
	rl.Begin(rl.Quads)
	rl.Color4ub(m.Tint.R, m.Tint.G, m.Tint.B, m.Tint.A)
	for i := 0; i < 4; i++ {
		p := rl.Vector3Transform(v[i], n.WorldMatrix)
		rl.TexCoord2f(uv[i].X, uv[i].Y)
		rl.Vertex3f(p.X, p.Y, p.Z)
	}
	rl.End()
	rl.SetTexture(0)
}

// Shade applies a two-sided diffuse term so flat-coloured props read as 3D.
func Shade(c rl.Color, normal, light rl.Vector3) rl.Color {
	k := 0.55 + 0.45*math32.Abs(rl.Vector3DotProduct(normal, light))
	return rl.NewColor(uint8(float32(c.R)*k), uint8(float32(c.G)*k), uint8(float32(c.B)*k), c.A)
}

var (
	_ vision.CameraProvider   = (*Renderer)(nil)
	_ vision.ViewportProvider = (*Renderer)(nil)
)
