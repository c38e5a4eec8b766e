package vision

import (
	"strings"

	"portfolio3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// View is the per-pass classification input: the camera snapshot with its
// derived matrices, and the vision window.
type View struct {
	Camera   CameraState
	ViewProj rl.Matrix
	Frustum  Frustum
	Window   Window
}

func NewView(cam CameraState, win Window) View {
	vp := cam.ViewProjection()
	return View{Camera: cam, ViewProj: vp, Frustum: NewFrustum(vp), Window: win}
}

// Classifier decides whether an object counts as inside the vision window.
// Implementations are pure functions of the view.
type Classifier interface {
	Visible(obj *scene.Node, v View) bool
}

// NewClassifier picks the strategy by name ("radius" or "corners"); unknown
// names fall back to the radius-buffered default.
func NewClassifier(name string, pixelsPerUnit float32) Classifier {
	if strings.EqualFold(name, "corners") {
		return CornerProjection{}
	}
	return RadiusBuffered{PixelsPerUnit: pixelsPerUnit}
}

// Classify filters objs down to those visible in v, preserving order.
func Classify(c Classifier, objs []*scene.Node, v View) []*scene.Node {
	out := make([]*scene.Node, 0, len(objs))
	for _, o := range objs {
		if o != nil && c.Visible(o, v) {
			out = append(out, o)
		}
	}
	return out
}

// RadiusBuffered projects the bounds centre and accepts it inside the window
// grown by the bounding radius, PixelsPerUnit pixels per world unit.
type RadiusBuffered struct {
	PixelsPerUnit float32
}

func (c RadiusBuffered) Visible(obj *scene.Node, v View) bool {
	box, ok := scene.WorldBounds(obj)
	if !ok || !v.Frustum.IntersectsBox(box) {
		return false
	}

	center := rl.Vector3Scale(rl.Vector3Add(box.Min, box.Max), 0.5)
	radius := rl.Vector3Length(rl.Vector3Subtract(box.Max, box.Min)) * 0.5

	p, inFront := Project(center, v.ViewProj, v.Window.Screen)
	if !inFront {
		return false
	}
	return v.Window.Contains(p, radius*c.PixelsPerUnit)
}

// CornerProjection projects all eight corners of the bounds. The object is
// visible when any in-front corner lands in the window, or when the screen
// rectangle spanned by the in-front corners overlaps it.
type CornerProjection struct{}

func (CornerProjection) Visible(obj *scene.Node, v View) bool {
	box, ok := scene.WorldBounds(obj)
	if !ok || !v.Frustum.IntersectsBox(box) {
		return false
	}

	var lo, hi rl.Vector2
	seen := false
	for _, corner := range scene.Corners(box) {
		p, inFront := Project(corner, v.ViewProj, v.Window.Screen)
		if !inFront {
			continue
		}
		if v.Window.Contains(p, 0) {
			return true
		}
		if !seen {
			lo, hi, seen = p, p, true
			continue
		}
		lo = rl.NewVector2(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = rl.NewVector2(max(hi.X, p.X), max(hi.Y, p.Y))
	}
	return seen && v.Window.Overlaps(lo, hi)
}
