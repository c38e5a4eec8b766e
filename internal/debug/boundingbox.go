package debug

import (
	"portfolio3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	candidateColor   = rl.NewColor(0, 255, 0, 255)
	highlightedColor = rl.NewColor(255, 255, 0, 255)
)

// BoundsColor picks the box colour for a candidate.
func BoundsColor(highlighted bool) rl.Color {
	if highlighted {
		return highlightedColor
	}
	return candidateColor
}

// DrawBoundingBoxes outlines every candidate's world bounds. Must be called
// inside BeginMode3D.
func (d *DebugOverlay) DrawBoundingBoxes(candidates, highlighted []*scene.Node) {
	if !d.ShowBoundingBoxes {
		return
	}
	lit := make(map[*scene.Node]bool, len(highlighted))
	for _, n := range highlighted {
		lit[n] = true
	}
	for _, n := range candidates {
		box, ok := scene.WorldBounds(n)
		if !ok {
			continue
		}
		rl.DrawBoundingBox(box, BoundsColor(lit[n]))
		// origin marker
		w := n.WorldMatrix
		rl.DrawSphere(rl.NewVector3(w.M12, w.M13, w.M14), 0.03, rl.Red)
	}
}
