// Package debug draws the developer overlay: candidate bounds and a text
// panel with frame timing and vision state.
package debug

import (
	"fmt"
	"runtime"
	"time"

	"portfolio3d/internal/engine3D"
	"portfolio3d/internal/vision"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Snapshot is what the panel reports for one frame.
type Snapshot struct {
	Context     vision.SceneContext
	Active      bool
	Elapsed     time.Duration
	Highlighted int
	Pending     int
	Steps       int
	Render      engine3D.Stats
	Position    rl.Vector3
}

type DebugOverlay struct {
	ShowBoundingBoxes bool

	fontHeight int32
	lineHeight int32

	lastUpdateTime time.Time
	frameCount     int
	fps            float64
	memStats       runtime.MemStats
}

func NewDebugOverlay(now time.Time) *DebugOverlay {
	return &DebugOverlay{
		fontHeight:     16,
		lineHeight:     20,
		lastUpdateTime: now,
	}
}

func (d *DebugOverlay) Toggle() { d.ShowBoundingBoxes = !d.ShowBoundingBoxes }

// Update counts a frame; FPS and memory are refreshed once a second.
func (d *DebugOverlay) Update(now time.Time) {
	d.frameCount++
	if now.Sub(d.lastUpdateTime) >= time.Second {
		d.fps = float64(d.frameCount) / now.Sub(d.lastUpdateTime).Seconds()
		d.frameCount = 0
		d.lastUpdateTime = now
		runtime.ReadMemStats(&d.memStats)
	}
}

func (d *DebugOverlay) FPS() float64 { return d.fps }

// Lines renders the panel text.
func (d *DebugOverlay) Lines(s Snapshot) []string {
	lines := []string{
		fmt.Sprintf("FPS: %.1f", d.fps),
		fmt.Sprintf("Heap Alloc: %.2f MB", float64(d.memStats.HeapAlloc)/1024/1024),
		fmt.Sprintf("Scene: %s", s.Context),
		fmt.Sprintf("Position: %.2f %.2f %.2f", s.Position.X, s.Position.Y, s.Position.Z),
		fmt.Sprintf("Meshes: %d  Ghosts: %d", s.Render.Meshes, s.Render.Ghosts),
	}
	if !s.Active {
		return append(lines, "Vision: off")
	}
	return append(lines,
		fmt.Sprintf("Vision: on (%.1fs)", s.Elapsed.Seconds()),
		fmt.Sprintf("Highlighted: %d", s.Highlighted),
		fmt.Sprintf("Queue: %d pending, %d steps", s.Pending, s.Steps),
	)
}

// DrawPanel draws the text panel in screen space.
func (d *DebugOverlay) DrawPanel(s Snapshot) {
	lines := d.Lines(s)
	h := int32(len(lines))*d.lineHeight + 10
	rl.DrawRectangle(5, 5, 260, h, rl.NewColor(0, 0, 0, 200))
	for i, l := range lines {
		rl.DrawText(l, 12, 10+int32(i)*d.lineHeight, d.fontHeight, rl.White)
	}
}
