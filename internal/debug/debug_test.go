package debug

import (
	"testing"
	"time"

	"portfolio3d/internal/engine3D"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
)

func TestFPSRefreshesEverySecond(t *testing.T) {
	start := time.Unix(0, 0)
	d := NewDebugOverlay(start)
	for i := 1; i <= 30; i++ {
		d.Update(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	assert.Zero(t, d.FPS())

	for i := 31; i <= 50; i++ {
		d.Update(start.Add(time.Duration(i) * 20 * time.Millisecond))
	}
	assert.InDelta(t, 50, d.FPS(), 1e-6)
}

func TestLines(t *testing.T) {
	d := NewDebugOverlay(time.Unix(0, 0))
	idle := d.Lines(Snapshot{Context: "main", Render: engine3D.Stats{Meshes: 7}})
	assert.Contains(t, idle, "Scene: main")
	assert.Contains(t, idle, "Meshes: 7  Ghosts: 0")
	assert.Equal(t, "Vision: off", idle[len(idle)-1])

	active := d.Lines(Snapshot{
		Context:     "gallery",
		Active:      true,
		Elapsed:     1500 * time.Millisecond,
		Highlighted: 3,
		Pending:     4,
		Steps:       2,
	})
	assert.Contains(t, active, "Vision: on (1.5s)")
	assert.Contains(t, active, "Highlighted: 3")
	assert.Contains(t, active, "Queue: 4 pending, 2 steps")
}

func TestToggleAndColors(t *testing.T) {
	d := NewDebugOverlay(time.Now())
	assert.False(t, d.ShowBoundingBoxes)
	d.Toggle()
	assert.True(t, d.ShowBoundingBoxes)

	assert.Equal(t, rl.NewColor(255, 255, 0, 255), BoundsColor(true))
	assert.NotEqual(t, BoundsColor(true), BoundsColor(false))
}
