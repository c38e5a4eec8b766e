package vision

import (
	"errors"
	"testing"
	"time"

	"portfolio3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ghostsOf(m *Manager, obj *scene.Node) []*GhostPair {
	for _, e := range m.Entries() {
		if e.Original == obj {
			return e.Ghosts
		}
	}
	return nil
}

func TestActivateIsIdempotent(t *testing.T) {
	a, b := cube("a", 0, 0, -10), cube("b", 0.5, 0, -10)
	r := newRig(DefaultOptions(), a, b)

	r.ctl.Activate(ContextMain)
	require.True(t, r.ctl.IsActive())
	start := r.ctl.StartTime()
	ghosts := len(ghostNodes(r.scene))
	require.Equal(t, 4, ghosts)

	r.clock.Advance(50 * time.Millisecond)
	r.ctl.Activate(ContextGallery)

	assert.Equal(t, start, r.ctl.StartTime())
	assert.Equal(t, ContextMain, r.ctl.Context())
	assert.Len(t, ghostNodes(r.scene), ghosts)
	assert.Len(t, r.tracker.events, 1)
	assert.Equal(t, 1, r.chrome.shown)
}

func TestActivateNeedsAHostScene(t *testing.T) {
	r := newRig(DefaultOptions(), cube("a", 0, 0, -10))
	r.ctl.Activate(ContextGallery)
	assert.False(t, r.ctl.IsActive())
	assert.Empty(t, r.tracker.events)
}

func TestMissingCollaboratorsDegradeToNothing(t *testing.T) {
	ctl := NewController(DefaultOptions(), Collaborators{})
	assert.NotPanics(t, func() {
		ctl.Activate(ContextMain)
		ctl.Update()
		ctl.Deactivate()
		ctl.ForceDeactivate()
	})
	assert.False(t, ctl.IsActive())

	r := newRig(DefaultOptions(), cube("a", 0, 0, -10))
	r.camera.ok = false
	r.ctl.Activate(ContextMain)
	assert.True(t, r.ctl.IsActive())
	assert.Empty(t, r.ctl.Highlighted())
}

func TestActivationAnalytics(t *testing.T) {
	r := newRig(DefaultOptions(), cube("a", 0, 0, -10))
	r.tracker.err = errors.New("sink offline")

	r.ctl.Activate(ContextMain)
	r.clock.Advance(1200 * time.Millisecond)
	r.ctl.Deactivate()

	require.Len(t, r.tracker.events, 2)
	assert.Equal(t, "activate", r.tracker.events[0].action)
	assert.Equal(t, "main", r.tracker.events[0].props["sceneContext"])
	assert.Equal(t, "deactivate", r.tracker.events[1].action)
	assert.Equal(t, int64(1200), r.tracker.events[1].props["duration"])
}

func TestDeactivateTearsEverythingDown(t *testing.T) {
	objs := []*scene.Node{cube("a", 0, 0, -10), cube("b", 0.5, 0, -10), cube("c", -0.5, 0, -10)}
	r := newRig(DefaultOptions(), objs...)

	r.ctl.Activate(ContextMain)
	var pieces []*scene.Node
	for _, e := range r.ctl.Manager().Entries() {
		for _, g := range e.Ghosts {
			pieces = append(pieces, g.Nodes()...)
		}
	}
	require.Len(t, pieces, 6)

	r.ctl.Deactivate()
	assert.False(t, r.ctl.IsActive())
	assert.Empty(t, r.ctl.Highlighted())
	for _, n := range pieces {
		assert.Nil(t, n.Parent())
	}
	assert.Equal(t, 1, r.chrome.hidden)
	for _, o := range objs {
		assert.True(t, r.scene.Contains(o))
	}

	// The re-evaluation timer is gone too.
	r.clock.Advance(time.Second)
	r.loop.Tick()
	assert.Empty(t, ghostNodes(r.scene))
}

func TestEndToEndSession(t *testing.T) {
	a := cube("A", 0, 0, -10)
	b := cube("B", 0.5, 0.5, -10)
	c := cube("C", 4, 0, -10)
	r := newRig(DefaultOptions(), a, b, c)

	r.ctl.Activate(ContextMain)
	assert.ElementsMatch(t, []*scene.Node{a, b}, r.ctl.Highlighted())
	require.NotEmpty(t, ghostsOf(r.ctl.Manager(), a))
	bGhosts := ghostsOf(r.ctl.Manager(), b)
	require.NotEmpty(t, bGhosts)
	aPieces := ghostsOf(r.ctl.Manager(), a)[0].Nodes()

	for ms := 16; ms < 1500; ms += 16 {
		r.clock.Set(epoch.Add(time.Duration(ms) * time.Millisecond))
		r.loop.Tick()
		r.ctl.Update()
	}
	assert.ElementsMatch(t, []*scene.Node{a, b}, r.ctl.Highlighted())

	a.Position = rl.NewVector3(-4, 0, -10)
	c.Position = rl.NewVector3(-0.5, -0.5, -10)
	r.clock.Set(epoch.Add(1500 * time.Millisecond))
	r.loop.Tick()
	r.clock.Advance(200 * time.Millisecond)
	r.loop.Tick()

	assert.ElementsMatch(t, []*scene.Node{b, c}, r.ctl.Highlighted())
	for _, n := range aPieces {
		assert.Nil(t, n.Parent())
	}
	assert.NotEmpty(t, ghostsOf(r.ctl.Manager(), c))
	assert.Equal(t, bGhosts, ghostsOf(r.ctl.Manager(), b))
	assert.Same(t, bGhosts[0], ghostsOf(r.ctl.Manager(), b)[0])

	r.clock.Set(epoch.Add(3000 * time.Millisecond))
	r.ctl.Update()
	assert.False(t, r.ctl.IsActive())
	assert.Empty(t, r.ctl.Highlighted())
	assert.Empty(t, ghostNodes(r.scene))
}

func TestUpdateAppliesEnvelope(t *testing.T) {
	a := cube("a", 0, 0, -10)
	r := newRig(DefaultOptions(), a)
	r.ctl.Activate(ContextMain)
	glow := ghostsOf(r.ctl.Manager(), a)[0].Glow.Material.(*GlowMaterial)
	assert.Zero(t, glow.Intensity)

	r.clock.Advance(150 * time.Millisecond)
	r.ctl.Update()
	assert.InDelta(t, 0.35, glow.Intensity, 1e-3)

	r.clock.Advance(1350 * time.Millisecond)
	r.ctl.Update()
	assert.InDelta(t, 0.7, glow.Intensity, 1e-6)
	assert.Equal(t, 2, r.chrome.pulses)
}

func TestUpdateSyncsMovingObjects(t *testing.T) {
	a := cube("a", 0, 0, -10)
	r := newRig(DefaultOptions(), a)
	r.ctl.Activate(ContextMain)
	glow := ghostsOf(r.ctl.Manager(), a)[0].Glow

	a.Position = rl.NewVector3(0.3, 0, -10)
	r.clock.Advance(50 * time.Millisecond)
	r.ctl.Update()
	assert.InDelta(t, 0, glow.WorldMatrix.M12, 1e-6)

	r.clock.Advance(100 * time.Millisecond)
	r.ctl.Update()
	assert.InDelta(t, 0.3, glow.WorldMatrix.M12, 1e-6)
}

func TestCancellationMidDrain(t *testing.T) {
	var objs []*scene.Node
	for i := 0; i < 20; i++ {
		objs = append(objs, cube("obj", float32(i%5)*0.3-0.6, float32(i/5)*0.3-0.45, -10))
	}
	r := newRig(DefaultOptions(), objs...)

	r.ctl.Activate(ContextMain)
	require.Equal(t, 5, r.ctl.Manager().Len())
	require.True(t, r.ctl.Queue().Draining())
	created := ghostNodes(r.scene)
	require.Len(t, created, 10)

	r.ctl.Deactivate()
	for rangeN := 0; rangeN < 10; rangeN++ {
		r.clock.Advance(100 * time.Millisecond)
		r.loop.Tick()
		r.ctl.Update()
	}
	assert.Zero(t, r.ctl.Manager().Len())
	assert.Empty(t, ghostNodes(r.scene))
	for _, n := range created {
		assert.Nil(t, n.Parent())
	}
}

func TestFullDrainThroughController(t *testing.T) {
	var objs []*scene.Node
	for i := 0; i < 12; i++ {
		objs = append(objs, cube("obj", float32(i%4)*0.3-0.45, float32(i/4)*0.3-0.3, -10))
	}
	r := newRig(DefaultOptions(), objs...)
	r.ctl.Activate(ContextMain)
	for r.ctl.Queue().Draining() {
		r.loop.Tick()
	}
	assert.Equal(t, 3, r.ctl.Queue().Steps())
	assert.Equal(t, 12, r.ctl.Manager().Len())
}

func TestObjectCollectedMidDrainIsSkipped(t *testing.T) {
	var objs []*scene.Node
	for i := 0; i < 7; i++ {
		objs = append(objs, cube("obj", float32(i)*0.2-0.6, 0, -10))
	}
	r := newRig(DefaultOptions(), objs...)
	r.ctl.Activate(ContextMain)
	require.Equal(t, 5, r.ctl.Manager().Len())

	r.scene.RemoveNode(objs[6])
	r.loop.Tick()
	assert.Equal(t, 6, r.ctl.Manager().Len())
	assert.False(t, r.ctl.Manager().Has(objs[6]))
}

func TestForceDeactivateIsIdempotent(t *testing.T) {
	r := newRig(DefaultOptions(), cube("a", 0, 0, -10))
	r.ctl.ForceDeactivate()
	assert.False(t, r.ctl.IsActive())

	r.ctl.Activate(ContextMain)
	r.ctl.ForceDeactivate()
	r.ctl.ForceDeactivate()
	assert.False(t, r.ctl.IsActive())
	assert.Empty(t, ghostNodes(r.scene))
	assert.Len(t, r.tracker.events, 2)

	// A fresh session starts clean.
	r.ctl.Activate(ContextMain)
	assert.Len(t, r.ctl.Highlighted(), 1)
}

func TestResizeIsPickedUpOnReevaluation(t *testing.T) {
	a := cube("a", 0, 0, -10)
	r := newRig(DefaultOptions(), a)
	r.ctl.Activate(ContextMain)

	r.viewport.w, r.viewport.h = 1920, 1080
	r.ctl.Update()
	glow := ghostsOf(r.ctl.Manager(), a)[0].Glow.Material.(*GlowMaterial)
	assert.Equal(t, rl.NewVector2(1280, 720), glow.ScreenSize)

	r.clock.Advance(200 * time.Millisecond)
	r.loop.Tick()
	assert.Equal(t, rl.NewVector2(1920, 1080), glow.ScreenSize)
	assert.Equal(t, rl.NewVector2(960, 540), glow.WindowCenter)
	assert.Equal(t, rl.NewVector2(960, 540), r.chrome.last.Center)
}
