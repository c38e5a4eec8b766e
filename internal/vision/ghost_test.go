package vision

import (
	"testing"
	"time"

	"portfolio3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateGhostPinsBothPieces(t *testing.T) {
	src := cube("crate", 1, 2, -3)
	clip := ClipFor(testWindow(), 0)

	pair, err := DefaultFactory().CreateGhost(src, clip)
	require.NoError(t, err)
	require.NotNil(t, pair.Glow)
	require.NotNil(t, pair.Outline)

	for _, n := range pair.Nodes() {
		assert.False(t, n.DepthTest)
		assert.False(t, n.DepthWrite)
		assert.False(t, n.MatrixAutoUpdate)
		assert.Equal(t, src.WorldMatrix, n.Matrix)
	}
	assert.Less(t, pair.Glow.RenderOrder, pair.Outline.RenderOrder)

	glow := pair.Glow.Material.(*GlowMaterial)
	assert.Equal(t, clip, glow.ClipUniforms)
	assert.InDelta(t, 0.7, glow.BaseIntensity, 1e-6)
	assert.True(t, pair.Outline.Geometry.Lines)

	// The source keeps its own material.
	assert.IsType(t, scene.BasicMaterial{}, src.Material)
}

func TestCreateGhostPartial(t *testing.T) {
	// Two vertices clone fine but hold no triangle to outline.
	src := scene.NewMesh("sliver", &scene.Geometry{Vertices: []rl.Vector3{{}, {X: 1}}}, scene.BasicMaterial{})
	pair, err := DefaultFactory().CreateGhost(src, ClipUniforms{})
	require.NoError(t, err)
	assert.NotNil(t, pair.Glow)
	assert.Nil(t, pair.Outline)
	assert.Len(t, pair.Nodes(), 1)
}

func TestCreateGhostFailsWithoutGeometry(t *testing.T) {
	src := scene.NewMesh("hollow", &scene.Geometry{}, scene.BasicMaterial{})
	_, err := DefaultFactory().CreateGhost(src, ClipUniforms{})
	assert.ErrorIs(t, err, scene.ErrNoGeometry)
}

func TestBuildOnePairPerMeshSkippingBroken(t *testing.T) {
	host := scene.New("main")
	group := scene.NewNode("shelf")
	group.Add(cube("left", -1, 0, 0))
	group.Add(cube("right", 1, 0, 0))
	group.Add(scene.NewMesh("broken", &scene.Geometry{}, scene.BasicMaterial{}))
	host.AddNode(group)

	pairs := DefaultFactory().Build(group, host, ClipUniforms{})
	require.Len(t, pairs, 2)
	for _, p := range pairs {
		for _, n := range p.Nodes() {
			assert.True(t, host.Contains(n))
		}
	}
	assert.Len(t, ghostNodes(host), 4)
}

func TestBuildSkipsObjectsThatLeftTheScene(t *testing.T) {
	host := scene.New("main")
	obj := cube("coin", 0, 0, 0)
	host.AddNode(obj)
	host.RemoveNode(obj)

	assert.Empty(t, DefaultFactory().Build(obj, host, ClipUniforms{}))
	assert.Empty(t, ghostNodes(host))
}

func TestGhostSyncFollowsSourceUntilRemoved(t *testing.T) {
	host := scene.New("main")
	obj := cube("coin", 0, 0, 0)
	host.AddNode(obj)
	pairs := DefaultFactory().Build(obj, host, ClipUniforms{})
	require.Len(t, pairs, 1)

	obj.Position = rl.NewVector3(5, 0, 0)
	require.True(t, pairs[0].Sync())
	assert.InDelta(t, 5, pairs[0].Glow.WorldMatrix.M12, 1e-6)

	host.RemoveNode(obj)
	obj.Position = rl.NewVector3(9, 0, 0)
	assert.False(t, pairs[0].Sync())
	assert.InDelta(t, 5, pairs[0].Glow.WorldMatrix.M12, 1e-6)
}

func TestManagerDiffIsIdentityBased(t *testing.T) {
	host := scene.New("main")
	a, b, c := cube("same", 0, 0, 0), cube("same", 0, 0, 0), cube("c", 1, 0, 0)
	for _, o := range []*scene.Node{a, b, c} {
		host.AddNode(o)
	}
	m := NewManager(DefaultFactory())
	require.True(t, m.Add(a, host, epoch))
	require.True(t, m.Add(b, host, epoch))

	toAdd, toRemove := m.Diff([]*scene.Node{b, c, c})
	assert.Equal(t, []*scene.Node{c}, toAdd)
	assert.Equal(t, []*scene.Node{a}, toRemove)
	for _, o := range toAdd {
		assert.NotContains(t, toRemove, o)
	}
}

func TestManagerAddIsExclusive(t *testing.T) {
	host := scene.New("main")
	obj := cube("crate", 0, 0, 0)
	host.AddNode(obj)
	m := NewManager(DefaultFactory())

	assert.True(t, m.Add(obj, host, epoch))
	assert.False(t, m.Add(obj, host, epoch))
	assert.Equal(t, 1, m.Len())
	assert.Len(t, ghostNodes(host), 2)
}

func TestManagerRemoveAndClearDetach(t *testing.T) {
	host := scene.New("main")
	a, b := cube("a", 0, 0, 0), cube("b", 1, 0, 0)
	host.AddNode(a)
	host.AddNode(b)
	m := NewManager(DefaultFactory())
	m.Add(a, host, epoch)
	m.Add(b, host, epoch)

	var all []*scene.Node
	for _, e := range m.Entries() {
		for _, g := range e.Ghosts {
			all = append(all, g.Nodes()...)
		}
	}
	require.Len(t, all, 4)

	m.Remove(a)
	assert.False(t, m.Has(a))
	assert.Equal(t, []*scene.Node{b}, m.Highlighted())
	assert.Len(t, ghostNodes(host), 2)

	m.Clear()
	assert.Zero(t, m.Len())
	for _, n := range all {
		assert.Nil(t, n.Parent())
	}
	assert.True(t, host.Contains(a))
}

func TestManagerIntensityAndClipReachNewGhosts(t *testing.T) {
	host := scene.New("main")
	a, b := cube("a", 0, 0, 0), cube("b", 1, 0, 0)
	host.AddNode(a)
	host.AddNode(b)
	m := NewManager(DefaultFactory())
	m.Add(a, host, epoch)

	clip := ClipFor(WindowFor(800, 600, 300, 300), 0.5)
	m.SetIntensity(0.5)
	m.SetClip(clip)
	m.Add(b, host, epoch)

	for _, e := range m.Entries() {
		g := e.Ghosts[0]
		glow := g.Glow.Material.(*GlowMaterial)
		outline := g.Outline.Material.(*OutlineMaterial)
		assert.InDelta(t, 0.35, glow.Intensity, 1e-6)
		assert.InDelta(t, 0.5, outline.Opacity, 1e-6)
		assert.Equal(t, clip, glow.ClipUniforms)
		assert.Equal(t, clip, outline.ClipUniforms)
	}
}

func TestManagerSyncIsThrottled(t *testing.T) {
	host := scene.New("main")
	obj := cube("a", 0, 0, 0)
	host.AddNode(obj)
	m := NewManager(DefaultFactory())
	m.Add(obj, host, epoch)
	glow := m.Entries()[0].Ghosts[0].Glow

	obj.Position = rl.NewVector3(2, 0, 0)
	m.Sync(epoch.Add(50*time.Millisecond), 100*time.Millisecond)
	assert.InDelta(t, 0, glow.WorldMatrix.M12, 1e-6)

	m.Sync(epoch.Add(150*time.Millisecond), 100*time.Millisecond)
	assert.InDelta(t, 2, glow.WorldMatrix.M12, 1e-6)
}
