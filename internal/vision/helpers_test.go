package vision

import (
	"time"

	"portfolio3d/internal/loop"
	"portfolio3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	testScreenW = 1280
	testScreenH = 720
)

var epoch = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// lookingDownZ is a camera at the origin looking along -Z with a 60 degree
// vertical field of view. One world unit at distance 10 is ~62px.
func lookingDownZ() CameraState {
	eye := rl.NewVector3(0, 0, 0)
	view := rl.MatrixLookAt(eye, rl.NewVector3(0, 0, -1), rl.NewVector3(0, 1, 0))
	proj := rl.MatrixPerspective(60*rl.Deg2rad, float32(testScreenW)/float32(testScreenH), 0.1, 1000)
	return CameraState{View: view, Projection: proj, Position: eye}
}

func testWindow() Window {
	return WindowFor(testScreenW, testScreenH, 300, 300)
}

func cube(name string, x, y, z float32) *scene.Node {
	n := scene.NewMesh(name, scene.BoxGeometry(0.2, 0.2, 0.2), scene.BasicMaterial{Color: rl.Gray})
	n.Position = rl.NewVector3(x, y, z)
	return n
}

type fakeCamera struct {
	state CameraState
	ok    bool
}

func (c *fakeCamera) Camera() (CameraState, bool) { return c.state, c.ok }

type fakeViewport struct{ w, h int }

func (v *fakeViewport) ScreenSize() (int, int) { return v.w, v.h }

type fakeSource struct {
	lists map[SceneContext][]*scene.Node
}

func (s *fakeSource) Candidates(ctx SceneContext) []*scene.Node { return s.lists[ctx] }

type fakeHosts struct {
	scenes map[SceneContext]*scene.Scene
}

func (h *fakeHosts) Host(ctx SceneContext) (Host, bool) {
	s, ok := h.scenes[ctx]
	if !ok {
		return nil, false
	}
	return s, true
}

type tracked struct {
	category, action string
	props            map[string]any
}

type fakeTracker struct {
	events []tracked
	err    error
}

func (t *fakeTracker) TrackInteraction(category, action string, props map[string]any) error {
	t.events = append(t.events, tracked{category, action, props})
	return t.err
}

type fakeChrome struct {
	shown, pulses, hidden int
	last                  Window
}

func (c *fakeChrome) Show(w Window)      { c.shown++; c.last = w }
func (c *fakeChrome) Pulse(_, _ float32) { c.pulses++ }
func (c *fakeChrome) Hide()              { c.hidden++ }

// rig wires a controller to fakes around a single main scene.
type rig struct {
	clock    *loop.ManualClock
	loop     *loop.Loop
	scene    *scene.Scene
	source   *fakeSource
	camera   *fakeCamera
	viewport *fakeViewport
	tracker  *fakeTracker
	chrome   *fakeChrome
	ctl      *Controller
}

func newRig(opts Options, objs ...*scene.Node) *rig {
	r := &rig{
		clock:    loop.NewManualClock(epoch),
		scene:    scene.New("main"),
		camera:   &fakeCamera{state: lookingDownZ(), ok: true},
		viewport: &fakeViewport{w: testScreenW, h: testScreenH},
		tracker:  &fakeTracker{},
		chrome:   &fakeChrome{},
	}
	r.loop = loop.New(r.clock)
	for _, o := range objs {
		r.scene.AddNode(o)
	}
	r.source = &fakeSource{lists: map[SceneContext][]*scene.Node{ContextMain: objs}}
	r.ctl = NewController(opts, Collaborators{
		Camera:     r.camera,
		Viewport:   r.viewport,
		Candidates: r.source,
		Hosts:      &fakeHosts{scenes: map[SceneContext]*scene.Scene{ContextMain: r.scene}},
		Tracker:    r.tracker,
		Chrome:     r.chrome,
		Scheduler:  r.loop,
	})
	return r
}

// ghostNodes lists scene children that are ghost pieces.
func ghostNodes(s *scene.Scene) []*scene.Node {
	var out []*scene.Node
	s.Root.Traverse(func(n *scene.Node) {
		switch n.Material.(type) {
		case *GlowMaterial, *OutlineMaterial:
			out = append(out, n)
		}
	})
	return out
}
