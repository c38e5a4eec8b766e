// Package vision implements the timed "vision" overlay: objects inside a
// screen-centred window get a glow and wireframe ghost drawn over them for
// a few seconds.
//
// The package never touches the materials of the objects it highlights. It
// reads their transforms and bounds, and owns only the ghost nodes it
// attaches next to them.
package vision

import (
	"time"

	"portfolio3d/internal/loop"
	"portfolio3d/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// SceneContext names the logical scene whose candidates are in play.
type SceneContext string

const (
	ContextMain    SceneContext = "main"
	ContextGallery SceneContext = "gallery"
)

// ViewerContext is the context of a per-artwork viewer scene.
func ViewerContext(shape string) SceneContext {
	return SceneContext("viewer:" + shape)
}

// CameraState is the per-frame camera snapshot used for classification.
type CameraState struct {
	View       rl.Matrix
	Projection rl.Matrix
	Position   rl.Vector3
}

// ViewProjection returns Projection * View.
func (c CameraState) ViewProjection() rl.Matrix {
	return rl.MatrixMultiply(c.View, c.Projection)
}

type CameraProvider interface {
	Camera() (CameraState, bool)
}

type ViewportProvider interface {
	ScreenSize() (width, height int)
}

// CandidateSource lists the live interactive objects of a scene context.
type CandidateSource interface {
	Candidates(ctx SceneContext) []*scene.Node
}

// Host is the scene that ghosts are attached to.
type Host interface {
	AddNode(n *scene.Node)
	RemoveNode(n *scene.Node)
	Contains(n *scene.Node) bool
}

type HostProvider interface {
	Host(ctx SceneContext) (Host, bool)
}

// Tracker receives activation analytics. Errors are logged and ignored.
type Tracker interface {
	TrackInteraction(category, action string, props map[string]any) error
}

// Chrome is the on-screen frame and tinted pane owned by a session.
type Chrome interface {
	Show(w Window)
	Pulse(intensity, pulse float32)
	Hide()
}

// Scheduler is the frame/timer source. *loop.Loop satisfies it.
type Scheduler interface {
	Now() time.Time
	RequestFrame(fn func())
	Every(interval time.Duration, fn func()) *loop.Timer
}

var _ Scheduler = (*loop.Loop)(nil)
var _ Host = (*scene.Scene)(nil)
