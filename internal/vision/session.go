package vision

import (
	"time"

	"portfolio3d/internal/loop"
	"portfolio3d/internal/scene"
	"portfolio3d/internal/utils"
)

// Options are the tunables of a vision session.
type Options struct {
	Duration        time.Duration
	RefreshInterval time.Duration
	SyncInterval    time.Duration
	WindowWidth     float32
	WindowHeight    float32
	BatchSize       int
	GroundLevel     float32
	Classifier      Classifier
	Factory         Factory
}

func DefaultOptions() Options {
	return Options{
		Duration:        3000 * time.Millisecond,
		RefreshInterval: 200 * time.Millisecond,
		SyncInterval:    100 * time.Millisecond,
		WindowWidth:     300,
		WindowHeight:    300,
		BatchSize:       5,
		GroundLevel:     0,
		Classifier:      RadiusBuffered{PixelsPerUnit: 50},
		Factory:         DefaultFactory(),
	}
}

// Collaborators are the application services a Controller reads from. Any of
// them may be nil; the session then degrades to showing nothing.
type Collaborators struct {
	Camera     CameraProvider
	Viewport   ViewportProvider
	Candidates CandidateSource
	Hosts      HostProvider
	Tracker    Tracker
	Chrome     Chrome
	Scheduler  Scheduler
}

// Controller runs vision sessions: Inactive -> Active -> Inactive.
type Controller struct {
	opts Options
	c    Collaborators

	manager *Manager
	queue   *Queue

	active  bool
	start   time.Time
	ctx     SceneContext
	host    Host
	window  Window
	refresh *loop.Timer
}

func NewController(opts Options, c Collaborators) *Controller {
	def := DefaultOptions()
	if opts.Duration <= 0 {
		opts.Duration = def.Duration
	}
	if opts.RefreshInterval <= 0 {
		opts.RefreshInterval = def.RefreshInterval
	}
	if opts.SyncInterval <= 0 {
		opts.SyncInterval = def.SyncInterval
	}
	if opts.Classifier == nil {
		opts.Classifier = def.Classifier
	}

	ctl := &Controller{opts: opts, c: c}
	ctl.manager = NewManager(opts.Factory)
	ctl.queue = NewQueue(opts.BatchSize, c.Scheduler, ctl.ghost)
	return ctl
}

func (ctl *Controller) IsActive() bool { return ctl.active }

func (ctl *Controller) Context() SceneContext { return ctl.ctx }

// Highlighted returns the objects currently carrying ghosts.
func (ctl *Controller) Highlighted() []*scene.Node { return ctl.manager.Highlighted() }

func (ctl *Controller) Manager() *Manager { return ctl.manager }

func (ctl *Controller) Queue() *Queue { return ctl.queue }

// Window is the vision window of the running session.
func (ctl *Controller) Window() Window { return ctl.window }

// StartTime is when the running session was activated.
func (ctl *Controller) StartTime() time.Time { return ctl.start }

// Activate starts a session in ctx. It does nothing while a session is
// already running, or when there is no scheduler or host scene.
func (ctl *Controller) Activate(ctx SceneContext) {
	if ctl.active {
		return
	}
	if ctl.c.Scheduler == nil {
		utils.Debug("Vision: no scheduler, activation ignored")
		return
	}
	if ctl.c.Hosts == nil {
		utils.Debug("Vision: no host provider, activation ignored")
		return
	}
	host, ok := ctl.c.Hosts.Host(ctx)
	if !ok || host == nil {
		utils.Debug("Vision: no scene for context %q, activation ignored", ctx)
		return
	}

	ctl.active = true
	ctl.start = ctl.c.Scheduler.Now()
	ctl.ctx = ctx
	ctl.host = host
	ctl.manager.Clear()

	ctl.window = ctl.currentWindow()
	ctl.manager.SetClip(ClipFor(ctl.window, ctl.opts.GroundLevel))
	ctl.manager.SetIntensity(0)
	if ctl.c.Chrome != nil {
		ctl.c.Chrome.Show(ctl.window)
	}

	ctl.queue.Start(ctl.classify())
	ctl.refresh = ctl.c.Scheduler.Every(ctl.opts.RefreshInterval, ctl.reevaluate)

	utils.Info("Vision: activated in %s", ctx)
	ctl.track("activate", map[string]any{"sceneContext": string(ctx), "mode": "window"})
}

// Deactivate ends the running session and removes every ghost.
func (ctl *Controller) Deactivate() {
	if !ctl.active {
		return
	}
	elapsed := time.Duration(0)
	if ctl.c.Scheduler != nil {
		elapsed = ctl.c.Scheduler.Now().Sub(ctl.start)
	}
	ctl.teardown()
	utils.Info("Vision: deactivated after %s", elapsed.Round(time.Millisecond))
	ctl.track("deactivate", map[string]any{
		"sceneContext": string(ctl.ctx),
		"duration":     elapsed.Milliseconds(),
	})
}

// ForceDeactivate guarantees teardown whatever the current state. Scene
// switches call it.
func (ctl *Controller) ForceDeactivate() {
	if ctl.active {
		ctl.Deactivate()
		return
	}
	ctl.teardown()
}

func (ctl *Controller) teardown() {
	ctl.active = false
	if ctl.refresh != nil {
		ctl.refresh.Stop()
		ctl.refresh = nil
	}
	ctl.queue.Cancel()
	ctl.manager.Clear()
	if ctl.c.Chrome != nil {
		ctl.c.Chrome.Hide()
	}
	ctl.host = nil
}

// Update is called once per frame whether or not a session runs.
func (ctl *Controller) Update() {
	if !ctl.active || ctl.c.Scheduler == nil {
		return
	}
	now := ctl.c.Scheduler.Now()
	elapsed := now.Sub(ctl.start)
	if elapsed >= ctl.opts.Duration {
		ctl.Deactivate()
		return
	}

	env := Envelope(elapsed, ctl.opts.Duration)
	ctl.manager.SetIntensity(env)
	ctl.manager.Sync(now, ctl.opts.SyncInterval)
	if ctl.c.Chrome != nil {
		ctl.c.Chrome.Pulse(env, Pulse(elapsed))
	}
}

func (ctl *Controller) reevaluate() {
	if !ctl.active {
		return
	}

	if w := ctl.currentWindow(); w != ctl.window {
		ctl.window = w
		ctl.manager.SetClip(ClipFor(w, ctl.opts.GroundLevel))
		if ctl.c.Chrome != nil {
			ctl.c.Chrome.Show(w)
		}
	}

	visible := ctl.classify()
	toAdd, toRemove := ctl.manager.Diff(visible)
	for _, o := range toRemove {
		ctl.manager.Remove(o)
	}

	keep := make(map[*scene.Node]struct{}, len(visible))
	for _, o := range visible {
		keep[o] = struct{}{}
	}
	ctl.queue.Retain(func(o *scene.Node) bool {
		_, ok := keep[o]
		return ok
	})
	ctl.queue.Enqueue(toAdd)
}

// ghost is the queue's per-item work.
func (ctl *Controller) ghost(obj *scene.Node) {
	if !ctl.active || ctl.host == nil {
		return
	}
	ctl.manager.Add(obj, ctl.host, ctl.c.Scheduler.Now())
}

func (ctl *Controller) classify() []*scene.Node {
	if ctl.c.Candidates == nil {
		utils.Debug("Vision: no candidate source")
		return nil
	}
	if ctl.c.Camera == nil {
		utils.Debug("Vision: no camera provider")
		return nil
	}
	cam, ok := ctl.c.Camera.Camera()
	if !ok {
		utils.Debug("Vision: camera unavailable")
		return nil
	}
	candidates := ctl.c.Candidates.Candidates(ctl.ctx)
	return Classify(ctl.opts.Classifier, candidates, NewView(cam, ctl.window))
}

func (ctl *Controller) currentWindow() Window {
	w, h := 0, 0
	if ctl.c.Viewport != nil {
		w, h = ctl.c.Viewport.ScreenSize()
	}
	return WindowFor(w, h, ctl.opts.WindowWidth, ctl.opts.WindowHeight)
}

func (ctl *Controller) track(action string, props map[string]any) {
	if ctl.c.Tracker == nil {
		return
	}
	if err := ctl.c.Tracker.TrackInteraction("vision", action, props); err != nil {
		utils.Debug("Vision: analytics %s failed: %v", action, err)
	}
}
