package main

import (
	"fmt"
	"strings"
	"time"

	"portfolio3d/internal/analytics"
	"portfolio3d/internal/config"
	"portfolio3d/internal/debug"
	"portfolio3d/internal/engine3D"
	"portfolio3d/internal/loop"
	"portfolio3d/internal/scene"
	"portfolio3d/internal/utils"
	"portfolio3d/internal/vision"
	"portfolio3d/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// interaction reach in world units
const reach = 3

type Game struct {
	cfg      config.Config
	loop     *loop.Loop
	world    *World
	tracker  *analytics.Tracker
	renderer *engine3D.Renderer
	chrome   *engine3D.VisionChrome
	vision   *vision.Controller
	cues     *engine3D.CuePlayer
	overlay  *debug.DebugOverlay
	day      engine3D.DayCycle
	player   Player

	current   vision.SceneContext
	wasActive bool
	lastFrame time.Time
	prompt    string
	notice    string
	noticeEnd time.Time
	previews  map[int]rl.Texture2D
	watcher   *world.LayoutWatcher
}

// NewGame wires the vision session to the renderer, the world and the loop.
// It makes no window or GPU calls; Init does those.
func NewGame(cfg config.Config, clock loop.Clock, w *World, tracker *analytics.Tracker, width, height int) *Game {
	l := loop.New(clock)
	renderer := engine3D.NewRenderer(cfg.Window.FOV, width, height)

	accent, err := config.ParseColor(cfg.Vision.Accent)
	if err != nil {
		accent = rl.NewColor(0, 255, 255, 255)
	}
	chrome := engine3D.NewVisionChrome(accent)

	g := &Game{
		cfg:      cfg,
		loop:     l,
		world:    w,
		tracker:  tracker,
		renderer: renderer,
		chrome:   chrome,
		overlay:  debug.NewDebugOverlay(l.Now()),
		day: engine3D.DayCycle{
			MinutesPerDay: float64(cfg.World.MinutesPerDay),
			Start:         l.Now(),
			Offset:        0.3,
		},
		lastFrame: l.Now(),
	}
	g.vision = vision.NewController(cfg.VisionOptions(), vision.Collaborators{
		Camera:     renderer,
		Viewport:   renderer,
		Candidates: w.Registry,
		Hosts:      w.Registry,
		Tracker:    tracker,
		Chrome:     chrome,
		Scheduler:  l,
	})
	g.enter(vision.ContextMain)
	return g
}

// Init loads GPU and audio resources. The window must be open.
func (g *Game) Init(previews map[int]rl.Texture2D) {
	g.renderer.Init()
	g.previews = previews
	if g.cfg.Audio.Enabled {
		g.cues = engine3D.NewCuePlayer(map[engine3D.Cue]string{
			engine3D.CueActivate:   g.cfg.Audio.ActivateCue,
			engine3D.CueDeactivate: g.cfg.Audio.DeactivateCue,
		}, g.cfg.Audio.Volume)
	}
}

// Watch reloads the main world layout whenever path changes on disk.
func (g *Game) Watch(path string) error {
	lw, err := world.WatchLayout(path, g.loop.Post, func(l world.Layout) {
		applyLayout(g.world, l)
	})
	if err != nil {
		return err
	}
	g.watcher = lw
	return nil
}

func (g *Game) Close() {
	g.vision.ForceDeactivate()
	if g.watcher != nil {
		if err := g.watcher.Close(); err != nil {
			utils.Warn("Layout watcher close: %v", err)
		}
	}
	if g.cues != nil {
		g.cues.Close()
	}
	unloadPreviews(g.previews)
	g.renderer.Close()
}

func (g *Game) Run() {
	rl.SetTargetFPS(int32(g.cfg.Window.TargetFPS))
	rl.DisableCursor()

	for !rl.WindowShouldClose() {
		g.handleInput()
		g.Update()

		rl.BeginDrawing()
		g.Draw()
		rl.EndDrawing()
	}
}

// enter switches to ctx. Any running vision session is torn down first.
func (g *Game) enter(ctx vision.SceneContext) {
	g.vision.ForceDeactivate()
	from := g.current
	g.current = ctx
	g.player = Player{
		Pos:       g.world.Spawn[ctx],
		Spectator: strings.HasPrefix(string(ctx), "viewer:"),
	}
	if g.player.Spectator {
		g.player.LookAt(rl.NewVector3(0, 0, 0))
	}
	g.player.Apply(&g.renderer.Cam)
	if from != "" {
		if err := g.tracker.TrackInteraction("navigation", "switch_scene", map[string]any{
			"from": string(from),
			"to":   string(ctx),
		}); err != nil {
			utils.Debug("Analytics: %v", err)
		}
	}
	utils.Info("Switched to %s", ctx)
}

func (g *Game) currentScene() *scene.Scene {
	s, _ := g.world.Registry.Scene(g.current)
	return s
}

// Vision starts a session unless one is running or the viewer is open.
func (g *Game) Vision() {
	if g.vision.IsActive() || g.player.Spectator {
		return
	}
	g.vision.Activate(g.current)
}

// Interact acts on the nearest candidate in reach and reports what happened.
func (g *Game) Interact() string {
	n, m, ok := g.world.Registry.Nearest(g.current, g.player.Eye(), reach)
	if !ok {
		return ""
	}
	return g.interactWith(n, m)
}

func (g *Game) interactWith(n *scene.Node, m world.Meta) string {
	inv := g.world.Inventory
	switch {
	case m.Kind == world.KindPortal, m.Kind == world.KindReturnPortal, m.Kind == world.KindGalleryFrame:
		g.enter(m.Destination)
		return "Entered " + m.Label
	case m.Collectible:
		it, err := inv.Collect(n)
		if err != nil {
			return err.Error()
		}
		return "Picked up " + it.Name
	}

	hint := inv.Hint(n)
	if hint == "" {
		return m.Label
	}
	if strings.HasPrefix(hint, "Requires: ") {
		required := strings.TrimPrefix(hint, "Requires: ")
		for i, it := range inv.Items() {
			if it.Name == required {
				inv.Select(i)
			}
		}
	}
	if inv.UseOn(n) {
		return "Unlocked " + m.Label
	}
	return inv.Hint(n)
}

// Leave returns from an artwork viewer to the gallery.
func (g *Game) Leave() {
	if g.player.Spectator {
		g.enter(vision.ContextGallery)
	}
}

func (g *Game) handleInput() {
	d := rl.GetMouseDelta()
	g.player.Look(d.X, d.Y)

	switch {
	case rl.IsKeyPressed(rl.KeyV):
		g.Vision()
	case rl.IsKeyPressed(rl.KeyE):
		if msg := g.Interact(); msg != "" {
			g.notice, g.noticeEnd = msg, g.loop.Now().Add(2*time.Second)
		}
	case rl.IsKeyPressed(rl.KeyQ):
		g.Leave()
	case rl.IsKeyPressed(rl.KeyF8):
		utils.ShowDebugUI = !utils.ShowDebugUI
		g.overlay.ShowBoundingBoxes = utils.ShowDebugUI
	}
	for k := int32(rl.KeyOne); k <= rl.KeyNine; k++ {
		if rl.IsKeyPressed(k) {
			g.world.Inventory.Select(int(k - rl.KeyOne))
		}
	}

	var forward, strafe float32
	if rl.IsKeyDown(rl.KeyW) {
		forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		strafe++
	}
	if rl.IsKeyDown(rl.KeyA) {
		strafe--
	}
	speed := g.cfg.World.MoveSpeed
	switch {
	case g.player.Spectator:
		speed *= 3
	case rl.IsKeyDown(rl.KeyLeftShift):
		speed *= 2
	}
	g.player.Move(forward, strafe, speed*rl.GetFrameTime(), func(c rl.Vector3, r float32) bool {
		return g.world.Registry.Blocked(g.current, c, r)
	})
}

// Update advances one frame: loop callbacks, the vision session, chrome and
// sky.
func (g *Game) Update() {
	now := g.loop.Now()
	dt := now.Sub(g.lastFrame)
	g.lastFrame = now

	g.player.Apply(&g.renderer.Cam)
	g.world.Animate(float32(dt.Seconds()))

	g.loop.Tick()
	g.vision.Update()

	active := g.vision.IsActive()
	if g.cues != nil && active != g.wasActive {
		if active {
			g.cues.Play(engine3D.CueActivate)
		} else {
			g.cues.Play(engine3D.CueDeactivate)
		}
	}
	g.wasActive = active
	g.chrome.Update(dt)

	if sky, ok := g.world.Sky[g.current]; ok {
		g.renderer.Sky = sky
	} else {
		frac := g.day.Fraction(now)
		g.renderer.Sky = engine3D.SkyColor(frac)
		g.renderer.Light = rl.Vector3Normalize(rl.NewVector3(0.4, max(0.2, engine3D.SunHeight(frac)), 0.3))
	}

	g.prompt = ""
	if n, m, ok := g.world.Registry.Nearest(g.current, g.player.Eye(), reach); ok {
		g.prompt = promptFor(m, g.world.Inventory.Hint(n))
	}
	if now.Before(g.noticeEnd) {
		g.prompt = g.notice
	}

	if utils.ShowDebugUI {
		g.overlay.Update(now)
	}
}

func promptFor(m world.Meta, hint string) string {
	switch {
	case hint != "":
		return m.Label + ": " + hint
	case m.Kind == world.KindPortal, m.Kind == world.KindReturnPortal:
		return "Press E to enter " + m.Label
	case m.Kind == world.KindGalleryFrame:
		return "Press E to view " + m.Label
	case m.Collectible:
		return "Press E to pick up " + m.Label
	default:
		return m.Label
	}
}

func (g *Game) Draw() {
	g.renderer.Draw(g.currentScene())

	rl.BeginMode3D(g.renderer.Cam)
	if g.current == vision.ContextMain {
		g.world.Smoke.Draw()
	}
	g.overlay.DrawBoundingBoxes(g.world.Registry.Candidates(g.current), g.vision.Highlighted())
	rl.EndMode3D()

	g.chrome.Draw()
	g.drawHUD()

	if utils.ShowDebugUI {
		q := g.vision.Queue()
		var elapsed time.Duration
		if g.vision.IsActive() {
			elapsed = g.loop.Now().Sub(g.vision.StartTime())
		}
		g.overlay.DrawPanel(debug.Snapshot{
			Context:     g.current,
			Active:      g.vision.IsActive(),
			Elapsed:     elapsed,
			Highlighted: len(g.vision.Highlighted()),
			Pending:     len(q.Pending()),
			Steps:       q.Steps(),
			Render:      g.renderer.Stats(),
			Position:    g.player.Pos,
		})
	}
}

func (g *Game) drawHUD() {
	w, h := g.renderer.ScreenSize()
	cx, cy := int32(w/2), int32(h/2)
	rl.DrawLine(cx-6, cy, cx+6, cy, rl.RayWhite)
	rl.DrawLine(cx, cy-6, cx, cy+6, rl.RayWhite)

	if g.prompt != "" {
		size := rl.MeasureText(g.prompt, 20)
		rl.DrawText(g.prompt, cx-size/2, int32(h)-60, 20, rl.RayWhite)
	}

	items := g.world.Inventory.Items()
	sel, hasSel := g.world.Inventory.Selected()
	for i, it := range items {
		col := rl.LightGray
		if hasSel && it == sel {
			col = rl.Yellow
		}
		rl.DrawText(fmt.Sprintf("%d %s", i+1, it.Name), int32(w)-180, 10+int32(i)*22, 18, col)
	}

	if g.player.Spectator {
		rl.DrawText("Q - Return to gallery", 10, int32(h)-30, 18, rl.Yellow)
	}
}
