package main

import (
	"math/rand"

	"portfolio3d/internal/engine3D"
	"portfolio3d/internal/engine3D/particle"
	"portfolio3d/internal/scene"
	"portfolio3d/internal/utils"
	"portfolio3d/internal/vision"
	"portfolio3d/internal/world"

	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Artwork is one piece hanging in the gallery. Each has its own viewer scene.
type Artwork struct {
	Name  string
	Shape string
	Color rl.Color
	Pos   rl.Vector3
}

var artPieces = []Artwork{
	{"Red Cube", "cube", rl.NewColor(255, 68, 68, 255), rl.NewVector3(-10, 2, -14.5)},
	{"Green Sphere", "sphere", rl.NewColor(68, 255, 68, 255), rl.NewVector3(10, 2, -14.5)},
	{"Blue Cylinder", "cylinder", rl.NewColor(68, 68, 255, 255), rl.NewVector3(-14.5, 2, -5)},
	{"Yellow Cone", "cone", rl.NewColor(255, 255, 68, 255), rl.NewVector3(14.5, 2, 5)},
}

func shapeGeometry(shape string) *scene.Geometry {
	switch shape {
	case "sphere":
		return scene.SphereGeometry(2.5, 24)
	case "cylinder":
		return scene.CylinderGeometry(2, 2, 6, 24)
	case "cone":
		return scene.CylinderGeometry(0, 2.5, 6, 24)
	default:
		return scene.BoxGeometry(4, 4, 4)
	}
}

// World is every scene of the walk-through plus the state shared between
// them.
type World struct {
	Registry  *world.Registry
	Inventory *world.Inventory
	Spawn     map[vision.SceneContext]rl.Vector3
	Sky       map[vision.SceneContext]rl.Color
	// Spinners rotate slowly in the viewer scenes.
	Spinners map[vision.SceneContext]*scene.Node
	// Key bobs in place and trails smoke until it is picked up.
	Key   *scene.Node
	Smoke *particle.ParticleSystem

	hoverBase float32
	hoverTime float32
	rng       *rand.Rand
}

// BuildWorld creates the main world, the gallery and one viewer per
// artwork. previews maps art index to a loaded texture; missing entries get
// a flat colour.
func BuildWorld(tracker vision.Tracker, previews map[int]rl.Texture2D) *World {
	reg := world.NewRegistry()
	w := &World{
		Registry:  reg,
		Inventory: world.NewInventory(reg, tracker),
		Spawn:     make(map[vision.SceneContext]rl.Vector3),
		Sky:       make(map[vision.SceneContext]rl.Color),
		Spinners:  make(map[vision.SceneContext]*scene.Node),
		Smoke:     particle.NewParticleSystem("key-smoke", particle.DefaultEmitter()),
		rng:       rand.New(rand.NewSource(1)),
	}
	w.buildMain()
	w.buildGallery(previews)
	for i, art := range artPieces {
		w.buildViewer(i, art)
	}
	return w
}

func mesh(name string, g *scene.Geometry, col rl.Color, x, y, z float32) *scene.Node {
	n := scene.NewMesh(name, g, scene.BasicMaterial{Color: col})
	n.Position = rl.NewVector3(x, y, z)
	return n
}

func ground(s *scene.Scene, size float32, col rl.Color) {
	floor := scene.NewMesh("floor", scene.PlaneGeometry(size, size), scene.BasicMaterial{Color: col})
	floor.Rotation.X = -math32.Pi / 2
	s.AddNode(floor)
}

// collider registers an invisible collision volume.
func (w *World) collider(ctx vision.SceneContext, name string, x, y, z, sx, sy, sz float32) *scene.Node {
	n := mesh(name, scene.BoxGeometry(sx, sy, sz), rl.Blank, x, y, z)
	n.Visible = false
	w.Registry.Register(ctx, n, world.Meta{Kind: world.KindCollision, Label: name})
	return n
}

func (w *World) buildMain() {
	ctx := vision.ContextMain
	s := scene.New(string(ctx))
	w.Registry.AddScene(ctx, s)
	w.Spawn[ctx] = rl.NewVector3(0, 0, 5)
	ground(s, 80, rl.NewColor(40, 48, 36, 255))

	prop := func(n *scene.Node, label string) *scene.Node {
		w.Registry.Register(ctx, n, world.Meta{Kind: world.KindProp, Label: label})
		return n
	}
	collectible := func(n *scene.Node, label string) *scene.Node {
		w.Registry.Register(ctx, n, world.Meta{Kind: world.KindProp, Label: label, Collectible: true})
		return n
	}

	church := prop(mesh("church", scene.BoxGeometry(8, 10, 12), rl.NewColor(110, 100, 95, 255), 25, 5, -4), "Old Church")
	church.Rotation.Y = 30
	w.collider(ctx, "church-walls", 25, 5, -4, 10, 10, 13)

	altar := prop(mesh("altar", scene.BoxGeometry(2.5, 1.2, 1.2), rl.NewColor(150, 140, 130, 255), -15, 0.6, -8), "Altar")
	altar.Rotation.Y = math32.Pi / 4
	w.collider(ctx, "altar-block", -15, 0.6, -8, 2.5, 1.2, 2.5)

	grave := prop(mesh("grave", scene.BoxGeometry(1, 1.6, 0.3), rl.NewColor(120, 120, 125, 255), 16, 0.8, 10), "Ancient Tombstone")
	grave.Rotation.Y = 10
	prop(mesh("paper", scene.PlaneGeometry(0.4, 0.3), rl.NewColor(235, 225, 200, 255), 22, 1, -5), "Letter")
	prop(mesh("crow", scene.BoxGeometry(0.4, 0.4, 0.6), rl.NewColor(20, 20, 24, 255), 14, 1.4, -18), "Messenger Crow")

	prop(mesh("desk", scene.BoxGeometry(3, 1, 1.5), rl.NewColor(101, 67, 33, 255), 11, 0.5, -18), "Desk")
	w.collider(ctx, "desk-block", 11, 0.5, -18, 3, 1, 1.5)
	prop(mesh("desk2", scene.BoxGeometry(2, 1, 1.2), rl.NewColor(90, 60, 30, 255), 13.5, 0.5, -18), "Writing Desk")
	collectible(mesh("book1", scene.BoxGeometry(0.4, 0.1, 0.3), rl.NewColor(140, 30, 30, 255), 11.3, 1.1, -17.9), "Red Book")
	collectible(mesh("book2", scene.BoxGeometry(0.4, 0.1, 0.3), rl.NewColor(30, 60, 140, 255), 10.2, 1.1, -17.5), "Blue Book")
	collectible(mesh("scroll", scene.CylinderGeometry(0.05, 0.05, 0.4, 8), rl.NewColor(220, 200, 150, 255), 13, 1.4, -17.4), "Scroll")
	w.Key = collectible(mesh("key", scene.BoxGeometry(0.3, 0.1, 0.1), rl.Gold, -10, 1, 5), "Key")
	w.Key.Rotation.Y = math32.Pi / 4
	w.hoverBase = w.Key.Position.Y

	door := prop(mesh("door", scene.BoxGeometry(2, 3, 0.2), rl.NewColor(80, 50, 30, 255), 15, 1.5, -10), "Door")
	doorBlock := w.collider(ctx, "door-block", 15, 1.5, -10, 2, 3, 0.6)
	w.Inventory.AddLock(door, "Key", func(n *scene.Node, it world.Item) {
		n.Position.Z -= 3
		w.Registry.Unregister(doorBlock)
		s.RemoveNode(doorBlock)
		utils.Info("Door unlocked with %s", it.Name)
	})

	portal := mesh("portal", scene.BoxGeometry(2.5, 3.5, 0.3), rl.NewColor(153, 80, 255, 255), 0, 1.75, -12)
	w.Registry.Register(ctx, portal, world.Meta{
		Kind:        world.KindPortal,
		Label:       "Gallery",
		Destination: vision.ContextGallery,
	})
}

func (w *World) buildGallery(previews map[int]rl.Texture2D) {
	ctx := vision.ContextGallery
	s := scene.New(string(ctx))
	w.Registry.AddScene(ctx, s)
	w.Spawn[ctx] = rl.NewVector3(0, 0, 10)
	w.Sky[ctx] = rl.NewColor(42, 24, 16, 255)
	ground(s, 44, rl.NewColor(50, 40, 35, 255))

	wall := rl.NewColor(60, 50, 45, 255)
	for _, wl := range []struct {
		name       string
		x, z, w, d float32
	}{
		{"back-wall", 0, -15, 30, 0.5},
		{"left-wall", -15, 0, 0.5, 30},
		{"right-wall", 15, 0, 0.5, 30},
	} {
		s.AddNode(mesh(wl.name, scene.BoxGeometry(wl.w, 8, wl.d), wall, wl.x, 4, wl.z))
		w.collider(ctx, wl.name+"-block", wl.x, 4, wl.z, wl.w, 8, wl.d)
	}

	for i, art := range artPieces {
		yaw := frameYaw(art.Pos)
		frame := mesh("frame-"+art.Shape, scene.PlaneGeometry(4, 3), rl.NewColor(139, 69, 19, 255), art.Pos.X, art.Pos.Y, art.Pos.Z)
		frame.Rotation.Y = yaw
		s.AddNode(frame)

		var mat scene.Material = scene.BasicMaterial{Color: art.Color}
		if tex, ok := previews[i]; ok {
			mat = &engine3D.ArtworkMaterial{Texture: tex, Tint: rl.White}
		}
		preview := scene.NewMesh("preview-"+art.Shape, scene.PlaneGeometry(3.5, 2.5), mat)
		preview.Position = rl.Vector3Add(art.Pos, frameNormal(yaw, 0.02))
		preview.Rotation.Y = yaw
		w.Registry.Register(ctx, preview, world.Meta{
			Kind:        world.KindGalleryFrame,
			Label:       art.Name,
			Destination: vision.ViewerContext(art.Shape),
			ArtIndex:    i,
		})
	}

	back := mesh("return-portal", scene.BoxGeometry(2.5, 3.5, 0.3), rl.NewColor(255, 153, 0, 255), 0, 1.75, 15)
	back.Rotation.Y = math32.Pi
	w.Registry.Register(ctx, back, world.Meta{
		Kind:        world.KindReturnPortal,
		Label:       "Main World",
		Destination: vision.ContextMain,
	})
}

func (w *World) buildViewer(index int, art Artwork) {
	ctx := vision.ViewerContext(art.Shape)
	s := scene.New(string(ctx))
	w.Registry.AddScene(ctx, s)
	w.Spawn[ctx] = rl.NewVector3(8, 5, 8)
	w.Sky[ctx] = rl.NewColor(10, 10, 10, 255)

	piece := scene.NewMesh(art.Shape, shapeGeometry(art.Shape), scene.BasicMaterial{Color: art.Color})
	w.Registry.Register(ctx, piece, world.Meta{Kind: world.KindProp, Label: art.Name, ArtIndex: index})
	w.Spinners[ctx] = piece
}

// frameYaw faces a frame away from the wall it hangs on.
func frameYaw(pos rl.Vector3) float32 {
	switch {
	case pos.Z < 0:
		return 0
	case pos.X < 0:
		return math32.Pi / 2
	default:
		return -math32.Pi / 2
	}
}

// frameNormal is the offset of length d along a frame's facing direction.
func frameNormal(yaw, d float32) rl.Vector3 {
	s, c := math32.Sincos(yaw)
	return rl.NewVector3(s*d, 0, c*d)
}

// Animate advances the viewer pieces, the key hover and its smoke.
func (w *World) Animate(dt float32) {
	for _, n := range w.Spinners {
		n.Rotation.Y += 0.5 * dt
		n.Rotation.X += 0.2 * dt
	}

	home, _ := w.Registry.Scene(vision.ContextMain)
	if w.Key == nil || home == nil || !home.Contains(w.Key) {
		if !w.Smoke.Done {
			w.Smoke.Stop()
		}
		return
	}
	w.hoverTime += dt * 0.6
	w.Key.Position.Y = w.hoverBase + math32.Sin(w.hoverTime)*0.2
	w.Key.Rotation.Y += dt * 0.5
	w.Smoke.Origin = w.Key.Position
	w.Smoke.Update(dt, w.rng)
}
