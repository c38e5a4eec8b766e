package main

import (
	"github.com/chewxy/math32"
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	mouseSensitivity = 0.002
	eyeHeight        = 1.6
	bodyRadius       = 0.35
	// the collision sphere sits at chest height
	bodyCentre = 1.0
)

// Player is the first-person body. Yaw 0 looks down -Z.
type Player struct {
	Pos        rl.Vector3
	Yaw, Pitch float32
	// Spectator flies freely and may look straight up or down.
	Spectator bool
}

// Look turns by a mouse delta in pixels.
func (p *Player) Look(dx, dy float32) {
	p.Yaw += dx * mouseSensitivity
	p.Pitch -= dy * mouseSensitivity
	limit := math32.Pi / 3
	if p.Spectator {
		limit = math32.Pi/2 - 0.01
	}
	p.Pitch = max(-limit, min(limit, p.Pitch))
}

// Forward is the horizontal facing direction.
func (p *Player) Forward() rl.Vector3 {
	s, c := math32.Sincos(p.Yaw)
	return rl.NewVector3(s, 0, -c)
}

func (p *Player) Right() rl.Vector3 {
	s, c := math32.Sincos(p.Yaw)
	return rl.NewVector3(c, 0, s)
}

// Direction is the full look direction including pitch.
func (p *Player) Direction() rl.Vector3 {
	sp, cp := math32.Sincos(p.Pitch)
	f := p.Forward()
	return rl.NewVector3(f.X*cp, sp, f.Z*cp)
}

func (p *Player) Eye() rl.Vector3 {
	if p.Spectator {
		return p.Pos
	}
	return rl.NewVector3(p.Pos.X, p.Pos.Y+eyeHeight, p.Pos.Z)
}

// Move walks dist along the forward/strafe input. Each horizontal axis is
// tried on its own so the body slides along walls instead of sticking.
func (p *Player) Move(forward, strafe, dist float32, blocked func(centre rl.Vector3, radius float32) bool) {
	dir := rl.Vector3Add(rl.Vector3Scale(p.Forward(), forward), rl.Vector3Scale(p.Right(), strafe))
	if p.Spectator {
		dir = rl.Vector3Add(rl.Vector3Scale(p.Direction(), forward), rl.Vector3Scale(p.Right(), strafe))
	}
	if rl.Vector3Length(dir) == 0 {
		return
	}
	step := rl.Vector3Scale(rl.Vector3Normalize(dir), dist)
	if p.Spectator {
		p.Pos = rl.Vector3Add(p.Pos, step)
		return
	}
	for _, d := range [2]rl.Vector3{{X: step.X}, {Z: step.Z}} {
		next := rl.Vector3Add(p.Pos, d)
		if blocked != nil && blocked(rl.NewVector3(next.X, next.Y+bodyCentre, next.Z), bodyRadius) {
			continue
		}
		p.Pos = next
	}
}

// LookAt points the view at target from the current eye.
func (p *Player) LookAt(target rl.Vector3) {
	d := rl.Vector3Subtract(target, p.Eye())
	if rl.Vector3Length(d) == 0 {
		return
	}
	d = rl.Vector3Normalize(d)
	p.Yaw = math32.Atan2(d.X, -d.Z)
	p.Pitch = math32.Asin(d.Y)
}

// Apply copies the view into a raylib camera.
func (p *Player) Apply(cam *rl.Camera3D) {
	eye := p.Eye()
	cam.Position = eye
	cam.Target = rl.Vector3Add(eye, p.Direction())
	cam.Up = rl.NewVector3(0, 1, 0)
}
