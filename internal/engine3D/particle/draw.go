package particle

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Draw renders the particles additively without writing depth. Must be
// called inside BeginMode3D.
func (ps *ParticleSystem) Draw() {
	if ps.Done || len(ps.Particles) == 0 {
		return
	}
	rl.DrawRenderBatchActive()
	rl.DisableDepthMask()
	rl.BeginBlendMode(rl.BlendAdditive)
	for _, p := range ps.Particles {
		pos := rl.Vector3Add(ps.Origin, p.Position)
		rl.DrawSphereEx(pos, p.Size, 4, 4, rl.Fade(p.Color, p.Alpha))
	}
	rl.EndBlendMode()
	rl.DrawRenderBatchActive()
	rl.EnableDepthMask()
}
