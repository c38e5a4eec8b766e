package vision

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	GlowRenderOrder    = 9999
	OutlineRenderOrder = 10000
)

// ClipUniforms confine a ghost to the vision window and above the ground.
type ClipUniforms struct {
	WindowCenter rl.Vector2
	WindowSize   rl.Vector2
	ScreenSize   rl.Vector2
	GroundLevel  float32
}

func ClipFor(w Window, groundLevel float32) ClipUniforms {
	return ClipUniforms{
		WindowCenter: w.Center,
		WindowSize:   w.Size,
		ScreenSize:   w.Screen,
		GroundLevel:  groundLevel,
	}
}

// Keeps mirrors the fragment discard rule of the ghost shaders: a fragment
// survives only above the ground plane and inside the window rectangle.
func (c ClipUniforms) Keeps(worldY float32, pixel rl.Vector2) bool {
	if worldY < c.GroundLevel {
		return false
	}
	lo := rl.NewVector2(c.WindowCenter.X-c.WindowSize.X/2, c.WindowCenter.Y-c.WindowSize.Y/2)
	hi := rl.NewVector2(c.WindowCenter.X+c.WindowSize.X/2, c.WindowCenter.Y+c.WindowSize.Y/2)
	return pixel.X >= lo.X && pixel.X <= hi.X && pixel.Y >= lo.Y && pixel.Y <= hi.Y
}

// GlowMaterial is the translucent additive surface of a ghost.
type GlowMaterial struct {
	ClipUniforms
	Emissive      rl.Color
	BaseIntensity float32
	Intensity     float32
	Alpha         float32
}

func (*GlowMaterial) MaterialName() string { return "vision-glow" }

// SetEnvelope scales the emissive intensity by the session envelope.
func (m *GlowMaterial) SetEnvelope(env float32) {
	m.Intensity = m.BaseIntensity * env
}

// OutlineMaterial is the flat wireframe of a ghost.
type OutlineMaterial struct {
	ClipUniforms
	Color   rl.Color
	Opacity float32
}

func (*OutlineMaterial) MaterialName() string { return "vision-outline" }

func (m *OutlineMaterial) SetEnvelope(env float32) {
	m.Opacity = env
}
