// Package particle simulates small 3D point emitters such as the smoke
// drifting off the key.
package particle

import (
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type Particle struct {
	Position     rl.Vector3 // relative to the emitter origin
	Velocity     rl.Vector3
	Color        rl.Color
	Life         float32
	MaxLife      float32
	Alpha        float32
	InitialAlpha float32
	Size         float32
}

// Emitter configures a system. Zero fields fall back to DefaultEmitter's.
type Emitter struct {
	MaxCount int
	Rate     float32 // particles per second
	Lifetime time.Duration
	Spread   float32 // side of the spawn cube
	Rise     float32 // upward speed
	Wiggle   float32 // horizontal jitter per second
	MinSize  float32
	MaxSize  float32
	Color    rl.Color
	Alpha    float32
}

// DefaultEmitter is the pale blue smoke used for collectibles.
func DefaultEmitter() Emitter {
	return Emitter{
		MaxCount: 20,
		Rate:     10,
		Lifetime: 2 * time.Second,
		Spread:   0.2,
		Rise:     0.3,
		Wiggle:   0.1,
		MinSize:  0.02,
		MaxSize:  0.07,
		Color:    rl.NewColor(136, 204, 255, 255),
		Alpha:    0.7,
	}
}

type ParticleSystem struct {
	Name      string
	Config    Emitter
	Particles []*Particle
	Timer     float32
	Origin    rl.Vector3
	Done      bool
}
