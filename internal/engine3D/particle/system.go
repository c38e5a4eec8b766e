package particle

import (
	"math/rand"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// NewParticleSystem creates a system with unset options taken from
// DefaultEmitter.
func NewParticleSystem(name string, cfg Emitter) *ParticleSystem {
	def := DefaultEmitter()
	if cfg.MaxCount <= 0 {
		cfg.MaxCount = def.MaxCount
	}
	if cfg.Rate <= 0 {
		cfg.Rate = def.Rate
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = def.Lifetime
	}
	if cfg.MaxSize <= 0 {
		cfg.MinSize, cfg.MaxSize = def.MinSize, def.MaxSize
	}
	if cfg.Alpha <= 0 {
		cfg.Alpha = def.Alpha
	}
	if cfg.Color.A == 0 {
		cfg.Color = def.Color
	}
	return &ParticleSystem{Name: name, Config: cfg}
}

// Update advances the simulation by dt seconds.
func (ps *ParticleSystem) Update(dt float32, rng *rand.Rand) {
	if ps.Done {
		return
	}

	for i := 0; i < len(ps.Particles); i++ {
		p := ps.Particles[i]
		p.Life -= dt
		if p.Life <= 0 {
			ps.Particles = append(ps.Particles[:i], ps.Particles[i+1:]...)
			i--
			continue
		}

		p.Alpha = p.InitialAlpha * fade(p)
		p.Position.X += p.Velocity.X*dt + (rng.Float32()-0.5)*ps.Config.Wiggle*dt
		p.Position.Y += p.Velocity.Y * dt
		p.Position.Z += p.Velocity.Z*dt + (rng.Float32()-0.5)*ps.Config.Wiggle*dt
	}

	// new particles start aging on the next update
	ps.Timer += dt
	spawnInterval := 1 / ps.Config.Rate
	for ps.Timer >= spawnInterval {
		ps.Timer -= spawnInterval
		if len(ps.Particles) < ps.Config.MaxCount {
			ps.spawnParticle(rng)
		}
	}
}

// Stop ends emission and drops live particles.
func (ps *ParticleSystem) Stop() {
	ps.Done = true
	ps.Particles = nil
}

func (ps *ParticleSystem) spawnParticle(rng *rand.Rand) {
	c := ps.Config
	jitter := func() float32 { return (rng.Float32() - 0.5) * c.Spread }
	life := float32(c.Lifetime.Seconds())
	ps.Particles = append(ps.Particles, &Particle{
		Position:     rl.NewVector3(jitter(), jitter(), jitter()),
		Velocity:     rl.NewVector3(0, c.Rise, 0),
		Color:        c.Color,
		Life:         life,
		MaxLife:      life,
		InitialAlpha: c.Alpha,
		Size:         c.MinSize + rng.Float32()*(c.MaxSize-c.MinSize),
	})
}

// fade ramps in over the first 10% of a particle's life and out over the
// last 20%.
func fade(p *Particle) float32 {
	age := (p.MaxLife - p.Life) / p.MaxLife
	m := float32(1)
	if age < 0.1 {
		m = age / 0.1
	}
	if remaining := p.Life / p.MaxLife; remaining < 0.2 {
		m = min(m, remaining/0.2)
	}
	return m
}
