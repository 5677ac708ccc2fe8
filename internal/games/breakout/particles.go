package breakout

import (
	"math/rand"

	"github.com/vovakirdan/pixel-arcade/internal/config"
	"github.com/vovakirdan/pixel-arcade/internal/core"
)

// Particle is one fading speck of a bounce explosion.
type Particle struct {
	Position core.Vector
	Velocity core.Vector
	Duration float64
}

// Particles is the live particle set.
type Particles []Particle

// Explode adds cfg.Count particles around center. They inherit a quarter
// of the ball velocity.
func (ps *Particles) Explode(center, velocity core.Vector, cfg config.BreakoutParticles, rng *rand.Rand) {
	for range cfg.Count {
		*ps = append(*ps, Particle{
			Position: center.Add(core.RandomInRadius(rng, cfg.Spread)),
			Velocity: core.RandomInRadius(rng, cfg.Speed).Add(velocity.Scale(0.25)),
			Duration: cfg.Lifetime,
		})
	}
}

// Update moves, damps and ages every particle and drops the expired ones.
func (ps *Particles) Update(dt float64, cfg config.BreakoutParticles, rng *rand.Rand) {
	live := (*ps)[:0]
	for _, p := range *ps {
		p.Position = p.Position.Add(p.Velocity.Scale(dt))
		p.Velocity = p.Velocity.Scale(cfg.Damping).Add(core.RandomInRadius(rng, cfg.Jitter*dt))
		p.Duration -= dt
		if p.Duration > 0 {
			live = append(live, p)
		}
	}
	clear((*ps)[len(live):])
	*ps = live
}
