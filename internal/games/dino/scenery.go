package dino

import (
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/render"
)

// Cloud drifts left at its own pace, independent of the game speed.
type Cloud struct {
	Position core.Vector
	Speed    float64
}

// CloudSpawner keeps the sky populated.
type CloudSpawner struct {
	Timer float64
}

// Setup scatters half of the clouds over the upper half of the screen.
func (cs *CloudSpawner) Setup(w *World) {
	for range w.cfg.Clouds.Count / 2 {
		pos := core.Vec(w.rng.Float64()*w.Width, w.rng.Float64()*w.Height/2)
		w.Clouds = append(w.Clouds, Cloud{Position: pos, Speed: w.cloudSpeed()})
	}
}

// Update adds a cloud at the right edge every interval while there are
// fewer than the configured count. A cloud whose row is taken by another
// cloud is not added.
func (cs *CloudSpawner) Update(dt float64, w *World) {
	cs.Timer += dt
	if len(w.Clouds) >= w.cfg.Clouds.Count || cs.Timer < w.cfg.Clouds.Interval {
		return
	}
	cs.Timer = 0

	pos := core.Vec(w.Width+1, w.rng.Float64()*w.Height/2)
	h := float64(w.sprites.cloud.H)
	for _, c := range w.Clouds {
		if math.Abs(c.Position.Y-pos.Y) < h {
			return
		}
	}
	w.Clouds = append(w.Clouds, Cloud{Position: pos, Speed: w.cloudSpeed()})
}

func (w *World) cloudSpeed() float64 {
	lo, hi := w.cfg.Clouds.MinSpeed, w.cfg.Clouds.MaxSpeed
	return lo + w.rng.Float64()*(hi-lo)
}

// updateClouds moves the clouds and sends the ones that left the screen
// back in from the right with a new row and speed.
func (w *World) updateClouds(dt float64) {
	cw := float64(w.sprites.cloud.W)
	for i := range w.Clouds {
		c := &w.Clouds[i]
		c.Position.X -= c.Speed * dt
		if c.Position.X < -cw {
			c.Position = core.Vec(w.Width+cw, w.rng.Float64()*w.Height/2)
			c.Speed = w.cloudSpeed()
		}
	}
	w.cloudSpawner.Update(dt, w)
}

// Ground is the scrolling strip under the runner. Offset wraps at the
// texture width.
type Ground struct {
	Offset float64
}

// Update scrolls the strip by the distance the obstacles travel.
func (g *Ground) Update(dt float64, w *World) {
	g.Offset += w.cfg.Physics.BaseSpeed * w.Speed * dt
	if tw := float64(w.sprites.ground.W); tw > 0 {
		g.Offset = math.Mod(g.Offset, tw)
	}
}

func (g *Ground) render(s render.Surface, w *World) {
	tex := w.sprites.ground
	tw := float64(tex.W)
	if tw <= 0 {
		return
	}
	y := w.Height - float64(tex.H)
	for x := -g.Offset; x < w.Width; x += tw {
		s.DrawSprite(w.atlas, tex, core.Vec(x, y), core.ColorWhite)
	}
}
