package dino

import (
	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/collision"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/render"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// Controls is what the runner is asked to do during one substep.
type Controls struct {
	Jump   bool
	Scalar float64 // jump strength, 0 means a regular jump
	Crouch bool
}

// Dinosaur is the runner. Only its vertical axis moves; the world scrolls
// past it.
type Dinosaur struct {
	Position     core.Vector
	Velocity     core.Vector
	Acceleration core.Vector

	Crouching bool
	Dead      bool
	// Invulnerable is the remaining time during which hits are ignored.
	Invulnerable float64

	spriteTimer float64
	world       *World
}

func newDinosaur(w *World) *Dinosaur {
	d := &Dinosaur{world: w}
	d.Position = core.Vec(w.cfg.Player.X, d.groundHeight())
	return d
}

// groundHeight is the y the runner rests at in its current pose.
func (d *Dinosaur) groundHeight() float64 {
	w := d.world
	h := w.sprites.run[0].H
	if d.Crouching {
		h = w.sprites.crouch[0].H
	}
	return w.Height - float64(w.sprites.ground.H) - float64(h) + w.cfg.Player.GroundOffset
}

// Grounded reports whether the runner stands on the ground.
func (d *Dinosaur) Grounded() bool {
	return d.Velocity.Y >= 0 && d.Position.Y >= d.groundHeight()
}

// IsInvulnerable reports whether the runner is blinking after a hit.
func (d *Dinosaur) IsInvulnerable() bool {
	return d.Invulnerable > 0
}

// Jump launches the runner when it stands on the ground. The launch is a
// one-substep acceleration that leaves the runner with an upward velocity
// of JumpVelocity times scalar.
func (d *Dinosaur) Jump(dt, scalar float64) bool {
	if dt <= 0 || !d.Grounded() {
		return false
	}
	if scalar <= 0 {
		scalar = 1
	}
	d.Acceleration.Y = -d.world.cfg.Physics.JumpVelocity * scalar / dt
	d.world.audio.PlayEffect(audio.EffectJump)
	return true
}

// Update integrates one substep with velocity Verlet.
func (d *Dinosaur) Update(dt float64, c Controls) {
	w := d.world
	phys := w.cfg.Physics

	if d.Invulnerable > 0 {
		d.Invulnerable = max(d.Invulnerable-dt, 0)
	}

	d.spriteTimer += dt * w.Speed
	if period := w.cfg.Player.SpriteInterval * 2; period > 0 {
		for d.spriteTimer >= period {
			d.spriteTimer -= period
		}
	}

	// A launch set by Jump is kept while grounded.
	if !d.Grounded() {
		if d.Velocity.Y < 0 {
			d.Acceleration.Y = phys.Gravity * w.gravityFactor()
		} else {
			d.Acceleration.Y = phys.FallForce * w.gravityFactor()
		}
	}

	d.apply(dt, c)

	d.Position.Y += d.Velocity.Y*dt + 0.5*d.Acceleration.Y*dt*dt
	d.Velocity.Y += d.Acceleration.Y * dt

	d.constrain()
}

// apply handles crouching and jumping. Crouching on the ground ducks at
// once; crouching in the air only pulls the runner down harder.
func (d *Dinosaur) apply(dt float64, c Controls) {
	if c.Crouch {
		if d.Grounded() {
			d.Crouching = true
			d.Position.Y = d.groundHeight()
		} else {
			d.Crouching = false
			d.Acceleration.Y += d.world.cfg.Physics.FallForce
		}
		return
	}

	d.Crouching = false
	if c.Jump {
		d.Jump(dt, c.Scalar)
	}
}

func (d *Dinosaur) constrain() {
	if gh := d.groundHeight(); d.Position.Y >= gh {
		d.Position.Y = gh
		d.Velocity.Y = 0
		d.Acceleration.Y = 0
	} else if d.Position.Y < 0 {
		d.Position.Y = 0
		d.Velocity.Y = 0
	}
}

// Sprite returns the current animation frame.
func (d *Dinosaur) Sprite() sprite.Sprite {
	s := d.world.sprites
	frame := 0
	if d.spriteTimer >= d.world.cfg.Player.SpriteInterval {
		frame = 1
	}
	switch {
	case d.Dead:
		return s.dead
	case !d.Grounded():
		return s.idle
	case d.Crouching:
		return s.crouch[frame]
	default:
		return s.run[frame]
	}
}

// Bounds returns the box of the current frame.
func (d *Dinosaur) Bounds() core.Rect {
	return collision.Bounds(d.Position, d.Sprite())
}

// Resize puts the runner back on the ground line of the new viewport.
func (d *Dinosaur) Resize() {
	d.Position.Y = core.Clamp(d.Position.Y, 0, d.groundHeight())
}

func (d *Dinosaur) render(s render.Surface, t float64) {
	c := core.ColorBrightWhite
	if d.IsInvulnerable() && core.Oscillate(t, 2.5, 0, 1) < 0.5 {
		c = core.ColorGray
	}
	s.DrawSprite(d.world.atlas, d.Sprite(), d.Position, c)
}
