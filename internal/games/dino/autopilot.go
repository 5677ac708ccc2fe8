package dino

import (
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/core"
)

const (
	initialAirtime   = 0.5
	airtimeSmoothing = 0.2
)

// Autopilot plays the runner with a reflex model: it waits until the next
// obstacle is half an average jump away, then jumps over cacti or ducks
// under pterodactyls. The average airtime is learned from its own jumps.
type Autopilot struct {
	AvgAirtime float64

	airtime  float64
	airborne bool
}

// NewAutopilot creates an autopilot with a starting airtime guess.
func NewAutopilot() *Autopilot {
	return &Autopilot{AvgAirtime: initialAirtime}
}

// Controls decides the next substep for the runner of w.
func (a *Autopilot) Controls(dt float64, w *World) Controls {
	d := w.Dino
	a.learn(dt, d.Grounded())

	o := a.nextObstacle(w)
	if o == nil || !a.react(w, o) {
		return Controls{Crouch: !d.Grounded()}
	}
	if o.Kind == KindPterodactyl {
		return Controls{Crouch: true}
	}
	return Controls{Jump: true, Scalar: a.jumpScalar(w, o)}
}

// learn times every jump from takeoff to landing and folds it into the
// moving average.
func (a *Autopilot) learn(dt float64, grounded bool) {
	if !grounded {
		a.airtime += dt
		a.airborne = true
		return
	}
	if a.airborne {
		a.AvgAirtime += airtimeSmoothing * (a.airtime - a.AvgAirtime)
		a.airtime = 0
		a.airborne = false
	}
}

// nextObstacle returns the closest obstacle that has not fully passed the
// runner. Obstacles scroll at the same speed, so spawn order is screen
// order.
func (a *Autopilot) nextObstacle(w *World) *Obstacle {
	x := w.Dino.Position.X
	for _, o := range w.Obstacles {
		if o.Position.X+o.Width() > x {
			return o
		}
	}
	return nil
}

// react reports whether o is close enough to act on: its center reaches
// the runner's center within half an average jump, or it has already
// passed the runner's leading edge.
func (a *Autopilot) react(w *World, o *Obstacle) bool {
	d := w.Dino
	ds := d.Sprite()
	lead := d.Position.X + float64(ds.W)
	if o.Position.X <= lead {
		return true
	}

	distance := (o.Position.X + o.Width()/2) - (d.Position.X + float64(ds.W)/2)
	speed := o.Velocity.X * w.Speed
	reach := math.Inf(1)
	if speed > 0 {
		reach = distance / speed
	}
	return reach <= a.AvgAirtime/2
}

// jumpScalar grows from a regular jump for the narrowest cactus to a long
// jump for the widest.
func (a *Autopilot) jumpScalar(w *World, o *Obstacle) float64 {
	lo, hi := w.sprites.cactusWidths()
	t := 1.0
	if hi > lo {
		t = core.Clamp((o.Width()-lo)/(hi-lo), 0, 1)
	}
	return core.Lerp(1, w.cfg.Physics.LongJump, t)
}
