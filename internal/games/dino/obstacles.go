package dino

import (
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/collision"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// ObstacleKind tells cacti from pterodactyls.
type ObstacleKind int

const (
	KindCactus ObstacleKind = iota
	KindPterodactyl
)

func (k ObstacleKind) String() string {
	if k == KindPterodactyl {
		return "pterodactyl"
	}
	return "cactus"
}

// Obstacle scrolls from the right edge towards the runner.
type Obstacle struct {
	Kind     ObstacleKind
	Big      bool
	Position core.Vector
	Velocity core.Vector

	frames [2]sprite.Sprite
}

// Sprite returns the frame shown at time t. Pterodactyls flap twice a
// second; cacti have a single frame.
func (o *Obstacle) Sprite(t float64) sprite.Sprite {
	if math.Mod(t, 0.5) > 0.25 {
		return o.frames[0]
	}
	return o.frames[1]
}

// Bounds returns the obstacle box at time t.
func (o *Obstacle) Bounds(t float64) core.Rect {
	return collision.Bounds(o.Position, o.Sprite(t))
}

// Width is the width of the widest frame.
func (o *Obstacle) Width() float64 {
	return float64(max(o.frames[0].W, o.frames[1].W))
}

// OutOfScreen reports whether the obstacle has left through the left edge.
func (o *Obstacle) OutOfScreen() bool {
	return o.Position.X+o.Width() < 0
}

// Update scrolls the obstacle at the current game speed.
func (o *Obstacle) Update(dt, speed float64) {
	o.Position.X -= o.Velocity.X * speed * dt
}

func (w *World) newCactus() *Obstacle {
	big := w.rng.Float64() < w.cfg.Obstacles.BigCactusChance
	set := w.sprites.cactusSmall
	if big {
		set = w.sprites.cactusBig
	}
	s := set[w.rng.Intn(len(set))]
	return &Obstacle{
		Kind:     KindCactus,
		Big:      big,
		Position: core.Vec(w.Width+float64(s.W), w.cactusY(s)),
		Velocity: core.Vec(w.cfg.Physics.BaseSpeed, 0),
		frames:   [2]sprite.Sprite{s, s},
	}
}

func (w *World) newPterodactyl() *Obstacle {
	s := w.sprites.ptero
	return &Obstacle{
		Kind:     KindPterodactyl,
		Position: core.Vec(w.Width+float64(s[0].W), w.pteroY()),
		Velocity: core.Vec(w.cfg.Physics.BaseSpeed, 0),
		frames:   s,
	}
}

// cactusY stands a cactus on the ground line.
func (w *World) cactusY(s sprite.Sprite) float64 {
	return w.Height - float64(w.sprites.ground.H) - float64(s.H) + w.cfg.Player.GroundOffset
}

// pteroY flies a pterodactyl at the head height of a standing runner.
func (w *World) pteroY() float64 {
	return w.Height - float64(w.sprites.ground.H) - float64(w.sprites.idle.H) - float64(w.sprites.ptero[0].H)/2
}

// ObstacleSpawner rolls for a new obstacle once per spawn interval.
type ObstacleSpawner struct {
	Timer float64
}

// Interval is the time between spawn rolls. It shrinks as the game speeds
// up so obstacles keep about the same spacing on screen.
func (sp *ObstacleSpawner) Interval(w *World) float64 {
	if w.Speed <= 0 || w.cfg.Physics.BaseSpeed <= 0 {
		return math.Inf(1)
	}
	factor := w.cfg.Obstacles.IntervalFactor
	if w.touch {
		factor *= w.cfg.Touch.IntervalFactor
	}
	return w.Width / w.cfg.Physics.BaseSpeed / w.Speed * factor
}

// Update advances the timer and spawns at most one obstacle. A failed roll
// keeps the timer, so the next substep rolls again. After a spawn the timer
// is either cleared or only halved, which lets two obstacles come in quick
// succession.
func (sp *ObstacleSpawner) Update(dt float64, w *World) *Obstacle {
	sp.Timer += dt
	interval := sp.Interval(w)
	if sp.Timer < interval {
		return nil
	}

	ob := w.cfg.Obstacles
	var o *Obstacle
	switch {
	case !w.touch && w.env.Time >= ob.PteroStartDelay && w.rng.Float64() <= ob.PteroChance*w.Speed:
		o = w.newPterodactyl()
	case w.rng.Float64() <= ob.CactusChance*w.Speed:
		o = w.newCactus()
	default:
		return nil
	}
	w.Obstacles = append(w.Obstacles, o)

	if w.rng.Float64() > ob.DoubleSpawnChance/w.Speed {
		sp.Timer = 0
	} else {
		sp.Timer -= interval / 2
	}
	return o
}
