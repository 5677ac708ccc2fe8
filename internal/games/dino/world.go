package dino

import (
	"context"
	"fmt"
	"math"
	"math/rand"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/collision"
	"github.com/vovakirdan/pixel-arcade/internal/config"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/render"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// speedRamp is how much the game speed grows per second once the run is
// up to speed.
const speedRamp = 0.003

// World holds everything of one run: the runner, the scrolling scenery,
// the obstacles and the score. It moves from the menu into the round and
// on to the game over screen.
type World struct {
	env     *engine.Env
	cfg     config.DinoConfig
	rng     *rand.Rand
	audio   audio.Player
	atlas   *sprite.Atlas
	sprites sprites
	checker *collision.Checker
	dm      *config.DifficultyManager
	touch   bool

	Width, Height float64

	Dino      *Dinosaur
	Obstacles []*Obstacle
	Clouds    []Cloud
	Ground    Ground

	// Speed multiplies every horizontal velocity. It ramps from zero to
	// about one in the first second and keeps growing slowly after that.
	Speed    float64
	rawSpeed float64
	// Elapsed is the simulated time since the run started.
	Elapsed float64

	Lives int
	Score int

	spawner      ObstacleSpawner
	cloudSpawner CloudSpawner
}

// NewWorld loads the runner atlas and sets up a fresh run on the env
// viewport. Without the atlas or a collision checker the game cannot run.
func NewWorld(ctx context.Context, env *engine.Env, cfg config.DinoConfig) (*World, error) {
	atlas, err := env.Assets.Load(ctx, sprite.RunnerAtlas)
	if err != nil {
		return nil, fmt.Errorf("dino: load sprites: %w", err)
	}
	checker, err := collision.NewChecker(atlas)
	if err != nil {
		return nil, fmt.Errorf("dino: %w", err)
	}

	dm := config.NewDifficultyManager(cfg.Difficulty)
	w := &World{
		env:     env,
		cfg:     cfg,
		rng:     env.Rand,
		audio:   env.Audio,
		atlas:   atlas,
		sprites: loadSprites(atlas),
		checker: checker,
		dm:      dm,
		touch:   env.Config.Touch,
		Width:   env.Width(),
		Height:  env.Height(),
		Lives:   dm.Lives(cfg.Lives),
	}
	w.Dino = newDinosaur(w)
	w.cloudSpawner.Setup(w)
	return w, nil
}

func (w *World) gravityFactor() float64 {
	if w.touch {
		return w.cfg.Touch.GravityFactor
	}
	return 1
}

// updateSpeed eases the speed in over the first second, then ramps it
// linearly.
func (w *World) updateSpeed(dt float64) {
	if w.rawSpeed < 1 {
		w.rawSpeed += 2*math.Sqrt(w.rawSpeed)*dt + dt*dt
	} else {
		w.rawSpeed += speedRamp * dt
	}
	w.Speed = w.dm.Speed(w.rawSpeed)
	if w.touch {
		w.Speed *= w.cfg.Touch.SpeedFactor
	}
}

// Step advances the whole run by one substep.
func (w *World) Step(dt float64, c Controls) {
	w.Elapsed += dt
	w.updateSpeed(dt)
	w.Ground.Update(dt, w)
	w.updateClouds(dt)
	w.spawner.Update(dt, w)
	w.updateObstacles(dt)
	w.Dino.Update(dt, c)
}

// StepScenery only moves the sky and the runner, for screens before the
// run starts.
func (w *World) StepScenery(dt float64, c Controls) {
	w.updateClouds(dt)
	w.Dino.Update(dt, c)
}

func (w *World) updateObstacles(dt float64) {
	live := w.Obstacles[:0]
	for _, o := range w.Obstacles {
		o.Update(dt, w.Speed)
		if !o.OutOfScreen() {
			live = append(live, o)
		}
	}
	clear(w.Obstacles[len(live):])
	w.Obstacles = live
}

// Hit returns the first obstacle whose pixels touch the runner, or nil.
// An invulnerable runner is never hit.
func (w *World) Hit() *Obstacle {
	d := w.Dino
	if d.IsInvulnerable() {
		return nil
	}
	ds := d.Sprite()
	for _, o := range w.Obstacles {
		if w.checker.Collides(d.Position, ds, o.Position, o.Sprite(w.Elapsed)) {
			return o
		}
	}
	return nil
}

// Resize keeps the runner and the obstacles on the ground line.
func (w *World) Resize(width, height float64) {
	w.Width, w.Height = width, height
	w.Dino.Resize()
	for _, o := range w.Obstacles {
		if o.Kind == KindPterodactyl {
			o.Position.Y = w.pteroY()
		} else {
			o.Position.Y = w.cactusY(o.frames[0])
		}
	}
}

// Render draws sky, ground, obstacles and the runner.
func (w *World) Render(s render.Surface) {
	for _, c := range w.Clouds {
		s.DrawSprite(w.atlas, w.sprites.cloud, c.Position, core.ColorGray)
	}
	w.Ground.render(s, w)
	for _, o := range w.Obstacles {
		c := core.ColorGreen
		if o.Kind == KindPterodactyl {
			c = core.ColorBrightMagenta
		}
		s.DrawSprite(w.atlas, o.Sprite(w.Elapsed), o.Position, c)
	}
	w.Dino.render(s, w.Elapsed)
}
