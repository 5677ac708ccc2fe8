package dino

import (
	"context"
	"fmt"
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/render"
)

// restartDelay keeps the input that ended a run from restarting it.
const restartDelay = 0.3

// scoreEffectEvery is the score interval of the milestone sound.
const scoreEffectEvery = 100

// menuState shows the runner idling under the title. The first input makes
// it jump, and the run starts when it lands.
type menuState struct {
	game     *Game
	env      *engine.Env
	world    *World
	dim      float64
	starting bool
	airborne bool
}

func newMenuState(g *Game, env *engine.Env) *menuState {
	return &menuState{game: g, env: env}
}

func (m *menuState) Phase() engine.Phase { return engine.PhaseMenu }

func (m *menuState) Setup(ctx context.Context) error {
	w, err := NewWorld(ctx, m.env, m.game.cfg)
	if err != nil {
		return err
	}
	m.world = w
	return nil
}

func (m *menuState) Update(dt float64) {
	c := Controls{Jump: m.starting && !m.airborne}
	m.world.StepScenery(dt, c)
	m.env.Invalidate()

	if !m.starting {
		return
	}
	if !m.world.Dino.Grounded() {
		m.airborne = true
	} else if m.airborne {
		m.env.SetState(newPlayState(m.game, m.env, m.world))
	}
}

func (m *menuState) FrameUpdate(dt float64) {
	m.dim = min(m.dim+dt, 1)
	if !m.starting && m.env.Input.Started() {
		m.starting = true
		m.env.Log.Debug("menu jump", "game", ID)
	}
}

func (m *menuState) Resize(w, h float64) {
	m.world.Resize(w, h)
}

func (m *menuState) Render(s render.Surface) {
	m.world.Render(s)

	w, h := s.Width(), s.Height()
	if m.starting {
		return
	}
	if m.dim > 0.2 {
		s.DrawText(core.Vec(w/2, h/3), "DINO RUNNER", render.AlignCenter, core.ColorBrightWhite)
	}
	if core.Oscillate(m.env.Time, 0.5, 0, 1) > 0.3 {
		s.DrawText(core.Vec(w/2, h/3+2*render.DotsY), "press space or click to start", render.AlignCenter, core.ColorWhite)
	}
	if hi := m.env.Scores.Highest(); hi > 0 {
		s.DrawText(core.Vec(w-2, 0), fmt.Sprintf("HI %05d", hi), render.AlignRight, core.ColorGray)
	}
}

// playState is the run itself, played by the user or by the autopilot.
type playState struct {
	game  *Game
	env   *engine.Env
	world *World
	pilot *Autopilot

	scoreTimer float64
	paused     bool
	done       bool
}

// newPlayState continues in w, or starts a fresh world when w is nil.
func newPlayState(g *Game, env *engine.Env, w *World) *playState {
	return &playState{game: g, env: env, world: w}
}

func (p *playState) Phase() engine.Phase { return engine.PhasePlay }

func (p *playState) Setup(ctx context.Context) error {
	if p.world == nil {
		w, err := NewWorld(ctx, p.env, p.game.cfg)
		if err != nil {
			return err
		}
		p.world = w
	}
	if p.env.Config.Autopilot {
		p.pilot = NewAutopilot()
	}
	p.env.Scores.ResetCurrent()
	p.env.Log.Debug("run started", "game", ID, "autopilot", p.pilot != nil, "lives", p.world.Lives, "touch", p.env.Config.Touch)
	return nil
}

// controls maps the frame input onto the runner. Space and clicks jump,
// up jumps long, down ducks.
func (p *playState) controls(dt float64) Controls {
	if p.pilot != nil {
		return p.pilot.Controls(dt, p.world)
	}
	in := p.env.Input
	c := Controls{Crouch: in.IsDown(core.ActionDuck)}
	switch {
	case in.IsDown(core.ActionJump) || in.PointerPressed:
		c.Jump, c.Scalar = true, 1
	case in.IsDown(core.ActionLongJump):
		c.Jump, c.Scalar = true, p.game.cfg.Physics.LongJump
	}
	return c
}

func (p *playState) Update(dt float64) {
	if p.paused || p.done {
		return
	}
	w := p.world
	w.Step(dt, p.controls(dt))
	p.env.Invalidate()

	if interval := p.game.cfg.Physics.ScoreInterval; interval > 0 {
		p.scoreTimer += dt
		for p.scoreTimer >= interval {
			p.scoreTimer -= interval
			p.addPoint()
		}
	}

	if o := w.Hit(); o != nil {
		p.hit(o)
	}
}

func (p *playState) addPoint() {
	w := p.world
	w.Score++
	if w.Score%scoreEffectEvery == 0 {
		p.env.Audio.PlayEffect(audio.EffectScore)
	}
	if w.Score > p.env.Scores.Highest() {
		p.env.Scores.SetHighest(w.Score)
	}
}

// hit costs a life and starts the invulnerability window, or ends the run
// on the last life.
func (p *playState) hit(o *Obstacle) {
	w := p.world
	if w.Lives > 1 {
		w.Lives--
		w.Dino.Invulnerable = p.game.cfg.Player.Invulnerable
		p.env.Audio.PlayEffect(audio.EffectPhase)
		p.env.Log.Debug("hit", "game", ID, "obstacle", o.Kind, "lives", w.Lives)
		return
	}
	w.Lives = 0
	p.finish()
}

func (p *playState) finish() {
	if p.done {
		return
	}
	p.done = true
	w := p.world
	w.Dino.Dead = true
	p.env.Scores.Record(w.Score)
	p.env.Audio.PlayEffect(audio.EffectGameOver)
	p.env.Log.Info("run finished", "game", ID, "score", w.Score, "elapsed", math.Round(w.Elapsed*10)/10)
	p.env.SetState(newGameOverState(p.game, p.env, w))
}

func (p *playState) FrameUpdate(float64) {
	if p.env.Input.Has(core.ActionPause) {
		p.paused = !p.paused
		p.env.Invalidate()
	}
}

func (p *playState) Resize(w, h float64) {
	p.world.Resize(w, h)
}

func (p *playState) Render(s render.Surface) {
	p.world.Render(s)
	renderHUD(s, p.env, p.world)
	if p.paused {
		s.DrawText(core.Vec(s.Width()/2, s.Height()/3), "PAUSED", render.AlignCenter, core.ColorBrightWhite)
	}
}

func renderHUD(s render.Surface, env *engine.Env, w *World) {
	score := fmt.Sprintf("%05d", w.Score)
	if hi := env.Scores.Highest(); hi > 0 && !env.Scores.IsCurrentHighest() {
		score = fmt.Sprintf("HI %05d  %s", hi, score)
	}
	s.DrawText(core.Vec(s.Width()-2, 0), score, render.AlignRight, core.ColorWhite)
	s.DrawText(core.Vec(2, 0), fmt.Sprintf("LIVES %d", w.Lives), render.AlignLeft, core.ColorWhite)
}

// gameOverState freezes the finished run and fades it to gray.
type gameOverState struct {
	game  *Game
	env   *engine.Env
	world *World
	dim   float64
}

func newGameOverState(g *Game, env *engine.Env, w *World) *gameOverState {
	return &gameOverState{game: g, env: env, world: w}
}

func (g *gameOverState) Phase() engine.Phase { return engine.PhaseGameOver }

func (g *gameOverState) Setup(context.Context) error { return nil }

func (g *gameOverState) Update(float64) {}

func (g *gameOverState) FrameUpdate(dt float64) {
	g.dim = min(g.dim+dt, 1)
	g.env.Invalidate()
	if g.dim >= restartDelay && g.env.Input.Started() {
		g.env.SetState(newPlayState(g.game, g.env, nil))
	}
}

func (g *gameOverState) Resize(w, h float64) {
	g.world.Resize(w, h)
}

func (g *gameOverState) PreRender(s render.Surface) {
	if fade := math.Pow(1-g.dim, 4); fade < 0.5 {
		s.PushTint(core.ColorGray)
		defer s.PopTint()
	}
	g.world.Render(s)
}

func (g *gameOverState) Render(s render.Surface) {
	w, h := s.Width(), s.Height()
	renderHUD(s, g.env, g.world)
	if g.dim > 0.2 {
		s.DrawText(core.Vec(w/2, h/3), "GAME OVER", render.AlignCenter, core.ColorBrightWhite)
	}
	if g.env.Scores.IsCurrentHighest() {
		s.DrawText(core.Vec(w/2, h/3+2*render.DotsY), "NEW HI SCORE", render.AlignCenter, core.ColorBrightYellow)
	}
	if g.dim >= restartDelay && core.Oscillate(g.env.Time, 0.5, 0, 1) > 0.3 {
		s.DrawText(core.Vec(w/2, h/3+4*render.DotsY), "press space or click to restart", render.AlignCenter, core.ColorWhite)
	}
}
