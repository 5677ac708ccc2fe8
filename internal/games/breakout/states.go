package breakout

import (
	"context"
	"fmt"
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/render"
)

// restartDelay keeps the input that ended a round from restarting it.
const restartDelay = 0.3

// menuState is the attract screen. The computer paddle plays behind the
// title and the grid refills whenever it is cleared.
type menuState struct {
	game    *Game
	env     *engine.Env
	session *Session
	dim     float64
}

func newMenuState(g *Game, env *engine.Env) *menuState {
	return &menuState{game: g, env: env}
}

func (m *menuState) Phase() engine.Phase { return engine.PhaseMenu }

func (m *menuState) Setup(context.Context) error {
	m.session = NewSession(m.env, m.game.cfg, PaddleAI)
	return nil
}

func (m *menuState) Substeps() int { return m.game.cfg.MenuSteps }

func (m *menuState) Update(dt float64) {
	m.session.Step(dt)
	if len(m.session.Blocks) == 0 {
		m.session.GenerateBlocks()
		m.session.ResetBall()
	}
	m.env.Invalidate()
}

func (m *menuState) FrameUpdate(dt float64) {
	m.session.UpdateParticles(dt)
	m.dim = min(m.dim+dt, 1)
	if m.env.Input.Started() {
		m.env.SetState(newPlayState(m.game, m.env))
	}
}

func (m *menuState) Resize(w, h float64) {
	m.session.Resize(w, h)
	m.session.GenerateBlocks()
	m.session.ResetBall()
}

func (m *menuState) PreRender(s render.Surface) {
	s.PushTint(core.ColorGray)
	m.session.Render(s)
	s.PopTint()
}

func (m *menuState) Render(s render.Surface) {
	w, h := s.Width(), s.Height()
	if m.dim > 0.2 {
		s.DrawText(core.Vec(w/2, h/2-2*render.DotsY), "BREAKOUT", render.AlignCenter, core.ColorBrightWhite)
	}
	if core.Oscillate(m.env.Time, 0.5, 0, 1) > 0.3 {
		s.DrawText(core.Vec(w/2, h/2), "press enter or click to start", render.AlignCenter, core.ColorWhite)
	}
	if hi := m.env.Scores.Highest(); hi > 0 {
		s.DrawText(core.Vec(w/2, h/2+2*render.DotsY), fmt.Sprintf("HI %04d", hi), render.AlignCenter, core.ColorGray)
	}
}

// playState is a round played by the user, or by the computer paddle when
// the autopilot is on.
type playState struct {
	game    *Game
	env     *engine.Env
	session *Session
	paused  bool
	done    bool
}

func newPlayState(g *Game, env *engine.Env) *playState {
	return &playState{game: g, env: env}
}

func (p *playState) Phase() engine.Phase { return engine.PhasePlay }

func (p *playState) Setup(context.Context) error {
	kind := PaddlePlayer
	if p.env.Config.Autopilot {
		kind = PaddleAI
	}
	p.session = NewSession(p.env, p.game.cfg, kind)
	p.env.Scores.ResetCurrent()
	p.env.Log.Debug("round started", "game", ID, "paddle", kind, "lives", p.session.Lives, "blocks", len(p.session.Blocks))
	return nil
}

func (p *playState) Update(dt float64) {
	if p.paused || p.done {
		return
	}
	p.session.Step(dt)
	if score := p.session.Score; score > p.env.Scores.Highest() {
		p.env.Scores.SetHighest(score)
	}
	p.env.Invalidate()

	switch {
	case p.session.Lives <= 0:
		p.finish(engine.PhaseGameOver)
	case len(p.session.Blocks) == 0:
		p.finish(engine.PhaseWin)
	}
}

// finish ends the round once, whatever number of substeps detect it.
func (p *playState) finish(phase engine.Phase) {
	if p.done {
		return
	}
	p.done = true
	p.env.Scores.Record(p.session.Score)
	if phase == engine.PhaseGameOver {
		p.env.Audio.PlayEffect(audio.EffectGameOver)
	} else {
		p.env.Audio.PlayEffect(audio.EffectScore)
	}
	p.env.Log.Info("round finished", "game", ID, "result", phase, "score", p.session.Score)
	p.env.SetState(newEndState(phase, p.game, p.env, p.session))
}

func (p *playState) FrameUpdate(dt float64) {
	if p.env.Input.Has(core.ActionPause) {
		p.paused = !p.paused
		p.env.Invalidate()
	}
	if !p.paused {
		p.session.UpdateParticles(dt)
	}
}

func (p *playState) Resize(w, h float64) {
	p.session.Resize(w, h)
}

func (p *playState) Render(s render.Surface) {
	p.session.Render(s)

	w, h := s.Width(), s.Height()
	label := "SCORE"
	if p.env.Scores.IsCurrentHighest() {
		label = "HI SCORE"
	}
	s.DrawText(core.Vec(w-2, 0), fmt.Sprintf("%s %04d", label, p.session.Score), render.AlignRight, core.ColorWhite)
	s.DrawText(core.Vec(2, 0), fmt.Sprintf("LIVES %d", p.session.Lives), render.AlignLeft, core.ColorWhite)

	if ball := p.session.Ball; ball.Waiting() {
		s.DrawText(core.Vec(w/2, ball.Bounds.Bottom()+render.DotsY), fmt.Sprint(int(math.Ceil(ball.Timer))), render.AlignCenter, core.ColorBrightYellow)
	}
	if p.paused {
		s.DrawText(core.Vec(w/2, h/2), "PAUSED", render.AlignCenter, core.ColorBrightWhite)
	}
}

// endState shows the finished round dimmed behind a game over or win
// message until the user restarts.
type endState struct {
	phase   engine.Phase
	game    *Game
	env     *engine.Env
	session *Session
	dim     float64
}

func newEndState(phase engine.Phase, g *Game, env *engine.Env, s *Session) *endState {
	return &endState{phase: phase, game: g, env: env, session: s}
}

func (e *endState) Phase() engine.Phase { return e.phase }

func (e *endState) Setup(context.Context) error { return nil }

func (e *endState) Update(float64) {}

func (e *endState) FrameUpdate(dt float64) {
	e.dim = min(e.dim+dt, 1)
	e.env.Invalidate()
	if e.dim >= restartDelay && e.env.Input.Started() {
		e.env.SetState(newPlayState(e.game, e.env))
	}
}

func (e *endState) Resize(w, h float64) {
	e.session.Resize(w, h)
}

// PreRender draws the frozen round, fading to gray.
func (e *endState) PreRender(s render.Surface) {
	if fade := math.Pow(1-e.dim, 4); fade < 0.5 {
		s.PushTint(core.ColorGray)
		defer s.PopTint()
	}
	e.session.Render(s)
}

func (e *endState) Render(s render.Surface) {
	w, h := s.Width(), s.Height()
	title := "GAME OVER"
	if e.phase == engine.PhaseWin {
		title = "YOU WON!"
	}
	if e.dim > 0.2 {
		s.DrawText(core.Vec(w/2, h/2-2*render.DotsY), title, render.AlignCenter, core.ColorBrightWhite)
	}

	score := fmt.Sprintf("SCORE %04d  HI %04d", e.session.Score, e.env.Scores.Highest())
	if e.env.Scores.IsCurrentHighest() {
		score = fmt.Sprintf("NEW HI SCORE %04d", e.session.Score)
	}
	s.DrawText(core.Vec(w/2, h/2), score, render.AlignCenter, core.ColorWhite)

	if e.dim >= restartDelay && core.Oscillate(e.env.Time, 0.5, 0, 1) > 0.3 {
		s.DrawText(core.Vec(w/2, h/2+2*render.DotsY), "press enter or click to restart", render.AlignCenter, core.ColorWhite)
	}
}
