package breakout

import (
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/core"
)

// PaddleKind selects who moves a paddle.
type PaddleKind int

const (
	PaddlePlayer PaddleKind = iota
	PaddleAI
)

func (k PaddleKind) String() string {
	if k == PaddleAI {
		return "ai"
	}
	return "player"
}

// Paddle is the bottom bat.
type Paddle struct {
	Kind   PaddleKind
	Bounds core.Rect
}

// place puts the paddle at its row, keeping x on screen.
func (p *Paddle) place(w, h, margin float64) {
	p.Bounds.Y = h - p.Bounds.H - margin
	p.clamp(w)
}

func (p *Paddle) clamp(w float64) {
	p.Bounds.X = core.Clamp(p.Bounds.X, 0, max(w-p.Bounds.W, 0))
}

// Update moves the paddle for one substep.
func (p *Paddle) Update(dt float64, s *Session, in *core.InputFrame) {
	if p.Kind == PaddleAI {
		p.updateAI(dt, s)
		return
	}
	p.updatePlayer(dt, s, in)
}

// updatePlayer follows the pointer when it moved, otherwise the held
// direction keys.
func (p *Paddle) updatePlayer(dt float64, s *Session, in *core.InputFrame) {
	switch {
	case in == nil:
	case in.PointerMoved:
		p.Bounds.X = in.Pointer.X - p.Bounds.W/2
	default:
		if in.IsDown(core.ActionLeft) {
			p.Bounds.X -= s.cfg.Paddle.Speed * dt
		}
		if in.IsDown(core.ActionRight) {
			p.Bounds.X += s.cfg.Paddle.Speed * dt
		}
	}
	p.clamp(s.Width)
}

// updateAI glides to the center before a launch, chases the ball early in
// a rally and otherwise heads for the predicted landing spot.
func (p *Paddle) updateAI(dt float64, s *Session) {
	ball := s.Ball
	ai := s.cfg.AI
	mult := 1.0

	var target float64
	switch {
	case ball.Waiting():
		target = s.Width/2 - p.Bounds.W/2
	case ball.Bounds.Y < ai.ChaseThreshold*s.Height || ball.Velocity.Y < 0:
		target = ball.Bounds.X
		if span := s.Width - p.Bounds.W; span > 0 {
			mult = math.Abs(p.Bounds.X-ball.Bounds.X) / span
		}
	default:
		x := PredictBallX(ball, p.Bounds, s.Width, s.BallSpeed, s.Difficulty, ai.MaxReflections)
		target = x - p.Bounds.W/2
	}

	t := core.Clamp(dt*ai.Speed*s.Difficulty*mult, 0, 1)
	p.Bounds.X = core.Lerp(p.Bounds.X, target, t)
	p.clamp(s.Width)
}
