package breakout

import (
	"math"

	"github.com/vovakirdan/pixel-arcade/internal/collision"
	"github.com/vovakirdan/pixel-arcade/internal/core"
)

// Ball is the square ball. It waits on a countdown before every launch.
type Ball struct {
	Bounds   core.Rect
	Velocity core.Vector
	// Timer counts down to the launch; the ball is frozen while it runs.
	Timer  float64
	Radius float64
}

// Waiting reports whether the countdown is still running.
func (b *Ball) Waiting() bool {
	return b.Timer > 0
}

// reset centers the ball slightly below the middle of a w x h screen and
// restarts the countdown.
func (b *Ball) reset(w, h, timer, gap float64) {
	b.Timer = timer
	b.Velocity = core.Vector{}
	b.Bounds.X = w/2 - b.Bounds.W/2
	b.Bounds.Y = h/2 - b.Bounds.H/2 + gap*2
}

// Update advances the ball by dt inside the session: countdown, motion,
// walls, paddle and blocks, in that order.
func (b *Ball) Update(dt float64, s *Session) {
	if b.Timer > 0 {
		b.countdown(dt, s)
		return
	}

	b.Bounds.X += b.Velocity.X * s.Difficulty * dt
	b.Bounds.Y += b.Velocity.Y * s.Difficulty * dt

	if b.bounceOffWalls(s) {
		return
	}
	b.bounceOffPaddle(s)
	b.bounceOffBlocks(s)
}

// countdown runs the launch timer. One tick is emitted for every whole
// second boundary the timer crosses; crossing zero launches the ball.
func (b *Ball) countdown(dt float64, s *Session) {
	prev := math.Ceil(b.Timer)
	b.Timer -= dt
	next := math.Ceil(max(b.Timer, 0))
	for c := prev - 1; c >= next && c > 0; c-- {
		s.onTick(int(c))
	}
	if b.Timer > 0 {
		return
	}

	b.Timer = 0
	vx := s.BallSpeed
	if s.rng.Float64() < 0.5 {
		vx = -vx
	}
	b.Velocity = core.Vec(vx, s.BallSpeed)
	s.onLaunch()
}

// bounceOffWalls reflects the ball off the left, right and top edges. It
// reports whether the ball fell through the bottom edge.
func (b *Ball) bounceOffWalls(s *Session) bool {
	if b.Bounds.X < 0 && b.Velocity.X < 0 {
		b.Bounds.X = 0
		b.Velocity.X = -b.Velocity.X
	} else if b.Bounds.Right() > s.Width && b.Velocity.X > 0 {
		b.Bounds.X = s.Width - b.Bounds.W
		b.Velocity.X = -b.Velocity.X
	}

	if b.Bounds.Y < 0 && b.Velocity.Y < 0 {
		b.Bounds.Y = 0
		b.Velocity.Y = -b.Velocity.Y
	}

	if b.Bounds.Bottom() > s.Height {
		s.onBreach()
		return true
	}
	return false
}

func (b *Ball) bounceOffPaddle(s *Session) {
	p := s.Paddle
	if b.Velocity.Y <= 0 || !collision.Intersects(b.Bounds, p.Bounds) {
		return
	}
	b.Velocity.Y = -b.Velocity.Y
	b.Bounds.Y = p.Bounds.Y - b.Bounds.H
	s.onPaddle()
}

func (b *Ball) bounceOffBlocks(s *Session) {
	for i := len(s.Blocks) - 1; i >= 0; i-- {
		block := s.Blocks[i]
		if !collision.Intersects(b.Bounds, block.Bounds) {
			continue
		}

		side, _ := collision.HitSide(b.Bounds, block.Bounds)
		switch side {
		case collision.SideTop:
			b.Velocity.Y = -b.Velocity.Y
			b.Bounds.Y -= b.Radius
		case collision.SideBottom:
			b.Velocity.Y = -b.Velocity.Y
			b.Bounds.Y += b.Radius
		case collision.SideLeft:
			b.Velocity.X = -b.Velocity.X
			b.Bounds.X -= b.Radius
		case collision.SideRight:
			b.Velocity.X = -b.Velocity.X
			b.Bounds.X += b.Radius
		}

		s.Blocks = append(s.Blocks[:i], s.Blocks[i+1:]...)
		s.onBlock(block)
	}
}

// PredictBallX estimates the ball x where it reaches the paddle row of a
// screen w pixels wide. Wall reflections are unrolled at most
// maxReflections times and the result is clamped to [0, w - ball width].
func PredictBallX(ball *Ball, paddle core.Rect, w, speed, difficulty float64, maxReflections int) float64 {
	maxX := max(w-ball.Bounds.W, 0)

	t := 0.0
	if v := speed * difficulty; v > 0 {
		t = math.Abs(paddle.Y-(ball.Bounds.Y-ball.Radius)) / v
	}
	x := ball.Bounds.X + ball.Velocity.X*difficulty*t

	for i := 0; i < maxReflections && (x < 0 || x > maxX); i++ {
		if x < 0 {
			x = -x
		} else {
			x = 2*maxX - x
		}
	}
	if math.IsNaN(x) {
		return maxX / 2
	}
	return core.Clamp(x, 0, maxX)
}
