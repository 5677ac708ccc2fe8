package breakout

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/config"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/render"
)

// Session holds the entities of one round: ball, paddle, blocks and
// particles, plus the rally difficulty, lives and score.
type Session struct {
	cfg   config.BreakoutConfig
	rng   *rand.Rand
	audio audio.Player
	input *core.InputFrame

	Width, Height float64

	Ball      *Ball
	Paddle    *Paddle
	Blocks    []Block
	Particles Particles

	// Difficulty scales the ball speed. It grows with every bounce and
	// returns to 1 when the ball is reset.
	Difficulty float64
	// BallSpeed is the launch speed after the difficulty preset.
	BallSpeed float64
	Lives     int
	Score     int

	pitch float64 // score sound pitch offset
	quiet float64 // seconds since the last block hit

	layer *render.Layer
}

// NewSession sets up a fresh round on the env viewport.
func NewSession(env *engine.Env, cfg config.BreakoutConfig, kind PaddleKind) *Session {
	dm := config.NewDifficultyManager(cfg.Difficulty)
	w, h := env.Width(), env.Height()
	size := cfg.Ball.Radius * 2

	s := &Session{
		cfg:        cfg,
		rng:        env.Rand,
		audio:      env.Audio,
		input:      env.Input,
		Width:      w,
		Height:     h,
		Ball:       &Ball{Bounds: core.NewRect(0, 0, size, size), Radius: cfg.Ball.Radius},
		Paddle:     &Paddle{Kind: kind, Bounds: core.NewRect(w/2-cfg.Paddle.Width/2, 0, cfg.Paddle.Width, cfg.Paddle.Height)},
		Difficulty: 1,
		BallSpeed:  dm.Speed(cfg.Ball.Speed),
		Lives:      dm.Lives(cfg.Lives),
		layer:      render.NewLayer(),
	}
	s.Paddle.place(w, h, cfg.Paddle.Margin)
	s.ResetBall()
	s.GenerateBlocks()
	return s
}

// ResetBall re-centers the ball, restarts the countdown and drops the
// rally difficulty.
func (s *Session) ResetBall() {
	s.Ball.reset(s.Width, s.Height, s.cfg.Ball.Timer, s.cfg.Blocks.Gap)
	s.Difficulty = 1
}

// GenerateBlocks refills the grid.
func (s *Session) GenerateBlocks() {
	s.Blocks = GenerateBlocks(s.Width, s.Height, s.cfg.Blocks)
	s.layer.Invalidate()
}

// Step advances ball and paddle by one substep.
func (s *Session) Step(dt float64) {
	s.quiet += dt
	if s.quiet > s.cfg.Audio.ResetTime {
		s.pitch = 0
	}
	s.Ball.Update(dt, s)
	s.Paddle.Update(dt, s, s.input)
}

// UpdateParticles ages the particles once per frame.
func (s *Session) UpdateParticles(dt float64) {
	s.Particles.Update(dt, s.cfg.Particles, s.rng)
}

// Resize keeps the paddle on its row and the ball on screen.
func (s *Session) Resize(w, h float64) {
	s.Width, s.Height = w, h
	s.Paddle.place(w, h, s.cfg.Paddle.Margin)
	s.Ball.Bounds.X = core.Clamp(s.Ball.Bounds.X, 0, max(w-s.Ball.Bounds.W, 0))
	s.Ball.Bounds.Y = core.Clamp(s.Ball.Bounds.Y, 0, max(h-s.Ball.Bounds.H, 0))
	s.layer.Invalidate()
}

// play sounds a tone with a random length of 60% to 140% of the configured
// duration.
func (s *Session) play(freq, pan float64) {
	d := s.cfg.Audio.Duration * (1.0 + s.rng.Float64()*0.8 - 0.4)
	s.audio.Play(freq, time.Duration(d*float64(time.Second)), pan)
}

func (s *Session) onTick(remaining int) {
	s.play(s.cfg.Audio.TimerHz*(s.cfg.Ball.Timer-float64(remaining)+1), 0)
}

func (s *Session) onLaunch() {
	s.audio.PlayEffect(audio.EffectTick)
}

func (s *Session) onBreach() {
	if s.Lives > 0 {
		s.Lives--
	}
	s.ResetBall()
	s.play(s.cfg.Audio.BounceHz, 0)
}

func (s *Session) onPaddle() {
	s.Difficulty *= s.cfg.Ball.BounceScaling
	s.explode()
	s.play(s.cfg.Audio.BounceHz, s.pan())
}

func (s *Session) onBlock(Block) {
	s.Difficulty *= s.cfg.Ball.BounceScaling
	s.Score++
	s.explode()
	s.layer.Invalidate()

	s.quiet = 0
	s.pitch += 0.25
	s.play(s.cfg.Audio.ScoreHz*(1.0+s.pitch), s.pan())
}

func (s *Session) explode() {
	s.Particles.Explode(s.Ball.Bounds.Center(), s.Ball.Velocity, s.cfg.Particles, s.rng)
}

// pan places the ball between the left (-1) and right (1) speaker.
func (s *Session) pan() float64 {
	if s.Width <= 0 {
		return 0
	}
	half := s.Width / 2
	return core.Clamp((s.Ball.Bounds.Center().X-half)/half, -1, 1)
}

// Render draws blocks, paddle, ball and particles.
func (s *Session) Render(surface render.Surface) {
	s.layer.Redraw(surface.Width(), surface.Height(), func(l render.Surface) {
		for _, b := range s.Blocks {
			l.FillRect(b.Bounds, b.Color)
		}
	})
	surface.DrawLayer(s.layer)

	surface.FillRect(s.Paddle.Bounds, core.ColorBrightWhite)

	ballColor := core.ColorBrightWhite
	if s.Ball.Waiting() && math.Sin(s.Ball.Timer*math.Pi*2*1.2) < 0 {
		ballColor = core.ColorGray
	}
	surface.FillRect(s.Ball.Bounds, ballColor)

	for _, p := range s.Particles {
		c := core.ColorWhite
		if p.Duration < s.cfg.Particles.Lifetime/2 {
			c = core.ColorGray
		}
		surface.FillRect(core.NewRect(p.Position.X, p.Position.Y, 1, 1), c)
	}
}
