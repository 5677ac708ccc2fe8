package breakout

// Snapshot is a flat copy of a session for determinism checks.
type Snapshot struct {
	Score           int
	Lives           int
	BlocksRemaining int
	Particles       int
	BallX, BallY    float64
	BallVX, BallVY  float64
	BallTimer       float64
	PaddleX         float64
	Difficulty      float64
}

// Snapshot returns the current session state as a Snapshot.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Score:           s.Score,
		Lives:           s.Lives,
		BlocksRemaining: len(s.Blocks),
		Particles:       len(s.Particles),
		BallX:           s.Ball.Bounds.X,
		BallY:           s.Ball.Bounds.Y,
		BallVX:          s.Ball.Velocity.X,
		BallVY:          s.Ball.Velocity.Y,
		BallTimer:       s.Ball.Timer,
		PaddleX:         s.Paddle.Bounds.X,
		Difficulty:      s.Difficulty,
	}
}
