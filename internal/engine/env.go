package engine

import (
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pixel-arcade/internal/audio"
	"github.com/vovakirdan/pixel-arcade/internal/core"
	"github.com/vovakirdan/pixel-arcade/internal/sprite"
)

// Scoreboard keeps the best score of a game.
type Scoreboard interface {
	Highest() int
	SetHighest(score int)
	IsCurrentHighest() bool
	ResetCurrent()
	// Record persists a finished run.
	Record(score int)
}

// Env is the shared context handed to every state of a game.
type Env struct {
	Config core.RuntimeConfig
	Input  *core.InputFrame
	Audio  audio.Player
	Scores Scoreboard
	Assets *sprite.Loader
	Log    *log.Logger
	Rand   *rand.Rand

	// Time is the simulated time in seconds since the game started.
	Time float64

	width, height float64
	dirty         bool
	machine       *Machine
}

// Options configures NewEnv. Nil collaborators get silent defaults.
type Options struct {
	Config core.RuntimeConfig
	Width  float64
	Height float64
	Audio  audio.Player
	Scores Scoreboard
	Assets *sprite.Loader
	Logger *log.Logger
}

type memoryScores struct {
	highest int
	current bool
}

func (m *memoryScores) Highest() int           { return m.highest }
func (m *memoryScores) SetHighest(v int)       { m.highest, m.current = v, true }
func (m *memoryScores) IsCurrentHighest() bool { return m.current }
func (m *memoryScores) ResetCurrent()          { m.current = false }
func (m *memoryScores) Record(int)             {}

// NewEnv creates an environment.
func NewEnv(opts Options) *Env {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	player := opts.Audio
	if player == nil {
		player = audio.Silent{}
	}
	scores := opts.Scores
	if scores == nil {
		scores = &memoryScores{}
	}
	assets := opts.Assets
	if assets == nil {
		assets = sprite.NewLoader(nil, logger.WithPrefix("sprite"))
	}
	seed := opts.Config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	in := core.NewInputFrame()

	env := &Env{
		Config: opts.Config,
		Input:  &in,
		Audio:  player,
		Scores: scores,
		Assets: assets,
		Log:    logger,
		Rand:   rand.New(rand.NewSource(seed)),
		width:  opts.Width,
		height: opts.Height,
		dirty:  true,
	}
	env.machine = NewMachine(logger.WithPrefix("state"))
	return env
}

// Width returns the viewport width in world pixels.
func (e *Env) Width() float64 { return e.width }

// Height returns the viewport height in world pixels.
func (e *Env) Height() float64 { return e.height }

// Invalidate requests a redraw after the current frame.
func (e *Env) Invalidate() { e.dirty = true }

// SetState schedules a transition. See Machine.Set.
func (e *Env) SetState(s State) bool { return e.machine.Set(s) }

// Machine returns the state machine of this environment.
func (e *Env) Machine() *Machine { return e.machine }
