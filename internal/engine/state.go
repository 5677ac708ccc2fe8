// Package engine drives the game states: a frame driver with fixed physics
// substeps and conditional redraw, and a state machine whose transitions
// happen between frames.
package engine

import (
	"context"

	"github.com/vovakirdan/pixel-arcade/internal/render"
)

// Phase is the closed set of roles a state can play.
type Phase int

const (
	PhaseMenu Phase = iota
	PhasePlay
	PhaseGameOver
	PhaseWin
	PhaseDebug
)

func (p Phase) String() string {
	switch p {
	case PhaseMenu:
		return "menu"
	case PhasePlay:
		return "play"
	case PhaseGameOver:
		return "gameover"
	case PhaseWin:
		return "win"
	case PhaseDebug:
		return "debug"
	default:
		return "unknown"
	}
}

// State is one screen of a game.
type State interface {
	Phase() Phase
	// Setup runs once when the state becomes current. An error is fatal.
	Setup(ctx context.Context) error
	// Update advances the simulation by one substep.
	Update(dt float64)
	Render(s render.Surface)
}

// FrameUpdater is implemented by states with work that runs once per frame
// after the substeps, such as particles and fade timers.
type FrameUpdater interface {
	FrameUpdate(dt float64)
}

// PreRenderer is implemented by states that paint a background pass before
// Render, such as a dimmed copy of the finished game.
type PreRenderer interface {
	PreRender(s render.Surface)
}

// Resizer is implemented by states that lay out content from the viewport
// size.
type Resizer interface {
	Resize(w, h float64)
}

// Substepper overrides the driver's substep count for one state.
type Substepper interface {
	Substeps() int
}

// Game is a registered game variant.
type Game interface {
	ID() string
	Title() string
	// Menu returns the first state of the game.
	Menu(env *Env) State
}
