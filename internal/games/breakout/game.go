package breakout

import (
	"github.com/vovakirdan/pixel-arcade/internal/config"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/registry"
)

// ID is the registry and score store id of the game.
const ID = "breakout"

// Game is the Breakout variant.
type Game struct {
	cfg config.BreakoutConfig
}

// New creates the game with cfg.
func New(cfg config.BreakoutConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Breakout"
}

// Config returns the configuration the game was created with.
func (g *Game) Config() config.BreakoutConfig {
	return g.cfg
}

// Menu returns the attract screen: the computer plays a demo round.
func (g *Game) Menu(env *engine.Env) engine.State {
	return newMenuState(g, env)
}

func init() {
	registry.Register(ID, "Breakout", func(s registry.Settings) (engine.Game, error) {
		cfg, err := config.LoadBreakout(s.ConfigPath)
		if err != nil {
			return nil, err
		}
		if s.Preset != "" {
			config.ApplyBreakoutPreset(&cfg, s.Preset)
		}
		return New(cfg), nil
	})
}
