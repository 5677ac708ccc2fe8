// Package dino implements a Chrome Dino-style endless runner.
// The runner jumps over cacti and ducks under pterodactyls while the world
// scrolls ever faster. There is no win condition.
package dino

import (
	"github.com/vovakirdan/pixel-arcade/internal/config"
	"github.com/vovakirdan/pixel-arcade/internal/engine"
	"github.com/vovakirdan/pixel-arcade/internal/registry"
)

// ID is the registry and score store id of the game.
const ID = "dino"

// Game is the endless runner variant.
type Game struct {
	cfg config.DinoConfig
}

// New creates the game with cfg.
func New(cfg config.DinoConfig) *Game {
	return &Game{cfg: cfg}
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Dino Runner"
}

// Config returns the configuration the game was created with.
func (g *Game) Config() config.DinoConfig {
	return g.cfg
}

// Menu returns the first state: the title screen, or the collision lab in
// debug mode.
func (g *Game) Menu(env *engine.Env) engine.State {
	if env.Config.Debug {
		return newDebugState(g, env)
	}
	return newMenuState(g, env)
}

func init() {
	registry.Register(ID, "Dino Runner", func(s registry.Settings) (engine.Game, error) {
		cfg, err := config.LoadDino(s.ConfigPath)
		if err != nil {
			return nil, err
		}
		if s.Preset != "" {
			config.ApplyDinoPreset(&cfg, s.Preset)
		}
		return New(cfg), nil
	})
}
