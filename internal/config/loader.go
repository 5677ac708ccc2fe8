package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPreset is returned by ParsePreset for names other than easy,
// normal and hard.
var ErrUnknownPreset = errors.New("config: unknown difficulty preset")

// LoadBreakout loads Breakout configuration.
// Search order: customPath -> ~/.arcade/configs/breakout.yaml -> ./configs/breakout.yaml -> embedded default
func LoadBreakout(customPath string) (BreakoutConfig, error) {
	cfg, err := load("breakout.yaml", customPath, defaultBreakoutYAML, DefaultBreakoutConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// LoadDino loads Dino Runner configuration.
// Search order: customPath -> ~/.arcade/configs/dino.yaml -> ./configs/dino.yaml -> embedded default
func LoadDino(customPath string) (DinoConfig, error) {
	cfg, err := load("dino.yaml", customPath, defaultDinoYAML, DefaultDinoConfig)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// load reads a config file. Files found in the search directories are
// decoded over the defaults, so they only need the keys they change; a
// broken file there is skipped. A custom path must exist and parse.
func load[T any](name, customPath string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	for _, path := range []string{userConfigPath(name), filepath.Join("configs", name)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := fallback()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(embedded, &cfg); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".arcade", "configs", filename)
}

// ParsePreset converts a command line value into a preset. An empty value
// selects normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownPreset, s)
	}
}

// ApplyBreakoutPreset modifies the config based on a difficulty preset.
func ApplyBreakoutPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
}

// ApplyDinoPreset modifies the config based on a difficulty preset.
func ApplyDinoPreset(cfg *DinoConfig, preset DifficultyPreset) {
	cfg.Difficulty.Preset = preset
}

// Validate reports values the Breakout simulation cannot run with.
func (c BreakoutConfig) Validate() error {
	switch {
	case c.Ball.Radius <= 0:
		return errors.New("config: breakout ball radius must be positive")
	case c.Ball.Speed <= 0:
		return errors.New("config: breakout ball speed must be positive")
	case c.Ball.BounceScaling < 1:
		return errors.New("config: breakout bounce scaling must be at least 1")
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return errors.New("config: breakout paddle size must be positive")
	case c.Blocks.Width <= 0 || c.Blocks.Height <= 0 || c.Blocks.Gap < 0:
		return errors.New("config: breakout block size must be positive")
	case c.Lives <= 0:
		return errors.New("config: breakout lives must be positive")
	case c.AI.MaxReflections < 0:
		return errors.New("config: breakout max reflections must not be negative")
	}
	return nil
}

// Validate reports values the Dino Runner simulation cannot run with.
func (c DinoConfig) Validate() error {
	switch {
	case c.Physics.Gravity <= 0 || c.Physics.FallForce <= 0:
		return errors.New("config: dino gravity must be positive")
	case c.Physics.JumpVelocity <= 0:
		return errors.New("config: dino jump velocity must be positive")
	case c.Physics.LongJump < 1:
		return errors.New("config: dino long jump scalar must be at least 1")
	case c.Physics.BaseSpeed <= 0:
		return errors.New("config: dino base speed must be positive")
	case c.Physics.ScoreInterval <= 0:
		return errors.New("config: dino score interval must be positive")
	case c.Obstacles.IntervalFactor <= 0:
		return errors.New("config: dino obstacle interval factor must be positive")
	case c.Lives <= 0:
		return errors.New("config: dino lives must be positive")
	}
	return nil
}
