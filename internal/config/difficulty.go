package config

import "math"

// DifficultyManager turns a preset into speed and lives adjustments.
type DifficultyManager struct {
	cfg   DifficultyConfig
	level float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:   cfg,
		level: LevelForPreset(cfg.Preset),
	}
}

// SetLevel overrides the difficulty level (0.0 to 1.0).
func (d *DifficultyManager) SetLevel(level float64) {
	d.level = clampF(level, 0.0, 1.0)
}

// Level returns the difficulty level, 0.5 for the normal preset.
func (d *DifficultyManager) Level() float64 {
	return d.level
}

// Speed scales baseSpeed. The normal preset leaves it unchanged.
func (d *DifficultyManager) Speed(baseSpeed float64) float64 {
	return baseSpeed * (1.0 + (d.level-0.5)*d.cfg.Scaling.SpeedRange)
}

// Lives adjusts the starting lives: easy adds LivesRange, hard removes it.
// At least one life is always left.
func (d *DifficultyManager) Lives(base int) int {
	delta := int(math.Round((0.5 - d.level) * 2 * float64(d.cfg.Scaling.LivesRange)))
	if base+delta < 1 {
		return 1
	}
	return base + delta
}

// clampF restricts a float64 to [min, max].
func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
