// Package config provides YAML-based game configuration loading and
// difficulty presets for the arcade games.
//
// All lengths are world pixels and all durations are seconds.
package config

// BreakoutConfig contains all configuration for the Breakout game.
type BreakoutConfig struct {
	Ball       BreakoutBall      `yaml:"ball"`
	Paddle     BreakoutPaddle    `yaml:"paddle"`
	Blocks     BreakoutBlocks    `yaml:"blocks"`
	Particles  BreakoutParticles `yaml:"particles"`
	AI         BreakoutAI        `yaml:"ai"`
	Audio      BreakoutAudio     `yaml:"audio"`
	Lives      int               `yaml:"lives"`
	MenuSteps  int               `yaml:"menu_substeps"` // physics substeps of the menu demo
	Difficulty DifficultyConfig  `yaml:"difficulty"`
}

// BreakoutBall defines ball parameters.
type BreakoutBall struct {
	Radius        float64 `yaml:"radius"`
	Speed         float64 `yaml:"speed"`
	Timer         float64 `yaml:"timer"`          // countdown before launch
	BounceScaling float64 `yaml:"bounce_scaling"` // difficulty factor per bounce
}

// BreakoutPaddle defines paddle parameters.
type BreakoutPaddle struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Margin float64 `yaml:"margin"` // gap between paddle and bottom edge
	Speed  float64 `yaml:"speed"`  // keyboard speed of the player paddle
}

// BreakoutBlocks defines the block grid.
type BreakoutBlocks struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Gap    float64 `yaml:"gap"`
}

// BreakoutParticles defines the bounce explosion.
type BreakoutParticles struct {
	Count    int     `yaml:"count"`
	Spread   float64 `yaml:"spread"`
	Speed    float64 `yaml:"speed"`
	Jitter   float64 `yaml:"jitter"`
	Damping  float64 `yaml:"damping"`
	Lifetime float64 `yaml:"lifetime"`
}

// BreakoutAI defines the computer paddle.
type BreakoutAI struct {
	Speed          float64 `yaml:"speed"`
	ChaseThreshold float64 `yaml:"chase_threshold"` // fraction of the height
	MaxReflections int     `yaml:"max_reflections"`
}

// BreakoutAudio defines sound pitches.
type BreakoutAudio struct {
	BounceHz  float64 `yaml:"bounce_hz"`
	ScoreHz   float64 `yaml:"score_hz"`
	TimerHz   float64 `yaml:"timer_hz"`
	Duration  float64 `yaml:"duration"`
	ResetTime float64 `yaml:"reset_time"` // quiet period that resets the score pitch
}

// DinoConfig contains all configuration for the Dino Runner game.
type DinoConfig struct {
	Physics    DinoPhysics      `yaml:"physics"`
	Obstacles  DinoObstacles    `yaml:"obstacles"`
	Clouds     DinoClouds       `yaml:"clouds"`
	Player     DinoPlayer       `yaml:"player"`
	Touch      DinoTouch        `yaml:"touch"`
	Lives      int              `yaml:"lives"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// DinoPhysics defines physics parameters for Dino Runner.
type DinoPhysics struct {
	Gravity       float64 `yaml:"gravity"`
	FallForce     float64 `yaml:"fall_force"`
	JumpVelocity  float64 `yaml:"jump_velocity"`
	LongJump      float64 `yaml:"long_jump"` // jump scalar of the long jump
	BaseSpeed     float64 `yaml:"base_speed"`
	ScoreInterval float64 `yaml:"score_interval"`
}

// DinoObstacles defines obstacle spawning for Dino Runner.
type DinoObstacles struct {
	IntervalFactor    float64 `yaml:"interval_factor"`
	CactusChance      float64 `yaml:"cactus_chance"`
	BigCactusChance   float64 `yaml:"big_cactus_chance"`
	PteroChance       float64 `yaml:"ptero_chance"`
	PteroStartDelay   float64 `yaml:"ptero_start_delay"`
	DoubleSpawnChance float64 `yaml:"double_spawn_chance"`
}

// DinoClouds defines the background clouds.
type DinoClouds struct {
	Count    int     `yaml:"count"`
	Interval float64 `yaml:"interval"`
	MinSpeed float64 `yaml:"min_speed"`
	MaxSpeed float64 `yaml:"max_speed"`
}

// DinoPlayer defines player parameters for Dino Runner.
type DinoPlayer struct {
	X              float64 `yaml:"x"`
	GroundOffset   float64 `yaml:"ground_offset"`
	Invulnerable   float64 `yaml:"invulnerable"`    // seconds of blinking after a hit
	SpriteInterval float64 `yaml:"sprite_interval"` // run animation frame time
}

// DinoTouch defines the touch input profile.
type DinoTouch struct {
	SpeedFactor    float64 `yaml:"speed_factor"`
	IntervalFactor float64 `yaml:"interval_factor"`
	GravityFactor  float64 `yaml:"gravity_factor"`
}

// DifficultyConfig defines how a preset scales a game.
type DifficultyConfig struct {
	Preset  DifficultyPreset `yaml:"preset"`
	Scaling ScalingConfig    `yaml:"scaling"`
}

// ScalingConfig defines the magnitude of difficulty changes between the easy
// and hard presets.
type ScalingConfig struct {
	SpeedRange float64 `yaml:"speed_range"` // speed factor spread, 0.5 means 0.75x..1.25x
	LivesRange int     `yaml:"lives_range"` // extra lives on easy, fewer on hard
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// LevelForPreset returns the difficulty level of a preset: 0 for easy,
// 0.5 for normal and 1 for hard. Unknown presets count as normal.
func LevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyHard:
		return 1.0
	default:
		return 0.5
	}
}
