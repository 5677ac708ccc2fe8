package config

import (
	_ "embed"
)

//go:embed defaults/dino.yaml
var defaultDinoYAML []byte

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the default Breakout configuration.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Ball: BreakoutBall{
			Radius:        2,
			Speed:         48,
			Timer:         3,
			BounceScaling: 1.01,
		},
		Paddle: BreakoutPaddle{
			Width:  24,
			Height: 3,
			Margin: 4,
			Speed:  120,
		},
		Blocks: BreakoutBlocks{
			Width:  12,
			Height: 4,
			Gap:    2,
		},
		Particles: BreakoutParticles{
			Count:    8,
			Spread:   2,
			Speed:    12,
			Jitter:   60,
			Damping:  0.95,
			Lifetime: 0.5,
		},
		AI: BreakoutAI{
			Speed:          6,
			ChaseThreshold: 0.25,
			MaxReflections: 10,
		},
		Audio: BreakoutAudio{
			BounceHz:  220,
			ScoreHz:   440,
			TimerHz:   110,
			Duration:  0.25,
			ResetTime: 0.5,
		},
		Lives:     3,
		MenuSteps: 8,
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Scaling: ScalingConfig{
				SpeedRange: 0.5,
				LivesRange: 1,
			},
		},
	}
}

// DefaultDinoConfig returns the default Dino Runner configuration.
func DefaultDinoConfig() DinoConfig {
	return DinoConfig{
		Physics: DinoPhysics{
			Gravity:       600,
			FallForce:     900,
			JumpVelocity:  160,
			LongJump:      1.25,
			BaseSpeed:     60,
			ScoreInterval: 0.1,
		},
		Obstacles: DinoObstacles{
			IntervalFactor:    1.0,
			CactusChance:      0.05,
			BigCactusChance:   0.25,
			PteroChance:       0.005,
			PteroStartDelay:   5,
			DoubleSpawnChance: 0.25,
		},
		Clouds: DinoClouds{
			Count:    6,
			Interval: 0.25,
			MinSpeed: 4,
			MaxSpeed: 8,
		},
		Player: DinoPlayer{
			X:              6,
			GroundOffset:   2,
			Invulnerable:   1.5,
			SpriteInterval: 0.25,
		},
		Touch: DinoTouch{
			SpeedFactor:    1.2,
			IntervalFactor: 1.5,
			GravityFactor:  1.2,
		},
		Lives: 3,
		Difficulty: DifficultyConfig{
			Preset: DifficultyNormal,
			Scaling: ScalingConfig{
				SpeedRange: 0.4,
				LivesRange: 1,
			},
		},
	}
}
