package config

import (
	_ "embed"
)

//go:embed defaults/pillarflap.yaml
var defaultYAML []byte

// DefaultConfig returns the built-in configuration.
// It matches defaults/pillarflap.yaml and is used when the embed cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Player: PlayerConfig{
			Size:  Size{Width: 50, Height: 50},
			Start: Point{X: -500, Y: 0},
		},
		Physics: PhysicsConfig{
			Gravity:    200,
			FlapForce:  1000,
			WorldSpeed: 150,
		},
		Pillars: PillarConfig{
			SpawnInterval: 3.0,
			Width:         50,
			HeightScale:   400,
			DefaultSpeed:  0,
			SpawnX:        700,
			OffsetRange:   500,
			CullX:         -800,
		},
		Collision: CollisionConfig{
			Hitbox: HitboxHeight,
			Latch:  false,
		},
		View: ViewConfig{
			Width:  1280,
			Height: 720,
		},
		Difficulty: DifficultyConfig{
			Enabled:      false,
			InitialLevel: 0.0,
			Progression: ProgressionConfig{
				Type:  "time",
				MaxAt: 7200, // 2 minutes at 60fps
			},
			Scaling: ScalingConfig{
				SpeedMultiplier:   1.0,
				IntervalReduction: 0.5,
			},
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
