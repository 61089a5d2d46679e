package config

import "math"

// minSpawnInterval keeps progression from spawning pillars every step.
const minSpawnInterval = 0.25

// DifficultyManager calculates dynamic world parameters based on score/time.
type DifficultyManager struct {
	cfg          DifficultyConfig
	initialLevel float64
}

// NewDifficultyManager creates a new difficulty manager.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{
		cfg:          cfg,
		initialLevel: clampF(cfg.InitialLevel, 0.0, 1.0),
	}
}

// IsEnabled returns whether difficulty progression is active.
func (d *DifficultyManager) IsEnabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != "none"
}

// Level returns the current difficulty level (0.0 to 1.0) based on score/ticks.
func (d *DifficultyManager) Level(score int, ticks uint64) float64 {
	if !d.IsEnabled() {
		return d.initialLevel
	}

	maxAt := float64(d.cfg.Progression.MaxAt)
	if maxAt <= 0 {
		maxAt = 1 // Prevent division by zero
	}

	var progress float64
	switch d.cfg.Progression.Type {
	case "score":
		progress = float64(score) / maxAt
	case "time":
		progress = float64(ticks) / maxAt
	default:
		return d.initialLevel
	}

	progress = clampF(progress, 0.0, 1.0)

	// Interpolate from initial level to 1.0
	return d.initialLevel + progress*(1.0-d.initialLevel)
}

// Speed scales the world speed from base up to base * (1 + speed_multiplier).
func (d *DifficultyManager) Speed(base float32, score int, ticks uint64) float32 {
	level := d.Level(score, ticks)
	return float32(float64(base) * (1.0 + level*d.cfg.Scaling.SpeedMultiplier))
}

// SpawnInterval shrinks the spawn interval by up to interval_reduction of base.
func (d *DifficultyManager) SpawnInterval(base float32, score int, ticks uint64) float32 {
	level := d.Level(score, ticks)
	reduction := clampF(level*d.cfg.Scaling.IntervalReduction, 0.0, 1.0)
	result := float64(base) * (1.0 - reduction)
	if result < minSpawnInterval {
		result = math.Min(minSpawnInterval, float64(base))
	}
	return float32(result)
}

func clampF(val, min, max float64) float64 {
	return math.Max(min, math.Min(max, val))
}
