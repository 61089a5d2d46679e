// Package config provides YAML-based simulation configuration loading,
// validation and difficulty management.
package config

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalid is returned (wrapped) by Validate for malformed configuration.
var ErrInvalid = errors.New("config: invalid")

// Hitbox modes for obstacle collision boxes.
const (
	HitboxHeight = "height" // obstacle box uses width x height
	HitboxLegacy = "legacy" // obstacle box uses width on both axes
)

// Config is the complete, run-immutable configuration of one simulation.
type Config struct {
	Player     PlayerConfig     `yaml:"player"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Pillars    PillarConfig     `yaml:"pillars"`
	Collision  CollisionConfig  `yaml:"collision"`
	View       ViewConfig       `yaml:"view"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
}

// Size is a width/height pair in world units.
type Size struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// Point is a position in world units.
type Point struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

// PlayerConfig defines the player body (PLAYER_SIZE, PLAYER_START_POSITION).
type PlayerConfig struct {
	Size  Size  `yaml:"size"`
	Start Point `yaml:"start"`
}

// PhysicsConfig defines GRAVITY, PLAYER_FORCE_ON_FLAP and WORLD_DEFAULT_SPEED.
type PhysicsConfig struct {
	Gravity    float32 `yaml:"gravity"`
	FlapForce  float32 `yaml:"flap_force"`
	WorldSpeed float32 `yaml:"world_speed"`
}

// PillarConfig defines obstacle spawning, motion and culling.
type PillarConfig struct {
	SpawnInterval float32 `yaml:"spawn_interval"` // PILLAR_SPAWN_INTERVAL, seconds
	Width         float32 `yaml:"width"`          // PILLAR_WIDTH
	HeightScale   float32 `yaml:"height_scale"`   // PILLAR_HEIGHT_SCALE_FACTOR
	DefaultSpeed  float32 `yaml:"default_speed"`  // PILLAR_DEFAULT_SPEED
	SpawnX        float32 `yaml:"spawn_x"`        // x of every new pillar
	OffsetRange   float32 `yaml:"offset_range"`   // vertical offset drawn from [-range/2, range/2)
	CullX         float32 `yaml:"cull_x"`         // pillars with x below this are removed
}

// CollisionConfig selects the obstacle hitbox and event latching.
type CollisionConfig struct {
	Hitbox string `yaml:"hitbox"`
	Latch  bool   `yaml:"latch"`
}

// ViewConfig is the visible world area, centered on the origin.
type ViewConfig struct {
	Width  float32 `yaml:"width"`
	Height float32 `yaml:"height"`
}

// DifficultyConfig defines the optional difficulty progression.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score/ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes at max level.
type ScalingConfig struct {
	SpeedMultiplier   float64 `yaml:"speed_multiplier"`   // Added to world speed factor
	IntervalReduction float64 `yaml:"interval_reduction"` // Fraction of spawn interval removed
}

// Validate rejects configurations that would corrupt simulation state.
func (c Config) Validate() error {
	positive := []struct {
		name string
		v    float32
	}{
		{"player.size.width", c.Player.Size.Width},
		{"player.size.height", c.Player.Size.Height},
		{"pillars.spawn_interval", c.Pillars.SpawnInterval},
		{"view.width", c.View.Width},
		{"view.height", c.View.Height},
	}
	for _, p := range positive {
		if !finite(p.v) || p.v <= 0 {
			return fmt.Errorf("%w: %s must be positive, got %v", ErrInvalid, p.name, p.v)
		}
	}

	nonNegative := []struct {
		name string
		v    float32
	}{
		{"physics.gravity", c.Physics.Gravity},
		{"physics.flap_force", c.Physics.FlapForce},
		{"pillars.width", c.Pillars.Width},
		{"pillars.height_scale", c.Pillars.HeightScale},
		{"pillars.offset_range", c.Pillars.OffsetRange},
	}
	for _, p := range nonNegative {
		if !finite(p.v) || p.v < 0 {
			return fmt.Errorf("%w: %s must not be negative, got %v", ErrInvalid, p.name, p.v)
		}
	}

	for _, p := range []struct {
		name string
		v    float32
	}{
		{"player.start.x", c.Player.Start.X},
		{"player.start.y", c.Player.Start.Y},
		{"physics.world_speed", c.Physics.WorldSpeed},
		{"pillars.default_speed", c.Pillars.DefaultSpeed},
		{"pillars.spawn_x", c.Pillars.SpawnX},
		{"pillars.cull_x", c.Pillars.CullX},
	} {
		if !finite(p.v) {
			return fmt.Errorf("%w: %s must be finite", ErrInvalid, p.name)
		}
	}

	// Culling must only remove pillars that can no longer reach the player.
	if playerLeft := c.Player.Start.X - c.Player.Size.Width/2; c.Pillars.CullX+c.Pillars.Width/2 >= playerLeft {
		return fmt.Errorf("%w: pillars.cull_x %v must put a culled pillar behind the player's left edge %v",
			ErrInvalid, c.Pillars.CullX, playerLeft)
	}

	switch c.Collision.Hitbox {
	case HitboxHeight, HitboxLegacy:
	default:
		return fmt.Errorf("%w: collision.hitbox must be %q or %q, got %q",
			ErrInvalid, HitboxHeight, HitboxLegacy, c.Collision.Hitbox)
	}

	switch c.Difficulty.Progression.Type {
	case "score", "time", "none", "":
	default:
		return fmt.Errorf("%w: difficulty.progression.type %q is unknown", ErrInvalid, c.Difficulty.Progression.Type)
	}

	return nil
}

func finite(v float32) bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset maps a CLI string to a preset. Unknown strings yield "".
func ParsePreset(s string) DifficultyPreset {
	switch p := DifficultyPreset(s); p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p
	default:
		return ""
	}
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// An empty preset leaves the config untouched.
func ApplyPreset(cfg *Config, preset DifficultyPreset) {
	switch preset {
	case "":
		return
	case DifficultyFixed:
		cfg.Difficulty.Enabled = false
	default:
		cfg.Difficulty.Enabled = true
		cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
	}
}
