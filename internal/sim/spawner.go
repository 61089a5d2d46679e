package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pillarflap/internal/config"
	"github.com/vovakirdan/pillarflap/internal/core"
)

// SpawnerState is the spawner's position in its Idle -> Ready -> Idle cycle.
type SpawnerState int

const (
	// SpawnerIdle accumulates time until the interval boundary.
	SpawnerIdle SpawnerState = iota
	// SpawnerReady has reached a boundary and spawns on the current tick.
	// The spawner only remains Ready across ticks when a spawn failed.
	SpawnerReady
)

func (s SpawnerState) String() string {
	switch s {
	case SpawnerIdle:
		return "idle"
	case SpawnerReady:
		return "ready"
	default:
		return "unknown"
	}
}

// Spawner creates one obstacle per spawn interval.
type Spawner struct {
	cfg      config.PillarConfig
	rnd      RandomSource
	interval float32
	elapsed  float64 // Time since the last boundary, summed in float64 so boundaries land on the exact step
	state    SpawnerState
	lastID   ObstacleID
}

// NewSpawner creates an idle spawner drawing from rnd.
func NewSpawner(cfg config.PillarConfig, rnd RandomSource) *Spawner {
	return &Spawner{
		cfg:      cfg,
		rnd:      rnd,
		interval: cfg.SpawnInterval,
	}
}

// Tick advances the spawner by dt and returns the obstacle spawned this
// tick, if any. At most one obstacle is produced per tick: when dt spans
// several intervals the extra boundaries are dropped, keeping only the
// phase. On a random failure nothing but the Ready state is committed, so
// the failed tick can be treated as never having happened.
func (s *Spawner) Tick(dt float32) (Obstacle, bool, error) {
	e := s.elapsed + float64(dt)
	if s.state == SpawnerIdle && e >= float64(s.interval) {
		s.state = SpawnerReady
	}
	if s.state == SpawnerIdle {
		s.elapsed = e
		return Obstacle{}, false, nil
	}

	o, err := s.spawn()
	if err != nil {
		return Obstacle{}, false, err
	}

	s.state = SpawnerIdle
	s.elapsed = math.Mod(e, float64(s.interval))
	return o, true, nil
}

// spawn draws height then vertical offset, in that order.
func (s *Spawner) spawn() (Obstacle, error) {
	h, err := draw(s.rnd)
	if err != nil {
		return Obstacle{}, fmt.Errorf("sim: pillar height: %w", err)
	}
	off, err := draw(s.rnd)
	if err != nil {
		return Obstacle{}, fmt.Errorf("sim: pillar offset: %w", err)
	}

	s.lastID++
	return Obstacle{
		ID:       s.lastID,
		Position: core.Vec2{X: s.cfg.SpawnX, Y: float32(off*s.cfg.OffsetRange) - s.cfg.OffsetRange/2},
		Width:    s.cfg.Width,
		Height:   float32(h * s.cfg.HeightScale),
		Speed:    s.cfg.DefaultSpeed,
	}, nil
}

// SetInterval changes the spawn interval. The accumulated time is kept.
func (s *Spawner) SetInterval(interval float32) error {
	if math.IsNaN(float64(interval)) || math.IsInf(float64(interval), 0) || interval <= 0 {
		return fmt.Errorf("%w: spawn interval must be positive, got %v", ErrInvalidConfig, interval)
	}
	s.interval = interval
	return nil
}

// Interval returns the current spawn interval.
func (s *Spawner) Interval() float32 {
	return s.interval
}

// State returns the spawner state.
func (s *Spawner) State() SpawnerState {
	return s.state
}

// Elapsed returns the time accumulated since the last interval boundary.
func (s *Spawner) Elapsed() float64 {
	return s.elapsed
}
