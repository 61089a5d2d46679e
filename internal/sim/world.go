// Package sim is the physics-and-collision core of the game: a player body
// under gravity and flap impulses, pillars spawned on an interval and
// scrolling toward the player, and strict AABB collision detection.
//
// The package is single-threaded. A World is owned by one driver that calls
// Step once per frame; it performs no I/O and never logs.
package sim

import (
	"fmt"
	"math"

	"github.com/vovakirdan/pillarflap/internal/config"
	"github.com/vovakirdan/pillarflap/internal/core"
)

// Stats counts world activity since creation.
type Stats struct {
	Spawned    int // Obstacles created
	Culled     int // Obstacles removed after scrolling past cull_x
	Collisions int // Collision events emitted
}

// World owns the player, the obstacle collection, the spawner and the
// detector, and sequences them each step.
type World struct {
	cfg        config.Config
	player     PlayerBody
	obstacles  []Obstacle // Spawn order
	spawner    *Spawner
	detector   *Detector
	worldSpeed float32
	tick       uint64
	time       float64 // Simulated seconds
	stats      Stats
}

// New builds a world from a validated config and an injected random source.
func New(cfg config.Config, rnd RandomSource) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if rnd == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidConfig)
	}

	return &World{
		cfg:        cfg,
		player:     NewPlayerBody(cfg.Player, cfg.Physics),
		obstacles:  make([]Obstacle, 0, 8),
		spawner:    NewSpawner(cfg.Pillars, rnd),
		detector:   NewDetector(cfg.Collision),
		worldSpeed: cfg.Physics.WorldSpeed,
	}, nil
}

// Step advances the world by dt seconds. flap is the activation signal for
// this step. Order: player integration, flap impulse, spawner, obstacle
// motion, collision scan, culling. Collisions see post-update positions.
//
// A rejected dt or a random source failure aborts the step: the player,
// obstacles and tick are left as they were. After a random failure the
// spawner stays Ready and spawns on the next successful step.
func (w *World) Step(dt float32, flap bool) ([]CollisionEvent, error) {
	if math.IsNaN(float64(dt)) || math.IsInf(float64(dt), 0) || dt <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}

	saved := w.player
	w.player.Update(dt)
	if flap {
		w.player.Flap()
	}

	o, spawned, err := w.spawner.Tick(dt)
	if err != nil {
		w.player = saved
		return nil, fmt.Errorf("sim: step %d: %w", w.tick+1, err)
	}
	if spawned {
		w.obstacles = append(w.obstacles, o)
		w.stats.Spawned++
	}

	for i := range w.obstacles {
		w.obstacles[i].Advance(dt, w.worldSpeed)
	}

	w.tick++
	w.time += float64(dt)

	events := w.detector.Scan(w.tick, w.player.Box(), w.obstacles)
	w.stats.Collisions += len(events)

	w.cull()

	return events, nil
}

// cull removes obstacles that scrolled past cull_x, keeping spawn order.
func (w *World) cull() {
	kept := w.obstacles[:0]
	for _, o := range w.obstacles {
		if o.Position.X < w.cfg.Pillars.CullX {
			w.stats.Culled++
			continue
		}
		kept = append(kept, o)
	}
	w.obstacles = kept
}

// Player returns a copy of the player body.
func (w *World) Player() PlayerBody {
	return w.player
}

// Obstacles returns a copy of the live obstacles in spawn order.
func (w *World) Obstacles() []Obstacle {
	out := make([]Obstacle, len(w.obstacles))
	copy(out, w.obstacles)
	return out
}

// Hitbox returns the collision box the detector uses for o.
func (w *World) Hitbox(o Obstacle) core.Box {
	return w.detector.Hitbox(o)
}

// Tick returns the number of completed steps.
func (w *World) Tick() uint64 {
	return w.tick
}

// Time returns the total simulated time in seconds.
func (w *World) Time() float64 {
	return w.time
}

// Stats returns activity counters.
func (w *World) Stats() Stats {
	return w.stats
}

// Config returns the configuration the world was built with.
func (w *World) Config() config.Config {
	return w.cfg
}

// Spawner exposes the spawner for inspection.
func (w *World) Spawner() *Spawner {
	return w.spawner
}

// WorldSpeed returns the current scroll speed.
func (w *World) WorldSpeed() float32 {
	return w.worldSpeed
}

// SetWorldSpeed changes the scroll speed applied to all obstacles.
func (w *World) SetWorldSpeed(speed float32) error {
	if math.IsNaN(float64(speed)) || math.IsInf(float64(speed), 0) {
		return fmt.Errorf("%w: world speed must be finite", ErrInvalidConfig)
	}
	w.worldSpeed = speed
	return nil
}

// SetSpawnInterval changes the spawn interval.
func (w *World) SetSpawnInterval(interval float32) error {
	return w.spawner.SetInterval(interval)
}
