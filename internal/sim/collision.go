package sim

import (
	"github.com/vovakirdan/pillarflap/internal/config"
	"github.com/vovakirdan/pillarflap/internal/core"
)

// CollisionEvent reports one overlapping (player, obstacle) pair in one step.
type CollisionEvent struct {
	Tick       uint64 // Step that produced the event, starting at 1
	ObstacleID ObstacleID
	Player     core.Box
	Obstacle   core.Box // Hitbox used for the test
}

// Detector tests the player against every obstacle with a strict AABB test.
//
// In legacy hitbox mode the obstacle box is width x width, ignoring the
// pillar's height. With latching, an obstacle that keeps overlapping is
// reported only on the first step of the overlap.
type Detector struct {
	hitbox   string
	latch    bool
	touching map[ObstacleID]struct{}
}

// NewDetector creates a detector from the collision config.
func NewDetector(cfg config.CollisionConfig) *Detector {
	return &Detector{
		hitbox:   cfg.Hitbox,
		latch:    cfg.Latch,
		touching: make(map[ObstacleID]struct{}),
	}
}

// Hitbox returns the box used to test o.
func (d *Detector) Hitbox(o Obstacle) core.Box {
	if d.hitbox == config.HitboxLegacy {
		return core.Box{Center: o.Position, W: o.Width, H: o.Width}
	}
	return o.Box()
}

// Scan returns one event per obstacle overlapping the player, in obstacle
// order. Obstacles are not modified.
func (d *Detector) Scan(tick uint64, player core.Box, obstacles []Obstacle) []CollisionEvent {
	var events []CollisionEvent
	var now map[ObstacleID]struct{}
	if d.latch {
		now = make(map[ObstacleID]struct{}, len(d.touching))
	}

	for _, o := range obstacles {
		box := d.Hitbox(o)
		if !player.Overlaps(box) {
			continue
		}
		if d.latch {
			now[o.ID] = struct{}{}
			if _, seen := d.touching[o.ID]; seen {
				continue
			}
		}
		events = append(events, CollisionEvent{
			Tick:       tick,
			ObstacleID: o.ID,
			Player:     player,
			Obstacle:   box,
		})
	}

	if d.latch {
		d.touching = now
	}
	return events
}
