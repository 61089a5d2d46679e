package sim

import "github.com/vovakirdan/pillarflap/internal/core"

// ObstacleID identifies an obstacle for the lifetime of a world.
// IDs are assigned in spawn order starting at 1 and never reused.
type ObstacleID uint64

// Obstacle is a pillar scrolling toward the player.
type Obstacle struct {
	ID       ObstacleID
	Position core.Vec2
	Width    float32
	Height   float32
	Speed    float32 // Own speed, added to the world speed
}

// Advance moves the obstacle left by (speed + worldSpeed) * dt.
func (o *Obstacle) Advance(dt, worldSpeed float32) {
	o.Position.X -= float32((o.Speed + worldSpeed) * dt)
}

// Box returns the obstacle's true bounding box (width x height).
func (o Obstacle) Box() core.Box {
	return core.Box{Center: o.Position, W: o.Width, H: o.Height}
}
