package sim

import (
	"github.com/vovakirdan/pillarflap/internal/config"
	"github.com/vovakirdan/pillarflap/internal/core"
)

// Impulse decay: above the threshold the force halves each step,
// at or below it the force snaps to zero.
const (
	forceDecayThreshold float32 = 100.0
	forceDecayFactor    float32 = 0.5
)

// PlayerBody is the player's vertical state. X never changes during a run.
type PlayerBody struct {
	Position  core.Vec2
	Width     float32
	Height    float32
	Gravity   float32 // Constant downward acceleration magnitude
	FlapForce float32 // Impulse added per activated step

	force float32 // Upward impulse accumulator, never negative
}

// NewPlayerBody creates a body at the configured start position with zero force.
func NewPlayerBody(player config.PlayerConfig, physics config.PhysicsConfig) PlayerBody {
	return PlayerBody{
		Position:  core.Vec2{X: player.Start.X, Y: player.Start.Y},
		Width:     player.Size.Width,
		Height:    player.Size.Height,
		Gravity:   physics.Gravity,
		FlapForce: physics.FlapForce,
	}
}

// Update integrates one step: y moves by (force - gravity) * dt, then the
// force decays.
func (p *PlayerBody) Update(dt float32) {
	// The explicit conversion rounds the product and prevents a fused multiply-add.
	p.Position.Y += float32((p.force - p.Gravity) * dt)

	if p.force > forceDecayThreshold {
		p.force *= forceDecayFactor
	} else {
		p.force = 0
	}
}

// Flap adds the flap impulse. Calls stack: holding the input adds the
// impulse on every step it is held.
func (p *PlayerBody) Flap() {
	p.force += p.FlapForce
}

// Force returns the current upward impulse.
func (p PlayerBody) Force() float32 {
	return p.force
}

// Box returns the player's bounding box.
func (p PlayerBody) Box() core.Box {
	return core.Box{Center: p.Position, W: p.Width, H: p.Height}
}
