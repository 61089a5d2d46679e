package sim

import "errors"

// Sentinel errors returned (wrapped) by the simulation.
var (
	// ErrInvalidDelta is returned when a step is given a non-positive or non-finite dt.
	ErrInvalidDelta = errors.New("sim: invalid step delta")

	// ErrInvalidConfig is returned when the world is built from a config that fails validation.
	ErrInvalidConfig = errors.New("sim: invalid config")

	// ErrRandom is returned when the random source fails or yields a value outside [0, 1).
	ErrRandom = errors.New("sim: random source failure")
)
