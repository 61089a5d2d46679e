// Package clock supplies the per-step time delta for a simulation driver.
package clock

import (
	"errors"
	"fmt"
	"math"
	"time"
)

var (
	// ErrInvalidRate is returned for a non-positive tick rate.
	ErrInvalidRate = errors.New("clock: tick rate must be positive")
	// ErrInvalidDelta is returned for a non-positive or non-finite step.
	ErrInvalidDelta = errors.New("clock: delta must be positive and finite")
)

// Clock yields the seconds elapsed since the previous call.
// Every value it returns is finite and greater than zero.
type Clock interface {
	Delta() float32
}

// Fixed returns the same delta on every call.
type Fixed struct {
	dt float32
}

// NewFixed creates a clock stepping 1/tickRate seconds per call.
func NewFixed(tickRate int) (*Fixed, error) {
	if tickRate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, tickRate)
	}
	return &Fixed{dt: 1 / float32(tickRate)}, nil
}

// NewFixedDelta creates a clock stepping dt seconds per call.
func NewFixedDelta(dt float32) (*Fixed, error) {
	if math.IsNaN(float64(dt)) || math.IsInf(float64(dt), 0) || dt <= 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}
	return &Fixed{dt: dt}, nil
}

// Delta returns the fixed step.
func (f *Fixed) Delta() float32 {
	return f.dt
}

// Wall measures real time between calls.
type Wall struct {
	now      func() time.Time
	last     time.Time
	min, max time.Duration
}

// WallOption configures a Wall clock.
type WallOption func(*Wall)

// WithNow replaces time.Now, for tests.
func WithNow(now func() time.Time) WallOption {
	return func(w *Wall) {
		w.now = now
	}
}

// WithBounds clamps each delta to [min, max].
func WithBounds(min, max time.Duration) WallOption {
	return func(w *Wall) {
		if min > 0 {
			w.min = min
		}
		if max >= w.min {
			w.max = max
		}
	}
}

// NewWall creates a wall clock. By default deltas are clamped to
// [1ms, 250ms] so a stalled terminal does not tunnel the player
// through a pillar.
func NewWall(opts ...WallOption) *Wall {
	w := &Wall{
		now: time.Now,
		min: time.Millisecond,
		max: 250 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.last = w.now()
	return w
}

// Delta returns the clamped time since the previous call (or construction).
func (w *Wall) Delta() float32 {
	t := w.now()
	d := t.Sub(w.last)
	w.last = t

	if d < w.min {
		d = w.min
	}
	if d > w.max {
		d = w.max
	}
	return float32(d.Seconds())
}

// Reset restarts measurement from now.
func (w *Wall) Reset() {
	w.last = w.now()
}
