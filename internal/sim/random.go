package sim

import (
	"errors"
	"fmt"
	"math/rand"
)

// RandomSource yields uniform samples in [0, 1).
// A source may fail; the spawner treats a failure as fatal to the step.
type RandomSource interface {
	Float32() (float32, error)
}

// randSource adapts a seeded math/rand generator.
type randSource struct {
	rng *rand.Rand
}

// NewRandSource returns a deterministic source seeded with seed.
func NewRandSource(seed int64) RandomSource {
	return &randSource{rng: rand.New(rand.NewSource(seed))}
}

func (s *randSource) Float32() (float32, error) {
	return s.rng.Float32(), nil
}

// Sequence replays a fixed list of samples. Once drained every call fails
// with ErrRandom. Used for scripted scenarios and tests.
type Sequence struct {
	values []float32
	pos    int
}

// NewSequence creates a sequence source over values.
func NewSequence(values ...float32) *Sequence {
	return &Sequence{values: values}
}

// Float32 returns the next sample.
func (s *Sequence) Float32() (float32, error) {
	if s.pos >= len(s.values) {
		return 0, fmt.Errorf("%w: sequence exhausted after %d draws", ErrRandom, s.pos)
	}
	v := s.values[s.pos]
	s.pos++
	return v, nil
}

// Remaining returns the number of samples not yet drawn.
func (s *Sequence) Remaining() int {
	return len(s.values) - s.pos
}

// draw reads one sample and checks it is in [0, 1).
func draw(src RandomSource) (float32, error) {
	v, err := src.Float32()
	if err != nil {
		if errors.Is(err, ErrRandom) {
			return 0, err
		}
		return 0, fmt.Errorf("%w: %w", ErrRandom, err)
	}
	if !(v >= 0 && v < 1) {
		return 0, fmt.Errorf("%w: sample %v outside [0, 1)", ErrRandom, v)
	}
	return v, nil
}
