package sim

import (
	"errors"
	"math"
	"testing"

	"github.com/vovakirdan/pillarflap/internal/config"
)

// stillConfig returns a config where nothing moves unless a test says so.
func stillConfig() config.Config {
	cfg := config.DefaultConfig()
	cfg.Physics.Gravity = 0
	cfg.Physics.WorldSpeed = 0
	cfg.Pillars.DefaultSpeed = 0
	cfg.Pillars.SpawnInterval = 1000
	return cfg
}

func newTestWorld(t *testing.T, cfg config.Config, rnd RandomSource) *World {
	t.Helper()
	w, err := New(cfg, rnd)
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	return w
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Player.Size.Width = 0

	_, err := New(cfg, NewRandSource(1))
	if !errors.Is(err, ErrInvalidConfig) || !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New() error = %v, expected ErrInvalidConfig wrapping config.ErrInvalid", err)
	}

	cfg = config.DefaultConfig()
	cfg.Pillars.CullX = cfg.Player.Start.X + 100
	if _, err := New(cfg, NewRandSource(1)); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("New() with cull_x ahead of the player: error = %v, expected config.ErrInvalid", err)
	}

	if _, err := New(config.DefaultConfig(), nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("New(nil source) error = %v, expected ErrInvalidConfig", err)
	}
}

func TestStepRejectsInvalidDelta(t *testing.T) {
	w := newTestWorld(t, config.DefaultConfig(), NewRandSource(1))

	for _, dt := range []float32{0, -1, float32(math.NaN()), float32(math.Inf(1))} {
		if _, err := w.Step(dt, false); !errors.Is(err, ErrInvalidDelta) {
			t.Errorf("Step(%v) error = %v, expected ErrInvalidDelta", dt, err)
		}
	}
	if w.Tick() != 0 {
		t.Errorf("Tick() = %d, rejected steps must not count", w.Tick())
	}
}

func TestStepObstacleMotion(t *testing.T) {
	cfg := stillConfig()
	cfg.Physics.WorldSpeed = 100
	w := newTestWorld(t, cfg, NewRandSource(1))
	w.obstacles = append(w.obstacles, obstacleAt(1, 0, 300, 50, 10))

	if _, err := w.Step(0.5, false); err != nil {
		t.Fatal(err)
	}

	if x := w.Obstacles()[0].Position.X; x != -50 {
		t.Errorf("X = %v, expected -50", x)
	}
}

func TestStepCollidesWithPostUpdatePlayer(t *testing.T) {
	cfg := stillConfig()
	cfg.Physics.Gravity = 200
	px := cfg.Player.Start.X

	// Overlaps the start position only; the player falls 200 units away.
	w := newTestWorld(t, cfg, NewRandSource(1))
	w.obstacles = append(w.obstacles, obstacleAt(1, px, 0, 30, 30))
	events, err := w.Step(1.0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 0 {
		t.Errorf("collision against pre-update position: %d events", len(events))
	}

	// Overlaps only where the player lands.
	w = newTestWorld(t, cfg, NewRandSource(1))
	w.obstacles = append(w.obstacles, obstacleAt(1, px, -200, 30, 30))
	events, err = w.Step(1.0, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 {
		t.Errorf("collision against post-update position: %d events, expected 1", len(events))
	}
}

func TestStepCollidesWithPostMotionObstacle(t *testing.T) {
	cfg := stillConfig()
	cfg.Physics.WorldSpeed = 100
	px := cfg.Player.Start.X

	w := newTestWorld(t, cfg, NewRandSource(1))
	// Left edge at px+45, clear of the player's right edge at px+25 until it moves 50.
	w.obstacles = append(w.obstacles, obstacleAt(7, px+60, 0, 30, 30))

	events, err := w.Step(0.5, false)
	if err != nil {
		t.Fatal(err)
	}
	if len(events) != 1 || events[0].ObstacleID != 7 {
		t.Errorf("events = %+v, expected one hit on obstacle 7", events)
	}
}

func TestStepSpawnsAndMovesNewObstacle(t *testing.T) {
	cfg := stillConfig()
	cfg.Pillars.SpawnInterval = 1
	cfg.Physics.WorldSpeed = 150
	w := newTestWorld(t, cfg, NewSequence(0.5, 0.5))

	if _, err := w.Step(1, false); err != nil {
		t.Fatal(err)
	}

	obs := w.Obstacles()
	if len(obs) != 1 {
		t.Fatalf("%d obstacles, expected 1", len(obs))
	}
	if obs[0].Position.X != cfg.Pillars.SpawnX-150 {
		t.Errorf("X = %v, expected %v", obs[0].Position.X, cfg.Pillars.SpawnX-150)
	}
	if w.Stats().Spawned != 1 {
		t.Errorf("Stats().Spawned = %d, expected 1", w.Stats().Spawned)
	}
}

func TestStepRandomFailureLeavesWorldUntouched(t *testing.T) {
	cfg := stillConfig()
	cfg.Physics.Gravity = 200
	cfg.Pillars.SpawnInterval = 1
	w := newTestWorld(t, cfg, NewSequence())
	before := w.Player()

	_, err := w.Step(1, true)
	if !errors.Is(err, ErrRandom) {
		t.Fatalf("Step() error = %v, expected ErrRandom", err)
	}

	if w.Player() != before {
		t.Errorf("player changed on failed step: %+v -> %+v", before, w.Player())
	}
	if w.Tick() != 0 || len(w.Obstacles()) != 0 {
		t.Errorf("tick %d, %d obstacles after failed step", w.Tick(), len(w.Obstacles()))
	}
	if w.Spawner().State() != SpawnerReady {
		t.Errorf("spawner state = %s, expected ready", w.Spawner().State())
	}
}

func TestStepFlapAfterIntegration(t *testing.T) {
	cfg := stillConfig()
	w := newTestWorld(t, cfg, NewRandSource(1))

	// The impulse is added after this step's integration, so y is unchanged.
	if _, err := w.Step(0.5, true); err != nil {
		t.Fatal(err)
	}
	p := w.Player()
	if p.Position.Y != 0 || p.Force() != cfg.Physics.FlapForce {
		t.Errorf("after flap step: y=%v force=%v", p.Position.Y, p.Force())
	}

	// Next step rises by force*dt, then the force halves.
	if _, err := w.Step(0.5, false); err != nil {
		t.Fatal(err)
	}
	p = w.Player()
	if p.Position.Y != 500 || p.Force() != 500 {
		t.Errorf("after rise step: y=%v force=%v, expected 500/500", p.Position.Y, p.Force())
	}
}

func TestStepCullsPassedObstacles(t *testing.T) {
	cfg := stillConfig()
	cfg.Physics.WorldSpeed = 100
	w := newTestWorld(t, cfg, NewRandSource(1))
	cull := cfg.Pillars.CullX
	w.obstacles = append(w.obstacles,
		obstacleAt(1, cull+10, 300, 50, 10),
		obstacleAt(2, cull+200, 300, 50, 10),
	)

	if _, err := w.Step(0.5, false); err != nil {
		t.Fatal(err)
	}

	obs := w.Obstacles()
	if len(obs) != 1 || obs[0].ID != 2 {
		t.Errorf("obstacles after cull = %+v, expected only ID 2", obs)
	}
	if w.Stats().Culled != 1 {
		t.Errorf("Stats().Culled = %d, expected 1", w.Stats().Culled)
	}
}

func TestStepRepeatsCollisionWhileOverlapping(t *testing.T) {
	cfg := stillConfig()
	w := newTestWorld(t, cfg, NewRandSource(1))
	w.obstacles = append(w.obstacles, obstacleAt(1, cfg.Player.Start.X, 0, 30, 30))

	for i := 0; i < 3; i++ {
		events, err := w.Step(0.1, false)
		if err != nil {
			t.Fatal(err)
		}
		if len(events) != 1 {
			t.Errorf("step %d: %d events, expected 1", i+1, len(events))
		}
	}
	if w.Stats().Collisions != 3 {
		t.Errorf("Stats().Collisions = %d, expected 3", w.Stats().Collisions)
	}
}

func TestStepLatchedCollision(t *testing.T) {
	cfg := stillConfig()
	cfg.Collision.Latch = true
	w := newTestWorld(t, cfg, NewRandSource(1))
	w.obstacles = append(w.obstacles, obstacleAt(1, cfg.Player.Start.X, 0, 30, 30))

	total := 0
	for i := 0; i < 3; i++ {
		events, err := w.Step(0.1, false)
		if err != nil {
			t.Fatal(err)
		}
		total += len(events)
	}
	if total != 1 {
		t.Errorf("latched overlap emitted %d events, expected 1", total)
	}
}

func TestWorldDeterminism(t *testing.T) {
	run := func() *World {
		w := newTestWorld(t, config.DefaultConfig(), NewRandSource(12345))
		for i := 0; i < 600; i++ {
			if _, err := w.Step(1.0/60, i%20 == 0); err != nil {
				t.Fatal(err)
			}
		}
		return w
	}

	w1, w2 := run(), run()

	if w1.Player() != w2.Player() {
		t.Errorf("players differ: %+v vs %+v", w1.Player(), w2.Player())
	}
	o1, o2 := w1.Obstacles(), w2.Obstacles()
	if len(o1) != len(o2) {
		t.Fatalf("obstacle counts differ: %d vs %d", len(o1), len(o2))
	}
	for i := range o1 {
		if o1[i] != o2[i] {
			t.Errorf("obstacle %d differs: %+v vs %+v", i, o1[i], o2[i])
		}
	}
	if w1.Stats() != w2.Stats() {
		t.Errorf("stats differ: %+v vs %+v", w1.Stats(), w2.Stats())
	}
}

func TestWorldSetters(t *testing.T) {
	w := newTestWorld(t, config.DefaultConfig(), NewRandSource(1))

	if err := w.SetWorldSpeed(float32(math.NaN())); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetWorldSpeed(NaN) = %v, expected ErrInvalidConfig", err)
	}
	if err := w.SetWorldSpeed(42); err != nil || w.WorldSpeed() != 42 {
		t.Errorf("SetWorldSpeed(42): err %v, speed %v", err, w.WorldSpeed())
	}
	if err := w.SetSpawnInterval(0); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("SetSpawnInterval(0) = %v, expected ErrInvalidConfig", err)
	}
}
