// Package flap implements the pillar-dodging game on top of the sim world.
// The player flaps to stay airborne while pillars scroll in from the right.
package flap

import (
	"errors"
	"fmt"
	"math"

	"github.com/vovakirdan/pillarflap/internal/clock"
	"github.com/vovakirdan/pillarflap/internal/config"
	"github.com/vovakirdan/pillarflap/internal/core"
	"github.com/vovakirdan/pillarflap/internal/sim"
)

// Visual characters for rendering
const (
	PlayerChar = '●'
	PillarChar = '█'
	BorderChar = '─'
)

// ErrNotReset is returned by Step before the first Reset.
var ErrNotReset = errors.New("flap: step before reset")

// Option configures a Game.
type Option func(*Game)

// WithRandomSource replaces the seeded math/rand source. The factory is
// called with the runtime seed on every Reset.
func WithRandomSource(newSource func(seed int64) sim.RandomSource) Option {
	return func(g *Game) {
		g.newSource = newSource
	}
}

// WithClock replaces the fixed 1/tick-rate clock. A clock with a Reset
// method is restarted on game reset and while paused, so time spent
// outside play is not simulated.
func WithClock(c clock.Clock) Option {
	return func(g *Game) {
		g.clock = c
	}
}

// Game drives one sim.World from per-tick input frames.
type Game struct {
	cfg        config.Config
	runtime    core.RuntimeConfig
	newSource  func(seed int64) sim.RandomSource
	clock      clock.Clock
	fixedClock bool // clock was built from runtime.TickRate
	world      *sim.World
	difficulty *config.DifficultyManager

	score    int
	gameOver bool
	paused   bool
}

// resetter is implemented by clocks that measure real time.
type resetter interface {
	Reset()
}

// New creates a game for cfg. Call Reset before the first Step.
func New(cfg config.Config, opts ...Option) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g := &Game{
		cfg:        cfg,
		newSource:  sim.NewRandSource,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// ID returns the identifier used in logs and screenshots.
func (g *Game) ID() string {
	return "pillarflap"
}

// Reset starts a new run with the given runtime settings.
func (g *Game) Reset(rt core.RuntimeConfig) error {
	if g.clock == nil || g.fixedClock {
		c, err := clock.NewFixed(rt.TickRate)
		if err != nil {
			return fmt.Errorf("flap: %w", err)
		}
		g.clock = c
		g.fixedClock = true
	}

	w, err := sim.New(g.cfg, g.newSource(rt.Seed))
	if err != nil {
		return fmt.Errorf("flap: %w", err)
	}

	g.runtime = rt
	g.world = w
	g.score = 0
	g.gameOver = false
	g.paused = false
	g.restartClock()
	return nil
}

// Reconfigure swaps in a new config and restarts the run.
func (g *Game) Reconfigure(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	g.cfg = cfg
	g.difficulty = config.NewDifficultyManager(cfg.Difficulty)
	return g.Reset(g.runtime)
}

// Config returns the active configuration.
func (g *Game) Config() config.Config {
	return g.cfg
}

// Step advances the game by one tick. A simulation error leaves the
// world as it was before the tick and is returned to the caller.
func (g *Game) Step(in core.InputFrame) (core.StepResult, error) {
	if g.world == nil {
		return core.StepResult{}, ErrNotReset
	}
	if g.gameOver {
		return core.StepResult{State: g.State()}, nil
	}

	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		g.restartClock()
		return core.StepResult{State: g.State()}, nil
	}

	if g.difficulty.IsEnabled() {
		if err := g.applyDifficulty(); err != nil {
			return core.StepResult{State: g.State()}, err
		}
	}

	events, err := g.world.Step(g.clock.Delta(), in.Has(core.ActionFlap))
	if err != nil {
		return core.StepResult{State: g.State()}, fmt.Errorf("flap: %w", err)
	}

	g.updateScore()

	if len(events) > 0 || g.outOfView() {
		g.gameOver = true
	}

	return core.StepResult{State: g.State(), Hits: len(events)}, nil
}

func (g *Game) applyDifficulty() error {
	tick := g.world.Tick()
	speed := g.difficulty.Speed(g.cfg.Physics.WorldSpeed, g.score, tick)
	if err := g.world.SetWorldSpeed(speed); err != nil {
		return fmt.Errorf("flap: difficulty: %w", err)
	}
	interval := g.difficulty.SpawnInterval(g.cfg.Pillars.SpawnInterval, g.score, tick)
	if err := g.world.SetSpawnInterval(interval); err != nil {
		return fmt.Errorf("flap: difficulty: %w", err)
	}
	return nil
}

// updateScore counts obstacles whose center has passed the player. Culled
// obstacles always count: validation keeps cull_x behind the player, so an
// obstacle culled in the same step it passed is still scored.
func (g *Game) updateScore() {
	px := g.world.Player().Position.X
	passed := g.world.Stats().Culled
	for _, o := range g.world.Obstacles() {
		if o.Position.X < px {
			passed++
		}
	}
	// Pillars scrolling back (negative world speed) never take points away.
	if passed > g.score {
		g.score = passed
	}
}

func (g *Game) restartClock() {
	if r, ok := g.clock.(resetter); ok {
		r.Reset()
	}
}

func (g *Game) outOfView() bool {
	b := g.world.Player().Box()
	half := g.cfg.View.Height / 2
	return b.Top() < -half || b.Bottom() > half
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	var tick uint64
	if g.world != nil {
		tick = g.world.Tick()
	}
	return core.GameState{
		Score:    g.score,
		Tick:     tick,
		GameOver: g.gameOver,
		Paused:   g.paused,
	}
}

// Render draws the world scaled into dst. Row 0 holds the HUD.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()
	if g.world == nil || dst.Width() == 0 || dst.Height() < 2 {
		return
	}

	v := viewport{
		view: g.cfg.View,
		cols: dst.Width(),
		rows: dst.Height() - 1,
		top:  1,
	}

	for _, o := range g.world.Obstacles() {
		dst.FillRect(v.rect(g.world.Hitbox(o)), PillarChar, core.ColorGreen)
	}

	color := core.ColorYellow
	if g.gameOver {
		color = core.ColorRed
	}
	dst.FillRect(v.rect(g.world.Player().Box()), PlayerChar, color)

	dst.DrawHLine(0, 0, dst.Width(), ' ', core.ColorDefault)
	dst.DrawText(2, 0, fmt.Sprintf(" Score: %d ", g.score))

	if g.paused {
		drawMessage(dst, "PAUSED", "Press P to resume")
	}
	if g.gameOver {
		drawMessage(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  Press R to restart", g.score))
	}
}

// viewport maps y-up world coordinates onto screen cells.
type viewport struct {
	view       config.ViewConfig
	cols, rows int
	top        int
}

func (v viewport) col(x float32) float64 {
	return float64((x + v.view.Width/2) / v.view.Width * float32(v.cols))
}

func (v viewport) row(y float32) float64 {
	return float64((v.view.Height/2-y)/v.view.Height*float32(v.rows)) + float64(v.top)
}

// rect covers every cell the box touches, at least one cell.
func (v viewport) rect(b core.Box) core.Rect {
	x0 := int(math.Floor(v.col(b.Left())))
	x1 := int(math.Ceil(v.col(b.Right())))
	y0 := int(math.Floor(v.row(b.Top())))
	y1 := int(math.Ceil(v.row(b.Bottom())))
	return core.NewRect(x0, y0, core.Max(x1-x0, 1), core.Max(y1-y0, 1))
}

// drawMessage draws a framed message in the center of the screen.
func drawMessage(dst *core.Screen, title, subtitle string) {
	boxW := core.Max(len([]rune(title)), len([]rune(subtitle))) + 4
	boxH := 5
	boxX := (dst.Width() - boxW) / 2
	boxY := (dst.Height() - boxH) / 2

	dst.FillRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawHLine(boxX, boxY, boxW, BorderChar, core.ColorGray)
	dst.DrawHLine(boxX, boxY+boxH-1, boxW, BorderChar, core.ColorGray)

	dst.DrawText(boxX+(boxW-len([]rune(title)))/2, boxY+1, title)
	dst.DrawText(boxX+(boxW-len([]rune(subtitle)))/2, boxY+3, subtitle)
}
