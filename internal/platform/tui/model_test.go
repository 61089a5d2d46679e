package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/pillarflap/internal/config"
	"github.com/vovakirdan/pillarflap/internal/core"
)

// fakeGame records what the model asks of it.
type fakeGame struct {
	resets      int
	steps       []core.InputFrame
	state       core.GameState
	stepErr     error
	reconfigErr error
	reconfigs   []config.Config
}

func (g *fakeGame) ID() string { return "fake" }

func (g *fakeGame) Reset(core.RuntimeConfig) error {
	g.resets++
	g.state = core.GameState{}
	return nil
}

func (g *fakeGame) Step(in core.InputFrame) (core.StepResult, error) {
	if g.stepErr != nil {
		return core.StepResult{State: g.state}, g.stepErr
	}
	frame := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			frame.Set(a)
		}
	}
	g.steps = append(g.steps, frame)
	g.state.Tick++
	return core.StepResult{State: g.state}, nil
}

func (g *fakeGame) Render(dst *core.Screen) {
	dst.Clear()
	dst.DrawText(0, 0, "fake")
}

func (g *fakeGame) State() core.GameState { return g.state }

func (g *fakeGame) Reconfigure(cfg config.Config) error {
	if g.reconfigErr != nil {
		return g.reconfigErr
	}
	g.reconfigs = append(g.reconfigs, cfg)
	return g.Reset(core.RuntimeConfig{})
}

var testRuntime = core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60, Seed: 7}

func newTestModel(t *testing.T, g *fakeGame, opts ...Option) Model {
	t.Helper()
	m, err := NewModel(g, testRuntime, opts...)
	if err != nil {
		t.Fatalf("NewModel() failed: %v", err)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return nm, cmd
}

func TestModelForwardsInputOnTick(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g)
	if g.resets != 1 {
		t.Fatalf("NewModel reset the game %d times, expected 1", g.resets)
	}

	m, _ = update(t, m, runeKey('w'))
	m, _ = update(t, m, TickMsg{})
	_, _ = update(t, m, TickMsg{})

	if len(g.steps) != 2 {
		t.Fatalf("%d steps, expected 2", len(g.steps))
	}
	if !g.steps[0].Has(core.ActionFlap) {
		t.Error("first tick did not carry the flap")
	}
	if g.steps[1].Has(core.ActionFlap) {
		t.Error("input frame was not cleared after the tick")
	}
}

func TestModelRestartOnlyAfterGameOver(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g)

	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if g.resets != 1 {
		t.Fatalf("restart accepted while running")
	}

	g.state.GameOver = true
	m, _ = update(t, m, TickMsg{})
	m, _ = update(t, m, runeKey('r'))
	m, _ = update(t, m, TickMsg{})
	if g.resets != 2 {
		t.Errorf("resets = %d, expected 2 after restart", g.resets)
	}
	if m.gameState.GameOver {
		t.Error("game state not refreshed after restart")
	}
}

func TestModelQuit(t *testing.T) {
	m := newTestModel(t, &fakeGame{})
	m, cmd := update(t, m, runeKey('q'))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("quit did not return tea.Quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quitting")
	}
}

func TestModelStopsOnStepError(t *testing.T) {
	boom := errors.New("boom")
	g := &fakeGame{stepErr: boom}
	m := newTestModel(t, g)

	m, cmd := update(t, m, TickMsg{})
	if !errors.Is(m.Err(), boom) {
		t.Errorf("Err() = %v, expected boom", m.Err())
	}
	if cmd == nil {
		t.Fatal("step error returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("step error did not quit")
	}
}

func TestModelConfigReload(t *testing.T) {
	dir := t.TempDir()
	w, err := config.Watch(dir + "/pillarflap.yaml")
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	want := config.DefaultConfig()
	want.Physics.Gravity = 321
	g := &fakeGame{}
	m := newTestModel(t, g, WithWatcher(w, func(string) (config.Config, error) {
		return want, nil
	}))

	m, cmd := update(t, m, ConfigChangedMsg{Path: "pillarflap.yaml"})
	if cmd == nil {
		t.Error("reload did not re-arm the watcher")
	}
	if len(g.reconfigs) != 1 || g.reconfigs[0].Physics.Gravity != 321 {
		t.Fatalf("reconfigs = %+v", g.reconfigs)
	}
	if m.status != "config reloaded" {
		t.Errorf("status = %q", m.status)
	}

	g.reconfigErr = config.ErrInvalid
	m, _ = update(t, m, ConfigChangedMsg{Path: "pillarflap.yaml"})
	if !strings.HasPrefix(m.status, "config rejected") {
		t.Errorf("status = %q, expected rejection", m.status)
	}
}

func TestModelViewIncludesHelp(t *testing.T) {
	m := newTestModel(t, &fakeGame{})
	out := m.View()
	if !strings.Contains(out, "fake") {
		t.Errorf("view missing game output:\n%s", out)
	}
	if !strings.Contains(out, "flap") {
		t.Errorf("view missing help footer:\n%s", out)
	}
}

func TestModelResizeKeepsRun(t *testing.T) {
	g := &fakeGame{}
	m := newTestModel(t, g)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})

	if g.resets != 1 {
		t.Errorf("resize reset the game")
	}
	if m.screen.Width() != 100 || m.screen.Height() != 29 {
		t.Errorf("screen = %dx%d, expected 100x29", m.screen.Width(), m.screen.Height())
	}
}
