package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pillarflap/internal/config"
	"github.com/vovakirdan/pillarflap/internal/core"
)

// Game is what the driver needs from a playable game.
type Game interface {
	ID() string
	Reset(cfg core.RuntimeConfig) error
	Step(in core.InputFrame) (core.StepResult, error)
	Render(dst *core.Screen)
	State() core.GameState
	Reconfigure(cfg config.Config) error
}

// ConfigLoader reads a config file for hot reload.
type ConfigLoader func(path string) (config.Config, error)

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger for runtime events. Defaults to a discarding logger.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) {
		m.logger = l
	}
}

// WithWatcher enables hot reload from w using load.
func WithWatcher(w *config.Watcher, load ConfigLoader) Option {
	return func(m *Model) {
		m.watcher = w
		m.load = load
	}
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	randomSeed bool // Reseed from the clock on every restart
	inputFrame core.InputFrame
	gameState  core.GameState
	keys       KeyMap
	help       help.Model
	logger     *log.Logger
	watcher    *config.Watcher
	load       ConfigLoader
	status     string
	err        error
	quitting   bool
}

// NewModel resets game and wraps it in a model.
func NewModel(game Game, cfg core.RuntimeConfig, opts ...Option) (Model, error) {
	randomSeed := cfg.Seed == 0
	if randomSeed {
		cfg.Seed = time.Now().UnixNano()
	}

	m := Model{
		game:       game,
		config:     cfg,
		randomSeed: randomSeed,
		inputFrame: core.NewInputFrame(),
		keys:       DefaultKeyMap(),
		help:       help.New(),
		logger:     log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.screen = core.NewScreen(cfg.ScreenW, playHeight(cfg.ScreenH))

	if err := game.Reset(cfg); err != nil {
		return Model{}, err
	}
	m.gameState = game.State()
	m.logger.Debug("game started", "game", game.ID(), "seed", cfg.Seed)
	return m, nil
}

// playHeight leaves one row for the help footer.
func playHeight(h int) int {
	return core.Max(h-1, 1)
}

// Err returns the error that stopped the model, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the tick loop and, when configured, the config watcher.
func (m Model) Init() tea.Cmd {
	if m.watcher != nil {
		return tea.Batch(tickCmd(m.config.TickRate), watchCmd(m.watcher))
	}
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()

	case ConfigChangedMsg:
		return m.handleConfigChanged(msg)

	case WatchErrorMsg:
		m.logger.Warn("config watcher", "error", msg.Err)
		return m, watchCmd(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Screenshot) {
		m.saveScreenshot()
		return m, nil
	}

	switch action := m.keys.MapKey(msg); action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionRestart:
		if m.gameState.GameOver {
			m.inputFrame.Set(action)
		}
	case core.ActionNone:
	default:
		m.inputFrame.Set(action)
	}

	return m, nil
}

// handleResize processes window resize events. The world is scaled to the
// screen, so the run is kept.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, playHeight(msg.Height))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.inputFrame.Has(core.ActionRestart) && m.gameState.GameOver {
		if m.randomSeed {
			m.config.Seed = time.Now().UnixNano()
		}
		if err := m.game.Reset(m.config); err != nil {
			return m.fail(err)
		}
		m.gameState = m.game.State()
		m.status = ""
		m.inputFrame.Clear()
		m.logger.Debug("game restarted", "seed", m.config.Seed)
		return m, tickCmd(m.config.TickRate)
	}

	wasOver := m.gameState.GameOver
	result, err := m.game.Step(m.inputFrame)
	if err != nil {
		return m.fail(err)
	}
	m.gameState = result.State

	if result.Hits > 0 {
		m.logger.Debug("collision", "tick", result.State.Tick, "hits", result.Hits)
	}
	if m.gameState.GameOver && !wasOver {
		m.logger.Info("game over", "score", m.gameState.Score, "tick", m.gameState.Tick)
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate)
}

// handleConfigChanged reloads the config and restarts the run with it.
// An invalid file keeps the running config.
func (m Model) handleConfigChanged(msg ConfigChangedMsg) (tea.Model, tea.Cmd) {
	next := watchCmd(m.watcher)

	cfg, err := m.load(msg.Path)
	if err != nil {
		m.logger.Warn("config reload rejected", "path", msg.Path, "error", err)
		m.status = "config rejected: " + err.Error()
		return m, next
	}
	if err := m.game.Reconfigure(cfg); err != nil {
		m.logger.Warn("config reload rejected", "path", msg.Path, "error", err)
		m.status = "config rejected: " + err.Error()
		return m, next
	}

	m.gameState = m.game.State()
	m.status = "config reloaded"
	m.logger.Info("config reloaded", "path", msg.Path)
	return m, next
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.quitting = true
	m.logger.Error("simulation stopped", "tick", m.gameState.Tick, "error", err)
	return m, tea.Quit
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".pillarflap", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot", "error", err)
		return
	}
	m.status = "saved " + path
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	footer := m.help.View(m.keys)
	if m.status != "" {
		footer += "  " + statusStyle.Render(m.status)
	}
	return RenderScreen(m.screen) + "\n" + footer
}

// Run starts the Bubble Tea program for game and blocks until it exits.
func Run(game Game, cfg core.RuntimeConfig, opts ...Option) error {
	model, err := NewModel(game, cfg, opts...)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok && fm.err != nil {
		return fm.err
	}
	return nil
}
