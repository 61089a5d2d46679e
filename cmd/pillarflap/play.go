package main

import (
	"errors"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/pillarflap/internal/clock"
	"github.com/vovakirdan/pillarflap/internal/config"
	"github.com/vovakirdan/pillarflap/internal/core"
	"github.com/vovakirdan/pillarflap/internal/games/flap"
	"github.com/vovakirdan/pillarflap/internal/platform/tui"
)

var (
	flagWatch     bool
	flagLogFile   string
	flagWallClock bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Space/W/Up - Flap
  P/Esc      - Pause
  R          - Restart (after game over)
  Ctrl+S     - Save a screenshot to ~/.pillarflap/screenshots
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's values

Examples:
  pillarflap play
  pillarflap play --difficulty easy
  pillarflap play --config ./my.yaml --watch
  pillarflap play --wall-clock
  pillarflap play --log-file play.log --log-level debug`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Restart with the new config whenever the config file changes")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is owned by the game)")
	playCmd.Flags().BoolVar(&flagWallClock, "wall-clock", false, "Step by measured real time instead of a fixed 1/fps")
}

func runPlay(cmd *cobra.Command, args []string) {
	exitOnError(play())
}

// play runs the game and returns once it exits, so deferred cleanup runs
// before the process does.
func play() error {
	out := io.Discard
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}
	logger, err := newLogger(out, flagLogLevel, flagLogFormat)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flagConfig)
	if err != nil {
		return err
	}

	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	rt := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	var gameOpts []flap.Option
	if flagWallClock {
		gameOpts = append(gameOpts, flap.WithClock(clock.NewWall()))
		logger.Debug("using wall clock")
	}
	game, err := flap.New(cfg, gameOpts...)
	if err != nil {
		return err
	}

	opts := []tui.Option{tui.WithLogger(logger)}
	if flagWatch {
		w, err := watchConfig(flagConfig, logger)
		if err != nil {
			return err
		}
		defer w.Close()
		opts = append(opts, tui.WithWatcher(w, loadConfig))
	}

	if err := tui.Run(game, rt, opts...); err != nil {
		logger.Error("play", "error", err)
		return err
	}
	return nil
}

// watchConfig watches the file Load resolves for customPath.
func watchConfig(customPath string, logger *log.Logger) (*config.Watcher, error) {
	path := config.ResolvePath(customPath)
	if path == "" {
		return nil, errors.New("--watch needs a config file; pass --config or create " + config.LocalPath)
	}
	w, err := config.Watch(path)
	if err != nil {
		return nil, err
	}
	logger.Info("watching config", "path", path)
	return w, nil
}
