package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/pillarflap/internal/clock"
	"github.com/vovakirdan/pillarflap/internal/sim"
)

var (
	flagSteps     int
	flagDT        float32
	flagFlapEvery int
	flagStopOnHit bool
)

var simCmd = &cobra.Command{
	Use:   "sim",
	Short: "Run the simulation headless",
	Long: `Steps the world without a terminal, flapping on a fixed schedule, and
logs every collision event followed by a summary.

Examples:
  pillarflap sim
  pillarflap sim --steps 3600 --flap-every 15 --seed 7
  pillarflap sim --dt 0.5 --log-format json`,
	Args: cobra.NoArgs,
	Run:  runSim,
}

func init() {
	simCmd.Flags().IntVar(&flagSteps, "steps", 600, "Number of steps to run")
	simCmd.Flags().Float32Var(&flagDT, "dt", 0, "Seconds per step (0 = 1/fps)")
	simCmd.Flags().IntVar(&flagFlapEvery, "flap-every", 20, "Flap every N steps (0 = never)")
	simCmd.Flags().BoolVar(&flagStopOnHit, "stop-on-hit", false, "Stop at the first collision")
}

// simOptions controls a headless run.
type simOptions struct {
	Steps     int
	FlapEvery int
	StopOnHit bool
}

// simResult summarizes a headless run.
type simResult struct {
	Steps int
	Stats sim.Stats
	Final sim.PlayerBody
}

func runSim(cmd *cobra.Command, args []string) {
	logger, err := newLogger(os.Stderr, flagLogLevel, flagLogFormat)
	exitOnError(err)

	cfg, err := loadConfig(flagConfig)
	exitOnError(err)

	var clk clock.Clock
	if flagDT != 0 {
		clk, err = clock.NewFixedDelta(flagDT)
	} else {
		clk, err = clock.NewFixed(flagFPS)
	}
	exitOnError(err)

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Info("sim start", "seed", seed, "steps", flagSteps, "dt", clk.Delta())

	world, err := sim.New(cfg, sim.NewRandSource(seed))
	exitOnError(err)

	res, err := simulate(world, clk, simOptions{
		Steps:     flagSteps,
		FlapEvery: flagFlapEvery,
		StopOnHit: flagStopOnHit,
	}, logger)
	if err != nil {
		logger.Error("sim stopped", "tick", world.Tick(), "error", err)
	}
	exitOnError(err)

	logger.Info("sim done",
		"steps", res.Steps,
		"time", world.Time(),
		"spawned", res.Stats.Spawned,
		"culled", res.Stats.Culled,
		"collisions", res.Stats.Collisions,
		"player_y", res.Final.Position.Y,
	)
}

// simulate steps world until opts.Steps, logging each collision event.
func simulate(world *sim.World, clk clock.Clock, opts simOptions, logger *log.Logger) (simResult, error) {
	var res simResult
	for i := 0; i < opts.Steps; i++ {
		flap := opts.FlapEvery > 0 && i%opts.FlapEvery == 0
		events, err := world.Step(clk.Delta(), flap)
		if err != nil {
			return res, err
		}
		res.Steps++

		for _, e := range events {
			logger.Info("collision",
				"tick", e.Tick,
				"obstacle", e.ObstacleID,
				"player_y", e.Player.Center.Y,
				"obstacle_x", e.Obstacle.Center.X,
				"obstacle_y", e.Obstacle.Center.Y,
			)
		}
		if opts.StopOnHit && len(events) > 0 {
			break
		}
	}
	res.Stats = world.Stats()
	res.Final = world.Player()
	return res, nil
}
