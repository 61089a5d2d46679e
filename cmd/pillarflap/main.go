// pillarflap is a terminal pillar-dodging game built on a deterministic
// physics and collision core.
//
// Usage:
//
//	pillarflap play            - Play in the terminal
//	pillarflap sim             - Run the simulation headless and log events
//	pillarflap config          - Print the effective configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--log-level <level>   - debug, info, warn, error (default: info)
//	--log-format <format> - text, logfmt, json (default: text)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS       int
	flagSeed      int64
	flagLogLevel  string
	flagLogFormat string

	// Shared by play, sim and config
	flagConfig     string
	flagDifficulty string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "pillarflap",
	Short: "Pillarflap - dodge scrolling pillars in your terminal",
	Long: `Pillarflap is a side-scrolling game: gravity pulls the player down,
each flap pushes it up, and pillars scroll in from the right.

Available commands:
  play     - Play in the terminal
  sim      - Run the simulation headless and log collisions
  config   - Print the effective configuration as YAML

Examples:
  pillarflap play
  pillarflap play --difficulty hard
  pillarflap sim --steps 1200 --seed 42
  pillarflap config --config ./my.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "text", "Log format: text, logfmt, json")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(configCmd)
}

// exitOnError prints err and exits with status 1.
func exitOnError(err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
