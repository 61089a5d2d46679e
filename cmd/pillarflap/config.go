package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/pillarflap/internal/config"
)

var flagShowDefault bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Loads the configuration the way play and sim do and prints it as YAML.

Search order:
  --config <path>
  ~/.pillarflap/config.yaml
  ./configs/pillarflap.yaml
  built-in defaults`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagShowDefault, "default", false, "Print the built-in default instead")
}

func runConfig(cmd *cobra.Command, args []string) {
	if flagShowDefault {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	cfg, err := loadConfig(flagConfig)
	exitOnError(err)

	data, err := config.Marshal(cfg)
	exitOnError(err)

	if src := config.ResolvePath(flagConfig); src != "" {
		fmt.Printf("# source: %s\n", src)
	} else {
		fmt.Println("# source: built-in defaults")
	}
	os.Stdout.Write(data)
}

// loadConfig loads path and applies the --difficulty preset.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}
