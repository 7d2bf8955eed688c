package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
)

var flagCheck string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print or check the game configuration",
	Long: `Print the effective game configuration as YAML.

The configuration is searched in this order:
  --config <path>
  ~/.flappy/configs/flappy.yaml
  ./configs/flappy.yaml
  built-in defaults

Files only need to list the values they change.

Examples:
  flappy config > ~/.flappy/configs/flappy.yaml
  flappy config --check ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().StringVar(&flagCheck, "check", "", "Validate a config file and exit")
}

func runConfig(_ *cobra.Command, _ []string) {
	if flagCheck != "" {
		data, err := os.ReadFile(flagCheck)
		if err != nil {
			fatal("%v", err)
		}
		if _, err := config.Parse(data); err != nil {
			fatal("%s: %v", flagCheck, err)
		}
		fmt.Printf("%s: ok\n", flagCheck)
		return
	}

	cfg, source, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	data, err := config.Marshal(cfg)
	if err != nil {
		fatal("%v", err)
	}
	fmt.Printf("# source: %s\n", source)
	os.Stdout.Write(data) //nolint:errcheck
}
