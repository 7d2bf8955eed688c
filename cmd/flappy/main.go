// flappy is a Flappy Bird clone for the terminal, the desktop and SSH.
//
// Usage:
//
//	flappy play              - Play in the terminal
//	flappy window            - Play in a desktop window
//	flappy serve             - Start SSH server for remote play
//	flappy scores            - Show the run history and best scores
//	flappy config            - Print or check the game configuration
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.flappy/scores.db)
//	--config <path>     - Use a custom game config YAML
//	--player <name>     - Name recorded with scores (default: $USER)
//	--log-level <lvl>   - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagPlayer   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappy",
	Short: "Flappy Bird in your terminal",
	Long: `Guide the bird through the gaps between the pipes. Every pipe you pass
scores a point; touching a pipe, the ground or the ceiling ends the run.

Available commands:
  play     - Play in the terminal
  window   - Play in a desktop window
  serve    - Start SSH server for remote play
  scores   - View the run history and best scores
  config   - Print or check the game configuration

Examples:
  flappy play
  flappy play --seed 42 --fps 30
  flappy window --scale 2
  flappy serve --ssh :2222
  flappy scores --browse`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.flappy/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagPlayer, "player", "", "Player name for scores (default: $USER)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Log file (interactive commands default to ~/.flappy/flappy.log)")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(windowCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(configCmd)
}

// fatal prints an error and exits.
func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}

// playerName resolves --player, falling back to the login name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return storage.DefaultPlayer
}

// loadConfig loads the game configuration honoring --config.
func loadConfig() config.FlappyConfig {
	cfg, _, err := config.LoadFlappy(flagConfig)
	if err != nil {
		fatal("%v", err)
	}
	return cfg
}
