package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/gui"
	"github.com/vovakirdan/tui-flappy/internal/savedata"
	"github.com/vovakirdan/tui-flappy/internal/score"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagBestStore string
	flagScale     float64
	windowSound   soundFlags
)

var windowCmd = &cobra.Command{
	Use:   "window",
	Short: "Play in a desktop window",
	Long: `Start a game in a desktop window.

Controls:
  Space/Up/W - Flap (and start)
  Click      - Flap, start or restart
  Enter      - Start / restart
  P/Esc      - Pause
  R          - Restart (after game over)
  Q          - Quit

The best score is kept in the platform's app data directory by default.
Use --store sqlite to share it with the terminal game.

Examples:
  flappy window
  flappy window --scale 2
  flappy window --store sqlite
  flappy window --sound=false`,
	Args: cobra.NoArgs,
	Run:  runWindow,
}

func init() {
	windowCmd.Flags().StringVar(&flagBestStore, "store", "gdata", "Best score store: gdata, sqlite, memory")
	windowCmd.Flags().Float64Var(&flagScale, "scale", 1.5, "Window scale")
	windowSound.register(windowCmd, true)
}

// bestScoreStore opens the --store backend for player.
func bestScoreStore(kind, player string, db *storage.Store, logger *log.Logger) score.Store {
	switch kind {
	case "gdata":
		sd, err := savedata.Open(savedata.AppName, player)
		if err == nil {
			return sd
		}
		logger.Warn("could not open app data", "error", err)
	case "sqlite":
		if db != nil {
			return storage.BestScores(db, player)
		}
	case "memory":
	default:
		fatal("unknown --store %q (expected gdata, sqlite or memory)", kind)
	}
	return &score.Memory{}
}

func runWindow(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("flappy", false)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	cfg := loadConfig()
	player := playerName()

	// The run history always goes to sqlite
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	keeper := score.NewKeeper(bestScoreStore(flagBestStore, player, store, logger), logger)
	sounds := windowSound.open(logger)

	// The window sizes itself from the field, so only the rate and seed apply
	rc := core.DefaultConfig()
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	rc.Seed = flagSeed
	runErr := gui.Run(flappy.New(cfg, keeper), rc, flagScale, gui.Options{
		Store:  store,
		Player: player,
		Sounds: sounds,
		Logger: logger,
	})

	sounds.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fatal("running game: %v", runErr)
	}
}
