package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/score"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// soundFlags holds --sound and --volume of one command.
type soundFlags struct {
	enabled bool
	volume  float64
}

var playSound soundFlags

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Start a game in the terminal.

Controls:
  Space/Up/W/Click - Flap (and start)
  Enter            - Start / restart
  P/Esc            - Pause
  R                - Restart (after game over)
  Ctrl+S           - Save a text screenshot
  Q/Ctrl+C         - Quit

Examples:
  flappy play
  flappy play --player ann
  flappy play --sound --volume 0.3
  flappy play --config ./my-flappy.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playSound.register(playCmd, false)
}

// register adds --sound and --volume to cmd.
func (f *soundFlags) register(cmd *cobra.Command, enabled bool) {
	cmd.Flags().BoolVar(&f.enabled, "sound", enabled, "Play sound effects")
	cmd.Flags().Float64Var(&f.volume, "volume", 0.5, "Sound volume (0..1)")
}

// open starts the sound board when --sound is set. Failures only cost the
// sound.
func (f *soundFlags) open(logger *log.Logger) *audio.Board {
	if !f.enabled {
		return nil
	}
	board := audio.NewBoard(f.volume)
	if err := board.Init(); err != nil {
		logger.Warn("sound disabled", "error", err)
		return nil
	}
	return board
}

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger("flappy", true)
	if err != nil {
		fatal("%v", err)
	}
	defer closeLog()

	cfg := loadConfig()
	player := playerName()

	rc := core.DefaultConfig()
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		rc.ScreenW = w
		rc.ScreenH = h
	}
	if flagFPS > 0 {
		rc.TickRate = flagFPS
	}
	rc.Seed = flagSeed

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		// Continue without storage - game still works
		store = nil
	}

	var keeper flappy.BestScoreKeeper
	if store != nil {
		keeper = score.NewKeeper(storage.BestScores(store, player), logger)
	} else {
		keeper = score.NewKeeper(&score.Memory{}, logger)
	}

	sounds := playSound.open(logger)

	runErr := tui.Run(flappy.New(cfg, keeper), rc, tui.Options{
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
