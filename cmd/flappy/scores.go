package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-flappy/internal/platform/tui"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

var (
	flagLimit    int
	flagMine     bool
	flagLeaders  bool
	flagBrowse   bool
	flagClear    bool
	flagClearAll bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the run history and best scores",
	Long: `Display the best runs recorded in the scores database.

Examples:
  flappy scores                  # Top 10 runs of all players
  flappy scores --mine           # Your latest runs
  flappy scores --leaders        # Best score of every player
  flappy scores --browse         # Interactive scoreboard
  flappy scores --clear          # Delete your runs and best score
  flappy scores --clear --all    # Delete everything
  flappy scores stats            # Aggregated statistics`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show aggregated statistics",
	Args:  cobra.NoArgs,
	Run:   runStats,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of rows to show")
	scoresCmd.Flags().BoolVar(&flagMine, "mine", false, "Show only your runs, newest first")
	scoresCmd.Flags().BoolVar(&flagLeaders, "leaders", false, "Show the best score of every player")
	scoresCmd.Flags().BoolVar(&flagBrowse, "browse", false, "Open the interactive scoreboard")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete your runs and best score")
	scoresCmd.Flags().BoolVar(&flagClearAll, "all", false, "With --clear, delete the scores of every player")

	statsCmd.Flags().BoolVar(&flagMine, "mine", false, "Only count your runs")
	scoresCmd.AddCommand(statsCmd)
}

func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fatal("opening scores database: %v", err)
	}
	return store
}

func runScores(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	player := playerName()

	switch {
	case flagClear:
		clearScores(store, player)
	case flagBrowse:
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		if err := tui.RunScoreboard(store, player, width, height); err != nil {
			fatal("%v", err)
		}
	case flagLeaders:
		printLeaders(store)
	default:
		printRuns(store, player)
	}
}

func clearScores(store *storage.Store, player string) {
	target := player
	if flagClearAll {
		target = ""
	}
	if err := store.ClearScores(target); err != nil {
		fatal("%v", err)
	}
	if target == "" {
		fmt.Println("All scores deleted.")
	} else {
		fmt.Printf("Scores of %s deleted.\n", target)
	}
}

func printRuns(store *storage.Store, player string) {
	var (
		entries []storage.ScoreEntry
		err     error
	)
	if flagMine {
		entries, err = store.PlayerScores(player, flagLimit)
		fmt.Printf("Latest runs - %s\n", player)
	} else {
		entries, err = store.TopScores(flagLimit)
		fmt.Println("High Scores - Flappy Bird")
	}
	if err != nil {
		fatal("retrieving scores: %v", err)
	}
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'flappy play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Time", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %s\n", "----", "------", "-----", "----", "----")

	for i, e := range entries {
		fmt.Printf("  %-4d  %-16s  %-6d  %-6s  %s\n",
			i+1, e.Player, e.Score, tui.FormatDuration(e.Duration()), e.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if !flagMine {
		if high, err := store.HighScore(); err == nil {
			fmt.Printf("High score: %d\n", high)
		}
	}
	if best, err := store.BestScore(player); err == nil {
		fmt.Printf("Your best: %d\n", best)
	}
}

func printLeaders(store *storage.Store) {
	leaders, err := store.Leaders(flagLimit)
	if err != nil {
		fatal("retrieving leaders: %v", err)
	}

	fmt.Println("Leaders - Flappy Bird")
	fmt.Println()
	if len(leaders) == 0 {
		fmt.Println("No best scores yet.")
		return
	}

	fmt.Printf("  %-4s  %-16s  %s\n", "Rank", "Player", "Best")
	fmt.Printf("  %-4s  %-16s  %s\n", "----", "------", "----")
	for i, l := range leaders {
		fmt.Printf("  %-4d  %-16s  %d\n", i+1, l.Player, l.Score)
	}
}

func runStats(_ *cobra.Command, _ []string) {
	store := openStore()
	defer store.Close()

	player := ""
	if flagMine {
		player = playerName()
	}

	stats, err := store.GetStats(player)
	if err != nil {
		fatal("%v", err)
	}

	if player != "" {
		fmt.Printf("Statistics - %s\n", player)
	} else {
		fmt.Println("Statistics - all players")
	}
	fmt.Println()
	fmt.Printf("  Runs:        %d\n", stats.Runs)
	fmt.Printf("  Players:     %d\n", stats.Players)
	fmt.Printf("  High score:  %d\n", stats.HighScore)
	fmt.Printf("  Average:     %.1f\n", stats.AvgScore)
	fmt.Printf("  Time played: %s\n", tui.FormatDuration(stats.PlayTime))
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("  Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}
