package storage

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenClose(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "nested", "dir", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	// Check that the file and its parents were created
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("Database file was not created")
	}
}

func TestStoreReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if err := store.SetBestScore("ann", 8); err != nil {
		t.Fatalf("SetBestScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(dbPath)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	defer store.Close()

	best, err := store.BestScore("ann")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 8 {
		t.Errorf("BestScore() = %d, expected 8", best)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandHome("~/.flappy/scores.db")
	if err != nil {
		t.Fatalf("ExpandHome() failed: %v", err)
	}
	if want := filepath.Join(home, ".flappy", "scores.db"); got != want {
		t.Errorf("ExpandHome() = %q, expected %q", got, want)
	}

	if got, _ := ExpandHome("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandHome() = %q, expected the path unchanged", got)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openTestStore(t)

	for _, run := range []struct {
		player string
		score  int
	}{
		{"ann", 100},
		{"ann", 50},
		{"bob", 200},
		{"", 75},
	} {
		if _, err := store.SaveScore(run.player, run.score, run.score*90, 60); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}

	scores, err := store.TopScores(10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 4 {
		t.Fatalf("Expected 4 scores, got %d", len(scores))
	}

	// Should be sorted descending
	want := []int{200, 100, 75, 50}
	for i, w := range want {
		if scores[i].Score != w {
			t.Errorf("scores[%d].Score = %d, expected %d", i, scores[i].Score, w)
		}
	}
	if scores[0].Player != "bob" || scores[0].Frames != 18000 {
		t.Errorf("top entry = %+v, expected bob with 18000 frames", scores[0])
	}
	if scores[2].Player != DefaultPlayer {
		t.Errorf("empty player should be stored as %q, got %q", DefaultPlayer, scores[2].Player)
	}
	if scores[0].CreatedAt.IsZero() {
		t.Error("CreatedAt should be set")
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openTestStore(t)

	for i := 0; i < 20; i++ {
		store.SaveScore("ann", i*10, 0, 60) //nolint:errcheck
	}

	scores, err := store.TopScores(5)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 5 {
		t.Errorf("Expected 5 scores, got %d", len(scores))
	}
	if scores[0].Score != 190 {
		t.Errorf("Expected highest score to be 190, got %d", scores[0].Score)
	}

	// Zero limit falls back to 10
	scores, _ = store.TopScores(0)
	if len(scores) != 10 {
		t.Errorf("TopScores(0) returned %d entries, expected 10", len(scores))
	}
}

func TestStorePlayerScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ann", 1, 0, 60) //nolint:errcheck
	store.SaveScore("bob", 9, 0, 60) //nolint:errcheck
	store.SaveScore("ann", 3, 0, 60) //nolint:errcheck

	scores, err := store.PlayerScores("ann", 10)
	if err != nil {
		t.Fatalf("PlayerScores() failed: %v", err)
	}
	if len(scores) != 2 {
		t.Fatalf("Expected 2 scores, got %d", len(scores))
	}
	// Most recent first
	if scores[0].Score != 3 || scores[1].Score != 1 {
		t.Errorf("PlayerScores() = %+v, expected [3 1]", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openTestStore(t)

	high, err := store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected 0 for empty store, got %d", high)
	}

	store.SaveScore("ann", 100, 0, 60) //nolint:errcheck
	store.SaveScore("bob", 300, 0, 60) //nolint:errcheck
	store.SaveScore("ann", 200, 0, 60) //nolint:errcheck

	high, err = store.HighScore()
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 300 {
		t.Errorf("Expected high score 300, got %d", high)
	}
}

func TestStoreBestScoreMonotonic(t *testing.T) {
	store := openTestStore(t)

	best, err := store.BestScore("ann")
	if err != nil {
		t.Fatalf("BestScore() failed: %v", err)
	}
	if best != 0 {
		t.Errorf("BestScore() = %d, expected 0 before any save", best)
	}

	tests := []struct {
		save int
		want int
	}{
		{5, 5},
		{3, 5},
		{5, 5},
		{12, 12},
	}
	for _, tc := range tests {
		if err := store.SetBestScore("ann", tc.save); err != nil {
			t.Fatalf("SetBestScore(%d) failed: %v", tc.save, err)
		}
		got, _ := store.BestScore("ann")
		if got != tc.want {
			t.Errorf("after SetBestScore(%d) BestScore() = %d, expected %d", tc.save, got, tc.want)
		}
	}

	if other, _ := store.BestScore("bob"); other != 0 {
		t.Errorf("bob's best = %d, expected players to be independent", other)
	}
}

func TestStoreLeaders(t *testing.T) {
	store := openTestStore(t)

	store.SetBestScore("ann", 7)  //nolint:errcheck
	store.SetBestScore("bob", 12) //nolint:errcheck
	store.SetBestScore("cy", 7)   //nolint:errcheck

	leaders, err := store.Leaders(10)
	if err != nil {
		t.Fatalf("Leaders() failed: %v", err)
	}

	want := []string{"bob", "ann", "cy"}
	if len(leaders) != len(want) {
		t.Fatalf("Leaders() returned %d entries, expected %d", len(leaders), len(want))
	}
	for i, w := range want {
		if leaders[i].Player != w {
			t.Errorf("leaders[%d] = %q, expected %q", i, leaders[i].Player, w)
		}
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ann", 100, 0, 60) //nolint:errcheck
	store.SetBestScore("ann", 100)     //nolint:errcheck
	store.SaveScore("bob", 500, 0, 60) //nolint:errcheck
	store.SetBestScore("bob", 500)     //nolint:errcheck

	if err := store.ClearScores("ann"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.PlayerScores("ann", 10); len(scores) != 0 {
		t.Errorf("Expected 0 runs for ann after clear, got %d", len(scores))
	}
	if best, _ := store.BestScore("ann"); best != 0 {
		t.Errorf("ann's best = %d after clear, expected 0", best)
	}
	if best, _ := store.BestScore("bob"); best != 500 {
		t.Error("Clearing one player should not affect another")
	}

	if err := store.ClearScores(""); err != nil {
		t.Fatalf("ClearScores(\"\") failed: %v", err)
	}
	if scores, _ := store.TopScores(10); len(scores) != 0 {
		t.Errorf("Expected empty history, got %d runs", len(scores))
	}
}

func TestStoreGetStats(t *testing.T) {
	store := openTestStore(t)

	stats, err := store.GetStats("")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 0 || !stats.LastPlayed.IsZero() {
		t.Errorf("empty stats = %+v", stats)
	}

	store.SaveScore("ann", 10, 900, 60)  //nolint:errcheck
	store.SaveScore("ann", 20, 1800, 60) //nolint:errcheck
	store.SaveScore("bob", 30, 2700, 60) //nolint:errcheck

	stats, err = store.GetStats("")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.Runs != 3 || stats.Players != 2 || stats.HighScore != 30 || stats.TotalFrames != 5400 {
		t.Errorf("GetStats() = %+v, expected 3 runs, 2 players, high 30, 5400 frames", stats)
	}
	if stats.AvgScore != 20 {
		t.Errorf("AvgScore = %f, expected 20", stats.AvgScore)
	}
	if stats.PlayTime != 90*time.Second {
		t.Errorf("PlayTime = %v, expected 1m30s", stats.PlayTime)
	}

	stats, _ = store.GetStats("ann")
	if stats.Runs != 2 || stats.HighScore != 20 {
		t.Errorf("ann's stats = %+v, expected 2 runs with high 20", stats)
	}
}

func TestPlayerBest(t *testing.T) {
	store := openTestStore(t)
	ann := BestScores(store, "ann")
	local := BestScores(store, "")

	if local.Player() != DefaultPlayer {
		t.Errorf("Player() = %q, expected %q", local.Player(), DefaultPlayer)
	}

	if err := ann.SaveBestScore(9); err != nil {
		t.Fatalf("SaveBestScore() failed: %v", err)
	}
	if got, _ := ann.LoadBestScore(); got != 9 {
		t.Errorf("LoadBestScore() = %d, expected 9", got)
	}
	if got, _ := local.LoadBestScore(); got != 0 {
		t.Errorf("local LoadBestScore() = %d, expected 0", got)
	}
}

func TestStoreConcurrentSessions(t *testing.T) {
	store := openTestStore(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.SaveScore("ann", n, 0, 60) //nolint:errcheck
			store.SetBestScore("ann", n)     //nolint:errcheck
		}(i)
	}
	wg.Wait()

	if best, _ := store.BestScore("ann"); best != 7 {
		t.Errorf("BestScore() = %d, expected 7", best)
	}
}

func TestScoreTickRate(t *testing.T) {
	store := openTestStore(t)

	store.SaveScore("ann", 5, 900, 30) //nolint:errcheck
	store.SaveScore("ann", 7, 900, 60) //nolint:errcheck
	store.SaveScore("ann", 9, 900, 0)  //nolint:errcheck

	runs, err := store.PlayerScores("ann", 10)
	if err != nil || len(runs) != 3 {
		t.Fatalf("PlayerScores() = %d runs, %v, expected 3", len(runs), err)
	}

	// Newest first
	tests := []struct {
		run      ScoreEntry
		tickRate int
		duration time.Duration
	}{
		{runs[0], DefaultTickRate, 15 * time.Second},
		{runs[1], 60, 15 * time.Second},
		{runs[2], 30, 30 * time.Second},
	}
	for _, tc := range tests {
		if tc.run.TickRate != tc.tickRate {
			t.Errorf("score %d: TickRate = %d, expected %d", tc.run.Score, tc.run.TickRate, tc.tickRate)
		}
		if got := tc.run.Duration(); got != tc.duration {
			t.Errorf("score %d: Duration() = %v, expected %v", tc.run.Score, got, tc.duration)
		}
	}

	stats, err := store.GetStats("ann")
	if err != nil {
		t.Fatalf("GetStats() failed: %v", err)
	}
	if stats.PlayTime != time.Minute {
		t.Errorf("PlayTime = %v, expected 1m0s", stats.PlayTime)
	}
}

func TestOpenMigratesOldSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "old.db")

	db, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatal(err)
	}
	_, err = db.Exec(`
		CREATE TABLE scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		INSERT INTO scores (player, score, frames) VALUES ('ann', 4, 600);
	`)
	db.Close()
	if err != nil {
		t.Fatal(err)
	}

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	runs, err := store.PlayerScores("ann", 10)
	if err != nil || len(runs) != 1 {
		t.Fatalf("PlayerScores() = %d runs, %v, expected 1", len(runs), err)
	}
	if runs[0].TickRate != DefaultTickRate || runs[0].Duration() != 10*time.Second {
		t.Errorf("old run = %+v, expected the default tick rate", runs[0])
	}

	// Reopening must not try to add the column again
	store.Close()
	store, err = Open(path)
	if err != nil {
		t.Fatalf("second Open() failed: %v", err)
	}
	store.Close()
}
