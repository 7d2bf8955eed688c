// Package storage provides SQLite-based persistence for runs and best scores.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// DefaultPlayer is used when no player name is known.
const DefaultPlayer = "local"

// Store manages the SQLite database connection for score persistence.
// It is safe for concurrent use by multiple sessions.
type Store struct {
	db *sql.DB
}

// DefaultTickRate is assumed for runs recorded without a tick rate.
const DefaultTickRate = 60

// ScoreEntry is one finished run.
type ScoreEntry struct {
	ID        int64
	Player    string
	Score     int
	Frames    int
	TickRate  int // Simulation ticks per second the run was played at
	CreatedAt time.Time
}

// Duration returns the wall-clock length of the run.
func (e ScoreEntry) Duration() time.Duration {
	return FramesDuration(e.Frames, e.TickRate)
}

// FramesDuration converts a frame count at tickRate to a duration.
func FramesDuration(frames, tickRate int) time.Duration {
	return time.Duration(frames) * time.Second / time.Duration(normalizeTickRate(tickRate))
}

// BestEntry is a player's best score.
type BestEntry struct {
	Player    string
	Score     int
	UpdatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	path, err := ExpandHome(dbPath)
	if err != nil {
		return nil, err
	}

	// Create parent directories
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}
	// SQLite allows one writer; serialize SSH sessions instead of failing with SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// ExpandHome replaces a leading ~ with the user's home directory.
func ExpandHome(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS scores (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			player TEXT NOT NULL,
			score INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			tick_rate INTEGER NOT NULL DEFAULT 60,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_scores_player ON scores(player);
		CREATE INDEX IF NOT EXISTS idx_scores_top ON scores(score DESC);

		CREATE TABLE IF NOT EXISTS best_scores (
			player TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return err
	}
	return s.addColumn("scores", "tick_rate", "INTEGER NOT NULL DEFAULT 60")
}

// addColumn adds a column to databases created before it existed.
func (s *Store) addColumn(table, column, def string) error {
	rows, err := s.db.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		if name == column {
			return nil
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	rows.Close()

	_, err = s.db.Exec(fmt.Sprintf("ALTER TABLE %s ADD COLUMN %s %s", table, column, def))
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveScore records a finished run of frames ticks played at tickRate.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(player string, score, frames, tickRate int) (int64, error) {
	result, err := s.db.Exec(
		"INSERT INTO scores (player, score, frames, tick_rate) VALUES (?, ?, ?, ?)",
		normalizePlayer(player), score, frames, normalizeTickRate(tickRate),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N runs across all players.
// Results are ordered by score descending, oldest first on ties.
func (s *Store) TopScores(limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, frames, tick_rate, created_at
		 FROM scores
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// PlayerScores retrieves the most recent runs of one player.
func (s *Store) PlayerScores(player string, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, score, frames, tick_rate, created_at
		 FROM scores
		 WHERE player = ?
		 ORDER BY id DESC
		 LIMIT ?`,
		normalizePlayer(player), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query player scores: %w", err)
	}
	return scanScores(rows)
}

func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var createdAt any
		if err := rows.Scan(&e.ID, &e.Player, &e.Score, &e.Frames, &e.TickRate, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// parseTime handles both time.Time and the string form SQLite may return.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest recorded run across all players.
// Returns 0 if no scores exist.
func (s *Store) HighScore() (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow("SELECT MAX(score) FROM scores").Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// BestScore returns the player's best score, or 0 if none is stored.
func (s *Store) BestScore(player string) (int, error) {
	var score int
	err := s.db.QueryRow(
		"SELECT score FROM best_scores WHERE player = ?",
		normalizePlayer(player),
	).Scan(&score)

	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}
	return score, nil
}

// SetBestScore stores score as the player's best. A lower value never
// replaces a higher one.
func (s *Store) SetBestScore(player string, score int) error {
	_, err := s.db.Exec(
		`INSERT INTO best_scores (player, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(player) DO UPDATE SET score = excluded.score, updated_at = excluded.updated_at
		 WHERE excluded.score > best_scores.score`,
		normalizePlayer(player), score,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save best score: %w", err)
	}
	return nil
}

// Leaders returns the best score of each player, highest first.
func (s *Store) Leaders(limit int) ([]BestEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT player, score, updated_at
		 FROM best_scores
		 ORDER BY score DESC, player ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query leaders: %w", err)
	}
	defer rows.Close()

	var entries []BestEntry
	for rows.Next() {
		var e BestEntry
		var updatedAt any
		if err := rows.Scan(&e.Player, &e.Score, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.UpdatedAt = parseTime(updatedAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// ClearScores deletes the run history and best scores of one player, or of
// everyone when player is empty.
func (s *Store) ClearScores(player string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if player == "" {
		_, err = tx.Exec("DELETE FROM scores")
		if err == nil {
			_, err = tx.Exec("DELETE FROM best_scores")
		}
	} else {
		_, err = tx.Exec("DELETE FROM scores WHERE player = ?", player)
		if err == nil {
			_, err = tx.Exec("DELETE FROM best_scores WHERE player = ?", player)
		}
	}
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over recorded runs.
type Stats struct {
	Runs        int
	Players     int
	HighScore   int
	AvgScore    float64
	TotalFrames int64
	PlayTime    time.Duration // Frames converted at each run's tick rate
	LastPlayed  time.Time
}

// GetStats retrieves aggregated statistics for one player, or for everyone
// when player is empty.
func (s *Store) GetStats(player string) (*Stats, error) {
	stats := &Stats{}

	where, args := "", []any{}
	if player != "" {
		where, args = " WHERE player = ?", []any{player}
	}

	var (
		lastPlayed any
		playMillis int64
	)
	err := s.db.QueryRow(
		`SELECT COUNT(*), COUNT(DISTINCT player), COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0), COALESCE(SUM(frames), 0),
		        COALESCE(SUM(frames * 1000 / MAX(tick_rate, 1)), 0), MAX(created_at)
		 FROM scores`+where,
		args...,
	).Scan(&stats.Runs, &stats.Players, &stats.HighScore, &stats.AvgScore, &stats.TotalFrames, &playMillis, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.PlayTime = time.Duration(playMillis) * time.Millisecond
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

func normalizeTickRate(tickRate int) int {
	if tickRate <= 0 {
		return DefaultTickRate
	}
	return tickRate
}

func normalizePlayer(player string) string {
	if player == "" {
		return DefaultPlayer
	}
	return player
}

// PlayerBest binds a Store to one player so it can back a score.Keeper.
type PlayerBest struct {
	store  *Store
	player string
}

// BestScores returns the best-score view of player.
func BestScores(store *Store, player string) *PlayerBest {
	return &PlayerBest{store: store, player: normalizePlayer(player)}
}

// LoadBestScore returns the player's best score.
func (p *PlayerBest) LoadBestScore() (int, error) {
	return p.store.BestScore(p.player)
}

// SaveBestScore records score if it beats the stored best.
func (p *PlayerBest) SaveBestScore(score int) error {
	return p.store.SetBestScore(p.player, score)
}

// Player returns the bound player name.
func (p *PlayerBest) Player() string {
	return p.player
}
