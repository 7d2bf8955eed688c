// Package score connects a game session to best-score persistence.
package score

import (
	"sync"

	"github.com/charmbracelet/log"
)

// Store loads and saves a single best score. Backends live in
// internal/storage (sqlite) and internal/savedata (gdata).
type Store interface {
	LoadBestScore() (int, error)
	SaveBestScore(score int) error
}

// Keeper adapts a Store to the game session. It never fails: load errors
// yield 0 and save errors are logged and dropped.
type Keeper struct {
	store  Store
	logger *log.Logger
}

// NewKeeper wraps store. A nil logger uses the default charm logger.
func NewKeeper(store Store, logger *log.Logger) *Keeper {
	if logger == nil {
		logger = log.Default()
	}
	return &Keeper{store: store, logger: logger}
}

// Load returns the stored best score, or 0 if there is none or it can't be read.
func (k *Keeper) Load() int {
	if k == nil || k.store == nil {
		return 0
	}
	best, err := k.store.LoadBestScore()
	if err != nil {
		k.logger.Warn("could not load best score", "error", err)
		return 0
	}
	return max(0, best)
}

// Save stores score as the new best.
func (k *Keeper) Save(score int) {
	if k == nil || k.store == nil {
		return
	}
	if err := k.store.SaveBestScore(score); err != nil {
		k.logger.Warn("could not save best score", "score", score, "error", err)
	}
}

// Memory is an in-process Store. The zero value is ready to use.
type Memory struct {
	mu   sync.Mutex
	best int
}

// LoadBestScore returns the stored score.
func (m *Memory) LoadBestScore() (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.best, nil
}

// SaveBestScore replaces the stored score.
func (m *Memory) SaveBestScore(score int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.best = score
	return nil
}
