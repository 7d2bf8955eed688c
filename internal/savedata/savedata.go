// Package savedata keeps the best score in the platform's application data
// directory via gdata. The windowed front-end uses it so a desktop build
// needs no database file.
package savedata

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// AppName is the gdata application name; data lands under the OS app-data dir.
const AppName = "tui_flappy"

const bestObject = "best"

// Record is the stored payload.
type Record struct {
	Score     int       `yaml:"score"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

// Store is a gdata-backed best score for one player.
type Store struct {
	manager *gdata.Manager
	prop    string
	now     func() time.Time
}

// Open opens the gdata manager for appName. An empty appName uses AppName.
func Open(appName, player string) (*Store, error) {
	if appName == "" {
		appName = AppName
	}
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, fmt.Errorf("savedata: cannot open app data: %w", err)
	}
	return New(m, player), nil
}

// New binds an open manager to player.
func New(m *gdata.Manager, player string) *Store {
	return &Store{manager: m, prop: PropKey(player), now: time.Now}
}

// PropKey turns a player name into a file-safe property key.
func PropKey(player string) string {
	key := strings.Map(func(r rune) rune {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_') {
			return unicode.ToLower(r)
		}
		return '_'
	}, player)
	if strings.Trim(key, "_") == "" {
		return "local"
	}
	return key
}

// LoadBestScore returns the stored best, or 0 if nothing was saved yet.
func (s *Store) LoadBestScore() (int, error) {
	rec, err := s.load()
	if err != nil {
		return 0, err
	}
	return rec.Score, nil
}

// SaveBestScore stores score unless a higher one is already saved.
func (s *Store) SaveBestScore(score int) error {
	rec, err := s.load()
	if err != nil {
		return err
	}
	if score <= rec.Score && !rec.UpdatedAt.IsZero() {
		return nil
	}

	data, err := yaml.Marshal(Record{Score: score, UpdatedAt: s.now().UTC()})
	if err != nil {
		return fmt.Errorf("savedata: cannot encode record: %w", err)
	}
	if err := s.manager.SaveObjectProp(bestObject, s.prop, data); err != nil {
		return fmt.Errorf("savedata: cannot save best score: %w", err)
	}
	return nil
}

func (s *Store) load() (Record, error) {
	var rec Record
	if !s.manager.ObjectPropExists(bestObject, s.prop) {
		return rec, nil
	}
	data, err := s.manager.LoadObjectProp(bestObject, s.prop)
	if err != nil {
		return rec, fmt.Errorf("savedata: cannot load best score: %w", err)
	}
	if err := yaml.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("savedata: corrupt record %q: %w", s.prop, err)
	}
	return rec, nil
}
