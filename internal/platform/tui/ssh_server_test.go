package tui

import (
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/storage"
)

func TestSSHSessionsAreIndependent(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	if err := store.SetBestScore("ann", 14); err != nil {
		t.Fatal(err)
	}

	srv := &SSHServer{
		config: DefaultSSHServerConfig(),
		store:  store,
		logger: log.New(io.Discard),
	}

	ann, err := srv.newSessionModel("ann", 80, 24)
	if err != nil {
		t.Fatalf("newSessionModel() failed: %v", err)
	}
	bob, err := srv.newSessionModel("bob", 100, 30)
	if err != nil {
		t.Fatalf("newSessionModel() failed: %v", err)
	}

	if ann.State().Best != 14 {
		t.Errorf("ann's best = %d, expected 14", ann.State().Best)
	}
	if bob.State().Best != 0 {
		t.Errorf("bob's best = %d, expected 0", bob.State().Best)
	}
	if ann.game == bob.game {
		t.Fatal("each connection should get its own game")
	}

	ann, _ = send(t, ann, spaceKey)
	ann, _ = send(t, ann, TickMsg{})
	if ann.game.Session().Frame() != 1 || bob.game.Session().Frame() != 0 {
		t.Error("stepping one session should not affect another")
	}
	if bob.screen.Width() != 100 {
		t.Errorf("bob's screen width = %d, expected the PTY width", bob.screen.Width())
	}
}

func TestSSHSessionWithoutStore(t *testing.T) {
	srv := &SSHServer{
		config: DefaultSSHServerConfig(),
		logger: log.New(io.Discard),
	}

	m, err := srv.newSessionModel("guest", 80, 24)
	if err != nil {
		t.Fatalf("newSessionModel() failed: %v", err)
	}
	if m.State().Best != 0 {
		t.Errorf("Best = %d, expected 0 without a store", m.State().Best)
	}
}

func TestSSHSessionDefaults(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "scores.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	cfg := DefaultSSHServerConfig()
	cfg.TickRate = 0
	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: log.New(io.Discard),
	}

	m, err := srv.newSessionModel("", 80, 24)
	if err != nil {
		t.Fatalf("newSessionModel() failed: %v", err)
	}
	if m.opts.Player != storage.DefaultPlayer {
		t.Errorf("Player = %q, expected %q for an anonymous user", m.opts.Player, storage.DefaultPlayer)
	}
	if m.config.TickRate != 60 {
		t.Errorf("TickRate = %d, expected 60 when unset", m.config.TickRate)
	}
}
