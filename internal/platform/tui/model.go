package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-flappy/internal/audio"
	"github.com/vovakirdan/tui-flappy/internal/core"
	"github.com/vovakirdan/tui-flappy/internal/games/flappy"
	"github.com/vovakirdan/tui-flappy/internal/storage"
)

// Options wires the optional services of a Model. Every field may be zero.
type Options struct {
	Store         *storage.Store // Run history
	Player        string         // Name recorded with each run
	Sounds        *audio.Board
	Logger        *log.Logger
	ScreenshotDir string // Defaults to ~/.flappy/screenshots

	DisableScreenshots bool
}

// Model is the Bubble Tea model for one game session.
//
// Ticks are only scheduled while the game is playing and not paused. Input
// arriving while no tick is pending is applied immediately, and the tick
// chain is re-armed when that input starts or resumes play.
type Model struct {
	game       *flappy.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       *KeyMapper
	opts       Options
	inputFrame core.InputFrame
	gameState  core.GameState
	ticking    bool // A TickMsg is in flight
	quitting   bool
}

// NewModel creates a model for game, which must already be Reset.
func NewModel(game *flappy.Game, cfg core.RuntimeConfig, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		keys:       NewKeyMapper(),
		opts:       opts,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init does nothing: the title screen waits for input.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleAction(m.keys.MapMouse(msg))

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if m.opts.DisableScreenshots {
			return m, nil
		}
		if path, err := m.saveScreenshot(); err != nil {
			m.opts.Logger.Warn("screenshot failed", "error", err)
		} else {
			m.opts.Logger.Info("screenshot saved", "path", path)
		}
		return m, nil
	}

	action, isQuit := m.keys.MapKey(msg)
	if isQuit {
		m.quitting = true
		return m, tea.Quit
	}
	return m.handleAction(action)
}

// handleAction queues an action for the next tick, or applies it right away
// when the simulation is idle.
func (m Model) handleAction(action core.Action) (tea.Model, tea.Cmd) {
	if action == core.ActionNone {
		return m, nil
	}
	m.inputFrame.Set(action)
	if m.ticking {
		return m, nil
	}

	m.step()
	if m.gameState.Ticking() {
		m.ticking = true
		return m, tickCmd(m.config.TickRate)
	}
	return m, nil
}

// handleTick advances the simulation and schedules the next tick while playing.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if !m.ticking {
		return m, nil
	}

	m.step()
	if m.gameState.Ticking() {
		return m, tickCmd(m.config.TickRate)
	}
	m.ticking = false
	return m, nil
}

// step runs one game step with the pending input and reacts to its events.
func (m *Model) step() {
	result := m.game.Step(m.inputFrame)
	m.inputFrame.Clear()
	m.gameState = result.State
	if result.Events != 0 {
		m.opts.Logger.Debug("step", "frame", m.game.Session().Frame(), "events", result.Events)
	}

	m.opts.Sounds.Play(result.Events)

	if result.Events.Has(core.EventCrash) {
		m.recordRun()
	}
}

// recordRun saves the finished run to the history.
func (m *Model) recordRun() {
	if m.opts.Store == nil || m.gameState.Score == 0 {
		return
	}
	frames := m.game.Session().Frame()
	if _, err := m.opts.Store.SaveScore(m.opts.Player, m.gameState.Score, frames, m.config.TickRate); err != nil {
		m.opts.Logger.Warn("could not record run", "player", m.opts.Player, "error", err)
	}
}

// saveScreenshot writes the current frame as plain text.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	dir := m.opts.ScreenshotDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dir = filepath.Join(home, ".flappy", "screenshots")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	return path, os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// State returns the last observed game state.
func (m Model) State() core.GameState {
	return m.gameState
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run resets game and plays it in the local terminal until the user quits.
func Run(game *flappy.Game, cfg core.RuntimeConfig, opts Options) error {
	if err := game.Reset(cfg); err != nil {
		return err
	}

	p := tea.NewProgram(
		NewModel(game, cfg, opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
