// Package flappy implements a Flappy Bird-style game.
// The player controls a bird that must navigate through gaps in vertical pipes.
//
// Session holds the simulation and its Start/Playing/Over state machine.
// Game adapts a Session to the terminal front-end.
package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Game drives a Session from input frames and draws it into a core.Screen.
type Game struct {
	cfg     config.FlappyConfig
	keeper  BestScoreKeeper
	session *Session
	paused  bool
}

// New creates a game. keeper may be nil, in which case the best score only
// lives as long as the game.
func New(cfg config.FlappyConfig, keeper BestScoreKeeper) *Game {
	return &Game{
		cfg:    cfg,
		keeper: keeper,
	}
}

// ID returns the identifier used for score storage.
func (g *Game) ID() string {
	return "flappy"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Flappy Bird"
}

// Reset creates a fresh session on the title screen.
// A zero seed leaves gap placement time-seeded.
func (g *Game) Reset(rc core.RuntimeConfig) error {
	opts := []Option{WithKeeper(g.keeper)}
	if rc.Seed != 0 {
		opts = append(opts, WithSeed(rc.Seed))
	}

	s, err := NewSession(g.cfg, opts...)
	if err != nil {
		return err
	}
	g.session = s
	g.paused = false
	return nil
}

// Step applies the frame's input and advances the simulation by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	var events core.Events
	s := g.session

	switch s.Phase() {
	case PhaseStart:
		if in.Has(core.ActionJump) || in.Has(core.ActionConfirm) {
			s.Start()
		}

	case PhasePlaying:
		if in.Has(core.ActionPause) {
			g.paused = !g.paused
		}
		if g.paused {
			break
		}
		if in.Has(core.ActionJump) {
			events |= s.Flap()
		}
		events |= s.Step()

	case PhaseOver:
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			s.Restart()
		}
	}

	return core.StepResult{State: g.State(), Events: events}
}

// State returns the front-end facing summary.
func (g *Game) State() core.GameState {
	s := g.session
	return core.GameState{
		Score:    s.Score(),
		Best:     s.Best(),
		Phase:    s.Phase().String(),
		Playing:  s.Phase() == PhasePlaying,
		GameOver: s.Phase() == PhaseOver,
		Paused:   g.paused,
	}
}

// Session exposes the underlying session.
func (g *Game) Session() *Session {
	return g.session
}

// Render draws the current state to the screen.
func (g *Game) Render(dst *core.Screen) {
	RenderSnapshot(dst, g.session.Snapshot(), g.paused)
}
