package flappy

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

func newTestGame(t *testing.T, keeper BestScoreKeeper) *Game {
	t.Helper()
	g := New(config.DefaultFlappyConfig(), keeper)
	if err := g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 25, TickRate: 60, Seed: 7}); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	return g
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

func TestGameIdentity(t *testing.T) {
	g := New(config.DefaultFlappyConfig(), nil)
	if g.ID() != "flappy" {
		t.Errorf("ID() = %q, expected flappy", g.ID())
	}
	if g.Title() != "Flappy Bird" {
		t.Errorf("Title() = %q, expected Flappy Bird", g.Title())
	}
}

func TestGameResetInvalidConfig(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	cfg.Player.Width = 0
	g := New(cfg, nil)

	if err := g.Reset(core.DefaultConfig()); err == nil {
		t.Error("Reset() with an invalid config should fail")
	}
}

func TestGameStartsOnTitleScreen(t *testing.T) {
	g := newTestGame(t, nil)

	res := g.Step(input())
	if res.State.Phase != "start" || res.State.Playing || res.State.Ticking() {
		t.Errorf("State = %+v, expected an idle title screen", res.State)
	}
	if g.Session().Frame() != 0 {
		t.Error("simulation should not advance on the title screen")
	}
}

func TestGameStartKeys(t *testing.T) {
	for _, a := range []core.Action{core.ActionJump, core.ActionConfirm} {
		t.Run(a.String(), func(t *testing.T) {
			g := newTestGame(t, nil)

			res := g.Step(input(a))
			if !res.State.Playing {
				t.Fatalf("%v on the title screen should start the game, got %+v", a, res.State)
			}
			if g.Session().Frame() != 0 {
				t.Error("the starting input should not also advance the simulation")
			}
		})
	}
}

func TestGameJumpFlaps(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(input(core.ActionJump))

	res := g.Step(input(core.ActionJump))
	if !res.Events.Has(core.EventFlap) {
		t.Errorf("Events = %v, expected flap", res.Events)
	}
	if v := g.Session().Snapshot().Entity.VelocityY; !almostEqual(v, -7.1) {
		t.Errorf("VelocityY = %f, expected -7.5 + 0.4", v)
	}
}

func TestGamePauseFreezes(t *testing.T) {
	g := newTestGame(t, nil)
	g.Step(input(core.ActionConfirm))
	g.Step(input())

	res := g.Step(input(core.ActionPause))
	if !res.State.Paused || res.State.Ticking() {
		t.Fatalf("State = %+v, expected paused", res.State)
	}
	frozen := g.Session().Snapshot()

	for i := 0; i < 10; i++ {
		g.Step(input(core.ActionJump))
	}
	after := g.Session().Snapshot()
	if after.Frame != frozen.Frame || after.Entity != frozen.Entity {
		t.Error("paused game should not advance or accept flaps")
	}

	res = g.Step(input(core.ActionPause))
	if res.State.Paused {
		t.Error("second pause should resume")
	}
	if g.Session().Frame() != frozen.Frame+1 {
		t.Errorf("Frame() = %d, expected %d after resuming", g.Session().Frame(), frozen.Frame+1)
	}
}

func TestGameOverAndRestart(t *testing.T) {
	keeper := &fakeKeeper{}
	g := newTestGame(t, keeper)
	g.Step(input(core.ActionJump))

	var res core.StepResult
	for i := 0; i < 300; i++ {
		res = g.Step(input())
		if res.State.GameOver {
			break
		}
	}
	if !res.State.GameOver || !res.Events.Has(core.EventCrash) {
		t.Fatalf("idle bird should crash, got %+v %v", res.State, res.Events)
	}

	// Jump does not restart
	res = g.Step(input(core.ActionJump))
	if !res.State.GameOver {
		t.Error("jump should not restart after game over")
	}

	res = g.Step(input(core.ActionRestart))
	if !res.State.Playing || res.State.Score != 0 {
		t.Errorf("State = %+v, expected a fresh run", res.State)
	}
}

func TestGameBestFromKeeper(t *testing.T) {
	g := newTestGame(t, &fakeKeeper{best: 42})
	if g.State().Best != 42 {
		t.Errorf("Best = %d, expected 42", g.State().Best)
	}
}

func TestGameRender(t *testing.T) {
	g := newTestGame(t, &fakeKeeper{best: 3})
	screen := core.NewScreen(80, 25)

	g.Render(screen)
	out := screen.String()
	for _, want := range []string{"FLAPPY BIRD", "Space / Enter to start", "Best: 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("title screen should contain %q", want)
		}
	}

	g.Step(input(core.ActionJump))
	g.Render(screen)
	if !strings.Contains(screen.Row(0), "Score: 0") {
		t.Errorf("HUD row = %q, expected the score", screen.Row(0))
	}
	if strings.Contains(screen.String(), "FLAPPY BIRD") {
		t.Error("title should be gone once playing")
	}

	g.Step(input(core.ActionPause))
	g.Render(screen)
	if !strings.Contains(screen.String(), "PAUSED") {
		t.Error("paused game should show the pause message")
	}
}
