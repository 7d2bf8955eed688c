package core

// RuntimeConfig contains configuration passed to the game at initialization.
// Front-ends use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// GameState is the front-end facing summary of a game.
type GameState struct {
	Score    int    // Current score
	Best     int    // Best score known to the session
	Phase    string // "start", "playing" or "over"
	Playing  bool   // Whether the simulation is advancing
	GameOver bool   // Whether the game has ended
	Paused   bool   // Whether the game is paused
}

// Ticking reports whether a front-end should keep scheduling simulation steps.
func (s GameState) Ticking() bool {
	return s.Playing && !s.Paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events Events
}

// Events is a set of things that happened during a step. Front-ends use
// them for side effects such as sound and score recording.
type Events uint8

const (
	EventFlap Events = 1 << iota
	EventScore
	EventCrash
	EventNewBest
)

// Has reports whether all events in e are set.
func (ev Events) Has(e Events) bool {
	return ev&e == e
}

// String returns a compact name list, mostly for logs.
func (ev Events) String() string {
	if ev == 0 {
		return "none"
	}
	names := []struct {
		e    Events
		name string
	}{
		{EventFlap, "flap"},
		{EventScore, "score"},
		{EventCrash, "crash"},
		{EventNewBest, "new-best"},
	}
	out := ""
	for _, n := range names {
		if ev.Has(n.e) {
			if out != "" {
				out += "|"
			}
			out += n.name
		}
	}
	return out
}
