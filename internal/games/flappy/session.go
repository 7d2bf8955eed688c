package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Phase is the session's game-state tag.
type Phase int

const (
	PhaseStart   Phase = iota // Title screen, waiting for the first input
	PhasePlaying              // Simulation advances every tick
	PhaseOver                 // Run ended, waiting for a restart
)

// String returns the lowercase phase name.
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "start"
	case PhasePlaying:
		return "playing"
	case PhaseOver:
		return "over"
	default:
		return "unknown"
	}
}

// BestScoreKeeper persists the best score across sessions. Implementations
// must not fail: persistence problems are theirs to absorb.
type BestScoreKeeper interface {
	Load() int
	Save(score int)
}

// Session is one player's game: the bird, the pipes, the score and the
// phase. It does not schedule itself; the caller invokes Step once per tick
// while the phase is PhasePlaying.
type Session struct {
	cfg    config.FlappyConfig
	gen    *Generator
	keeper BestScoreKeeper

	entity    Entity
	obstacles []Obstacle // Oldest (leftmost) first

	score int
	frame int
	best  int
	phase Phase
}

// Option configures a Session.
type Option func(*Session)

// WithRand sets the random source for gap placement.
func WithRand(rng Rand) Option {
	return func(s *Session) {
		s.gen = NewGenerator(rng, s.cfg.Obstacles.Width)
	}
}

// WithSeed seeds a math/rand source for gap placement.
func WithSeed(seed int64) Option {
	return WithRand(rand.New(rand.NewSource(seed))) //nolint:gosec // gameplay randomness
}

// WithKeeper sets where the best score is loaded from and saved to.
func WithKeeper(k BestScoreKeeper) Option {
	return func(s *Session) {
		s.keeper = k
	}
}

// NewSession validates cfg and returns a session in PhaseStart.
// Configuration errors are returned here and never surface during play.
func NewSession(cfg config.FlappyConfig, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:       cfg,
		obstacles: make([]Obstacle, 0, 8),
		phase:     PhaseStart,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.gen == nil {
		WithSeed(time.Now().UnixNano())(s)
	}
	if s.keeper != nil {
		s.best = max(0, s.keeper.Load())
	}

	s.entity = newEntity(cfg)
	return s, nil
}

// Start begins the first run. No-op unless the session is in PhaseStart.
func (s *Session) Start() bool {
	if s.phase != PhaseStart {
		return false
	}
	s.reset()
	return true
}

// Restart begins a new run after game over. No-op unless in PhaseOver.
func (s *Session) Restart() bool {
	if s.phase != PhaseOver {
		return false
	}
	s.reset()
	return true
}

// reset reinitializes the run and enters PhasePlaying with one pipe queued
// beyond the right edge.
func (s *Session) reset() {
	s.entity = newEntity(s.cfg)
	s.obstacles = s.obstacles[:0]
	s.score = 0
	s.frame = 0
	s.phase = PhasePlaying

	spawnX := float64(s.cfg.Field.Width + s.cfg.Obstacles.InitialOffset)
	s.spawn(spawnX)
}

// Flap gives the bird an upward impulse. No-op unless playing.
func (s *Session) Flap() core.Events {
	if s.phase != PhasePlaying {
		return 0
	}
	s.entity.VelocityY = -s.cfg.Physics.FlapStrength
	s.entity.Rotation = s.cfg.Tilt.Flap
	return core.EventFlap
}

// Step advances the run by one tick and reports what happened.
// No-op unless playing. A crash ends the step immediately.
func (s *Session) Step() core.Events {
	if s.phase != PhasePlaying {
		return 0
	}

	s.frame++

	s.entity.integrate(s.cfg.Physics.Gravity)
	s.entity.tilt(s.cfg.Tilt)

	// Ceiling and ground come first and skip the rest of the frame.
	if s.entity.Y < 0 || s.entity.Bottom() > float64(s.cfg.Field.Height) {
		return s.end()
	}

	for i := range s.obstacles {
		s.obstacles[i].X -= s.cfg.Physics.ScrollSpeed
	}

	// Pipes leave in the order they arrived, so only the oldest can be off-screen.
	if len(s.obstacles) > 0 && s.obstacles[0].Right() < 0 {
		s.retireOldest()
	}

	if s.frame%s.cfg.Obstacles.SpawnInterval == 0 {
		s.spawn(float64(s.cfg.Field.Width))
	}

	var events core.Events
	for i := range s.obstacles {
		o := &s.obstacles[i]
		if Collides(s.entity, *o) {
			return events | s.end()
		}
		if !o.Passed && s.entity.X > o.Right() {
			o.Passed = true
			s.score++
			events |= core.EventScore
		}
	}
	return events
}

// end moves to PhaseOver and records a new best score.
func (s *Session) end() core.Events {
	s.phase = PhaseOver
	events := core.EventCrash

	if s.score > s.best {
		s.best = s.score
		if s.keeper != nil {
			s.keeper.Save(s.score)
		}
		events |= core.EventNewBest
	}
	return events
}

func (s *Session) spawn(x float64) {
	o := s.gen.Generate(x, s.cfg.Field.Height, s.cfg.Obstacles.GapSize, s.cfg.Obstacles.MinHeight)
	s.obstacles = append(s.obstacles, o)
}

func (s *Session) retireOldest() {
	n := copy(s.obstacles, s.obstacles[1:])
	s.obstacles = s.obstacles[:n]
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Score returns the score of the current or last run.
func (s *Session) Score() int {
	return s.score
}

// Best returns the best score seen by this session, including the loaded one.
func (s *Session) Best() int {
	return s.best
}

// Frame returns the number of ticks in the current run.
func (s *Session) Frame() int {
	return s.frame
}

// Config returns the configuration the session was created with.
func (s *Session) Config() config.FlappyConfig {
	return s.cfg
}
