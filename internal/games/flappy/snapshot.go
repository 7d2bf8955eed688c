package flappy

// Snapshot is a read-only copy of a session for presentation. It shares no
// memory with the session, so a renderer can hold it across steps.
type Snapshot struct {
	Entity      Entity
	Obstacles   []Obstacle // Oldest (leftmost) first
	Score       int
	Best        int
	Phase       Phase
	Frame       int // Also the animation phase for cosmetic effects
	FieldWidth  float64
	FieldHeight float64
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	obstacles := make([]Obstacle, len(s.obstacles))
	copy(obstacles, s.obstacles)

	return Snapshot{
		Entity:      s.entity,
		Obstacles:   obstacles,
		Score:       s.score,
		Best:        s.best,
		Phase:       s.phase,
		Frame:       s.frame,
		FieldWidth:  float64(s.cfg.Field.Width),
		FieldHeight: float64(s.cfg.Field.Height),
	}
}
