package flappy

import (
	"github.com/vovakirdan/tui-flappy/internal/config"
	"github.com/vovakirdan/tui-flappy/internal/core"
)

// Entity is the bird. X never changes during a run; Y and VelocityY are
// integrated every tick. Rotation only affects rendering.
type Entity struct {
	X, Y          float64
	Width, Height float64
	VelocityY     float64 // Positive is downward
	Rotation      float64 // Radians, positive tilts the nose down
}

// newEntity places the bird vertically centered at its fixed column.
func newEntity(cfg config.FlappyConfig) Entity {
	h := float64(cfg.Player.Height)
	return Entity{
		X:      float64(cfg.Player.X),
		Y:      float64(cfg.Field.Height)/2 - h/2,
		Width:  float64(cfg.Player.Width),
		Height: h,
	}
}

// Right returns the x-coordinate of the right edge.
func (e Entity) Right() float64 {
	return e.X + e.Width
}

// Bottom returns the y-coordinate of the bottom edge.
func (e Entity) Bottom() float64 {
	return e.Y + e.Height
}

// Box returns the hitbox.
func (e Entity) Box() core.Box {
	return core.Box{X: e.X, Y: e.Y, W: e.Width, H: e.Height}
}

// integrate applies one tick of constant gravity (semi-implicit Euler:
// velocity first, then position).
func (e *Entity) integrate(gravity float64) {
	e.VelocityY += gravity
	e.Y += e.VelocityY
}

// tilt relaxes the rotation toward nose-down while falling fast and toward
// nose-up otherwise.
func (e *Entity) tilt(t config.FlappyTilt) {
	if e.Rotation < t.Max && e.VelocityY > t.Threshold {
		e.Rotation += t.Step
	}
	if e.Rotation > t.Min && e.VelocityY <= t.Threshold {
		e.Rotation -= t.Step
	}
	e.Rotation = core.ClampF(e.Rotation, t.Min, t.Max)
}
