package config

import (
	"errors"
	"fmt"
)

// Configuration errors. Validate wraps these so callers can use errors.Is.
var (
	ErrNonPositive        = errors.New("value must be positive")
	ErrGapDoesNotFit      = errors.New("pipe gap does not fit in the field")
	ErrPlayerOutsideField = errors.New("player does not fit in the field")
	ErrTiltRange          = errors.New("tilt range is empty")
)

// Validate checks that the geometry admits a valid game. Any error here is
// fatal at startup; the simulation assumes a validated configuration.
func (c FlappyConfig) Validate() error {
	var errs []error

	positive := []struct {
		name  string
		value float64
	}{
		{"field.width", float64(c.Field.Width)},
		{"field.height", float64(c.Field.Height)},
		{"physics.scroll_speed", c.Physics.ScrollSpeed},
		{"obstacles.width", float64(c.Obstacles.Width)},
		{"obstacles.gap_size", float64(c.Obstacles.GapSize)},
		{"obstacles.spawn_interval", float64(c.Obstacles.SpawnInterval)},
		{"player.width", float64(c.Player.Width)},
		{"player.height", float64(c.Player.Height)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			errs = append(errs, fmt.Errorf("%s = %v: %w", p.name, p.value, ErrNonPositive))
		}
	}

	if c.Obstacles.MinHeight < 0 {
		errs = append(errs, fmt.Errorf("obstacles.min_height = %d: must not be negative", c.Obstacles.MinHeight))
	}
	if slack := c.Field.Height - c.Obstacles.GapSize - 2*c.Obstacles.MinHeight; slack < 0 {
		errs = append(errs, fmt.Errorf("field.height %d - gap_size %d - 2*min_height %d = %d: %w",
			c.Field.Height, c.Obstacles.GapSize, c.Obstacles.MinHeight, slack, ErrGapDoesNotFit))
	}

	if c.Player.X < 0 || c.Player.X+c.Player.Width > c.Field.Width || c.Player.Height >= c.Field.Height {
		errs = append(errs, fmt.Errorf("player %dx%d at x=%d in %dx%d field: %w",
			c.Player.Width, c.Player.Height, c.Player.X, c.Field.Width, c.Field.Height, ErrPlayerOutsideField))
	}

	if c.Tilt.Min > c.Tilt.Max {
		errs = append(errs, fmt.Errorf("tilt.min %v > tilt.max %v: %w", c.Tilt.Min, c.Tilt.Max, ErrTiltRange))
	}

	return errors.Join(errs...)
}
