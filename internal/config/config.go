// Package config provides YAML-based game configuration loading and
// validation for the flappy game.
package config

// FlappyConfig contains all tunable parameters of the game.
// Distances are in field units (pixels of the play field), speeds in units per tick.
type FlappyConfig struct {
	Field     FlappyField     `yaml:"field"`
	Physics   FlappyPhysics   `yaml:"physics"`
	Obstacles FlappyObstacles `yaml:"obstacles"`
	Player    FlappyPlayer    `yaml:"player"`
	Tilt      FlappyTilt      `yaml:"tilt"`
}

// FlappyField defines the size of the play field.
type FlappyField struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FlappyPhysics defines physics parameters.
type FlappyPhysics struct {
	Gravity      float64 `yaml:"gravity"`       // Added to vertical velocity every tick
	FlapStrength float64 `yaml:"flap_strength"` // Upward velocity set by a flap
	ScrollSpeed  float64 `yaml:"scroll_speed"`  // Leftward pipe movement per tick
}

// FlappyObstacles defines pipe parameters.
type FlappyObstacles struct {
	Width         int `yaml:"width"`
	GapSize       int `yaml:"gap_size"`
	MinHeight     int `yaml:"min_height"`     // Shortest allowed pipe arm
	SpawnInterval int `yaml:"spawn_interval"` // Ticks between spawns
	InitialOffset int `yaml:"initial_offset"` // Distance past the right edge for the first pipe
}

// FlappyPlayer defines the bird's hitbox and fixed horizontal position.
type FlappyPlayer struct {
	X      int `yaml:"x"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FlappyTilt defines the cosmetic rotation of the bird, in radians.
type FlappyTilt struct {
	Min       float64 `yaml:"min"`       // Upper limit of the nose-up tilt (negative)
	Max       float64 `yaml:"max"`       // Limit of the nose-down tilt
	Step      float64 `yaml:"step"`      // Change per tick
	Threshold float64 `yaml:"threshold"` // Fall speed above which the bird tilts down
	Flap      float64 `yaml:"flap"`      // Angle set by a flap
}
