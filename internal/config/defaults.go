package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the built-in configuration. It matches the
// embedded defaults/flappy.yaml.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Field: FlappyField{
			Width:  400,
			Height: 480,
		},
		Physics: FlappyPhysics{
			Gravity:      0.4,
			FlapStrength: 7.5,
			ScrollSpeed:  2.5,
		},
		Obstacles: FlappyObstacles{
			Width:         60,
			GapSize:       150,
			MinHeight:     50,
			SpawnInterval: 90,
			InitialOffset: 50,
		},
		Player: FlappyPlayer{
			X:      80,
			Width:  40,
			Height: 30,
		},
		Tilt: FlappyTilt{
			Min:       -0.5,
			Max:       0.9,
			Step:      0.03,
			Threshold: 0.5,
			Flap:      -0.5,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultFlappyYAML
}
