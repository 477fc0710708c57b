package config

import (
	_ "embed"
)

//go:embed defaults/flappy.yaml
var defaultFlappyYAML []byte

// DefaultFlappyConfig returns the stock constants: a 60x20 board, bird in
// column 5, gravity 0.8 and flap impulse -2 per tick, gap 8, spacing 30.
func DefaultFlappyConfig() FlappyConfig {
	return FlappyConfig{
		Board: FlappyBoard{
			Width:  60,
			Height: 20,
		},
		Bird: FlappyBird{
			X: 5,
		},
		Physics: FlappyPhysics{
			Gravity:     0.8,
			FlapImpulse: -2,
		},
		Pipes: FlappyPipes{
			GapHeight: 8,
			Distance:  30,
		},
		Glyphs: FlappyGlyphs{
			Bird: ">",
			Pipe: "#",
		},
	}
}
