// Package config provides YAML-based game constants for flappyshell widgets.
package config

import (
	"errors"
	"fmt"
)

// FlappyConfig contains every constant the flappy widget uses.
type FlappyConfig struct {
	Board   FlappyBoard   `yaml:"board"`
	Bird    FlappyBird    `yaml:"bird"`
	Physics FlappyPhysics `yaml:"physics"`
	Pipes   FlappyPipes   `yaml:"pipes"`
	Glyphs  FlappyGlyphs  `yaml:"glyphs"`
}

// FlappyBoard defines the playfield size in characters.
type FlappyBoard struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// FlappyBird defines the bird's fixed column.
// The starting row is always Height/2.
type FlappyBird struct {
	X int `yaml:"x"`
}

// FlappyPhysics defines per-tick physics parameters.
type FlappyPhysics struct {
	Gravity     float64 `yaml:"gravity"`
	FlapImpulse float64 `yaml:"flap_impulse"` // negative = upward
}

// FlappyPipes defines obstacle parameters.
type FlappyPipes struct {
	GapHeight int `yaml:"gap_height"`
	Distance  int `yaml:"distance"` // minimum horizontal spacing between pipes
}

// FlappyGlyphs defines the characters used by the text renderer.
type FlappyGlyphs struct {
	Bird string `yaml:"bird"`
	Pipe string `yaml:"pipe"`
}

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks that the constants describe a playable board.
func (c FlappyConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board must be positive, got %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Bird.X < 0 || c.Bird.X >= c.Board.Width {
		return fmt.Errorf("%w: bird x %d is outside the board width %d", ErrInvalidConfig, c.Bird.X, c.Board.Width)
	}
	if c.Pipes.GapHeight <= 0 {
		return fmt.Errorf("%w: gap height must be positive, got %d", ErrInvalidConfig, c.Pipes.GapHeight)
	}
	// Gap start is drawn from [1, height-gap-1], which needs at least one value.
	if c.Board.Height-c.Pipes.GapHeight-1 < 1 {
		return fmt.Errorf("%w: gap height %d does not fit board height %d", ErrInvalidConfig, c.Pipes.GapHeight, c.Board.Height)
	}
	if c.Pipes.Distance <= 0 || c.Pipes.Distance >= c.Board.Width {
		return fmt.Errorf("%w: pipe distance must be in (0, %d), got %d", ErrInvalidConfig, c.Board.Width, c.Pipes.Distance)
	}
	if len([]rune(c.Glyphs.Bird)) != 1 || len([]rune(c.Glyphs.Pipe)) != 1 {
		return fmt.Errorf("%w: glyphs must be single characters, got bird=%q pipe=%q", ErrInvalidConfig, c.Glyphs.Bird, c.Glyphs.Pipe)
	}
	return nil
}

// BirdRune returns the bird glyph.
func (c FlappyConfig) BirdRune() rune {
	return firstRune(c.Glyphs.Bird, '>')
}

// PipeRune returns the pipe glyph.
func (c FlappyConfig) PipeRune() rune {
	return firstRune(c.Glyphs.Pipe, '#')
}

func firstRune(s string, fallback rune) rune {
	for _, r := range s {
		return r
	}
	return fallback
}
