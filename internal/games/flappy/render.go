package flappy

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/flappyshell/internal/core"
)

// Fixed status lines.
const (
	Instructions = "Press 'f' or Space to flap."
	GameOverLine = "Game Over!"
)

// Snapshot is the renderable state of a game.
type Snapshot struct {
	Width, Height int
	BirdX         int
	BirdY         float64
	GapHeight     int
	Pipes         []Pipe
	Score         int
	Alive         bool
	BirdGlyph     rune
	PipeGlyph     rune
}

// Render turns a snapshot into display text: the board rows, the score and
// instructions, and a game-over trailer once the bird is dead. Equal
// snapshots always produce identical text.
func Render(s Snapshot) string {
	screen := core.NewScreen(s.Width, s.Height)

	for _, p := range s.Pipes {
		if p.X < 0 || p.X >= s.Width {
			continue
		}
		gapEnd := p.GapStart + s.GapHeight
		screen.DrawVLine(p.X, 0, p.GapStart, s.PipeGlyph)
		screen.DrawVLine(p.X, gapEnd, s.Height-gapEnd, s.PipeGlyph)
	}

	// Only drawn when in bounds
	row := int(s.BirdY)
	if row >= 0 && row < s.Height {
		screen.Set(s.BirdX, row, s.BirdGlyph)
	}

	var sb strings.Builder
	sb.WriteString(screen.String())
	fmt.Fprintf(&sb, "\nScore: %d\n%s", s.Score, Instructions)
	if !s.Alive {
		fmt.Fprintf(&sb, "\n%s\nFinal Score: %d", GameOverLine, s.Score)
	}
	return sb.String()
}
