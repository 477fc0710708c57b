// Package flappy implements a Flappy Bird-style text widget.
// The player flaps a bird through gaps in single-column pipes that scroll left.
package flappy

import (
	"math/rand"
	"time"

	"github.com/vovakirdan/flappyshell/internal/config"
	"github.com/vovakirdan/flappyshell/internal/core"
	"github.com/vovakirdan/flappyshell/internal/registry"
)

// Widget identity in the registry.
const (
	ID    = "flappy"
	Title = "Flappy Bird"
)

// Bird holds the bird's vertical state. Its column is fixed by config.
type Bird struct {
	Y        float64
	Velocity float64
}

// Row returns the bird's row, truncated toward zero.
func (b Bird) Row() int {
	return int(b.Y)
}

// Game implements the flappy simulation.
type Game struct {
	cfg       config.FlappyConfig
	bird      Bird
	pipes     *PipeManager
	score     int
	gameOver  bool
	tickCount int
}

// New creates a game with the given constants and random source.
func New(cfg config.FlappyConfig, rng Rand) *Game {
	g := &Game{
		cfg:   cfg,
		pipes: NewPipeManager(cfg, rng),
	}
	g.Reset()
	return g
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return ID
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return Title
}

// Reset puts the bird mid-board at rest with a single pipe at the right edge.
func (g *Game) Reset() {
	g.bird = Bird{Y: float64(g.cfg.Board.Height / 2)}
	g.score = 0
	g.gameOver = false
	g.tickCount = 0
	g.pipes.Reset()
}

// Step advances the game by one tick. Once the game is over Step is a no-op.
//
// The order is fixed: integrate, bounds check, scroll, spawn, despawn and
// score, pipe collision, then flap. A flap therefore takes effect on the
// following tick's integration.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.gameOver {
		return core.StepResult{State: g.State()}
	}

	g.tickCount++
	var ev core.Events

	g.bird.Y += g.bird.Velocity
	g.bird.Velocity += g.cfg.Physics.Gravity

	if g.bird.Y < 0 || g.bird.Y >= float64(g.cfg.Board.Height) {
		g.gameOver = true
	}

	g.pipes.Advance()
	g.pipes.SpawnIfDue()

	// Scoring is decoupled from collision: a pipe counts once it leaves the
	// board, even on the tick the bird crashes.
	if g.pipes.DespawnPassed() {
		g.score++
		ev.Scored = true
	}

	if g.pipes.Collides(g.cfg.Bird.X, g.bird.Row()) {
		g.gameOver = true
	}

	if in.Has(core.ActionFlap) {
		g.bird.Velocity = g.cfg.Physics.FlapImpulse
		ev.Flapped = true
	}

	ev.Crashed = g.gameOver
	return core.StepResult{State: g.State(), Events: ev}
}

// Snapshot captures everything the renderer needs.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Width:     g.cfg.Board.Width,
		Height:    g.cfg.Board.Height,
		BirdX:     g.cfg.Bird.X,
		BirdY:     g.bird.Y,
		GapHeight: g.cfg.Pipes.GapHeight,
		Pipes:     g.pipes.Pipes(),
		Score:     g.score,
		Alive:     !g.gameOver,
		BirdGlyph: g.cfg.BirdRune(),
		PipeGlyph: g.cfg.PipeRune(),
	}
}

// Render draws the current state as text.
func (g *Game) Render() string {
	return Render(g.Snapshot())
}

// Palette tells hosts how to color the board rows.
func (g *Game) Palette() core.Palette {
	return core.Palette{
		Rows: g.cfg.Board.Height,
		Glyphs: map[rune]core.Color{
			g.cfg.PipeRune(): core.ColorGreen,
			g.cfg.BirdRune(): core.ColorYellow,
		},
		Lines: map[string]core.Color{
			GameOverLine: core.ColorRed,
		},
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.gameOver,
		Ticks:    g.tickCount,
	}
}

// Register the game with the registry
func init() {
	registry.Register(registry.Info{ID: ID, Title: Title}, func(rc core.RuntimeConfig) (registry.Game, error) {
		cfg, err := config.LoadFlappy(rc.ConfigPath)
		if err != nil {
			return nil, err
		}
		seed := rc.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		return New(cfg, rand.New(rand.NewSource(seed))), nil
	})
}
