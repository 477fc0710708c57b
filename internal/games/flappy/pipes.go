package flappy

import (
	"github.com/vovakirdan/flappyshell/internal/config"
)

// Rand is the random source used for gap placement.
// *math/rand.Rand satisfies it; tests substitute fixed sources.
type Rand interface {
	Intn(n int) int
}

// Pipe is a one-column obstacle with a passable gap.
type Pipe struct {
	X        int // Column, decreases by one per tick
	GapStart int // Top row of the gap
}

// InGap reports whether row lies inside the pipe's gap.
func (p Pipe) InGap(row, gapHeight int) bool {
	return row >= p.GapStart && row < p.GapStart+gapHeight
}

// PipeManager owns the pipe sequence. Pipes are kept oldest first.
type PipeManager struct {
	pipes []Pipe
	rng   Rand
	cfg   config.FlappyConfig
}

// NewPipeManager creates an empty pipe manager. Call Reset to place the
// first pipe.
func NewPipeManager(cfg config.FlappyConfig, rng Rand) *PipeManager {
	return &PipeManager{
		pipes: make([]Pipe, 0, 4),
		rng:   rng,
		cfg:   cfg,
	}
}

// Reset clears all pipes and spawns the first one at the right edge.
func (pm *PipeManager) Reset() {
	pm.pipes = pm.pipes[:0]
	pm.spawn()
}

// Advance scrolls every pipe one column left.
func (pm *PipeManager) Advance() {
	for i := range pm.pipes {
		pm.pipes[i].X--
	}
}

// SpawnIfDue appends a pipe at the right edge once the newest pipe has
// scrolled past width-distance. Returns true if a pipe was added.
func (pm *PipeManager) SpawnIfDue() bool {
	if len(pm.pipes) > 0 && pm.pipes[len(pm.pipes)-1].X >= pm.cfg.Board.Width-pm.cfg.Pipes.Distance {
		return false
	}
	pm.spawn()
	return true
}

// DespawnPassed drops the oldest pipe once it is past column -1.
// At most one pipe leaves per call. Returns true if a pipe was removed.
func (pm *PipeManager) DespawnPassed() bool {
	if len(pm.pipes) == 0 || pm.pipes[0].X >= -1 {
		return false
	}
	pm.pipes = append(pm.pipes[:0], pm.pipes[1:]...)
	return true
}

// Collides reports whether any pipe in column x blocks row.
func (pm *PipeManager) Collides(x, row int) bool {
	for _, p := range pm.pipes {
		if p.X == x && !p.InGap(row, pm.cfg.Pipes.GapHeight) {
			return true
		}
	}
	return false
}

// Pipes returns a copy of the current pipe sequence, oldest first.
func (pm *PipeManager) Pipes() []Pipe {
	out := make([]Pipe, len(pm.pipes))
	copy(out, pm.pipes)
	return out
}

// spawn creates a pipe at the right edge with a gap start uniform in
// [1, height-gapHeight-1].
func (pm *PipeManager) spawn() {
	span := pm.cfg.Board.Height - pm.cfg.Pipes.GapHeight - 1
	gapStart := 1
	if span > 1 {
		gapStart = 1 + pm.rng.Intn(span)
	}

	pm.pipes = append(pm.pipes, Pipe{
		X:        pm.cfg.Board.Width,
		GapStart: gapStart,
	})
}
