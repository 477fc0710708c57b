package flappy

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/vovakirdan/flappyshell/internal/config"
	"github.com/vovakirdan/flappyshell/internal/core"
)

const eps = 1e-9

// fixedRand always returns v, clamped to the requested range.
type fixedRand struct {
	v     int
	calls []int
}

func (r *fixedRand) Intn(n int) int {
	r.calls = append(r.calls, n)
	if r.v >= n {
		return n - 1
	}
	return r.v
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func noInput() core.InputFrame {
	return core.NewInputFrame()
}

func flapInput() core.InputFrame {
	in := core.NewInputFrame()
	in.Set(core.ActionFlap)
	return in
}

func newTestGame(t *testing.T, mutate func(*config.FlappyConfig), gapRand int) *Game {
	t.Helper()
	cfg := config.DefaultFlappyConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("test config invalid: %v", err)
	}
	return New(cfg, &fixedRand{v: gapRand})
}

func TestNewGameInitialState(t *testing.T) {
	rng := &fixedRand{v: 100}
	g := New(config.DefaultFlappyConfig(), rng)

	if g.bird.Y != 10 || g.bird.Velocity != 0 {
		t.Errorf("bird should start at y=10 at rest, got %+v", g.bird)
	}

	pipes := g.pipes.Pipes()
	if len(pipes) != 1 {
		t.Fatalf("expected exactly one initial pipe, got %d", len(pipes))
	}
	if pipes[0].X != 60 {
		t.Errorf("initial pipe x = %d, expected 60", pipes[0].X)
	}
	// Largest draw lands on the top of [1, height-gap-1] = [1, 11]
	if pipes[0].GapStart != 11 {
		t.Errorf("initial gap start = %d, expected 11", pipes[0].GapStart)
	}
	if len(rng.calls) != 1 || rng.calls[0] != 11 {
		t.Errorf("expected a single Intn(11) draw, got %v", rng.calls)
	}
}

func TestNoFlapTrajectory(t *testing.T) {
	g := newTestGame(t, nil, 0)

	expected := []float64{10.0, 10.8, 12.4, 14.8, 18.0}
	for i, want := range expected {
		result := g.Step(noInput())
		if !approx(g.bird.Y, want) {
			t.Errorf("tick %d: y = %v, expected %v", i+1, g.bird.Y, want)
		}
		if result.State.GameOver {
			t.Fatalf("tick %d: game should still be running at y=%v", i+1, g.bird.Y)
		}
	}

	// y = 22.0 >= 20
	result := g.Step(noInput())
	if !result.State.GameOver || !result.Events.Crashed {
		t.Errorf("tick 6 should end the game, y=%v", g.bird.Y)
	}
	if result.State.Ticks != 6 {
		t.Errorf("ticks = %d, expected 6", result.State.Ticks)
	}
}

func TestIntegrationLaw(t *testing.T) {
	g := newTestGame(t, func(c *config.FlappyConfig) { c.Board.Height = 1000 }, 0)
	g.bird = Bird{Y: 500, Velocity: -3.5}

	for i := 0; i < 10; i++ {
		before := g.bird
		g.Step(noInput())
		if !approx(g.bird.Y, before.Y+before.Velocity) {
			t.Errorf("tick %d: y = %v, expected %v", i+1, g.bird.Y, before.Y+before.Velocity)
		}
		if !approx(g.bird.Velocity, before.Velocity+0.8) {
			t.Errorf("tick %d: velocity = %v, expected %v", i+1, g.bird.Velocity, before.Velocity+0.8)
		}
	}
}

func TestFlapOverridesVelocity(t *testing.T) {
	g := newTestGame(t, nil, 0)
	g.bird = Bird{Y: 10, Velocity: 3.7}

	result := g.Step(flapInput())
	if !result.Events.Flapped {
		t.Error("flap should be reported in events")
	}
	if g.bird.Velocity != -2 {
		t.Errorf("flap should set velocity to exactly -2, got %v", g.bird.Velocity)
	}

	// No new flap: impulse is not re-applied
	result = g.Step(noInput())
	if result.Events.Flapped {
		t.Error("second tick without input should not flap")
	}
	if !approx(g.bird.Velocity, -1.2) {
		t.Errorf("velocity after one unflapped tick = %v, expected -1.2", g.bird.Velocity)
	}
}

func TestFlapAtTickThreeRebound(t *testing.T) {
	g := newTestGame(t, nil, 0)

	expected := []float64{10.0, 10.8, 12.4, 10.4, 9.2, 8.8, 9.2, 10.4}
	for i, want := range expected {
		in := noInput()
		if i == 2 {
			in = flapInput()
		}
		g.Step(in)
		if !approx(g.bird.Y, want) {
			t.Errorf("tick %d: y = %v, expected %v", i+1, g.bird.Y, want)
		}
		if i == 2 && g.bird.Velocity != -2 {
			t.Errorf("tick 3: velocity = %v, expected -2 after flap", g.bird.Velocity)
		}
	}
	if g.State().GameOver {
		t.Error("rebound trajectory should keep the bird alive")
	}
}

func TestBoundaryTop(t *testing.T) {
	g := newTestGame(t, nil, 0)
	g.bird = Bird{Y: 0.5, Velocity: -1}

	if result := g.Step(noInput()); !result.State.GameOver {
		t.Errorf("bird at y=%v should have hit the top", g.bird.Y)
	}
}

func TestBoundaryExactBottom(t *testing.T) {
	g := newTestGame(t, nil, 0)
	g.bird = Bird{Y: 19, Velocity: 1}

	if result := g.Step(noInput()); !result.State.GameOver {
		t.Error("y == height should end the game")
	}
}

func TestStepAfterGameOverIsNoop(t *testing.T) {
	g := newTestGame(t, nil, 0)
	for !g.State().GameOver {
		g.Step(noInput())
	}

	before := g.State()
	birdBefore := g.bird
	result := g.Step(flapInput())

	if result.State != before {
		t.Errorf("state changed after game over: %+v -> %+v", before, result.State)
	}
	if g.bird != birdBefore {
		t.Error("bird should not move after game over")
	}
	if result.Events != (core.Events{}) {
		t.Errorf("no events expected after game over, got %+v", result.Events)
	}
}

func TestScoreOnDespawn(t *testing.T) {
	// No gravity, bird parked at row 10 inside gaps starting at row 5
	g := newTestGame(t, func(c *config.FlappyConfig) { c.Physics.Gravity = 0 }, 4)

	// Pipe 1 spawns at x=60 and leaves at tick 62; pipe 2 spawns at tick 31 and leaves at tick 93
	for tick := 1; tick <= 100; tick++ {
		result := g.Step(noInput())
		if result.State.GameOver {
			t.Fatalf("tick %d: bird inside the gap should never crash", tick)
		}

		want := 0
		if tick >= 62 {
			want = 1
		}
		if tick >= 93 {
			want = 2
		}
		if result.State.Score != want {
			t.Fatalf("tick %d: score = %d, expected %d", tick, result.State.Score, want)
		}
		if result.Events.Scored != (tick == 62 || tick == 93) {
			t.Errorf("tick %d: Scored event = %v", tick, result.Events.Scored)
		}
	}
}

func TestCollisionOutsideGap(t *testing.T) {
	// Gap rows [1, 9), bird parked at row 10
	g := newTestGame(t, func(c *config.FlappyConfig) { c.Physics.Gravity = 0 }, 0)

	for tick := 1; tick < 55; tick++ {
		if result := g.Step(noInput()); result.State.GameOver {
			t.Fatalf("tick %d: game ended before the pipe reached the bird", tick)
		}
	}

	// Pipe reaches column 5 on tick 55
	result := g.Step(noInput())
	if !result.State.GameOver || !result.Events.Crashed {
		t.Error("bird outside the gap should crash when the pipe reaches its column")
	}
}

func TestCollides(t *testing.T) {
	pm := NewPipeManager(config.DefaultFlappyConfig(), &fixedRand{})
	pm.pipes = []Pipe{{X: 5, GapStart: 4}, {X: 35, GapStart: 1}}

	tests := []struct {
		name     string
		x        float64
		y        float64
		expected bool
	}{
		{"top edge of gap", 5, 4, false},
		{"last gap row", 5, 11, false},
		{"truncated into gap", 5, 11.99, false},
		{"just above gap", 5, 3.99, true},
		{"just below gap", 5, 12, true},
		{"other column", 6, 0, false},
		{"second pipe outside gap", 35, 15, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			row := Bird{Y: tc.y}.Row()
			if got := pm.Collides(int(tc.x), row); got != tc.expected {
				t.Errorf("Collides(%v, row %d) = %v, expected %v", tc.x, row, got, tc.expected)
			}
		})
	}
}

func TestScoreAndCrashOnSameTick(t *testing.T) {
	g := newTestGame(t, func(c *config.FlappyConfig) { c.Physics.Gravity = 0 }, 0)
	// Oldest pipe about to leave, next pipe one column right of the bird with its gap away from row 10
	g.pipes.pipes = []Pipe{{X: -1, GapStart: 1}, {X: 6, GapStart: 1}}

	result := g.Step(noInput())
	if result.State.Score != 1 || !result.Events.Scored {
		t.Errorf("departing pipe should score, got %+v", result)
	}
	if !result.State.GameOver {
		t.Error("bird should crash into the pipe on the same tick")
	}
}

func TestPipeSpawnSpacingAndOrder(t *testing.T) {
	cfg := config.DefaultFlappyConfig()
	pm := NewPipeManager(cfg, &fixedRand{v: 3})
	pm.Reset()

	spawns := 0
	for tick := 1; tick <= 200; tick++ {
		pm.Advance()
		newest := pm.pipes[len(pm.pipes)-1].X
		if pm.SpawnIfDue() {
			spawns++
			if newest != cfg.Board.Width-cfg.Pipes.Distance-1 {
				t.Errorf("tick %d: spawned while newest pipe at x=%d, expected %d", tick, newest, cfg.Board.Width-cfg.Pipes.Distance-1)
			}
			if got := pm.pipes[len(pm.pipes)-1]; got.X != cfg.Board.Width || got.GapStart != 4 {
				t.Errorf("tick %d: new pipe = %+v", tick, got)
			}
		}
		pm.DespawnPassed()

		if len(pm.pipes) == 0 {
			t.Fatalf("tick %d: pipe sequence should never be empty", tick)
		}
		for i := 1; i < len(pm.pipes); i++ {
			if pm.pipes[i].X-pm.pipes[i-1].X != cfg.Pipes.Distance+1 {
				t.Errorf("tick %d: pipes %d and %d are %d apart", tick, i-1, i, pm.pipes[i].X-pm.pipes[i-1].X)
			}
		}
	}

	// Spawns at ticks 31, 62, 93, ...
	if spawns != 6 {
		t.Errorf("expected 6 spawns in 200 ticks, got %d", spawns)
	}
}

func TestDespawnOnlyOldest(t *testing.T) {
	pm := NewPipeManager(config.DefaultFlappyConfig(), &fixedRand{})
	pm.pipes = []Pipe{{X: -1}, {X: -5}}

	if pm.DespawnPassed() {
		t.Error("oldest pipe at x=-1 has not passed yet")
	}

	pm.pipes = []Pipe{{X: -2}, {X: -5}}
	if !pm.DespawnPassed() {
		t.Fatal("oldest pipe at x=-2 should despawn")
	}
	if len(pm.pipes) != 1 || pm.pipes[0].X != -5 {
		t.Errorf("only the oldest pipe should go, got %+v", pm.pipes)
	}
}

func TestGameDeterminism(t *testing.T) {
	cfg := config.DefaultFlappyConfig()

	run := func() (core.GameState, string) {
		g := New(cfg, rand.New(rand.NewSource(12345)))
		var state core.GameState
		for i := 0; i < 300 && !state.GameOver; i++ {
			in := noInput()
			if i%4 == 0 {
				in = flapInput()
			}
			state = g.Step(in).State
		}
		return state, g.Render()
	}

	state1, frame1 := run()
	state2, frame2 := run()

	if state1 != state2 {
		t.Errorf("Determinism failed: %+v vs %+v", state1, state2)
	}
	if frame1 != frame2 {
		t.Error("Determinism failed: final frames differ")
	}
}

func TestGameReset(t *testing.T) {
	g := New(config.DefaultFlappyConfig(), rand.New(rand.NewSource(42)))

	for i := 0; i < 20; i++ {
		in := noInput()
		if i%3 == 0 {
			in = flapInput()
		}
		g.Step(in)
	}

	g.Reset()

	if g.State() != (core.GameState{}) {
		t.Errorf("Reset should clear state, got %+v", g.State())
	}
	if g.bird != (Bird{Y: 10}) {
		t.Errorf("Reset should park the bird, got %+v", g.bird)
	}
	if pipes := g.pipes.Pipes(); len(pipes) != 1 || pipes[0].X != 60 {
		t.Errorf("Reset should leave one pipe at the right edge, got %+v", pipes)
	}
}

func TestRenderLayout(t *testing.T) {
	s := Snapshot{
		Width:     60,
		Height:    20,
		BirdX:     5,
		BirdY:     10.7,
		GapHeight: 8,
		Pipes:     []Pipe{{X: -1, GapStart: 1}, {X: 10, GapStart: 4}, {X: 60, GapStart: 2}},
		Score:     3,
		Alive:     true,
		BirdGlyph: '>',
		PipeGlyph: '#',
	}

	lines := strings.Split(Render(s), "\n")
	if len(lines) != 22 {
		t.Fatalf("expected 20 board rows plus 2 status lines, got %d", len(lines))
	}

	for y := 0; y < 20; y++ {
		row := []rune(lines[y])
		if len(row) != 60 {
			t.Fatalf("row %d has width %d", y, len(row))
		}
		wantPipe := y < 4 || y >= 12
		if (row[10] == '#') != wantPipe {
			t.Errorf("row %d col 10 = %q, pipe expected: %v", y, row[10], wantPipe)
		}
		if strings.Count(lines[y], "#") > 1 {
			t.Errorf("row %d: off-board pipes must not be drawn: %q", y, lines[y])
		}
	}
	if []rune(lines[10])[5] != '>' {
		t.Errorf("bird should be drawn at (5, 10), row is %q", lines[10])
	}
	if lines[20] != "Score: 3" || lines[21] != Instructions {
		t.Errorf("status lines = %q, %q", lines[20], lines[21])
	}

	s.Alive = false
	text := Render(s)
	if !strings.HasSuffix(text, "\nGame Over!\nFinal Score: 3") {
		t.Errorf("dead snapshot should carry the game over trailer, got tail %q", text[len(text)-40:])
	}
}

func TestRenderBirdOutOfBounds(t *testing.T) {
	g := newTestGame(t, nil, 0)
	g.bird = Bird{Y: 25}

	board := strings.Join(strings.Split(g.Render(), "\n")[:20], "\n")
	if strings.ContainsRune(board, '>') {
		t.Error("bird below the board should not be drawn")
	}
}

func TestRenderIsPure(t *testing.T) {
	g1 := newTestGame(t, nil, 5)
	g2 := newTestGame(t, nil, 5)

	for i := 0; i < 4; i++ {
		g1.Step(noInput())
		g2.Step(noInput())
		if g1.Render() != g2.Render() {
			t.Fatalf("tick %d: identical states rendered differently", i+1)
		}
	}

	snap := g1.Snapshot()
	if Render(snap) != Render(snap) {
		t.Error("rendering the same snapshot twice should be byte-identical")
	}
}

func TestPalette(t *testing.T) {
	g := newTestGame(t, nil, 0)
	p := g.Palette()

	if p.ColorOf(0, '#') != core.ColorGreen {
		t.Error("pipes should be green on board rows")
	}
	if p.ColorOf(3, '>') != core.ColorYellow {
		t.Error("bird should be yellow on board rows")
	}
	if p.ColorOf(20, '#') != core.ColorDefault {
		t.Error("status lines should not be colored by glyph")
	}
}

func TestPaletteHighlightsGameOver(t *testing.T) {
	g := newTestGame(t, nil, 0)
	c, ok := g.Palette().LineColor(GameOverLine)
	if !ok || c != core.ColorRed {
		t.Errorf("game over line should be red, got %v %v", c, ok)
	}
	if _, ok := g.Palette().LineColor("Score: 0"); ok {
		t.Error("score line should not have a line color")
	}
}
