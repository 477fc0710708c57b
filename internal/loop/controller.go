// Package loop runs a widget at a fixed tick rate against a host's display,
// input and UI toggle.
package loop

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappyshell/internal/core"
	"github.com/vovakirdan/flappyshell/internal/registry"
)

// Precondition failures returned by New and Run.
var (
	ErrNoGame     = errors.New("loop: no game to run")
	ErrNoDisplay  = errors.New("loop: host has no display")
	ErrNoInput    = errors.New("loop: host has no input source")
	ErrAlreadyRun = errors.New("loop: controller has already run")
)

// Phase is the controller lifecycle. It only moves forward.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseRunning
	PhaseTerminated
	PhaseCleanedUp
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRunning:
		return "running"
	case PhaseTerminated:
		return "terminated"
	case PhaseCleanedUp:
		return "cleaned-up"
	default:
		return "unknown"
	}
}

// Config controls timing and observation of a run.
type Config struct {
	Tick   time.Duration         // Interval between ticks
	Dwell  time.Duration         // How long the final frame stays up
	Logger *log.Logger           // Optional, discards when nil
	OnStep func(core.StepResult) // Optional, called on the loop goroutine after each tick
}

// ConfigFrom derives loop timing from a runtime config.
func ConfigFrom(rc core.RuntimeConfig) Config {
	return Config{
		Tick:  rc.TickInterval(),
		Dwell: rc.Dwell,
	}
}

// Result is what a finished run reports back to the host.
type Result struct {
	Score    int
	Ticks    int
	Canceled bool
}

// Controller owns one run of a widget: the flap queue, the tick loop,
// the final dwell and host cleanup.
type Controller struct {
	game   registry.Game
	host   Host
	cfg    Config
	flaps  *FlapQueue
	frame  core.InputFrame
	last   core.GameState
	logger *log.Logger
	phase  atomic.Int32
}

// New validates the collaborators and prepares a controller.
func New(game registry.Game, host Host, cfg Config) (*Controller, error) {
	if game == nil {
		return nil, ErrNoGame
	}
	if host.Display == nil {
		return nil, ErrNoDisplay
	}
	if host.Input == nil {
		return nil, ErrNoInput
	}
	if cfg.Tick <= 0 {
		cfg.Tick = core.DefaultConfig().TickInterval()
	}
	if cfg.Dwell < 0 {
		cfg.Dwell = 0
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Controller{
		game:   game,
		host:   host,
		cfg:    cfg,
		flaps:  NewFlapQueue(),
		frame:  core.NewInputFrame(),
		logger: logger.WithPrefix(game.ID()),
	}, nil
}

// Flaps returns the queue input sources write into.
func (c *Controller) Flaps() *FlapQueue {
	return c.flaps
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	return Phase(c.phase.Load())
}

// Run plays the widget until it ends or ctx is canceled, then cleans up the
// host. ctx is checked once per tick. Cancellation skips the dwell and
// returns the result so far with ctx.Err(). A controller runs only once.
func (c *Controller) Run(ctx context.Context) (Result, error) {
	if !c.phase.CompareAndSwap(int32(PhaseIdle), int32(PhaseRunning)) {
		return Result{}, ErrAlreadyRun
	}

	if c.host.Toggle != nil {
		c.host.Toggle.SetEnabled(false)
	}
	c.host.Input.Attach(c.flaps)
	defer c.cleanup()

	c.logger.Info("started", "tick", c.cfg.Tick, "dwell", c.cfg.Dwell)

	ticker := time.NewTicker(c.cfg.Tick)
	defer ticker.Stop()

	for {
		if err := ctx.Err(); err != nil {
			return c.canceled(err)
		}
		if c.tick().GameOver {
			break
		}
		select {
		case <-ctx.Done():
		case <-ticker.C:
		}
	}

	c.phase.Store(int32(PhaseTerminated))
	c.logger.Info("game over", "score", c.last.Score, "ticks", c.last.Ticks)

	// Hold the final frame
	dwell := time.NewTimer(c.cfg.Dwell)
	defer dwell.Stop()
	select {
	case <-dwell.C:
	case <-ctx.Done():
		return c.canceled(ctx.Err())
	}

	return c.result(false), nil
}

// tick consumes the pending flap, advances the game once and pushes the frame.
func (c *Controller) tick() core.GameState {
	c.frame.Clear()
	if c.flaps.Take() {
		c.frame.Set(core.ActionFlap)
	}

	res := c.game.Step(c.frame)
	c.last = res.State
	c.host.Display.Show(c.game.Render())

	if res.Events.Flapped {
		c.logger.Debug("flap", "tick", res.State.Ticks)
	}
	if res.Events.Scored {
		c.logger.Debug("scored", "score", res.State.Score)
	}
	if c.cfg.OnStep != nil {
		c.cfg.OnStep(res)
	}
	return res.State
}

func (c *Controller) canceled(err error) (Result, error) {
	c.logger.Info("canceled", "score", c.last.Score, "ticks", c.last.Ticks, "reason", err)
	return c.result(true), err
}

func (c *Controller) result(canceled bool) Result {
	return Result{
		Score:    c.last.Score,
		Ticks:    c.last.Ticks,
		Canceled: canceled,
	}
}

// cleanup tears the host down in a fixed order: display, toggle, input.
func (c *Controller) cleanup() {
	c.host.Display.Remove()
	if c.host.Toggle != nil {
		c.host.Toggle.SetEnabled(true)
	}
	c.host.Input.Detach()
	c.phase.Store(int32(PhaseCleanedUp))
}
