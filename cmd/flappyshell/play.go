package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/flappyshell/internal/core"
	"github.com/vovakirdan/flappyshell/internal/games/flappy"
	"github.com/vovakirdan/flappyshell/internal/loop"
	"github.com/vovakirdan/flappyshell/internal/platform/console"
	"github.com/vovakirdan/flappyshell/internal/platform/sound"
	"github.com/vovakirdan/flappyshell/internal/platform/tui"
	"github.com/vovakirdan/flappyshell/internal/registry"
)

const (
	backendTea     = "tea"
	backendConsole = "console"

	// Rows under the board: game over trailer plus host prompt and help line.
	reservedRows = 4
)

var (
	flagBackend string
	flagSound   bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Launch a widget directly",
	Long: `Launch a widget without typing at the shell prompt and print its
final score after it exits.

Controls:
  Space/F    - Flap
  Ctrl+C     - Quit (Esc also quits on the console backend)

Backends:
  tea      - Bubble Tea shell with the widget auto-started (default)
  console  - Raw tcell screen

Examples:
  flappyshell play
  flappyshell play flappy --backend console
  flappyshell play --sound --seed 7
  flappyshell play --config ./my-flappy.yaml`,
	Args: cobra.MaximumNArgs(1),
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagBackend, "backend", backendTea, "Host backend: tea or console")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play tones on flap, score and crash")
}

func runPlay(_ *cobra.Command, args []string) {
	gameID := flappy.ID
	if len(args) == 1 {
		gameID = args[0]
	}

	res, err := play(gameID, playOptions{
		Runtime:   runtimeConfig(),
		Backend:   flagBackend,
		Sound:     flagSound,
		CheckTerm: checkTerminal,
		OpenSound: openSound,
	})
	if err != nil {
		fail("%v", err)
	}
	if res != nil {
		fmt.Printf("Final Score: %d\n", res.Score)
	}
}

// soundCues is the part of sound.Cues a run needs.
type soundCues interface {
	OnStep(core.StepResult)
	Close()
}

func openSound(logger *log.Logger) soundCues {
	return sound.New(logger)
}

// playOptions carries everything play needs besides the widget id.
type playOptions struct {
	Runtime   core.RuntimeConfig
	Backend   string
	Sound     bool
	CheckTerm func(frameW, frameH int) error
	OpenSound func(*log.Logger) soundCues
}

// play runs one widget to completion. Every resource it opens is released
// before it returns, on error paths too.
func play(gameID string, opts playOptions) (*loop.Result, error) {
	if !registry.Exists(gameID) {
		return nil, fmt.Errorf("unknown game %q (run 'flappyshell list' to see available games)", gameID)
	}

	// A throwaway instance gives the board size and surfaces config errors early
	probe, err := registry.Create(gameID, opts.Runtime)
	if err != nil {
		return nil, err
	}
	if err := opts.CheckTerm(frameSize(probe.Render())); err != nil {
		return nil, err
	}

	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		return nil, err
	}
	defer closeLog()

	var onStep func(core.StepResult)
	if opts.Sound {
		cues := opts.OpenSound(logger)
		defer cues.Close()
		onStep = cues.OnStep
	}

	switch opts.Backend {
	case backendTea:
		return tui.Run(context.Background(), tui.ShellOptions{
			Runtime:      opts.Runtime,
			Logger:       logger,
			Autorun:      gameID,
			ExitAfterRun: true,
			OnStep:       onStep,
		})
	case backendConsole:
		return playConsole(gameID, opts.Runtime, logger, onStep)
	default:
		return nil, fmt.Errorf("unknown backend %q (want %s or %s)", opts.Backend, backendTea, backendConsole)
	}
}

// playConsole runs one widget on a tcell screen. Ctrl+C arrives as a key
// event in raw mode and cancels the run.
func playConsole(gameID string, rc core.RuntimeConfig, logger *log.Logger, onStep func(core.StepResult)) (*loop.Result, error) {
	game, err := registry.Create(gameID, rc)
	if err != nil {
		return nil, err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	con, err := console.New(game.Palette(), stop)
	if err != nil {
		return nil, fmt.Errorf("cannot open terminal: %w", err)
	}
	defer con.Close()
	con.Start()

	cfg := loop.ConfigFrom(rc)
	cfg.Logger = logger
	cfg.OnStep = onStep

	ctrl, err := loop.New(game, loop.Host{Display: con, Input: con, Toggle: con}, cfg)
	if err != nil {
		return nil, err
	}

	res, err := ctrl.Run(ctx)
	con.Close()
	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	return &res, nil
}

// frameSize returns the width in runes of the widest line and the number of lines.
func frameSize(frame string) (int, int) {
	lines := strings.Split(frame, "\n")
	width := 0
	for _, line := range lines {
		if n := len([]rune(line)); n > width {
			width = n
		}
	}
	return width, len(lines)
}

// checkTerminal fails when stdout is not a terminal large enough for the frame.
func checkTerminal(frameW, frameH int) error {
	w, h, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		return fmt.Errorf("stdout is not a terminal: %w", err)
	}
	return fitsTerminal(frameW, frameH, w, h)
}

func fitsTerminal(frameW, frameH, termW, termH int) error {
	needW, needH := frameW, frameH+reservedRows
	if termW < needW || termH < needH {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", termW, termH, needW, needH)
	}
	return nil
}
