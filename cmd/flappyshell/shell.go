package main

import (
	"context"
	"io"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyshell/internal/platform/tui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start the interactive shell",
	Long: `Start the interactive shell.

Shell commands:
  flappy   - Play Flappy Bird (Space or F to flap)
  help     - List commands
  clear    - Clear the screen (also Ctrl+L)
  exit     - Leave the shell (also Ctrl+C)

While a widget runs the prompt is disabled; it comes back with the
final score once the game over screen has been shown.`,
	Run: runShell,
}

func runShell(_ *cobra.Command, _ []string) {
	logger, closeLog, err := newLogger(io.Discard)
	if err != nil {
		fail("%v", err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	if _, err := tui.Run(ctx, tui.ShellOptions{
		Runtime: runtimeConfig(),
		Logger:  logger,
	}); err != nil {
		closeLog()
		fail("%v", err)
	}
}
