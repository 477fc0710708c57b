// flappyshell is a terminal shell that hosts a Flappy Bird widget.
//
// Usage:
//
//	flappyshell              - Start the interactive shell
//	flappyshell play [game]  - Launch a widget directly and print the score
//	flappyshell serve        - Serve the shell over SSH
//	flappyshell list         - List available widgets
//
// Global flags:
//
//	--tps <rate>      - Ticks per second (default: 10)
//	--seed <value>    - RNG seed for reproducible pipes
//	--config <path>   - Game constants YAML
//	--dwell <dur>     - How long the final frame stays up (default: 2s)
//	--log-file <path> - Write logs to a file
//	--debug           - Log every tick
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyshell/internal/core"

	// Import games to register them
	_ "github.com/vovakirdan/flappyshell/internal/games/flappy"
)

var (
	// Global flags
	flagTPS     int
	flagSeed    int64
	flagConfig  string
	flagDwell   time.Duration
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "flappyshell",
	Short: "flappyshell - a tiny shell with a Flappy Bird widget",
	Long: `flappyshell is a terminal shell whose commands launch small widgets.
Type "flappy" at the prompt to play; the prompt comes back with your score.

Available commands:
  shell    - Interactive shell (default)
  play     - Launch a widget directly
  serve    - Serve the shell over SSH
  list     - Show all available widgets

Examples:
  flappyshell
  flappyshell play
  flappyshell play --backend console --sound
  flappyshell serve --ssh :2222
  flappyshell --tps 15 --seed 42 play`,
	Run: runShell,
}

func init() {
	defaults := core.DefaultConfig()

	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagTPS, "tps", defaults.TickRate, "Simulation ticks per second")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().DurationVar(&flagDwell, "dwell", defaults.Dwell, "How long the final frame stays on screen")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(listCmd)
}

// runtimeConfig builds the widget timing from global flags.
func runtimeConfig() core.RuntimeConfig {
	return core.RuntimeConfig{
		TickRate:   flagTPS,
		Dwell:      flagDwell,
		Seed:       flagSeed,
		ConfigPath: flagConfig,
	}
}

// fail prints an error and exits.
func fail(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
