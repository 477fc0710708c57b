package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/flappyshell/internal/platform/tui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available widgets",
	Long:  `Shows every widget the shell can launch, as listed by the shell's help command.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	lines := tui.WidgetLines()
	if len(lines) == 0 {
		fmt.Println("No widgets available.")
		return
	}

	fmt.Printf("Widgets:\n%s\n\n", strings.Join(lines, "\n"))
	fmt.Println("Type an id at the shell prompt or run 'flappyshell play <id>'.")
}
