package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/flappyshell/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

func styleFor(c core.Color) lipgloss.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return colorStyles[core.ColorDefault]
}

// StyleFrame colors widget frame text using the widget's palette.
// Adjacent runes with the same color are grouped to minimize ANSI escapes.
func StyleFrame(text string, p core.Palette) string {
	lines := strings.Split(text, "\n")

	var sb strings.Builder
	sb.Grow(len(text) * 2)

	for y, line := range lines {
		if y > 0 {
			sb.WriteRune('\n')
		}

		if c, ok := p.LineColor(line); ok {
			sb.WriteString(styleFor(c).Render(line))
			continue
		}

		runes := []rune(line)
		x := 0
		for x < len(runes) {
			startColor := p.ColorOf(y, runes[x])

			var run strings.Builder
			for x < len(runes) && p.ColorOf(y, runes[x]) == startColor {
				run.WriteRune(runes[x])
				x++
			}
			sb.WriteString(styleFor(startColor).Render(run.String()))
		}
	}
	return sb.String()
}
