package core

// Color is a host-independent foreground color for a glyph.
// Hosts map it to lipgloss or tcell styles.
type Color uint8

const (
	ColorDefault Color = iota
	ColorGreen
	ColorYellow
	ColorRed
	ColorGray
)

// Palette tells hosts how to color a widget's frame text. Glyph colors
// apply to the first Rows lines; Lines colors whole lines by exact match.
type Palette struct {
	Rows   int
	Glyphs map[rune]Color
	Lines  map[string]Color
}

// ColorOf returns the color for a glyph on the given line.
func (p Palette) ColorOf(line int, r rune) Color {
	if line >= p.Rows {
		return ColorDefault
	}
	if c, ok := p.Glyphs[r]; ok {
		return c
	}
	return ColorDefault
}

// LineColor returns the whole-line color for text, if any.
func (p Palette) LineColor(text string) (Color, bool) {
	c, ok := p.Lines[text]
	return c, ok
}
