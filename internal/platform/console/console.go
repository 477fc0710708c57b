// Package console hosts a widget directly on a tcell screen. A Console is the
// display, input source and UI toggle of a single loop run.
package console

import (
	"strings"
	"sync"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"

	"github.com/vovakirdan/flappyshell/internal/core"
	"github.com/vovakirdan/flappyshell/internal/loop"
)

var colorStyles = map[core.Color]tcell.Style{
	core.ColorDefault: tcell.StyleDefault,
	core.ColorGreen:   tcell.StyleDefault.Foreground(tcell.ColorGreen),
	core.ColorYellow:  tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true),
	core.ColorRed:     tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true),
	core.ColorGray:    tcell.StyleDefault.Foreground(tcell.ColorGray),
}

func styleFor(c core.Color) tcell.Style {
	if style, ok := colorStyles[c]; ok {
		return style
	}
	return tcell.StyleDefault
}

// Console draws frames on a tcell screen and turns key events into flaps.
type Console struct {
	screen  tcell.Screen
	palette core.Palette
	onQuit  func()

	queue atomic.Pointer[loop.FlapQueue]

	mu    sync.Mutex
	lines int // Rows drawn by the last Show

	closeOnce sync.Once
}

// New opens the terminal screen. onQuit is called from the event goroutine
// when the user asks to leave (Ctrl+C or Esc).
func New(palette core.Palette, onQuit func()) (*Console, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	return NewWithScreen(screen, palette, onQuit), nil
}

// NewWithScreen wraps an initialized screen.
func NewWithScreen(screen tcell.Screen, palette core.Palette, onQuit func()) *Console {
	if onQuit == nil {
		onQuit = func() {}
	}
	return &Console{
		screen:  screen,
		palette: palette,
		onQuit:  onQuit,
	}
}

// Start begins polling key events. PollEvent returns nil once the screen
// is finalized, which ends the goroutine.
func (c *Console) Start() {
	go func() {
		for {
			ev := c.screen.PollEvent()
			if ev == nil {
				return
			}
			c.handleEvent(ev)
		}
	}()
}

func (c *Console) handleEvent(ev tcell.Event) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		c.dispatch(actionFor(ev.Key(), ev.Rune()))
	case *tcell.EventResize:
		c.screen.Sync()
	}
}

func (c *Console) dispatch(a core.Action) {
	switch a {
	case core.ActionFlap:
		if q := c.queue.Load(); q != nil {
			q.Request()
		}
	case core.ActionQuit:
		c.onQuit()
	}
}

// actionFor maps a tcell key to an action.
func actionFor(k tcell.Key, r rune) core.Action {
	switch k {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return core.ActionQuit
	case tcell.KeyRune:
		return core.ActionForKey(string(r))
	}
	return core.ActionNone
}

// Show draws a frame starting at the top-left corner.
func (c *Console) Show(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.screen.Clear()
	lines := strings.Split(text, "\n")
	for y, line := range lines {
		lineColor, whole := c.palette.LineColor(line)
		x := 0
		for _, r := range line {
			color := lineColor
			if !whole {
				color = c.palette.ColorOf(y, r)
			}
			c.screen.SetContent(x, y, r, nil, styleFor(color))
			x++
		}
	}
	c.lines = len(lines)
	c.screen.Show()
}

// Remove clears the widget from the screen.
func (c *Console) Remove() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.screen.Clear()
	c.lines = 0
	c.screen.Show()
}

// Attach routes flap keys to q.
func (c *Console) Attach(q *loop.FlapQueue) { c.queue.Store(q) }

// Detach stops routing flap keys.
func (c *Console) Detach() { c.queue.Store(nil) }

// SetEnabled hides the cursor while a widget runs and parks it below the
// last frame afterwards.
func (c *Console) SetEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if enabled {
		c.screen.ShowCursor(0, c.lines)
	} else {
		c.screen.HideCursor()
	}
	c.screen.Show()
}

// Close restores the terminal. Safe to call more than once.
func (c *Console) Close() {
	c.closeOnce.Do(c.screen.Fini)
}
