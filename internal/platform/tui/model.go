package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/flappyshell/internal/core"
	"github.com/vovakirdan/flappyshell/internal/loop"
	"github.com/vovakirdan/flappyshell/internal/registry"
)

const (
	promptPrefix = "$ "
	maxHistory   = 200
)

var (
	echoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// ShellOptions configures a shell model.
type ShellOptions struct {
	Runtime core.RuntimeConfig
	Logger  *log.Logger

	// Autorun is executed as a command line as soon as the shell starts.
	Autorun string

	// ExitAfterRun quits the shell once the first widget finishes.
	ExitAfterRun bool

	// OnStep observes every widget tick (sound cues).
	OnStep func(core.StepResult)
}

// Model is the Bubble Tea model of the shell. It owns a command prompt and,
// while a widget runs, the widget's display area.
type Model struct {
	ctx     context.Context
	stop    context.CancelFunc
	opts    ShellOptions
	logger  *log.Logger
	events  chan tea.Msg
	input   *keyInput
	prompt  textinput.Model
	keys    KeyMap
	help    help.Model
	history []string

	frame   string       // Current widget frame, empty when no display
	palette core.Palette // Palette of the running widget
	running bool
	cancel  context.CancelFunc // Cancels the running widget
	result  *loop.Result       // Result of the last finished widget
	width   int

	quitting bool
}

// NewModel creates a shell bound to ctx. Canceling ctx stops any running
// widget and unblocks host event delivery.
func NewModel(ctx context.Context, opts ShellOptions) Model {
	if opts.Runtime.TickRate == 0 {
		opts.Runtime.TickRate = core.DefaultConfig().TickRate
	}
	// Seed 0 is kept so each launch gets its own time-based seed from the factory

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ti := textinput.New()
	ti.Prompt = promptPrefix
	ti.Placeholder = "type help"
	ti.CharLimit = 256
	ti.Focus()

	shellCtx, stop := context.WithCancel(ctx)

	return Model{
		ctx:    shellCtx,
		stop:   stop,
		opts:   opts,
		logger: logger,
		events: make(chan tea.Msg, 16),
		input:  &keyInput{},
		prompt: ti,
		keys:   DefaultKeyMap().widgetMode(false),
		help:   help.New(),
	}
}

// Init starts listening for host events and runs the autorun command.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{listen(m.ctx, m.events), textinput.Blink}
	if m.opts.Autorun != "" {
		line := m.opts.Autorun
		cmds = append(cmds, func() tea.Msg { return runCommandMsg(line) })
	}
	return tea.Batch(cmds...)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case runCommandMsg:
		return m.execute(string(msg))

	case frameMsg:
		m.frame = string(msg)
		return m, listen(m.ctx, m.events)

	case displayRemovedMsg:
		m.frame = ""
		return m, listen(m.ctx, m.events)

	case promptToggleMsg:
		var cmd tea.Cmd
		if msg {
			cmd = m.prompt.Focus()
		} else {
			m.prompt.Blur()
		}
		return m, tea.Batch(cmd, listen(m.ctx, m.events))

	case widgetDoneMsg:
		return m.handleWidgetDone(msg)
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.Quit) {
		return m.quit()
	}

	// While a widget runs keystrokes belong to it, never to the prompt
	if m.running {
		if key.Matches(msg, m.keys.Flap) {
			m.input.flap()
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Submit):
		line := m.prompt.Value()
		m.prompt.SetValue("")
		return m.execute(line)
	case key.Matches(msg, m.keys.Clear):
		m.history = nil
		return m, nil
	}

	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

// execute runs a shell command line.
func (m Model) execute(line string) (tea.Model, tea.Cmd) {
	line = strings.TrimSpace(line)
	m.print(echoStyle.Render(promptPrefix + line))

	fields := strings.Fields(line)
	if len(fields) == 0 {
		return m, nil
	}

	switch name := fields[0]; name {
	case "help":
		m.print(helpText())
	case "clear":
		m.history = nil
	case "exit", "quit":
		return m.quit()
	default:
		if !registry.Exists(name) {
			m.print(errorStyle.Render("command not found: " + name))
			return m, nil
		}
		return m.launch(name)
	}
	return m, nil
}

// launch creates a widget and starts its loop on a separate goroutine.
func (m Model) launch(id string) (tea.Model, tea.Cmd) {
	if m.running {
		return m, nil
	}

	game, err := registry.Create(id, m.opts.Runtime)
	if err != nil {
		m.print(errorStyle.Render(err.Error()))
		return m, nil
	}

	ch := hostChannel{ctx: m.ctx, events: m.events}
	cfg := loop.ConfigFrom(m.opts.Runtime)
	cfg.Logger = m.logger
	cfg.OnStep = m.opts.OnStep

	ctrl, err := loop.New(game, loop.Host{
		Display: teaDisplay{ch},
		Input:   m.input,
		Toggle:  promptToggle{ch},
	}, cfg)
	if err != nil {
		m.print(errorStyle.Render(err.Error()))
		return m, nil
	}

	runCtx, cancel := context.WithCancel(m.ctx)
	m.cancel = cancel
	m.running = true
	m.palette = game.Palette()
	m.keys = m.keys.widgetMode(true)

	return m, func() tea.Msg {
		defer cancel()
		res, runErr := ctrl.Run(runCtx)
		return widgetDoneMsg{id: id, result: res, err: runErr}
	}
}

// handleWidgetDone prints the widget result and returns control to the prompt.
func (m Model) handleWidgetDone(msg widgetDoneMsg) (tea.Model, tea.Cmd) {
	m.running = false
	m.cancel = nil
	m.frame = ""
	m.keys = m.keys.widgetMode(false)
	res := msg.result
	m.result = &res

	switch {
	case msg.err != nil && !errors.Is(msg.err, context.Canceled):
		m.print(errorStyle.Render(fmt.Sprintf("%s: %v", msg.id, msg.err)))
	default:
		m.print(fmt.Sprintf("Final Score: %d", res.Score))
	}

	if m.opts.ExitAfterRun {
		return m.quit()
	}
	// The toggle normally refocuses the prompt; make sure it is usable either way
	return m, m.prompt.Focus()
}

// quit stops any running widget and exits the program.
func (m Model) quit() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}
	m.stop()
	m.quitting = true
	return m, tea.Quit
}

func (m *Model) print(text string) {
	m.history = append(m.history, strings.Split(text, "\n")...)
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

// helpText lists the built-in commands and registered widgets.
func helpText() string {
	var sb strings.Builder
	sb.WriteString("Commands:\n")
	for _, line := range WidgetLines() {
		sb.WriteString(line + "\n")
	}
	sb.WriteString("  help     Show this help\n")
	sb.WriteString("  clear    Clear the screen\n")
	sb.WriteString("  exit     Leave the shell")
	return sb.String()
}

// WidgetLines returns one indented "id  title" line per registered widget,
// in the layout the shell help uses.
func WidgetLines() []string {
	infos := registry.List()
	lines := make([]string, 0, len(infos))
	for _, info := range infos {
		lines = append(lines, fmt.Sprintf("  %-8s %s", info.ID, info.Title))
	}
	return lines
}

// Result returns the result of the last finished widget, if any.
func (m Model) Result() *loop.Result {
	return m.result
}

// Running reports whether a widget is on screen.
func (m Model) Running() bool {
	return m.running
}

// View renders the shell.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	if len(m.history) > 0 {
		sb.WriteString(strings.Join(m.history, "\n"))
		sb.WriteRune('\n')
	}
	if m.frame != "" {
		sb.WriteString(StyleFrame(m.frame, m.palette))
		sb.WriteRune('\n')
	}
	if !m.running {
		sb.WriteString(m.prompt.View())
		sb.WriteRune('\n')
	}
	sb.WriteString(m.help.View(m.keys))
	return sb.String()
}

// Run starts a Bubble Tea program for the shell and returns the result of
// the last widget that finished, or nil if none ran.
func Run(ctx context.Context, opts ShellOptions) (*loop.Result, error) {
	p := tea.NewProgram(
		NewModel(ctx, opts),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return nil, err
	}
	if m, ok := final.(Model); ok {
		return m.Result(), nil
	}
	return nil, nil
}
