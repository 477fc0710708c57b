// Package tui provides the Bubble Tea shell that hosts flappyshell widgets.
// It implements the loop's display, input and toggle collaborators on top of
// the Bubble Tea event loop.
package tui

import (
	"context"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/flappyshell/internal/loop"
)

// frameMsg carries one rendered widget frame.
type frameMsg string

// displayRemovedMsg is sent once the widget takes itself off screen.
type displayRemovedMsg struct{}

// promptToggleMsg enables or disables the command prompt.
type promptToggleMsg bool

// runCommandMsg asks the shell to execute a command line.
type runCommandMsg string

// widgetDoneMsg reports the end of a widget run.
type widgetDoneMsg struct {
	id     string
	result loop.Result
	err    error
}

// hostChannel forwards calls from the loop goroutine into the Bubble Tea
// program. Sends give up once the shell is gone.
type hostChannel struct {
	ctx    context.Context
	events chan<- tea.Msg
}

func (h hostChannel) send(msg tea.Msg) {
	select {
	case h.events <- msg:
	case <-h.ctx.Done():
	}
}

// teaDisplay is the loop.Display of the shell.
type teaDisplay struct{ hostChannel }

func (d teaDisplay) Show(text string) { d.send(frameMsg(text)) }
func (d teaDisplay) Remove()          { d.send(displayRemovedMsg{}) }

// promptToggle is the loop.UIToggle of the shell: the command prompt.
type promptToggle struct{ hostChannel }

func (p promptToggle) SetEnabled(enabled bool) { p.send(promptToggleMsg(enabled)) }

// keyInput is the loop.InputSource of the shell. The Bubble Tea update
// goroutine calls flap; the loop goroutine attaches and detaches.
type keyInput struct {
	queue atomic.Pointer[loop.FlapQueue]
}

func (k *keyInput) Attach(q *loop.FlapQueue) { k.queue.Store(q) }
func (k *keyInput) Detach()                  { k.queue.Store(nil) }

// flap requests a flap if a widget is listening.
func (k *keyInput) flap() bool {
	q := k.queue.Load()
	if q == nil {
		return false
	}
	q.Request()
	return true
}

// listen waits for the next host event. Re-issued after every event.
func listen(ctx context.Context, events <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-events:
			return msg
		case <-ctx.Done():
			return nil
		}
	}
}
