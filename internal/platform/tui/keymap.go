package tui

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the shell key bindings.
type KeyMap struct {
	Flap   key.Binding
	Submit key.Binding
	Clear  key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Flap, k.Clear, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Clear},
		{k.Flap, k.Quit},
	}
}

// DefaultKeyMap returns default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Flap: key.NewBinding(
			key.WithKeys(" ", "f", "F"),
			key.WithHelp("space/f", "flap"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run command"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// widgetMode switches the bindings shown and matched while a widget runs.
func (k KeyMap) widgetMode(running bool) KeyMap {
	k.Flap.SetEnabled(running)
	k.Submit.SetEnabled(!running)
	k.Clear.SetEnabled(!running)
	return k
}
