package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/kyaoi/mdslides/internal/slides"
)

// KeyMap defines the presenter keybindings and feeds the help overlay.
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	First      key.Binding
	Last       key.Binding
	Jump       key.Binding
	AutoPlay   key.Binding
	Stop       key.Binding
	Theme      key.Binding
	Copy       key.Binding
	Search     key.Binding
	NextMatch  key.Binding
	PrevMatch  key.Binding
	ScrollDown key.Binding
	ScrollUp   key.Binding
	Help       key.Binding
	Quit       key.Binding
}

// DefaultKeyMap returns a KeyMap with default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("j", "down", "pgdown", " "),
			key.WithHelp("↓/j/space", "next slide"),
		),
		Prev: key.NewBinding(
			key.WithKeys("k", "up", "pgup"),
			key.WithHelp("↑/k", "previous slide"),
		),
		First: key.NewBinding(
			key.WithKeys("home", "g"),
			key.WithHelp("home/g", "first slide"),
		),
		Last: key.NewBinding(
			key.WithKeys("end", "G"),
			key.WithHelp("end/G", "last slide"),
		),
		Jump: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"),
			key.WithHelp("1-9", "jump to slide"),
		),
		AutoPlay: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle auto-play"),
		),
		Stop: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop auto-play"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "toggle dark/light"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy slide markdown"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search slides"),
		),
		NextMatch: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		PrevMatch: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "previous match"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("ctrl+d", "ctrl+j"),
			key.WithHelp("ctrl+d", "scroll slide down"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("ctrl+u", "ctrl+k"),
			key.WithHelp("ctrl+u", "scroll slide up"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q/ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.AutoPlay, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.First, k.Last, k.Jump},
		{k.AutoPlay, k.Stop, k.Search, k.NextMatch, k.PrevMatch},
		{k.ScrollDown, k.ScrollUp, k.Theme, k.Copy, k.Help, k.Quit},
	}
}

// navKey translates a terminal key to the controller key its binding
// stands for.
func (k KeyMap) navKey(msg tea.KeyMsg) (slides.Key, bool) {
	switch {
	case key.Matches(msg, k.Next):
		return slides.KeyDown, true
	case key.Matches(msg, k.Prev):
		return slides.KeyUp, true
	case key.Matches(msg, k.First):
		return slides.KeyHome, true
	case key.Matches(msg, k.Last):
		return slides.KeyEnd, true
	case key.Matches(msg, k.Stop):
		return slides.KeyEscape, true
	default:
		return slides.KeyUnknown, false
	}
}
