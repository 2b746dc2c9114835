package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/waterrun/internal/core"
)

// KeyMap holds every binding used by the start screen and the run view.
type KeyMap struct {
	Jump    key.Binding
	Deliver key.Binding
	Up      key.Binding
	Down    key.Binding
	Easy    key.Binding
	Normal  key.Binding
	Hard    key.Binding
	Start   key.Binding
	Restart key.Binding
	Board   key.Binding
	Back    key.Binding
	Mute    key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Jump: key.NewBinding(
			key.WithKeys(" ", "up", "w"),
			key.WithHelp("space/↑", "jump"),
		),
		Deliver: key.NewBinding(
			key.WithKeys("enter", "d"),
			key.WithHelp("enter/d/click", "deliver"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("↓/j", "down"),
		),
		Easy: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "easy"),
		),
		Normal: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "normal"),
		),
		Hard: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "hard"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "start"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "run again"),
		),
		Board: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "run board"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "menu"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// startKeys is the help view for the start screen.
type startKeys struct{ KeyMap }

func (k startKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Start, k.Board, k.Quit}
}

func (k startKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Easy, k.Normal, k.Hard},
		{k.Start, k.Board, k.Mute, k.Help, k.Quit},
	}
}

// runKeys is the help view while a run is live.
type runKeys struct{ KeyMap }

func (k runKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Jump, k.Deliver, k.Back, k.Quit}
}

func (k runKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Jump, k.Deliver, k.Mute},
		{k.Restart, k.Board, k.Back, k.Quit},
	}
}

// RunAction maps a key pressed during a live run to a game action.
// Returns core.ActionNone for keys the run ignores.
func (k KeyMap) RunAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Jump):
		return core.ActionJump
	case key.Matches(msg, k.Deliver):
		return core.ActionDeliver
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// OverAction maps a key pressed on the game-over screen.
func (k KeyMap) OverAction(msg tea.KeyMsg) core.Action {
	switch {
	case key.Matches(msg, k.Quit):
		return core.ActionQuit
	case key.Matches(msg, k.Restart):
		return core.ActionRestart
	case key.Matches(msg, k.Board):
		return core.ActionBoard
	case key.Matches(msg, k.Back):
		return core.ActionBack
	}
	return core.ActionNone
}

// MouseAction maps a mouse event to a game action. A left-button press is a
// pointer-down and delivers.
func MouseAction(msg tea.MouseMsg) core.Action {
	if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
		return core.ActionDeliver
	}
	return core.ActionNone
}
