package bubbletea

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings for the analysis client.
type KeyMap struct {
	// Form
	NextField  key.Binding
	PrevField  key.Binding
	AddFile    key.Binding
	RemoveFile key.Binding
	Submit     key.Binding
	ShowResult key.Binding

	// Results
	Up           key.Binding
	Down         key.Binding
	HalfPageUp   key.Binding
	HalfPageDown key.Binding
	GotoTop      key.Binding
	GotoBottom   key.Binding
	NextPanel    key.Binding
	PrevPanel    key.Binding
	Toggle       key.Binding
	TogglePanel  key.Binding // Digits 1-8 address panels directly
	Copy         key.Binding
	Edit         key.Binding
	Resubmit     key.Binding
	Quit         key.Binding

	ForceQuit key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextField: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next field"),
		),
		PrevField: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "previous field"),
		),
		AddFile: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "add file"),
		),
		RemoveFile: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "remove last file"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "analyze"),
		),
		ShowResult: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "results"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "down"),
		),
		HalfPageUp: key.NewBinding(
			key.WithKeys("ctrl+u"),
			key.WithHelp("ctrl+u", "half page up"),
		),
		HalfPageDown: key.NewBinding(
			key.WithKeys("ctrl+d"),
			key.WithHelp("ctrl+d", "half page down"),
		),
		GotoTop: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("gg", "go to top"),
		),
		GotoBottom: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "go to bottom"),
		),
		NextPanel: key.NewBinding(
			key.WithKeys("tab", "n"),
			key.WithHelp("tab/n", "next panel"),
		),
		PrevPanel: key.NewBinding(
			key.WithKeys("shift+tab", "p"),
			key.WithHelp("shift+tab/p", "previous panel"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "enter"),
			key.WithHelp("space", "expand/collapse"),
		),
		TogglePanel: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8"),
			key.WithHelp("1-8", "toggle panel"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy report"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e", "esc"),
			key.WithHelp("e", "edit input"),
		),
		Resubmit: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "analyze again"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// formKeys is the help view of the form bindings.
type formKeys KeyMap

// ShortHelp implements help.KeyMap.
func (k formKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.AddFile, k.RemoveFile, k.Submit, k.ShowResult, k.ForceQuit}
}

// FullHelp implements help.KeyMap.
func (k formKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// resultKeys is the help view of the result bindings.
type resultKeys KeyMap

// ShortHelp implements help.KeyMap.
func (k resultKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Down, k.NextPanel, k.Toggle, k.TogglePanel, k.Copy, k.Edit, k.Resubmit, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k resultKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.HalfPageUp, k.HalfPageDown, k.GotoTop, k.GotoBottom},
		{k.NextPanel, k.PrevPanel, k.Toggle, k.TogglePanel},
		{k.Copy, k.Edit, k.Resubmit, k.Quit},
	}
}
