package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the key bindings of the item grid.
type KeyMap struct {
	// Browsing.
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Add    key.Binding
	Edit   key.Binding
	Open   key.Binding // Enter: add on the "+" cell, edit on a card.
	Remove key.Binding
	Undo   key.Binding

	// Editing.
	NextField key.Binding
	PrevField key.Binding
	Submit    key.Binding // Next field, or save on the last one.
	Save      key.Binding

	Quit      key.Binding
	ForceQuit key.Binding
}

var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Left: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "left"),
	),
	Right: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "right"),
	),
	Add: key.NewBinding(
		key.WithKeys("a", "+"),
		key.WithHelp("a", "add"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	Open: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Remove: key.NewBinding(
		key.WithKeys("x", "d", "delete"),
		key.WithHelp("x", "remove"),
	),
	Undo: key.NewBinding(
		key.WithKeys("u"),
		key.WithHelp("u", "undo"),
	),
	NextField: key.NewBinding(
		key.WithKeys("tab", "down"),
		key.WithHelp("tab", "next field"),
	),
	PrevField: key.NewBinding(
		key.WithKeys("shift+tab", "up"),
		key.WithHelp("S-tab", "prev field"),
	),
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "next/save"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("C-s", "save"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "esc"),
		key.WithHelp("q", "quit"),
	),
	ForceQuit: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("C-c", "quit"),
	),
}

// browseHelp and editHelp adapt the key map to bubbles/help per mode.
type browseHelp struct{ k KeyMap }

func (h browseHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.Add, h.k.Edit, h.k.Remove, h.k.Undo, h.k.Quit}
}

func (h browseHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{h.k.Up, h.k.Down, h.k.Left, h.k.Right},
		{h.k.Add, h.k.Edit, h.k.Open, h.k.Remove, h.k.Undo},
		{h.k.Quit},
	}
}

type editHelp struct{ k KeyMap }

func (h editHelp) ShortHelp() []key.Binding {
	return []key.Binding{h.k.NextField, h.k.PrevField, h.k.Submit, h.k.Save, h.k.ForceQuit}
}

func (h editHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{h.ShortHelp()}
}
