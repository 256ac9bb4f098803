// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the TUI.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help shows the help view.
	Help key.Binding

	// Back leaves help or cancels a field edit.
	Back key.Binding

	// Up moves to the previous field or row.
	Up key.Binding

	// Down moves to the next field or row.
	Down key.Binding

	// Left moves to the previous option in a grading row.
	Left key.Binding

	// Right moves to the next option in a grading row.
	Right key.Binding

	// Activate edits the focused field or presses the focused button.
	Activate key.Binding

	// AddRow appends a row to the grid.
	AddRow key.Binding

	// AddCell appends a cell to the focused row.
	AddCell key.Binding

	// Delete removes the focused cell, or the focused row outside a cell.
	Delete key.Binding

	// Toggle checks the focused option.
	Toggle key.Binding

	// Clear unchecks the focused row.
	Clear key.Binding

	// Submit writes the serialized field.
	Submit key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k", "shift+tab"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "tab"),
			key.WithHelp("↓/j", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev option"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next option"),
		),
		Activate: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "edit/press"),
		),
		AddRow: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add row"),
		),
		AddCell: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "add cell"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d", "delete"),
			key.WithHelp("d", "delete"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "space", "enter"),
			key.WithHelp("space", "select"),
		),
		Clear: key.NewBinding(
			key.WithKeys("backspace", "x"),
			key.WithHelp("x", "clear row"),
		),
		Submit: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
	}
}

// ShortHelp returns a short list of keybindings for the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Quit, k.Help}
}

// EditorHelp returns keybindings for the grid editor.
func (k *KeyMap) EditorHelp() []key.Binding {
	return []key.Binding{k.Activate, k.AddRow, k.AddCell, k.Delete, k.Submit, k.Quit}
}

// EditingHelp returns keybindings while a field is being edited.
func (k *KeyMap) EditingHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "apply")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// GraderHelp returns keybindings for the grading sheet.
func (k *KeyMap) GraderHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Toggle, k.Clear, k.Submit, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Activate, k.AddRow, k.AddCell, k.Delete},
		{k.Toggle, k.Clear, k.Submit},
		{k.Help, k.Back, k.Quit},
	}
}

// Matches checks if a key string matches a binding.
func Matches(keyStr string, binding key.Binding) bool {
	for _, k := range binding.Keys() {
		if k == keyStr {
			return true
		}
	}
	return false
}
