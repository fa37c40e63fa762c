// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines all keybindings for the search screen.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Search dispatches the current query immediately.
	Search key.Binding

	// Clear empties the query and results.
	Clear key.Binding

	// NextTab and PrevTab cycle the category filter.
	NextTab key.Binding
	PrevTab key.Binding

	// Up and Down move the result selection.
	Up   key.Binding
	Down key.Binding

	// Open launches the selected result in the browser.
	Open key.Binding
}

// DefaultKeyMap returns the default keybindings.
// Letter keys are not bound for navigation; they belong to the search box.
func DefaultKeyMap() *KeyMap {
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
		Search: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "search"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next tab"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("shift+tab", "prev tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "ctrl+p"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "ctrl+n"),
			key.WithHelp("↓", "down"),
		),
		Open: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "open"),
		),
	}
}

// ShortHelp returns the hints shown before any results exist.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Clear, k.Quit}
}

// ResultsHelp returns the hints shown alongside results.
func (k *KeyMap) ResultsHelp() []key.Binding {
	return []key.Binding{k.Up, k.Open, k.NextTab, k.Clear, k.Quit}
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
