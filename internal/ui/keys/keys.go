// Package keys defines keyboard shortcuts for the texrack picker.
package keys

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the picker shortcuts layered over the file browser's own keys.
type KeyMap struct {
	Quit       key.Binding
	SelectHere key.Binding
}

// DefaultKeyMap returns the default keyboard shortcuts.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "cancel"),
		),
		SelectHere: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "choose this folder"),
		),
	}
}

// ShortHelp returns the hints shown under the picker.
func (k KeyMap) ShortHelp(directory bool) []key.Binding {
	if directory {
		return []key.Binding{k.SelectHere, k.Quit}
	}
	return []key.Binding{k.Quit}
}
