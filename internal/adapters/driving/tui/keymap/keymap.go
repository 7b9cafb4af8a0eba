// Package keymap defines keybindings for the TUI.
package keymap

import (
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines the keybindings handled by the TUI itself. Scrolling is
// left to the content viewport.
type KeyMap struct {
	// Quit exits the application.
	Quit key.Binding

	// Help toggles the help overlay.
	Help key.Binding

	// Refresh re-renders the content on the host.
	Refresh key.Binding

	// Reload re-reads the content without contacting the host.
	Reload key.Binding

	// Up and Down scroll the content.
	Up   key.Binding
	Down key.Binding
}

// DefaultKeyMap returns the default keybindings. refreshKey is the key
// the page's delegated refresh binding listens on.
func DefaultKeyMap(refreshKey string) *KeyMap {
	if refreshKey == "" {
		refreshKey = "ctrl+r"
	}
	return &KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Refresh: key.NewBinding(
			key.WithKeys(refreshKey),
			key.WithHelp(refreshKey, "refresh"),
		),
		Reload: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "reload"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
	}
}

// ShortHelp returns the bindings shown in the status bar.
func (k *KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Refresh, k.Help, k.Quit}
}

// FullHelp returns the full list of keybindings for the help view.
func (k *KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down},
		{k.Refresh, k.Reload},
		{k.Help, k.Quit},
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
