package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines all keyboard shortcuts for the application.
// Each binding includes the actual keys and help text for display.
// Note: Related bindings (Up/Down) share identical help text
// since they appear as a single row in the help overlay.
type KeyMap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding

	// Focus
	Tab      key.Binding
	ShiftTab key.Binding

	// Actions
	Enter       key.Binding
	Back        key.Binding
	Copy        key.Binding
	AddLabel    key.Binding
	RemoveLabel key.Binding
	Post        key.Binding
	Help        key.Binding
	Quit        key.Binding
	ForceQuit   key.Binding

	// Color picker hue hotkeys
	HueRed    key.Binding
	HueOrange key.Binding
	HueYellow key.Binding
	HueGreen  key.Binding
	HueTeal   key.Binding
	HueBlue   key.Binding
	HuePurple key.Binding
	HueGray   key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/↓  j/k", "Move up/down"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↑/↓  j/k", "Move up/down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left"),
			key.WithHelp("←/→", "Change state filter"),
		),
		Right: key.NewBinding(
			key.WithKeys("right"),
			key.WithHelp("←/→", "Change state filter"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("PgUp  Ctrl+B", "Page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("PgDn  Ctrl+F", "Page down"),
		),

		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("⇥ (Tab)", "Next focus"),
		),
		ShiftTab: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("⇧⇥", "Previous focus"),
		),

		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("⏎ (Enter)", "Open / search / confirm"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("Esc", "Back / cancel"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "Copy issue URL"),
		),
		AddLabel: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "Add label"),
		),
		RemoveLabel: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "Remove label"),
		),
		Post: key.NewBinding(
			key.WithKeys("ctrl+s", "ctrl+enter"),
			key.WithHelp("Ctrl+S", "Post comment"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "Quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("Ctrl+C", "Quit"),
		),

		HueRed:    key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "Red")),
		HueOrange: key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "Orange")),
		HueYellow: key.NewBinding(key.WithKeys("Y"), key.WithHelp("Y", "Yellow")),
		HueGreen:  key.NewBinding(key.WithKeys("G"), key.WithHelp("G", "Green")),
		HueTeal:   key.NewBinding(key.WithKeys("T"), key.WithHelp("T", "Teal")),
		HueBlue:   key.NewBinding(key.WithKeys("B"), key.WithHelp("B", "Blue")),
		HuePurple: key.NewBinding(key.WithKeys("P"), key.WithHelp("P", "Purple")),
		HueGray:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "Gray")),
	}
}
