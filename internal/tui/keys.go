package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the key bindings of the game screen
type KeyMap struct {
	Up    key.Binding
	Down  key.Binding
	Left  key.Binding
	Right key.Binding

	Reveal key.Binding
	Flag   key.Binding
	Chord  key.Binding

	NewGame      key.Binding
	Beginner     key.Binding
	Intermediate key.Binding
	Expert       key.Binding

	Scores    key.Binding
	Help      key.Binding
	Quit      key.Binding
	ForceQuit key.Binding

	// name prompt
	Confirm key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:           key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:         key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "left")),
		Right:        key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "right")),
		Reveal:       key.NewBinding(key.WithKeys(" ", "space", "enter"), key.WithHelp("space", "reveal")),
		Flag:         key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "flag")),
		Chord:        key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "chord")),
		NewGame:      key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new game")),
		Beginner:     key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "beginner")),
		Intermediate: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "intermediate")),
		Expert:       key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "expert")),
		Scores:       key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "scores")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
		Confirm:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
		Cancel:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "skip")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Reveal, k.Flag, k.NewGame, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Reveal, k.Flag, k.Chord},
		{k.NewGame, k.Beginner, k.Intermediate, k.Expert},
		{k.Scores, k.Help, k.Quit},
	}
}
