package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up         key.Binding
	down       key.Binding
	enter      key.Binding
	back       key.Binding
	mode       key.Binding
	chords     key.Binding
	position   key.Binding
	instrument key.Binding
	quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:       key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:       key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		mode:       key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "toggle html/text")),
		chords:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "toggle chords")),
		position:   key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "cycle panel position")),
		instrument: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "pick instrument")),
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.mode, k.chords, k.position, k.instrument, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.mode, k.chords, k.position},
		{k.instrument, k.up, k.down},
		{k.enter, k.back, k.quit},
	}
}
