package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	like     key.Binding
	skip     key.Binding
	matches  key.Binding
	discover key.Binding
	profile  key.Binding
	delete   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		like:     key.NewBinding(key.WithKeys("l", "right"), key.WithHelp("l/→", "like")),
		skip:     key.NewBinding(key.WithKeys("s", "left"), key.WithHelp("s/←", "skip")),
		matches:  key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "matches")),
		discover: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "discover")),
		profile:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "profile")),
		delete:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "unmatch")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.like, k.skip, k.enter},
		{k.matches, k.discover, k.profile},
		{k.back, k.delete, k.quit},
	}
}
