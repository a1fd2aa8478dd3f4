package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Today    key.Binding
	Tides    key.Binding
	DialPrev key.Binding
	DialNext key.Binding
	Refresh  key.Binding
	Theme    key.Binding
	Help     key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Today: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "today"),
		),
		Tides: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "tide chart"),
		),
		DialPrev: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "dial"),
		),
		DialNext: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "levels"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Today, k.Tides, k.Refresh, k.Theme, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Today, k.Tides},
		{k.DialPrev, k.DialNext},
		{k.Refresh, k.Theme},
		{k.Help, k.Quit},
	}
}
