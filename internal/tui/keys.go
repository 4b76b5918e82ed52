package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Execute    key.Binding
	Status     key.Binding
	Cache      key.Binding
	ClearCache key.Binding
	Compose    key.Binding
	Dismiss    key.Binding
	DismissAll key.Binding
	Theme      key.Binding
	Help       key.Binding
	Quit       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Execute: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "run snippet"),
		),
		Status: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "status"),
		),
		Cache: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "cache stats"),
		),
		ClearCache: key.NewBinding(
			key.WithKeys("C"),
			key.WithHelp("C", "clear cache"),
		),
		Compose: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "notify"),
		),
		Dismiss: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "dismiss"),
		),
		DismissAll: key.NewBinding(
			key.WithKeys("D"),
			key.WithHelp("D", "dismiss all"),
		),
		Theme: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "theme"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Execute, k.Status, k.Compose, k.Dismiss, k.Theme, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Execute, k.Status, k.Cache, k.ClearCache},
		{k.Compose, k.Dismiss, k.DismissAll},
		{k.Theme, k.Help, k.Quit},
	}
}
