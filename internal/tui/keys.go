package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	TogglePositive,
	ToggleNegative,
	AutoScale,
	Limit,
	Trim,
	Reset,
	Stats,
	Export,
	Open,
	Help,
	Quit,
	Confirm,
	Cancel,
	Abort key.Binding
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Trim, k.Reset, k.Stats, k.Export, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.TogglePositive, k.ToggleNegative, k.AutoScale, k.Limit},
		{k.Trim, k.Reset, k.Stats, k.Export},
		{k.Open, k.Help, k.Quit},
	}
}

func defaultKeyMap() keyMap {
	return keyMap{
		TogglePositive: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "toggle positive"),
		),
		ToggleNegative: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "toggle negative"),
		),
		AutoScale: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "auto-scale"),
		),
		Limit: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "point limit"),
		),
		Trim: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "trim"),
		),
		Reset: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reset"),
		),
		Stats: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "statistics"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export .sub"),
		),
		Open: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open file"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "more keys"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("y", "Y"),
			key.WithHelp("y", "confirm"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("n", "N", "esc"),
			key.WithHelp("n", "cancel"),
		),
		Abort: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "abort"),
		),
	}
}
