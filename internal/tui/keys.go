package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Home      key.Binding
	Record    key.Binding
	Insights  key.Binding
	Reports   key.Binding
	Settings  key.Binding
	Toggle    key.Binding
	Generate  key.Binding
	CustomGen key.Binding
	Share     key.Binding
	Refresh   key.Binding
	Export    key.Binding
	Sync      key.Binding
	Up        key.Binding
	Down      key.Binding
	Enter     key.Binding
	Back      key.Binding
	Tab       key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var keys = newKeyMap()

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Tab, k.Toggle, k.Generate, k.Export, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Home, k.Record, k.Insights, k.Reports, k.Settings},
		{k.Toggle, k.Generate, k.Share, k.Refresh},
		{k.Export, k.Sync, k.Up, k.Down, k.Enter},
		{k.Tab, k.Back, k.Help, k.Quit},
	}
}

func newKeyMap() keyMap {
	return keyMap{
		Home: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "home"),
		),
		Record: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "record"),
		),
		Insights: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "insights"),
		),
		Reports: key.NewBinding(
			key.WithKeys("4"),
			key.WithHelp("4", "reports"),
		),
		Settings: key.NewBinding(
			key.WithKeys("5"),
			key.WithHelp("5", "settings"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "s"),
			key.WithHelp("space", "start/stop"),
		),
		Generate: key.NewBinding(
			key.WithKeys("g"),
			key.WithHelp("g", "generate"),
		),
		CustomGen: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "custom range"),
		),
		Share: key.NewBinding(
			key.WithKeys("h"),
			key.WithHelp("h", "share"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Export: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "export"),
		),
		Sync: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "sync"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "select"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "back"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
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
