package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	QuitIdle      key.Binding
	NextView      key.Binding
	ShowStopwatch key.Binding
	ShowConverter key.Binding

	Toggle key.Binding
	Reset  key.Binding

	NextField key.Binding
	PrevField key.Binding
	Prev      key.Binding
	Next      key.Binding
	Swap      key.Binding
	SwapAny   key.Binding
	Convert   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("ctrl+c", "esc"), key.WithHelp("esc", "quit")),
		QuitIdle:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
		NextView:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "next view")),
		ShowStopwatch: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "stopwatch")),
		ShowConverter: key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "converter")),

		Toggle: key.NewBinding(key.WithKeys(" ", "space", "s"), key.WithHelp("space", "start/pause")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),

		NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "prev field")),
		Prev:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev currency")),
		Next:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next currency")),
		Swap:      key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "swap")),
		SwapAny:   key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "swap")),
		Convert:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "convert")),
	}
}

// stopwatchHelp and converterHelp scope the help line to the active view.
type stopwatchHelp struct{ keyMap }

func (k stopwatchHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Reset, k.ShowConverter, k.QuitIdle}
}

func (k stopwatchHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.NextView, k.Quit}}
}

type converterHelp struct{ keyMap }

func (k converterHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Prev, k.Next, k.SwapAny, k.Convert, k.NextView, k.Quit}
}

func (k converterHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PrevField, k.Swap, k.ShowStopwatch, k.QuitIdle}}
}
