package watch

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	NextFile  key.Binding
	PrevFile  key.Binding
	Down      key.Binding
	Up        key.Binding
	NextState key.Binding
	List      key.Binding
	Refresh   key.Binding
	Help      key.Binding
	Quit      key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		NextFile:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next file")),
		PrevFile:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev file")),
		Down:      key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "scroll down")),
		Up:        key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "scroll up")),
		NextState: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "next state")),
		List:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "toggle hotpoints")),
		Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// bindings in help order
func (k keyMap) bindings() []key.Binding {
	return []key.Binding{k.NextFile, k.PrevFile, k.Down, k.Up, k.NextState, k.List, k.Refresh, k.Help, k.Quit}
}
