package wizard

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Previous key.Binding
	Next     key.Binding
	Select   key.Binding
	Export   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Previous: key.NewBinding(key.WithKeys("up", "left", "k", "h"), key.WithHelp("↑/←", "previous")),
		Next:     key.NewBinding(key.WithKeys("down", "right", "j", "l"), key.WithHelp("↓/→", "next")),
		Select:   key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "choose")),
		Export:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "download my responses")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Previous, k.Next, k.Select, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Export}}
}

func (k keyMap) finishedHelp() []key.Binding {
	return []key.Binding{k.Export, k.Quit}
}
