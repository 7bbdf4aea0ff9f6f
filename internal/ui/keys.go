package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit       key.Binding
	Submit     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	Left       key.Binding
	Right      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding
	OpenChat   key.Binding
	CloseChat  key.Binding
	Skip       key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Submit:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
		NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Left:       key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "previous")),
		Right:      key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next")),
		ScrollUp:   key.NewBinding(key.WithKeys("up", "pgup"), key.WithHelp("↑", "scroll")),
		ScrollDown: key.NewBinding(key.WithKeys("down", "pgdown"), key.WithHelp("↓", "scroll")),
		OpenChat:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "chat with movie bot")),
		CloseChat:  key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close chat")),
		Skip:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "skip typing")),
	}
}

// helpLine renders the bindings as "key: desc • key: desc".
func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += " • "
		}
		h := b.Help()
		out += h.Key + ": " + h.Desc
	}
	return out
}
