package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	page Page

	Quit    key.Binding
	Help    key.Binding
	Home    key.Binding
	About   key.Binding
	Play    key.Binding
	Contact key.Binding
	Goto    key.Binding
	Back    key.Binding
	Theme   key.Binding

	// home
	Prev key.Binding
	Next key.Binding
	Open key.Binding

	// play
	Forward key.Binding
	Reverse key.Binding
	Left    key.Binding
	Right   key.Binding
	Reset   key.Binding
	Vectors key.Binding
	ZoomIn  key.Binding
	ZoomOut key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Home:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "projects")),
		About:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "about")),
		Play:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "play")),
		Contact: key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "contact")),
		Goto:    key.NewBinding(key.WithKeys("/", ":"), key.WithHelp("/", "go to path")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "home")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),

		Prev: key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "previous")),
		Next: key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next")),
		Open: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open project")),

		Forward: key.NewBinding(key.WithKeys("up", "w"), key.WithHelp("↑/w", "forward")),
		Reverse: key.NewBinding(key.WithKeys("down", "s"), key.WithHelp("↓/s", "reverse")),
		Left:    key.NewBinding(key.WithKeys("left", "a"), key.WithHelp("←/a", "left")),
		Right:   key.NewBinding(key.WithKeys("right", "d"), key.WithHelp("→/d", "right")),
		Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Vectors: key.NewBinding(key.WithKeys("v"), key.WithHelp("v", "vectors")),
		ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+/-", "zoom")),
		ZoomOut: key.NewBinding(key.WithKeys("-", "_")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	switch k.page {
	case PageHome:
		return []key.Binding{k.Prev, k.Next, k.Open, k.About, k.Play, k.Help, k.Quit}
	case PagePlay:
		return []key.Binding{k.Forward, k.Left, k.Right, k.Reset, k.Back, k.Help, k.Quit}
	}
	return []key.Binding{k.Home, k.About, k.Play, k.Back, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	nav := []key.Binding{k.Home, k.About, k.Play, k.Contact, k.Goto, k.Back, k.Theme, k.Quit}
	switch k.page {
	case PageHome:
		return [][]key.Binding{{k.Prev, k.Next, k.Open}, nav}
	case PagePlay:
		return [][]key.Binding{{k.Forward, k.Reverse, k.Left, k.Right}, {k.Reset, k.Vectors, k.ZoomIn}, nav}
	}
	return [][]key.Binding{nav}
}
