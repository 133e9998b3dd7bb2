package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all key bindings
type keyMap struct {
	Up        key.Binding
	Down      key.Binding
	Top       key.Binding
	Bottom    key.Binding
	Enter     key.Binding
	Add       key.Binding
	Edit      key.Binding
	Star      key.Binding
	Delete    key.Binding
	DeleteAll key.Binding
	Search    key.Binding
	Group     key.Binding
	NextGroup key.Binding
	Help      key.Binding
	Quit      key.Binding
	Escape    key.Binding

	// Form and dialog navigation
	NextField key.Binding
	PrevField key.Binding
	Cycle     key.Binding
	Yes       key.Binding
	No        key.Binding
}

var keys = keyMap{
	Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Top:       key.NewBinding(key.WithKeys("home"), key.WithHelp("home", "top")),
	Bottom:    key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Enter:     key.NewBinding(key.WithKeys("enter", "v"), key.WithHelp("enter", "view")),
	Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add task")),
	Edit:      key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Star:      key.NewBinding(key.WithKeys("s", "f"), key.WithHelp("s", "star")),
	Delete:    key.NewBinding(key.WithKeys("d", "x"), key.WithHelp("d", "delete")),
	DeleteAll: key.NewBinding(key.WithKeys("D"), key.WithHelp("D", "delete all")),
	Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
	Group:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group by")),
	NextGroup: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next grouping")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Escape:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

	NextField: key.NewBinding(key.WithKeys("tab", "down"), key.WithHelp("tab", "next field")),
	PrevField: key.NewBinding(key.WithKeys("shift+tab", "up"), key.WithHelp("shift+tab", "previous field")),
	Cycle:     key.NewBinding(key.WithKeys("ctrl+p"), key.WithHelp("ctrl+p", "cycle priority")),
	Yes:       key.NewBinding(key.WithKeys("y", "Y", "enter"), key.WithHelp("y", "confirm")),
	No:        key.NewBinding(key.WithKeys("n", "N", "esc", "q"), key.WithHelp("n", "cancel")),
}
