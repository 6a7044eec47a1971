package tui

import "github.com/charmbracelet/bubbles/key"

// Keymap contains all key bindings for the list screen.
type Keymap struct {
	// Navigation
	Up       key.Binding
	Down     key.Binding
	PrevPage key.Binding
	NextPage key.Binding

	// View state
	CycleFilter   key.Binding
	CycleCategory key.Binding
	CycleSort     key.Binding

	// Todo actions
	Add    key.Binding
	Edit   key.Binding
	Toggle key.Binding
	Delete key.Binding
	Copy   key.Binding

	// Other
	Journal key.Binding
	Refresh key.Binding
	Theme   key.Binding
	Help    key.Binding
	Back    key.Binding
	Quit    key.Binding
}

// DefaultKeymap returns the key bindings. With vim set, hjkl move as well
// as the arrow keys.
func DefaultKeymap(vim bool) Keymap {
	upKeys, downKeys := []string{"up"}, []string{"down"}
	prevKeys, nextKeys := []string{"left", "pgup"}, []string{"right", "pgdown"}
	if vim {
		upKeys = append(upKeys, "k")
		downKeys = append(downKeys, "j")
		prevKeys = append(prevKeys, "h")
		nextKeys = append(nextKeys, "l")
	}
	return Keymap{
		Up:       key.NewBinding(key.WithKeys(upKeys...), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys(downKeys...), key.WithHelp("↓/j", "down")),
		PrevPage: key.NewBinding(key.WithKeys(prevKeys...), key.WithHelp("←/h", "prev page")),
		NextPage: key.NewBinding(key.WithKeys(nextKeys...), key.WithHelp("→/l", "next page")),

		CycleFilter:   key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		CycleCategory: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "category")),
		CycleSort:     key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),

		Add:    key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:   key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Toggle: key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "done")),
		Delete: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		Copy:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),

		Journal: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "journal")),
		Refresh: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		Theme:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "theme")),
		Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k Keymap) ShortHelp() []key.Binding {
	return []key.Binding{k.Add, k.Toggle, k.CycleFilter, k.CycleCategory, k.CycleSort, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k Keymap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PrevPage, k.NextPage},
		{k.CycleFilter, k.CycleCategory, k.CycleSort},
		{k.Add, k.Edit, k.Toggle, k.Delete, k.Copy},
		{k.Journal, k.Refresh, k.Theme, k.Help, k.Quit},
	}
}
