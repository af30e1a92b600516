package input

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds every key binding of the interactive screen
type KeyMap struct {
	Up        key.Binding
	Down      key.Binding
	NextField key.Binding
	PrevField key.Binding
	Toggle    key.Binding
	Run       key.Binding

	SelectAll   key.Binding
	ClearAll    key.Binding
	SelectNonOK key.Binding

	KeepLocal  key.Binding
	KeepRemote key.Binding

	Sync      key.Binding
	Push      key.Binding
	Pull      key.Binding
	Status    key.Binding
	Untracked key.Binding

	RefreshLocal key.Binding
	RefreshFetch key.Binding
	RefreshBoth  key.Binding

	RestoreSymlinks key.Binding
	Help            key.Binding
	Quit            key.Binding
}

// DefaultKeyMap returns the standard bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up:        key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "up")),
		Down:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "down")),
		NextField: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
		PrevField: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous field")),
		Toggle:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
		Run:       key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run")),

		SelectAll:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "all")),
		ClearAll:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "none")),
		SelectNonOK: key.NewBinding(key.WithKeys("k"), key.WithHelp("k", "non-OK")),

		KeepLocal:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "keep local")),
		KeepRemote: key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "keep remote")),

		Sync:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sync")),
		Push:      key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "push")),
		Pull:      key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "pull")),
		Status:    key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "status")),
		Untracked: key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "untracked")),

		RefreshLocal: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
		RefreshFetch: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "fetch")),
		RefreshBoth:  key.NewBinding(key.WithKeys("R"), key.WithHelp("R", "refresh all")),

		RestoreSymlinks: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "symlinks")),
		Help:            key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:            key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextField, k.Toggle, k.Run, k.RefreshLocal, k.RefreshFetch, k.Help, k.Quit}
}

// ShortcutHelp lists the single-letter shortcuts for the second help line
func (k KeyMap) ShortcutHelp() []key.Binding {
	return []key.Binding{k.SelectAll, k.ClearAll, k.SelectNonOK, k.KeepLocal, k.KeepRemote,
		k.Sync, k.Push, k.Pull, k.Status, k.Untracked}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextField, k.PrevField, k.Toggle, k.Run},
		{k.SelectAll, k.ClearAll, k.SelectNonOK, k.KeepLocal, k.KeepRemote},
		{k.Sync, k.Push, k.Pull, k.Status, k.Untracked},
		{k.RefreshLocal, k.RefreshFetch, k.RefreshBoth, k.RestoreSymlinks, k.Help, k.Quit},
	}
}
