package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap lists the browse-view bindings. Plain runes are reserved for the
// search input, so every action binding is a control chord or special key.
type keyMap struct {
	Run       key.Binding
	CopyWith  key.Binding
	YankRaw   key.Binding
	TreeView  key.Binding
	Vaults    key.Binding
	Globals   key.Binding
	Add       key.Binding
	NextCat   key.Binding
	PrevCat   key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	Clear     key.Binding
	Quit      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Run: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run"),
		),
		CopyWith: key.NewBinding(
			key.WithKeys("ctrl+o"),
			key.WithHelp("ctrl+o", "copy"),
		),
		YankRaw: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "yank raw"),
		),
		TreeView: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "tree"),
		),
		Vaults: key.NewBinding(
			key.WithKeys("ctrl+p"),
			key.WithHelp("ctrl+p", "vaults"),
		),
		Globals: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "globals"),
		),
		Add: key.NewBinding(
			key.WithKeys("ctrl+a"),
			key.WithHelp("ctrl+a", "add"),
		),
		NextCat: key.NewBinding(
			key.WithKeys("right", "tab"),
			key.WithHelp("→", "next tag"),
		),
		PrevCat: key.NewBinding(
			key.WithKeys("left", "shift+tab"),
			key.WithHelp("←", "prev tag"),
		),
		Up: key.NewBinding(
			key.WithKeys("up"),
			key.WithHelp("↑", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down"),
			key.WithHelp("↓", "down"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "clear/quit"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Run, k.CopyWith, k.YankRaw, k.TreeView, k.Vaults, k.Globals, k.Add, k.Clear}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Run, k.CopyWith, k.YankRaw},
		{k.TreeView, k.Vaults, k.Globals, k.Add},
		{k.NextCat, k.PrevCat, k.Up, k.Down},
		{k.Clear, k.Quit},
	}
}
