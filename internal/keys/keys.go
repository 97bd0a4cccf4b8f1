// Package keys provides string constants for Bubble Tea v2 key press events
// and the bindings of the chat view.
//
// The constants are derived from tea.KeyPressMsg{Code: tea.KeyXxx}.String()
// so they always match the runtime values.
package keys

import (
	"slices"

	tea "charm.land/bubbletea/v2"
)

// Navigation keys
var (
	Up     = tea.KeyPressMsg{Code: tea.KeyUp}.String()     // "up"
	Down   = tea.KeyPressMsg{Code: tea.KeyDown}.String()   // "down"
	Home   = tea.KeyPressMsg{Code: tea.KeyHome}.String()   // "home"
	End    = tea.KeyPressMsg{Code: tea.KeyEnd}.String()    // "end"
	PgUp   = tea.KeyPressMsg{Code: tea.KeyPgUp}.String()   // "pgup"
	PgDown = tea.KeyPressMsg{Code: tea.KeyPgDown}.String() // "pgdown"
)

// Action keys
var (
	Enter  = tea.KeyPressMsg{Code: tea.KeyEnter}.String()  // "enter"
	Space  = tea.KeyPressMsg{Code: tea.KeySpace}.String()  // "space"
	Escape = tea.KeyPressMsg{Code: tea.KeyEscape}.String() // "esc"
)

// Ctrl combinations
var (
	CtrlC = (tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}).String() // "ctrl+c"
	CtrlR = (tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}).String() // "ctrl+r"
)

// Binding is a named set of keys triggering one chat view action.
type Binding struct {
	Keys []string
	Help string
}

// Matches reports whether key triggers b.
func (b Binding) Matches(key string) bool {
	return slices.Contains(b.Keys, key)
}

// Chat view bindings.
var (
	CursorUp   = Binding{Keys: []string{Up, "k"}, Help: "up"}
	CursorDown = Binding{Keys: []string{Down, "j"}, Help: "down"}
	Reveal     = Binding{Keys: []string{Enter, Space}, Help: "expand/collapse"}
	Copy       = Binding{Keys: []string{"y"}, Help: "copy"}
	Bottom     = Binding{Keys: []string{"b", End}, Help: "bottom"}
	Top        = Binding{Keys: []string{"g", Home}, Help: "top"}
	Older      = Binding{Keys: []string{PgUp}, Help: "older"}
	Newer      = Binding{Keys: []string{PgDown}, Help: "newer"}
	Refresh    = Binding{Keys: []string{CtrlR}, Help: "refresh"}
	Quit       = Binding{Keys: []string{CtrlC, "q"}, Help: "quit"}
)
