package keys

import "testing"

// TestKeyStringValues verifies that all key constants produce the expected
// string representations. This acts as a safety net if Bubble Tea ever changes
// its key string format.
func TestKeyStringValues(t *testing.T) {
	tests := []struct {
		name     string
		got      string
		expected string
	}{
		// Navigation
		{"Up", Up, "up"},
		{"Down", Down, "down"},
		{"Home", Home, "home"},
		{"End", End, "end"},
		{"PgUp", PgUp, "pgup"},
		{"PgDown", PgDown, "pgdown"},

		// Actions
		{"Enter", Enter, "enter"},
		{"Space", Space, "space"},
		{"Escape", Escape, "esc"},

		// Ctrl combos
		{"CtrlC", CtrlC, "ctrl+c"},
		{"CtrlR", CtrlR, "ctrl+r"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("keys.%s = %q, want %q", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestBindingMatches(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		key     string
		want    bool
	}{
		{"reveal on enter", Reveal, "enter", true},
		{"reveal on space", Reveal, "space", true},
		{"copy on y", Copy, "y", true},
		{"bottom on end", Bottom, "end", true},
		{"bottom on b", Bottom, "b", true},
		{"older on pgup", Older, "pgup", true},
		{"quit on ctrl+c", Quit, "ctrl+c", true},
		{"copy ignores enter", Copy, "enter", false},
		{"empty key", CursorUp, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.binding.Matches(tt.key); got != tt.want {
				t.Errorf("Matches(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestBindingsDoNotOverlap(t *testing.T) {
	all := map[string]Binding{
		"CursorUp": CursorUp, "CursorDown": CursorDown, "Reveal": Reveal,
		"Copy": Copy, "Bottom": Bottom, "Top": Top, "Older": Older,
		"Newer": Newer, "Refresh": Refresh, "Quit": Quit,
	}
	seen := make(map[string]string)
	for name, b := range all {
		for _, k := range b.Keys {
			if other, ok := seen[k]; ok {
				t.Errorf("key %q bound to both %s and %s", k, other, name)
			}
			seen[k] = name
		}
	}
}
