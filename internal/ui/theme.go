package ui

import "charm.land/lipgloss/v2"

// Theme defines the color palette of the chat view.
type Theme struct {
	// Name is the display name of the theme
	Name string

	// Primary is the main accent color (header, cursor)
	Primary string
	// Secondary is used for key hints and links
	Secondary string

	// Background colors
	Bg         string // Main background
	BgSelected string // Cursor row background (defaults to Primary if empty)

	// Text colors
	Text        string // Primary text
	TextMuted   string // Timestamps, events, hints
	TextInverse string // Text on colored backgrounds

	// Bubble colors
	Sent     string // Border of own messages
	Received string // Border of incoming messages
	Member   string // Avatar and member names
	Event    string // Merged events and collapsed runs

	Error  string
	Border string

	// CodeStyle is the chroma style used for code fences
	CodeStyle string
}

// GetBgSelected returns the selected background color, defaulting to Primary
func (t Theme) GetBgSelected() string {
	if t.BgSelected != "" {
		return t.BgSelected
	}
	return t.Primary
}

// ThemeName is a type for theme identifiers
type ThemeName string

// Available theme names
const (
	ThemeDarkPurple ThemeName = "dark-purple"
	ThemeNord       ThemeName = "nord"
	ThemeDracula    ThemeName = "dracula"
	ThemeGruvbox    ThemeName = "gruvbox"
	ThemeLight      ThemeName = "light"
)

// DefaultTheme is the default theme name
const DefaultTheme = ThemeDarkPurple

// BuiltinThemes contains all built-in themes
var BuiltinThemes = map[ThemeName]Theme{
	ThemeDarkPurple: {
		Name:        "Dark Purple",
		Primary:     "#7C3AED",
		Secondary:   "#06B6D4",
		Bg:          "#1F2937",
		BgSelected:  "#312E81",
		Text:        "#F9FAFB",
		TextMuted:   "#9CA3AF",
		TextInverse: "#1F2937",
		Sent:        "#A78BFA",
		Received:    "#22D3EE",
		Member:      "#F59E0B",
		Event:       "#6B7280",
		Error:       "#EF4444",
		Border:      "#374151",
		CodeStyle:   "monokai",
	},
	ThemeNord: {
		Name:        "Nord",
		Primary:     "#88C0D0",
		Secondary:   "#81A1C1",
		Bg:          "#2E3440",
		BgSelected:  "#3B4252",
		Text:        "#ECEFF4",
		TextMuted:   "#D8DEE9",
		TextInverse: "#2E3440",
		Sent:        "#A3BE8C",
		Received:    "#88C0D0",
		Member:      "#EBCB8B",
		Event:       "#4C566A",
		Error:       "#BF616A",
		Border:      "#4C566A",
		CodeStyle:   "nord",
	},
	ThemeDracula: {
		Name:        "Dracula",
		Primary:     "#BD93F9",
		Secondary:   "#8BE9FD",
		Bg:          "#282A36",
		Text:        "#F8F8F2",
		TextMuted:   "#6272A4",
		TextInverse: "#282A36",
		Sent:        "#FF79C6",
		Received:    "#8BE9FD",
		Member:      "#FFB86C",
		Event:       "#6272A4",
		Error:       "#FF5555",
		Border:      "#44475A",
		CodeStyle:   "dracula",
	},
	ThemeGruvbox: {
		Name:        "Gruvbox Dark",
		Primary:     "#FE8019",
		Secondary:   "#83A598",
		Bg:          "#282828",
		Text:        "#EBDBB2",
		TextMuted:   "#A89984",
		TextInverse: "#282828",
		Sent:        "#FABD2F",
		Received:    "#83A598",
		Member:      "#D3869B",
		Event:       "#665C54",
		Error:       "#FB4934",
		Border:      "#504945",
		CodeStyle:   "gruvbox",
	},
	ThemeLight: {
		Name:        "Light",
		Primary:     "#6366F1",
		Secondary:   "#0891B2",
		Bg:          "#FFFFFF",
		BgSelected:  "#E0E7FF",
		Text:        "#1F2937",
		TextMuted:   "#6B7280",
		TextInverse: "#FFFFFF",
		Sent:        "#7C3AED",
		Received:    "#0891B2",
		Member:      "#D97706",
		Event:       "#9CA3AF",
		Error:       "#DC2626",
		Border:      "#D1D5DB",
		CodeStyle:   "github",
	},
}

// ThemeNames returns a list of all available theme names in display order
func ThemeNames() []ThemeName {
	return []ThemeName{
		ThemeDarkPurple,
		ThemeNord,
		ThemeDracula,
		ThemeGruvbox,
		ThemeLight,
	}
}

// GetTheme returns a theme by name, defaulting to DarkPurple if not found
func GetTheme(name ThemeName) Theme {
	if theme, ok := BuiltinThemes[name]; ok {
		return theme
	}
	return BuiltinThemes[DefaultTheme]
}

// currentTheme holds the active theme
var currentTheme = BuiltinThemes[DefaultTheme]

// CurrentTheme returns the currently active theme
func CurrentTheme() Theme {
	return currentTheme
}

// SetTheme sets the active theme and regenerates all styles
func SetTheme(name ThemeName) {
	currentTheme = GetTheme(name)
	regenerateStyles()
}

// SetThemeByName sets the active theme by string name
func SetThemeByName(name string) {
	SetTheme(ThemeName(name))
}

// CurrentThemeName returns the name of the current theme
func CurrentThemeName() ThemeName {
	for name, theme := range BuiltinThemes {
		if theme.Name == currentTheme.Name {
			return name
		}
	}
	return DefaultTheme
}

// regenerateStyles updates all style variables based on the current theme
func regenerateStyles() {
	t := currentTheme

	ColorPrimary = lipgloss.Color(t.Primary)
	ColorSecondary = lipgloss.Color(t.Secondary)
	ColorBorder = lipgloss.Color(t.Border)
	ColorBg = lipgloss.Color(t.Bg)
	ColorSelected = lipgloss.Color(t.GetBgSelected())
	ColorText = lipgloss.Color(t.Text)
	ColorTextMuted = lipgloss.Color(t.TextMuted)
	ColorTextInverse = lipgloss.Color(t.TextInverse)
	ColorSent = lipgloss.Color(t.Sent)
	ColorReceived = lipgloss.Color(t.Received)
	ColorMember = lipgloss.Color(t.Member)
	ColorEvent = lipgloss.Color(t.Event)
	ColorError = lipgloss.Color(t.Error)

	buildStyles()
}
