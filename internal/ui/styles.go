package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Color palette, regenerated from the current theme
var (
	ColorPrimary     color.Color = lipgloss.Color("#7C3AED")
	ColorSecondary   color.Color = lipgloss.Color("#06B6D4")
	ColorBorder      color.Color = lipgloss.Color("#374151")
	ColorBg          color.Color = lipgloss.Color("#1F2937")
	ColorSelected    color.Color = lipgloss.Color("#312E81")
	ColorText        color.Color = lipgloss.Color("#F9FAFB")
	ColorTextMuted   color.Color = lipgloss.Color("#9CA3AF")
	ColorTextInverse color.Color = lipgloss.Color("#1F2937")
	ColorSent        color.Color = lipgloss.Color("#A78BFA")
	ColorReceived    color.Color = lipgloss.Color("#22D3EE")
	ColorMember      color.Color = lipgloss.Color("#F59E0B")
	ColorEvent       color.Color = lipgloss.Color("#6B7280")
	ColorError       color.Color = lipgloss.Color("#EF4444")
)

// Header and footer styles
var (
	HeaderStyle     lipgloss.Style
	FooterStyle     lipgloss.Style
	FooterKeyStyle  lipgloss.Style
	FooterDescStyle lipgloss.Style
	FooterSepStyle  lipgloss.Style
)

// Chat styles
var (
	BubbleTextStyle  lipgloss.Style
	TimestampStyle   lipgloss.Style
	AvatarStyle      lipgloss.Style
	MemberNameStyle  lipgloss.Style
	EventStyle       lipgloss.Style
	CollapsedStyle   lipgloss.Style
	CursorStyle      lipgloss.Style
	SectionRuleStyle lipgloss.Style
	EmptyStyle       lipgloss.Style
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
)

func init() {
	buildStyles()
}

// buildStyles derives every style from the color palette.
func buildStyles() {
	HeaderStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorText).
		Background(ColorPrimary).
		Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1)

	FooterKeyStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorSecondary)

	FooterDescStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted)

	FooterSepStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	BubbleTextStyle = lipgloss.NewStyle().
		Foreground(ColorText)

	TimestampStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Faint(true)

	AvatarStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextInverse).
		Background(ColorMember)

	MemberNameStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorMember)

	EventStyle = lipgloss.NewStyle().
		Foreground(ColorEvent).
		Italic(true)

	CollapsedStyle = lipgloss.NewStyle().
		Foreground(ColorEvent).
		Bold(true)

	CursorStyle = lipgloss.NewStyle().
		Foreground(ColorPrimary).
		Bold(true)

	SectionRuleStyle = lipgloss.NewStyle().
		Foreground(ColorBorder)

	EmptyStyle = lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Italic(true)

	StatusStyle = lipgloss.NewStyle().
		Foreground(ColorSecondary).
		Italic(true)

	StatusErrorStyle = lipgloss.NewStyle().
		Foreground(ColorError).
		Bold(true)
}

// bubbleBorderColor returns the border color of a bubble.
func bubbleBorderColor(sent bool) color.Color {
	if sent {
		return ColorSent
	}
	return ColorReceived
}
