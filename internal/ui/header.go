package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"
)

// Header represents the top header bar
type Header struct {
	width    int
	chatName string
	status   string
}

// NewHeader creates a new header
func NewHeader() *Header {
	return &Header{}
}

// SetWidth sets the header width
func (h *Header) SetWidth(width int) {
	h.width = width
}

// SetChatName sets the open chat's name
func (h *Header) SetChatName(name string) {
	h.chatName = name
}

// SetStatus sets the muted status shown after the chat name, such as the
// number of loaded items
func (h *Header) SetStatus(status string) {
	h.status = status
}

// View renders the header
func (h *Header) View() string {
	titleText := " parley"
	var rightText string
	if h.chatName != "" {
		rightText = h.chatName
		if h.status != "" {
			rightText += " · " + h.status
		}
		rightText += " "
	}

	paddingLen := max(h.width-runewidth.StringWidth(titleText)-runewidth.StringWidth(rightText), 0)
	fullContent := titleText + strings.Repeat(" ", paddingLen) + rightText

	mutedFrom := -1
	if h.status != "" {
		mutedFrom = len([]rune(fullContent)) - len([]rune(h.status)) - 1
	}
	return h.renderGradient(fullContent, mutedFrom)
}

// parseHexColor parses a hex color string (e.g., "#7C3AED") into RGB components
func parseHexColor(hex string) (r, g, b int) {
	if len(hex) == 7 && hex[0] == '#' {
		fmt.Sscanf(hex[1:], "%02x%02x%02x", &r, &g, &b)
	}
	return
}

// renderGradient renders the content on a gradient fading from the primary
// color into the background. Runes from mutedFrom on use the muted color.
func (h *Header) renderGradient(content string, mutedFrom int) string {
	if len(content) == 0 {
		return ""
	}

	theme := CurrentTheme()
	startR, startG, startB := parseHexColor(theme.Primary)
	endR, endG, endB := parseHexColor(theme.Bg)
	textColor := lipgloss.Color(theme.Text)
	mutedColor := lipgloss.Color(theme.TextMuted)

	runes := []rune(content)
	width := len(runes)
	var result strings.Builder

	for i, r := range runes {
		t := float64(i) / float64(width)
		cr := int(float64(startR)*(1-t) + float64(endR)*t)
		cg := int(float64(startG)*(1-t) + float64(endG)*t)
		cb := int(float64(startB)*(1-t) + float64(endB)*t)

		style := lipgloss.NewStyle().
			Background(lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", cr, cg, cb))).
			Bold(i < 7) // " parley"

		if mutedFrom >= 0 && i >= mutedFrom {
			style = style.Foreground(mutedColor)
		} else {
			style = style.Foreground(textColor)
		}

		result.WriteString(style.Render(string(r)))
	}

	return result.String()
}
