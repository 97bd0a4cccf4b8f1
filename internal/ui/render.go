package ui

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"

	"github.com/zhubert/parley/internal/chat"
)

// highlightCode applies syntax highlighting to code using chroma
func highlightCode(code, language string) string {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Analyse(code)
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get(CurrentTheme().CodeStyle)
	if style == nil {
		style = styles.Fallback
	}

	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code)
	if err != nil {
		return code
	}

	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return code
	}

	return strings.TrimRight(buf.String(), "\n")
}

// renderText renders message text wrapped to width. Fenced code blocks are
// highlighted and left unwrapped.
func renderText(text string, width int) string {
	if width <= 0 {
		width = DefaultWrapWidth
	}

	var out []string
	var code strings.Builder
	inCode := false
	lang := ""

	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "```") {
			if !inCode {
				inCode = true
				lang = strings.TrimSpace(strings.TrimPrefix(line, "```"))
				code.Reset()
			} else {
				inCode = false
				out = append(out, highlightCode(code.String(), lang))
			}
			continue
		}
		if inCode {
			if code.Len() > 0 {
				code.WriteString("\n")
			}
			code.WriteString(line)
			continue
		}
		out = append(out, BubbleTextStyle.Render(ansi.Wordwrap(line, width, "")))
	}

	// Unterminated fence: show what we have
	if inCode {
		out = append(out, highlightCode(code.String(), lang))
	}

	return strings.Join(out, "\n")
}

// categoryLabel names a merged run of n items of the given category.
func categoryLabel(cat chat.MergeCategory, n int) string {
	switch cat {
	case chat.CategoryMemberEvent:
		return pluralize(n, "group event", "group events")
	case chat.CategoryDeleted:
		return pluralize(n, "deleted message", "deleted messages")
	case chat.CategoryModerated:
		return pluralize(n, "moderated message", "moderated messages")
	case chat.CategoryChatFeature:
		return pluralize(n, "chat update", "chat updates")
	default:
		return pluralize(n, "event", "events")
	}
}

// collapsedSummary is the single line standing for a collapsed run. It
// lists the member texts after the count and is truncated to width.
func collapsedSummary(run []chat.Item, cat chat.MergeCategory, width int) string {
	texts := make([]string, 0, len(run))
	for _, it := range run {
		if it.Text != "" {
			texts = append(texts, it.Text)
		}
	}
	s := "▸ " + categoryLabel(cat, len(run))
	if len(texts) > 0 {
		s += ": " + strings.Join(texts, ", ")
	}
	return runewidth.Truncate(s, max(width, 1), "…")
}

// avatar renders the initial of a member as a fixed-width badge.
func avatar(m *chat.Member) string {
	initial := "?"
	if m != nil && m.DisplayName != "" {
		// first grapheme, so combining marks stay with their letter
		initial, _, _, _ = uniseg.FirstGraphemeClusterInString(strings.ToUpper(m.DisplayName), -1)
	}
	badge := AvatarStyle.Render(" " + initial + " ")
	return badge + strings.Repeat(" ", max(AvatarWidth-ansi.StringWidth(badge), 0))
}

func pluralize(n int, one, many string) string {
	if n == 1 {
		return "1 " + one
	}
	return fmt.Sprintf("%d %s", n, many)
}
