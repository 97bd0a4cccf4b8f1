package ui

import (
	"charm.land/lipgloss/v2"
	"github.com/zhubert/parley/internal/sections"
)

// BubbleShape is everything the bubble outline depends on: which side the
// bubble sits on and whether it ends in a tail. A tail closes a block of
// consecutive items from one sender.
type BubbleShape struct {
	Sent        bool
	TailVisible bool
}

// ShapeFor computes the bubble shape of a row. The tail is visible when no
// item is shown after the row, or the next shown item comes from another
// sender or is an event.
func ShapeFor(list sections.List, row sections.Row) BubbleShape {
	shape := BubbleShape{Sent: row.Item.Dir.IsSent()}
	next, ok := list.NextShown(row.Section, row.Run, row.Index)
	shape.TailVisible = !ok || next.Mergeable() || !next.Dir.SameSender(row.Item.Dir)
	return shape
}

// Border returns the bubble outline. The corner on the sender's side is
// squared off when the tail is visible.
func (s BubbleShape) Border() lipgloss.Border {
	b := lipgloss.RoundedBorder()
	if !s.TailVisible {
		return b
	}
	if s.Sent {
		b.BottomRight = "┘"
	} else {
		b.BottomLeft = "└"
	}
	return b
}

// Render draws content inside the bubble, sized to the content.
func (s BubbleShape) Render(content string) string {
	return lipgloss.NewStyle().
		Border(s.Border()).
		BorderForeground(bubbleBorderColor(s.Sent)).
		Padding(0, 1).
		Render(content)
}
