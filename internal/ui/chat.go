package ui

import (
	"log/slog"
	"strings"

	"charm.land/bubbles/v2/viewport"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/clipboard"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/sections"
)

// ToggleRevealMsg asks the owner of the session to expand or collapse the
// merged run containing ItemID.
type ToggleRevealMsg struct {
	ItemID chat.ItemID
}

// LoadOlderMsg asks the owner of the session to load history above the
// oldest loaded item.
type LoadOlderMsg struct{}

// CopiedMsg reports the result of copying a row to the clipboard.
type CopiedMsg struct {
	Text string
	Err  error
}

// copyText is swapped out in tests.
var copyText = clipboard.WriteText

// ChatView renders a section list as a scrollable column of chat rows with
// a cursor.
type ChatView struct {
	viewport viewport.Model
	width    int
	height   int

	hasChat bool
	group   bool

	list sections.List
	rows []sections.Row

	// bodies caches the rendered rows without the cursor gutter
	bodies  []string
	offsets []int
	heights []int

	cursor       int
	follow       bool
	loadingOlder bool

	log *slog.Logger
}

// NewChatView creates an empty chat view
func NewChatView() *ChatView {
	vp := viewport.New()
	vp.MouseWheelEnabled = true
	vp.MouseWheelDelta = 3

	return &ChatView{
		viewport: vp,
		follow:   true,
		log:      logger.WithComponent("ui.chat"),
	}
}

// SetSize sets the view dimensions
func (c *ChatView) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.viewport.SetWidth(width)
	c.viewport.SetHeight(max(height, 1))
	c.renderAll()
}

// SetChat switches the view to an open chat. The cursor follows the
// bottom until the user moves it.
func (c *ChatView) SetChat(info chat.Info) {
	c.hasChat = true
	c.group = info.Type == chat.Group
	c.list = nil
	c.rows = nil
	c.cursor = 0
	c.follow = true
	c.loadingOlder = false
	c.renderAll()
}

// ClearChat shows the no-chat placeholder
func (c *ChatView) ClearChat() {
	c.hasChat = false
	c.list = nil
	c.rows = nil
	c.cursor = 0
	c.renderAll()
}

// SetSections replaces the rendered list. The cursor stays on the same
// item when it is still shown, or on the newest row while following.
func (c *ChatView) SetSections(list sections.List) {
	selected, hadSelection := c.Selected()

	c.list = list
	c.rows = list.Rows()

	switch {
	case len(c.rows) == 0:
		c.cursor = 0
	case c.follow:
		c.cursor = len(c.rows) - 1
	case hadSelection:
		c.cursor = c.rowOf(selected.Item.ID)
	}
	c.cursor = min(max(c.cursor, 0), max(len(c.rows)-1, 0))
	c.renderAll()
}

// rowOf returns the row showing id. Positions advance once per row, so a
// collapsed run's members all map to the run's row.
func (c *ChatView) rowOf(id chat.ItemID) int {
	if pos, ok := c.list.ItemPosition(id); ok && pos < len(c.rows) {
		return pos
	}
	return c.cursor
}

// FocusItem moves the cursor onto the row showing id and stops following
// unless that row is the newest. It reports whether id is shown.
func (c *ChatView) FocusItem(id chat.ItemID) bool {
	pos, ok := c.list.ItemPosition(id)
	if !ok || pos >= len(c.rows) {
		return false
	}
	c.cursor = pos
	c.follow = c.AtBottom()
	c.compose()
	return true
}

// SetLoadingOlder shows or hides the loading indicator above the rows
func (c *ChatView) SetLoadingOlder(loading bool) {
	if c.loadingOlder == loading {
		return
	}
	c.loadingOlder = loading
	c.compose()
}

// IsLoadingOlder reports whether older history is being fetched
func (c *ChatView) IsLoadingOlder() bool {
	return c.loadingOlder
}

// RowCount returns the number of visible rows
func (c *ChatView) RowCount() int {
	return len(c.rows)
}

// Cursor returns the index of the selected row
func (c *ChatView) Cursor() int {
	return c.cursor
}

// Selected returns the row under the cursor
func (c *ChatView) Selected() (sections.Row, bool) {
	if c.cursor < 0 || c.cursor >= len(c.rows) {
		return sections.Row{}, false
	}
	return c.rows[c.cursor], true
}

// AtBottom reports whether the cursor is on the newest row
func (c *ChatView) AtBottom() bool {
	return len(c.rows) == 0 || c.cursor == len(c.rows)-1
}

// MoveCursor moves the cursor by delta rows, clamped to the list
func (c *ChatView) MoveCursor(delta int) {
	if len(c.rows) == 0 {
		return
	}
	c.cursor = min(max(c.cursor+delta, 0), len(c.rows)-1)
	c.follow = c.AtBottom()
	c.compose()
}

// GotoBottom selects the newest row and follows new items again
func (c *ChatView) GotoBottom() {
	c.cursor = max(len(c.rows)-1, 0)
	c.follow = true
	c.compose()
}

// GotoTop selects the oldest loaded row
func (c *ChatView) GotoTop() {
	c.cursor = 0
	c.follow = c.AtBottom()
	c.compose()
}

// Update handles key and mouse input
func (c *ChatView) Update(msg tea.Msg) (*ChatView, tea.Cmd) {
	key, isKey := msg.(tea.KeyPressMsg)
	if !isKey {
		var cmd tea.Cmd
		c.viewport, cmd = c.viewport.Update(msg)
		return c, cmd
	}
	if !c.hasChat {
		return c, nil
	}

	k := key.String()
	page := max(c.height/3, 1)

	switch {
	case keys.CursorUp.Matches(k):
		if c.cursor == 0 {
			return c, c.requestOlder()
		}
		c.MoveCursor(-1)
	case keys.CursorDown.Matches(k):
		c.MoveCursor(1)
	case keys.Older.Matches(k):
		if c.cursor == 0 {
			return c, c.requestOlder()
		}
		c.MoveCursor(-page)
	case keys.Newer.Matches(k):
		c.MoveCursor(page)
	case keys.Top.Matches(k):
		c.GotoTop()
	case keys.Bottom.Matches(k):
		c.GotoBottom()
	case keys.Reveal.Matches(k):
		if row, ok := c.Selected(); ok && row.Item.Mergeable() {
			id := row.Item.ID
			return c, func() tea.Msg { return ToggleRevealMsg{ItemID: id} }
		}
	case keys.Copy.Matches(k):
		return c, c.copySelected()
	}
	return c, nil
}

func (c *ChatView) requestOlder() tea.Cmd {
	if c.loadingOlder || len(c.rows) == 0 {
		return nil
	}
	c.SetLoadingOlder(true)
	return func() tea.Msg { return LoadOlderMsg{} }
}

// SelectedText returns the text a copy of the selected row yields. A
// collapsed run copies every member, one per line.
func (c *ChatView) SelectedText() string {
	row, ok := c.Selected()
	if !ok {
		return ""
	}
	if !row.Collapsed() {
		return row.Item.Text
	}
	run := c.list[row.Section].Runs[row.Run]
	texts := make([]string, len(run.Items))
	for i, it := range run.Items {
		texts[i] = it.Text
	}
	return strings.Join(texts, "\n")
}

func (c *ChatView) copySelected() tea.Cmd {
	text := c.SelectedText()
	if text == "" {
		return nil
	}
	return func() tea.Msg {
		return CopiedMsg{Text: text, Err: copyText(text)}
	}
}

// renderAll re-renders every row body, then composes the viewport.
func (c *ChatView) renderAll() {
	c.bodies = make([]string, len(c.rows))
	for i := range c.rows {
		c.bodies[i] = c.renderRow(i)
	}
	c.compose()
}

func (c *ChatView) rowWidth() int {
	w := c.width
	if w <= 0 {
		w = DefaultWrapWidth
	}
	return max(w-GutterWidth, 1)
}

// renderRow renders row i without the cursor gutter.
func (c *ChatView) renderRow(i int) string {
	row := c.rows[i]
	width := c.rowWidth()

	var parts []string
	if i > 0 && c.rows[i-1].Section != row.Section {
		parts = append(parts, c.sectionBreak(width))
	}

	switch {
	case row.Collapsed():
		run := c.list[row.Section].Runs[row.Run]
		parts = append(parts, CollapsedStyle.Render(collapsedSummary(run.Items, run.Category, width)))
	case row.Item.Mergeable():
		parts = append(parts, EventStyle.Render(runewidth.Truncate("· "+row.Item.Text, width, "…")))
	default:
		parts = append(parts, c.renderMessage(row, width))
	}
	return strings.Join(parts, "\n")
}

// sectionBreak marks a gap between two loaded regions of history.
func (c *ChatView) sectionBreak(width int) string {
	label := " ··· "
	fill := max((width-ansi.StringWidth(label))/2, 0)
	rule := strings.Repeat("┄", fill)
	return SectionRuleStyle.Render(rule + label + rule)
}

func (c *ChatView) renderMessage(row sections.Row, width int) string {
	shape := ShapeFor(c.list, row)

	indent := 0
	if c.group && !shape.Sent {
		indent = AvatarWidth
	}
	maxBubble := GetViewContext().BubbleMaxWidth(width + GutterWidth)
	text := renderText(row.Item.Text, max(min(maxBubble, width-indent)-BubbleChrome, 1))
	if shape.TailVisible && !row.Item.SentAt.IsZero() {
		text += "\n" + TimestampStyle.Render(row.Item.SentAt.Local().Format("15:04"))
	}
	bubble := shape.Render(text)

	if shape.Sent {
		return lipgloss.PlaceHorizontal(width, lipgloss.Right, bubble)
	}
	if indent == 0 {
		return bubble
	}

	blank := strings.Repeat(" ", indent)
	lines := strings.Split(bubble, "\n")
	for j := range lines {
		prefix := blank
		if j == 0 && row.ShowAvatar {
			prefix = avatar(row.Item.Dir.Member)
		}
		lines[j] = prefix + lines[j]
	}
	out := strings.Join(lines, "\n")
	if row.ShowAvatar && row.Item.Dir.Member != nil {
		out = blank + MemberNameStyle.Render(row.Item.Dir.Member.DisplayName) + "\n" + out
	}
	return out
}

// compose joins the cached bodies with the cursor gutter and keeps the
// cursor in view.
func (c *ChatView) compose() {
	if !c.hasChat {
		c.viewport.SetContent(EmptyStyle.Render("No chat open. Run parley with a history file."))
		return
	}
	if len(c.rows) == 0 {
		c.viewport.SetContent(EmptyStyle.Render("No messages yet."))
		return
	}

	var sb strings.Builder
	line := 0
	if c.loadingOlder {
		sb.WriteString(StatusStyle.Render("loading older messages…"))
		sb.WriteString("\n")
		line++
	}

	c.offsets = make([]int, len(c.bodies))
	c.heights = make([]int, len(c.bodies))
	for i, body := range c.bodies {
		gutter := strings.Repeat(" ", GutterWidth)
		if i == c.cursor {
			gutter = CursorStyle.Render("▌ ")
		}
		lines := strings.Split(body, "\n")
		c.offsets[i] = line
		c.heights[i] = len(lines)
		for j, l := range lines {
			if i > 0 || j > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(gutter)
			sb.WriteString(l)
		}
		line += len(lines)
	}

	c.viewport.SetContent(sb.String())
	c.scrollToCursor()
}

func (c *ChatView) scrollToCursor() {
	if c.follow {
		c.viewport.GotoBottom()
		return
	}
	if c.cursor >= len(c.offsets) {
		return
	}
	top := c.offsets[c.cursor]
	bottom := top + c.heights[c.cursor]
	switch {
	case top < c.viewport.YOffset():
		c.viewport.SetYOffset(top)
	case bottom > c.viewport.YOffset()+c.viewport.Height():
		c.viewport.SetYOffset(min(bottom-c.viewport.Height(), top))
	}
}

// View renders the chat view
func (c *ChatView) View() string {
	return c.viewport.View()
}
