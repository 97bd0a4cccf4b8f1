package ui

import (
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/keys"
)

// FlashType selects the icon and color of a flash message
type FlashType int

const (
	FlashInfo FlashType = iota
	FlashSuccess
	FlashWarning
	FlashError
)

// DefaultFlashDuration is how long a flash message stays visible
const DefaultFlashDuration = 3 * time.Second

// FlashMessage is a transient footer message
type FlashMessage struct {
	Text      string
	Type      FlashType
	CreatedAt time.Time
	Duration  time.Duration
}

// IsExpired reports whether the message has outlived its duration
func (f *FlashMessage) IsExpired() bool {
	return time.Since(f.CreatedAt) > f.Duration
}

// FlashTickMsg drives flash expiry
type FlashTickMsg time.Time

// FlashTick schedules the next flash expiry check
func FlashTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return FlashTickMsg(t)
	})
}

// KeyBinding represents a keyboard shortcut
type KeyBinding struct {
	Key  string
	Desc string
}

// Footer represents the bottom footer bar with keybindings
type Footer struct {
	width        int
	bindings     []KeyBinding
	hasChat      bool // Whether a chat is open
	atBottom     bool // Whether the cursor is on the newest row
	unseen       int  // New items that arrived while away from the bottom
	flashMessage *FlashMessage
}

func bindingOf(b keys.Binding) KeyBinding {
	return KeyBinding{Key: strings.Join(b.Keys, "/"), Desc: b.Help}
}

// NewFooter creates a new footer
func NewFooter() *Footer {
	return &Footer{
		bindings: []KeyBinding{
			{Key: "↑/↓", Desc: "move"},
			bindingOf(keys.Reveal),
			bindingOf(keys.Copy),
			bindingOf(keys.Older),
			bindingOf(keys.Bottom),
			bindingOf(keys.Quit),
		},
		atBottom: true,
	}
}

// SetContext updates the footer's context for conditional bindings
func (f *Footer) SetContext(hasChat, atBottom bool, unseen int) {
	f.hasChat = hasChat
	f.atBottom = atBottom
	f.unseen = unseen
}

// SetWidth sets the footer width
func (f *Footer) SetWidth(width int) {
	f.width = width
}

// SetBindings allows custom keybindings
func (f *Footer) SetBindings(bindings []KeyBinding) {
	f.bindings = bindings
}

// SetFlash shows a flash message for DefaultFlashDuration
func (f *Footer) SetFlash(text string, flashType FlashType) {
	f.SetFlashWithDuration(text, flashType, DefaultFlashDuration)
}

// SetFlashWithDuration shows a flash message for d
func (f *Footer) SetFlashWithDuration(text string, flashType FlashType, d time.Duration) {
	f.flashMessage = &FlashMessage{
		Text:      text,
		Type:      flashType,
		CreatedAt: time.Now(),
		Duration:  d,
	}
}

// ClearFlash removes the flash message
func (f *Footer) ClearFlash() {
	f.flashMessage = nil
}

// HasFlash reports whether a flash message is shown
func (f *Footer) HasFlash() bool {
	return f.flashMessage != nil
}

// ClearIfExpired removes an expired flash message and reports whether it did
func (f *Footer) ClearIfExpired() bool {
	if f.flashMessage != nil && f.flashMessage.IsExpired() {
		f.flashMessage = nil
		return true
	}
	return false
}

func flashIcon(t FlashType) string {
	switch t {
	case FlashSuccess:
		return "✓"
	case FlashWarning:
		return "⚠"
	case FlashError:
		return "✕"
	default:
		return "ℹ"
	}
}

// View renders the footer
func (f *Footer) View() string {
	if f.flashMessage != nil {
		style := StatusStyle
		if f.flashMessage.Type == FlashError {
			style = StatusErrorStyle
		}
		return FooterStyle.Width(f.width).Render(style.Render(flashIcon(f.flashMessage.Type) + " " + f.flashMessage.Text))
	}

	var parts []string
	if f.hasChat && !f.atBottom && f.unseen > 0 {
		parts = append(parts, StatusStyle.Render(pluralize(f.unseen, "new message", "new messages")))
	}
	for _, b := range f.bindings {
		// Chat-only bindings need an open chat
		if !f.hasChat && b.Desc != keys.Quit.Help {
			continue
		}
		// Jumping to the bottom is pointless when already there
		if f.atBottom && b.Desc == keys.Bottom.Help {
			continue
		}
		parts = append(parts, FooterKeyStyle.Render(b.Key)+FooterDescStyle.Render(": "+b.Desc))
	}

	content := strings.Join(parts, "  "+FooterSepStyle.Render("|")+"  ")
	return FooterStyle.Width(f.width).Render(content)
}
