package app

import (
	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/ui"
)

// ShowFlash displays a flash message in the footer and starts the expiry
// timer
func (m *Model) ShowFlash(text string, flashType ui.FlashType) tea.Cmd {
	m.footer.SetFlash(text, flashType)
	return ui.FlashTick()
}

// ShowFlashError displays an error flash message
func (m *Model) ShowFlashError(text string) tea.Cmd {
	m.log.Warn("flash error", "text", text)
	return m.ShowFlash(text, ui.FlashError)
}

// ShowFlashSuccess displays a success flash message
func (m *Model) ShowFlashSuccess(text string) tea.Cmd {
	return m.ShowFlash(text, ui.FlashSuccess)
}
