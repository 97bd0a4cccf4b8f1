package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// PollTickMsg triggers a fetch of the newest page of the open chat
type PollTickMsg time.Time

// pollTick returns a command that sends a PollTickMsg after the configured
// interval
func (m *Model) pollTick() tea.Cmd {
	return tea.Tick(m.pollInterval(), func(t time.Time) tea.Msg {
		return PollTickMsg(t)
	})
}

// handlePoll advances the simulated feed, fetches the live tail and
// schedules the next poll. Polling stops once the chat is closed.
func (m *Model) handlePoll() tea.Cmd {
	info, ok := m.sess.ActiveChat()
	if !ok {
		return nil
	}
	if m.feed != nil {
		if n := m.feed.Step(); n > 0 {
			m.log.Debug("feed produced items", "chatID", info.ID, "count", n)
		}
	}
	return tea.Batch(
		m.bottom.Fetch(m.ctx, info, m.cfg.GetRemoteHostID()),
		m.pollTick(),
	)
}
