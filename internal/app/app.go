package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/loader"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/notification"
	"github.com/zhubert/parley/internal/session"
	"github.com/zhubert/parley/internal/ui"
)

// Model is the main Bubble Tea model. Update is the only place the session
// is mutated.
type Model struct {
	cfg     *config.Config
	archive *history.Archive

	sess   *session.Session
	bottom *loader.Bottom
	area   *loader.Area
	feed   *Feed

	header *ui.Header
	footer *ui.Footer
	chat   *ui.ChatView

	width  int
	height int

	// initialChat is the chat Init opens; empty means the first one
	initialChat string
	// unseen counts items that arrived while the cursor was away from the
	// bottom
	unseen int

	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
}

// Option configures a Model.
type Option func(*Model)

// WithChat makes Init open the chat with the given ID.
func WithChat(id string) Option {
	return func(m *Model) { m.initialChat = id }
}

// WithFeed simulates incoming traffic on every poll.
func WithFeed(f *Feed) Option {
	return func(m *Model) { m.feed = f }
}

// New creates a new app model serving chats from archive
func New(cfg *config.Config, archive *history.Archive, opts ...Option) *Model {
	if theme := cfg.GetTheme(); theme != "" {
		ui.SetThemeByName(theme)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m := &Model{
		cfg:     cfg,
		archive: archive,
		sess:    session.New(cfg.GetSectionCapacity()),
		bottom:  loader.NewBottom(archive, cfg.GetPageSize()),
		area:    loader.NewArea(archive, cfg.GetPageSize()),
		header:  ui.NewHeader(),
		footer:  ui.NewFooter(),
		chat:    ui.NewChatView(),
		ctx:     ctx,
		cancel:  cancel,
		log:     logger.WithComponent("app"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Session returns the session backing the open chat
func (m *Model) Session() *session.Session {
	return m.sess
}

// Unseen returns the number of items that arrived while scrolled up
func (m *Model) Unseen() int {
	return m.unseen
}

// Init opens the initial chat and starts polling
func (m *Model) Init() tea.Cmd {
	info, ok := m.initialChatInfo()
	if !ok {
		m.log.Warn("no chat to open", "requested", m.initialChat)
		return nil
	}
	return tea.Batch(m.OpenChat(info), m.pollTick())
}

func (m *Model) initialChatInfo() (chat.Info, bool) {
	chats := m.archive.Chats()
	if len(chats) == 0 {
		return chat.Info{}, false
	}
	if m.initialChat == "" {
		return chats[0], true
	}
	for _, c := range chats {
		if c.ID == m.initialChat {
			return c, true
		}
	}
	return chat.Info{}, false
}

// OpenChat switches to info and returns the command fetching its landing
// page. Pages still in flight for the previous chat become stale.
func (m *Model) OpenChat(info chat.Info) tea.Cmd {
	m.sess.Open(info)
	m.unseen = 0
	m.chat.SetChat(info)
	m.header.SetChatName(info.Name)
	m.updateStatus()

	return m.area.Landing(m.ctx, info, m.cfg.GetRemoteHostID(), m.cfg.GetLandingSection(), m.archive.Unread(info.ID))
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.updateSizes()

	case tea.KeyPressMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		var cmd tea.Cmd
		m.chat, cmd = m.chat.Update(msg)
		return m, cmd

	case loader.PageMsg:
		return m, m.handlePage(msg)

	case PollTickMsg:
		return m, m.handlePoll()

	case ui.ToggleRevealMsg:
		m.sess.ToggleReveal(msg.ItemID)
		m.chat.SetSections(m.sess.Sections())

	case ui.LoadOlderMsg:
		cmd := m.area.Older(m.ctx, m.sess, m.cfg.GetRemoteHostID())
		if cmd == nil {
			m.chat.SetLoadingOlder(false)
		}
		return m, cmd

	case ui.CopiedMsg:
		if msg.Err != nil {
			return m, m.ShowFlashError("Copy failed: " + msg.Err.Error())
		}
		return m, m.ShowFlashSuccess(fmt.Sprintf("Copied %d characters", len([]rune(msg.Text))))

	case ui.FlashTickMsg:
		if m.footer.ClearIfExpired() || !m.footer.HasFlash() {
			return m, nil
		}
		return m, ui.FlashTick()
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keys.Quit.Matches(k):
		m.cancel()
		return m, tea.Quit
	case keys.Refresh.Matches(k):
		info, ok := m.sess.ActiveChat()
		if !ok {
			return m, nil
		}
		return m, m.bottom.Fetch(m.ctx, info, m.cfg.GetRemoteHostID())
	}

	var cmd tea.Cmd
	m.chat, cmd = m.chat.Update(msg)
	if m.chat.AtBottom() {
		m.unseen = 0
	}
	return m, cmd
}

// handlePage merges a fetched page. Tail pages go through the bottom loader
// and are followed by eviction; everything else goes through the area
// loader and may move the cursor onto the item it was fetched for.
func (m *Model) handlePage(msg loader.PageMsg) tea.Cmd {
	if !msg.Tail {
		m.chat.SetLoadingOlder(false)
		n := m.area.Apply(m.sess, msg)
		if msg.Err != nil && m.sess.IsActive(msg.ChatID) {
			return m.ShowFlashError("Could not load history")
		}
		if n > 0 {
			m.chat.SetSections(m.sess.Rebuild())
			m.updateStatus()
		}
		if msg.Focus != 0 && m.sess.IsActive(msg.ChatID) {
			m.chat.FocusItem(msg.Focus)
		}
		return nil
	}

	wasAtBottom := m.chat.AtBottom()
	res := m.bottom.Apply(m.sess, msg)
	if !res.Changed() {
		return nil
	}

	m.sess.Rebuild()
	if dropped := m.sess.DropTemporarySections(); dropped > 0 {
		m.log.Debug("evicted after bottom merge", "dropped", dropped)
	}
	m.chat.SetSections(m.sess.Rebuild())
	m.updateStatus()

	if res.Inserted == 0 || wasAtBottom {
		return nil
	}
	m.unseen += res.Inserted
	if !m.cfg.GetNotificationsEnabled() {
		return nil
	}
	info, _ := m.sess.ActiveChat()
	return notifyCmd(info.Name, res.Inserted)
}

// notifyCmd sends the desktop notification off the main loop.
func notifyCmd(chatName string, n int) tea.Cmd {
	return func() tea.Msg {
		_ = notification.NewMessages(chatName, n)
		return nil
	}
}

func (m *Model) updateStatus() {
	if _, ok := m.sess.ActiveChat(); !ok {
		m.header.SetStatus("")
		return
	}
	m.header.SetStatus(fmt.Sprintf("%d loaded", m.sess.Store().Len()))
}

// Shutdown cancels fetches still in flight
func (m *Model) Shutdown() {
	m.cancel()
	m.sess.Close()
}

// pollInterval returns the configured interval between bottom fetches
func (m *Model) pollInterval() time.Duration {
	return m.cfg.GetPollInterval()
}
