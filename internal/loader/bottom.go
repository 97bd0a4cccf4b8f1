// Package loader fetches pages of chat items and merges them into a session.
//
// Fetching may block and runs off the main loop, inside a tea.Cmd or on the
// caller's goroutine. Merging touches the session and must run on the main
// loop; it checks for staleness before anything else.
package loader

import (
	"context"
	"errors"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/chat"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/sections"
	"github.com/zhubert/parley/internal/session"
)

// DefaultPageSize is the number of items requested per page.
const DefaultPageSize = 50

// DefaultTimeout bounds a single fetch.
const DefaultTimeout = 10 * time.Second

// PageMsg carries a fetched page back to the main loop.
type PageMsg struct {
	ChatID string
	Area   sections.Area
	// Tail is set on pages of the live tail fetched by Bottom. Other pages
	// come from Area and are merged with Area.Apply.
	Tail bool
	// Focus is the item the view should select once the page is merged,
	// or 0 to keep the current selection.
	Focus chat.ItemID
	Page  *history.Page
	Err   error
}

// Bottom keeps the live tail of the open chat up to date.
type Bottom struct {
	fetcher  history.Fetcher
	pageSize int
	timeout  time.Duration
	log      *slog.Logger
}

// NewBottom creates a bottom loader. A non-positive pageSize means
// DefaultPageSize.
func NewBottom(f history.Fetcher, pageSize int) *Bottom {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Bottom{
		fetcher:  f,
		pageSize: pageSize,
		timeout:  DefaultTimeout,
		log:      logger.WithComponent("loader.bottom"),
	}
}

// SetTimeout changes the per-fetch timeout.
func (b *Bottom) SetTimeout(d time.Duration) {
	b.timeout = d
}

// PageSize returns the number of items requested per fetch.
func (b *Bottom) PageSize() int { return b.pageSize }

// Fetch returns a command that fetches the newest page of info and delivers
// it as a PageMsg. rh is passed through to the fetcher.
func (b *Bottom) Fetch(ctx context.Context, info chat.Info, rh *int64) tea.Cmd {
	return func() tea.Msg {
		page, err := b.fetch(ctx, info, rh)
		return PageMsg{ChatID: info.ID, Area: sections.Bottom, Tail: true, Page: page, Err: err}
	}
}

func (b *Bottom) fetch(ctx context.Context, info chat.Info, rh *int64) (*history.Page, error) {
	return fetchPage(ctx, b.fetcher, b.timeout, info, rh, history.Last(b.pageSize))
}

// Merge reports what applying a page changed.
type Merge struct {
	// Inserted counts items that were not loaded before.
	Inserted int
	// Retagged counts loaded items that moved into the Bottom section.
	Retagged int
}

// Changed reports whether the section list needs rebuilding.
func (m Merge) Changed() bool { return m.Inserted > 0 || m.Retagged > 0 }

// Apply merges a fetched page into sess. It must run on the main loop.
// Pages for a chat that is no longer open, failed fetches and empty pages
// are ignored.
func (b *Bottom) Apply(sess *session.Session, msg PageMsg) Merge {
	if !sess.IsActive(msg.ChatID) {
		b.log.Debug("dropping stale page", "error", perrors.StalePage(msg.ChatID))
		return Merge{}
	}
	if msg.Err != nil {
		b.log.Warn("bottom fetch failed", "chatID", msg.ChatID, "error", msg.Err, "kind", perrors.GetKind(msg.Err))
		return Merge{}
	}
	if msg.Page == nil || len(msg.Page.Items) == 0 {
		return Merge{}
	}

	st := sess.Store()
	current := st.Items()

	// Walk the page newest first. Every item already tagged moves the
	// insertion anchor one place left; a new item lands at the anchor. Tags
	// are written as the walk goes, so an ID repeated within the page counts
	// as present the second time.
	anchors := make([]int, len(msg.Page.Items))
	anchor := len(current)
	var res Merge
	for i := len(msg.Page.Items) - 1; i >= 0; i-- {
		it := msg.Page.Items[i]
		if area, ok := st.Area(it.ID); ok {
			if area != sections.Bottom {
				res.Retagged++
			}
			st.SetArea(it.ID, sections.Bottom)
			anchors[i] = -1
			anchor = max(anchor-1, 0)
			continue
		}
		st.SetArea(it.ID, sections.Bottom)
		anchors[i] = anchor
		res.Inserted++
	}
	if res.Inserted == 0 {
		return res
	}

	byAnchor := make(map[int][]chat.Item, res.Inserted)
	for i, it := range msg.Page.Items {
		if anchors[i] >= 0 {
			byAnchor[anchors[i]] = append(byAnchor[anchors[i]], it)
		}
	}
	merged := make([]chat.Item, 0, len(current)+res.Inserted)
	for i, it := range current {
		merged = append(merged, byAnchor[i]...)
		merged = append(merged, it)
	}
	merged = append(merged, byAnchor[len(current)]...)
	st.Replace(merged)

	b.log.Debug("merged bottom page",
		"chatID", msg.ChatID,
		"page", len(msg.Page.Items),
		"inserted", res.Inserted,
		"retagged", res.Retagged,
		"total", len(merged),
	)
	return res
}

// Load fetches on the calling goroutine and applies the page through exec.
// The session is only touched inside exec. Like Apply, a failed fetch is
// logged and changes nothing.
func (b *Bottom) Load(ctx context.Context, exec Executor, sess *session.Session, info chat.Info, rh *int64) Merge {
	page, err := b.fetch(ctx, info, rh)
	msg := PageMsg{ChatID: info.ID, Area: sections.Bottom, Tail: true, Page: page, Err: err}

	var res Merge
	exec.Do(func() {
		res = b.Apply(sess, msg)
	})
	return res
}

func fetchPage(ctx context.Context, f history.Fetcher, timeout time.Duration, info chat.Info, rh *int64, p history.Pagination) (*history.Page, error) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}
	page, err := f.FetchPage(ctx, info, rh, p)
	if errors.Is(err, context.DeadlineExceeded) {
		return nil, perrors.FetchTimeout(info.ID, err)
	}
	return page, err
}
