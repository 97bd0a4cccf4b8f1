package loader

import (
	"context"
	"log/slog"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/sections"
	"github.com/zhubert/parley/internal/session"
)

// Area loads history away from the live tail: older items above the top
// section, or a page around an item the user jumped to.
type Area struct {
	fetcher  history.Fetcher
	pageSize int
	timeout  time.Duration
	log      *slog.Logger
}

// NewArea creates an area loader. A non-positive pageSize means
// DefaultPageSize.
func NewArea(f history.Fetcher, pageSize int) *Area {
	if pageSize <= 0 {
		pageSize = DefaultPageSize
	}
	return &Area{
		fetcher:  f,
		pageSize: pageSize,
		timeout:  DefaultTimeout,
		log:      logger.WithComponent("loader.area"),
	}
}

// Older returns a command fetching the page before the oldest loaded item.
// The page is loaded into the area of the top section. It returns nil when
// nothing is loaded yet.
func (a *Area) Older(ctx context.Context, sess *session.Session, rh *int64) tea.Cmd {
	info, ok := sess.ActiveChat()
	if !ok {
		return nil
	}
	first, ok := sess.Store().At(0)
	if !ok {
		return nil
	}
	area := sections.Bottom
	if list := sess.Sections(); len(list) > 0 {
		area = list[0].Boundary.Area
	}
	p := history.Before(first.ID, a.pageSize)
	return a.cmd(ctx, info, rh, area, p, 0)
}

// Around returns a command fetching a page centered on id into the
// Destination area. The page asks the view to focus id.
func (a *Area) Around(ctx context.Context, info chat.Info, rh *int64, id chat.ItemID) tea.Cmd {
	return a.cmd(ctx, info, rh, sections.Destination, history.Around(id, a.pageSize), id)
}

// Landing returns a command fetching the first page of a freshly opened
// chat. LandingUnread centers the page on the first unread item when the
// archive knows one and focuses it; otherwise the newest page is loaded
// into Bottom.
func (a *Area) Landing(ctx context.Context, info chat.Info, rh *int64, landing chat.LandingSection, unread chat.ItemID) tea.Cmd {
	area := sections.LandingArea(landing)
	if area == sections.Current && unread != 0 {
		return a.cmd(ctx, info, rh, sections.Current, history.Around(unread, a.pageSize), unread)
	}
	return a.cmd(ctx, info, rh, sections.Bottom, history.Last(a.pageSize), 0)
}

func (a *Area) cmd(ctx context.Context, info chat.Info, rh *int64, area sections.Area, p history.Pagination, focus chat.ItemID) tea.Cmd {
	return func() tea.Msg {
		page, err := fetchPage(ctx, a.fetcher, a.timeout, info, rh, p)
		return PageMsg{ChatID: info.ID, Area: area, Focus: focus, Page: page, Err: err}
	}
}

// Apply merges a page into sess through the area resolver and returns the
// number of items inserted. It must run on the main loop.
func (a *Area) Apply(sess *session.Session, msg PageMsg) int {
	if !sess.IsActive(msg.ChatID) {
		a.log.Debug("dropping stale page", "chatID", msg.ChatID)
		return 0
	}
	if msg.Err != nil {
		a.log.Warn("area fetch failed", "chatID", msg.ChatID, "area", msg.Area.String(), "error", msg.Err)
		return 0
	}
	if msg.Page == nil || len(msg.Page.Items) == 0 {
		return 0
	}

	l := sections.Loader{Area: msg.Area}
	added := l.PrepareItems(sess.Store(), msg.Page.Items)
	sess.InsertSorted(added)

	a.log.Debug("merged area page",
		"chatID", msg.ChatID,
		"area", msg.Area.String(),
		"page", len(msg.Page.Items),
		"inserted", len(added),
	)
	return len(added)
}
