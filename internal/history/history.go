// Package history is the source pages of chat items are fetched from.
//
// Fetcher is the remote-fetch contract the loaders depend on. Archive is the
// in-memory implementation backed by a JSON history file or by a generated
// conversation.
package history

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/zhubert/parley/internal/chat"
	perrors "github.com/zhubert/parley/internal/errors"
)

// PageKind selects which slice of a chat's history a page covers.
type PageKind int

const (
	// PageLast is the newest Count items.
	PageLast PageKind = iota
	// PageBefore is the Count items older than ItemID.
	PageBefore
	// PageAround is up to Count items centered on ItemID.
	PageAround
)

// Pagination describes the page to fetch.
type Pagination struct {
	Kind   PageKind
	ItemID chat.ItemID
	Count  int
}

// Last requests the newest count items.
func Last(count int) Pagination { return Pagination{Kind: PageLast, Count: count} }

// Before requests count items older than id.
func Before(id chat.ItemID, count int) Pagination {
	return Pagination{Kind: PageBefore, ItemID: id, Count: count}
}

// Around requests count items centered on id.
func Around(id chat.ItemID, count int) Pagination {
	return Pagination{Kind: PageAround, ItemID: id, Count: count}
}

// Page is one fetched page, oldest item first.
type Page struct {
	Chat  chat.Info
	Items []chat.Item
	// Unread is the ID of the first unread item, if any.
	Unread chat.ItemID
}

// Fetcher fetches pages of chat items. rh is an optional routing hint
// (remote host) passed through to the backend. Implementations may block
// and must honor ctx.
type Fetcher interface {
	FetchPage(ctx context.Context, info chat.Info, rh *int64, p Pagination) (*Page, error)
}

// Archive is an in-memory Fetcher holding the full history of a set of
// chats. It is safe for concurrent use.
type Archive struct {
	mu      sync.RWMutex
	chats   map[string]*conversation
	latency time.Duration
}

type conversation struct {
	info   chat.Info
	items  []chat.Item
	unread chat.ItemID
}

// NewArchive creates an empty archive.
func NewArchive() *Archive {
	return &Archive{chats: make(map[string]*conversation)}
}

// SetLatency makes every fetch wait d before answering, to mimic a remote
// backend.
func (a *Archive) SetLatency(d time.Duration) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.latency = d
}

// Put stores the history of a chat, replacing any previous one. Items are
// kept sorted by ID.
func (a *Archive) Put(info chat.Info, items []chat.Item) {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(x, y chat.Item) int { return cmp.Compare(x.ID, y.ID) })

	a.mu.Lock()
	defer a.mu.Unlock()
	a.chats[info.ID] = &conversation{info: info, items: sorted}
}

// Append adds items to the end of a chat's history, as if they had just
// been sent.
func (a *Archive) Append(chatID string, items ...chat.Item) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.chats[chatID]
	if !ok {
		return perrors.ChatNotFound(chatID)
	}
	c.items = append(c.items, items...)
	return nil
}

// MarkUnread records the first unread item of a chat.
func (a *Archive) MarkUnread(chatID string, id chat.ItemID) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	c, ok := a.chats[chatID]
	if !ok {
		return perrors.ChatNotFound(chatID)
	}
	c.unread = id
	return nil
}

// Unread returns the first unread item of a chat, or 0 when everything
// has been read.
func (a *Archive) Unread(chatID string) chat.ItemID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if c, ok := a.chats[chatID]; ok {
		return c.unread
	}
	return 0
}

// NextID returns the ID following the newest item of a chat.
func (a *Archive) NextID(chatID string) chat.ItemID {
	a.mu.RLock()
	defer a.mu.RUnlock()
	c, ok := a.chats[chatID]
	if !ok || len(c.items) == 0 {
		return 1
	}
	return c.items[len(c.items)-1].ID + 1
}

// Chats returns the chats in the archive.
func (a *Archive) Chats() []chat.Info {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]chat.Info, 0, len(a.chats))
	for _, c := range a.chats {
		out = append(out, c.info)
	}
	slices.SortFunc(out, func(x, y chat.Info) int { return cmp.Compare(x.Name, y.Name) })
	return out
}

// Len returns the number of items stored for a chat.
func (a *Archive) Len(chatID string) int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if c, ok := a.chats[chatID]; ok {
		return len(c.items)
	}
	return 0
}

// FetchPage implements Fetcher.
func (a *Archive) FetchPage(ctx context.Context, info chat.Info, rh *int64, p Pagination) (*Page, error) {
	a.mu.RLock()
	latency := a.latency
	a.mu.RUnlock()

	if latency > 0 {
		select {
		case <-time.After(latency):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	a.mu.RLock()
	defer a.mu.RUnlock()

	c, ok := a.chats[info.ID]
	if !ok {
		return nil, perrors.ChatNotFound(info.ID)
	}
	if p.Count <= 0 {
		return &Page{Chat: c.info, Unread: c.unread}, nil
	}

	var lo, hi int
	switch p.Kind {
	case PageLast:
		hi = len(c.items)
		lo = max(hi-p.Count, 0)
	case PageBefore:
		hi, _ = slices.BinarySearchFunc(c.items, p.ItemID, byID)
		lo = max(hi-p.Count, 0)
	case PageAround:
		at, found := slices.BinarySearchFunc(c.items, p.ItemID, byID)
		if !found {
			return nil, perrors.ItemNotFound(int64(p.ItemID))
		}
		lo = max(at-p.Count/2, 0)
		hi = min(lo+p.Count, len(c.items))
		lo = max(hi-p.Count, 0)
	}

	return &Page{
		Chat:   c.info,
		Items:  slices.Clone(c.items[lo:hi]),
		Unread: c.unread,
	}, nil
}

func byID(it chat.Item, id chat.ItemID) int {
	return cmp.Compare(it.ID, id)
}
