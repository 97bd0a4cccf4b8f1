// Package session owns the state of one open chat: the item store, the
// revealed set and the last built section list.
//
// Every method must be called from the session's main loop (the Bubble Tea
// Update goroutine, or a loader.MainLoop). Fetches happen elsewhere and hand
// their results back to that loop.
package session

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/logger"
	"github.com/zhubert/parley/internal/sections"
	"github.com/zhubert/parley/internal/store"
)

// Session is the explicit context object every sectioning operation runs
// against.
type Session struct {
	id       string
	capacity int

	info   chat.Info
	active bool

	store    *store.Store
	revealed map[chat.ItemID]bool
	list     sections.List

	log *slog.Logger
}

// New creates a session that keeps at most capacity items before evicting.
// A non-positive capacity means sections.MaxSectionSize.
func New(capacity int) *Session {
	if capacity <= 0 {
		capacity = sections.MaxSectionSize
	}
	id := uuid.New().String()
	return &Session{
		id:       id,
		capacity: capacity,
		store:    store.New(),
		revealed: make(map[chat.ItemID]bool),
		log:      logger.WithComponent("session").With("session", id[:8]),
	}
}

// ID returns the session's unique ID.
func (s *Session) ID() string { return s.id }

// Capacity returns how many items the session keeps before evicting.
func (s *Session) Capacity() int { return s.capacity }

// Store returns the item store.
func (s *Session) Store() *store.Store { return s.store }

// Open switches the session to info. The store and revealed set are
// cleared; in-flight loads for the previous chat become stale.
func (s *Session) Open(info chat.Info) {
	s.info = info
	s.active = true
	s.store.Reset()
	clear(s.revealed)
	s.list = nil
	s.log.Info("chat opened", "chatID", info.ID, "name", info.Name)
}

// Close leaves the current chat.
func (s *Session) Close() {
	if s.active {
		s.log.Info("chat closed", "chatID", s.info.ID)
	}
	s.active = false
	s.info = chat.Info{}
	s.store.Reset()
	clear(s.revealed)
	s.list = nil
}

// ActiveChat returns the open chat.
func (s *Session) ActiveChat() (chat.Info, bool) {
	return s.info, s.active
}

// ActiveChatID returns the ID of the open chat, or "".
func (s *Session) ActiveChatID() string {
	if !s.active {
		return ""
	}
	return s.info.ID
}

// IsActive reports whether chatID is the open chat.
func (s *Session) IsActive(chatID string) bool {
	return s.active && s.info.ID == chatID
}

// Rebuild rebuilds the section list from the current store contents.
func (s *Session) Rebuild() sections.List {
	s.list = sections.Build(s.store.Items(), s.store, s.revealed)
	return s.list
}

// Sections returns the last built section list.
func (s *Session) Sections() sections.List {
	return s.list
}

// IsRevealed reports whether id is in the revealed set.
func (s *Session) IsRevealed(id chat.ItemID) bool {
	return s.revealed[id]
}

// ToggleReveal expands or collapses the merged run containing id and
// rebuilds. It returns the run's new revealed state; items without a merge
// category are always revealed and are left alone.
func (s *Session) ToggleReveal(id chat.ItemID) bool {
	run := s.runOf(id)
	if run == nil {
		return false
	}
	if run.Category == chat.NoCategory {
		return true
	}
	reveal := !run.Revealed
	for _, it := range run.Items {
		if reveal {
			s.revealed[it.ID] = true
		} else {
			delete(s.revealed, it.ID)
		}
	}
	s.Rebuild()
	return reveal
}

func (s *Session) runOf(id chat.ItemID) *sections.Run {
	for _, sec := range s.list {
		if _, ok := sec.Positions[id]; !ok {
			continue
		}
		for _, run := range sec.Runs {
			if slices.ContainsFunc(run.Items, func(it chat.Item) bool { return it.ID == id }) {
				return run
			}
		}
	}
	return nil
}

// InsertSorted merges items into the store by ID order and replaces the
// sequence in one step. items must already be free of duplicates of stored
// items, as sections.Loader.PrepareItems guarantees.
func (s *Session) InsertSorted(items []chat.Item) {
	if len(items) == 0 {
		return
	}
	incoming := slices.Clone(items)
	slices.SortFunc(incoming, func(a, b chat.Item) int {
		return cmp.Compare(a.ID, b.ID)
	})

	current := s.store.Items()
	merged := make([]chat.Item, 0, len(current)+len(incoming))
	i, j := 0, 0
	for i < len(current) && j < len(incoming) {
		if incoming[j].ID < current[i].ID {
			merged = append(merged, incoming[j])
			j++
		} else {
			merged = append(merged, current[i])
			i++
		}
	}
	merged = append(merged, current[i:]...)
	merged = append(merged, incoming[j:]...)
	s.store.Replace(merged)
}

// DropTemporarySections evicts items once the store grows past capacity.
// The oldest items outside the Bottom section, plus whatever Bottom holds
// beyond capacity, are removed and every remaining item is retagged Bottom.
// It uses the last built list and returns the number of items removed.
func (s *Session) DropTemporarySections() int {
	if s.store.Len() <= s.capacity {
		return 0
	}
	bottom, ok := s.list.FindArea(sections.Bottom)
	if !ok {
		return 0
	}

	outside := s.store.Len() - 1 - bottom.Boundary.MaxIndex
	n := min(outside+bottom.ExcessOver(s.capacity), s.store.Len())
	if n <= 0 {
		return 0
	}

	removed := s.store.Items()[:n]
	s.store.RemoveRange(0, n)
	for _, it := range removed {
		delete(s.revealed, it.ID)
	}

	s.store.ClearAreas()
	for _, it := range s.store.Items() {
		s.store.SetArea(it.ID, sections.Bottom)
	}
	s.Rebuild()

	s.log.Debug("evicted items", "removed", n, "remaining", s.store.Len())
	return n
}
