// Package store holds the canonical in-memory item sequence of the open
// chat together with the area each item is tagged with.
//
// A Store is not safe for concurrent use. It belongs to one session and is
// only touched from that session's main loop.
package store

import (
	"slices"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/sections"
)

// Store is the ordered item sequence plus the item → area mapping.
type Store struct {
	items []chat.Item
	areas map[chat.ItemID]sections.Area
}

// New creates an empty store.
func New() *Store {
	return &Store{areas: make(map[chat.ItemID]sections.Area)}
}

// Items returns a copy of the item sequence, oldest first.
func (s *Store) Items() []chat.Item {
	return slices.Clone(s.items)
}

// Len returns the number of items.
func (s *Store) Len() int {
	return len(s.items)
}

// At returns the item at index i.
func (s *Store) At(i int) (chat.Item, bool) {
	if i < 0 || i >= len(s.items) {
		return chat.Item{}, false
	}
	return s.items[i], true
}

// IndexOf returns the index of the item with the given ID.
func (s *Store) IndexOf(id chat.ItemID) (int, bool) {
	i := slices.IndexFunc(s.items, func(it chat.Item) bool { return it.ID == id })
	return i, i >= 0
}

// Replace swaps the whole sequence in one step. The store keeps items; the
// caller must not modify the slice afterwards.
func (s *Store) Replace(items []chat.Item) {
	s.items = items
}

// InsertAt inserts items before index. index is clamped to [0, Len()].
func (s *Store) InsertAt(index int, items ...chat.Item) {
	index = min(max(index, 0), len(s.items))
	s.items = slices.Insert(s.items, index, items...)
}

// Append adds items at the end of the sequence.
func (s *Store) Append(items ...chat.Item) {
	s.items = append(s.items, items...)
}

// RemoveRange removes the items in [from, to). The range is clamped to the
// sequence. Area tags of removed items are left in place; callers that evict
// reset the mapping afterwards.
func (s *Store) RemoveRange(from, to int) {
	from = max(from, 0)
	to = min(to, len(s.items))
	if from >= to {
		return
	}
	s.items = slices.Delete(s.items, from, to)
}

// Area returns the recorded area of id.
func (s *Store) Area(id chat.ItemID) (sections.Area, bool) {
	a, ok := s.areas[id]
	return a, ok
}

// SetArea records the area of id.
func (s *Store) SetArea(id chat.ItemID, area sections.Area) {
	s.areas[id] = area
}

// ClearAreas forgets every recorded area.
func (s *Store) ClearAreas() {
	clear(s.areas)
}

// AreaCount returns the number of recorded areas.
func (s *Store) AreaCount() int {
	return len(s.areas)
}

// Reset empties the sequence and the area mapping.
func (s *Store) Reset() {
	s.items = nil
	s.ClearAreas()
}
