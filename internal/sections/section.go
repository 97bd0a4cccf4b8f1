// Package sections partitions a flat chat item sequence into scroll regions
// and collapsible runs of same-category items.
//
// A Section is the run of items sharing one Area. Inside a section, a Run
// groups consecutive items with the same merge category. Runs of items
// without a category are always revealed; runs with a category collapse into
// one row unless revealed. Sections are rebuilt from scratch by Build and
// carry no identity across rebuilds.
package sections

import (
	"github.com/zhubert/parley/internal/chat"
)

// MaxSectionSize is how many items a section keeps before the excess is
// evicted.
const MaxSectionSize = 500

// Boundary is the index range of a section in the original sequence.
type Boundary struct {
	MinIndex int
	MaxIndex int
	Area     Area
}

// Span returns the number of original indices the boundary covers.
func (b Boundary) Span() int {
	return b.MaxIndex - b.MinIndex + 1
}

// IndexRange is an inclusive range of original sequence indices.
type IndexRange struct {
	First int
	Last  int
}

// Run is a sub-run of a section whose items share one merge category.
// Revealed is fixed by the run's first item.
type Run struct {
	Category   chat.MergeCategory
	Items      []chat.Item
	Revealed   bool
	ShowAvatar map[chat.ItemID]bool
	Range      IndexRange
}

// Collapsed reports whether the run renders as a single opaque row.
func (r *Run) Collapsed() bool {
	return !r.Revealed
}

// Rows returns the number of rows the run occupies in the list.
func (r *Run) Rows() int {
	if r.Revealed {
		return len(r.Items)
	}
	return 1
}

// Section is a contiguous run of items sharing one Area.
type Section struct {
	Runs      []*Run
	Boundary  Boundary
	Positions map[chat.ItemID]int
}

// ExcessItemCount returns how many items the section holds beyond
// MaxSectionSize.
func (s *Section) ExcessItemCount() int {
	return s.ExcessOver(MaxSectionSize)
}

// ExcessOver returns how many items the section holds beyond limit.
func (s *Section) ExcessOver(limit int) int {
	return max(s.Boundary.Span()-limit, 0)
}

// lastRun returns the most recently opened run.
func (s *Section) lastRun() *Run {
	return s.Runs[len(s.Runs)-1]
}

// List is a built section list, ordered as the sections first appear in the
// item sequence.
type List []*Section

func newRun(it chat.Item, index int, revealed map[chat.ItemID]bool) *Run {
	return &Run{
		Category:   it.Category,
		Items:      []chat.Item{it},
		Revealed:   !it.Mergeable() || revealed[it.ID],
		ShowAvatar: make(map[chat.ItemID]bool),
		Range:      IndexRange{First: index, Last: index},
	}
}

// senderChanged reports whether a group-received item starts a new sender
// block relative to the item before it in the original sequence.
func senderChanged(prev, it chat.Item) bool {
	if !prev.Dir.IsGroupReceived() {
		return true
	}
	return prev.Dir.MemberID() != it.Dir.MemberID()
}

// Build partitions items into sections in a single pass. Areas are read from
// areas, defaulting to Bottom for unrecorded items. revealed holds the IDs
// of items whose merged run is expanded.
func Build(items []chat.Item, areas AreaLookup, revealed map[chat.ItemID]bool) List {
	if len(items) == 0 {
		return nil
	}

	areaOf := func(id chat.ItemID) Area {
		if a, ok := areas.Area(id); ok {
			return a
		}
		return Bottom
	}

	first := items[0]
	run := newRun(first, 0, revealed)
	if first.Dir.IsGroupReceived() {
		run.ShowAvatar[first.ID] = true
	}
	list := List{{
		Runs:      []*Run{run},
		Boundary:  Boundary{MinIndex: 0, MaxIndex: 0, Area: areaOf(first.ID)},
		Positions: map[chat.ItemID]int{first.ID: 0},
	}}

	position := 0
	prev := first
	for i := 1; i < len(items); i++ {
		it := items[i]
		area := areaOf(it.ID)

		section := list.find(area)
		if section == nil {
			position++
			run := newRun(it, i, revealed)
			if it.Dir.IsGroupReceived() {
				run.ShowAvatar[it.ID] = true
			}
			list = append(list, &Section{
				Runs:      []*Run{run},
				Boundary:  Boundary{MinIndex: i, MaxIndex: i, Area: area},
				Positions: map[chat.ItemID]int{it.ID: position},
			})
			prev = it
			continue
		}

		recent := section.lastRun()
		if recent.Category == it.Category {
			if !it.Mergeable() || recent.Revealed || revealed[it.ID] {
				position++
			}
			recent.Items = append(recent.Items, it)
			recent.Range.Last = i
		} else {
			position++
			recent = newRun(it, i, revealed)
			section.Runs = append(section.Runs, recent)
		}
		if it.Dir.IsGroupReceived() && senderChanged(prev, it) {
			recent.ShowAvatar[it.ID] = true
		}
		section.Positions[it.ID] = position
		section.Boundary.MaxIndex = i
		prev = it
	}

	return list
}

// find returns the section tagged with area. Areas are few, so a linear
// scan is enough.
func (l List) find(area Area) *Section {
	for _, s := range l {
		if s.Boundary.Area == area {
			return s
		}
	}
	return nil
}
