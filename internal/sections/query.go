package sections

import "github.com/zhubert/parley/internal/chat"

// ItemPosition returns the list position recorded for id.
func (l List) ItemPosition(id chat.ItemID) (int, bool) {
	for _, s := range l {
		if pos, ok := s.Positions[id]; ok {
			return pos, true
		}
	}
	return 0, false
}

// RevealedItemCount returns the number of rows the list renders: revealed
// runs count each member, collapsed runs count once.
func (l List) RevealedItemCount() int {
	count := 0
	for _, s := range l {
		for _, r := range s.Runs {
			count += r.Rows()
		}
	}
	return count
}

// FindArea returns the section tagged with area.
func (l List) FindArea(area Area) (*Section, bool) {
	s := l.find(area)
	return s, s != nil
}

// PreviousShown returns the visible item before the item at itemIndex of
// run runIndex, moving into the older run when the current one is exhausted
// or collapsed. Runs are ordered oldest to newest, so "previous" is older.
func (s *Section) PreviousShown(runIndex, itemIndex int) (chat.Item, bool) {
	if runIndex < 0 || runIndex >= len(s.Runs) {
		return chat.Item{}, false
	}
	run := s.Runs[runIndex]
	if run.Revealed && itemIndex > 0 && itemIndex < len(run.Items) {
		return run.Items[itemIndex-1], true
	}
	if runIndex == 0 {
		return chat.Item{}, false
	}
	older := s.Runs[runIndex-1]
	return older.Items[len(older.Items)-1], true
}

// NextShown returns the visible item after the item at itemIndex of run
// runIndex, moving into the newer run when the current one is exhausted or
// collapsed.
func (s *Section) NextShown(runIndex, itemIndex int) (chat.Item, bool) {
	if runIndex < 0 || runIndex >= len(s.Runs) {
		return chat.Item{}, false
	}
	run := s.Runs[runIndex]
	if run.Revealed && itemIndex >= 0 && itemIndex < len(run.Items)-1 {
		return run.Items[itemIndex+1], true
	}
	if runIndex == len(s.Runs)-1 {
		return chat.Item{}, false
	}
	return s.Runs[runIndex+1].Items[0], true
}

// PreviousShown is Section.PreviousShown that continues into the preceding
// section when the first run of the section is passed.
func (l List) PreviousShown(sectionIndex, runIndex, itemIndex int) (chat.Item, bool) {
	if sectionIndex < 0 || sectionIndex >= len(l) {
		return chat.Item{}, false
	}
	if it, ok := l[sectionIndex].PreviousShown(runIndex, itemIndex); ok {
		return it, true
	}
	if sectionIndex == 0 || runIndex != 0 {
		return chat.Item{}, false
	}
	prev := l[sectionIndex-1]
	last := prev.Runs[len(prev.Runs)-1]
	return last.Items[len(last.Items)-1], true
}

// NextShown is Section.NextShown that continues into the following section
// when the last run of the section is passed.
func (l List) NextShown(sectionIndex, runIndex, itemIndex int) (chat.Item, bool) {
	if sectionIndex < 0 || sectionIndex >= len(l) {
		return chat.Item{}, false
	}
	s := l[sectionIndex]
	if it, ok := s.NextShown(runIndex, itemIndex); ok {
		return it, true
	}
	if sectionIndex == len(l)-1 || runIndex != len(s.Runs)-1 {
		return chat.Item{}, false
	}
	return l[sectionIndex+1].Runs[0].Items[0], true
}

// Row is one visible line of a virtualized list: either a single item or a
// whole collapsed run.
type Row struct {
	Section int
	Run     int
	// Index is the item index within the run; 0 for a collapsed run.
	Index int
	Item  chat.Item
	// Merged is the member count of a collapsed run, 0 for single items.
	Merged     int
	ShowAvatar bool
}

// Collapsed reports whether the row stands for a collapsed run.
func (r Row) Collapsed() bool {
	return r.Merged > 0
}

// Rows flattens the list into its visible rows, oldest first. The result
// has RevealedItemCount entries.
func (l List) Rows() []Row {
	rows := make([]Row, 0, l.RevealedItemCount())
	for si, s := range l {
		for ri, r := range s.Runs {
			if !r.Revealed {
				first := r.Items[0]
				rows = append(rows, Row{
					Section:    si,
					Run:        ri,
					Item:       first,
					Merged:     len(r.Items),
					ShowAvatar: r.ShowAvatar[first.ID],
				})
				continue
			}
			for ii, it := range r.Items {
				rows = append(rows, Row{
					Section:    si,
					Run:        ri,
					Index:      ii,
					Item:       it,
					ShowAvatar: r.ShowAvatar[it.ID],
				})
			}
		}
	}
	return rows
}
