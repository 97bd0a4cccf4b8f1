package sections

import (
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/logger"
)

// Area tags a chat item with the scroll region it belongs to.
type Area int

const (
	// Bottom is the live tail of the conversation.
	Bottom Area = iota
	// Current is the region around where the user is reading.
	Current
	// Destination is the region around an item the user navigated to.
	Destination
)

func (a Area) String() string {
	switch a {
	case Bottom:
		return "bottom"
	case Current:
		return "current"
	case Destination:
		return "destination"
	default:
		return "unknown"
	}
}

// LandingArea returns the area a chat opened at the given landing section
// loads its first page into.
func LandingArea(s chat.LandingSection) Area {
	if s == chat.LandingUnread {
		return Current
	}
	return Bottom
}

// AreaLookup reads the recorded area of an item.
type AreaLookup interface {
	Area(id chat.ItemID) (Area, bool)
}

// AreaStore is the mutable area mapping together with the item sequence it
// describes.
type AreaStore interface {
	AreaLookup
	SetArea(id chat.ItemID, area Area)
	Items() []chat.Item
}

// Resolve decides which area absorbs the other when an item recorded in
// recorded shows up while loading into loading. Bottom always wins; otherwise
// the recorded area absorbs the loading one. When target equals dropped no
// merge is needed.
func Resolve(recorded, loading Area) (target, dropped Area) {
	switch recorded {
	case Bottom:
		return Bottom, loading
	default:
		if loading == Bottom {
			return Bottom, recorded
		}
		return recorded, loading
	}
}

// Loader describes a page being loaded into one area at a list position.
type Loader struct {
	Position int
	Area     Area
}

// PrepareItems reconciles an incoming page with the recorded areas. Areas
// that collide with the page are merged in st, every new item is tagged with
// the (possibly redirected) loading area, and the new items are returned in
// page order for the caller to insert.
func (l Loader) PrepareItems(st AreaStore, items []chat.Item) []chat.Item {
	var added []chat.Item
	merges := make(map[Area]Area)

	for _, it := range items {
		recorded, ok := st.Area(it.ID)
		if !ok {
			added = append(added, it)
			continue
		}
		if recorded == l.Area {
			continue
		}
		target, dropped := Resolve(recorded, l.Area)
		if target != dropped {
			merges[dropped] = target
		}
	}

	if len(merges) > 0 {
		for _, it := range st.Items() {
			area, ok := st.Area(it.ID)
			if !ok {
				continue
			}
			if target, merge := merges[area]; merge {
				st.SetArea(it.ID, target)
			}
		}
		logger.WithComponent("sections").Debug("merged areas",
			"loading", l.Area.String(),
			"merges", len(merges),
		)
	}

	target := l.Area
	if redirected, ok := merges[l.Area]; ok {
		target = redirected
	}
	for _, it := range added {
		st.SetArea(it.ID, target)
	}

	return added
}
