package loader

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/chat"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/sections"
	"github.com/zhubert/parley/internal/session"
)

var testChat = chat.Info{ID: "chat-1", Type: chat.Group, Name: "test"}

func mkItems(ids ...int64) []chat.Item {
	out := make([]chat.Item, len(ids))
	for i, id := range ids {
		out[i] = chat.Item{ID: chat.ItemID(id), Dir: chat.ReceivedDir()}
	}
	return out
}

// openSession opens testChat with the given items, all tagged area.
func openSession(area sections.Area, ids ...int64) *session.Session {
	s := session.New(100)
	s.Open(testChat)
	items := mkItems(ids...)
	s.Store().Replace(items)
	for _, it := range items {
		s.Store().SetArea(it.ID, area)
	}
	s.Rebuild()
	return s
}

func archiveOf(n int) *history.Archive {
	a := history.NewArchive()
	items := make([]chat.Item, n)
	for i := range items {
		items[i] = chat.Item{ID: chat.ItemID(i + 1), Dir: chat.ReceivedDir()}
	}
	a.Put(testChat, items)
	return a
}

func pageMsg(ids ...int64) PageMsg {
	return PageMsg{
		ChatID: testChat.ID,
		Area:   sections.Bottom,
		Page:   &history.Page{Chat: testChat, Items: mkItems(ids...)},
	}
}

// recordingFetcher captures the requests it receives.
type recordingFetcher struct {
	mu    sync.Mutex
	rh    *int64
	p     history.Pagination
	page  *history.Page
	err   error
	calls int
}

func (f *recordingFetcher) FetchPage(_ context.Context, _ chat.Info, rh *int64, p history.Pagination) (*history.Page, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.rh = rh
	f.p = p
	return f.page, f.err
}

func TestBottomApply_Merge(t *testing.T) {
	tests := []struct {
		name     string
		existing []int64
		page     []int64
		want     []chat.ItemID
		inserted int
	}{
		{
			name:     "empty store takes the page",
			page:     []int64{1, 2, 3},
			want:     []chat.ItemID{1, 2, 3},
			inserted: 3,
		},
		{
			name:     "last two of five already stored",
			existing: []int64{1, 6, 7},
			page:     []int64{3, 4, 5, 6, 7},
			want:     []chat.ItemID{1, 3, 4, 5, 6, 7},
			inserted: 3,
		},
		{
			name:     "interleaved page",
			existing: []int64{2, 4},
			page:     []int64{1, 2, 3, 4, 5},
			want:     []chat.ItemID{1, 2, 3, 4, 5},
			inserted: 3,
		},
		{
			name:     "newer items are appended",
			existing: []int64{1, 2, 3},
			page:     []int64{2, 3, 4, 5},
			want:     []chat.ItemID{1, 2, 3, 4, 5},
			inserted: 2,
		},
		{
			name:     "anchor clamps at the head",
			existing: []int64{5},
			page:     []int64{1, 5, 5},
			want:     []chat.ItemID{1, 5},
			inserted: 1,
		},
		{
			name:     "repeated id in page",
			existing: []int64{1, 2},
			page:     []int64{3, 3},
			want:     []chat.ItemID{1, 2, 3},
			inserted: 1,
		},
		{
			name:     "nothing new",
			existing: []int64{1, 2, 3},
			page:     []int64{2, 3},
			want:     []chat.ItemID{1, 2, 3},
			inserted: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := openSession(sections.Bottom, tt.existing...)
			b := NewBottom(archiveOf(0), 5)

			res := b.Apply(sess, pageMsg(tt.page...))

			if res.Inserted != tt.inserted {
				t.Errorf("inserted %d, want %d", res.Inserted, tt.inserted)
			}
			if res.Retagged != 0 {
				t.Errorf("retagged %d items already in Bottom", res.Retagged)
			}
			if got := chat.IDs(sess.Store().Items()); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("items = %v, want %v", got, tt.want)
			}
			for _, id := range tt.page {
				if a, ok := sess.Store().Area(chat.ItemID(id)); !ok || a != sections.Bottom {
					t.Errorf("item %d area = %v, %v; want Bottom", id, a, ok)
				}
			}
		})
	}
}

func TestBottomApply_RetagsExistingItems(t *testing.T) {
	sess := openSession(sections.Current, 1, 2, 3)
	b := NewBottom(archiveOf(0), 5)

	res := b.Apply(sess, pageMsg(2, 3))
	if res.Inserted != 0 || res.Retagged != 2 {
		t.Fatalf("merge = %+v, want 0 inserted and 2 retagged", res)
	}
	if !res.Changed() {
		t.Error("a retag-only page should report a change")
	}
	if a, _ := sess.Store().Area(1); a != sections.Current {
		t.Errorf("item outside the page area = %v, want Current", a)
	}
	for _, id := range []chat.ItemID{2, 3} {
		if a, _ := sess.Store().Area(id); a != sections.Bottom {
			t.Errorf("item %d area = %v, want Bottom", id, a)
		}
	}
}

func TestBottomApply_Ignored(t *testing.T) {
	tests := []struct {
		name string
		msg  PageMsg
	}{
		{"stale chat", PageMsg{ChatID: "other", Page: &history.Page{Items: mkItems(9)}}},
		{"fetch error", PageMsg{ChatID: testChat.ID, Err: errors.New("boom"), Page: &history.Page{Items: mkItems(9)}}},
		{"nil page", PageMsg{ChatID: testChat.ID}},
		{"empty page", PageMsg{ChatID: testChat.ID, Page: &history.Page{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sess := openSession(sections.Bottom, 1, 2)
			b := NewBottom(archiveOf(0), 5)

			if res := b.Apply(sess, tt.msg); res.Changed() {
				t.Errorf("merge = %+v, want no change", res)
			}
			if got := chat.IDs(sess.Store().Items()); !reflect.DeepEqual(got, []chat.ItemID{1, 2}) {
				t.Errorf("store changed: %v", got)
			}
			if _, ok := sess.Store().Area(9); ok {
				t.Error("ignored page must not tag items")
			}
		})
	}
}

func TestBottomApply_ClosedSession(t *testing.T) {
	sess := openSession(sections.Bottom, 1)
	sess.Close()
	b := NewBottom(archiveOf(0), 5)

	if res := b.Apply(sess, pageMsg(2)); res.Changed() {
		t.Errorf("merge = %+v into a closed session", res)
	}
}

func TestBottomFetch(t *testing.T) {
	rh := int64(42)
	f := &recordingFetcher{page: &history.Page{Chat: testChat, Items: mkItems(1, 2)}}
	b := NewBottom(f, 7)

	msg := b.Fetch(context.Background(), testChat, &rh)()

	pm, ok := msg.(PageMsg)
	if !ok {
		t.Fatalf("Fetch produced %T, want PageMsg", msg)
	}
	if pm.ChatID != testChat.ID || pm.Area != sections.Bottom || !pm.Tail || pm.Err != nil {
		t.Errorf("unexpected message %+v", pm)
	}
	if f.p != history.Last(7) {
		t.Errorf("pagination = %+v, want Last(7)", f.p)
	}
	if f.rh == nil || *f.rh != 42 {
		t.Error("routing hint should be passed through")
	}
}

func TestBottomFetch_Timeout(t *testing.T) {
	a := archiveOf(10)
	a.SetLatency(time.Hour)
	b := NewBottom(a, 5)
	b.SetTimeout(10 * time.Millisecond)

	pm := b.Fetch(context.Background(), testChat, nil)().(PageMsg)

	if !perrors.Is(pm.Err, perrors.KindTimeout) {
		t.Errorf("err = %v, want timeout", pm.Err)
	}
	if pm.Page != nil {
		t.Error("timed out fetch should carry no page")
	}
}

func TestBottomLoad(t *testing.T) {
	loop := NewMainLoop()
	defer loop.Stop()

	sess := session.New(100)
	loop.Do(func() { sess.Open(testChat) })
	b := NewBottom(archiveOf(20), 5)

	if res := b.Load(context.Background(), loop, sess, testChat, nil); res.Inserted != 5 {
		t.Errorf("inserted %d, want 5", res.Inserted)
	}

	var got []chat.ItemID
	loop.Do(func() { got = chat.IDs(sess.Store().Items()) })
	if want := []chat.ItemID{16, 17, 18, 19, 20}; !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}

	// A second load of the same tail inserts nothing.
	if res := b.Load(context.Background(), loop, sess, testChat, nil); res.Changed() {
		t.Errorf("second Load = %+v, want no change", res)
	}
}

func TestBottomLoad_Error(t *testing.T) {
	loop := NewMainLoop()
	defer loop.Stop()

	sess := session.New(100)
	loop.Do(func() { sess.Open(chat.Info{ID: "missing"}) })
	b := NewBottom(archiveOf(5), 5)

	// The failed fetch is logged and leaves the session untouched.
	if res := b.Load(context.Background(), loop, sess, chat.Info{ID: "missing"}, nil); res.Changed() {
		t.Errorf("merge = %+v on a failed fetch", res)
	}
	var n int
	loop.Do(func() { n = sess.Store().Len() })
	if n != 0 {
		t.Errorf("store holds %d items after a failed fetch", n)
	}
}

func TestAreaOlder(t *testing.T) {
	sess := openSession(sections.Bottom, 11, 12, 13)
	a := NewArea(archiveOf(20), 4)

	cmd := a.Older(context.Background(), sess, nil)
	if cmd == nil {
		t.Fatal("Older returned nil")
	}
	pm := cmd().(PageMsg)
	if pm.Area != sections.Bottom {
		t.Errorf("area = %v, want the top section's area", pm.Area)
	}

	if n := a.Apply(sess, pm); n != 4 {
		t.Errorf("inserted %d, want 4", n)
	}
	want := []chat.ItemID{7, 8, 9, 10, 11, 12, 13}
	if got := chat.IDs(sess.Store().Items()); !reflect.DeepEqual(got, want) {
		t.Errorf("items = %v, want %v", got, want)
	}
}

func TestAreaOlder_NothingLoaded(t *testing.T) {
	a := NewArea(archiveOf(5), 4)

	if cmd := a.Older(context.Background(), session.New(10), nil); cmd != nil {
		t.Error("Older without an open chat should return nil")
	}

	sess := session.New(10)
	sess.Open(testChat)
	if cmd := a.Older(context.Background(), sess, nil); cmd != nil {
		t.Error("Older with an empty store should return nil")
	}
}

func TestAreaAround_MergesIntoBottom(t *testing.T) {
	sess := openSession(sections.Bottom, 9, 10)
	a := NewArea(archiveOf(20), 4)

	pm := a.Around(context.Background(), testChat, nil, 8)().(PageMsg)
	if pm.Area != sections.Destination {
		t.Fatalf("area = %v, want Destination", pm.Area)
	}
	if pm.Focus != 8 {
		t.Errorf("focus = %d, want the requested item", pm.Focus)
	}

	// The page 6..9 overlaps item 9 in Bottom, so Bottom absorbs it.
	if n := a.Apply(sess, pm); n != 3 {
		t.Errorf("inserted %d, want 3", n)
	}
	for _, id := range []chat.ItemID{6, 7, 8, 9, 10} {
		if ar, _ := sess.Store().Area(id); ar != sections.Bottom {
			t.Errorf("item %d area = %v, want Bottom", id, ar)
		}
	}
	if got := len(sess.Rebuild()); got != 1 {
		t.Errorf("sections = %d, want 1", got)
	}
}

func TestAreaAround_SeparateSection(t *testing.T) {
	sess := openSession(sections.Bottom, 19, 20)
	a := NewArea(archiveOf(20), 4)

	pm := a.Around(context.Background(), testChat, nil, 3)().(PageMsg)
	if n := a.Apply(sess, pm); n != 4 {
		t.Fatalf("inserted %d, want 4", n)
	}

	list := sess.Rebuild()
	if len(list) != 2 {
		t.Fatalf("sections = %d, want 2", len(list))
	}
	if list[0].Boundary.Area != sections.Destination || list[1].Boundary.Area != sections.Bottom {
		t.Errorf("areas = %v, %v", list[0].Boundary.Area, list[1].Boundary.Area)
	}
}

func TestAreaLanding(t *testing.T) {
	f := &recordingFetcher{}
	a := NewArea(f, 6)

	tests := []struct {
		name     string
		landing  chat.LandingSection
		unread   chat.ItemID
		wantArea  sections.Area
		wantPage  history.Pagination
		wantFocus chat.ItemID
	}{
		{"latest", chat.LandingLatest, 12, sections.Bottom, history.Last(6), 0},
		{"unread", chat.LandingUnread, 12, sections.Current, history.Around(12, 6), 12},
		{"unread without marker", chat.LandingUnread, 0, sections.Bottom, history.Last(6), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pm := a.Landing(context.Background(), testChat, nil, tt.landing, tt.unread)().(PageMsg)
			if pm.Area != tt.wantArea {
				t.Errorf("area = %v, want %v", pm.Area, tt.wantArea)
			}
			if pm.Tail {
				t.Error("landing pages are merged by the area loader")
			}
			if f.p != tt.wantPage {
				t.Errorf("pagination = %+v, want %+v", f.p, tt.wantPage)
			}
			if pm.Focus != tt.wantFocus {
				t.Errorf("focus = %d, want %d", pm.Focus, tt.wantFocus)
			}
		})
	}
}

func TestAreaApply_Stale(t *testing.T) {
	sess := openSession(sections.Bottom, 1)
	a := NewArea(archiveOf(0), 4)

	msg := PageMsg{ChatID: "other", Area: sections.Current, Page: &history.Page{Items: mkItems(5)}}
	if n := a.Apply(sess, msg); n != 0 {
		t.Errorf("inserted %d from a stale page", n)
	}
}

func TestMainLoop(t *testing.T) {
	loop := NewMainLoop()

	var order []int
	for i := range 10 {
		loop.Run(func() { order = append(order, i) })
	}
	var got []int
	loop.Do(func() { got = append(got, order...) })
	loop.Stop()
	loop.Stop()

	want := []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("order = %v, want %v", got, want)
	}
}

// PageMsg must satisfy tea.Msg so it can flow through Update.
var _ tea.Msg = PageMsg{}
