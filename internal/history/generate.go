package history

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/zhubert/parley/internal/chat"
)

var members = []chat.Member{
	{ID: "m-ada", DisplayName: "Ada"},
	{ID: "m-brook", DisplayName: "Brook"},
	{ID: "m-cyrus", DisplayName: "Cyrus"},
	{ID: "m-dana", DisplayName: "Dana"},
}

var phrases = []string{
	"morning all",
	"did anyone look at the release notes?",
	"yes, the sync fix landed",
	"I'll test it tonight",
	"sounds good",
	"here's the snippet:\n```go\nfor _, s := range list {\n\tfmt.Println(s.Boundary)\n}\n```",
	"ok",
	"can we move the call to 3pm?",
	"works for me",
	"thanks!",
}

var events = []string{
	"joined the group",
	"left the group",
	"changed the group picture",
	"was added by Ada",
}

// Generate builds a deterministic synthetic group chat of n items. Runs of
// member events and deleted messages give the merge categories something to
// group.
func Generate(seed int64, n int) *File {
	r := rand.New(rand.NewSource(seed))
	id, err := uuid.NewRandomFromReader(r)
	if err != nil {
		id = uuid.New()
	}

	info := chat.Info{
		ID:    id.String(),
		Type:  chat.Group,
		APIID: r.Int63n(1 << 20),
		Name:  fmt.Sprintf("demo-%d", seed),
	}

	start := time.Date(2026, time.January, 5, 9, 0, 0, 0, time.UTC)
	items := make([]chat.Item, 0, n)
	for len(items) < n {
		next := chat.ItemID(len(items) + 1)
		at := start.Add(time.Duration(len(items)) * 90 * time.Second)

		switch roll := r.Intn(10); {
		case roll == 0:
			// a burst of member events merges into one collapsed run
			burst := 2 + r.Intn(4)
			for k := 0; k < burst && len(items) < n; k++ {
				m := members[r.Intn(len(members))]
				items = append(items, chat.Item{
					ID:       chat.ItemID(len(items) + 1),
					Dir:      chat.GroupDir(m),
					Category: chat.CategoryMemberEvent,
					Text:     m.DisplayName + " " + events[r.Intn(len(events))],
					SentAt:   at,
				})
			}
		case roll == 1:
			items = append(items, chat.Item{
				ID:       next,
				Dir:      chat.GroupDir(members[r.Intn(len(members))]),
				Category: chat.CategoryDeleted,
				Text:     "message deleted",
				SentAt:   at,
			})
		case roll < 4:
			items = append(items, chat.Item{
				ID:     next,
				Dir:    chat.SentDir(),
				Text:   phrases[r.Intn(len(phrases))],
				SentAt: at,
			})
		default:
			items = append(items, chat.Item{
				ID:     next,
				Dir:    chat.GroupDir(members[r.Intn(len(members))]),
				Text:   phrases[r.Intn(len(phrases))],
				SentAt: at,
			})
		}
	}

	f := &File{Chat: info, Items: items}
	if n > 10 {
		f.Unread = items[n-n/5].ID
	}
	return f
}

// NewMessage returns a plausible incoming message with the given ID, for
// simulating live traffic.
func NewMessage(r *rand.Rand, id chat.ItemID) chat.Item {
	return chat.Item{
		ID:     id,
		Dir:    chat.GroupDir(members[r.Intn(len(members))]),
		Text:   phrases[r.Intn(len(phrases))],
		SentAt: time.Now(),
	}
}
