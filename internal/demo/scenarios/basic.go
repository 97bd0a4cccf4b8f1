// Package scenarios contains built-in demo scenarios for Parley.
package scenarios

import (
	"time"

	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/demo"
	"github.com/zhubert/parley/internal/keys"
)

// Basic walks through a busy group chat:
// - Opening at the latest messages
// - Scrolling to the top of what is loaded and pulling in older history
// - New messages arriving while scrolled away from the bottom
// - Jumping back down to read them
var Basic = &demo.Scenario{
	Name:        "basic",
	Description: "Open a chat, load older history, catch up on new messages",
	Width:       100,
	Height:      30,
	Setup: &demo.ScenarioSetup{
		Seed:     7,
		Items:    150,
		PageSize: 20,
		Landing:  chat.LandingLatest,
	},
	Steps: []demo.Step{
		demo.Annotate("The chat opens at its latest messages"),
		demo.Wait(1 * time.Second),

		demo.KeyWithDesc(keys.Home, "Select the oldest loaded row"),
		demo.KeyWithDesc(keys.Up, "Ask for older history"),
		demo.Annotate("Older history is merged above the loaded items"),
		demo.Wait(1 * time.Second),

		demo.Incoming(3),
		demo.Annotate("New messages arrive while scrolled up"),
		demo.Capture(),

		demo.KeyWithDesc(keys.End, "Jump to the bottom"),
		demo.Annotate("Back at the bottom, caught up"),
		demo.Wait(1 * time.Second),
	},
}

// Unread opens a chat at its unread marker, then follows live traffic once
// the reader has caught up.
var Unread = &demo.Scenario{
	Name:        "unread",
	Description: "Land on the first unread message and follow live traffic",
	Width:       100,
	Height:      30,
	Setup: &demo.ScenarioSetup{
		Seed:     11,
		Items:    200,
		PageSize: 15,
		Landing:  chat.LandingUnread,
	},
	Steps: []demo.Step{
		demo.Annotate("The chat opens around the first unread message"),
		demo.Wait(1 * time.Second),

		demo.Keys(keys.Down, 5),
		demo.Capture(),

		demo.KeyWithDesc(keys.End, "Jump to the bottom"),
		demo.Incoming(2),
		demo.Annotate("While at the bottom, new messages simply appear"),
		demo.Capture(),
	},
}

// Eviction keeps a small window of history and shows old sections being
// dropped as live traffic pushes past it.
var Eviction = &demo.Scenario{
	Name:        "eviction",
	Description: "Drop scrolled-away history once the loaded window is full",
	Width:       100,
	Height:      30,
	Setup: &demo.ScenarioSetup{
		Seed:     3,
		Items:    80,
		PageSize: 10,
		Capacity: 20,
		Landing:  chat.LandingLatest,
	},
	Steps: []demo.Step{
		demo.Incoming(6),
		demo.Incoming(8),
		demo.Annotate("Only the newest items stay loaded"),
		demo.Incoming(8),
		demo.Wait(1 * time.Second),
	},
}

// All returns all built-in scenarios.
func All() []*demo.Scenario {
	return []*demo.Scenario{
		Basic,
		Unread,
		Eviction,
	}
}

// Get returns a copy of the scenario with the given name, or nil if not
// found. Callers may adjust the copy's dimensions freely.
func Get(name string) *demo.Scenario {
	for _, s := range All() {
		if s.Name == name {
			c := *s
			return &c
		}
	}
	return nil
}

// Names returns the names of all built-in scenarios.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}
