package app

import (
	"log/slog"
	"math/rand"

	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/logger"
)

// DefaultFeedRate is the chance that a poll sees new traffic.
const DefaultFeedRate = 0.3

// Feed appends synthetic messages to one chat of an archive, standing in
// for other participants while the TUI polls.
type Feed struct {
	archive *history.Archive
	chatID  string
	rng     *rand.Rand
	rate    float64
	log     *slog.Logger
}

// NewFeed creates a feed for chatID. rate is clamped to [0, 1].
func NewFeed(archive *history.Archive, chatID string, seed int64, rate float64) *Feed {
	return &Feed{
		archive: archive,
		chatID:  chatID,
		rng:     rand.New(rand.NewSource(seed)),
		rate:    min(max(rate, 0), 1),
		log:     logger.WithComponent("feed"),
	}
}

// Step appends zero, one or two messages and returns how many.
func (f *Feed) Step() int {
	if f.rng.Float64() >= f.rate {
		return 0
	}
	n := 1 + f.rng.Intn(2)
	for range n {
		it := history.NewMessage(f.rng, f.archive.NextID(f.chatID))
		if err := f.archive.Append(f.chatID, it); err != nil {
			f.log.Warn("feed append failed", "chatID", f.chatID, "error", err)
			return 0
		}
	}
	return n
}
