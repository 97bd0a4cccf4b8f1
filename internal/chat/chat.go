// Package chat defines the chat entities the viewer works with: items,
// their direction and merge category, and the chat they belong to.
package chat

import (
	"encoding/json"
	"fmt"
	"time"
)

// ItemID uniquely identifies a chat item. IDs increase monotonically with
// the order items were created in.
type ItemID int64

// MergeCategory is the grouping key for visually merged items. The empty
// category means the item is never merged with its neighbours.
type MergeCategory string

// NoCategory is the null merge category.
const NoCategory MergeCategory = ""

// Well-known merge categories produced by the chat backend.
const (
	CategoryMemberEvent MergeCategory = "rcv_group_event"
	CategoryChatFeature MergeCategory = "chat_feature"
	CategoryDeleted     MergeCategory = "deleted"
	CategoryModerated   MergeCategory = "moderated"
)

// Member identifies a participant of a group chat.
type Member struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// DirectionKind tells who sent an item.
type DirectionKind int

const (
	Sent DirectionKind = iota
	Received
	GroupReceived
)

func (k DirectionKind) String() string {
	switch k {
	case Sent:
		return "sent"
	case Received:
		return "received"
	case GroupReceived:
		return "group_received"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the kind by name.
func (k DirectionKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

// UnmarshalJSON decodes a kind name.
func (k *DirectionKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "sent":
		*k = Sent
	case "received":
		*k = Received
	case "group_received":
		*k = GroupReceived
	default:
		return fmt.Errorf("unknown direction %q", s)
	}
	return nil
}

// Direction is the sender side of an item. Member is set only for
// GroupReceived items.
type Direction struct {
	Kind   DirectionKind `json:"kind"`
	Member *Member       `json:"member,omitempty"`
}

// SentDir returns the direction of an item sent by the local user.
func SentDir() Direction { return Direction{Kind: Sent} }

// ReceivedDir returns the direction of an item received in a direct chat.
func ReceivedDir() Direction { return Direction{Kind: Received} }

// GroupDir returns the direction of an item received from a group member.
func GroupDir(m Member) Direction {
	return Direction{Kind: GroupReceived, Member: &m}
}

// IsSent reports whether the local user sent the item.
func (d Direction) IsSent() bool { return d.Kind == Sent }

// IsGroupReceived reports whether the item came from a group member.
func (d Direction) IsGroupReceived() bool {
	return d.Kind == GroupReceived && d.Member != nil
}

// MemberID returns the group member ID, or "" for non-group items.
func (d Direction) MemberID() string {
	if !d.IsGroupReceived() {
		return ""
	}
	return d.Member.ID
}

// SameSender reports whether two directions come from the same sender.
func (d Direction) SameSender(o Direction) bool {
	if d.Kind != o.Kind {
		return false
	}
	return d.MemberID() == o.MemberID()
}

// Item is a single chat item.
type Item struct {
	ID       ItemID        `json:"id"`
	Dir      Direction     `json:"dir"`
	Category MergeCategory `json:"merge_category,omitempty"`
	Text     string        `json:"text"`
	SentAt   time.Time     `json:"sent_at"`
}

// Mergeable reports whether the item has a merge category.
func (i Item) Mergeable() bool { return i.Category != NoCategory }

// Type is the kind of chat.
type Type string

const (
	Direct Type = "direct"
	Group  Type = "group"
)

// Info describes the chat an operation is issued for.
type Info struct {
	ID    string `json:"id"`
	Type  Type   `json:"type"`
	APIID int64  `json:"api_id"`
	Name  string `json:"name"`
}

// LandingSection is where a chat opens.
type LandingSection int

const (
	LandingLatest LandingSection = iota
	LandingUnread
)

func (s LandingSection) String() string {
	if s == LandingUnread {
		return "unread"
	}
	return "latest"
}

// ParseLandingSection parses "latest" or "unread".
func ParseLandingSection(s string) (LandingSection, error) {
	switch s {
	case "", "latest":
		return LandingLatest, nil
	case "unread":
		return LandingUnread, nil
	default:
		return LandingLatest, fmt.Errorf("unknown landing section %q", s)
	}
}

// IDs returns the IDs of items in order.
func IDs(items []Item) []ItemID {
	ids := make([]ItemID, len(items))
	for i, it := range items {
		ids[i] = it.ID
	}
	return ids
}
