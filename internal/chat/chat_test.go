package chat

import (
	"encoding/json"
	"testing"
)

func TestDirection_SameSender(t *testing.T) {
	alice := GroupDir(Member{ID: "alice"})
	bob := GroupDir(Member{ID: "bob"})

	tests := []struct {
		name string
		a, b Direction
		want bool
	}{
		{"same member", alice, GroupDir(Member{ID: "alice"}), true},
		{"different member", alice, bob, false},
		{"group vs sent", alice, SentDir(), false},
		{"sent vs sent", SentDir(), SentDir(), true},
		{"received vs sent", ReceivedDir(), SentDir(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.SameSender(tt.b); got != tt.want {
				t.Errorf("SameSender() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDirection_GroupWithoutMember(t *testing.T) {
	d := Direction{Kind: GroupReceived}
	if d.IsGroupReceived() {
		t.Error("group direction without member should not count as group received")
	}
	if d.MemberID() != "" {
		t.Errorf("MemberID() = %q, want empty", d.MemberID())
	}
}

func TestItem_JSON(t *testing.T) {
	data := `{"id": 7, "dir": {"kind": "group_received", "member": {"id": "m1", "display_name": "Ann"}}, "merge_category": "deleted", "text": "hi"}`

	var it Item
	if err := json.Unmarshal([]byte(data), &it); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if it.ID != 7 || it.Dir.MemberID() != "m1" || it.Category != CategoryDeleted {
		t.Errorf("unexpected item: %+v", it)
	}
	if !it.Mergeable() {
		t.Error("item with category should be mergeable")
	}

	if err := json.Unmarshal([]byte(`{"id": 1, "dir": {"kind": "sideways"}}`), &it); err == nil {
		t.Error("expected error for unknown direction")
	}
}

func TestParseLandingSection(t *testing.T) {
	tests := []struct {
		in      string
		want    LandingSection
		wantErr bool
	}{
		{"", LandingLatest, false},
		{"latest", LandingLatest, false},
		{"unread", LandingUnread, false},
		{"middle", LandingLatest, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLandingSection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
