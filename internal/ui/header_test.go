package ui

import (
	"regexp"
	"strings"
	"testing"
	"unicode/utf8"
)

// stripANSI removes ANSI escape codes from a string for testing
var ansiRegex = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansiRegex.ReplaceAllString(s, "")
}

func TestNewHeader(t *testing.T) {
	header := NewHeader()

	if header == nil {
		t.Fatal("NewHeader() returned nil")
	}

	if header.chatName != "" {
		t.Error("Expected empty chat name initially")
	}

	if header.status != "" {
		t.Error("Expected empty status initially")
	}
}

func TestHeader_SetWidth(t *testing.T) {
	header := NewHeader()

	header.SetWidth(120)

	if header.width != 120 {
		t.Errorf("Expected width 120, got %d", header.width)
	}
}

func TestHeader_View(t *testing.T) {
	tests := []struct {
		name     string
		chatName string
		status   string
		want     []string
		notWant  []string
	}{
		{
			name:    "no chat",
			want:    []string{"parley"},
			notWant: []string{"·"},
		},
		{
			name:     "chat without status",
			chatName: "Weekend plans",
			want:     []string{"parley", "Weekend plans"},
			notWant:  []string{"·"},
		},
		{
			name:     "chat with status",
			chatName: "Weekend plans",
			status:   "120 items",
			want:     []string{"Weekend plans · 120 items"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := NewHeader()
			header.SetWidth(80)
			header.SetChatName(tt.chatName)
			header.SetStatus(tt.status)

			view := stripANSI(header.View())
			for _, s := range tt.want {
				if !strings.Contains(view, s) {
					t.Errorf("view should contain %q, got %q", s, view)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(view, s) {
					t.Errorf("view should not contain %q, got %q", s, view)
				}
			}
		})
	}
}

func TestHeader_View_FillsWidth(t *testing.T) {
	header := NewHeader()
	header.SetWidth(60)
	header.SetChatName("Book club")

	view := stripANSI(header.View())
	if got := utf8.RuneCountInString(view); got != 60 {
		t.Errorf("header width = %d, want 60", got)
	}
	if !strings.HasSuffix(view, "Book club ") {
		t.Errorf("chat name should be right-aligned, got %q", view)
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		hex     string
		r, g, b int
	}{
		{"#7C3AED", 0x7C, 0x3A, 0xED},
		{"#000000", 0, 0, 0},
		{"7C3AED", 0, 0, 0},
		{"", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.hex, func(t *testing.T) {
			r, g, b := parseHexColor(tt.hex)
			if r != tt.r || g != tt.g || b != tt.b {
				t.Errorf("parseHexColor(%q) = (%d, %d, %d), want (%d, %d, %d)", tt.hex, r, g, b, tt.r, tt.g, tt.b)
			}
		})
	}
}
