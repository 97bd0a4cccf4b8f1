package demo

import (
	"bufio"
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestGenerateASCIICast(t *testing.T) {
	frames := []Frame{
		{Content: "first", Delay: 500 * time.Millisecond},
		{Content: "line one\nline two", Delay: time.Second},
	}

	var buf bytes.Buffer
	if err := GenerateASCIICast(&buf, frames, 80, 24); err != nil {
		t.Fatalf("GenerateASCIICast() failed: %v", err)
	}

	scanner := bufio.NewScanner(&buf)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if len(lines) != 3 {
		t.Fatalf("got %d lines, want header plus 2 events", len(lines))
	}

	var header castHeader
	if err := json.Unmarshal([]byte(lines[0]), &header); err != nil {
		t.Fatalf("header is not JSON: %v", err)
	}
	if header.Version != 2 || header.Width != 80 || header.Height != 24 {
		t.Errorf("header = %+v", header)
	}

	tests := []struct {
		line    string
		wantAt  float64
		wantOut string
	}{
		{lines[1], 0.5, clearScreen + "first"},
		{lines[2], 1.5, clearScreen + "line one\r\nline two"},
	}
	for _, tt := range tests {
		var event []any
		if err := json.Unmarshal([]byte(tt.line), &event); err != nil {
			t.Fatalf("event is not JSON: %v", err)
		}
		if len(event) != 3 {
			t.Fatalf("event = %v, want [time, type, data]", event)
		}
		if at := event[0].(float64); at != tt.wantAt {
			t.Errorf("time = %v, want %v", at, tt.wantAt)
		}
		if event[1] != "o" {
			t.Errorf("type = %v, want o", event[1])
		}
		if out := event[2].(string); out != tt.wantOut {
			t.Errorf("data = %q, want %q", out, tt.wantOut)
		}
	}
}

func TestGenerateASCIICast_NoFrames(t *testing.T) {
	var buf bytes.Buffer
	if err := GenerateASCIICast(&buf, nil, 100, 30); err != nil {
		t.Fatalf("GenerateASCIICast() failed: %v", err)
	}
	if n := strings.Count(buf.String(), "\n"); n != 1 {
		t.Errorf("got %d lines, want only the header", n)
	}
}
