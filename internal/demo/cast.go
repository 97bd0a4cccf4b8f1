package demo

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// clearScreen homes the cursor and clears the terminal before each frame.
const clearScreen = "\x1b[2J\x1b[H"

type castHeader struct {
	Version   int               `json:"version"`
	Width     int               `json:"width"`
	Height    int               `json:"height"`
	Timestamp int64             `json:"timestamp,omitempty"`
	Env       map[string]string `json:"env,omitempty"`
}

// GenerateASCIICast writes frames as an asciinema v2 recording. Each frame
// replaces the whole screen after its delay.
func GenerateASCIICast(w io.Writer, frames []Frame, width, height int) error {
	enc := json.NewEncoder(w)
	if err := enc.Encode(castHeader{
		Version: 2,
		Width:   width,
		Height:  height,
		Env:     map[string]string{"TERM": "xterm-256color"},
	}); err != nil {
		return fmt.Errorf("writing cast header: %w", err)
	}

	var at time.Duration
	for i, f := range frames {
		at += f.Delay
		out := clearScreen + strings.ReplaceAll(f.Content, "\n", "\r\n")
		if err := enc.Encode([]any{at.Seconds(), "o", out}); err != nil {
			return fmt.Errorf("writing frame %d: %w", i, err)
		}
	}
	return nil
}
