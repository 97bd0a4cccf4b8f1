// Package demo replays scripted walkthroughs of a chat against a generated
// history. A scenario drives the real app model, so the frames it captures
// show exactly what a user would see without a terminal or a live source.
package demo

import (
	"time"

	"github.com/zhubert/parley/internal/chat"
)

// StepType represents the type of action in a demo step.
type StepType int

const (
	// StepWait pauses for a duration (for timing/pacing).
	StepWait StepType = iota
	// StepKey sends a single key press.
	StepKey
	// StepIncoming appends new messages to the chat and polls for them.
	StepIncoming
	// StepCapture captures the current frame (for selective capture).
	StepCapture
	// StepAnnotate adds an annotation/caption to the next captured frame.
	StepAnnotate
)

func (t StepType) String() string {
	switch t {
	case StepWait:
		return "wait"
	case StepKey:
		return "key"
	case StepIncoming:
		return "incoming"
	case StepCapture:
		return "capture"
	case StepAnnotate:
		return "annotate"
	default:
		return "unknown"
	}
}

// Step represents a single action in a demo scenario.
type Step struct {
	Type        StepType
	Description string // Human-readable description of what this step does

	// For StepKey
	Key string
	// Repeat sends Key this many times; zero means once.
	Repeat int

	// For StepIncoming
	Count int

	// For StepWait
	Duration time.Duration

	// For StepAnnotate
	Annotation string
}

// Scenario defines a complete demo scenario.
type Scenario struct {
	Name        string
	Description string
	Width       int // Terminal width (default 100)
	Height      int // Terminal height (default 30)
	Setup       *ScenarioSetup
	Steps       []Step
}

// ScenarioSetup defines the generated chat a scenario starts from.
type ScenarioSetup struct {
	// Seed makes the generated history reproducible.
	Seed int64
	// Items is the length of the generated history.
	Items int
	// PageSize is the number of items per fetch.
	PageSize int
	// Capacity bounds the loaded items before eviction; zero keeps the
	// config default.
	Capacity int
	// Landing is where the chat opens.
	Landing chat.LandingSection
}

// DefaultSetup returns a small chat that opens at the latest items.
func DefaultSetup() *ScenarioSetup {
	return &ScenarioSetup{
		Seed:     1,
		Items:    120,
		PageSize: 20,
		Landing:  chat.LandingLatest,
	}
}

// Validate fills in defaults and checks that the scenario can run.
func (s *Scenario) Validate() error {
	if s.Name == "" {
		return &ValidationError{Field: "Name", Message: "scenario name is required"}
	}
	if s.Width <= 0 {
		s.Width = 100
	}
	if s.Height <= 0 {
		s.Height = 30
	}
	if s.Setup == nil {
		s.Setup = DefaultSetup()
	}
	if s.Setup.Items < 1 {
		return &ValidationError{Field: "Setup.Items", Message: "the chat needs at least one item"}
	}
	if s.Setup.PageSize < 1 {
		return &ValidationError{Field: "Setup.PageSize", Message: "page size must be positive"}
	}
	if s.Setup.Capacity != 0 && s.Setup.Capacity < s.Setup.PageSize {
		return &ValidationError{Field: "Setup.Capacity", Message: "capacity must not be smaller than the page size"}
	}
	for _, st := range s.Steps {
		if st.Type == StepKey && st.Key == "" {
			return &ValidationError{Field: "Steps", Message: "key step without a key"}
		}
		if st.Type == StepIncoming && st.Count < 1 {
			return &ValidationError{Field: "Steps", Message: "incoming step needs a positive count"}
		}
	}
	return nil
}

// ValidationError represents a scenario validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "validation error: " + e.Field + ": " + e.Message
}

// Step builder functions for fluent scenario construction

// Wait creates a wait step.
func Wait(d time.Duration) Step {
	return Step{
		Type:     StepWait,
		Duration: d,
	}
}

// Key creates a key press step.
func Key(key string) Step {
	return Step{
		Type: StepKey,
		Key:  key,
	}
}

// KeyWithDesc creates a key press step with a description.
func KeyWithDesc(key, description string) Step {
	return Step{
		Type:        StepKey,
		Key:         key,
		Description: description,
	}
}

// Keys presses key n times.
func Keys(key string, n int) Step {
	return Step{
		Type:   StepKey,
		Key:    key,
		Repeat: n,
	}
}

// Incoming makes n new messages arrive and polls the live tail.
func Incoming(n int) Step {
	return Step{
		Type:  StepIncoming,
		Count: n,
	}
}

// Annotate creates an annotation step.
func Annotate(text string) Step {
	return Step{
		Type:       StepAnnotate,
		Annotation: text,
	}
}

// Capture creates a frame capture step.
func Capture() Step {
	return Step{
		Type: StepCapture,
	}
}
