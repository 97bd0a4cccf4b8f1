package demo

import (
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/app"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/keys"
	"github.com/zhubert/parley/internal/logger"
)

// maxCmdDepth bounds how many follow-up commands one step may chain.
const maxCmdDepth = 16

// Frame represents a captured frame from the demo.
type Frame struct {
	Content    string        // ANSI-encoded terminal content
	Delay      time.Duration // Delay before this frame
	Annotation string        // Optional annotation/caption
	StepIndex  int           // Index of the step that produced this frame
}

// ExecutorConfig configures the demo executor.
type ExecutorConfig struct {
	// CaptureEveryStep captures a frame after every key press (default: false)
	CaptureEveryStep bool

	// KeyDelay is the delay after key presses (default: 100ms)
	KeyDelay time.Duration

	// IncomingDelay is the delay of the frame after new messages arrive
	// (default: 300ms)
	IncomingDelay time.Duration

	// CmdTimeout is how long a command may block before it is dropped.
	// Ticks never finish within it, which keeps polling and flash expiry
	// out of the replay. (default: 250ms)
	CmdTimeout time.Duration
}

// DefaultExecutorConfig returns the default executor configuration.
func DefaultExecutorConfig() ExecutorConfig {
	return ExecutorConfig{
		CaptureEveryStep: false,
		KeyDelay:         100 * time.Millisecond,
		IncomingDelay:    300 * time.Millisecond,
		CmdTimeout:       250 * time.Millisecond,
	}
}

// Executor runs demo scenarios and captures frames.
type Executor struct {
	config  ExecutorConfig
	model   *app.Model
	archive *history.Archive
	chatID  string
	rng     *rand.Rand
	frames  []Frame

	currentAnnotation string
	log               *slog.Logger
}

// NewExecutor creates a new demo executor.
func NewExecutor(cfg ExecutorConfig) *Executor {
	if cfg.CmdTimeout <= 0 {
		cfg.CmdTimeout = DefaultExecutorConfig().CmdTimeout
	}
	return &Executor{
		config: cfg,
		frames: []Frame{},
		log:    logger.WithComponent("demo"),
	}
}

// Run executes a scenario and returns the captured frames.
func (e *Executor) Run(scenario *Scenario) ([]Frame, error) {
	if err := scenario.Validate(); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	e.setup(scenario)
	defer e.model.Shutdown()

	if !e.model.Session().IsActive(e.chatID) {
		return nil, fmt.Errorf("chat %s did not open", e.chatID)
	}
	if e.model.Session().Store().Len() == 0 {
		return nil, fmt.Errorf("landing page of chat %s loaded nothing", e.chatID)
	}

	// Capture initial frame
	e.captureFrame(0, 500*time.Millisecond)

	for i, step := range scenario.Steps {
		if err := e.executeStep(i, step); err != nil {
			return nil, fmt.Errorf("step %d (%s) failed: %w", i, step.Type, err)
		}
	}

	return e.frames, nil
}

// setup generates the chat, sizes the model and applies its landing page.
func (e *Executor) setup(scenario *Scenario) {
	s := scenario.Setup
	file := history.Generate(s.Seed, s.Items)
	e.archive = history.NewArchive()
	e.archive.Add(file)
	e.chatID = file.Chat.ID
	e.rng = rand.New(rand.NewSource(s.Seed))

	cfg := config.Default()
	cfg.PageSize = s.PageSize
	cfg.SectionCapacity = max(cfg.SectionCapacity, s.PageSize)
	if s.Capacity > 0 {
		cfg.SectionCapacity = s.Capacity
	}
	cfg.SetLandingSection(s.Landing)

	e.model = app.New(cfg, e.archive, app.WithChat(e.chatID))
	e.model.Update(tea.WindowSizeMsg{
		Width:  scenario.Width,
		Height: scenario.Height,
	})
	e.run(e.model.Init())
}

// executeStep executes a single demo step.
func (e *Executor) executeStep(index int, step Step) error {
	switch step.Type {
	case StepWait:
		e.captureFrame(index, step.Duration)

	case StepKey:
		for range max(step.Repeat, 1) {
			e.sendKey(step.Key)
			if e.config.CaptureEveryStep {
				e.captureFrame(index, e.config.KeyDelay)
			}
		}

	case StepIncoming:
		for range step.Count {
			it := history.NewMessage(e.rng, e.archive.NextID(e.chatID))
			if err := e.archive.Append(e.chatID, it); err != nil {
				return err
			}
		}
		e.deliver(app.PollTickMsg(time.Now()))
		e.captureFrame(index, e.config.IncomingDelay)

	case StepAnnotate:
		e.currentAnnotation = step.Annotation
		// Don't capture, annotation applies to next frame

	case StepCapture:
		e.captureFrame(index, 0)

	default:
		return fmt.Errorf("unknown step type %d", step.Type)
	}

	return nil
}

// captureFrame captures the current view as a frame.
func (e *Executor) captureFrame(stepIndex int, delay time.Duration) {
	e.frames = append(e.frames, Frame{
		Content:    e.model.RenderToString(),
		Delay:      delay,
		Annotation: e.currentAnnotation,
		StepIndex:  stepIndex,
	})

	// Clear annotation after use
	e.currentAnnotation = ""
}

// sendKey sends a key press to the model and runs what it returns.
func (e *Executor) sendKey(key string) {
	e.deliver(keyPress(key))
}

// deliver hands msg to the model and runs the resulting commands.
func (e *Executor) deliver(msg tea.Msg) {
	_, cmd := e.model.Update(msg)
	e.run(cmd)
}

// run executes cmd and feeds its messages back into the model until nothing
// is left to do. Batches run concurrently but apply in order, so a replay is
// deterministic.
func (e *Executor) run(cmd tea.Cmd) {
	e.runDepth([]tea.Cmd{cmd}, 0)
}

func (e *Executor) runDepth(cmds []tea.Cmd, depth int) {
	if depth > maxCmdDepth {
		e.log.Warn("command chain too deep, dropping", "depth", depth)
		return
	}
	for _, msg := range e.collect(cmds) {
		switch msg := msg.(type) {
		case nil:
		case tea.QuitMsg:
			return
		case tea.BatchMsg:
			e.runDepth(msg, depth+1)
		default:
			_, next := e.model.Update(msg)
			e.runDepth([]tea.Cmd{next}, depth+1)
		}
	}
}

// collect runs cmds concurrently and returns their messages in order.
// Commands still blocked at the timeout yield nil.
func (e *Executor) collect(cmds []tea.Cmd) []tea.Msg {
	results := make([]chan tea.Msg, len(cmds))
	for i, cmd := range cmds {
		if cmd == nil {
			continue
		}
		ch := make(chan tea.Msg, 1)
		results[i] = ch
		go func() { ch <- cmd() }()
	}

	timer := time.NewTimer(e.config.CmdTimeout)
	defer timer.Stop()
	expired := false

	msgs := make([]tea.Msg, len(cmds))
	for i, ch := range results {
		if ch == nil {
			continue
		}
		if expired {
			select {
			case msgs[i] = <-ch:
			default:
			}
			continue
		}
		select {
		case msgs[i] = <-ch:
		case <-timer.C:
			expired = true
		}
	}
	return msgs
}

// keyPress converts a key string to a tea.KeyPressMsg.
// Mirrors the helper in the app tests.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.Space:
		return tea.KeyPressMsg{Code: tea.KeySpace}
	case keys.Escape:
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Home:
		return tea.KeyPressMsg{Code: tea.KeyHome}
	case keys.End:
		return tea.KeyPressMsg{Code: tea.KeyEnd}
	case keys.PgUp:
		return tea.KeyPressMsg{Code: tea.KeyPgUp}
	case keys.PgDown:
		return tea.KeyPressMsg{Code: tea.KeyPgDown}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	default:
		if len(key) == 1 {
			return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
		}
		return tea.KeyPressMsg{Text: key}
	}
}
