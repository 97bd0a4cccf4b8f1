package loader

import "sync"

// Executor runs functions on the single goroutine allowed to mutate a
// session.
type Executor interface {
	// Run queues fn and returns immediately.
	Run(fn func())
	// Do runs fn and waits for it to finish.
	Do(fn func())
}

// MainLoop is an Executor backed by one goroutine draining a queue. It is
// the main loop for callers without a Bubble Tea program.
type MainLoop struct {
	queue chan func()
	done  chan struct{}
	once  sync.Once
}

// NewMainLoop starts a main loop.
func NewMainLoop() *MainLoop {
	l := &MainLoop{
		queue: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go l.loop()
	return l
}

func (l *MainLoop) loop() {
	defer close(l.done)
	for fn := range l.queue {
		fn()
	}
}

// Run queues fn.
func (l *MainLoop) Run(fn func()) {
	l.queue <- fn
}

// Do runs fn on the loop and blocks until it returns.
func (l *MainLoop) Do(fn func()) {
	finished := make(chan struct{})
	l.queue <- func() {
		defer close(finished)
		fn()
	}
	<-finished
}

// Stop drains queued work and stops the loop. Run and Do must not be called
// afterwards.
func (l *MainLoop) Stop() {
	l.once.Do(func() { close(l.queue) })
	<-l.done
}
