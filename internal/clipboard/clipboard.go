// Package clipboard copies chat text to and from the system clipboard.
package clipboard

import (
	"sync"

	"golang.design/x/clipboard"

	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

var (
	mu          sync.Mutex
	initialized bool

	// write and read are swapped out in tests.
	write = func(b []byte) { clipboard.Write(clipboard.FmtText, b) }
	read  = func() []byte { return clipboard.Read(clipboard.FmtText) }
	setup = clipboard.Init
)

// Init initializes the clipboard. Must be called before other functions.
// This is safe to call multiple times.
func Init() error {
	mu.Lock()
	defer mu.Unlock()
	return initLocked()
}

func initLocked() error {
	if initialized {
		return nil
	}
	if err := setup(); err != nil {
		logger.WithComponent("clipboard").Warn("failed to initialize", "error", err)
		return perrors.E(perrors.Op("clipboard.Init"), perrors.KindIO, err)
	}
	initialized = true
	logger.WithComponent("clipboard").Debug("initialized")
	return nil
}

// WriteText copies text to the clipboard.
func WriteText(text string) error {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return err
	}
	write([]byte(text))
	logger.WithComponent("clipboard").Debug("copied text", "bytes", len(text))
	return nil
}

// ReadText reads text from the clipboard.
func ReadText() (string, error) {
	mu.Lock()
	defer mu.Unlock()
	if err := initLocked(); err != nil {
		return "", err
	}
	return string(read()), nil
}
