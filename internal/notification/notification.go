// Package notification provides cross-platform desktop notifications.
// It uses the beeep library to send notifications on macOS, Linux, and Windows.
package notification

import (
	"fmt"

	"github.com/gen2brain/beeep"
	"github.com/zhubert/parley/internal/logger"
)

// AppName is the title used for notifications.
const AppName = "Parley"

var notifier = beeep.Notify

// SetNotifier replaces the function used to deliver notifications.
func SetNotifier(fn func(title, message string, icon any) error) {
	notifier = fn
}

// ResetNotifier restores beeep as the notifier.
func ResetNotifier() {
	notifier = beeep.Notify
}

// Send sends a desktop notification with the given title and message.
func Send(title, message string) error {
	log := logger.WithComponent("notification")
	log.Debug("sending notification", "title", title, "message", message)
	// Empty icon: beeep picks the platform default
	err := notifier(title, message, "")
	if err != nil {
		log.Warn("failed to send notification", "error", err)
	}
	return err
}

// NewMessages announces n new messages in chatName. Nothing is sent for
// n < 1.
func NewMessages(chatName string, n int) error {
	if n < 1 {
		return nil
	}
	msg := fmt.Sprintf("%d new messages in %s", n, chatName)
	if n == 1 {
		msg = "1 new message in " + chatName
	}
	return Send(AppName, msg)
}
