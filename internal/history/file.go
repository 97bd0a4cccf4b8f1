package history

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/zhubert/parley/internal/chat"
	perrors "github.com/zhubert/parley/internal/errors"
	"github.com/zhubert/parley/internal/logger"
)

// File is the on-disk form of a chat history.
type File struct {
	Chat   chat.Info   `json:"chat"`
	Unread chat.ItemID `json:"unread,omitempty"`
	Items  []chat.Item `json:"items"`
}

// LoadFile reads a history file.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, perrors.HistoryLoadFailed(path, err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, perrors.HistoryLoadFailed(path, err)
	}
	if f.Chat.ID == "" {
		return nil, perrors.HistoryLoadFailed(path, perrors.E(perrors.KindInvalid, "chat id is empty"))
	}
	logger.WithComponent("history").Debug("history loaded", "path", path, "items", len(f.Items))
	return &f, nil
}

// SaveFile writes a history file, creating parent directories as needed.
func SaveFile(path string, f *File) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return perrors.HistorySaveFailed(path, err)
		}
	}
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return perrors.HistorySaveFailed(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return perrors.HistorySaveFailed(path, err)
	}
	return nil
}

// Add puts the history of f into the archive.
func (a *Archive) Add(f *File) {
	a.Put(f.Chat, f.Items)
	if f.Unread != 0 {
		_ = a.MarkUnread(f.Chat.ID, f.Unread)
	}
}
