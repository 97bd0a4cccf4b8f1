package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/zhubert/parley/internal/chat"
	"github.com/zhubert/parley/internal/config"
	"github.com/zhubert/parley/internal/history"
	"github.com/zhubert/parley/internal/keys"
)

var directChat = chat.Info{ID: "c1", Type: chat.Direct, Name: "Ann"}

// testConfig loads a config from data, or the defaults when data is empty.
func testConfig(t *testing.T, data string) *config.Config {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if data != "" {
		if err := os.WriteFile(path, []byte(data), 0644); err != nil {
			t.Fatalf("Failed to write config: %v", err)
		}
	}
	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	return cfg
}

func textItem(id int64) chat.Item {
	return chat.Item{ID: chat.ItemID(id), Dir: chat.ReceivedDir(), Text: fmt.Sprintf("message %d", id)}
}

// testArchive holds directChat with items 1..n.
func testArchive(n int) *history.Archive {
	items := make([]chat.Item, n)
	for i := range items {
		items[i] = textItem(int64(i + 1))
	}
	a := history.NewArchive()
	a.Put(directChat, items)
	return a
}

// testModel creates a sized model with a page size of 5.
func testModel(t *testing.T, archive *history.Archive, cfgData string) *Model {
	t.Helper()
	if cfgData == "" {
		cfgData = `{"page_size": 5}`
	}
	m := New(testConfig(t, cfgData), archive)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	t.Cleanup(m.Shutdown)
	return m
}

// openChat opens directChat and applies its landing page.
func openChat(t *testing.T, m *Model) {
	t.Helper()
	m.Update(m.OpenChat(directChat)())
}

// pollOnce applies one fetch of the live tail and returns the follow-up
// command.
func pollOnce(m *Model) tea.Cmd {
	_, cmd := m.Update(m.bottom.Fetch(m.ctx, directChat, nil)())
	return cmd
}

// keyPress creates a tea.KeyPressMsg for the given key string.
func keyPress(key string) tea.KeyPressMsg {
	switch key {
	case keys.Up:
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case keys.Down:
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case keys.Enter:
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case keys.CtrlC:
		return tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}
	case keys.CtrlR:
		return tea.KeyPressMsg{Code: 'r', Mod: tea.ModCtrl}
	default:
		return tea.KeyPressMsg{Code: rune(key[0]), Text: key}
	}
}

// sendKey sends a key press to the model and returns the resulting command.
func sendKey(m *Model, key string) tea.Cmd {
	_, cmd := m.Update(keyPress(key))
	return cmd
}

func storeIDs(m *Model) []chat.ItemID {
	return chat.IDs(m.Session().Store().Items())
}

func idRange(from, to int64) []chat.ItemID {
	var ids []chat.ItemID
	for id := from; id <= to; id++ {
		ids = append(ids, chat.ItemID(id))
	}
	return ids
}
