package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zhubert/parley/internal/chat"
	perrors "github.com/zhubert/parley/internal/errors"
)

// Defaults applied to fields left unset.
const (
	DefaultPageSize        = 50
	DefaultPollIntervalMS  = 2000
	DefaultSectionCapacity = 500
	DefaultTheme           = "dark-purple"

	// MinPollIntervalMS keeps polling from hammering the history source.
	MinPollIntervalMS = 100
)

// EnvConfigPath overrides the config file location.
const EnvConfigPath = "PARLEY_CONFIG"

// Config holds the application configuration
type Config struct {
	HistoryPath          string `json:"history_path,omitempty"`          // History file opened when none is given
	PageSize             int    `json:"page_size,omitempty"`             // Items per fetched page
	PollIntervalMS       int    `json:"poll_interval_ms,omitempty"`      // Bottom polling period
	SectionCapacity      int    `json:"section_capacity,omitempty"`      // Items kept before eviction
	LandingSection       string `json:"landing_section,omitempty"`       // "latest" or "unread"
	NotificationsEnabled bool   `json:"notifications_enabled,omitempty"` // Desktop notifications for new messages
	RemoteHostID         *int64 `json:"remote_host_id,omitempty"`        // Routing hint passed to the history source
	Theme                string `json:"theme,omitempty"`                 // UI theme name

	mu       sync.RWMutex
	filePath string
}

// configDir returns the path to the config directory
func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".parley"), nil
}

// configPath returns the path to the config file
func configPath() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// Load reads the config from disk, or creates a new one if it doesn't exist
func Load() (*Config, error) {
	path, err := configPath()
	if err != nil {
		return nil, perrors.ConfigLoadFailed("", err)
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path. A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	cfg := &Config{filePath: path}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cfg.applyDefaults()
		return cfg, nil
	}
	if err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, perrors.ConfigLoadFailed(path, err)
	}

	// Defaults must be in place before Validate, which only reads.
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Default returns an in-memory config holding the defaults.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// applyDefaults fills unset fields. It is only called before the Config is
// shared.
func (c *Config) applyDefaults() {
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.PollIntervalMS == 0 {
		c.PollIntervalMS = DefaultPollIntervalMS
	}
	if c.SectionCapacity == 0 {
		c.SectionCapacity = DefaultSectionCapacity
	}
	if c.LandingSection == "" {
		c.LandingSection = "latest"
	}
	if c.Theme == "" {
		c.Theme = DefaultTheme
	}
}

// Validate checks that the config is internally consistent.
func (c *Config) Validate() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.PageSize < 1 {
		return perrors.ConfigInvalid(fmt.Sprintf("page_size must be positive, got %d", c.PageSize))
	}
	if c.PollIntervalMS < MinPollIntervalMS {
		return perrors.ConfigInvalid(fmt.Sprintf("poll_interval_ms must be at least %d, got %d", MinPollIntervalMS, c.PollIntervalMS))
	}
	if c.SectionCapacity < c.PageSize {
		return perrors.ConfigInvalid(fmt.Sprintf("section_capacity (%d) must not be smaller than page_size (%d)", c.SectionCapacity, c.PageSize))
	}
	if _, err := chat.ParseLandingSection(c.LandingSection); err != nil {
		return perrors.ConfigInvalid(err.Error())
	}

	return nil
}

// Save writes the config to disk
func (c *Config) Save() error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.filePath == "" {
		path, err := configPath()
		if err != nil {
			return perrors.ConfigSaveFailed("", err)
		}
		c.filePath = path
	}

	if err := os.MkdirAll(filepath.Dir(c.filePath), 0755); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}

	if err := os.WriteFile(c.filePath, data, 0644); err != nil {
		return perrors.ConfigSaveFailed(c.filePath, err)
	}
	return nil
}

// Path returns the file the config is loaded from and saved to.
func (c *Config) Path() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.filePath
}

// GetHistoryPath returns the default history file
func (c *Config) GetHistoryPath() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.HistoryPath
}

// SetHistoryPath sets the default history file
func (c *Config) SetHistoryPath(path string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.HistoryPath = path
}

// GetPageSize returns the number of items per fetched page
func (c *Config) GetPageSize() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.PageSize
}

// GetPollInterval returns how often the bottom of the chat is refreshed
func (c *Config) GetPollInterval() time.Duration {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}

// SetPollInterval sets how often the bottom of the chat is refreshed
func (c *Config) SetPollInterval(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.PollIntervalMS = int(d / time.Millisecond)
}

// GetSectionCapacity returns how many items are kept before eviction
func (c *Config) GetSectionCapacity() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.SectionCapacity
}

// GetLandingSection returns where a freshly opened chat lands
func (c *Config) GetLandingSection() chat.LandingSection {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ls, err := chat.ParseLandingSection(c.LandingSection)
	if err != nil {
		return chat.LandingLatest
	}
	return ls
}

// SetLandingSection sets where a freshly opened chat lands
func (c *Config) SetLandingSection(ls chat.LandingSection) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.LandingSection = ls.String()
}

// GetNotificationsEnabled returns whether desktop notifications are enabled
func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

// SetNotificationsEnabled sets whether desktop notifications are enabled
func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

// GetRemoteHostID returns the routing hint, or nil when none is configured
func (c *Config) GetRemoteHostID() *int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.RemoteHostID == nil {
		return nil
	}
	id := *c.RemoteHostID
	return &id
}

// GetTheme returns the configured theme name
func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

// SetTheme sets the theme name
func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}
