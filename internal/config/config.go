// Package config loads todo settings from $TODO_PATH.
package config

import (
	"fmt"
	"log/slog"
	"strings"
)

// Storage drivers.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// JournalOff disables the change journal.
const JournalOff = "off"

// Config is the root configuration.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Log     LogConfig     `json:"log"`
}

// StorageConfig selects and configures the backing store.
type StorageConfig struct {
	Driver  string `json:"driver"`             // "file" | "sqlite" | "memory"
	Path    string `json:"path,omitempty"`     // data dir (file) or database file (sqlite)
	Key     string `json:"key,omitempty"`      // entry holding the task list
	Encrypt bool   `json:"encrypt,omitempty"`  // seal values with age
	KeyFile string `json:"key_file,omitempty"` // age identity (default: $TODO_PATH/.age-key)
}

// LogConfig configures slog output.
type LogConfig struct {
	Level   string `json:"level"`             // debug | info | warn | error
	File    string `json:"file,omitempty"`    // used while the TUI owns the terminal
	Journal string `json:"journal,omitempty"` // JSONL change history, "off" disables
}

// JournalEnabled reports whether task changes are journaled.
func (c LogConfig) JournalEnabled() bool {
	return c.Journal != "" && c.Journal != JournalOff
}

// SlogLevel parses Level. Unknown values fall back to warn.
func (c LogConfig) SlogLevel() slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(c.Level))); err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// Validate reports settings that cannot be acted on.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case DriverFile, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if strings.TrimSpace(c.Storage.Key) == "" {
		return fmt.Errorf("storage key must not be empty")
	}
	return nil
}
