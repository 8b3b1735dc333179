package config

import (
	"os"
	"path/filepath"
)

// TodoPath returns the root directory for todo data.
// It uses $TODO_PATH if set, otherwise defaults to ~/.todo.
func TodoPath() string {
	if v := os.Getenv("TODO_PATH"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".todo")
	}
	return filepath.Join(home, ".todo")
}

// ConfigPath returns the path to the config file.
func ConfigPath() string {
	return filepath.Join(TodoPath(), "config.jsonc")
}

// DotenvPath returns the path to the .env file.
func DotenvPath() string {
	return filepath.Join(TodoPath(), ".env")
}

// KeyPath returns the default age identity file used for encrypted storage.
func KeyPath() string {
	return filepath.Join(TodoPath(), ".age-key")
}
