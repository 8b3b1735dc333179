// Package tasks owns the ordered task list and keeps it mirrored to a
// key-value backing store.
package tasks

import (
	"errors"
	"strings"

	"github.com/google/uuid"
)

var (
	// ErrBlankText is returned when add or edit-save is given empty or whitespace-only text.
	ErrBlankText = errors.New("text required")
	// ErrNotFound is returned when a task id or reference matches nothing.
	ErrNotFound = errors.New("task not found")
	// ErrNoEdit is returned by SaveEdit when no edit session is open.
	ErrNoEdit = errors.New("no edit in progress")
)

// Task is a single to-do item.
type Task struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// EditSession tracks the single task currently being edited.
type EditSession struct {
	TaskID  string
	Scratch string
}

// Op names a committed mutation.
type Op string

const (
	OpAdd    Op = "add"
	OpEdit   Op = "edit"
	OpToggle Op = "toggle"
	OpRemove Op = "remove"
	OpClear  Op = "clear"
)

// Change describes a committed mutation. TaskID is empty for OpClear.
// Tasks is a snapshot of the list after the change.
type Change struct {
	Op     Op
	TaskID string
	Tasks  []Task
}

// GenerateTaskID creates a short unique task identifier.
func GenerateTaskID() string {
	u := uuid.New().String()
	return "t_" + strings.ReplaceAll(u[:8], "-", "")
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
