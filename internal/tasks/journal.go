package tasks

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/dohr-michael/todo/internal/storage"
)

// Entry is one journal line describing a committed mutation.
type Entry struct {
	At        time.Time `json:"at"`
	Op        Op        `json:"op"`
	TaskID    string    `json:"task_id,omitempty"`
	Text      string    `json:"text,omitempty"`
	Completed bool      `json:"completed,omitempty"`
	Count     int       `json:"count"`
}

// NewEntry summarises c. Removed tasks carry no text since the snapshot no
// longer holds them.
func NewEntry(c Change, at time.Time) Entry {
	e := Entry{At: at.UTC(), Op: c.Op, TaskID: c.TaskID, Count: len(c.Tasks)}
	if i := indexOf(c.Tasks, c.TaskID); i >= 0 {
		e.Text = c.Tasks[i].Text
		e.Completed = c.Tasks[i].Completed
	}
	return e
}

// JournalTo returns a change listener appending every mutation to j.
// With redact set, task text is left out of the journal.
// Append failures are logged; they never undo the committed change.
func JournalTo(j *storage.Journal, redact bool) func(Change) {
	return func(c Change) {
		e := NewEntry(c, time.Now())
		if redact {
			e.Text = ""
		}
		if err := j.Append(e); err != nil {
			slog.Warn("journal append failed", "path", j.Path(), "error", err)
		}
	}
}

// ReadJournal returns up to n of the latest entries, oldest first.
func ReadJournal(j *storage.Journal, n int) ([]Entry, error) {
	lines, err := j.Tail(n)
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		var e Entry
		if err := json.Unmarshal(line, &e); err != nil {
			return nil, fmt.Errorf("decode journal entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}
