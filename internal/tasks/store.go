package tasks

import (
	"errors"
	"fmt"
	"iter"
	"log/slog"
	"slices"
	"strconv"
	"strings"

	"github.com/dohr-michael/todo/internal/storage"
)

// DefaultKey is the backing-store entry holding the list.
const DefaultKey = "tasks"

// Store holds the authoritative ordered list for a session and mirrors it to
// a storage.KV entry. Every mutation runs apply → persist → notify; the new
// list is committed only once the backing write succeeded.
//
// Store is not safe for concurrent use. It is driven from a single UI loop
// or a single CLI invocation.
type Store struct {
	kv        storage.KV
	key       string
	tasks     []Task
	edit      *EditSession
	listeners []func(Change)
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the backing-store entry name.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// NewStore creates an empty Store over kv. Call Load to read persisted state.
func NewStore(kv storage.KV, opts ...Option) *Store {
	s := &Store{kv: kv, key: DefaultKey}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Open creates a Store and loads it.
func Open(kv storage.KV, opts ...Option) *Store {
	s := NewStore(kv, opts...)
	s.Load()
	return s
}

// Key returns the backing-store entry name.
func (s *Store) Key() string { return s.key }

// Load replaces the in-memory list with the persisted one. A missing or
// unreadable entry yields an empty list; the failure is logged, never returned.
func (s *Store) Load() {
	s.tasks = nil
	s.edit = nil

	data, err := s.kv.Get(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Debug("no saved tasks, starting empty", "key", s.key)
		} else {
			slog.Warn("read saved tasks, starting empty", "key", s.key, "error", err)
		}
		return
	}

	list, err := decodeList(data)
	if err != nil {
		slog.Warn("discarding unreadable task list", "key", s.key, "error", err)
		return
	}
	s.tasks = list
	slog.Debug("tasks loaded", "key", s.key, "count", len(list))
}

// Tasks returns a copy of the full ordered list.
func (s *Store) Tasks() []Task {
	return slices.Clone(s.tasks)
}

// Len returns the number of tasks.
func (s *Store) Len() int { return len(s.tasks) }

// Get returns the task with the given id.
func (s *Store) Get(id string) (Task, bool) {
	i := indexOf(s.tasks, id)
	if i < 0 {
		return Task{}, false
	}
	return s.tasks[i], true
}

// Add appends a new, not completed task. Blank text is rejected with
// ErrBlankText and leaves the list untouched.
func (s *Store) Add(text string) (Task, error) {
	if isBlank(text) {
		return Task{}, ErrBlankText
	}
	t := Task{ID: s.newID(), Text: text}
	if err := s.apply(appendTask(s.tasks, t), OpAdd, t.ID); err != nil {
		return Task{}, err
	}
	slog.Debug("task added", "id", t.ID)
	return t, nil
}

// BeginEdit opens the edit session on id, seeding the scratch text with the
// task's current text. Any previous session is replaced.
func (s *Store) BeginEdit(id string) (EditSession, error) {
	t, ok := s.Get(id)
	if !ok {
		return EditSession{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.edit = &EditSession{TaskID: t.ID, Scratch: t.Text}
	return *s.edit, nil
}

// Editing returns the open edit session, if any.
func (s *Store) Editing() (EditSession, bool) {
	if s.edit == nil {
		return EditSession{}, false
	}
	return *s.edit, true
}

// SaveEdit replaces the edited task's text with scratch and closes the
// session. Blank scratch is rejected with ErrBlankText and the session stays
// open holding the rejected text.
func (s *Store) SaveEdit(scratch string) error {
	if s.edit == nil {
		return ErrNoEdit
	}
	if isBlank(scratch) {
		s.edit.Scratch = scratch
		return ErrBlankText
	}

	id := s.edit.TaskID
	next, ok := renameTask(s.tasks, id, scratch)
	if !ok {
		s.edit = nil
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.apply(next, OpEdit, id); err != nil {
		return err
	}
	s.edit = nil
	slog.Debug("task edited", "id", id)
	return nil
}

// CancelEdit discards the edit session without touching the list.
func (s *Store) CancelEdit() {
	s.edit = nil
}

// Toggle flips the completion flag of id.
func (s *Store) Toggle(id string) error {
	next, ok := toggleTask(s.tasks, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.apply(next, OpToggle, id); err != nil {
		return err
	}
	slog.Debug("task toggled", "id", id)
	return nil
}

// Remove deletes id. Removing the last task persists an empty list.
func (s *Store) Remove(id string) error {
	next, ok := removeTask(s.tasks, id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err := s.apply(next, OpRemove, id); err != nil {
		return err
	}
	if s.edit != nil && s.edit.TaskID == id {
		s.edit = nil
	}
	slog.Debug("task removed", "id", id)
	return nil
}

// ClearCompleted removes every completed task and returns how many went.
func (s *Store) ClearCompleted() (int, error) {
	next, n := removeCompleted(s.tasks)
	if n == 0 {
		return 0, nil
	}
	if err := s.apply(next, OpClear, ""); err != nil {
		return 0, err
	}
	if s.edit != nil {
		if _, ok := s.Get(s.edit.TaskID); !ok {
			s.edit = nil
		}
	}
	slog.Debug("completed tasks cleared", "count", n)
	return n, nil
}

// Filtered yields the tasks matching f in list order. The sequence reads the
// list afresh each time it is ranged over.
func (s *Store) Filtered(f Filter) iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, t := range s.tasks {
			if f.Match(t) && !yield(t) {
				return
			}
		}
	}
}

// Resolve maps a user reference to a task. An all-digit ref is the 1-based
// row number within Filtered(f); anything else must be an exact task id.
func (s *Store) Resolve(f Filter, ref string) (Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Task{}, fmt.Errorf("%w: empty reference", ErrNotFound)
	}

	if isAllDigits(ref) {
		n, err := strconv.Atoi(ref)
		if err != nil || n < 1 {
			return Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
		}
		row := 0
		for t := range s.Filtered(f) {
			row++
			if row == n {
				return t, nil
			}
		}
		return Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
	}

	if t, ok := s.Get(ref); ok {
		return t, nil
	}
	return Task{}, fmt.Errorf("%w: %s", ErrNotFound, ref)
}

// Persist writes the full list to the backing store, empty lists included.
func (s *Store) Persist() error {
	return s.write(s.tasks)
}

// OnChange registers fn to receive every committed mutation.
func (s *Store) OnChange(fn func(Change)) {
	s.listeners = append(s.listeners, fn)
}

func (s *Store) apply(next []Task, op Op, id string) error {
	if err := s.write(next); err != nil {
		return err
	}
	s.tasks = next
	for _, fn := range s.listeners {
		fn(Change{Op: op, TaskID: id, Tasks: s.Tasks()})
	}
	return nil
}

func (s *Store) write(list []Task) error {
	data, err := encodeList(list)
	if err != nil {
		return err
	}
	if err := s.kv.Put(s.key, data); err != nil {
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

func (s *Store) newID() string {
	for {
		id := GenerateTaskID()
		if indexOf(s.tasks, id) < 0 {
			return id
		}
	}
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
