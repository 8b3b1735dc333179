package tasks

import (
	"errors"
	"slices"
	"testing"

	"github.com/dohr-michael/todo/internal/storage"
)

// failingKV wraps a KV and fails every Put once armed.
type failingKV struct {
	storage.KV
	fail bool
}

func (f *failingKV) Put(key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.KV.Put(key, value)
}

func newTestStore(t *testing.T) (*Store, *storage.Memory) {
	t.Helper()
	kv := storage.NewMemory()
	return Open(kv), kv
}

func mustAdd(t *testing.T, s *Store, text string) Task {
	t.Helper()
	task, err := s.Add(text)
	if err != nil {
		t.Fatalf("Add(%q): %v", text, err)
	}
	return task
}

func texts(list []Task) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Text
	}
	return out
}

func TestAddAppendsUncompleted(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, "first")

	task := mustAdd(t, s, "second")
	if task.ID == "" {
		t.Fatal("expected non-empty ID")
	}
	if task.Completed {
		t.Error("new task should not be completed")
	}

	list := s.Tasks()
	if len(list) != 2 {
		t.Fatalf("len = %d, want 2", len(list))
	}
	if list[1] != task {
		t.Errorf("last task = %+v, want %+v", list[1], task)
	}
}

func TestAddBlankIsRejected(t *testing.T) {
	s, kv := newTestStore(t)
	mustAdd(t, s, "keep")

	for _, text := range []string{"", "   ", "\t\n"} {
		if _, err := s.Add(text); !errors.Is(err, ErrBlankText) {
			t.Errorf("Add(%q) = %v, want ErrBlankText", text, err)
		}
	}
	if got := texts(s.Tasks()); !slices.Equal(got, []string{"keep"}) {
		t.Errorf("tasks = %v, want [keep]", got)
	}

	reloaded := Open(kv)
	if reloaded.Len() != 1 {
		t.Errorf("persisted len = %d, want 1", reloaded.Len())
	}
}

func TestAddKeepsTextAsEntered(t *testing.T) {
	s, _ := newTestStore(t)
	task := mustAdd(t, s, "  padded  ")
	if task.Text != "  padded  " {
		t.Errorf("Text = %q, want it unchanged", task.Text)
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s, _ := newTestStore(t)
	task := mustAdd(t, s, "flip")

	if err := s.Toggle(task.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got, _ := s.Get(task.ID); !got.Completed {
		t.Fatal("expected completed after first toggle")
	}
	if err := s.Toggle(task.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if got, _ := s.Get(task.ID); got.Completed {
		t.Error("expected not completed after second toggle")
	}
}

func TestToggleUnknown(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.Toggle("t_missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Toggle = %v, want ErrNotFound", err)
	}
}

func TestEditChangesOnlyText(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, "a")
	target := mustAdd(t, s, "b")
	mustAdd(t, s, "c")
	if err := s.Toggle(target.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	sess, err := s.BeginEdit(target.ID)
	if err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if sess.Scratch != "b" || sess.TaskID != target.ID {
		t.Errorf("session = %+v, want scratch %q for %s", sess, "b", target.ID)
	}

	if err := s.SaveEdit("bee"); err != nil {
		t.Fatalf("SaveEdit: %v", err)
	}

	list := s.Tasks()
	if got := texts(list); !slices.Equal(got, []string{"a", "bee", "c"}) {
		t.Errorf("tasks = %v, want [a bee c]", got)
	}
	if list[1].ID != target.ID || !list[1].Completed {
		t.Errorf("edited task = %+v, want same id and still completed", list[1])
	}
	if _, open := s.Editing(); open {
		t.Error("edit session should be closed after save")
	}
}

func TestSaveEditBlankKeepsSessionOpen(t *testing.T) {
	s, _ := newTestStore(t)
	task := mustAdd(t, s, "original")
	before := s.Tasks()

	if _, err := s.BeginEdit(task.ID); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := s.SaveEdit("   "); !errors.Is(err, ErrBlankText) {
		t.Fatalf("SaveEdit = %v, want ErrBlankText", err)
	}

	if !slices.Equal(s.Tasks(), before) {
		t.Errorf("tasks changed: %v, want %v", s.Tasks(), before)
	}
	sess, open := s.Editing()
	if !open {
		t.Fatal("edit session should stay open")
	}
	if sess.TaskID != task.ID || sess.Scratch != "   " {
		t.Errorf("session = %+v", sess)
	}
}

func TestSaveEditWithoutSession(t *testing.T) {
	s, _ := newTestStore(t)
	if err := s.SaveEdit("text"); !errors.Is(err, ErrNoEdit) {
		t.Errorf("SaveEdit = %v, want ErrNoEdit", err)
	}
}

func TestCancelEdit(t *testing.T) {
	s, _ := newTestStore(t)
	task := mustAdd(t, s, "stay")

	if _, err := s.BeginEdit(task.ID); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	s.CancelEdit()

	if _, open := s.Editing(); open {
		t.Error("edit session should be closed")
	}
	if got, _ := s.Get(task.ID); got.Text != "stay" {
		t.Errorf("text = %q, want unchanged", got.Text)
	}
}

func TestBeginEditReplacesSession(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")

	if _, err := s.BeginEdit(a.ID); err != nil {
		t.Fatalf("BeginEdit a: %v", err)
	}
	if _, err := s.BeginEdit(b.ID); err != nil {
		t.Fatalf("BeginEdit b: %v", err)
	}
	sess, _ := s.Editing()
	if sess.TaskID != b.ID {
		t.Errorf("session on %s, want %s", sess.TaskID, b.ID)
	}
	if _, err := s.BeginEdit("t_nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("BeginEdit unknown = %v, want ErrNotFound", err)
	}
}

func TestRemoveExactTask(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	mustAdd(t, s, "c")
	mustAdd(t, s, "d")

	if err := s.Remove(b.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if got := texts(s.Tasks()); !slices.Equal(got, []string{"a", "c", "d"}) {
		t.Errorf("tasks = %v, want [a c d]", got)
	}
	if _, ok := s.Get(b.ID); ok {
		t.Error("removed task still present")
	}
	if _, ok := s.Get(a.ID); !ok {
		t.Error("unrelated task vanished")
	}
	if err := s.Remove(b.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second Remove = %v, want ErrNotFound", err)
	}
}

func TestRemoveClosesEditOnThatTask(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")

	if _, err := s.BeginEdit(a.ID); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}
	if err := s.Remove(b.ID); err != nil {
		t.Fatalf("Remove other: %v", err)
	}
	if _, open := s.Editing(); !open {
		t.Fatal("removing another task must not close the session")
	}
	if err := s.Remove(a.ID); err != nil {
		t.Fatalf("Remove edited: %v", err)
	}
	if _, open := s.Editing(); open {
		t.Error("removing the edited task must close the session")
	}
}

func TestRemoveLastPersistsEmpty(t *testing.T) {
	s, kv := newTestStore(t)
	task := mustAdd(t, s, "only")

	if err := s.Remove(task.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	raw, err := kv.Get(DefaultKey)
	if err != nil {
		t.Fatalf("kv Get: %v", err)
	}
	if string(raw) != "[]" {
		t.Errorf("persisted = %q, want []", raw)
	}
	if reloaded := Open(kv); reloaded.Len() != 0 {
		t.Errorf("reloaded len = %d, want 0", reloaded.Len())
	}
}

func TestFilteredPartition(t *testing.T) {
	s, _ := newTestStore(t)
	for _, text := range []string{"a", "b", "c", "d", "e"} {
		mustAdd(t, s, text)
	}
	list := s.Tasks()
	for _, i := range []int{1, 3} {
		if err := s.Toggle(list[i].ID); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}

	all := slices.Collect(s.Filtered(FilterAll))
	active := slices.Collect(s.Filtered(FilterActive))
	completed := slices.Collect(s.Filtered(FilterCompleted))

	if got := texts(active); !slices.Equal(got, []string{"a", "c", "e"}) {
		t.Errorf("active = %v", got)
	}
	if got := texts(completed); !slices.Equal(got, []string{"b", "d"}) {
		t.Errorf("completed = %v", got)
	}
	if len(active)+len(completed) != len(all) {
		t.Errorf("active %d + completed %d != all %d", len(active), len(completed), len(all))
	}
	seen := map[string]bool{}
	for _, task := range active {
		seen[task.ID] = true
	}
	for _, task := range completed {
		if seen[task.ID] {
			t.Errorf("task %s in both views", task.ID)
		}
		seen[task.ID] = true
	}
	for _, task := range all {
		if !seen[task.ID] {
			t.Errorf("task %s missing from the union", task.ID)
		}
	}
}

func TestFilteredIsRestartableAndLazy(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, "x")
	mustAdd(t, s, "y")

	seq := s.Filtered(FilterAll)
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second pass = %v, want %v", second, first)
	}

	mustAdd(t, s, "z")
	if got := len(slices.Collect(seq)); got != 3 {
		t.Errorf("sequence should see the current list, got %d items", got)
	}

	n := 0
	for range seq {
		n++
		break
	}
	if n != 1 {
		t.Errorf("early break yielded %d", n)
	}
}

func TestPersistLoadRoundTrip(t *testing.T) {
	s, kv := newTestStore(t)
	mustAdd(t, s, "one")
	two := mustAdd(t, s, "two")
	mustAdd(t, s, "three")
	if err := s.Toggle(two.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if err := s.Persist(); err != nil {
		t.Fatalf("Persist: %v", err)
	}

	reloaded := Open(kv)
	if !slices.Equal(reloaded.Tasks(), s.Tasks()) {
		t.Errorf("reloaded = %v, want %v", reloaded.Tasks(), s.Tasks())
	}
}

func TestLoadCorruptYieldsEmpty(t *testing.T) {
	kv := storage.NewMemory()
	if err := kv.Put(DefaultKey, []byte("{not json")); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := Open(kv)
	if s.Len() != 0 {
		t.Errorf("len = %d, want 0", s.Len())
	}
	// The store stays usable.
	mustAdd(t, s, "fresh")
}

func TestLoadLegacyLayout(t *testing.T) {
	kv := storage.NewMemory()
	legacy := `[{"text":"buy milk","completed":true},{"text":"walk dog","completed":false}]`
	if err := kv.Put(DefaultKey, []byte(legacy)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := Open(kv)
	list := s.Tasks()
	if got := texts(list); !slices.Equal(got, []string{"buy milk", "walk dog"}) {
		t.Fatalf("tasks = %v", got)
	}
	if !list[0].Completed || list[1].Completed {
		t.Errorf("completion flags not preserved: %+v", list)
	}
	if list[0].ID == "" || list[1].ID == "" || list[0].ID == list[1].ID {
		t.Errorf("expected distinct generated ids, got %q and %q", list[0].ID, list[1].ID)
	}
}

func TestLoadSkipsBlankAndNumericIDs(t *testing.T) {
	kv := storage.NewMemory()
	if err := kv.Put(DefaultKey, []byte(`[null,{"text":"  "},{"text":"first"},{"id":"1","text":"x"}]`)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	s := Open(kv)
	list := s.Tasks()
	if got := texts(list); !slices.Equal(got, []string{"first", "x"}) {
		t.Fatalf("tasks = %v, want [first x]", got)
	}

	// Row 1 is "first"; the stored id "1" must not shadow it or be reachable.
	got, err := s.Resolve(FilterAll, "1")
	if err != nil || got.Text != "first" {
		t.Errorf("Resolve(1) = %+v, %v, want first", got, err)
	}
	if list[1].ID == "1" {
		t.Error("numeric stored id should be replaced")
	}
	if got, err := s.Resolve(FilterAll, list[1].ID); err != nil || got.Text != "x" {
		t.Errorf("Resolve(%s) = %+v, %v, want x", list[1].ID, got, err)
	}
}

func TestWithKey(t *testing.T) {
	kv := storage.NewMemory()
	s := Open(kv, WithKey("groceries"))
	mustAdd(t, s, "eggs")

	if _, err := kv.Get("groceries"); err != nil {
		t.Errorf("expected entry under custom key: %v", err)
	}
	if _, err := kv.Get(DefaultKey); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("default key should be untouched, got %v", err)
	}
}

func TestFailedWriteLeavesListUntouched(t *testing.T) {
	kv := &failingKV{KV: storage.NewMemory()}
	s := Open(kv)
	task := mustAdd(t, s, "safe")

	var notified int
	s.OnChange(func(Change) { notified++ })

	kv.fail = true
	if _, err := s.Add("lost"); err == nil {
		t.Fatal("expected Add to fail")
	}
	if err := s.Toggle(task.ID); err == nil {
		t.Fatal("expected Toggle to fail")
	}
	if err := s.Remove(task.ID); err == nil {
		t.Fatal("expected Remove to fail")
	}

	if got := texts(s.Tasks()); !slices.Equal(got, []string{"safe"}) {
		t.Errorf("tasks = %v, want [safe]", got)
	}
	if got, _ := s.Get(task.ID); got.Completed {
		t.Error("failed toggle must not flip the flag")
	}
	if notified != 0 {
		t.Errorf("listeners called %d times on failed writes", notified)
	}
}

func TestOnChangeReceivesSnapshot(t *testing.T) {
	s, _ := newTestStore(t)

	var got []Change
	s.OnChange(func(c Change) { got = append(got, c) })

	a := mustAdd(t, s, "a")
	if err := s.Toggle(a.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}
	if _, err := s.ClearCompleted(); err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}

	if len(got) != 3 {
		t.Fatalf("notifications = %d, want 3", len(got))
	}
	if got[0].Op != OpAdd || got[0].TaskID != a.ID || got[0].Tasks[0].Completed {
		t.Errorf("first change = %+v", got[0])
	}
	if got[1].Op != OpToggle || !got[1].Tasks[0].Completed {
		t.Errorf("second change = %+v", got[1])
	}
	if got[2].Op != OpClear || got[2].TaskID != "" || len(got[2].Tasks) != 0 {
		t.Errorf("third change = %+v", got[2])
	}

	// Snapshots are independent copies.
	got[0].Tasks[0].Text = "mutated"
	if got[1].Tasks[0].Text == "mutated" {
		t.Error("listener snapshots share storage")
	}
}

func TestClearCompleted(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustAdd(t, s, "a")
	mustAdd(t, s, "b")
	c := mustAdd(t, s, "c")
	for _, id := range []string{a.ID, c.ID} {
		if err := s.Toggle(id); err != nil {
			t.Fatalf("Toggle: %v", err)
		}
	}
	if _, err := s.BeginEdit(c.ID); err != nil {
		t.Fatalf("BeginEdit: %v", err)
	}

	n, err := s.ClearCompleted()
	if err != nil {
		t.Fatalf("ClearCompleted: %v", err)
	}
	if n != 2 {
		t.Errorf("removed = %d, want 2", n)
	}
	if got := texts(s.Tasks()); !slices.Equal(got, []string{"b"}) {
		t.Errorf("tasks = %v, want [b]", got)
	}
	if _, open := s.Editing(); open {
		t.Error("edit on a cleared task should be closed")
	}

	n, err = s.ClearCompleted()
	if err != nil || n != 0 {
		t.Errorf("second ClearCompleted = %d, %v", n, err)
	}
}

func TestResolve(t *testing.T) {
	s, _ := newTestStore(t)
	a := mustAdd(t, s, "a")
	b := mustAdd(t, s, "b")
	c := mustAdd(t, s, "c")
	if err := s.Toggle(b.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	tests := []struct {
		filter Filter
		ref    string
		want   string
	}{
		{FilterAll, "1", a.ID},
		{FilterAll, "2", b.ID},
		{FilterActive, "2", c.ID},
		{FilterCompleted, "1", b.ID},
		{FilterActive, c.ID, c.ID},
		{FilterAll, " 3 ", c.ID},
	}
	for _, tt := range tests {
		got, err := s.Resolve(tt.filter, tt.ref)
		if err != nil {
			t.Errorf("Resolve(%s, %q): %v", tt.filter, tt.ref, err)
			continue
		}
		if got.ID != tt.want {
			t.Errorf("Resolve(%s, %q) = %s, want %s", tt.filter, tt.ref, got.ID, tt.want)
		}
	}

	for _, ref := range []string{"0", "4", "", "t_unknown", "-1"} {
		if _, err := s.Resolve(FilterAll, ref); !errors.Is(err, ErrNotFound) {
			t.Errorf("Resolve(%q) = %v, want ErrNotFound", ref, err)
		}
	}
	if _, err := s.Resolve(FilterCompleted, "2"); !errors.Is(err, ErrNotFound) {
		t.Errorf("row beyond filtered view should not resolve, got %v", err)
	}
}

// A filtered row number must reach the task shown in that view, not the task
// at the same position in the full list.
func TestToggleThroughFilteredView(t *testing.T) {
	s, _ := newTestStore(t)
	first := mustAdd(t, s, "first")
	second := mustAdd(t, s, "second")
	if err := s.Toggle(second.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	row, err := s.Resolve(FilterCompleted, "1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := s.Toggle(row.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if got, _ := s.Get(second.ID); got.Completed {
		t.Error("second should have been toggled back")
	}
	if got, _ := s.Get(first.ID); got.Completed {
		t.Error("first must be untouched")
	}
}

func TestScenarioBuyMilk(t *testing.T) {
	s, _ := newTestStore(t)

	milk := mustAdd(t, s, "buy milk")
	if list := s.Tasks(); len(list) != 1 || list[0].Text != "buy milk" || list[0].Completed {
		t.Fatalf("after add: %+v", list)
	}

	row, err := s.Resolve(FilterAll, "1")
	if err != nil || row.ID != milk.ID {
		t.Fatalf("Resolve row 1 = %+v, %v", row, err)
	}
	if err := s.Toggle(row.ID); err != nil {
		t.Fatalf("Toggle: %v", err)
	}

	if active := slices.Collect(s.Filtered(FilterActive)); len(active) != 0 {
		t.Errorf("active = %v, want empty", active)
	}
	completed := slices.Collect(s.Filtered(FilterCompleted))
	if len(completed) != 1 || completed[0].Text != "buy milk" || !completed[0].Completed {
		t.Errorf("completed = %+v", completed)
	}
}

func TestScenarioRemoveFirst(t *testing.T) {
	s, _ := newTestStore(t)
	mustAdd(t, s, "a")
	mustAdd(t, s, "b")

	row, err := s.Resolve(FilterAll, "1")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if err := s.Remove(row.ID); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	list := s.Tasks()
	if len(list) != 1 || list[0].Text != "b" || list[0].Completed {
		t.Errorf("tasks = %+v, want [{b false}]", list)
	}
}
