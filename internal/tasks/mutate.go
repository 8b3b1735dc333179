package tasks

import "slices"

// The functions below never modify their input; each returns a fresh slice
// so the store can commit or discard the result after the backing write.

func indexOf(list []Task, id string) int {
	return slices.IndexFunc(list, func(t Task) bool { return t.ID == id })
}

func appendTask(list []Task, t Task) []Task {
	next := make([]Task, 0, len(list)+1)
	next = append(next, list...)
	return append(next, t)
}

func renameTask(list []Task, id, text string) ([]Task, bool) {
	i := indexOf(list, id)
	if i < 0 {
		return list, false
	}
	next := slices.Clone(list)
	next[i].Text = text
	return next, true
}

func toggleTask(list []Task, id string) ([]Task, bool) {
	i := indexOf(list, id)
	if i < 0 {
		return list, false
	}
	next := slices.Clone(list)
	next[i].Completed = !next[i].Completed
	return next, true
}

func removeTask(list []Task, id string) ([]Task, bool) {
	i := indexOf(list, id)
	if i < 0 {
		return list, false
	}
	next := make([]Task, 0, len(list)-1)
	next = append(next, list[:i]...)
	return append(next, list[i+1:]...), true
}

func removeCompleted(list []Task) ([]Task, int) {
	next := make([]Task, 0, len(list))
	for _, t := range list {
		if !t.Completed {
			next = append(next, t)
		}
	}
	return next, len(list) - len(next)
}
