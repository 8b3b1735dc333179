package tasks

import (
	"encoding/json"
	"fmt"
	"log/slog"
)

// encodeList renders the persisted layout: a JSON array of
// {"id","text","completed"} records in list order.
func encodeList(list []Task) ([]byte, error) {
	if list == nil {
		list = []Task{}
	}
	data, err := json.Marshal(list)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// decodeList parses the persisted layout. Records with blank text (null
// entries included) are dropped. Records without an id (the legacy
// {text, completed} layout), with an all-digit id that would read as a row
// number, or with a duplicate id get a fresh one.
func decodeList(data []byte) ([]Task, error) {
	var raw []Task
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}

	list := make([]Task, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, t := range raw {
		if isBlank(t.Text) {
			slog.Warn("dropping saved task with blank text", "index", i, "id", t.ID)
			continue
		}
		id := t.ID
		for id == "" || isAllDigits(id) || seen[id] {
			id = GenerateTaskID()
		}
		t.ID = id
		seen[id] = true
		list = append(list, t)
	}
	return list, nil
}
