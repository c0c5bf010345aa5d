package console

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Diff computes the partial-update payload: only keys whose edited value
// differs from the currently displayed record are included, so omitted
// fields never overwrite server state. Values are compared by their string
// rendering because edits carry int64 where decoded records carry float64.
func Diff(current, edited map[string]any) map[string]any {
	changed := map[string]any{}
	for key, value := range edited {
		if cur, ok := current[key]; ok && fmt.Sprint(cur) == fmt.Sprint(value) {
			continue
		}
		changed[key] = value
	}
	return changed
}

// recordFields flattens a record into the key space edits use. Wire keys
// are Title_Case while edit payloads are lowercase, so keys are folded.
func recordFields(record any) map[string]any {
	raw, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	decoded := map[string]any{}
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return nil
	}
	fields := make(map[string]any, len(decoded))
	for key, value := range decoded {
		fields[strings.ToLower(key)] = value
	}
	return fields
}

// trimUnchanged narrows an edit to the fields that differ from the cached
// record with the given id. An id not present on the page leaves the edit
// untouched.
func trimUnchanged[T any](records []T, id int64, idOf func(T) int64, partial map[string]any) map[string]any {
	for _, record := range records {
		if idOf(record) != id {
			continue
		}
		return Diff(recordFields(record), partial)
	}
	return partial
}
