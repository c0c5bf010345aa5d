package console

import "strings"

// Filter returns the records whose searchable fields contain term
// case-insensitively. The empty term returns the collection unchanged.
// Absent fields are treated as empty strings.
func Filter[T any](items []T, term string, fields func(T) []string) []T {
	if term == "" {
		return items
	}
	needle := strings.ToLower(term)

	matched := make([]T, 0, len(items))
	for _, item := range items {
		for _, field := range fields(item) {
			if strings.Contains(strings.ToLower(field), needle) {
				matched = append(matched, item)
				break
			}
		}
	}
	return matched
}
