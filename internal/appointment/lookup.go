package appointment

import (
	"errors"
	"strings"
)

var ErrSelectionOutOfRange = errors.New("selection out of range")

// Match is a search hit with its 1-based position in the result list.
type Match[T Record] struct {
	Index  int
	Record T
}

// FindByID returns the first record whose key equals id.
func FindByID[T Record](records []T, id int64) (T, bool) {
	for _, r := range records {
		if r.Key() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// FindByNameSubstring returns every record whose display name contains
// query, ignoring case, in collection order.
func FindByNameSubstring[T Record](records []T, query string) []Match[T] {
	q := strings.ToLower(query)

	var out []Match[T]
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.DisplayName()), q) {
			out = append(out, Match[T]{Index: len(out) + 1, Record: r})
		}
	}
	return out
}

// Choose picks the match at the 1-based position n.
func Choose[T Record](matches []Match[T], n int) (T, error) {
	if n < 1 || n > len(matches) {
		var zero T
		return zero, ErrSelectionOutOfRange
	}
	return matches[n-1].Record, nil
}
