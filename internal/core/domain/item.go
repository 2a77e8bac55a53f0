package domain

import "strings"

// Item is a single catalogue entry.
// Items are immutable once fetched and comparable by value.
type Item struct {
	// ID is the stable identifier assigned by the provider.
	ID string

	// Name is the display name. Local filtering matches against it.
	Name string

	// URL optionally points at the item's canonical location.
	URL string
}

// IsBlank reports whether s is empty or whitespace only.
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// MatchesQuery reports whether the item's name contains query, ignoring case.
// A blank query matches every item.
func MatchesQuery(item Item, query string) bool {
	if IsBlank(query) {
		return true
	}
	return strings.Contains(strings.ToLower(item.Name), strings.ToLower(query))
}

// FilterItems returns the items whose name contains query, ignoring case.
// The input slice is never modified; a blank query returns a copy of items.
func FilterItems(items []Item, query string) []Item {
	result := make([]Item, 0, len(items))
	for _, item := range items {
		if MatchesQuery(item, query) {
			result = append(result, item)
		}
	}
	return result
}
