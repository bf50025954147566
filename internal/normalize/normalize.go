package normalize

import "strings"

// Email lowercases and trims an address so that lookups and the store's
// uniqueness constraint see one canonical form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace from a human-entered name.
func Name(s string) string {
	return strings.TrimSpace(s)
}
