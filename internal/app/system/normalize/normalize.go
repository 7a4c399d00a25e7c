// Package normalize trims and canonicalises user-supplied strings before they
// are validated or stored.
package normalize

import "strings"

// Name trims a person or tree name and collapses internal runs of whitespace.
// Case is preserved.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Text trims free text (descriptions, relationship types, URLs).
func Text(s string) string {
	return strings.TrimSpace(s)
}

// ID trims an identifier taken from a path, query string or body.
func ID(s string) string {
	return strings.TrimSpace(s)
}

// Gender trims and lower-cases a gender label.
func Gender(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Keyword trims and lower-cases an enumerated value such as a relationship nature.
func Keyword(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
