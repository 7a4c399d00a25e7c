// Package htmlsanitize cleans user-supplied text with bluemonday before it is
// stored.
//
// The API stores text, not HTML: markup is removed and the result is
// unescaped again so apostrophes, ampersands and comparison signs survive
// ("O'Brien", "Smith & Sons", "5 < 6"). A value that consists only of markup,
// such as "<Unknown>", is kept as the caller sent it.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictOnce sync.Once
	strict     *bluemonday.Policy
)

func strictPolicy() *bluemonday.Policy {
	strictOnce.Do(func() {
		strict = bluemonday.StrictPolicy()
	})
	return strict
}

// PlainText strips every tag from s and returns unescaped text. If stripping
// leaves nothing, the trimmed input is returned unchanged.
func PlainText(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	out := strings.TrimSpace(html.UnescapeString(strictPolicy().Sanitize(s)))
	if out == "" {
		return s
	}
	return out
}
