package sanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripTagsPolicy = bluemonday.StrictPolicy()

// Text removes every HTML tag from s and returns plain, trimmed text.
// Entities escaped by the policy are decoded again so "A & B" survives.
func Text(s string) string {
	if s == "" {
		return s
	}
	return strings.TrimSpace(html.UnescapeString(stripTagsPolicy.Sanitize(s)))
}
