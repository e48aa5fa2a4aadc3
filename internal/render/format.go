package render

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/ziadkadry99/blogrender/internal/posts"
)

// Ellipsis is appended to truncated excerpts.
const Ellipsis = "..."

// TruncateExcerpt cuts s to max runes, trims trailing whitespace and appends
// Ellipsis. Strings within the limit are returned unchanged.
func TruncateExcerpt(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return strings.TrimRight(string(runes[:max]), " \t\r\n") + Ellipsis
}

// FormatDate renders a post date as "January 2, 2006". Unparseable dates are
// returned as given.
func FormatDate(s string) string {
	t, ok := posts.ParseDate(s)
	if !ok {
		return s
	}
	return t.Format("January 2, 2006")
}

// Escape entity-encodes s for embedding in HTML text or attribute values.
func Escape(s string) string {
	return html.EscapeString(s)
}
