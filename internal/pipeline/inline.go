package pipeline

import "regexp"

// Bold syntax **text**, shortest span first.
var strongPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// FormatInline wraps each **span** in <strong> tags.
// The input must already be HTML-escaped; the inner span is copied as-is.
// Markers are paired left to right; an unpaired ** stays literal.
func FormatInline(escaped string) string {
	return strongPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
}
