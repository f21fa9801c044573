// Package dateutil resolves build-date stamps and checks content dates.
package dateutil

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
)

// ErrInvalidDateFormat indicates an invalid date format string.
var ErrInvalidDateFormat = errors.New("invalid date format")

// MaxDateFormatLength limits format string length to prevent abuse.
const MaxDateFormatLength = 50

// DefaultDateFormat is used when "auto" is specified without a format.
const DefaultDateFormat = "YYYY-MM-DD"

// AutoKeyword asks for the current date instead of a literal value.
const AutoKeyword = "auto"

// dateTokens maps user-friendly tokens to Go layout components.
// Longer tokens come first so "MMMM" wins over "MM".
var dateTokens = []struct {
	token string
	goFmt string
}{
	{"YYYY", "2006"},
	{"MMMM", "January"},
	{"MMM", "Jan"},
	{"YY", "06"},
	{"MM", "01"},
	{"DD", "02"},
	{"HH", "15"},
	{"mm", "04"},
	{"M", "1"},
	{"D", "2"},
}

// DatePresets provides named shortcuts for common formats.
var DatePresets = map[string]string{
	"iso":      "YYYY-MM-DD",
	"european": "DD/MM/YYYY",
	"us":       "MM/DD/YYYY",
	"long":     "MMMM D, YYYY",
	"chinese":  "YYYY年M月D日",
	"stamp":    "YYYY-MM-DD HH:mm",
}

// sortableDate matches dates whose string order equals their time order:
// year, optionally month, day and a time of day, all zero-padded.
var sortableDate = regexp.MustCompile(`^\d{4}(-\d{2}(-\d{2}([T ]\d{2}:\d{2}(:\d{2})?)?)?)?$`)

// Layout converts a user-friendly format string to a Go time layout.
// Tokens: YYYY, YY, MMMM, MMM, MM, M, DD, D, HH, mm.
// Text inside brackets is copied literally: "[Built] YYYY" keeps "Built".
// Any other character is preserved as-is.
func Layout(format string) (string, error) {
	if format == "" {
		return "", fmt.Errorf("%w: format cannot be empty", ErrInvalidDateFormat)
	}
	if len(format) > MaxDateFormatLength {
		return "", fmt.Errorf("%w: format exceeds %d characters", ErrInvalidDateFormat, MaxDateFormatLength)
	}

	var sb strings.Builder
	sb.Grow(len(format) + 8)

	rest := format
	for rest != "" {
		if rest[0] == '[' {
			end := strings.IndexByte(rest, ']')
			if end == -1 {
				return "", fmt.Errorf("%w: unclosed bracket at position %d", ErrInvalidDateFormat, len(format)-len(rest))
			}
			sb.WriteString(rest[1:end])
			rest = rest[end+1:]
			continue
		}

		n := writeToken(&sb, rest)
		rest = rest[n:]
	}

	return sb.String(), nil
}

// writeToken writes the layout for the token at the start of s, or its
// first byte when no token matches, and returns the bytes consumed.
func writeToken(sb *strings.Builder, s string) int {
	for _, t := range dateTokens {
		if strings.HasPrefix(s, t.token) {
			sb.WriteString(t.goFmt)
			return len(t.token)
		}
	}
	sb.WriteByte(s[0])
	return 1
}

// ResolveStamp turns a configured build-date value into display text.
//   - ""            → "" (no stamp)
//   - "auto"        → now in YYYY-MM-DD
//   - "auto:FORMAT" → now in FORMAT, or a DatePresets name
//   - anything else → returned unchanged
func ResolveStamp(value string, now time.Time) (string, error) {
	lower := strings.ToLower(value)
	if !strings.HasPrefix(lower, AutoKeyword) {
		return value, nil
	}

	format := DefaultDateFormat
	switch {
	case lower == AutoKeyword:
	case strings.HasPrefix(lower, AutoKeyword+":"):
		// Keep the original case: "MM" and "mm" differ.
		format = value[len(AutoKeyword)+1:]
		if format == "" {
			return "", fmt.Errorf("%w: format cannot be empty after \"auto:\"", ErrInvalidDateFormat)
		}
		if preset, ok := DatePresets[strings.ToLower(format)]; ok {
			format = preset
		}
	default:
		return "", fmt.Errorf("%w: invalid auto syntax %q, use \"auto\" or \"auto:FORMAT\"", ErrInvalidDateFormat, value)
	}

	layout, err := Layout(format)
	if err != nil {
		return "", err
	}
	return now.Format(layout), nil
}

// IsSortable reports whether date sorts correctly as a plain string:
// "2025", "2025-01", "2025-01-02", "2025-01-02 15:04" and the like.
// Such dates order posts newest first without parsing.
func IsSortable(date string) bool {
	return sortableDate.MatchString(date)
}
