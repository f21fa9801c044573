package pipeline

import (
	"regexp"
	"strings"
)

// Precompiled regex patterns for performance.
var (
	// Line ending normalization
	crlfOrCR = regexp.MustCompile(`\r\n?`)

	// One or more blank lines (whitespace-only lines count as blank)
	blankLineRun = regexp.MustCompile(`\n(?:[ \t]*\n)+`)
)

// htmlEscaper escapes the three characters that are significant in element
// content. Quotes are left alone: fragments never place user text in attributes.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
)

// attrEscaper additionally escapes double quotes for attribute values.
var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// NormalizeLineEndings converts \r\n and \r to \n.
func NormalizeLineEndings(content string) string {
	return crlfOrCR.ReplaceAllString(content, "\n")
}

// EscapeHTML escapes &, < and > in s.
// It is not idempotent: escaping "&amp;" again yields "&amp;amp;".
func EscapeHTML(s string) string {
	return htmlEscaper.Replace(s)
}

// EscapeAttr escapes s for use inside a double-quoted attribute value.
func EscapeAttr(s string) string {
	return attrEscaper.Replace(s)
}

// splitBlocks splits text on runs of one or more blank lines.
// Leading and trailing blank lines are dropped from each block, but
// indentation of the remaining lines is kept. Empty blocks are skipped.
func splitBlocks(text string) []string {
	raw := blankLineRun.Split(trimBlankLines(text), -1)
	blocks := make([]string, 0, len(raw))
	for _, b := range raw {
		b = trimBlankLines(b)
		if b == "" {
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

// trimBlankLines removes whitespace-only lines from both ends of s.
func trimBlankLines(s string) string {
	lines := strings.Split(s, "\n")
	start, end := 0, len(lines)
	for start < end && isBlankLine(lines[start]) {
		start++
	}
	for end > start && isBlankLine(lines[end-1]) {
		end--
	}
	return strings.Join(lines[start:end], "\n")
}

// isBlankLine returns true if the line is empty or contains only whitespace.
func isBlankLine(line string) bool {
	return strings.TrimSpace(line) == ""
}
