package pipeline

import (
	"regexp"
	"strings"
)

// FrontMatterDelimiter opens and closes the metadata block.
const FrontMatterDelimiter = "---"

// frontMatterPattern matches a "---" line, at least one metadata line,
// a closing "---" line, then the rest of the file (possibly nothing).
var frontMatterPattern = regexp.MustCompile(`(?s)\A---\n(.*?)\n---(?:\n(.*))?\z`)

// Metadata keys understood by the composer. None of them is required.
const (
	MetaTitle    = "title"
	MetaDate     = "date"
	MetaType     = "type"
	MetaWeek     = "week"
	MetaQuestion = "question"
	MetaAudio    = "audio"
)

// Document is a content file split into its metadata and body.
type Document struct {
	Meta map[string]string
	Body string
}

// Get returns the metadata value for key, or fallback when the key is
// absent or its value is empty.
func (d Document) Get(key, fallback string) string {
	if v := d.Meta[key]; v != "" {
		return v
	}
	return fallback
}

// HasFrontMatter reports whether the source carried a metadata block.
func (d Document) HasFrontMatter() bool {
	return len(d.Meta) > 0
}

// Type returns the content type named by the "type" key.
func (d Document) Type() ContentType {
	return ParseContentType(d.Meta[MetaType])
}

// SplitFrontMatter separates a leading metadata block from the body.
//
// Metadata lines are split on the first colon; key and value are trimmed.
// Lines without a colon, or starting with one, are ignored. Duplicate keys
// keep the last value. When no block is present, Meta is empty and Body is
// the whole input. Body is always trimmed.
func SplitFrontMatter(raw string) Document {
	m := frontMatterPattern.FindStringSubmatch(raw)
	if m == nil {
		return Document{Meta: map[string]string{}, Body: strings.TrimSpace(raw)}
	}

	return Document{
		Meta: parseMetadata(m[1]),
		Body: strings.TrimSpace(m[2]),
	}
}

// parseMetadata reads "key: value" lines into a map.
func parseMetadata(block string) map[string]string {
	meta := make(map[string]string)
	for _, line := range strings.Split(block, "\n") {
		idx := strings.Index(line, ":")
		if idx <= 0 {
			continue
		}
		key := strings.TrimSpace(line[:idx])
		if key == "" {
			continue
		}
		meta[key] = strings.TrimSpace(line[idx+1:])
	}
	return meta
}
