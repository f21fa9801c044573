package pipeline

import (
	"regexp"
	"strings"
)

// ContentType selects the block renderer for a body.
type ContentType int

// Supported content types. The zero value is prose.
const (
	TypeProse ContentType = iota
	TypePoem
	TypeEcho
)

// SecondaryLanguageMarker separates the primary and secondary sections of prose.
const SecondaryLanguageMarker = "---en---"

// Precompiled regex patterns for block classification.
var (
	// Marker line for the secondary-language section, exact with no indentation
	secondaryMarkerLine = regexp.MustCompile(`(?m)^` + regexp.QuoteMeta(SecondaryLanguageMarker) + `$`)

	// Divider block: three or more dashes and nothing else
	dividerPattern = regexp.MustCompile(`^-{3,}$`)

	// Leading list marker with optional whitespace after it
	listMarkerPattern = regexp.MustCompile(`^-[ \t]*`)
)

// ParseContentType maps a front matter "type" value to a ContentType.
// Matching ignores case and surrounding whitespace; unknown or empty
// values fall back to TypeProse.
func ParseContentType(s string) ContentType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "poem":
		return TypePoem
	case "echo":
		return TypeEcho
	default:
		return TypeProse
	}
}

// String returns the front matter spelling of the type.
func (t ContentType) String() string {
	switch t {
	case TypePoem:
		return "poem"
	case TypeEcho:
		return "echo"
	default:
		return "prose"
	}
}

// Render converts body to an HTML fragment using the renderer for t.
func (t ContentType) Render(body string) string {
	switch t {
	case TypePoem:
		return RenderPoem(body)
	case TypeEcho:
		return RenderEcho(body)
	default:
		return RenderProse(body)
	}
}

// RenderProse renders blank-line separated paragraphs.
// Single newlines inside a paragraph become <br>. A "---en---" line splits
// the body once; paragraphs after it are wrapped in <div class="en">.
func RenderProse(body string) string {
	primary, secondary, found := splitSecondary(body)

	html := paragraphs(primary)
	if !found {
		return html
	}

	inner := paragraphs(secondary)
	if inner == "" {
		return html
	}

	block := "<div class=\"en\">\n" + inner + "\n</div>"
	if html == "" {
		return block
	}
	return html + "\n" + block
}

// splitSecondary cuts body at the first secondary-language marker line.
// Later markers stay in the secondary text as ordinary content.
func splitSecondary(body string) (primary, secondary string, found bool) {
	loc := secondaryMarkerLine.FindStringIndex(body)
	if loc == nil {
		return body, "", false
	}
	return body[:loc[0]], body[loc[1]:], true
}

// paragraphs renders each block as a <p>, with inner newlines as <br>.
func paragraphs(text string) string {
	blocks := splitBlocks(text)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		escaped := EscapeHTML(strings.TrimSpace(b))
		out = append(out, "<p>"+strings.ReplaceAll(escaped, "\n", "<br>")+"</p>")
	}
	return strings.Join(out, "\n")
}

// RenderPoem renders blank-line separated stanzas.
// Each line is escaped on its own and lines are joined with <br>, so line
// breaks inside a stanza always survive.
func RenderPoem(body string) string {
	stanzas := splitBlocks(body)
	out := make([]string, 0, len(stanzas))
	for _, s := range stanzas {
		lines := strings.Split(s, "\n")
		for i, l := range lines {
			lines[i] = EscapeHTML(strings.TrimRight(l, " \t"))
		}
		out = append(out, "<p class=\"stanza\">\n"+strings.Join(lines, "<br>\n")+"\n</p>")
	}
	return strings.Join(out, "\n")
}

// RenderEcho renders structured echo blocks.
//
// Each blank-line separated block is classified once, first match wins:
//  1. only dashes (three or more): a divider
//  2. first line starts with "- ": a list, one item per non-blank line
//  3. anything else: a paragraph, lines joined with <br>
//
// List items and paragraph lines get inline formatting after escaping.
func RenderEcho(body string) string {
	blocks := splitBlocks(body)
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, renderEchoBlock(b))
	}
	return strings.Join(out, "\n")
}

// renderEchoBlock renders one echo block according to its classification.
func renderEchoBlock(block string) string {
	trimmed := strings.TrimSpace(block)
	if dividerPattern.MatchString(trimmed) {
		return "<hr>"
	}

	lines := strings.Split(trimmed, "\n")
	if strings.HasPrefix(strings.TrimSpace(lines[0]), "- ") {
		return renderList(lines)
	}

	items := make([]string, 0, len(lines))
	for _, l := range lines {
		items = append(items, FormatInline(EscapeHTML(strings.TrimSpace(l))))
	}
	return "<p>" + strings.Join(items, "<br>\n") + "</p>"
}

// renderList emits a <ul> with one <li> per non-blank line.
func renderList(lines []string) string {
	var sb strings.Builder
	sb.WriteString("<ul>\n")
	for _, l := range lines {
		if isBlankLine(l) {
			continue
		}
		item := listMarkerPattern.ReplaceAllString(strings.TrimSpace(l), "")
		sb.WriteString("<li>")
		sb.WriteString(FormatInline(EscapeHTML(item)))
		sb.WriteString("</li>\n")
	}
	sb.WriteString("</ul>")
	return sb.String()
}
