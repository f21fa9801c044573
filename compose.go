package abyss

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-abyss/internal/pipeline"
)

// maxDescriptionRunes bounds the meta description taken from a body.
const maxDescriptionRunes = 100

// rendered pairs a document page with its listing entry.
type rendered struct {
	entry Entry
	page  Page
}

// pageMeta is the per-page text of the base layout.
type pageMeta struct {
	title       string // Unescaped
	description string // Unescaped
	cssPath     string // Prefix from the page to the output root
}

func (b *Builder) renderPost(src Source, stamp string) (rendered, error) {
	doc := pipeline.SplitFrontMatter(pipeline.NormalizeLineEndings(src.Content))
	slug := src.Slug()
	typ := doc.Type()

	entry := Entry{
		Slug:    slug,
		Title:   doc.Get(pipeline.MetaTitle, slug),
		Date:    doc.Get(pipeline.MetaDate, ""),
		Type:    typ.String(),
		HasMeta: doc.HasFrontMatter(),
	}

	ctx := pipeline.NewContext(
		"title", pipeline.EscapeHTML(entry.Title),
		"date", pipeline.EscapeHTML(entry.Date),
		"type", entry.Type,
		"slug", pipeline.EscapeAttr(slug),
		"audio", audioPlayer(doc.Get(pipeline.MetaAudio, "")),
		"content", typ.Render(doc.Body),
	)

	page, err := b.compose("posts/"+slug+".html", b.templates.Post, ctx, pageMeta{
		title:       b.pageTitle(entry.Title),
		description: b.describe(doc.Body),
		cssPath:     "../",
	}, stamp)
	if err != nil {
		return rendered{}, err
	}
	return rendered{entry: entry, page: page}, nil
}

// renderEcho always uses the echo renderer, whatever the "type" key says.
func (b *Builder) renderEcho(src Source, stamp string) (rendered, error) {
	doc := pipeline.SplitFrontMatter(pipeline.NormalizeLineEndings(src.Content))
	slug := src.Slug()
	week := doc.Get(pipeline.MetaWeek, "")

	entry := Entry{
		Slug:     slug,
		Title:    doc.Get(pipeline.MetaTitle, slug),
		Date:     doc.Get(pipeline.MetaDate, ""),
		Type:     pipeline.TypeEcho.String(),
		Week:     week,
		WeekNum:  weekNumber(week),
		Question: doc.Get(pipeline.MetaQuestion, b.site.EchoQuestion),
		HasMeta:  doc.HasFrontMatter(),
	}

	ctx := pipeline.NewContext(
		"title", pipeline.EscapeHTML(entry.Title),
		"date", pipeline.EscapeHTML(entry.Date),
		"week", pipeline.EscapeHTML(entry.Week),
		"question", pipeline.EscapeHTML(entry.Question),
		"slug", pipeline.EscapeAttr(slug),
		"audio", audioPlayer(doc.Get(pipeline.MetaAudio, "")),
		"content", pipeline.RenderEcho(doc.Body),
	)

	description := entry.Question
	if description == "" {
		description = b.describe(doc.Body)
	}

	page, err := b.compose("echo/"+slug+".html", b.templates.Echo, ctx, pageMeta{
		title:       b.pageTitle(entry.Title),
		description: description,
		cssPath:     "../",
	}, stamp)
	if err != nil {
		return rendered{}, err
	}
	return rendered{entry: entry, page: page}, nil
}

// renderAbout renders the about page as prose. A front matter title
// replaces Site.AboutTitle.
func (b *Builder) renderAbout(src Source, stamp string) (Page, error) {
	doc := pipeline.SplitFrontMatter(pipeline.NormalizeLineEndings(src.Content))
	title := doc.Get(pipeline.MetaTitle, b.site.AboutTitle)

	ctx := pipeline.NewContext(
		"title", pipeline.EscapeHTML(title),
		"content", pipeline.RenderProse(doc.Body),
	)

	return b.compose("about.html", b.templates.About, ctx, pageMeta{
		title:       b.pageTitle(title),
		description: b.site.AboutDescription,
		cssPath:     "./",
	}, stamp)
}

func (b *Builder) renderIndex(posts []Entry, stamp string) (Page, error) {
	items := make([]string, len(posts))
	for i, e := range posts {
		items[i] = postListItem(e)
	}

	ctx := pipeline.NewContext(
		"title", pipeline.EscapeHTML(b.site.Title),
		"postList", strings.Join(items, "\n"),
	)

	return b.compose("index.html", b.templates.Index, ctx, pageMeta{
		title:       b.site.Title,
		description: b.site.Description,
		cssPath:     "./",
	}, stamp)
}

func (b *Builder) renderEchoIndex(echoes []Entry, stamp string) (Page, error) {
	items := make([]string, len(echoes))
	for i, e := range echoes {
		items[i] = echoListItem(e)
	}

	ctx := pipeline.NewContext(
		"title", pipeline.EscapeHTML(b.site.EchoTitle),
		"echoList", strings.Join(items, "\n"),
	)

	return b.compose("echo/index.html", b.templates.EchoIndex, ctx, pageMeta{
		title:       b.pageTitle(b.site.EchoTitle),
		description: b.site.Description,
		cssPath:     "../",
	}, stamp)
}

// compose fills the page template, then wraps the result in the base layout.
func (b *Builder) compose(path, tmpl string, ctx *pipeline.Context, meta pageMeta, stamp string) (Page, error) {
	inner, missing, err := b.fill(tmpl, ctx)
	if err != nil {
		return Page{Path: path}, err
	}

	base := pipeline.NewContext(
		"title", pipeline.EscapeHTML(meta.title),
		"description", pipeline.EscapeAttr(meta.description),
		"siteTitle", pipeline.EscapeHTML(b.site.Title),
		"cssPath", meta.cssPath,
		"buildDate", pipeline.EscapeHTML(stamp),
		"body", inner,
	)

	html, baseMissing, err := b.fill(b.templates.Base, base)
	if err != nil {
		return Page{Path: path}, fmt.Errorf("base layout: %w", err)
	}

	return Page{
		Path:    path,
		HTML:    []byte(html),
		Missing: mergeNames(missing, baseMissing),
	}, nil
}

// fill renders tmpl with ctx. In permissive mode it also reports the
// placeholders left in place.
func (b *Builder) fill(tmpl string, ctx *pipeline.Context) (string, []string, error) {
	if b.strict {
		out, err := pipeline.RenderTemplateStrict(tmpl, ctx)
		return out, nil, err
	}
	return pipeline.RenderTemplate(tmpl, ctx), pipeline.MissingKeys(tmpl, ctx), nil
}

// pageTitle appends the site name: "name — site".
func (b *Builder) pageTitle(name string) string {
	switch {
	case b.site.Title == "":
		return name
	case name == "":
		return b.site.Title
	default:
		return name + " — " + b.site.Title
	}
}

// describe returns the first body line, cut to maxDescriptionRunes, or the
// site description when the body is empty.
func (b *Builder) describe(body string) string {
	line, _, _ := strings.Cut(body, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return b.site.Description
	}
	return truncateRunes(line, maxDescriptionRunes)
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos]
		}
		i++
	}
	return s
}

// weekNumber parses a week value, returning 0 for anything not an integer.
func weekNumber(week string) int {
	n, err := strconv.Atoi(strings.TrimSpace(week))
	if err != nil {
		return 0
	}
	return n
}

// audioPlayerMarkup is the player js/main.js attaches to: a play/pause
// button, a seekable track with a progress layer, a time label and the
// audio element. The pause icon starts hidden.
const audioPlayerMarkup = `<div class="audio-player">
  <button class="audio-btn" type="button" aria-label="Play">
    <svg class="icon-play" viewBox="0 0 24 24" aria-hidden="true"><path d="M8 5v14l11-7z"/></svg>
    <svg class="icon-pause" viewBox="0 0 24 24" aria-hidden="true" style="display:none"><path d="M6 5h4v14H6zm8 0h4v14h-4z"/></svg>
  </button>
  <div class="audio-track">
    <div class="waves"></div>
    <div class="waves-progress"></div>
  </div>
  <span class="audio-time">0:00</span>
  <audio preload="metadata" src="%s"></audio>
</div>`

func audioPlayer(src string) string {
	if src == "" {
		return ""
	}
	return fmt.Sprintf(audioPlayerMarkup, pipeline.EscapeAttr(src))
}

// slugHref makes a slug safe as one segment of a relative link: "?" and
// "#" no longer end the path, and quotes cannot leave the attribute.
func slugHref(slug string) string {
	return pipeline.EscapeAttr(url.PathEscape(slug))
}

func postListItem(e Entry) string {
	return fmt.Sprintf(`      <li>
        <a href="./posts/%s.html">
          <span class="title">%s</span>
          <span class="meta">%s</span>
        </a>
      </li>`, slugHref(e.Slug), pipeline.EscapeHTML(e.Title), pipeline.EscapeHTML(e.Date))
}

func echoListItem(e Entry) string {
	return fmt.Sprintf(`      <li>
        <a href="./%s.html">
          <span class="week">%s</span>
          <span class="title">%s</span>
        </a>
      </li>`, slugHref(e.Slug), pipeline.EscapeHTML(e.Week), pipeline.EscapeHTML(e.Title))
}

// mergeNames concatenates two name lists, dropping repeats.
func mergeNames(a, b []string) []string {
	if len(b) == 0 {
		return a
	}
	out := make([]string, 0, len(a)+len(b))
	seen := make(map[string]bool, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, name := range list {
			if !seen[name] {
				seen[name] = true
				out = append(out, name)
			}
		}
	}
	return out
}
