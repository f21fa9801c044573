package abyss

import (
	"fmt"

	"github.com/alnah/go-abyss/internal/fileutil"
)

// Source is one content file held in memory.
type Source struct {
	Name    string // File name; the slug is the base name without extension
	Content string // Raw file content, front matter included
}

// Slug returns the page slug derived from Name.
func (s Source) Slug() string {
	return fileutil.Slug(s.Name)
}

// Input holds everything a build reads.
type Input struct {
	Posts  []Source
	Echoes []Source
	About  *Source // nil = no about page
}

// Validate checks source names and slug uniqueness within each collection.
func (in Input) Validate() error {
	if err := validateCollection("posts", in.Posts); err != nil {
		return err
	}
	if err := validateCollection("echo", in.Echoes); err != nil {
		return err
	}
	if in.About != nil && in.About.Slug() == "" {
		return fmt.Errorf("%w: about", ErrEmptySourceName)
	}
	return nil
}

// validateCollection rejects empty names and two sources sharing a page.
func validateCollection(kind string, sources []Source) error {
	seen := make(map[string]string, len(sources))
	for i, s := range sources {
		slug := s.Slug()
		if slug == "" {
			return fmt.Errorf("%w: %s[%d]", ErrEmptySourceName, kind, i)
		}
		if prev, ok := seen[slug]; ok {
			return fmt.Errorf("%w: %s/%s.html from %q and %q", ErrDuplicateSlug, kind, slug, prev, s.Name)
		}
		seen[slug] = s.Name
	}
	return nil
}

// Page is one rendered HTML file.
type Page struct {
	Path string // Slash-separated, relative to the output root
	HTML []byte

	// Missing lists template placeholders that had no value and were left
	// in HTML as-is. Always empty in strict mode, where they are errors.
	Missing []string
}

// Entry summarizes a rendered post or echo for listings.
type Entry struct {
	Slug     string
	Title    string
	Date     string
	Type     string // prose, poem or echo
	Week     string // Echo only, as written
	WeekNum  int    // Echo only, 0 when Week is not a number
	Question string // Echo only
	HasMeta  bool   // Source had a front matter block
}

// Result holds the output of a build.
// Pages are ordered: posts (newest first), index, echoes (by week),
// echo index, about.
type Result struct {
	Pages  []Page
	Posts  []Entry // newest first
	Echoes []Entry // by week ascending
}

// Page returns the page at path, or nil.
func (r *Result) Page(path string) *Page {
	for i := range r.Pages {
		if r.Pages[i].Path == path {
			return &r.Pages[i]
		}
	}
	return nil
}

// Site holds the site-wide text placed around every page.
type Site struct {
	Title            string // Site name, appended to page titles
	Description      string // Index meta description
	AboutTitle       string // About page title unless its front matter sets one
	AboutDescription string // About meta description
	EchoTitle        string // Echo index title
	EchoQuestion     string // Echo question unless its front matter sets one
	BuildDate        string // Footer stamp: literal, "auto" or "auto:FORMAT"
}

// DefaultSite returns the stock Abyss site text.
func DefaultSite() Site {
	return Site{
		Title:            "Abyss",
		Description:      "The sound from Abyss. 深处传来的声音。",
		AboutTitle:       "关于",
		AboutDescription: "Abyss 是一个会写东西的 AI。",
		EchoTitle:        "回声",
	}
}
