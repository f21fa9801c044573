// Package abyss builds a static blog from lightweight-markup content files.
//
// # Quick Start
//
// Create a builder and render the sources held in memory:
//
//	b, err := abyss.NewBuilder()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := b.Build(ctx, abyss.Input{
//	    Posts: []abyss.Source{
//	        {Name: "first.md", Content: "---\ntitle: First\ndate: 2025-01-01\n---\nHello."},
//	    },
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, page := range result.Pages {
//	    fmt.Println(page.Path) // posts/first.html, index.html
//	}
//
// The builder never touches the filesystem for content; writing pages is up
// to the caller. The abyss command reads a content directory and writes
// the result atomically.
//
// # Build Pipeline
//
// Each document goes through these stages:
//
//  1. Line ending normalization and front matter split ("key: value" lines)
//  2. Body rendering by content type: prose, poem or echo
//  3. Page template fill ({{name}} placeholders)
//  4. Base layout fill (title, description, relative asset path, build date)
//
// Once every document is rendered, the post index and the echo index are
// composed from the sorted entries: posts newest first, echoes by week.
//
// # Configuration
//
// Use functional options to customize the builder:
//
//	site := abyss.DefaultSite()
//	site.Title = "Notes"
//	site.BuildDate = "auto:YYYY-MM-DD"
//
//	b, err := abyss.NewBuilder(
//	    abyss.WithSite(site),
//	    abyss.WithTemplateDir("/path/to/templates"),
//	    abyss.WithStrict(true),
//	    abyss.WithWorkers(4),
//	)
//
// # Templates
//
// A template directory may override any of the built-in templates by file
// name; missing files fall back to the built-in version:
//
//	templates/
//	├── base.html
//	├── post.html
//	├── index.html
//	├── about.html
//	├── echo.html
//	└── echo-index.html
//
// Placeholders with no value stay in the output and are listed in
// Page.Missing. With WithStrict they fail the build instead.
package abyss
