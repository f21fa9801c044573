package abyss

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-abyss/internal/dateutil"
)

// Builder turns content sources into site pages.
// Create with NewBuilder and call Build for each build; a Builder holds no
// per-build state and is safe for concurrent use.
type Builder struct {
	site        Site
	templates   *TemplateSet
	templateDir string
	strict      bool
	workers     int
	logger      *slog.Logger
	now         func() time.Time
}

// NewBuilder creates a Builder with the default site text and templates.
// Use options to customize behavior (e.g., WithSite, WithTemplateDir, WithStrict).
// Returns error if templates cannot be loaded or lack a fragment placeholder,
// the worker count is negative, or the build date format is invalid.
func NewBuilder(opts ...Option) (*Builder, error) {
	b := &Builder{
		site: DefaultSite(),
		now:  time.Now,
	}

	for _, opt := range opts {
		opt(b)
	}

	if b.workers < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkerCount, b.workers)
	}
	b.workers = ResolveWorkers(b.workers)

	if b.logger == nil {
		b.logger = slog.New(slog.DiscardHandler)
	}

	if b.templates == nil {
		ts, err := LoadTemplates(b.templateDir)
		if err != nil {
			return nil, fmt.Errorf("loading templates: %w", err)
		}
		b.templates = ts
	}
	if err := b.templates.Validate(); err != nil {
		return nil, err
	}

	// Syntax check only; the date itself is taken when Build runs.
	if _, err := dateutil.ResolveStamp(b.site.BuildDate, time.Time{}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuildDate, err)
	}

	return b, nil
}

// Workers returns the resolved concurrency limit.
func (b *Builder) Workers() int {
	return b.workers
}

// Build renders every source and the listing pages.
//
// Documents render concurrently, up to the worker limit. Listings are
// composed once all documents are done, so their order never depends on
// scheduling. The first error cancels the remaining work and is returned.
func (b *Builder) Build(ctx context.Context, in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	stamp, err := dateutil.ResolveStamp(b.site.BuildDate, b.now())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBuildDate, err)
	}

	posts := make([]rendered, len(in.Posts))
	echoes := make([]rendered, len(in.Echoes))
	var about *Page

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)

	for i, src := range in.Posts {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := b.renderPost(src, stamp)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}
			posts[i] = r
			return nil
		})
	}

	for i, src := range in.Echoes {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			r, err := b.renderEcho(src, stamp)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}
			echoes[i] = r
			return nil
		})
	}

	if in.About != nil {
		src := *in.About
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := b.renderAbout(src, stamp)
			if err != nil {
				return fmt.Errorf("%s: %w", src.Name, err)
			}
			about = &p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sortPosts(posts)
	sortEchoes(echoes)

	res := &Result{
		Pages:  make([]Page, 0, len(posts)+len(echoes)+3),
		Posts:  make([]Entry, 0, len(posts)),
		Echoes: make([]Entry, 0, len(echoes)),
	}

	for _, r := range posts {
		res.Pages = append(res.Pages, r.page)
		res.Posts = append(res.Posts, r.entry)
	}

	index, err := b.renderIndex(res.Posts, stamp)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", index.Path, err)
	}
	res.Pages = append(res.Pages, index)

	for _, r := range echoes {
		res.Pages = append(res.Pages, r.page)
		res.Echoes = append(res.Echoes, r.entry)
	}

	if len(echoes) > 0 {
		echoIndex, err := b.renderEchoIndex(res.Echoes, stamp)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", echoIndex.Path, err)
		}
		res.Pages = append(res.Pages, echoIndex)
	}

	if about != nil {
		res.Pages = append(res.Pages, *about)
	}

	for _, p := range res.Pages {
		if len(p.Missing) > 0 {
			b.logger.WarnContext(ctx, "unresolved placeholders", "page", p.Path, "keys", p.Missing)
		} else {
			b.logger.DebugContext(ctx, "page rendered", "page", p.Path, "bytes", len(p.HTML))
		}
	}
	b.logger.InfoContext(ctx, "site built",
		"pages", len(res.Pages),
		"posts", len(res.Posts),
		"echoes", len(res.Echoes),
		"workers", b.workers,
	)

	return res, nil
}

// sortPosts orders posts newest first. Dates compare as strings, so only
// zero-padded dates sort chronologically. Ties go to the smaller slug.
func sortPosts(posts []rendered) {
	slices.SortStableFunc(posts, func(a, b rendered) int {
		if c := cmp.Compare(b.entry.Date, a.entry.Date); c != 0 {
			return c
		}
		return cmp.Compare(a.entry.Slug, b.entry.Slug)
	})
}

// sortEchoes orders echoes by week number. Ties go to the smaller slug.
func sortEchoes(echoes []rendered) {
	slices.SortStableFunc(echoes, func(a, b rendered) int {
		if c := cmp.Compare(a.entry.WeekNum, b.entry.WeekNum); c != 0 {
			return c
		}
		return cmp.Compare(a.entry.Slug, b.entry.Slug)
	})
}
