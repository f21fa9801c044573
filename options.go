package abyss

import (
	"log/slog"
	"time"
)

// Option configures a Builder.
type Option func(*Builder)

// WithSite sets the site-wide text. Empty fields are kept empty; start
// from DefaultSite to override only some of them.
func WithSite(site Site) Option {
	return func(b *Builder) {
		b.site = site
	}
}

// WithTemplates uses ts instead of loading templates.
// Takes precedence over WithTemplateDir.
func WithTemplates(ts *TemplateSet) Option {
	return func(b *Builder) {
		b.templates = ts
	}
}

// WithTemplateDir loads templates from dir, falling back to the built-in
// template for each file the directory lacks.
func WithTemplateDir(dir string) Option {
	return func(b *Builder) {
		b.templateDir = dir
	}
}

// WithStrict makes a template placeholder with no value an error instead of
// leaving the token in the page.
func WithStrict(strict bool) Option {
	return func(b *Builder) {
		b.strict = strict
	}
}

// WithWorkers sets how many documents render concurrently.
// 0 picks a value from GOMAXPROCS; negative values fail NewBuilder.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		b.workers = n
	}
}

// WithLogger sets the logger for build diagnostics.
// A nil logger discards them, which is also the default.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// WithClock sets the time source used to resolve an "auto" build date.
// Panics if now is nil (programmer error).
func WithClock(now func() time.Time) Option {
	if now == nil {
		panic("abyss: WithClock requires a non-nil function")
	}
	return func(b *Builder) {
		b.now = now
	}
}
