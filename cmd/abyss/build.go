package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	abyss "github.com/alnah/go-abyss"
	"github.com/alnah/go-abyss/internal/assets"
	"github.com/alnah/go-abyss/internal/config"
	"github.com/alnah/go-abyss/internal/fileutil"
	"github.com/alnah/go-abyss/internal/hints"
)

// ErrWritePage is returned when a page cannot be written.
var ErrWritePage = errors.New("failed to write page")

// filePermissions is rw-r--r--: pages are served as static files.
const filePermissions = 0o644

// runBuild orchestrates a site build: config, discovery, rendering, writing.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) > 1 {
		return fmt.Errorf("%w: build takes at most one content directory, got %d arguments", ErrUsage, len(positional))
	}

	envCfg := loadEnvConfig(env.Getenv)
	warnUnknownEnvVars(env.Stderr, env.Environ())

	cfg, err := loadConfig(flags.common.config, envCfg)
	if err != nil {
		return err
	}
	applyEnvConfig(envCfg, cfg)
	mergeBuildFlags(flags, positional, cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := env.newLogger(flags.common.quiet, flags.common.verbose)
	builder, err := newBuilder(cfg, logger, env.Now)
	if err != nil {
		return err
	}

	start := env.Now()

	input, err := loadInput(cfg.Content)
	if err != nil {
		return err
	}

	result, err := builder.Build(ctx, input)
	if err != nil {
		if errors.Is(err, abyss.ErrUnresolvedPlaceholder) {
			return fmt.Errorf("%w%s", err, hints.ForUnresolvedPlaceholders())
		}
		return err
	}

	if err := writePages(result.Pages, cfg.Output.Dir, flags.common, env.Stdout); err != nil {
		return err
	}

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Built %d pages (%d posts, %d echoes) in %s\n",
			len(result.Pages), len(result.Posts), len(result.Echoes),
			env.Now().Sub(start).Round(time.Millisecond))
	}
	return nil
}

// loadConfig resolves the config for a command.
// An explicit name (flag, then ABYSS_CONFIG) must exist. Without one,
// "abyss" is looked up and defaults apply when it is absent.
func loadConfig(explicit string, env *envConfig) (*config.Config, error) {
	name := explicit
	if name == "" {
		name = env.ConfigPath
	}

	if name == "" {
		cfg, err := config.LoadConfig(config.DefaultName)
		if errors.Is(err, config.ErrConfigNotFound) {
			return config.DefaultConfig(), nil
		}
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(name)
	if err != nil {
		if errors.Is(err, config.ErrConfigNotFound) {
			return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
		}
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// mergeBuildFlags applies CLI flags to config (CLI wins).
func mergeBuildFlags(flags *buildFlags, positional []string, cfg *config.Config) {
	if len(positional) == 1 {
		cfg.Content.Dir = positional[0]
	}
	if flags.output != "" {
		cfg.Output.Dir = flags.output
	}
	if flags.templates != "" {
		cfg.Templates.Dir = flags.templates
	}
	if flags.workers != 0 {
		cfg.Build.Workers = flags.workers
	}
	if flags.strict {
		cfg.Build.Strict = true
	}
	if flags.buildDate != "" {
		cfg.Site.BuildDate = flags.buildDate
	}
}

// siteFromConfig maps config text onto the builder's site settings.
func siteFromConfig(cfg *config.Config) abyss.Site {
	return abyss.Site{
		Title:            cfg.Site.Title,
		Description:      cfg.Site.Description,
		AboutTitle:       cfg.Site.AboutTitle,
		AboutDescription: cfg.Site.AboutDescription,
		EchoTitle:        cfg.Site.EchoTitle,
		EchoQuestion:     cfg.Echo.Question,
		BuildDate:        cfg.Site.BuildDate,
	}
}

// newBuilder creates a builder from config, adding hints to template errors.
func newBuilder(cfg *config.Config, logger *slog.Logger, now func() time.Time) (*abyss.Builder, error) {
	b, err := abyss.NewBuilder(
		abyss.WithSite(siteFromConfig(cfg)),
		abyss.WithTemplateDir(cfg.Templates.Dir),
		abyss.WithStrict(cfg.Build.Strict),
		abyss.WithWorkers(cfg.Build.Workers),
		abyss.WithLogger(logger),
		abyss.WithClock(now),
	)
	switch {
	case err == nil:
		return b, nil
	case errors.Is(err, abyss.ErrInvalidTemplatePath):
		return nil, fmt.Errorf("%w%s", err, hints.ForTemplateDirectory(assets.TemplateNames))
	case errors.Is(err, abyss.ErrIncompleteTemplateSet):
		return nil, fmt.Errorf("%w%s", err, hints.ForIncompleteTemplate())
	default:
		return nil, err
	}
}

// writePages writes each page under outDir, replacing files atomically.
func writePages(pages []abyss.Page, outDir string, flags commonFlags, w io.Writer) error {
	for _, p := range pages {
		path := filepath.Join(outDir, filepath.FromSlash(p.Path))
		if err := fileutil.WriteFileAtomic(path, p.HTML, filePermissions); err != nil {
			return fmt.Errorf("%w: %s: %v%s", ErrWritePage, path, err, hints.ForOutputDirectory())
		}

		switch {
		case flags.quiet:
		case flags.verbose:
			fmt.Fprintf(w, "✓ %s (%d bytes)\n", p.Path, len(p.HTML))
		default:
			fmt.Fprintf(w, "✓ %s\n", p.Path)
		}
	}
	return nil
}
