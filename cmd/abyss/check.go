package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	abyss "github.com/alnah/go-abyss"
	"github.com/alnah/go-abyss/internal/dateutil"
	"github.com/alnah/go-abyss/internal/pipeline"
)

// Report statuses.
const (
	statusOK       = "ok"
	statusWarnings = "warnings"
	statusErrors   = "errors"
)

// Issue levels.
const (
	levelWarning = "warning"
	levelError   = "error"
)

// checkIssue is one finding about a source file or rendered page.
type checkIssue struct {
	File    string `json:"file"`
	Level   string `json:"level"`
	Message string `json:"message"`
}

// checkReport holds the result of linting a content directory.
type checkReport struct {
	Status string       `json:"status"` // "ok", "warnings", "errors"
	Posts  int          `json:"posts"`
	Echoes int          `json:"echoes"`
	Pages  int          `json:"pages"`
	Issues []checkIssue `json:"issues,omitempty"`
}

func (r *checkReport) add(file, level, format string, args ...any) {
	r.Issues = append(r.Issues, checkIssue{File: file, Level: level, Message: fmt.Sprintf(format, args...)})
}

// count returns the number of issues at level.
func (r *checkReport) count(level string) int {
	n := 0
	for _, is := range r.Issues {
		if is.Level == level {
			n++
		}
	}
	return n
}

// runCheckCmd lints content and returns an exit code.
// Exit codes: 0 = OK (including warnings), 1 = errors found, other codes
// when the content cannot be loaded.
func runCheckCmd(ctx context.Context, args []string, env *Environment) int {
	flags, positional, err := parseCheckFlags(args, env.Stderr)
	if err != nil {
		return report(err, env.Stderr)
	}
	if len(positional) > 1 {
		return report(fmt.Errorf("%w: check takes at most one content directory", ErrUsage), env.Stderr)
	}

	rep, err := runCheck(ctx, flags, positional, env)
	if err != nil {
		return report(err, env.Stderr)
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(rep)
	} else {
		printCheckReport(env.Stdout, rep)
	}

	if rep.Status == statusErrors {
		return ExitGeneral
	}
	return ExitSuccess
}

// runCheck loads content like build does and renders it without writing.
// Strict mode is off so unresolved placeholders become issues, not failures.
func runCheck(ctx context.Context, flags *checkFlags, positional []string, env *Environment) (*checkReport, error) {
	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(flags.config, envCfg)
	if err != nil {
		return nil, err
	}
	applyEnvConfig(envCfg, cfg)
	if len(positional) == 1 {
		cfg.Content.Dir = positional[0]
	}
	if flags.templates != "" {
		cfg.Templates.Dir = flags.templates
	}
	cfg.Build.Strict = false
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	input, err := loadInput(cfg.Content)
	if err != nil {
		return nil, err
	}

	rep := &checkReport{Posts: len(input.Posts), Echoes: len(input.Echoes)}
	for _, src := range input.Posts {
		lintPost(rep, src)
	}
	for _, src := range input.Echoes {
		lintEcho(rep, src)
	}

	builder, err := newBuilder(cfg, slog.New(slog.DiscardHandler), env.Now)
	if err != nil {
		return nil, err
	}
	result, err := builder.Build(ctx, input)
	if err != nil {
		return nil, err
	}

	rep.Pages = len(result.Pages)
	for _, p := range result.Pages {
		if len(p.Missing) > 0 {
			rep.add(p.Path, levelError, "unresolved placeholders: %s", strings.Join(p.Missing, ", "))
		}
	}

	switch {
	case rep.count(levelError) > 0:
		rep.Status = statusErrors
	case len(rep.Issues) > 0:
		rep.Status = statusWarnings
	default:
		rep.Status = statusOK
	}
	return rep, nil
}

func parseSource(src abyss.Source) pipeline.Document {
	return pipeline.SplitFrontMatter(pipeline.NormalizeLineEndings(src.Content))
}

// lintPost flags metadata that silently falls back or misorders the index.
func lintPost(rep *checkReport, src abyss.Source) {
	doc := parseSource(src)
	if !doc.HasFrontMatter() {
		rep.add(src.Name, levelWarning, "no front matter; title falls back to the file name")
		return
	}

	if doc.Get(pipeline.MetaTitle, "") == "" {
		rep.add(src.Name, levelWarning, "no title; the file name is used")
	}

	if raw := doc.Get(pipeline.MetaType, ""); raw != "" {
		if pipeline.ParseContentType(raw).String() != strings.ToLower(strings.TrimSpace(raw)) {
			rep.add(src.Name, levelWarning, "unknown type %q, rendered as prose", raw)
		}
	}

	switch date := doc.Get(pipeline.MetaDate, ""); {
	case date == "":
		rep.add(src.Name, levelWarning, "no date; listed after dated posts")
	case !dateutil.IsSortable(date):
		rep.add(src.Name, levelError, "date %q does not sort as text; use YYYY-MM-DD", date)
	}
}

// lintEcho flags echoes whose week cannot order the echo index.
func lintEcho(rep *checkReport, src abyss.Source) {
	doc := parseSource(src)
	if !doc.HasFrontMatter() {
		rep.add(src.Name, levelWarning, "no front matter; week sorts as 0")
		return
	}

	week := doc.Get(pipeline.MetaWeek, "")
	if week == "" {
		rep.add(src.Name, levelWarning, "no week; listed first")
		return
	}
	if _, err := strconv.Atoi(strings.TrimSpace(week)); err != nil {
		rep.add(src.Name, levelError, "week %q is not a number; sorted as week 0", week)
	}
}

// printCheckReport outputs a human-readable report.
func printCheckReport(w io.Writer, r *checkReport) {
	fmt.Fprintln(w, "abyss check")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Content")
	fmt.Fprintf(w, "  [OK] %d posts, %d echoes\n", r.Posts, r.Echoes)
	fmt.Fprintf(w, "  [OK] %d pages rendered\n", r.Pages)
	fmt.Fprintln(w)

	printIssues(w, r.Issues, levelWarning, "Warnings:", "[WARN]")
	printIssues(w, r.Issues, levelError, "Errors:", "[ERROR]")

	switch r.Status {
	case statusOK:
		fmt.Fprintln(w, "Status: Ready to build")
	case statusWarnings:
		fmt.Fprintln(w, "Status: Ready with warnings")
	case statusErrors:
		fmt.Fprintln(w, "Status: Not ready (see errors above)")
	}
}

func printIssues(w io.Writer, issues []checkIssue, level, heading, tag string) {
	printed := false
	for _, is := range issues {
		if is.Level != level {
			continue
		}
		if !printed {
			fmt.Fprintln(w, heading)
			printed = true
		}
		fmt.Fprintf(w, "  %s %s: %s\n", tag, is.File, is.Message)
	}
	if printed {
		fmt.Fprintln(w)
	}
}
