package main

// Notes:
// - loadConfig: the default-name lookup reads the working directory and the
//   user config directory, so only explicit names are tested here.
// - runBuild end to end is covered through runMain in main_test.go.

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	abyss "github.com/alnah/go-abyss"
	"github.com/alnah/go-abyss/internal/config"
)

// ---------------------------------------------------------------------------
// TestLoadConfig - Explicit config resolution
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	cfgPath := writeConfig(t, "from-file", "out", "")

	t.Run("flag wins over environment", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig(cfgPath, &envConfig{ConfigPath: "/nowhere/abyss.yaml"})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Content.Dir != "from-file" {
			t.Errorf("Content.Dir = %q, want %q", cfg.Content.Dir, "from-file")
		}
	})

	t.Run("environment path", func(t *testing.T) {
		t.Parallel()

		cfg, err := loadConfig("", &envConfig{ConfigPath: cfgPath})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Site.Title != "Test Site" {
			t.Errorf("Site.Title = %q, want %q", cfg.Site.Title, "Test Site")
		}
		if cfg.Content.Posts != "posts/*.md" {
			t.Errorf("absent keys should keep defaults, Content.Posts = %q", cfg.Content.Posts)
		}
	})

	t.Run("missing explicit file", func(t *testing.T) {
		t.Parallel()

		_, err := loadConfig(filepath.Join(t.TempDir(), "absent.yaml"), &envConfig{})
		if !errors.Is(err, config.ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint: %v", err)
		}
	})

	t.Run("parse error", func(t *testing.T) {
		t.Parallel()

		bad := filepath.Join(t.TempDir(), "bad.yaml")
		writeFile(t, bad, "site:\n  unknownKey: 1\n")
		_, err := loadConfig(bad, &envConfig{})
		if !errors.Is(err, config.ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestMergeBuildFlags - CLI flags override config
// ---------------------------------------------------------------------------

func TestMergeBuildFlags(t *testing.T) {
	t.Parallel()

	t.Run("all flags set", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		flags := &buildFlags{
			output:    "public",
			templates: "tpl",
			workers:   3,
			strict:    true,
			buildDate: "auto",
		}
		mergeBuildFlags(flags, []string{"src"}, cfg)

		if cfg.Content.Dir != "src" {
			t.Errorf("Content.Dir = %q, want %q", cfg.Content.Dir, "src")
		}
		if cfg.Output.Dir != "public" {
			t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, "public")
		}
		if cfg.Templates.Dir != "tpl" {
			t.Errorf("Templates.Dir = %q, want %q", cfg.Templates.Dir, "tpl")
		}
		if cfg.Build.Workers != 3 {
			t.Errorf("Build.Workers = %d, want 3", cfg.Build.Workers)
		}
		if !cfg.Build.Strict {
			t.Error("Build.Strict should be true")
		}
		if cfg.Site.BuildDate != "auto" {
			t.Errorf("Site.BuildDate = %q, want %q", cfg.Site.BuildDate, "auto")
		}
	})

	t.Run("unset flags keep config", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Build.Strict = true
		cfg.Build.Workers = 5
		mergeBuildFlags(&buildFlags{}, nil, cfg)

		want := config.DefaultConfig()
		if cfg.Content.Dir != want.Content.Dir || cfg.Output.Dir != want.Output.Dir {
			t.Errorf("directories changed: %+v", cfg)
		}
		if !cfg.Build.Strict || cfg.Build.Workers != 5 {
			t.Errorf("build settings changed: %+v", cfg.Build)
		}
	})
}

// ---------------------------------------------------------------------------
// TestSiteFromConfig - Config text reaches the builder
// ---------------------------------------------------------------------------

func TestSiteFromConfig(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Site.Title = "Notes"
	cfg.Site.EchoTitle = "Echoes"
	cfg.Site.BuildDate = "auto"
	cfg.Echo.Question = "What stayed?"

	got := siteFromConfig(cfg)
	want := abyss.Site{
		Title:            "Notes",
		Description:      cfg.Site.Description,
		AboutTitle:       cfg.Site.AboutTitle,
		AboutDescription: cfg.Site.AboutDescription,
		EchoTitle:        "Echoes",
		EchoQuestion:     "What stayed?",
		BuildDate:        "auto",
	}
	if got != want {
		t.Errorf("siteFromConfig() = %+v, want %+v", got, want)
	}
}

// ---------------------------------------------------------------------------
// TestNewBuilder_Hints - Template errors carry hints
// ---------------------------------------------------------------------------

func TestNewBuilder_Hints(t *testing.T) {
	t.Parallel()

	t.Run("missing template directory", func(t *testing.T) {
		t.Parallel()

		cfg := config.DefaultConfig()
		cfg.Templates.Dir = filepath.Join(t.TempDir(), "absent")
		_, err := newBuilder(cfg, nil, time.Now)
		if !errors.Is(err, abyss.ErrInvalidTemplatePath) {
			t.Fatalf("error = %v, want ErrInvalidTemplatePath", err)
		}
		if !strings.Contains(err.Error(), "base.html") {
			t.Errorf("hint should list template files: %v", err)
		}
	})

	t.Run("template without fragment slot", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		writeFile(t, filepath.Join(dir, "post.html"), "<article>{{title}}</article>")
		cfg := config.DefaultConfig()
		cfg.Templates.Dir = dir
		_, err := newBuilder(cfg, nil, time.Now)
		if !errors.Is(err, abyss.ErrIncompleteTemplateSet) {
			t.Fatalf("error = %v, want ErrIncompleteTemplateSet", err)
		}
		if !strings.Contains(err.Error(), "hint:") {
			t.Errorf("error should carry a hint: %v", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestWritePages - Atomic page output
// ---------------------------------------------------------------------------

func TestWritePages(t *testing.T) {
	t.Parallel()

	pages := []abyss.Page{
		{Path: "index.html", HTML: []byte("<p>index</p>")},
		{Path: "posts/a.html", HTML: []byte("<p>a</p>")},
	}

	t.Run("writes nested paths", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		var out bytes.Buffer
		if err := writePages(pages, dir, commonFlags{}, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		data, err := os.ReadFile(filepath.Join(dir, "posts", "a.html"))
		if err != nil {
			t.Fatalf("reading page: %v", err)
		}
		if string(data) != "<p>a</p>" {
			t.Errorf("content = %q", data)
		}
		if out.String() != "✓ index.html\n✓ posts/a.html\n" {
			t.Errorf("output = %q", out.String())
		}
	})

	t.Run("quiet", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		if err := writePages(pages, t.TempDir(), commonFlags{quiet: true}, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.Len() != 0 {
			t.Errorf("quiet output = %q", out.String())
		}
	})

	t.Run("verbose", func(t *testing.T) {
		t.Parallel()

		var out bytes.Buffer
		if err := writePages(pages[:1], t.TempDir(), commonFlags{verbose: true}, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if out.String() != "✓ index.html (12 bytes)\n" {
			t.Errorf("verbose output = %q", out.String())
		}
	})

	t.Run("output is a file", func(t *testing.T) {
		t.Parallel()

		file := filepath.Join(t.TempDir(), "file")
		writeFile(t, file, "x")
		err := writePages(pages, file, commonFlags{}, &bytes.Buffer{})
		if !errors.Is(err, ErrWritePage) {
			t.Errorf("error = %v, want ErrWritePage", err)
		}
	})
}
