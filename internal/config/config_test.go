package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Notes:
// - resolveConfigPath searches the working directory, so tests that need a
//   name lookup chdir into a temp dir and cannot run in parallel.

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()

	if cfg.Site.Title != "Abyss" {
		t.Errorf("Site.Title = %q, want %q", cfg.Site.Title, "Abyss")
	}
	if cfg.Site.EchoTitle != "回声" {
		t.Errorf("Site.EchoTitle = %q, want %q", cfg.Site.EchoTitle, "回声")
	}
	if cfg.Content.Dir != "content" {
		t.Errorf("Content.Dir = %q, want %q", cfg.Content.Dir, "content")
	}
	if cfg.Content.Posts != "posts/*.md" {
		t.Errorf("Content.Posts = %q, want %q", cfg.Content.Posts, "posts/*.md")
	}
	if cfg.Output.Dir != "." {
		t.Errorf("Output.Dir = %q, want %q", cfg.Output.Dir, ".")
	}
	if cfg.Templates.Dir != "" {
		t.Errorf("Templates.Dir = %q, want empty (embedded)", cfg.Templates.Dir)
	}
	if cfg.Build.Strict {
		t.Error("Build.Strict = true, want false")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate, got %v", err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	t.Parallel()

	if err := validateFieldLength("f", "1234567890", 10); err != nil {
		t.Errorf("value at limit should pass, got %v", err)
	}

	err := validateFieldLength("site.title", "12345678901", 10)
	if !errors.Is(err, ErrFieldTooLong) {
		t.Fatalf("error = %v, want ErrFieldTooLong", err)
	}
	if !strings.Contains(err.Error(), "site.title") {
		t.Errorf("error should name the field, got %q", err.Error())
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Validate - Field rules
// ---------------------------------------------------------------------------

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "defaults",
			mutate: func(c *Config) {},
		},
		{
			name:    "title too long",
			mutate:  func(c *Config) { c.Site.Title = strings.Repeat("a", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "echo title too long",
			mutate:  func(c *Config) { c.Site.EchoTitle = strings.Repeat("a", MaxTitleLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "description too long",
			mutate:  func(c *Config) { c.Site.Description = strings.Repeat("a", MaxDescriptionLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "question too long",
			mutate:  func(c *Config) { c.Echo.Question = strings.Repeat("a", MaxQuestionLength+1) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "posts pattern required",
			mutate:  func(c *Config) { c.Content.Posts = "" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "malformed posts pattern",
			mutate:  func(c *Config) { c.Content.Posts = "posts/[*.md" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "absolute posts pattern",
			mutate:  func(c *Config) { c.Content.Posts = "/posts/*.md" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "parent posts pattern",
			mutate:  func(c *Config) { c.Content.Posts = "../posts/*.md" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "recursive posts pattern",
			mutate: func(c *Config) { c.Content.Posts = "posts/**/*.md" },
		},
		{
			name:   "echo disabled",
			mutate: func(c *Config) { c.Content.Echo = "" },
		},
		{
			name:    "malformed echo pattern",
			mutate:  func(c *Config) { c.Content.Echo = "echo/{a,b" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative workers",
			mutate:  func(c *Config) { c.Build.Workers = -1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "too many workers",
			mutate:  func(c *Config) { c.Build.Workers = MaxWorkers + 1 },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "max workers",
			mutate: func(c *Config) { c.Build.Workers = MaxWorkers },
		},
		{
			name:   "auto build date",
			mutate: func(c *Config) { c.Site.BuildDate = "auto:long" },
		},
		{
			name:   "literal build date",
			mutate: func(c *Config) { c.Site.BuildDate = "Spring 2025" },
		},
		{
			name:    "bad auto build date",
			mutate:  func(c *Config) { c.Site.BuildDate = "auto:[YYYY" },
			wantErr: ErrInvalidValue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadConfig - File loading
// ---------------------------------------------------------------------------

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "site.yaml")
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		return path
	}

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file overrides keep other defaults", func(t *testing.T) {
		t.Parallel()

		path := writeConfig(t, `site:
  title: "深处"
  buildDate: auto
content:
  dir: notes
build:
  workers: 4
  strict: true
`)

		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Site.Title != "深处" {
			t.Errorf("Site.Title = %q, want %q", cfg.Site.Title, "深处")
		}
		if cfg.Site.Description != DefaultConfig().Site.Description {
			t.Errorf("Site.Description = %q, want default", cfg.Site.Description)
		}
		if cfg.Content.Dir != "notes" {
			t.Errorf("Content.Dir = %q, want %q", cfg.Content.Dir, "notes")
		}
		if cfg.Content.Posts != "posts/*.md" {
			t.Errorf("Content.Posts = %q, want default", cfg.Content.Posts)
		}
		if cfg.Build.Workers != 4 || !cfg.Build.Strict {
			t.Errorf("Build = %+v, want workers 4 strict", cfg.Build)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "site: [unclosed"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "site:\n  theme: dark\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Fatalf("error = %v, want ErrConfigParse", err)
		}
		if !strings.Contains(err.Error(), "theme") {
			t.Errorf("error should point at the unknown key, got %q", err.Error())
		}
	})

	t.Run("validation runs after decoding", func(t *testing.T) {
		t.Parallel()

		_, err := LoadConfig(writeConfig(t, "build:\n  workers: 1000\n"))
		if !errors.Is(err, ErrInvalidValue) {
			t.Errorf("error = %v, want ErrInvalidValue", err)
		}
	})
}

// ---------------------------------------------------------------------------
// TestLoadConfig_ByName - Working directory lookup
// ---------------------------------------------------------------------------

func TestLoadConfig_ByName(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile("mysite.yml", []byte("site:\n  title: Named\n"), 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	cfg, err := LoadConfig("mysite")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Site.Title != "Named" {
		t.Errorf("Site.Title = %q, want %q", cfg.Site.Title, "Named")
	}

	_, err = LoadConfig("missing")
	if !errors.Is(err, ErrConfigNotFound) {
		t.Fatalf("error = %v, want ErrConfigNotFound", err)
	}
	if !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("error should list tried paths, got %q", err.Error())
	}
}

func TestSearchPaths(t *testing.T) {
	t.Parallel()

	paths := SearchPaths("abyss")
	if len(paths) < 2 {
		t.Fatalf("got %d paths, want at least 2", len(paths))
	}
	if paths[0] != "abyss.yaml" || paths[1] != "abyss.yml" {
		t.Errorf("working directory candidates = %v", paths[:2])
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join(userConfigSubdir, "abyss")) {
			t.Errorf("user path %q should live under %s", p, userConfigSubdir)
		}
	}
}

// ---------------------------------------------------------------------------
// TestConfig_Dump - Dump output loads back
// ---------------------------------------------------------------------------

func TestConfig_Dump(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Echo.Question = "你听见了吗？"

	data, err := cfg.Dump()
	if err != nil {
		t.Fatalf("Dump() error = %v", err)
	}

	path := filepath.Join(t.TempDir(), "dump.yaml")
	if err := os.WriteFile(path, data, 0600); err != nil {
		t.Fatalf("setup: %v", err)
	}

	back, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig(dump) error = %v\n%s", err, data)
	}
	if *back != *cfg {
		t.Errorf("reloaded config differs:\n got %+v\nwant %+v", back, cfg)
	}
}
