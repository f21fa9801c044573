package main

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"testing/fstest"

	"github.com/alnah/go-abyss/internal/config"
)

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"posts/b.md":      {Data: []byte("b")},
		"posts/a.md":      {Data: []byte("a")},
		"posts/sub/c.md":  {Data: []byte("c")},
		"posts/notes.txt": {Data: []byte("x")},
		"echo/w1.md":      {Data: []byte("w1")},
		"about.md":        {Data: []byte("about")},
	}
}

// ---------------------------------------------------------------------------
// TestDiscover - Glob matching over a content tree
// ---------------------------------------------------------------------------

func TestDiscover(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		pattern string
		want    []string
	}{
		{"single level", "posts/*.md", []string{"posts/a.md", "posts/b.md"}},
		{"recursive", "posts/**/*.md", []string{"posts/a.md", "posts/b.md", "posts/sub/c.md"}},
		{"alternatives", "posts/*.{md,txt}", []string{"posts/a.md", "posts/b.md", "posts/notes.txt"}},
		{"no match", "drafts/*.md", nil},
		{"directories skipped", "posts/*", []string{"posts/a.md", "posts/b.md", "posts/notes.txt"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := discover(contentFS(), tt.pattern)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !slices.Equal(got, tt.want) {
				t.Errorf("discover(%q) = %v, want %v", tt.pattern, got, tt.want)
			}
		})
	}

	t.Run("bad pattern", func(t *testing.T) {
		t.Parallel()

		if _, err := discover(contentFS(), "posts/[a"); err == nil {
			t.Error("expected error for malformed pattern")
		}
	})
}

// ---------------------------------------------------------------------------
// TestReadSources - Loaded files keep relative names
// ---------------------------------------------------------------------------

func TestReadSources(t *testing.T) {
	t.Parallel()

	got, err := readSources(contentFS(), "posts/*.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d sources, want 2", len(got))
	}
	if got[0].Name != "posts/a.md" || got[0].Content != "a" {
		t.Errorf("first source = %+v", got[0])
	}
	if got[0].Slug() != "a" {
		t.Errorf("Slug() = %q, want %q", got[0].Slug(), "a")
	}
}

// ---------------------------------------------------------------------------
// TestReadOptional - Optional about page
// ---------------------------------------------------------------------------

func TestReadOptional(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		file    string
		wantNil bool
	}{
		{"present", "about.md", false},
		{"missing", "nope.md", true},
		{"disabled", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := readOptional(contentFS(), tt.file)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if (got == nil) != tt.wantNil {
				t.Errorf("readOptional(%q) = %v, wantNil %v", tt.file, got, tt.wantNil)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestLoadInput - Content directory to build input
// ---------------------------------------------------------------------------

func TestLoadInput(t *testing.T) {
	t.Parallel()

	t.Run("full site", func(t *testing.T) {
		t.Parallel()

		c := config.DefaultConfig().Content
		c.Dir = writeSite(t)
		in, err := loadInput(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(in.Posts) != 1 || len(in.Echoes) != 1 || in.About == nil {
			t.Errorf("input = %d posts, %d echoes, about %v", len(in.Posts), len(in.Echoes), in.About)
		}
	})

	t.Run("echoes disabled", func(t *testing.T) {
		t.Parallel()

		c := config.DefaultConfig().Content
		c.Dir = writeSite(t)
		c.Echo = ""
		in, err := loadInput(c)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(in.Echoes) != 0 {
			t.Errorf("got %d echoes, want 0", len(in.Echoes))
		}
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		c := config.DefaultConfig().Content
		c.Dir = filepath.Join(t.TempDir(), "absent")
		_, err := loadInput(c)
		if !errors.Is(err, ErrNoContent) {
			t.Errorf("error = %v, want ErrNoContent", err)
		}
	})
}
