package abyss

import (
	"errors"
	"testing"
)

func TestSource_Slug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		want string
	}{
		{"post.md", "post"},
		{"posts/2025/post.md", "post"},
		{"archive.tar.md", "archive.tar"},
		{"README", "README"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := (Source{Name: tt.name}).Slug(); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestInput_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   Input
		wantErr error
	}{
		{
			name:  "empty input",
			input: Input{},
		},
		{
			name: "distinct slugs",
			input: Input{
				Posts:  []Source{{Name: "a.md"}, {Name: "b.md"}},
				Echoes: []Source{{Name: "a.md"}},
				About:  &Source{Name: "about.md"},
			},
		},
		{
			name:    "same slug different extension",
			input:   Input{Posts: []Source{{Name: "a.md"}, {Name: "a.txt"}}},
			wantErr: ErrDuplicateSlug,
		},
		{
			name:    "empty echo name",
			input:   Input{Echoes: []Source{{Name: "w1.md"}, {Name: ""}}},
			wantErr: ErrEmptySourceName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := tt.input.Validate()
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

func TestResult_Page(t *testing.T) {
	t.Parallel()

	res := &Result{Pages: []Page{{Path: "index.html"}, {Path: "about.html"}}}

	if p := res.Page("about.html"); p == nil || p.Path != "about.html" {
		t.Errorf("Page(about.html) = %v", p)
	}
	if p := res.Page("missing.html"); p != nil {
		t.Errorf("Page(missing.html) = %v, want nil", p)
	}
}

func TestWithClock_NilPanics(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithClock(nil) did not panic")
		}
	}()
	WithClock(nil)
}

func TestWithLogger_Nil(t *testing.T) {
	t.Parallel()

	b := newTestBuilder(t, WithLogger(nil))
	if b.logger == nil {
		t.Error("nil logger was not replaced")
	}
}
