package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"
)

// fixedNow is the clock used by every command test.
var fixedNow = time.Date(2025, 3, 9, 12, 0, 0, 0, time.UTC)

// testEnv returns an environment with captured output, a fixed clock and
// only the given variables set.
func testEnv(vars map[string]string) (*Environment, *bytes.Buffer, *bytes.Buffer) {
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	return &Environment{
		Now:     func() time.Time { return fixedNow },
		Stdout:  stdout,
		Stderr:  stderr,
		Getenv:  func(k string) string { return vars[k] },
		Environ: func() []string { return nil },
	}, stdout, stderr
}

// writeFile creates path with content, making parent directories.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// writeSite lays out a content directory with one post, one echo and an
// about page, and returns its path.
func writeSite(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "content")
	writeFile(t, filepath.Join(dir, "posts", "hello.md"), "---\ntitle: Hello\ndate: 2025-01-01\n---\nFirst words.")
	writeFile(t, filepath.Join(dir, "echo", "w1.md"), "---\ntitle: One\nweek: 1\n---\nQ: Why?\nA: Because.")
	writeFile(t, filepath.Join(dir, "about.md"), "Who writes here.")
	return dir
}

// writeConfig writes a config file pointing at contentDir and outDir, plus
// any extra YAML lines, and returns its path.
func writeConfig(t *testing.T, contentDir, outDir, extra string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "abyss.yaml")
	content := fmt.Sprintf("site:\n  title: Test Site\ncontent:\n  dir: %q\noutput:\n  dir: %q\n%s", contentDir, outDir, extra)
	writeFile(t, path, content)
	return path
}
