package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/bmatcuk/doublestar/v4"

	abyss "github.com/alnah/go-abyss"
	"github.com/alnah/go-abyss/internal/config"
	"github.com/alnah/go-abyss/internal/fileutil"
	"github.com/alnah/go-abyss/internal/hints"
)

// Sentinel errors for content discovery.
var (
	ErrNoContent   = errors.New("content directory not found")
	ErrReadContent = errors.New("failed to read content file")
)

// loadInput reads every source the content config points at.
// Posts and echoes are matched by glob; the about file is optional.
func loadInput(c config.ContentConfig) (abyss.Input, error) {
	if !fileutil.DirExists(c.Dir) {
		return abyss.Input{}, fmt.Errorf("%w: %s%s", ErrNoContent, c.Dir, hints.ForContentDirectory(c.Dir))
	}
	fsys := os.DirFS(c.Dir)

	posts, err := readSources(fsys, c.Posts)
	if err != nil {
		return abyss.Input{}, err
	}

	var echoes []abyss.Source
	if c.Echo != "" {
		if echoes, err = readSources(fsys, c.Echo); err != nil {
			return abyss.Input{}, err
		}
	}

	about, err := readOptional(fsys, c.About)
	if err != nil {
		return abyss.Input{}, err
	}

	return abyss.Input{Posts: posts, Echoes: echoes, About: about}, nil
}

// discover returns the files matching pattern, sorted.
func discover(fsys fs.FS, pattern string) ([]string, error) {
	matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
	if err != nil {
		return nil, fmt.Errorf("matching %q: %w", pattern, err)
	}
	slices.Sort(matches)
	return matches, nil
}

// readSources loads the files matching pattern. Names stay relative to fsys.
func readSources(fsys fs.FS, pattern string) ([]abyss.Source, error) {
	names, err := discover(fsys, pattern)
	if err != nil {
		return nil, err
	}

	sources := make([]abyss.Source, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrReadContent, name, err)
		}
		sources = append(sources, abyss.Source{Name: name, Content: string(data)})
	}
	return sources, nil
}

// readOptional loads name when it exists. An empty name or a missing file
// yields nil.
func readOptional(fsys fs.FS, name string) (*abyss.Source, error) {
	if name == "" {
		return nil, nil
	}
	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrReadContent, name, err)
	}
	return &abyss.Source{Name: name, Content: string(data)}, nil
}
