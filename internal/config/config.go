package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/alnah/go-abyss/internal/dateutil"
	"github.com/alnah/go-abyss/internal/fileutil"
	"github.com/alnah/go-abyss/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// DefaultName is the config name looked up when none is given.
const DefaultName = "abyss"

// userConfigSubdir is the directory under the user config dir.
const userConfigSubdir = "abyss"

// Field length limits.
const (
	MaxTitleLength       = 200  // Site, about and echo titles
	MaxDescriptionLength = 500  // Meta descriptions
	MaxQuestionLength    = 500  // Default echo question
	MaxStampLength       = 60   // "auto:FORMAT" or a literal stamp
	MaxPathLength        = 4096 // Directories and globs
)

// MaxWorkers caps build.workers.
const MaxWorkers = 64

// Config holds all configuration for a site build.
type Config struct {
	Site      SiteConfig      `yaml:"site"`
	Content   ContentConfig   `yaml:"content"`
	Output    OutputConfig    `yaml:"output"`
	Templates TemplatesConfig `yaml:"templates"`
	Echo      EchoConfig      `yaml:"echo"`
	Build     BuildConfig     `yaml:"build"`
}

// SiteConfig defines site-wide text.
type SiteConfig struct {
	Title            string `yaml:"title"`
	Description      string `yaml:"description"`
	AboutTitle       string `yaml:"aboutTitle"`
	AboutDescription string `yaml:"aboutDescription"`
	EchoTitle        string `yaml:"echoTitle"`
	BuildDate        string `yaml:"buildDate"` // "", literal text, "auto" or "auto:FORMAT"
}

// ContentConfig locates the source files.
type ContentConfig struct {
	Dir   string `yaml:"dir"`
	Posts string `yaml:"posts"` // doublestar glob relative to Dir
	Echo  string `yaml:"echo"`  // doublestar glob relative to Dir; empty disables echoes
	About string `yaml:"about"` // file relative to Dir; empty disables the about page
}

// OutputConfig defines where pages are written.
type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// TemplatesConfig defines template overrides.
type TemplatesConfig struct {
	Dir string `yaml:"dir"` // Empty = embedded templates only
}

// EchoConfig defines echo page defaults.
type EchoConfig struct {
	Question string `yaml:"question"` // Used when an echo has no question key
}

// BuildConfig defines build behavior.
type BuildConfig struct {
	Strict  bool `yaml:"strict"`  // Fail on unresolved placeholders
	Workers int  `yaml:"workers"` // 0 = automatic
}

// Validate checks field lengths, worker bounds and glob syntax.
// Called automatically by LoadConfig, but available for callers that
// build a Config by hand or after applying overrides.
func (c *Config) Validate() error {
	fields := []struct {
		name  string
		value string
		max   int
	}{
		{"site.title", c.Site.Title, MaxTitleLength},
		{"site.description", c.Site.Description, MaxDescriptionLength},
		{"site.aboutTitle", c.Site.AboutTitle, MaxTitleLength},
		{"site.aboutDescription", c.Site.AboutDescription, MaxDescriptionLength},
		{"site.echoTitle", c.Site.EchoTitle, MaxTitleLength},
		{"site.buildDate", c.Site.BuildDate, MaxStampLength},
		{"content.dir", c.Content.Dir, MaxPathLength},
		{"content.posts", c.Content.Posts, MaxPathLength},
		{"content.echo", c.Content.Echo, MaxPathLength},
		{"content.about", c.Content.About, MaxPathLength},
		{"output.dir", c.Output.Dir, MaxPathLength},
		{"templates.dir", c.Templates.Dir, MaxPathLength},
		{"echo.question", c.Echo.Question, MaxQuestionLength},
	}
	for _, f := range fields {
		if err := validateFieldLength(f.name, f.value, f.max); err != nil {
			return err
		}
	}

	if c.Content.Posts == "" {
		return fmt.Errorf("%w: content.posts: pattern required", ErrInvalidValue)
	}
	if err := validateGlob("content.posts", c.Content.Posts); err != nil {
		return err
	}
	if c.Content.Echo != "" {
		if err := validateGlob("content.echo", c.Content.Echo); err != nil {
			return err
		}
	}

	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers: must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	if _, err := dateutil.ResolveStamp(c.Site.BuildDate, time.Time{}); err != nil {
		return fmt.Errorf("%w: site.buildDate: %v", ErrInvalidValue, err)
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateGlob rejects malformed or absolute content patterns.
func validateGlob(fieldName, pattern string) error {
	if !doublestar.ValidatePattern(pattern) {
		return fmt.Errorf("%w: %s: malformed pattern %q", ErrInvalidValue, fieldName, pattern)
	}
	if !fs.ValidPath(strings.TrimSuffix(pattern, "/")) {
		return fmt.Errorf("%w: %s: pattern must be relative to content.dir, got %q", ErrInvalidValue, fieldName, pattern)
	}
	return nil
}

// DefaultConfig returns the layout of a stock Abyss site: markdown under
// content/, pages written next to it.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:            "Abyss",
			Description:      "The sound from Abyss. 深处传来的声音。",
			AboutTitle:       "关于",
			AboutDescription: "Abyss 是一个会写东西的 AI。",
			EchoTitle:        "回声",
		},
		Content: ContentConfig{
			Dir:   "content",
			Posts: "posts/*.md",
			Echo:  "echo/*.md",
			About: "about.md",
		},
		Output: OutputConfig{Dir: "."},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Keys absent from the file keep their DefaultConfig values.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		if configPath, err = resolveConfigPath(nameOrPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s\n%s", ErrConfigParse, configPath, yamlutil.Describe(err))
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists where a config name is looked up, in order:
// the working directory, then the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, userConfigSubdir, name+ext))
		}
	}

	return paths
}

// resolveConfigPath returns the first existing file from SearchPaths.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}

// Dump encodes c as YAML, in the same shape LoadConfig reads.
func (c *Config) Dump() ([]byte, error) {
	return yamlutil.Marshal(c)
}
