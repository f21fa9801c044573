package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/alnah/go-abyss/internal/config"
)

// envPrefix marks the variables read by abyss.
const envPrefix = "ABYSS_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath   string // ABYSS_CONFIG: config file name or path
	ContentDir   string // ABYSS_CONTENT_DIR: content directory
	OutputDir    string // ABYSS_OUTPUT_DIR: output directory
	TemplatesDir string // ABYSS_TEMPLATES_DIR: template override directory
	BuildDate    string // ABYSS_BUILD_DATE: footer stamp
	Workers      int    // ABYSS_WORKERS: parallel workers, 0 = unset
	Strict       *bool  // ABYSS_STRICT: nil = unset
}

// knownEnvVars lists valid ABYSS_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"ABYSS_CONFIG":        true,
	"ABYSS_CONTENT_DIR":   true,
	"ABYSS_OUTPUT_DIR":    true,
	"ABYSS_TEMPLATES_DIR": true,
	"ABYSS_BUILD_DATE":    true,
	"ABYSS_WORKERS":       true,
	"ABYSS_STRICT":        true,
}

// loadEnvConfig reads configuration from environment variables.
// Unparseable numbers and booleans are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:   getenv("ABYSS_CONFIG"),
		ContentDir:   getenv("ABYSS_CONTENT_DIR"),
		OutputDir:    getenv("ABYSS_OUTPUT_DIR"),
		TemplatesDir: getenv("ABYSS_TEMPLATES_DIR"),
		BuildDate:    getenv("ABYSS_BUILD_DATE"),
	}

	if workers := getenv("ABYSS_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	if strict := getenv("ABYSS_STRICT"); strict != "" {
		if b, err := strconv.ParseBool(strict); err == nil {
			cfg.Strict = &b
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized ABYSS_* variables.
// Helps catch typos like ABYSS_OUTPUT instead of ABYSS_OUTPUT_DIR.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overrides config values with the variables that are set.
// Runs after the config file is loaded and before CLI flags are merged,
// giving: CLI flags > env vars > config file > defaults.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.TemplatesDir != "" {
		cfg.Templates.Dir = env.TemplatesDir
	}
	if env.BuildDate != "" {
		cfg.Site.BuildDate = env.BuildDate
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
	if env.Strict != nil {
		cfg.Build.Strict = *env.Strict
	}
}
