// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"path/filepath"
	"strings"
)

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config and, when one was searched, the user config location.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/abyss.yaml"

	sep := string(filepath.Separator)
	needle := sep + "abyss" + sep
	for _, p := range searchedPaths {
		if filepath.IsAbs(p) && strings.Contains(p, needle) {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForContentDirectory returns hints when the content directory is missing.
func ForContentDirectory(dir string) string {
	return format("create " + filepath.Join(dir, "posts") + " or pass the content directory as an argument")
}

// ForOutputDirectory returns hints for output directory creation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// ForTemplateDirectory returns hints for an unusable template directory.
func ForTemplateDirectory(names []string) string {
	if len(names) == 0 {
		return format("point --templates at a directory of .html files")
	}
	return format("the directory may hold any of: " + joinHTML(names))
}

// ForIncompleteTemplate returns hints when a template lacks its fragment slot.
func ForIncompleteTemplate() string {
	return format("keep the placeholder where the page content should appear")
}

// ForUnresolvedPlaceholders returns hints for strict-mode failures.
func ForUnresolvedPlaceholders() string {
	return formatHints([]string{
		"every {{name}} in a template needs a value",
		"remove the placeholder from the template or drop --strict",
	})
}

// joinHTML lists template names with their file extension.
func joinHTML(names []string) string {
	files := make([]string, len(names))
	for i, n := range names {
		files[i] = n + ".html"
	}
	return strings.Join(files, ", ")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
