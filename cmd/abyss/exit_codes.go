package main

import (
	"errors"
	"os"

	abyss "github.com/alnah/go-abyss"
	"github.com/alnah/go-abyss/internal/config"
)

// Exit codes for the abyss CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Build or check succeeded
	ExitGeneral = 1 // General/unexpected error, or check found errors
	ExitUsage   = 2 // Invalid flags, config, content or templates
	ExitIO      = 3 // Content not found, read or write failure
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoContent) ||
		errors.Is(err, ErrReadContent) ||
		errors.Is(err, ErrWritePage) {
		return ExitIO
	}

	// Usage/config/validation errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnsupportedShell) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrEmptyConfigName) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, abyss.ErrEmptySourceName) ||
		errors.Is(err, abyss.ErrDuplicateSlug) ||
		errors.Is(err, abyss.ErrUnresolvedPlaceholder) ||
		errors.Is(err, abyss.ErrInvalidWorkerCount) ||
		errors.Is(err, abyss.ErrInvalidBuildDate) ||
		errors.Is(err, abyss.ErrTemplateNotFound) ||
		errors.Is(err, abyss.ErrIncompleteTemplateSet) ||
		errors.Is(err, abyss.ErrInvalidTemplatePath) {
		return ExitUsage
	}

	return ExitGeneral
}
