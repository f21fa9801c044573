package abyss

import (
	"errors"

	"github.com/alnah/go-abyss/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	// Input validation errors.
	ErrEmptySourceName = errors.New("source name cannot be empty")
	ErrDuplicateSlug   = errors.New("duplicate page slug")

	// ErrUnresolvedPlaceholder reports a template token with no value in
	// strict mode. It is the same value the template engine returns.
	ErrUnresolvedPlaceholder = pipeline.ErrUnresolvedPlaceholder

	// Builder configuration errors.
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrInvalidBuildDate   = errors.New("invalid build date")

	// Template loading errors.
	ErrTemplateNotFound      = errors.New("template not found")
	ErrIncompleteTemplateSet = errors.New("template missing required placeholder")
	ErrInvalidTemplatePath   = errors.New("invalid template path")
)
