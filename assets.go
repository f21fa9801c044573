package abyss

import (
	"errors"

	"github.com/alnah/go-abyss/internal/assets"
)

// TemplateSet holds the HTML templates for every page kind.
//
// Each template marks where its generated fragment goes:
//   - Base:      {{body}}, plus {{title}} {{description}} {{siteTitle}} {{cssPath}} {{buildDate}}
//   - Post:      {{content}}, plus {{title}} {{date}} {{type}} {{slug}} {{audio}}
//   - Index:     {{postList}}
//   - About:     {{content}}, plus {{title}}
//   - Echo:      {{content}}, plus {{title}} {{date}} {{week}} {{question}} {{slug}} {{audio}}
//   - EchoIndex: {{echoList}}
type TemplateSet struct {
	Base      string
	Post      string
	Index     string
	About     string
	Echo      string
	EchoIndex string
}

// Validate checks that each template carries its fragment placeholder.
// Returns ErrIncompleteTemplateSet naming every template that lacks one.
func (ts *TemplateSet) Validate() error {
	return convertAssetError(ts.internal().Validate())
}

// DefaultTemplates returns the built-in templates.
func DefaultTemplates() (*TemplateSet, error) {
	ts, err := assets.DefaultTemplateSet()
	if err != nil {
		return nil, convertAssetError(err)
	}
	return fromInternal(ts), nil
}

// LoadTemplates reads templates from dir, named {name}.html, falling back
// to the built-in template for every file dir does not have.
// An empty dir returns the built-in set.
// Returns ErrInvalidTemplatePath if dir is set but not a readable directory.
func LoadTemplates(dir string) (*TemplateSet, error) {
	resolver, err := assets.NewAssetResolver(dir)
	if err != nil {
		return nil, convertAssetError(err)
	}
	ts, err := assets.LoadTemplateSet(resolver)
	if err != nil {
		return nil, convertAssetError(err)
	}
	return fromInternal(ts), nil
}

func fromInternal(ts *assets.TemplateSet) *TemplateSet {
	return &TemplateSet{
		Base:      ts.Base,
		Post:      ts.Post,
		Index:     ts.Index,
		About:     ts.About,
		Echo:      ts.Echo,
		EchoIndex: ts.EchoIndex,
	}
}

func (ts *TemplateSet) internal() *assets.TemplateSet {
	return &assets.TemplateSet{
		Base:      ts.Base,
		Post:      ts.Post,
		Index:     ts.Index,
		About:     ts.About,
		Echo:      ts.Echo,
		EchoIndex: ts.EchoIndex,
	}
}

// convertAssetError maps internal asset errors to public errors.
func convertAssetError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, assets.ErrTemplateNotFound):
		return wrapError(ErrTemplateNotFound, err)
	case errors.Is(err, assets.ErrIncompleteTemplateSet):
		return wrapError(ErrIncompleteTemplateSet, err)
	case errors.Is(err, assets.ErrInvalidBasePath),
		errors.Is(err, assets.ErrPathTraversal),
		errors.Is(err, assets.ErrAssetRead):
		return wrapError(ErrInvalidTemplatePath, err)
	case errors.Is(err, assets.ErrInvalidAssetName):
		return wrapError(ErrTemplateNotFound, err) // Invalid name means not found
	default:
		return err
	}
}

// wrapError creates a new error that wraps the original with a public sentinel.
// The resulting error keeps the original message and matches the public
// sentinel with errors.Is.
func wrapError(sentinel, original error) error {
	return &wrappedAssetError{sentinel: sentinel, original: original}
}

type wrappedAssetError struct {
	sentinel error
	original error
}

func (e *wrappedAssetError) Error() string {
	return e.original.Error()
}

// Unwrap returns the public sentinel for errors.Is matching.
// Internal errors are not exposed since they live in internal/ packages.
func (e *wrappedAssetError) Unwrap() error {
	return e.sentinel
}
