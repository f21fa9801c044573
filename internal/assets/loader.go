package assets

import (
	"fmt"
	"strings"
)

// AssetLoader defines the contract for loading page templates.
type AssetLoader interface {
	// LoadTemplate loads an HTML template by name (without .html extension).
	// Returns ErrTemplateNotFound if the template doesn't exist.
	// Returns ErrInvalidAssetName if the name contains invalid characters.
	LoadTemplate(name string) (string, error)
}

// ValidateAssetName checks that a template name is safe for use as a filename.
// Names may not be empty or contain path separators or dots, so the
// extension is always the loader's and the file stays in its directory.
func ValidateAssetName(name string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrInvalidAssetName)
	}
	if strings.ContainsAny(name, "/\\.") || strings.TrimSpace(name) != name {
		return fmt.Errorf("%w: %q", ErrInvalidAssetName, name)
	}
	return nil
}
