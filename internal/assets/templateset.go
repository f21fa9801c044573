package assets

import (
	"fmt"
	"strings"
)

// Template names, one per page kind.
const (
	TemplateBase      = "base"
	TemplatePost      = "post"
	TemplateIndex     = "index"
	TemplateAbout     = "about"
	TemplateEcho      = "echo"
	TemplateEchoIndex = "echo-index"
)

// TemplateNames lists every template a complete set needs, in load order.
var TemplateNames = []string{
	TemplateBase,
	TemplatePost,
	TemplateIndex,
	TemplateAbout,
	TemplateEcho,
	TemplateEchoIndex,
}

// requiredSlots maps each template to the placeholder that receives its
// generated fragment. A template without it would silently drop content.
var requiredSlots = map[string]string{
	TemplateBase:      "{{body}}",
	TemplatePost:      "{{content}}",
	TemplateIndex:     "{{postList}}",
	TemplateAbout:     "{{content}}",
	TemplateEcho:      "{{content}}",
	TemplateEchoIndex: "{{echoList}}",
}

// TemplateSet holds the HTML templates for every page kind.
type TemplateSet struct {
	Base      string
	Post      string
	Index     string
	About     string
	Echo      string
	EchoIndex string
}

// LoadTemplateSet loads every template in TemplateNames from loader.
// The first failing template aborts the load; its name is in the error.
func LoadTemplateSet(loader AssetLoader) (*TemplateSet, error) {
	ts := &TemplateSet{}
	for _, name := range TemplateNames {
		content, err := loader.LoadTemplate(name)
		if err != nil {
			return nil, fmt.Errorf("loading %s template: %w", name, err)
		}
		*ts.field(name) = content
	}
	return ts, nil
}

// Get returns the template content for name, or "" for an unknown name.
func (ts *TemplateSet) Get(name string) string {
	if p := ts.field(name); p != nil {
		return *p
	}
	return ""
}

// Validate checks that each template carries its fragment placeholder.
// All problems are reported in one error wrapping ErrIncompleteTemplateSet.
func (ts *TemplateSet) Validate() error {
	var missing []string
	for _, name := range TemplateNames {
		slot := requiredSlots[name]
		if !strings.Contains(ts.Get(name), slot) {
			missing = append(missing, fmt.Sprintf("%s needs %s", name, slot))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrIncompleteTemplateSet, strings.Join(missing, "; "))
	}
	return nil
}

// field maps a template name to its struct field.
func (ts *TemplateSet) field(name string) *string {
	switch name {
	case TemplateBase:
		return &ts.Base
	case TemplatePost:
		return &ts.Post
	case TemplateIndex:
		return &ts.Index
	case TemplateAbout:
		return &ts.About
	case TemplateEcho:
		return &ts.Echo
	case TemplateEchoIndex:
		return &ts.EchoIndex
	default:
		return nil
	}
}
