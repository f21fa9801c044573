package pipeline

import (
	"errors"
	"fmt"
	"iter"
	"regexp"
	"strings"
)

// ErrUnresolvedPlaceholder indicates a {{name}} token survived substitution.
var ErrUnresolvedPlaceholder = errors.New("unresolved template placeholder")

// Placeholder token syntax {{name}}.
var placeholderPattern = regexp.MustCompile(`\{\{([A-Za-z0-9_.-]+)\}\}`)

// Context is an ordered set of placeholder values.
// Iteration follows insertion order; overwriting a key keeps its position.
// The zero value is ready to use.
type Context struct {
	keys   []string
	values map[string]string
}

// NewContext builds a Context from alternating key, value arguments.
// A trailing key without a value is ignored.
func NewContext(pairs ...string) *Context {
	c := &Context{}
	for i := 0; i+1 < len(pairs); i += 2 {
		c.Set(pairs[i], pairs[i+1])
	}
	return c
}

// Set stores value under key.
func (c *Context) Set(key, value string) *Context {
	if c.values == nil {
		c.values = make(map[string]string)
	}
	if _, ok := c.values[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.values[key] = value
	return c
}

// Get returns the value for key and whether it is present.
func (c *Context) Get(key string) (string, bool) {
	if c == nil {
		return "", false
	}
	v, ok := c.values[key]
	return v, ok
}

// Len returns the number of keys.
func (c *Context) Len() int {
	if c == nil {
		return 0
	}
	return len(c.keys)
}

// All iterates over key/value pairs in insertion order.
func (c *Context) All() iter.Seq2[string, string] {
	return func(yield func(string, string) bool) {
		if c == nil {
			return
		}
		for _, k := range c.keys {
			if !yield(k, c.values[k]) {
				return
			}
		}
	}
}

// Merge copies every pair of other into c, in other's order.
func (c *Context) Merge(other *Context) *Context {
	for k, v := range other.All() {
		c.Set(k, v)
	}
	return c
}

// Placeholder returns the token for name, e.g. "{{title}}".
func Placeholder(name string) string {
	return "{{" + name + "}}"
}

// RenderTemplate replaces every {{key}} in tmpl with its value from ctx.
//
// Keys are applied one at a time in ctx order, each replacing all of its
// occurrences. Values are inserted literally and are not re-scanned for the
// same key, but a later key can match text produced by an earlier value.
// Tokens without a matching key are left untouched.
func RenderTemplate(tmpl string, ctx *Context) string {
	out := tmpl
	for k, v := range ctx.All() {
		out = strings.ReplaceAll(out, Placeholder(k), v)
	}
	return out
}

// RenderTemplateStrict is RenderTemplate but fails when tmpl references a
// key ctx does not define. Tokens arriving inside values are not checked.
// The error wraps ErrUnresolvedPlaceholder and names the missing keys; the
// permissive rendering is still returned alongside it.
func RenderTemplateStrict(tmpl string, ctx *Context) (string, error) {
	out := RenderTemplate(tmpl, ctx)
	if names := MissingKeys(tmpl, ctx); len(names) > 0 {
		return out, fmt.Errorf("%w: %s", ErrUnresolvedPlaceholder, strings.Join(names, ", "))
	}
	return out, nil
}

// MissingKeys lists placeholders used in tmpl that ctx does not define,
// in order of first appearance.
func MissingKeys(tmpl string, ctx *Context) []string {
	var missing []string
	for _, name := range Unresolved(tmpl) {
		if _, ok := ctx.Get(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// Unresolved lists distinct placeholder names found in s, in order of
// first appearance.
func Unresolved(s string) []string {
	matches := placeholderPattern.FindAllStringSubmatch(s, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := make(map[string]bool, len(matches))
	names := make([]string, 0, len(matches))
	for _, m := range matches {
		if seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		names = append(names, m[1])
	}
	return names
}
