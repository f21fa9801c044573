// Package pipeline implements the content-to-HTML conversion pipeline.
//
// This package handles the stages that turn a content file into page markup:
//   - Line ending normalization
//   - Front matter splitting (metadata block + body)
//   - Block rendering per content type (prose, poem, echo)
//   - Inline emphasis (**bold**) on already-escaped text
//   - Literal {{placeholder}} substitution into page templates
//
// Every function here is pure: no I/O, no shared state, no errors for
// malformed input. Reading sources, choosing templates and writing pages is
// handled by the root abyss package and the CLI. This separation keeps the
// pipeline focused on text transformation rules, while the composer handles
// defaults, ordering and page layout.
package pipeline
