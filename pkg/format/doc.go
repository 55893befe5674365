// Package format implements the placeholder substitution engine used by the
// templater: a small scanner over `{name}`, `{name[index]}` and `{name:spec}`
// tokens that can substitute strictly (every token must resolve), partially
// (unresolved tokens are re-emitted verbatim), or partially while tracking
// which names a template actually references.
package format
