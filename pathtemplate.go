// Package pathtemplate derives path strings from an immutable template: a
// top-level directory, a relative directory, and a filename template with
// `{name}` placeholders that can be substituted, partially substituted, or
// expanded over sets of values. The root package re-exports the pkg/templater
// API for convenience.
package pathtemplate

import (
	"github.com/goliatone/go-pathtemplate/pkg/templater"
)

// Templater is the immutable path template value.
type Templater = templater.Templater

// Option customises templater construction.
type Option = templater.Option

// Preset bundles placeholder values, operation invocations, or expansion
// value sets under a single variant name.
type Preset = templater.Preset

// PresetField is one entry of a Preset.
type PresetField = templater.PresetField

// CallSpec captures the arguments of a call-spec preset field.
type CallSpec = templater.CallSpec

// Parts carries the fields CreateFromParts initializes a templater with.
type Parts = templater.Parts

// Pair is one placeholder binding inside an expansion combination.
type Pair = templater.Pair

// CreateOption adjusts what Create passes along to CreateFromParts.
type CreateOption = templater.CreateOption

// ValueSet binds a placeholder name to candidate expansion values.
type ValueSet = templater.ValueSet

// ExpandOption adjusts how Expand combines and formats value sets.
type ExpandOption = templater.ExpandOption

// Combinator yields the combinations an expansion renders.
type Combinator = templater.Combinator

// WarnFunc receives non-fatal warnings.
type WarnFunc = templater.WarnFunc

// MissingPlaceholderError names the first unresolved placeholder of a full
// substitution.
type MissingPlaceholderError = templater.MissingPlaceholderError

// New constructs an empty templater from the given options.
func New(options ...Option) (*Templater, error) {
	return templater.New(options...)
}

// Create constructs a templater and initializes it from path in one call,
// splitting it into directory, filename template, and suffix chain.
func Create(path string, options ...Option) (*Templater, error) {
	t, err := templater.New(options...)
	if err != nil {
		return nil, err
	}
	return t.Create(path)
}

// CreateFromParts constructs a templater and initializes it from explicit
// parts in one call.
func CreateFromParts(parts Parts, options ...Option) (*Templater, error) {
	t, err := templater.New(options...)
	if err != nil {
		return nil, err
	}
	return t.CreateFromParts(parts)
}

// WithTopDirectories registers selectable top-level directory prefixes.
func WithTopDirectories(topDirectories map[string]string) Option {
	return templater.WithTopDirectories(topDirectories)
}

// WithAltSuffixes registers alternate suffixes; a leading `+` appends.
func WithAltSuffixes(altSuffixes map[string]string) Option {
	return templater.WithAltSuffixes(altSuffixes)
}

// WithPresets registers preset variants.
func WithPresets(presets ...Preset) Option {
	return templater.WithPresets(presets...)
}

// WithWarnHandler installs the non-fatal warning handler.
func WithWarnHandler(warn WarnFunc) Option {
	return templater.WithWarnHandler(warn)
}

// Set builds a ValueSet for Expand.
func Set(name string, values ...string) ValueSet {
	return templater.Set(name, values...)
}

// Field builds a scalar preset field.
func Field(name, value string) PresetField {
	return templater.Field(name, value)
}

// ExpandField builds an expansion preset field over the given values.
func ExpandField(name string, values ...string) PresetField {
	return templater.ExpandField(name, values...)
}

// CallField builds a call-spec preset field invoking the named operation.
func CallField(name string, args ...string) PresetField {
	return templater.CallField(name, args...)
}

// WithCombinator replaces the default cartesian-product combinator.
func WithCombinator(combinator Combinator) ExpandOption {
	return templater.WithCombinator(combinator)
}

// Partial switches an expansion to partial formatting.
func Partial() ExpandOption {
	return templater.Partial()
}

// CartesianProduct is the default combinator: every combination of every
// set's values, rightmost varying fastest.
var CartesianProduct = templater.CartesianProduct

// Zip combines value sets index-aligned, stopping at the shortest.
var Zip = templater.Zip
