// Package templater provides an immutable path-templating value. A Templater
// holds a top-level directory, a relative directory, a filename template with
// `{name}` placeholders, an optional affix and suffix, and a mapping of
// placeholder values. Every derivation returns a new copy; rendering turns
// the current state into one or more path strings via full, partial, or
// expanded substitution.
//
// Construction-time options can register named variant shortcuts: top
// directory selectors, alternate suffix selectors, and presets bundling
// placeholder values, operation invocations, or partial expansions. Variants
// dispatch through an explicit registry rather than reflection.
package templater
