package templater

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-pathtemplate/pkg/format"
)

// effectiveSuffix resolves the suffix to render with: the alternate suffix
// record, when present, either replaces the base suffix or is concatenated
// after it; otherwise the base suffix applies.
func (t *Templater) effectiveSuffix() string {
	if t.alt != nil {
		if t.alt.append {
			return t.suffix + t.alt.value
		}
		return t.alt.value
	}
	return t.suffix
}

// filename assembles the template, affix, and effective suffix. The suffix
// composes additively with any extensions baked into the template itself.
func (t *Templater) filename() string {
	name := t.template + t.affix
	if suffix := t.effectiveSuffix(); suffix != "" {
		name += suffix
	}
	return name
}

// Render builds the path string and partially substitutes the placeholder
// mapping: names without a value stay intact in `{name}` form, indexed and
// format-spec tokens included. It fails on an uninitialized templater.
func (t *Templater) Render() (string, error) {
	if !t.initialized() {
		return "", ErrNotInitialized
	}
	path := filepath.Join(t.topDirValue, t.directory, t.filename())
	return format.Partial(path, t.values)
}

// Format renders and then substitutes every remaining placeholder from
// values. A MissingPlaceholderError names the first unresolved placeholder.
func (t *Templater) Format(values map[string]string) (string, error) {
	rendered, err := t.Render()
	if err != nil {
		return "", err
	}
	return format.Strict(rendered, values)
}

// PFormat merges values into a copy's placeholder mapping and renders
// partially, leaving any still-unresolved placeholders intact.
func (t *Templater) PFormat(values map[string]string) (string, error) {
	return t.AddValues(values).Render()
}

// ApplyFormat merges values into a copy's mapping, rewrites the filename
// template and affix by partially substituting them, and drops exactly the
// names that pass referenced from the copy's mapping. Values not referenced
// by template or affix stay available for later rendering.
func (t *Templater) ApplyFormat(values map[string]string) (*Templater, error) {
	nt := t.AddValues(values)

	template, usedTemplate, err := format.PartialTracking(nt.template, nt.values)
	if err != nil {
		return nil, err
	}
	affix, usedAffix, err := format.PartialTracking(nt.affix, nt.values)
	if err != nil {
		return nil, err
	}

	nt.template = template
	nt.affix = affix
	for name := range usedTemplate {
		delete(nt.values, name)
	}
	for name := range usedAffix {
		delete(nt.values, name)
	}
	return nt, nil
}

// Dir renders only the directory component: top directory value joined with
// the relative directory. It fails on an uninitialized templater.
func (t *Templater) Dir() (string, error) {
	if !t.initialized() {
		return "", ErrNotInitialized
	}
	return filepath.Join(t.topDirValue, t.directory), nil
}

// String implements fmt.Stringer as the rendered path. An unrenderable
// templater yields a bracketed diagnostic instead.
func (t *Templater) String() string {
	rendered, err := t.Render()
	if err != nil {
		return "<" + err.Error() + ">"
	}
	return rendered
}

// Describe emits the full state of the templater, one labeled line per
// field, ending with the rendered path.
func (t *Templater) Describe() string {
	topDirName := t.topDirName
	if !t.topDirSet {
		topDirName = "none"
	}
	altName, altValue, altAppend := "none", "", false
	if t.alt != nil {
		altName, altValue, altAppend = t.alt.name, t.alt.value, t.alt.append
	}

	var b strings.Builder
	b.WriteString("Templater:\n")
	fmt.Fprintf(&b, " top directory: %s %q\n", topDirName, t.topDirValue)
	fmt.Fprintf(&b, " directory: %q\n", t.directory)
	fmt.Fprintf(&b, " filename template: %q\n", t.template)
	fmt.Fprintf(&b, " filename affix: %q\n", t.affix)
	fmt.Fprintf(&b, " suffix: %q\n", t.suffix)
	fmt.Fprintf(&b, " alternate suffix: %s %q (append? %t)\n", altName, altValue, altAppend)
	fmt.Fprintf(&b, " placeholder values: %v\n", t.values)
	fmt.Fprintf(&b, " formatted: %s", t.String())
	return b.String()
}
