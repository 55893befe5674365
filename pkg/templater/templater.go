package templater

import (
	"fmt"
	"path/filepath"
	"strings"
)

// WarnFunc receives the non-fatal warnings the templater emits, such as
// selecting a top directory that is already selected. The default handler
// discards them.
type WarnFunc func(msg string)

type altSuffix struct {
	name   string
	value  string
	append bool
}

// Templater is an immutable path template. Derivation methods never mutate
// the receiver; each returns an independent copy, so a Templater can be
// shared freely and used as the root of many derived paths.
type Templater struct {
	topDirName   string
	topDirValue  string
	topDirSet    bool
	directory    string
	directorySet bool
	template     string
	templateSet  bool
	affix        string
	suffix       string
	alt          *altSuffix
	values       map[string]string
	variants     map[string]variantOp
	warn         WarnFunc
}

// New constructs a templater from the given options. With no top directory
// option, or with a single entry, the sole top directory is selected
// immediately; with several entries the templater stays uninitialized until a
// selector variant runs. Preset classification errors surface here.
func New(options ...Option) (*Templater, error) {
	cfg := newConfig()
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	t := &Templater{
		values:   make(map[string]string),
		variants: make(map[string]variantOp),
		warn:     cfg.warn,
	}
	if t.warn == nil {
		t.warn = func(string) {}
	}

	topDirs := cfg.topDirectories
	if len(topDirs) == 0 {
		topDirs = map[string]string{"default": ""}
	}
	if len(topDirs) == 1 {
		for name, value := range topDirs {
			t.topDirName = name
			t.topDirValue = value
			t.topDirSet = true
		}
	} else {
		for name, value := range topDirs {
			t.variants[topDirVariantName(name)] = variantOp{
				kind:        kindTopDirectory,
				topDirName:  name,
				topDirValue: value,
			}
		}
	}

	for name, raw := range cfg.altSuffixes {
		value := raw
		appendSuffix := false
		if strings.HasPrefix(raw, "+") {
			appendSuffix = true
			value = raw[1:]
		}
		t.variants[altSuffixVariantName(name)] = variantOp{
			kind: kindAltSuffix,
			alt:  altSuffix{name: name, value: value, append: appendSuffix},
		}
	}

	for _, preset := range cfg.presets {
		op, err := classifyPreset(preset)
		if err != nil {
			return nil, err
		}
		t.variants[preset.Name] = op
	}

	return t, nil
}

func topDirVariantName(name string) string {
	return name + "dir"
}

func altSuffixVariantName(name string) string {
	return name + "file"
}

// clone copies every field. The placeholder map is copied so parent and
// child never share mutable state; the variant registry is immutable after
// construction and is shared.
func (t *Templater) clone() *Templater {
	nt := *t
	nt.values = make(map[string]string, len(t.values))
	for k, v := range t.values {
		nt.values[k] = v
	}
	if t.alt != nil {
		alt := *t.alt
		nt.alt = &alt
	}
	return &nt
}

func (t *Templater) initialized() bool {
	return t.topDirSet && t.directorySet && t.templateSet
}

// Initialized reports whether the templater holds a top directory, directory,
// and filename template and can therefore render.
func (t *Templater) Initialized() bool {
	return t.initialized()
}

// Parts carries the fields CreateFromParts needs to initialize a templater.
type Parts struct {
	Directory string
	Template  string
	Suffix    string
	Affix     string
	Values    map[string]string
}

// CreateOption adjusts the affix or seed values Create passes along to
// CreateFromParts.
type CreateOption func(*Parts)

// WithInitialAffix sets the filename affix of the created templater.
func WithInitialAffix(affix string) CreateOption {
	return func(p *Parts) {
		p.Affix = affix
	}
}

// WithInitialValues seeds the placeholder value mapping of the created
// templater.
func WithInitialValues(values map[string]string) CreateOption {
	return func(p *Parts) {
		p.Values = values
	}
}

// Create initializes a copy of the templater by splitting path into a
// directory, a filename template, and the concatenation of all trailing
// dotted extensions. It fails on an already-initialized receiver.
func (t *Templater) Create(path string, options ...CreateOption) (*Templater, error) {
	if t.initialized() {
		return nil, ErrAlreadyInitialized
	}
	dir, name := filepath.Split(path)
	dir = strings.TrimRight(dir, string(filepath.Separator))
	if dir == "" {
		dir = "."
	}
	suffix := suffixChain(name)
	template := name
	if suffix != "" {
		template = strings.Replace(name, suffix, "", 1)
	}

	parts := Parts{
		Directory: dir,
		Template:  template,
		Suffix:    suffix,
	}
	for _, opt := range options {
		if opt != nil {
			opt(&parts)
		}
	}
	return t.CreateFromParts(parts)
}

// CreateFromParts initializes a copy of the templater with the supplied
// fields, merging parts.Values into the copy's placeholder mapping. It fails
// on an already-initialized receiver.
func (t *Templater) CreateFromParts(parts Parts) (*Templater, error) {
	if t.initialized() {
		return nil, ErrAlreadyInitialized
	}
	nt := t.clone()
	nt.directory = parts.Directory
	nt.directorySet = true
	nt.template = parts.Template
	nt.templateSet = true
	nt.suffix = parts.Suffix
	nt.affix = parts.Affix
	for k, v := range parts.Values {
		nt.values[k] = v
	}
	return nt, nil
}

// suffixChain returns the concatenation of all dotted extensions of name.
// Leading dots belong to the stem, so ".bashrc" has no suffix.
func suffixChain(name string) string {
	stripped := strings.TrimLeft(name, ".")
	lead := len(name) - len(stripped)
	idx := strings.IndexByte(stripped, '.')
	if idx < 0 {
		return ""
	}
	return name[lead+idx:]
}

// WithDirectory returns a copy with the relative directory replaced.
func (t *Templater) WithDirectory(directory string) *Templater {
	nt := t.clone()
	nt.directory = directory
	nt.directorySet = true
	return nt
}

// WithTemplate returns a copy with the filename template replaced.
func (t *Templater) WithTemplate(template string) *Templater {
	nt := t.clone()
	nt.template = template
	nt.templateSet = true
	return nt
}

// WithAffix returns a copy with the filename affix replaced.
func (t *Templater) WithAffix(affix string) *Templater {
	nt := t.clone()
	nt.affix = affix
	return nt
}

// RemoveAffix returns a copy with an empty filename affix.
func (t *Templater) RemoveAffix() *Templater {
	return t.WithAffix("")
}

// ApplyAffix returns a copy with the current affix folded permanently into
// the filename template. The folded affix cannot be removed afterwards,
// though a new affix may be added.
func (t *Templater) ApplyAffix() *Templater {
	nt := t.clone()
	nt.template = nt.template + nt.affix
	nt.affix = ""
	return nt
}

// WithSuffix returns a copy with the base suffix replaced.
func (t *Templater) WithSuffix(suffix string) *Templater {
	nt := t.clone()
	nt.suffix = suffix
	return nt
}

// NoSuffix returns a copy with no base suffix. An empty suffix means "no
// suffix" throughout, so later concatenation stays well defined.
func (t *Templater) NoSuffix() *Templater {
	return t.WithSuffix("")
}

// ResetAltSuffix returns a copy with the alternate suffix record cleared.
func (t *Templater) ResetAltSuffix() *Templater {
	nt := t.clone()
	nt.alt = nil
	return nt
}

// AddValues returns a copy with values merged into the placeholder mapping.
// Calling it with no entries warns and returns an unchanged copy.
func (t *Templater) AddValues(values map[string]string) *Templater {
	nt := t.clone()
	if len(values) == 0 {
		t.warn("templater: AddValues called with no entries")
		return nt
	}
	for k, v := range values {
		nt.values[k] = v
	}
	return nt
}

// ClearValues returns a copy with an empty placeholder mapping. Only the
// mapping is reset; directory and every other field are preserved.
func (t *Templater) ClearValues() *Templater {
	nt := t.clone()
	nt.values = make(map[string]string)
	return nt
}

// WithTopDirectory returns a copy with the top directory selected. Selecting
// the name that is already current warns before proceeding.
func (t *Templater) WithTopDirectory(name, value string) *Templater {
	if t.topDirSet && t.topDirName == name {
		t.warn(fmt.Sprintf("templater: top directory already set to %q", name))
	}
	nt := t.clone()
	nt.topDirName = name
	nt.topDirValue = value
	nt.topDirSet = true
	return nt
}

// WithAltSuffix returns a copy with the alternate suffix record set. When a
// top directory selector of the same name is registered and the current top
// directory differs, that selector runs first, so a same-named alternate
// suffix also switches the top directory.
func (t *Templater) WithAltSuffix(name, value string, appendSuffix bool) *Templater {
	if t.alt != nil && t.alt.name == name {
		t.warn(fmt.Sprintf("templater: alternate suffix already set to %q", name))
	}
	var nt *Templater
	if !t.topDirSet || t.topDirName != name {
		if op, ok := t.variants[topDirVariantName(name)]; ok && op.kind == kindTopDirectory {
			nt = t.WithTopDirectory(op.topDirName, op.topDirValue)
		}
	}
	if nt == nil {
		nt = t.clone()
	}
	nt.alt = &altSuffix{name: name, value: value, append: appendSuffix}
	return nt
}

// Values returns a copy of the current placeholder mapping.
func (t *Templater) Values() map[string]string {
	out := make(map[string]string, len(t.values))
	for k, v := range t.values {
		out[k] = v
	}
	return out
}
