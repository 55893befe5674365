package templater

type config struct {
	topDirectories map[string]string
	altSuffixes    map[string]string
	presets        []Preset
	warn           WarnFunc
}

func newConfig() *config {
	return &config{}
}

// Option customises templater construction.
type Option func(*config)

// WithTopDirectories registers the selectable top-level directory prefixes as
// name → value pairs. A single entry is selected immediately; several entries
// each register a `{name}dir` selector variant and leave the templater
// uninitialized until one runs.
func WithTopDirectories(topDirectories map[string]string) Option {
	return func(c *config) {
		if len(topDirectories) == 0 {
			return
		}
		if c.topDirectories == nil {
			c.topDirectories = make(map[string]string, len(topDirectories))
		}
		for name, value := range topDirectories {
			c.topDirectories[name] = value
		}
	}
}

// WithAltSuffixes registers alternate suffixes as name → value pairs, each
// exposed as a `{name}file` variant. A leading `+` on a value means the
// suffix is appended after the base suffix instead of replacing it.
func WithAltSuffixes(altSuffixes map[string]string) Option {
	return func(c *config) {
		if len(altSuffixes) == 0 {
			return
		}
		if c.altSuffixes == nil {
			c.altSuffixes = make(map[string]string, len(altSuffixes))
		}
		for name, value := range altSuffixes {
			c.altSuffixes[name] = value
		}
	}
}

// WithPresets registers preset variants. Field order is preserved: call-spec
// fields execute in the order given.
func WithPresets(presets ...Preset) Option {
	return func(c *config) {
		c.presets = append(c.presets, presets...)
	}
}

// WithWarnHandler installs the handler that receives non-fatal warnings.
// Derived templaters inherit it.
func WithWarnHandler(warn WarnFunc) Option {
	return func(c *config) {
		c.warn = warn
	}
}
