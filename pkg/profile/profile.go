// Package profile loads templater construction profiles from YAML documents.
// A profile declares the top directories, alternate suffixes, and presets a
// templater is built with, mirroring the construction options of
// pkg/templater. Preset fields keep their document order, so call-spec
// fields execute in the order they are written.
package profile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-pathtemplate/pkg/templater"
)

// Document is a parsed profile.
type Document struct {
	TopDirectories map[string]string
	AltSuffixes    map[string]string
	Presets        []templater.Preset
}

type rawDocument struct {
	TopDirectories map[string]string `yaml:"top_directories"`
	AltSuffixes    map[string]string `yaml:"alt_suffixes"`
	Presets        yaml.Node         `yaml:"presets"`
}

// Parse decodes a profile document.
func Parse(data []byte) (*Document, error) {
	var raw rawDocument
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("profile: parse document: %w", err)
	}

	doc := &Document{
		TopDirectories: raw.TopDirectories,
		AltSuffixes:    raw.AltSuffixes,
	}

	presets, err := parsePresets(&raw.Presets)
	if err != nil {
		return nil, err
	}
	doc.Presets = presets
	return doc, nil
}

// Load reads and parses a profile file.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("profile: read %s: %w", path, err)
	}
	return Parse(data)
}

// Options converts the document into templater construction options.
func (d *Document) Options() []templater.Option {
	var options []templater.Option
	if len(d.TopDirectories) > 0 {
		options = append(options, templater.WithTopDirectories(d.TopDirectories))
	}
	if len(d.AltSuffixes) > 0 {
		options = append(options, templater.WithAltSuffixes(d.AltSuffixes))
	}
	if len(d.Presets) > 0 {
		options = append(options, templater.WithPresets(d.Presets...))
	}
	return options
}

// New builds a templater from the document plus any extra options, which are
// applied after the document's own.
func (d *Document) New(extra ...templater.Option) (*templater.Templater, error) {
	return templater.New(append(d.Options(), extra...)...)
}

func parsePresets(node *yaml.Node) ([]templater.Preset, error) {
	if node == nil || node.Kind == 0 || node.Tag == "!!null" {
		return nil, nil
	}
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("profile: presets must be a mapping, got %s", nodeKind(node))
	}

	var presets []templater.Preset
	for i := 0; i < len(node.Content)-1; i += 2 {
		nameNode := node.Content[i]
		bodyNode := node.Content[i+1]
		preset, err := parsePreset(nameNode.Value, bodyNode)
		if err != nil {
			return nil, err
		}
		presets = append(presets, preset)
	}
	return presets, nil
}

func parsePreset(name string, node *yaml.Node) (templater.Preset, error) {
	if node.Kind != yaml.MappingNode {
		return templater.Preset{}, fmt.Errorf("profile: preset %q must be a mapping, got %s", name, nodeKind(node))
	}

	preset := templater.Preset{Name: name}
	for i := 0; i < len(node.Content)-1; i += 2 {
		fieldName := node.Content[i].Value
		field, err := parsePresetField(name, fieldName, node.Content[i+1])
		if err != nil {
			return templater.Preset{}, err
		}
		preset.Fields = append(preset.Fields, field)
	}
	return preset, nil
}

func parsePresetField(preset, name string, node *yaml.Node) (templater.PresetField, error) {
	switch node.Kind {
	case yaml.ScalarNode:
		return templater.PresetField{Name: name, Value: node.Value}, nil
	case yaml.SequenceNode:
		values := make([]string, 0, len(node.Content))
		for _, item := range node.Content {
			if item.Kind != yaml.ScalarNode {
				return templater.PresetField{}, fmt.Errorf("profile: preset %q field %q: expansion values must be scalars", preset, name)
			}
			values = append(values, item.Value)
		}
		return templater.PresetField{Name: name, Values: values}, nil
	case yaml.MappingNode:
		spec, err := parseCallSpec(preset, name, node)
		if err != nil {
			return templater.PresetField{}, err
		}
		return templater.PresetField{Name: name, Call: spec}, nil
	default:
		return templater.PresetField{}, fmt.Errorf("profile: preset %q field %q has unsupported value kind %s", preset, name, nodeKind(node))
	}
}

// parseCallSpec accepts mappings holding only `args` (sequence of scalars)
// and `kwargs` (mapping of scalars). Both keys are optional; anything else
// is a malformed call-spec.
func parseCallSpec(preset, name string, node *yaml.Node) (*templater.CallSpec, error) {
	spec := &templater.CallSpec{}
	for i := 0; i < len(node.Content)-1; i += 2 {
		key := node.Content[i].Value
		value := node.Content[i+1]
		switch key {
		case "args":
			if value.Kind != yaml.SequenceNode && value.Tag != "!!null" {
				return nil, fmt.Errorf("profile: preset %q field %q: args must be a sequence", preset, name)
			}
			for _, item := range value.Content {
				if item.Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("profile: preset %q field %q: args must be scalars", preset, name)
				}
				spec.Args = append(spec.Args, item.Value)
			}
		case "kwargs":
			if value.Kind != yaml.MappingNode && value.Tag != "!!null" {
				return nil, fmt.Errorf("profile: preset %q field %q: kwargs must be a mapping", preset, name)
			}
			for j := 0; j < len(value.Content)-1; j += 2 {
				if value.Content[j+1].Kind != yaml.ScalarNode {
					return nil, fmt.Errorf("profile: preset %q field %q: kwargs values must be scalars", preset, name)
				}
				if spec.KwArgs == nil {
					spec.KwArgs = make(map[string]string)
				}
				spec.KwArgs[value.Content[j].Value] = value.Content[j+1].Value
			}
		default:
			return nil, fmt.Errorf("profile: preset %q field %q: call-spec key %q not recognised (want args, kwargs)", preset, name, key)
		}
	}
	return spec, nil
}

func nodeKind(node *yaml.Node) string {
	switch node.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	default:
		return "unknown"
	}
}
