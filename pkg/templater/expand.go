package templater

import (
	"github.com/goliatone/go-pathtemplate/pkg/format"
)

// ValueSet binds a placeholder name to its candidate values. Sets are
// ordered, so expansion honors the order the caller supplies them in.
type ValueSet struct {
	Name   string
	Values []string
}

// Set builds a ValueSet; a single value yields a single-element set.
func Set(name string, values ...string) ValueSet {
	if values == nil {
		values = []string{}
	}
	return ValueSet{Name: name, Values: values}
}

// Pair is one placeholder binding inside a combination.
type Pair struct {
	Name  string
	Value string
}

// Combinator consumes one sequence of bindings per value set and yields the
// combinations to render, in its own order.
type Combinator func(sets [][]Pair) [][]Pair

// CartesianProduct yields every combination of every set's values, rightmost
// set varying fastest. It is the default combinator.
func CartesianProduct(sets [][]Pair) [][]Pair {
	combinations := [][]Pair{{}}
	for _, set := range sets {
		next := make([][]Pair, 0, len(combinations)*len(set))
		for _, combination := range combinations {
			for _, pair := range set {
				row := make([]Pair, len(combination), len(combination)+1)
				copy(row, combination)
				next = append(next, append(row, pair))
			}
		}
		combinations = next
	}
	return combinations
}

// Zip yields index-aligned combinations, stopping at the shortest set.
func Zip(sets [][]Pair) [][]Pair {
	if len(sets) == 0 {
		return nil
	}
	length := len(sets[0])
	for _, set := range sets[1:] {
		if len(set) < length {
			length = len(set)
		}
	}
	combinations := make([][]Pair, 0, length)
	for i := 0; i < length; i++ {
		row := make([]Pair, 0, len(sets))
		for _, set := range sets {
			row = append(row, set[i])
		}
		combinations = append(combinations, row)
	}
	return combinations
}

type expandConfig struct {
	combinator Combinator
	partial    bool
}

// ExpandOption adjusts how Expand combines and formats value sets.
type ExpandOption func(*expandConfig)

// WithCombinator replaces the default cartesian-product combinator.
func WithCombinator(combinator Combinator) ExpandOption {
	return func(c *expandConfig) {
		if combinator != nil {
			c.combinator = combinator
		}
	}
}

// Partial switches expansion to partial formatting, leaving unresolved
// placeholders intact instead of failing on them.
func Partial() ExpandOption {
	return func(c *expandConfig) {
		c.partial = true
	}
}

// Expand renders one path per combination of the supplied value sets. By
// default every combination must resolve every placeholder; the first
// unresolved name fails the whole expansion with a MissingPlaceholderError.
func (t *Templater) Expand(sets []ValueSet, options ...ExpandOption) ([]string, error) {
	cfg := expandConfig{combinator: CartesianProduct}
	for _, opt := range options {
		if opt != nil {
			opt(&cfg)
		}
	}

	pairSets := make([][]Pair, 0, len(sets))
	for _, set := range sets {
		pairs := make([]Pair, 0, len(set.Values))
		for _, value := range set.Values {
			pairs = append(pairs, Pair{Name: set.Name, Value: value})
		}
		pairSets = append(pairSets, pairs)
	}

	var rendered string
	if !cfg.partial {
		var err error
		rendered, err = t.Render()
		if err != nil {
			return nil, err
		}
	}

	combinations := cfg.combinator(pairSets)
	out := make([]string, 0, len(combinations))
	for _, combination := range combinations {
		values := make(map[string]string, len(combination))
		for _, pair := range combination {
			values[pair.Name] = pair.Value
		}
		if cfg.partial {
			path, err := t.AddValues(values).Render()
			if err != nil {
				return nil, err
			}
			out = append(out, path)
			continue
		}
		path, err := format.Strict(rendered, values)
		if err != nil {
			return nil, err
		}
		out = append(out, path)
	}
	return out, nil
}
