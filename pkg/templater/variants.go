package templater

import (
	"fmt"
	"sort"
	"strings"
)

// CallSpec captures the arguments a preset field supplies when invoking a
// named operation: an ordered positional list plus named arguments.
type CallSpec struct {
	Args   []string
	KwArgs map[string]string
}

func (s CallSpec) String() string {
	var kw []string
	for k, v := range s.KwArgs {
		kw = append(kw, k+"="+v)
	}
	sort.Strings(kw)
	return fmt.Sprintf("([%s], {%s})", strings.Join(s.Args, ", "), strings.Join(kw, ", "))
}

// Preset is a named bundle of placeholder values, operation invocations, or
// expansion value sets, registered as a single variant shortcut.
type Preset struct {
	Name   string
	Fields []PresetField
}

// PresetField is one entry of a preset. Exactly one of Value, Values, or
// Call is meaningful: Call marks a call-spec field, a non-nil Values slice
// marks an expansion field, and Value is the plain scalar case.
type PresetField struct {
	Name   string
	Value  string
	Values []string
	Call   *CallSpec
}

// Field builds a scalar preset field.
func Field(name, value string) PresetField {
	return PresetField{Name: name, Value: value}
}

// ExpandField builds an expansion preset field over the given values.
func ExpandField(name string, values ...string) PresetField {
	if values == nil {
		values = []string{}
	}
	return PresetField{Name: name, Values: values}
}

// CallField builds a call-spec preset field invoking the operation named
// name with positional args.
func CallField(name string, args ...string) PresetField {
	return PresetField{Name: name, Call: &CallSpec{Args: args}}
}

type variantKind int

const (
	kindTopDirectory variantKind = iota
	kindAltSuffix
	kindValues
	kindCalls
	kindExpansion
)

type callField struct {
	op   string
	spec CallSpec
}

// variantOp is the tagged operation a variant name dispatches to. All
// parameters are captured at construction; dispatch is an explicit lookup
// rather than reflective attribute access.
type variantOp struct {
	kind        variantKind
	topDirName  string
	topDirValue string
	alt         altSuffix
	values      map[string]string
	calls       []callField
	sets        []ValueSet
}

func classifyPreset(preset Preset) (variantOp, error) {
	var (
		hasCall   bool
		hasExpand bool
	)
	for _, field := range preset.Fields {
		if field.Call != nil {
			hasCall = true
		} else if field.Values != nil {
			hasExpand = true
		}
	}
	if hasCall && hasExpand {
		return variantOp{}, fmt.Errorf("templater: preset %q: cannot combine callable invocation with expansion-style values", preset.Name)
	}

	if hasExpand {
		op := variantOp{kind: kindExpansion}
		for _, field := range preset.Fields {
			if field.Values != nil {
				op.sets = append(op.sets, ValueSet{Name: field.Name, Values: field.Values})
			} else {
				op.sets = append(op.sets, ValueSet{Name: field.Name, Values: []string{field.Value}})
			}
		}
		return op, nil
	}

	op := variantOp{kind: kindValues, values: make(map[string]string)}
	if hasCall {
		op.kind = kindCalls
	}
	for _, field := range preset.Fields {
		if field.Call != nil {
			op.calls = append(op.calls, callField{op: field.Name, spec: *field.Call})
		} else {
			op.values[field.Name] = field.Value
		}
	}
	return op, nil
}

// Variants returns the sorted names of the registered variant shortcuts.
func (t *Templater) Variants() []string {
	names := make([]string, 0, len(t.variants))
	for name := range t.variants {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasVariant reports whether a variant shortcut is registered.
func (t *Templater) HasVariant(name string) bool {
	_, ok := t.variants[name]
	return ok
}

// IsExpansion reports whether the named variant is an expansion preset,
// i.e. one that must run through ExpandVariant rather than Apply.
func (t *Templater) IsExpansion(name string) bool {
	op, ok := t.variants[name]
	return ok && op.kind == kindExpansion
}

// Apply runs a templater-yielding variant shortcut and returns the derived
// templater. Expansion presets are rejected; use ExpandVariant for those.
func (t *Templater) Apply(name string) (*Templater, error) {
	op, ok := t.variants[name]
	if !ok {
		return nil, &UnknownVariantError{Name: name}
	}
	switch op.kind {
	case kindTopDirectory:
		return t.WithTopDirectory(op.topDirName, op.topDirValue), nil
	case kindAltSuffix:
		return t.WithAltSuffix(op.alt.name, op.alt.value, op.alt.append), nil
	case kindValues:
		return t.AddValues(op.values), nil
	case kindCalls:
		return t.applyCalls(op)
	case kindExpansion:
		return nil, fmt.Errorf("templater: variant %q expands to paths; use ExpandVariant", name)
	default:
		return nil, fmt.Errorf("templater: variant %q has unknown kind", name)
	}
}

// ExpandVariant runs an expansion preset and returns the partially formatted
// paths it produces.
func (t *Templater) ExpandVariant(name string) ([]string, error) {
	op, ok := t.variants[name]
	if !ok {
		return nil, &UnknownVariantError{Name: name}
	}
	if op.kind != kindExpansion {
		return nil, fmt.Errorf("templater: variant %q is not an expansion preset; use Apply", name)
	}
	return t.Expand(op.sets, Partial())
}

func (t *Templater) applyCalls(op variantOp) (*Templater, error) {
	current := t
	for _, call := range op.calls {
		next, err := current.invokeOperation(call.op, call.spec)
		if err != nil {
			return nil, err
		}
		current = next
	}
	if len(op.values) == 0 {
		if current == t {
			return t.clone(), nil
		}
		return current, nil
	}
	return current.AddValues(op.values), nil
}

// invokeOperation resolves a call-spec operation name against the closed
// operation table: the built-in derivations first, then any registered
// non-expansion variant. Arity mismatches and unknown names surface as
// UnknownOperationError.
func (t *Templater) invokeOperation(name string, spec CallSpec) (*Templater, error) {
	fail := func(reason string) (*Templater, error) {
		return nil, &UnknownOperationError{Op: name, Spec: spec, Reason: reason}
	}
	wantArgs := func(n int) error {
		if len(spec.Args) != n {
			return fmt.Errorf("expects %d positional argument(s), got %d", n, len(spec.Args))
		}
		if len(spec.KwArgs) != 0 {
			return fmt.Errorf("accepts no named arguments")
		}
		return nil
	}

	switch name {
	case "directory":
		if err := wantArgs(1); err != nil {
			return fail(err.Error())
		}
		return t.WithDirectory(spec.Args[0]), nil
	case "template":
		if err := wantArgs(1); err != nil {
			return fail(err.Error())
		}
		return t.WithTemplate(spec.Args[0]), nil
	case "affix":
		if err := wantArgs(1); err != nil {
			return fail(err.Error())
		}
		return t.WithAffix(spec.Args[0]), nil
	case "applyAffix":
		if err := wantArgs(0); err != nil {
			return fail(err.Error())
		}
		return t.ApplyAffix(), nil
	case "removeAffix":
		if err := wantArgs(0); err != nil {
			return fail(err.Error())
		}
		return t.RemoveAffix(), nil
	case "suffix":
		if err := wantArgs(1); err != nil {
			return fail(err.Error())
		}
		return t.WithSuffix(spec.Args[0]), nil
	case "noSuffix":
		if err := wantArgs(0); err != nil {
			return fail(err.Error())
		}
		return t.NoSuffix(), nil
	case "resetAltSuffix":
		if err := wantArgs(0); err != nil {
			return fail(err.Error())
		}
		return t.ResetAltSuffix(), nil
	case "addValues":
		if len(spec.Args) != 0 {
			return fail("accepts named arguments only")
		}
		return t.AddValues(spec.KwArgs), nil
	case "clearValues":
		if err := wantArgs(0); err != nil {
			return fail(err.Error())
		}
		return t.ClearValues(), nil
	}

	op, ok := t.variants[name]
	if !ok {
		return fail("")
	}
	if op.kind == kindExpansion {
		return fail("expansion presets yield rendered paths, not a templater")
	}
	if len(spec.Args) != 0 || len(spec.KwArgs) != 0 {
		return fail("variant shortcuts accept no arguments")
	}
	return t.Apply(name)
}
