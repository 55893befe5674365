package format

import (
	"fmt"
	"sort"
	"strings"
)

// MissingKeyError reports the first placeholder a strict substitution could
// not resolve.
type MissingKeyError struct {
	Key string
}

func (e *MissingKeyError) Error() string {
	return fmt.Sprintf("format: missing value for placeholder %q", e.Key)
}

// Token is a single element of a parsed template: either literal text or a
// placeholder field carrying its name plus optional index and format spec.
type Token struct {
	// Text holds literal content when Name is empty. Doubled braces have
	// already been collapsed to single ones.
	Text string
	// Name is the placeholder name; empty for literal tokens.
	Name string
	// Index is the bracketed accessor of a `{name[index]}` token.
	Index string
	// Spec is the format spec of a `{name:spec}` token.
	Spec string

	raw string
}

// IsPlaceholder reports whether the token is a placeholder field.
func (t Token) IsPlaceholder() bool {
	return t.Name != ""
}

// Raw returns the original token text, braces included, for placeholder
// tokens. Literal tokens return their collapsed text.
func (t Token) Raw() string {
	if t.raw != "" {
		return t.raw
	}
	return t.Text
}

// Parse tokenizes template. `{{` and `}}` collapse to literal braces; an
// unmatched brace is an error.
func Parse(template string) ([]Token, error) {
	var tokens []Token
	var literal strings.Builder

	flush := func() {
		if literal.Len() > 0 {
			tokens = append(tokens, Token{Text: literal.String()})
			literal.Reset()
		}
	}

	for i := 0; i < len(template); i++ {
		c := template[i]
		switch c {
		case '{':
			if i+1 < len(template) && template[i+1] == '{' {
				literal.WriteByte('{')
				i++
				continue
			}
			end := strings.IndexByte(template[i+1:], '}')
			if end < 0 {
				return nil, fmt.Errorf("format: unmatched '{' at offset %d", i)
			}
			field := template[i+1 : i+1+end]
			token, err := parseField(field)
			if err != nil {
				return nil, err
			}
			token.raw = template[i : i+2+end]
			flush()
			tokens = append(tokens, token)
			i += end + 1
		case '}':
			if i+1 < len(template) && template[i+1] == '}' {
				literal.WriteByte('}')
				i++
				continue
			}
			return nil, fmt.Errorf("format: unmatched '}' at offset %d", i)
		default:
			literal.WriteByte(c)
		}
	}
	flush()
	return tokens, nil
}

func parseField(field string) (Token, error) {
	name := field
	var spec, index string

	if i := strings.IndexByte(name, ':'); i >= 0 {
		spec = name[i+1:]
		name = name[:i]
	}
	if i := strings.IndexByte(name, '['); i >= 0 {
		rest := name[i:]
		if !strings.HasSuffix(rest, "]") {
			return Token{}, fmt.Errorf("format: unterminated index in field %q", field)
		}
		index = rest[1 : len(rest)-1]
		name = name[:i]
	}
	if name == "" {
		return Token{}, fmt.Errorf("format: empty placeholder name in field %q", field)
	}
	return Token{Name: name, Index: index, Spec: spec}, nil
}

// Strict substitutes every placeholder in template from values. The first
// unresolved name yields a MissingKeyError.
func Strict(template string, values map[string]string) (string, error) {
	tokens, err := Parse(template)
	if err != nil {
		return "", err
	}
	var out strings.Builder
	for _, token := range tokens {
		if !token.IsPlaceholder() {
			out.WriteString(token.Text)
			continue
		}
		value, ok := values[token.Name]
		if !ok {
			return "", &MissingKeyError{Key: token.Name}
		}
		out.WriteString(value)
	}
	return out.String(), nil
}

// Partial substitutes the placeholders present in values and re-emits every
// other token verbatim, indexed and spec forms included.
func Partial(template string, values map[string]string) (string, error) {
	result, _, err := substitutePartial(template, values, false)
	return result, err
}

// PartialTracking behaves like Partial and additionally returns the set of
// placeholder names the template referenced, whether or not a value was
// available for them.
func PartialTracking(template string, values map[string]string) (string, map[string]struct{}, error) {
	return substitutePartial(template, values, true)
}

func substitutePartial(template string, values map[string]string, track bool) (string, map[string]struct{}, error) {
	tokens, err := Parse(template)
	if err != nil {
		return "", nil, err
	}
	var used map[string]struct{}
	if track {
		used = make(map[string]struct{})
	}
	var out strings.Builder
	for _, token := range tokens {
		if !token.IsPlaceholder() {
			out.WriteString(token.Text)
			continue
		}
		if track {
			used[token.Name] = struct{}{}
		}
		if value, ok := values[token.Name]; ok {
			out.WriteString(value)
		} else {
			out.WriteString(token.Raw())
		}
	}
	return out.String(), used, nil
}

// Placeholders returns the distinct placeholder names referenced by template,
// sorted for deterministic output.
func Placeholders(template string) ([]string, error) {
	tokens, err := Parse(template)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var names []string
	for _, token := range tokens {
		if !token.IsPlaceholder() {
			continue
		}
		if _, ok := seen[token.Name]; ok {
			continue
		}
		seen[token.Name] = struct{}{}
		names = append(names, token.Name)
	}
	sort.Strings(names)
	return names, nil
}
