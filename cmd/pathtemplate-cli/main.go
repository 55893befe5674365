package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AlecAivazis/survey/v2"

	"github.com/goliatone/go-pathtemplate/pkg/format"
	"github.com/goliatone/go-pathtemplate/pkg/profile"
	"github.com/goliatone/go-pathtemplate/pkg/templater"
)

type repeatedFlag []string

func (f *repeatedFlag) String() string {
	return strings.Join(*f, ",")
}

func (f *repeatedFlag) Set(value string) error {
	*f = append(*f, value)
	return nil
}

func main() {
	var sets repeatedFlag
	var expansions repeatedFlag
	var variants repeatedFlag

	profilePath := flag.String("profile", "", "YAML profile declaring top directories, alt suffixes, and presets")
	path := flag.String("path", "", "path to create the templater from, e.g. out/{sample}.txt")
	dir := flag.String("dir", "", "directory part (alternative to -path)")
	template := flag.String("template", "", "filename template part (alternative to -path)")
	suffix := flag.String("suffix", "", "suffix part (alternative to -path)")
	affix := flag.String("affix", "", "filename affix")
	flag.Var(&variants, "variant", "variant shortcut to apply, repeatable; expansion presets print one path per line")
	flag.Var(&sets, "set", "placeholder value as name=value, repeatable")
	flag.Var(&expansions, "expand", "expansion values as name=v1|v2|..., repeatable")
	partial := flag.Bool("partial", false, "allow unresolved placeholders in output")
	zip := flag.Bool("zip", false, "combine -expand sets index-aligned instead of by cartesian product")
	describe := flag.Bool("describe", false, "print the full templater state instead of the path")
	interactive := flag.Bool("interactive", false, "prompt for unresolved placeholder values")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	options := []templater.Option{
		templater.WithWarnHandler(func(msg string) {
			fmt.Fprintln(os.Stderr, "warning: "+msg)
		}),
	}
	if *profilePath != "" {
		doc, err := profile.Load(*profilePath)
		if err != nil {
			log.Fatalf("Failed to load profile: %v", err)
		}
		options = append(options, doc.Options()...)
	}

	t, err := templater.New(options...)
	if err != nil {
		log.Fatalf("Failed to construct templater: %v", err)
	}

	t, err = initialize(t, *path, *dir, *template, *suffix, *affix)
	if err != nil {
		log.Fatalf("Failed to initialize templater: %v", err)
	}

	values, err := parsePairs(sets)
	if err != nil {
		log.Fatalf("Invalid -set flag: %v", err)
	}
	if len(values) > 0 {
		t = t.AddValues(values)
	}

	lines, t, err := applyVariants(t, variants)
	if err != nil {
		log.Fatalf("Failed to apply variant: %v", err)
	}

	if lines == nil {
		lines, err = renderLines(t, expansions, *partial, *zip, *interactive, *describe)
		if err != nil {
			log.Fatalf("Failed to render: %v", err)
		}
	}

	out := strings.Join(lines, "\n") + "\n"
	if *output != "" {
		if err := os.WriteFile(*output, []byte(out), 0o644); err != nil {
			log.Fatalf("Failed to write output: %v", err)
		}
		fmt.Printf("Paths written to %s\n", *output)
		return
	}
	fmt.Print(out)
}

func initialize(t *templater.Templater, path, dir, template, suffix, affix string) (*templater.Templater, error) {
	if path != "" {
		var options []templater.CreateOption
		if affix != "" {
			options = append(options, templater.WithInitialAffix(affix))
		}
		return t.Create(path, options...)
	}
	if dir == "" && template == "" {
		return nil, fmt.Errorf("either -path or -dir and -template are required")
	}
	return t.CreateFromParts(templater.Parts{
		Directory: dir,
		Template:  template,
		Suffix:    suffix,
		Affix:     affix,
	})
}

// applyVariants runs each named variant in order. An expansion preset must
// be the final variant; it short-circuits into rendered lines.
func applyVariants(t *templater.Templater, names []string) ([]string, *templater.Templater, error) {
	for i, name := range names {
		if t.IsExpansion(name) {
			if i != len(names)-1 {
				return nil, nil, fmt.Errorf("expansion variant %q must be the last -variant", name)
			}
			lines, err := t.ExpandVariant(name)
			if err != nil {
				return nil, nil, err
			}
			return lines, t, nil
		}
		next, err := t.Apply(name)
		if err != nil {
			return nil, nil, err
		}
		t = next
	}
	return nil, t, nil
}

func renderLines(t *templater.Templater, expansions []string, partial, zip, interactive, describe bool) ([]string, error) {
	if describe {
		return []string{t.Describe()}, nil
	}

	if len(expansions) > 0 {
		sets, err := parseValueSets(expansions)
		if err != nil {
			return nil, err
		}
		var options []templater.ExpandOption
		if partial {
			options = append(options, templater.Partial())
		}
		if zip {
			options = append(options, templater.WithCombinator(templater.Zip))
		}
		return t.Expand(sets, options...)
	}

	rendered, err := t.Render()
	if err != nil {
		return nil, err
	}

	if interactive {
		rendered, err = promptRemaining(rendered)
		if err != nil {
			return nil, err
		}
	} else if !partial {
		if _, err := format.Strict(rendered, nil); err != nil {
			return nil, err
		}
	}
	return []string{rendered}, nil
}

// promptRemaining asks for a value for every placeholder still unresolved in
// the rendered path, then substitutes them strictly.
func promptRemaining(rendered string) (string, error) {
	names, err := format.Placeholders(rendered)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return rendered, nil
	}

	values := make(map[string]string, len(names))
	for _, name := range names {
		var answer string
		prompt := &survey.Input{
			Message: fmt.Sprintf("Value for {%s}:", name),
		}
		if err := survey.AskOne(prompt, &answer, survey.WithValidator(survey.Required)); err != nil {
			return "", err
		}
		values[name] = answer
	}
	return format.Strict(rendered, values)
}

func parsePairs(raw []string) (map[string]string, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	values := make(map[string]string, len(raw))
	for _, entry := range raw {
		name, value, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("want name=value, got %q", entry)
		}
		values[name] = value
	}
	return values, nil
}

func parseValueSets(raw []string) ([]templater.ValueSet, error) {
	sets := make([]templater.ValueSet, 0, len(raw))
	for _, entry := range raw {
		name, list, ok := strings.Cut(entry, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("want name=v1|v2, got %q", entry)
		}
		sets = append(sets, templater.Set(name, strings.Split(list, "|")...))
	}
	return sets, nil
}
