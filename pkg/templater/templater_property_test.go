//go:build property

package templater_test

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/goliatone/go-pathtemplate/pkg/templater"
)

func TestTemplaterProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("create/render round-trips placeholder-free paths", prop.ForAll(
		func(dir, stem, ext string) bool {
			path := dir + "/" + stem + "." + ext
			tmpl, err := templater.New()
			if err != nil {
				return false
			}
			created, err := tmpl.Create(path)
			if err != nil {
				return false
			}
			rendered, err := created.Render()
			return err == nil && rendered == path
		},
		gen.Identifier(),
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.Property("derivations never change the receiver's rendering", prop.ForAll(
		func(dir, affix, suffix, key, value string) bool {
			tmpl, err := templater.New()
			if err != nil {
				return false
			}
			created, err := tmpl.Create("base/file.txt")
			if err != nil {
				return false
			}
			before, err := created.Render()
			if err != nil {
				return false
			}

			created.WithDirectory(dir)
			created.WithAffix("_" + affix)
			created.WithSuffix("." + suffix)
			created.AddValues(map[string]string{key: value})
			created.ClearValues()
			created.ApplyAffix()
			created.WithAltSuffix(key, "."+suffix, true)

			after, err := created.Render()
			return err == nil && after == before
		},
		gen.Identifier(),
		gen.Identifier(),
		gen.Identifier(),
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.Property("derived values mapping is never shared with the parent", prop.ForAll(
		func(key, value string) bool {
			tmpl, err := templater.New()
			if err != nil {
				return false
			}
			created, err := tmpl.Create("base/{" + key + "}.txt")
			if err != nil {
				return false
			}
			derived := created.AddValues(map[string]string{key: value})
			return len(created.Values()) == 0 && derived.Values()[key] == value
		},
		gen.Identifier(),
		gen.Identifier(),
	))

	properties.TestingRun(t)
}
