package templater_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pathtemplate/pkg/templater"
)

func mustNew(t *testing.T, options ...templater.Option) *templater.Templater {
	t.Helper()
	tmpl, err := templater.New(options...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tmpl
}

func mustCreate(t *testing.T, path string, options ...templater.Option) *templater.Templater {
	t.Helper()
	tmpl, err := mustNew(t, options...).Create(path)
	if err != nil {
		t.Fatalf("Create(%q): %v", path, err)
	}
	return tmpl
}

func mustRender(t *testing.T, tmpl *templater.Templater) string {
	t.Helper()
	out, err := tmpl.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	return out
}

func TestNew_DefaultTopDirectoryInitializesImmediately(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/myfile.foobar")
	if !tmpl.Initialized() {
		t.Fatal("expected initialized templater")
	}
	if got := mustRender(t, tmpl); got != "foo/bar/myfile.foobar" {
		t.Fatalf("round trip mismatch: %q", got)
	}
}

func TestNew_SingleTopDirectorySelected(t *testing.T) {
	tmpl := mustNew(t, templater.WithTopDirectories(map[string]string{"output": "out"}))
	created, err := tmpl.Create("bar/myfile.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got := mustRender(t, created); got != "out/bar/myfile.txt" {
		t.Fatalf("got %q", got)
	}
	if created.HasVariant("outputdir") {
		t.Fatal("single top directory must not register a selector variant")
	}
}

func TestNew_MultipleTopDirectoriesStayUnselected(t *testing.T) {
	tmpl := mustNew(t, templater.WithTopDirectories(map[string]string{
		"output": "out",
		"log":    "logs",
	}))

	created, err := tmpl.Create("bar/myfile.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := created.Render(); !errors.Is(err, templater.ErrNotInitialized) {
		t.Fatalf("expected ErrNotInitialized, got %v", err)
	}

	selected, err := tmpl.Apply("logdir")
	if err != nil {
		t.Fatalf("Apply(logdir): %v", err)
	}
	ready, err := selected.Create("bar/myfile.txt")
	if err != nil {
		t.Fatalf("Create after selector: %v", err)
	}
	if got := mustRender(t, ready); got != "logs/bar/myfile.txt" {
		t.Fatalf("got %q", got)
	}
}

func TestCreate_SplitsSuffixChain(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/archive.tar.gz")
	if got := mustRender(t, tmpl); got != "foo/bar/archive.tar.gz" {
		t.Fatalf("round trip mismatch: %q", got)
	}
	// The whole chain is the suffix: clearing it leaves the bare stem.
	if got := mustRender(t, tmpl.NoSuffix()); got != "foo/bar/archive" {
		t.Fatalf("expected bare stem, got %q", got)
	}
}

func TestCreate_BareFilename(t *testing.T) {
	tmpl := mustCreate(t, "myfile.txt")
	if got := mustRender(t, tmpl); got != "myfile.txt" {
		t.Fatalf("got %q", got)
	}
}

func TestCreate_FailsWhenInitialized(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/myfile.foobar")
	if _, err := tmpl.Create("other/file.txt"); !errors.Is(err, templater.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
	if _, err := tmpl.CreateFromParts(templater.Parts{Directory: "d", Template: "t"}); !errors.Is(err, templater.ErrAlreadyInitialized) {
		t.Fatalf("expected ErrAlreadyInitialized, got %v", err)
	}
}

func TestCreateFromParts_MergesValues(t *testing.T) {
	tmpl, err := mustNew(t).CreateFromParts(templater.Parts{
		Directory: "foo/bar",
		Template:  "myfile_{foo}",
		Suffix:    ".foobar",
		Affix:     "_extrabar",
		Values:    map[string]string{"foo": "oof"},
	})
	if err != nil {
		t.Fatalf("CreateFromParts: %v", err)
	}
	if got := mustRender(t, tmpl); got != "foo/bar/myfile_oof_extrabar.foobar" {
		t.Fatalf("got %q", got)
	}
}

func TestDerivations_NeverMutateReceiver(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/myfile.foobar")
	before := mustRender(t, tmpl)

	tmpl.WithDirectory("elsewhere")
	tmpl.WithTemplate("yourfile")
	tmpl.WithAffix("_x")
	tmpl.WithSuffix(".bar")
	tmpl.NoSuffix()
	tmpl.ApplyAffix()
	tmpl.ResetAltSuffix()
	tmpl.AddValues(map[string]string{"k": "v"})
	tmpl.ClearValues()
	tmpl.WithTopDirectory("other", "elsewhere")
	tmpl.WithAltSuffix("tar", ".tar", true)

	if after := mustRender(t, tmpl); after != before {
		t.Fatalf("receiver mutated: %q != %q", after, before)
	}
	if len(tmpl.Values()) != 0 {
		t.Fatalf("receiver values mutated: %v", tmpl.Values())
	}
}

func TestDerivations_Stack(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/myfile.foobar")
	got := mustRender(t, tmpl.WithDirectory("bar").WithSuffix(".bar").WithTemplate("yourfile"))
	if got != "bar/yourfile.bar" {
		t.Fatalf("got %q", got)
	}
}

func TestAffixLifecycle(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/myfile.foobar")

	affixed := tmpl.WithAffix("_trimmed")
	if got := mustRender(t, affixed); got != "foo/bar/myfile_trimmed.foobar" {
		t.Fatalf("got %q", got)
	}
	if got := mustRender(t, affixed.RemoveAffix()); got != "foo/bar/myfile.foobar" {
		t.Fatalf("got %q", got)
	}

	// ApplyAffix folds the affix into the template, so removal is a no-op
	// afterwards and a second affix stacks on top.
	folded := affixed.ApplyAffix()
	if got := mustRender(t, folded.RemoveAffix()); got != "foo/bar/myfile_trimmed.foobar" {
		t.Fatalf("fold not permanent: %q", got)
	}
	if got := mustRender(t, folded.WithAffix("_again")); got != "foo/bar/myfile_trimmed_again.foobar" {
		t.Fatalf("got %q", got)
	}
}

func TestClearValues_ResetsMappingOnly(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/{alpha}.txt").AddValues(map[string]string{"alpha": "xxx"})

	cleared := tmpl.ClearValues()
	if len(cleared.Values()) != 0 {
		t.Fatalf("expected empty mapping, got %v", cleared.Values())
	}
	if got := mustRender(t, cleared); got != "foo/bar/{alpha}.txt" {
		t.Fatalf("directory must be untouched, got %q", got)
	}
}

func TestAddValues_EmptyWarns(t *testing.T) {
	var warnings []string
	tmpl, err := mustNew(t, templater.WithWarnHandler(func(msg string) {
		warnings = append(warnings, msg)
	})).Create("foo/bar/myfile.txt")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	derived := tmpl.AddValues(nil)
	if len(warnings) != 1 || !strings.Contains(warnings[0], "no entries") {
		t.Fatalf("expected one empty-AddValues warning, got %v", warnings)
	}
	if got := mustRender(t, derived); got != "foo/bar/myfile.txt" {
		t.Fatalf("got %q", got)
	}
}

func TestWithTopDirectory_SameNameWarns(t *testing.T) {
	var warnings []string
	tmpl := mustCreate(t, "foo/bar/myfile.txt",
		templater.WithWarnHandler(func(msg string) {
			warnings = append(warnings, msg)
		}))

	derived := tmpl.WithTopDirectory("default", "elsewhere")
	if len(warnings) != 1 || !strings.Contains(warnings[0], "already set") {
		t.Fatalf("expected already-set warning, got %v", warnings)
	}
	if got := mustRender(t, derived); got != "elsewhere/foo/bar/myfile.txt" {
		t.Fatalf("warning must not stop the derivation, got %q", got)
	}
}

func TestValues_ReturnsCopy(t *testing.T) {
	tmpl := mustCreate(t, "foo/{a}.txt").AddValues(map[string]string{"a": "1"})
	values := tmpl.Values()
	values["a"] = "mutated"
	if diff := cmp.Diff(map[string]string{"a": "1"}, tmpl.Values()); diff != "" {
		t.Fatalf("internal mapping leaked (-want +got):\n%s", diff)
	}
}
