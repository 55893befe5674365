package templater_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-pathtemplate/pkg/templater"
)

func TestExpand_PartialKeepsUnresolved(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/{alpha}-{beta}.foobar")

	got, err := tmpl.Expand(
		[]templater.ValueSet{templater.Set("alpha", "xxx1", "xxx2")},
		templater.Partial(),
	)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{
		"foo/bar/xxx1-{beta}.foobar",
		"foo/bar/xxx2-{beta}.foobar",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expansion mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_CartesianRowMajorOrder(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/{alpha}-{beta}.foobar")

	got, err := tmpl.Expand([]templater.ValueSet{
		templater.Set("alpha", "xxx1", "xxx2"),
		templater.Set("beta", "yyy1", "yyy2"),
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{
		"foo/bar/xxx1-yyy1.foobar",
		"foo/bar/xxx1-yyy2.foobar",
		"foo/bar/xxx2-yyy1.foobar",
		"foo/bar/xxx2-yyy2.foobar",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expansion mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_ZipAlignsByIndex(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/{alpha}-{beta}.foobar")

	got, err := tmpl.Expand(
		[]templater.ValueSet{
			templater.Set("alpha", "xxx1", "xxx2"),
			templater.Set("beta", "yyy1", "yyy2", "yyy3"),
		},
		templater.WithCombinator(templater.Zip),
	)
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{
		"foo/bar/xxx1-yyy1.foobar",
		"foo/bar/xxx2-yyy2.foobar",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expansion mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_FullRequiresEveryPlaceholder(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/{alpha}-{beta}.foobar")

	_, err := tmpl.Expand([]templater.ValueSet{templater.Set("alpha", "xxx1", "xxx2")})
	var missing *templater.MissingPlaceholderError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingPlaceholderError, got %v", err)
	}
	if missing.Key != "beta" {
		t.Fatalf("expected beta reported, got %q", missing.Key)
	}
}

func TestExpand_SingleValueActsAsScalar(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/{alpha}-{beta}.foobar")

	got, err := tmpl.Expand([]templater.ValueSet{
		templater.Set("alpha", "only"),
		templater.Set("beta", "yyy1", "yyy2"),
	})
	if err != nil {
		t.Fatalf("Expand: %v", err)
	}
	want := []string{
		"foo/bar/only-yyy1.foobar",
		"foo/bar/only-yyy2.foobar",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("expansion mismatch (-want +got):\n%s", diff)
	}
}

func TestExpand_DoesNotMutateReceiver(t *testing.T) {
	tmpl := mustCreate(t, "foo/bar/{alpha}.foobar")
	if _, err := tmpl.Expand([]templater.ValueSet{templater.Set("alpha", "x")}, templater.Partial()); err != nil {
		t.Fatalf("Expand: %v", err)
	}
	if got := mustRender(t, tmpl); got != "foo/bar/{alpha}.foobar" {
		t.Fatalf("receiver mutated: %q", got)
	}
	if len(tmpl.Values()) != 0 {
		t.Fatalf("receiver values mutated: %v", tmpl.Values())
	}
}
