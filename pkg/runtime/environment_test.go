package runtime

import (
	"errors"
	"strings"
	"testing"
)

func TestLookupUnboundPlace(t *testing.T) {
	env := NewEnvironment()
	if _, err := env.Lookup("a"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLookupUndefinedPlace(t *testing.T) {
	env := NewEnvironment()
	env.Insert("a", UndefinedValue{})

	_, err := env.Lookup("a")
	if !errors.Is(err, ErrUndefinedRead) {
		t.Fatalf("expected ErrUndefinedRead, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Fatalf("undefined read must stay distinct from not-found")
	}
}

func TestInsertOverwrites(t *testing.T) {
	env := NewEnvironment()
	env.Insert("a", LiteralValue{Text: "1"})
	env.Insert("a", LiteralValue{Text: "2"})

	v, err := env.Lookup("a")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if v.String() != "2" {
		t.Fatalf("expected overwritten value 2, got %s", v)
	}
	if env.Len() != 1 {
		t.Fatalf("expected a single binding, got %d", env.Len())
	}
}

func TestValueRendering(t *testing.T) {
	cases := []struct {
		value Value
		want  string
	}{
		{UnitValue{}, "()"},
		{LiteralValue{Text: "42"}, "42"},
		{ReferenceValue{Place: "a"}, "&a"},
		{UndefinedValue{}, "undefined"},
	}
	for _, c := range cases {
		if got := c.value.String(); got != c.want {
			t.Errorf("%s value rendered as %q, want %q", c.value.Kind(), got, c.want)
		}
	}
}

func TestRenderSortedByName(t *testing.T) {
	env := NewEnvironment()
	env.Insert("b", ReferenceValue{Place: "a"})
	env.Insert("a", LiteralValue{Text: "1"})

	rendered := env.Render()
	want := "a ↦ 1\nb ↦ &a\n"
	if rendered != want {
		t.Fatalf("unexpected rendering %q, want %q", rendered, want)
	}
	if strings.Index(rendered, "a ↦") > strings.Index(rendered, "b ↦") {
		t.Fatalf("bindings must be sorted by name")
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	env := NewEnvironment()
	env.Insert("a", LiteralValue{Text: "1"})

	snapshot := env.Snapshot()
	snapshot["a"] = LiteralValue{Text: "9"}

	v, err := env.Lookup("a")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if v.String() != "1" {
		t.Fatalf("snapshot mutation leaked into the store: %s", v)
	}
}
