package snaptree

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSetPathCreatesMissingMappings(t *testing.T) {
	s := mustNew(t, map[string]any{"name": "Ann"})
	n, err := s.SetPath("address/city", "Oslo")
	if err != nil {
		t.Fatal(err)
	}
	city, err := As[string](n.Child("address").Child("city"))
	if err != nil {
		t.Fatal(err)
	}
	if city != "Oslo" {
		t.Errorf("city = %q, want Oslo", city)
	}
	if got, err := As[string](n.Child("name")); err != nil || got != "Ann" {
		t.Errorf("name = %q, %v", got, err)
	}
}

func TestSetPathEmptyPathIsSet(t *testing.T) {
	s := mustNew(t, map[string]any{"a": 1})
	n, err := s.SetPath("", map[string]any{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if n != s {
		t.Error("empty-path no-op changed identity")
	}
}

func TestSetPathReplacesMappingKey(t *testing.T) {
	s := mustNew(t, map[string]any{"a": 1, "b": map[string]any{"v": 2}})
	oldB := s.Child("b")
	n, err := s.SetPath("a", 10)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Child("a").Value(); got != int64(10) {
		t.Errorf("a = %v", got)
	}
	if n.Child("b") != oldB {
		t.Error("untouched sibling lost identity through SetPath")
	}
}

func TestSetPathSequenceIndex(t *testing.T) {
	s := mustNew(t, map[string]any{"items": []any{1, 2, 3}})
	n, err := s.SetPath("items/1", 20)
	if err != nil {
		t.Fatal(err)
	}
	got, err := AsList[int](n.Child("items"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int{1, 20, 3}, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}

	for _, bad := range []string{"items/3", "items/-1", "items/x"} {
		if _, err := s.SetPath(bad, 0); err == nil {
			t.Errorf("SetPath(%q) did not fail", bad)
		}
	}
}

func TestSetPathIntoScalarFails(t *testing.T) {
	s := mustNew(t, map[string]any{"a": "scalar"})
	_, err := s.SetPath("a/b", 1)
	var perr *InvalidPathError
	if !errors.As(err, &perr) {
		t.Fatalf("expected *InvalidPathError, got %v", err)
	}
	if perr.Segment != "b" {
		t.Errorf("failing segment = %q, want b", perr.Segment)
	}
}

func TestSetPathNoopKeepsIdentity(t *testing.T) {
	s := mustNew(t, map[string]any{"a": map[string]any{"b": 1}})
	n, err := s.SetPath("a/b", 1)
	if err != nil {
		t.Fatal(err)
	}
	if n != s {
		t.Error("SetPath with unchanged value changed identity")
	}
}

func TestSetPathAcceptsSnapshotValue(t *testing.T) {
	s := mustNew(t, map[string]any{"a": 1})
	v := mustNew(t, map[string]any{"deep": true})
	n, err := s.SetPath("b", v)
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Child("b/deep").Value(); got != true {
		t.Errorf("b/deep = %v", got)
	}
}
