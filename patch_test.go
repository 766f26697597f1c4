package snaptree

import (
	"testing"
)

func TestMergePatch(t *testing.T) {
	s := mustNew(t, map[string]any{
		"name":    "Ann",
		"age":     30,
		"address": map[string]any{"city": "Oslo"},
	})
	addr := s.Child("address")

	n, err := s.MergePatch([]byte(`{"age": 31}`))
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Child("age").Value(); got != int64(31) {
		t.Errorf("age = %v, want 31", got)
	}
	if n.Child("address") != addr {
		t.Error("merge patch recomputed an untouched subtree")
	}

	// removal via null
	n2, err := n.MergePatch([]byte(`{"address": null}`))
	if err != nil {
		t.Fatal(err)
	}
	if n2.Child("address").Exists() {
		t.Error("null merge patch did not remove the key")
	}
}

func TestPatchOps(t *testing.T) {
	s := mustNew(t, map[string]any{"a": 1, "list": []any{"x"}})
	n, err := s.Patch([]byte(`[
		{"op": "replace", "path": "/a", "value": 2},
		{"op": "add", "path": "/list/-", "value": "y"}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	if got := n.Child("a").Value(); got != int64(2) {
		t.Errorf("a = %v, want 2", got)
	}
	list, err := AsList[string](n.Child("list"))
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 || list[1] != "y" {
		t.Errorf("list = %v", list)
	}

	if _, err := s.Patch([]byte(`[{"op": "replace", "path": "/missing/x", "value": 1}]`)); err == nil {
		t.Error("patch against missing path did not fail")
	}
}

func TestPatchNoopKeepsIdentity(t *testing.T) {
	s := mustNew(t, map[string]any{"a": 1})
	n, err := s.MergePatch([]byte(`{}`))
	if err != nil {
		t.Fatal(err)
	}
	if n != s {
		t.Error("empty merge patch changed identity")
	}
}

func TestDiffMergePatchRoundTrip(t *testing.T) {
	a := mustNew(t, map[string]any{"x": 1, "y": map[string]any{"k": "v"}})
	b := mustNew(t, map[string]any{"x": 2, "y": map[string]any{"k": "v"}, "z": true})
	patch, err := a.DiffMergePatch(b)
	if err != nil {
		t.Fatal(err)
	}
	got, err := a.MergePatch(patch)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Equal(b) {
		t.Errorf("diff/patch round trip mismatch: %v vs %v", got.Value(), b.Value())
	}
}

func TestQuery(t *testing.T) {
	s := mustNew(t, map[string]any{
		"age":     30,
		"name":    "Ann",
		"address": map[string]any{"city": "Oslo"},
	})
	tests := []struct {
		code string
		want any
	}{
		{`age >= 18`, true},
		{`name + "!"`, "Ann!"},
		{`has("address/city")`, true},
		{`has("address/zip")`, false},
		{`child("address/city")`, "Oslo"},
	}
	for _, tt := range tests {
		got, err := s.Query(tt.code)
		if err != nil {
			t.Fatalf("Query(%q): %v", tt.code, err)
		}
		if got != tt.want {
			t.Errorf("Query(%q) = %v, want %v", tt.code, got, tt.want)
		}
	}

	if _, err := s.Query(`age >=`); err == nil {
		t.Error("malformed expression did not fail to compile")
	}
}
