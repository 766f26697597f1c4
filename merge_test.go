package snaptree

import (
	"reflect"
	"testing"

	"github.com/snaptree/go-snaptree/decode"
)

func TestSetIdentityStability(t *testing.T) {
	s := mustNew(t, map[string]any{"a": 1, "b": []any{"x"}})
	tests := []struct {
		name    string
		content any
	}{
		{"same shape", map[string]any{"a": 1, "b": []any{"x"}}},
		{"numeric variation", map[string]any{"a": 1.0, "b": []any{"x"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, err := s.Set(tt.content)
			if err != nil {
				t.Fatal(err)
			}
			if n != s {
				t.Error("structurally equal content changed identity")
			}
		})
	}
}

func TestSetRecyclesUntouchedChildren(t *testing.T) {
	s := mustNew(t, map[string]any{
		"x": map[string]any{"v": 1},
		"y": map[string]any{"v": 2},
	})
	oldX := s.Child("x")
	oldY := s.Child("y")
	oldYV := s.Child("y/v")

	n, err := s.Set(map[string]any{
		"x": map[string]any{"v": 10},
		"y": map[string]any{"v": 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if n == s {
		t.Fatal("changed content kept identity")
	}
	if got := n.Child("x/v").Value(); got != int64(10) {
		t.Errorf("new x/v = %v, want 10", got)
	}
	if n.Child("x") == oldX {
		t.Error("changed child kept identity")
	}
	if n.Child("y") != oldY {
		t.Error("untouched sibling lost identity")
	}
	if n.Child("y/v") != oldYV {
		t.Error("untouched grandchild lost identity")
	}
}

func TestSetDropsRemovedKeys(t *testing.T) {
	s := mustNew(t, map[string]any{"a": 1, "b": 2})
	s.Child("b")
	n, err := s.Set(map[string]any{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := n.children["b"]; ok {
		t.Error("removed key carried its cache entry forward")
	}
	// the empty node is still reachable lazily
	if n.Child("b").Exists() {
		t.Error("removed key still has content")
	}
}

func TestSetDropsConversionCacheOnChange(t *testing.T) {
	s := mustNew(t, map[string]any{"a": 1})
	if _, err := AsMap[any](s); err != nil {
		t.Fatal(err)
	}
	if len(s.conv) == 0 {
		t.Fatal("conversion cache not populated")
	}
	n, err := s.Set(map[string]any{"a": 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(n.conv) != 0 {
		t.Error("value-changing set carried the conversion cache forward")
	}
}

func TestSetSnapshotAbsorbsForeignCaches(t *testing.T) {
	reg := decode.NewRegistry()
	content := map[string]any{"a": map[string]any{"b": 1}, "c": 2}
	s, err := New(content, reg)
	if err != nil {
		t.Fatal(err)
	}
	o, err := New(content, reg)
	if err != nil {
		t.Fatal(err)
	}
	oa := o.Child("a")
	if _, err := AsMap[any](o); err != nil {
		t.Fatal(err)
	}

	n, err := s.Set(o)
	if err != nil {
		t.Fatal(err)
	}
	if n != s {
		t.Fatal("equal-content snapshot merge changed identity")
	}
	if s.Child("a") != oa {
		t.Error("foreign child cache not adopted")
	}
	if len(s.conv) == 0 {
		t.Error("foreign conversion cache not adopted")
	}

	// an existing local child keeps its identity over the foreign one
	s2, err := New(content, reg)
	if err != nil {
		t.Fatal(err)
	}
	local := s2.Child("a")
	o2, err := New(content, reg)
	if err != nil {
		t.Fatal(err)
	}
	o2.Child("a").Child("b")
	if _, err := s2.Set(o2); err != nil {
		t.Fatal(err)
	}
	if s2.Child("a") != local {
		t.Error("local child replaced by foreign identity")
	}
	if s2.Child("a").Child("b") != o2.Child("a").Child("b") {
		t.Error("foreign grandchild cache not absorbed")
	}
}

func TestSetSnapshotNewIdentityOnChange(t *testing.T) {
	reg := decode.NewRegistry()
	s, err := New(map[string]any{"keep": map[string]any{"v": 1}, "mod": 1}, reg)
	if err != nil {
		t.Fatal(err)
	}
	keep := s.Child("keep")
	o, err := New(map[string]any{"keep": map[string]any{"v": 1}, "mod": 2}, reg)
	if err != nil {
		t.Fatal(err)
	}
	n, err := s.Set(o)
	if err != nil {
		t.Fatal(err)
	}
	if n != o {
		t.Error("changed content did not adopt the new snapshot's identity")
	}
	if n.Child("keep") != keep {
		t.Error("unchanged subtree lost its old identity")
	}
	if got := n.Child("mod").Value(); got != int64(2) {
		t.Errorf("mod = %v, want 2", got)
	}
}

func TestSetForeignRegistryTreatedAsRaw(t *testing.T) {
	s, err := New(map[string]any{"a": 1}, decode.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	o, err := New(map[string]any{"a": 2}, decode.NewRegistry())
	if err != nil {
		t.Fatal(err)
	}
	o.Child("a")
	n, err := s.Set(o)
	if err != nil {
		t.Fatal(err)
	}
	if n == o {
		t.Error("foreign-registry snapshot adopted as-is")
	}
	if n.Registry() != s.Registry() {
		t.Error("result not bound to the receiver's registry")
	}
	if got := n.Child("a").Value(); got != int64(2) {
		t.Errorf("a = %v, want 2", got)
	}
}

func TestSetChildCacheConsistency(t *testing.T) {
	s := mustNew(t, map[string]any{"a": map[string]any{"b": 1}})
	s.Child("a/b")
	n, err := s.Set(map[string]any{"a": map[string]any{"b": 2}})
	if err != nil {
		t.Fatal(err)
	}
	// every cached child must agree with the new content
	var check func(*Snapshot)
	check = func(x *Snapshot) {
		for k, c := range x.children {
			sub, _ := subValue(x.value, k)
			got, err := New(sub, x.reg)
			if err != nil {
				t.Fatal(err)
			}
			if !got.Equal(c) {
				t.Errorf("cached child %q out of sync: cache %v, content %v", k, c.Value(), sub)
			}
			check(c)
		}
	}
	check(n)
	if v := n.Child("a/b").Value(); !reflect.DeepEqual(v, int64(2)) {
		t.Errorf("a/b = %v, want 2", v)
	}
}
