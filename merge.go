package snaptree

import (
	"maps"
	"slices"
	"strconv"

	"github.com/snaptree/go-snaptree/debug"
	"github.com/snaptree/go-snaptree/immut"
	"github.com/snaptree/go-snaptree/jsonptr"
)

// Set returns a snapshot reflecting newContent, reusing as much of the
// receiver's cache tree as still applies.
//
// Structurally unchanged content never changes identity: if newContent is
// deeply equal to the receiver's content, the receiver itself is returned
// (enriched with the other snapshot's caches when newContent is a snapshot
// from the same registry). Changed content returns a new identity carrying
// forward every cached child whose value survived the update; cached
// conversions of changed content are dropped rather than risk staleness.
//
// newContent may be raw JSON-like data or another Snapshot. A snapshot
// bound to a different registry is treated as raw content.
//
// Set must not run concurrently with other operations on either tree.
func (s *Snapshot) Set(newContent any) (*Snapshot, error) {
	if o, ok := newContent.(*Snapshot); ok {
		if o.reg == s.reg {
			return s.setSnapshot(o), nil
		}
		newContent = o.value
	}
	v, err := immut.Make(newContent)
	if err != nil {
		return nil, err
	}
	return s.setValue(v), nil
}

// setSnapshot merges a same-registry snapshot into the receiver.
func (s *Snapshot) setSnapshot(o *Snapshot) *Snapshot {
	if s == o {
		return s
	}
	if immut.Equal(s.value, o.value) {
		// same content: keep this identity, absorb the foreign caches
		if debug.Merge() {
			debug.Logf("merge: equal content, absorbing %d children\n", len(o.children))
		}
		for k, oc := range o.children {
			if sc, ok := s.children[k]; ok {
				s.children[k] = sc.setSnapshot(oc)
				continue
			}
			if s.children == nil {
				s.children = map[string]*Snapshot{}
			}
			s.children[k] = oc
		}
		for key, cv := range o.conv {
			if _, ok := s.conv[key]; !ok {
				if s.conv == nil {
					s.conv = map[convKey]any{}
				}
				s.conv[key] = cv
			}
		}
		return s
	}
	// content changed: adopt the new identity, recycle this snapshot's
	// cached children into it where their positions still exist
	if debug.Merge() {
		debug.Logf("merge: content changed, recycling %d children\n", len(s.children))
	}
	for k, sc := range s.children {
		if oc, ok := o.children[k]; ok {
			o.children[k] = sc.setSnapshot(oc)
			continue
		}
		sub, ok := subValue(o.value, k)
		if !ok {
			continue
		}
		if o.children == nil {
			o.children = map[string]*Snapshot{}
		}
		o.children[k] = sc.setValue(sub)
	}
	return o
}

// setValue merges already-canonical content into the receiver.
func (s *Snapshot) setValue(v any) *Snapshot {
	if immut.Equal(s.value, v) {
		return s
	}
	n := newSnapshot(v, s.reg)
	for k, sc := range s.children {
		sub, ok := subValue(v, k)
		if !ok {
			continue
		}
		if n.children == nil {
			n.children = map[string]*Snapshot{}
		}
		n.children[k] = sc.setValue(sub)
	}
	return n
}

// SetPath returns a snapshot whose content at path is replaced by value,
// rebuilding each container level along the path and routing the result
// through Set so unchanged siblings keep their identity and caches. An
// empty path is equivalent to Set.
//
// Missing positions under mapping or null content are created; addressing
// through scalar content or a bad sequence index fails with
// *InvalidPathError.
func (s *Snapshot) SetPath(path string, value any) (*Snapshot, error) {
	segs := jsonptr.Parse(path)
	if len(segs) == 0 {
		return s.Set(value)
	}
	if o, ok := value.(*Snapshot); ok {
		value = o.value
	}
	leaf, err := immut.Make(value)
	if err != nil {
		return nil, err
	}
	rebuilt, err := splice(s.value, segs, leaf, path)
	if err != nil {
		return nil, err
	}
	return s.setValue(rebuilt), nil
}

// splice rebuilds content with the addressed position replaced by leaf.
// Containers along the path are shallow-copied; untouched subtrees are
// shared by reference, which is safe because all content is immutable.
func splice(v any, segs []string, leaf any, path string) (any, error) {
	if len(segs) == 0 {
		return leaf, nil
	}
	seg := segs[0]
	switch vv := v.(type) {
	case map[string]any:
		sub, err := splice(vv[seg], segs[1:], leaf, path)
		if err != nil {
			return nil, err
		}
		m := make(map[string]any, len(vv)+1)
		maps.Copy(m, vv)
		m[seg] = sub
		return m, nil
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(vv) {
			return nil, &InvalidPathError{Path: path, Segment: seg, Value: vv}
		}
		sub, err := splice(vv[i], segs[1:], leaf, path)
		if err != nil {
			return nil, err
		}
		out := slices.Clone(vv)
		out[i] = sub
		return out, nil
	case nil:
		// absent positions grow mappings on demand
		sub, err := splice(nil, segs[1:], leaf, path)
		if err != nil {
			return nil, err
		}
		return map[string]any{seg: sub}, nil
	}
	return nil, &InvalidPathError{Path: path, Segment: seg, Value: v}
}
