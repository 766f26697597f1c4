package snaptree

import (
	"encoding/binary"
	"hash/maphash"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"sync"

	"github.com/snaptree/go-snaptree/debug"
	"github.com/snaptree/go-snaptree/decode"
	"github.com/snaptree/go-snaptree/immut"
	"github.com/snaptree/go-snaptree/jsonptr"
)

// Snapshot is an immutable handle to one node of a JSON-like content tree.
// Its content never changes after construction; the child and conversion
// caches populate lazily and are append-only outside the merge engine.
type Snapshot struct {
	reg   *decode.Registry
	value any

	mu       sync.Mutex
	children map[string]*Snapshot
	conv     map[convKey]any
}

type convKey struct {
	typ    reflect.Type
	format string
}

// New constructs a snapshot from raw JSON-like content. The content is
// canonicalized and deep-copied, so later mutation of raw cannot reach the
// snapshot. A nil registry binds the snapshot to decode.Default().
func New(raw any, reg *decode.Registry) (*Snapshot, error) {
	if reg == nil {
		reg = decode.Default()
	}
	v, err := immut.Make(raw)
	if err != nil {
		return nil, err
	}
	return newSnapshot(v, reg), nil
}

// Empty returns the canonical empty snapshot for a registry: nil content,
// empty caches. Every cache-miss navigation resolves to such a snapshot.
func Empty(reg *decode.Registry) *Snapshot {
	if reg == nil {
		reg = decode.Default()
	}
	return newSnapshot(nil, reg)
}

// newSnapshot wraps already-canonical content.
func newSnapshot(v any, reg *decode.Registry) *Snapshot {
	return &Snapshot{reg: reg, value: v}
}

// Value returns the deep-immutable content. Callers must not modify
// anything reachable from it.
func (s *Snapshot) Value() any {
	return s.value
}

// Registry returns the decoder registry the snapshot is bound to.
func (s *Snapshot) Registry() *decode.Registry {
	return s.reg
}

// Exists reports whether the snapshot holds non-null content.
func (s *Snapshot) Exists() bool {
	return s.value != nil
}

// Len returns the element count for sequence or mapping content, zero
// otherwise.
func (s *Snapshot) Len() int {
	switch v := s.value.(type) {
	case []any:
		return len(v)
	case map[string]any:
		return len(v)
	}
	return 0
}

// Keys returns the sorted keys of mapping content, nil otherwise.
func (s *Snapshot) Keys() []string {
	m, ok := s.value.(map[string]any)
	if !ok {
		return nil
	}
	return slices.Sorted(maps.Keys(m))
}

// Child resolves a pointer path to a descendant snapshot. Resolution never
// fails: missing keys, bad indices and descents into scalars all yield
// empty snapshots. Each segment lookup is memoized, so
// Child("a/b") == Child("a").Child("b") by identity.
func (s *Snapshot) Child(path string) *Snapshot {
	res := s
	for _, seg := range jsonptr.Parse(path) {
		res = res.directChild(seg)
	}
	return res
}

func (s *Snapshot) directChild(seg string) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if c, ok := s.children[seg]; ok {
		return c
	}
	sub, _ := subValue(s.value, seg)
	if debug.Child() {
		debug.Logf("child %q populate, content %v\n", seg, sub)
	}
	c := newSnapshot(sub, s.reg)
	if s.children == nil {
		s.children = map[string]*Snapshot{}
	}
	s.children[seg] = c
	return c
}

// subValue resolves one segment against canonical content. ok reports
// whether the segment addresses an existing position; the value is nil
// whenever ok is false.
func subValue(v any, seg string) (any, bool) {
	switch vv := v.(type) {
	case map[string]any:
		sub, ok := vv[seg]
		return sub, ok
	case []any:
		i, err := strconv.Atoi(seg)
		if err != nil || i < 0 || i >= len(vv) {
			return nil, false
		}
		return vv[i], true
	}
	return nil, false
}

// Equal reports whether two snapshots share a decoder registry and hold
// deeply equal content. Cache population is irrelevant to equality.
func (s *Snapshot) Equal(o *Snapshot) bool {
	if s == o {
		return true
	}
	if s == nil || o == nil {
		return false
	}
	return s.reg == o.reg && immut.Equal(s.value, o.value)
}

// Hash returns a hash consistent with Equal, mixing the registry identity
// with the structural hash of the content.
func (s *Snapshot) Hash() uint64 {
	var h maphash.Hash
	h.SetSeed(regSeed)
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], s.reg.ID())
	h.Write(b[:])
	binary.LittleEndian.PutUint64(b[:], immut.Hash(s.value))
	h.Write(b[:])
	return h.Sum64()
}

var regSeed = maphash.MakeSeed()
