package snaptree

import (
	jsonpatch "github.com/evanphx/json-patch"
)

// Patch applies an RFC 6902 JSON Patch to the snapshot content and routes
// the result through Set, so unchanged subtrees keep their identity and
// caches.
func (s *Snapshot) Patch(patch []byte) (*Snapshot, error) {
	ops, err := jsonpatch.DecodePatch(patch)
	if err != nil {
		return nil, err
	}
	doc, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := ops.Apply(doc)
	if err != nil {
		return nil, err
	}
	return s.setJSON(out)
}

// MergePatch applies an RFC 7386 merge patch to the snapshot content and
// routes the result through Set.
func (s *Snapshot) MergePatch(patch []byte) (*Snapshot, error) {
	doc, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	out, err := jsonpatch.MergePatch(doc, patch)
	if err != nil {
		return nil, err
	}
	return s.setJSON(out)
}

// DiffMergePatch computes the RFC 7386 merge patch that turns this
// snapshot's content into the other's, so s.MergePatch(s.DiffMergePatch(o))
// is structurally equal to o.
func (s *Snapshot) DiffMergePatch(o *Snapshot) ([]byte, error) {
	a, err := s.MarshalJSON()
	if err != nil {
		return nil, err
	}
	b, err := o.MarshalJSON()
	if err != nil {
		return nil, err
	}
	return jsonpatch.CreateMergePatch(a, b)
}

func (s *Snapshot) setJSON(data []byte) (*Snapshot, error) {
	v, err := unmarshalJSON(data)
	if err != nil {
		return nil, err
	}
	return s.Set(v)
}
