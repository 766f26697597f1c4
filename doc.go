// Package snaptree models immutable, hierarchically addressable snapshots
// of JSON-like content, typically content pulled from a remote structured
// store.
//
// # Snapshots
//
// A Snapshot holds one node of a content tree in deep-immutable form plus
// two lazy caches: child snapshots keyed by path segment, and typed
// conversions keyed by (target type, format). Snapshots are created from
// raw content:
//
//	snap, err := snaptree.New(map[string]any{"name": "Ann", "age": 30}, nil)
//
// or from encoded data with FromJSON / FromYAML.
//
// # Navigation
//
// Child navigates RFC 6901 pointer paths and never fails; paths that miss
// the content shape resolve to empty snapshots:
//
//	snap.Child("name")         // same as snap.Child("/name")
//	snap.Child("a/b")          // identical to snap.Child("a").Child("b")
//	snap.Child("no/such/path") // empty snapshot, Value() == nil
//
// # Typed views
//
// As, AsList and AsMap convert content through the snapshot's decoder
// registry and memoize the result per (type, format):
//
//	name, err := snaptree.As[string](snap.Child("name"))
//	all, err := snaptree.AsMap[any](snap)
//	t, err := snaptree.As[time.Time](snap.Child("since"), time.RFC1123)
//
// # Updates
//
// Set returns a snapshot reflecting new content while reusing as much of
// the receiver's cache tree as still applies: structurally unchanged
// content keeps its identity, and changed content carries forward the
// cached children whose values survived. SetPath rebuilds one addressed
// position and routes the result through Set.
//
// Snapshots are safe for concurrent reads; Set and SetPath must not run
// concurrently with other operations on either involved tree.
package snaptree
