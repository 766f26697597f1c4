package snaptree

import (
	"maps"

	"github.com/expr-lang/expr"

	"github.com/snaptree/go-snaptree/debug"
)

// Query evaluates an expr expression against the snapshot content.
// Mapping keys are in scope as identifiers, and two helper functions are
// available: child(path) returns the content at a pointer path, and
// has(path) reports whether that content exists.
//
//	ok, err := snap.Query(`age >= 18 && has("address/city")`)
func (s *Snapshot) Query(code string) (any, error) {
	env := map[string]any{}
	if m, ok := s.value.(map[string]any); ok {
		maps.Copy(env, m)
	}
	opts := []expr.Option{
		expr.Function("child", func(params ...any) (any, error) {
			return s.Child(params[0].(string)).Value(), nil
		},
			new(func(string) any)),
		expr.Function("has", func(params ...any) (any, error) {
			return s.Child(params[0].(string)).Exists(), nil
		},
			new(func(string) bool)),
	}
	prog, err := expr.Compile(code, opts...)
	if err != nil {
		return nil, err
	}
	if debug.Query() {
		debug.Logf("query %q\n", code)
	}
	return expr.Run(prog, env)
}
