package snaptree

import (
	"fmt"

	"github.com/snaptree/go-snaptree/decode"
)

// ConversionError is re-exported from the decode package; As returns it
// when no factory resolves or the resolved factory fails.
type ConversionError = decode.ConversionError

// FormatError reports a shape mismatch between snapshot content and the
// requested view, such as AsList on mapping content.
type FormatError struct {
	Want  string // "sequence" or "mapping"
	Value any
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("expected %s content, got %s", e.Want, contentKind(e.Value))
}

// InvalidPathError reports a SetPath path that addresses into scalar
// content.
type InvalidPathError struct {
	Path    string
	Segment string
	Value   any
}

func (e *InvalidPathError) Error() string {
	return fmt.Sprintf("cannot set %q: segment %q addresses into %s content",
		e.Path, e.Segment, contentKind(e.Value))
}

// contentKind names canonical content shapes for error messages.
func contentKind(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "bool"
	case int64, float64:
		return "number"
	case string:
		return "string"
	case []any:
		return "sequence"
	case map[string]any:
		return "mapping"
	}
	return fmt.Sprintf("%T", v)
}
