package decode

import (
	"fmt"
	"reflect"
)

// ConversionError reports that no factory could produce the requested
// target type, or that the matching factory failed.
type ConversionError struct {
	Type   reflect.Type
	Format string
	Err    error
}

func (e *ConversionError) Error() string {
	if e.Format != "" {
		return fmt.Sprintf("cannot convert to %s (format %q): %v", e.Type, e.Format, e.Err)
	}
	return fmt.Sprintf("cannot convert to %s: %v", e.Type, e.Err)
}

func (e *ConversionError) Unwrap() error {
	return e.Err
}

// TypeError reports a mismatch between source content and a destination
// type during reflective decoding.
type TypeError struct {
	FieldPath string
	Expected  string
	Actual    string
}

func (e *TypeError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("type error at %s: expected %s, got %s", e.FieldPath, e.Expected, e.Actual)
	}
	return fmt.Sprintf("type error: expected %s, got %s", e.Expected, e.Actual)
}
