package snaptree

import (
	"reflect"
	"strconv"

	"github.com/snaptree/go-snaptree/debug"
)

// As converts the snapshot content to T through the bound decoder
// registry. Null content short-circuits to the zero value with no error
// and no caching; content that already has dynamic type T is returned
// as-is. Everything else is memoized per (T, format): repeated calls
// return the identical converted value.
//
// The optional format string selects a format-specific factory; at most
// one may be given.
func As[T any](s *Snapshot, format ...string) (T, error) {
	var zero T
	if s.value == nil {
		return zero, nil
	}
	if v, ok := s.value.(T); ok {
		return v, nil
	}
	f := oneFormat(format)
	t := reflect.TypeFor[T]()
	if v, ok := s.cachedConv(t, f); ok {
		return v.(T), nil
	}
	if debug.Convert() {
		debug.Logf("convert to %s format %q\n", t, f)
	}
	v, err := s.reg.Convert(s, t, f)
	if err != nil {
		return zero, err
	}
	return s.storeConv(t, f, v).(T), nil
}

// AsList converts sequence content to a []T whose element i is the
// conversion of Child(i). Non-sequence content fails with *FormatError.
// The slice is cached whole under ([]T, format) and must not be modified.
func AsList[T any](s *Snapshot, format ...string) ([]T, error) {
	seq, ok := s.value.([]any)
	if !ok {
		return nil, &FormatError{Want: "sequence", Value: s.value}
	}
	f := oneFormat(format)
	t := reflect.TypeFor[[]T]()
	if v, ok := s.cachedConv(t, f); ok {
		return v.([]T), nil
	}
	out := make([]T, len(seq))
	var err error
	for i := range seq {
		out[i], err = As[T](s.directChild(strconv.Itoa(i)), format...)
		if err != nil {
			return nil, err
		}
	}
	return s.storeConv(t, f, out).([]T), nil
}

// AsMap converts mapping content to a map[string]T with the same keys,
// each value the conversion of the corresponding child. Non-mapping
// content fails with *FormatError. The map is cached whole under
// (map[string]T, format) and must not be modified.
func AsMap[T any](s *Snapshot, format ...string) (map[string]T, error) {
	m, ok := s.value.(map[string]any)
	if !ok {
		return nil, &FormatError{Want: "mapping", Value: s.value}
	}
	f := oneFormat(format)
	t := reflect.TypeFor[map[string]T]()
	if v, ok := s.cachedConv(t, f); ok {
		return v.(map[string]T), nil
	}
	out := make(map[string]T, len(m))
	for k := range m {
		v, err := As[T](s.directChild(k), format...)
		if err != nil {
			return nil, err
		}
		out[k] = v
	}
	return s.storeConv(t, f, out).(map[string]T), nil
}

func oneFormat(format []string) string {
	switch len(format) {
	case 0:
		return ""
	case 1:
		return format[0]
	}
	panic("at most one format may be given")
}

func (s *Snapshot) cachedConv(t reflect.Type, format string) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.conv[convKey{typ: t, format: format}]
	return v, ok
}

// storeConv populates the conversion cache once; if another conversion
// landed first, the earlier value wins and is returned.
func (s *Snapshot) storeConv(t reflect.Type, format string, v any) any {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := convKey{typ: t, format: format}
	if prev, ok := s.conv[key]; ok {
		return prev
	}
	if s.conv == nil {
		s.conv = map[convKey]any{}
	}
	s.conv[key] = v
	return v
}
