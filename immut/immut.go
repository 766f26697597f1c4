// Package immut canonicalizes JSON-like values into a deep-immutable form
// and provides structural equality and hashing over that form.
//
// The canonical form uses exactly these Go types:
//
//   - nil
//   - bool
//   - int64, float64
//   - string
//   - []any (sequences)
//   - map[string]any (mappings)
//
// Make deep-copies its input so no alias held by the caller can reach the
// result; callers in turn must never mutate what Make returns. Applying
// Make to its own output yields a structurally equal value.
package immut

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"reflect"
	"time"
)

// ErrUnsupported reports input that has no JSON-like representation.
var ErrUnsupported = errors.New("unsupported value")

// Make returns the canonical deep-immutable form of v.
func Make(v any) (any, error) {
	switch x := v.(type) {
	case nil:
		return nil, nil
	case bool:
		return x, nil
	case string:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return uintValue(uint64(x)), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return uintValue(x), nil
	case float32:
		return float64(x), nil
	case float64:
		return x, nil
	case json.Number:
		if i, err := x.Int64(); err == nil {
			return i, nil
		}
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: number %q", ErrUnsupported, string(x))
		}
		return f, nil
	case time.Time:
		return x.Format(time.RFC3339Nano), nil
	case time.Duration:
		return x.String(), nil
	case []byte:
		return base64.StdEncoding.EncodeToString(x), nil
	case []any:
		out := make([]any, len(x))
		for i, e := range x {
			ee, err := Make(e)
			if err != nil {
				return nil, err
			}
			out[i] = ee
		}
		return out, nil
	case map[string]any:
		out := make(map[string]any, len(x))
		for k, e := range x {
			ee, err := Make(e)
			if err != nil {
				return nil, err
			}
			out[k] = ee
		}
		return out, nil
	}
	return makeReflect(reflect.ValueOf(v))
}

// uintValue widens a uint64, falling back to float64 when it does not fit
// in an int64.
func uintValue(u uint64) any {
	if u <= math.MaxInt64 {
		return int64(u)
	}
	return float64(u)
}

// makeReflect handles named types, structs, pointers and non-canonical
// containers.
func makeReflect(rv reflect.Value) (any, error) {
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface:
		if rv.IsNil() {
			return nil, nil
		}
		return Make(rv.Elem().Interface())
	case reflect.Bool:
		return rv.Bool(), nil
	case reflect.String:
		return rv.String(), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return uintValue(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return rv.Float(), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			return base64.StdEncoding.EncodeToString(rv.Bytes()), nil
		}
		out := make([]any, rv.Len())
		for i := range out {
			e, err := Make(rv.Index(i).Interface())
			if err != nil {
				return nil, err
			}
			out[i] = e
		}
		return out, nil
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, fmt.Errorf("%w: map key type %s", ErrUnsupported, rv.Type().Key())
		}
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			e, err := Make(iter.Value().Interface())
			if err != nil {
				return nil, err
			}
			out[iter.Key().String()] = e
		}
		return out, nil
	case reflect.Struct:
		out := make(map[string]any)
		if err := makeStruct(rv, out); err != nil {
			return nil, err
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnsupported, rv.Type())
}

func makeStruct(rv reflect.Value, out map[string]any) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		if !field.IsExported() {
			continue
		}
		name := field.Name
		if tag, ok := field.Tag.Lookup("snap"); ok {
			if tag == "-" {
				continue
			}
			name = tag
		} else if field.Anonymous && field.Type.Kind() == reflect.Struct {
			// embedded structs without a tag flatten into the parent
			if err := makeStruct(rv.Field(i), out); err != nil {
				return err
			}
			continue
		}
		e, err := Make(rv.Field(i).Interface())
		if err != nil {
			return fmt.Errorf("field %q: %w", name, err)
		}
		out[name] = e
	}
	return nil
}
