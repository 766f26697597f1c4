package decode

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"strings"
)

// assign is the reflection-based fallback decoder. v is canonical snapshot
// content (nil, bool, int64, float64, string, []any, map[string]any); dst is
// an addressable destination value.
func assign(v any, dst reflect.Value, path string) error {
	if v == nil {
		dst.SetZero()
		return nil
	}
	if dst.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(dst.Type().Elem()))
		}
		return assign(v, dst.Elem(), path)
	}
	if s, ok := v.(string); ok && dst.CanAddr() {
		if tu, ok := dst.Addr().Interface().(encoding.TextUnmarshaler); ok {
			if err := tu.UnmarshalText([]byte(s)); err != nil {
				return fmt.Errorf("field %q: %w", path, err)
			}
			return nil
		}
	}
	if vt := reflect.TypeOf(v); vt.AssignableTo(dst.Type()) {
		dst.Set(reflect.ValueOf(v))
		return nil
	}
	if dst.Kind() == reflect.Interface && dst.NumMethod() == 0 {
		dst.Set(reflect.ValueOf(v))
		return nil
	}

	switch x := v.(type) {
	case bool:
		if dst.Kind() == reflect.Bool {
			dst.SetBool(x)
			return nil
		}
	case string:
		switch dst.Kind() {
		case reflect.String:
			dst.SetString(x)
			return nil
		case reflect.Slice:
			if dst.Type().Elem().Kind() == reflect.Uint8 {
				b, err := base64.StdEncoding.DecodeString(x)
				if err != nil {
					return fmt.Errorf("field %q: %w", path, err)
				}
				dst.SetBytes(b)
				return nil
			}
		}
	case int64:
		return assignInt(x, dst, path)
	case float64:
		return assignFloat(x, dst, path)
	case []any:
		return assignSeq(x, dst, path)
	case map[string]any:
		return assignMapping(x, dst, path)
	}
	return typeErr(v, dst, path)
}

func assignInt(x int64, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if dst.OverflowInt(x) {
			return fmt.Errorf("field %q: %d overflows %s", path, x, dst.Type())
		}
		dst.SetInt(x)
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if x < 0 || dst.OverflowUint(uint64(x)) {
			return fmt.Errorf("field %q: %d overflows %s", path, x, dst.Type())
		}
		dst.SetUint(uint64(x))
		return nil
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(float64(x))
		return nil
	}
	return typeErr(x, dst, path)
}

func assignFloat(x float64, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Float32, reflect.Float64:
		dst.SetFloat(x)
		return nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if x != math.Trunc(x) || x < -9.223372036854776e18 || x >= 9.223372036854776e18 {
			return fmt.Errorf("field %q: %v is not an integer", path, x)
		}
		return assignInt(int64(x), dst, path)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if x != math.Trunc(x) || x < 0 {
			return fmt.Errorf("field %q: %v is not an unsigned integer", path, x)
		}
		return assignInt(int64(x), dst, path)
	}
	return typeErr(x, dst, path)
}

func assignSeq(x []any, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Slice:
		out := reflect.MakeSlice(dst.Type(), len(x), len(x))
		for i, e := range x {
			if err := assign(e, out.Index(i), fieldPath(path, fmt.Sprintf("[%d]", i))); err != nil {
				return err
			}
		}
		dst.Set(out)
		return nil
	case reflect.Array:
		if dst.Len() != len(x) {
			return fmt.Errorf("field %q: sequence length %d does not fit %s", path, len(x), dst.Type())
		}
		for i, e := range x {
			if err := assign(e, dst.Index(i), fieldPath(path, fmt.Sprintf("[%d]", i))); err != nil {
				return err
			}
		}
		return nil
	}
	return typeErr(x, dst, path)
}

func assignMapping(x map[string]any, dst reflect.Value, path string) error {
	switch dst.Kind() {
	case reflect.Map:
		if dst.Type().Key().Kind() != reflect.String {
			return typeErr(x, dst, path)
		}
		out := reflect.MakeMapWithSize(dst.Type(), len(x))
		for k, e := range x {
			ev := reflect.New(dst.Type().Elem()).Elem()
			if err := assign(e, ev, fieldPath(path, k)); err != nil {
				return err
			}
			out.SetMapIndex(reflect.ValueOf(k).Convert(dst.Type().Key()), ev)
		}
		dst.Set(out)
		return nil
	case reflect.Struct:
		return assignStruct(x, dst, path)
	}
	return typeErr(x, dst, path)
}

func assignStruct(x map[string]any, dst reflect.Value, path string) error {
	rt := dst.Type()
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
			// untagged embedded structs read from the same mapping
			if err := assignStruct(x, dst.Field(i), path); err != nil {
				return err
			}
			continue
		}
		e, ok := x[name]
		if !ok {
			e, ok = lookupFold(x, name)
		}
		if !ok {
			continue
		}
		if err := assign(e, dst.Field(i), fieldPath(path, name)); err != nil {
			return err
		}
	}
	return nil
}

// lookupFold finds a mapping entry by case-insensitive key match, the way
// encoding/json matches field names.
func lookupFold(x map[string]any, name string) (any, bool) {
	for k, v := range x {
		if strings.EqualFold(k, name) {
			return v, true
		}
	}
	return nil, false
}

func fieldPath(path, name string) string {
	if path == "" {
		return name
	}
	if strings.HasPrefix(name, "[") {
		return path + name
	}
	return path + "." + name
}

func typeErr(v any, dst reflect.Value, path string) error {
	return &TypeError{
		FieldPath: path,
		Expected:  dst.Type().String(),
		Actual:    contentKind(v),
	}
}

// contentKind names canonical content shapes the way users see them.
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
