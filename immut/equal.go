package immut

import "math"

// Equal reports deep structural equality of two canonical values.
// Sequences compare element-wise in order; mappings compare key/value-wise
// with no key order. Numbers compare numerically, so int64(3) equals
// float64(3).
func Equal(a, b any) bool {
	switch av := a.(type) {
	case nil:
		return b == nil
	case bool:
		bv, ok := b.(bool)
		return ok && av == bv
	case string:
		bv, ok := b.(string)
		return ok && av == bv
	case int64:
		switch bv := b.(type) {
		case int64:
			return av == bv
		case float64:
			return numEqual(av, bv)
		}
		return false
	case float64:
		switch bv := b.(type) {
		case int64:
			return numEqual(bv, av)
		case float64:
			return av == bv
		}
		return false
	case []any:
		bv, ok := b.([]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case map[string]any:
		bv, ok := b.(map[string]any)
		if !ok || len(av) != len(bv) {
			return false
		}
		for k, ae := range av {
			be, ok := bv[k]
			if !ok || !Equal(ae, be) {
				return false
			}
		}
		return true
	}
	return false
}

// numEqual reports whether a float64 represents exactly the given int64.
func numEqual(i int64, f float64) bool {
	if f != math.Trunc(f) {
		return false
	}
	// the int64 range check must use float bounds: 2^63 is exact in float64
	if f < -9.223372036854776e18 || f >= 9.223372036854776e18 {
		return false
	}
	return int64(f) == i
}
