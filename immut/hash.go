package immut

import (
	"encoding/binary"
	"hash/maphash"
	"math"
	"slices"
)

var seed = maphash.MakeSeed()

// Hash returns a 64-bit structural hash of a canonical value.
// Values for which Equal returns true hash identically: mapping entries
// are folded in sorted key order and numbers that represent the same
// quantity share a representation.
func Hash(v any) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)
	writeHash(&h, v)
	return h.Sum64()
}

func writeHash(h *maphash.Hash, v any) {
	switch x := v.(type) {
	case nil:
		h.WriteByte('n')
	case bool:
		h.WriteByte('b')
		if x {
			h.WriteByte(1)
		} else {
			h.WriteByte(0)
		}
	case string:
		h.WriteByte('s')
		h.WriteString(x)
	case int64:
		writeNum(h, x)
	case float64:
		// integral floats hash as their int64 value so that Equal values
		// hash equal
		if x == math.Trunc(x) && x >= -9.223372036854776e18 && x < 9.223372036854776e18 {
			writeNum(h, int64(x))
			return
		}
		var b [8]byte
		h.WriteByte('f')
		binary.LittleEndian.PutUint64(b[:], math.Float64bits(x))
		h.Write(b[:])
	case []any:
		h.WriteByte('a')
		var b [8]byte
		for _, e := range x {
			binary.LittleEndian.PutUint64(b[:], Hash(e))
			h.Write(b[:])
		}
	case map[string]any:
		h.WriteByte('m')
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		var b [8]byte
		for _, k := range keys {
			h.WriteString(k)
			binary.LittleEndian.PutUint64(b[:], Hash(x[k]))
			h.Write(b[:])
		}
	}
}

func writeNum(h *maphash.Hash, i int64) {
	var b [8]byte
	h.WriteByte('i')
	binary.LittleEndian.PutUint64(b[:], uint64(i))
	h.Write(b[:])
}
