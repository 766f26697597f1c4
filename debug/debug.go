// Package debug provides env-gated trace logging for snapshot internals.
//
// Each area is switched on with an environment variable, for example
// SNAP_DEBUG_MERGE=1 traces the merge engine.
package debug

import (
	"os"
	"strconv"
)

type debug struct {
	Merge   bool
	Convert bool
	Child   bool
	Query   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Merge = boolEnv("SNAP_DEBUG_MERGE")
	d.Convert = boolEnv("SNAP_DEBUG_CONVERT")
	d.Child = boolEnv("SNAP_DEBUG_CHILD")
	d.Query = boolEnv("SNAP_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Merge() bool {
	return d.Merge
}
func Convert() bool {
	return d.Convert
}
func Child() bool {
	return d.Child
}
func Query() bool {
	return d.Query
}
