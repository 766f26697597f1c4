package decode

import (
	"encoding/base64"
	"fmt"
	"sync"
	"time"
)

var defaultRegistry = sync.OnceValue(func() *Registry {
	r := NewRegistry()
	RegisterFor(r, "", timeFactory)
	RegisterFor(r, "", durationFactory)
	RegisterFor(r, "", bytesFactory)
	return r
})

// Default returns the shared registry with factories for time.Time
// (the format string is the time layout, RFC 3339 by default),
// time.Duration and []byte (base64). Snapshots constructed with a nil
// registry bind to it.
func Default() *Registry {
	return defaultRegistry()
}

func timeFactory(src Source, format string) (time.Time, error) {
	layout := format
	if layout == "" {
		layout = time.RFC3339
	}
	switch x := src.Value().(type) {
	case string:
		return time.Parse(layout, x)
	case int64:
		return time.Unix(x, 0).UTC(), nil
	case float64:
		sec, frac := int64(x), x-float64(int64(x))
		return time.Unix(sec, int64(frac*float64(time.Second))).UTC(), nil
	}
	return time.Time{}, fmt.Errorf("expected string or number, got %s", contentKind(src.Value()))
}

func durationFactory(src Source, _ string) (time.Duration, error) {
	switch x := src.Value().(type) {
	case string:
		return time.ParseDuration(x)
	case int64:
		return time.Duration(x), nil
	case float64:
		return time.Duration(x), nil
	}
	return 0, fmt.Errorf("expected string or number, got %s", contentKind(src.Value()))
}

func bytesFactory(src Source, _ string) ([]byte, error) {
	x, ok := src.Value().(string)
	if !ok {
		return nil, fmt.Errorf("expected string, got %s", contentKind(src.Value()))
	}
	return base64.StdEncoding.DecodeString(x)
}
