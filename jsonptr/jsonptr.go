// Package jsonptr parses RFC 6901 JSON Pointer strings into ordered path
// segments.
//
// Parsing is total: any input string resolves to some segment sequence.
// The leading separator is optional, so "a/b" and "/a/b" parse to the same
// segments. The escapes ~0 and ~1 decode to "~" and "/" respectively;
// malformed escapes pass through unchanged.
package jsonptr

import "strings"

// Parse splits a pointer string into its unescaped segments. The empty
// string is the root pointer and parses to no segments.
func Parse(s string) []string {
	if s == "" {
		return nil
	}
	if s[0] == '/' {
		s = s[1:]
	}
	parts := strings.Split(s, "/")
	for i, p := range parts {
		parts[i] = Unescape(p)
	}
	return parts
}

// Join builds a pointer string from segments, escaping each one.
func Join(segments ...string) string {
	if len(segments) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, seg := range segments {
		sb.WriteByte('/')
		sb.WriteString(Escape(seg))
	}
	return sb.String()
}

// Escape encodes one segment for inclusion in a pointer string.
func Escape(seg string) string {
	seg = strings.ReplaceAll(seg, "~", "~0")
	return strings.ReplaceAll(seg, "/", "~1")
}

// Unescape decodes one pointer segment.
func Unescape(seg string) string {
	if !strings.Contains(seg, "~") {
		return seg
	}
	seg = strings.ReplaceAll(seg, "~1", "/")
	return strings.ReplaceAll(seg, "~0", "~")
}
