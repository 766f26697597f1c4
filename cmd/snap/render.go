package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	segjson "github.com/segmentio/encoding/json"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// renderer colors scalar values and diffs for terminal output. With
// colorize false every helper degrades to plain text.
type renderer struct {
	colorize bool

	null   func(string, ...any) string
	boolC  func(string, ...any) string
	num    func(string, ...any) string
	str    func(string, ...any) string
	field  func(string, ...any) string
	delC   func(string, ...any) string
	insC   func(string, ...any) string
}

func newRenderer(colorize bool) *renderer {
	return &renderer{
		colorize: colorize,
		null:     color.RGB(196, 196, 24).SprintfFunc(),
		boolC:    color.RGB(255, 128, 0).SprintfFunc(),
		num:      color.RGB(128, 216, 236).SprintfFunc(),
		str:      color.RGB(64, 192, 87).SprintfFunc(),
		field:    color.RGB(196, 96, 16).SprintfFunc(),
		delC:     color.New(color.FgRed, color.CrossedOut).SprintfFunc(),
		insC:     color.New(color.FgGreen).SprintfFunc(),
	}
}

// scalar renders a canonical value as a single JSON token. Containers
// render compactly; they appear in diffs when a whole subtree is added.
func (r *renderer) scalar(v any) string {
	d, err := segjson.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	s := string(d)
	if !r.colorize {
		return s
	}
	switch v.(type) {
	case nil:
		return r.null("%s", s)
	case bool:
		return r.boolC("%s", s)
	case int64, float64:
		return r.num("%s", s)
	case string:
		return r.str("%s", s)
	default:
		return s
	}
}

func (r *renderer) key(k string) string {
	d, err := segjson.Marshal(k)
	if err != nil {
		return k
	}
	if !r.colorize {
		return string(d)
	}
	return r.field("%s", string(d))
}

func (r *renderer) del(s string) string {
	if !r.colorize {
		return "-" + s
	}
	return r.delC("%s", s)
}

func (r *renderer) ins(s string) string {
	if !r.colorize {
		return "+" + s
	}
	return r.insC("%s", s)
}

// stringDiff renders a character-level diff between two string values.
func (r *renderer) stringDiff(from, to string) string {
	cfg := diffpatch.New()
	diffs := cfg.DiffMain(from, to, false)
	diffs = cfg.DiffCleanupSemantic(diffs)
	var sb strings.Builder
	sb.WriteByte('"')
	for _, d := range diffs {
		switch d.Type {
		case diffpatch.DiffDelete:
			sb.WriteString(r.del(d.Text))
		case diffpatch.DiffInsert:
			sb.WriteString(r.ins(d.Text))
		default:
			sb.WriteString(d.Text)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
