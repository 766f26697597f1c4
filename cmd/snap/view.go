package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/scott-cotton/cli"

	snaptree "github.com/snaptree/go-snaptree"
	"github.com/snaptree/go-snaptree/jsonptr"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		cfg.View.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	r := newRenderer(cfg.colorize())
	for _, arg := range args {
		s, err := loadSnapshot(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		r.renderValue(cc.Out, s, 0)
		fmt.Fprintln(cc.Out)
	}
	return nil
}

// renderValue pretty prints a snapshot with colored keys and scalars.
func (r *renderer) renderValue(w io.Writer, s *snaptree.Snapshot, depth int) {
	switch v := s.Value().(type) {
	case map[string]any:
		if len(v) == 0 {
			fmt.Fprint(w, "{}")
			return
		}
		fmt.Fprint(w, "{")
		keys := s.Keys()
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, "\n%s%s: ", indentOf(depth+1), r.key(k))
			r.renderValue(w, s.Child(jsonptr.Join(k)), depth+1)
		}
		fmt.Fprintf(w, "\n%s}", indentOf(depth))
	case []any:
		if len(v) == 0 {
			fmt.Fprint(w, "[]")
			return
		}
		fmt.Fprint(w, "[")
		for i := range v {
			if i > 0 {
				fmt.Fprint(w, ",")
			}
			fmt.Fprintf(w, "\n%s", indentOf(depth+1))
			r.renderValue(w, s.Child(fmt.Sprintf("/%d", i)), depth+1)
		}
		fmt.Fprintf(w, "\n%s]", indentOf(depth))
	default:
		fmt.Fprint(w, r.scalar(v))
	}
}

func indentOf(depth int) string {
	return strings.Repeat("  ", depth)
}
