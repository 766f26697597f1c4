package main

import (
	"fmt"
	"io"

	"github.com/scott-cotton/cli"
	segjson "github.com/segmentio/encoding/json"

	snaptree "github.com/snaptree/go-snaptree"
	"github.com/snaptree/go-snaptree/jsonptr"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	a, err := loadSnapshot(cfg.MainConfig, cc, args[0])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[0], err)
	}
	b, err := loadSnapshot(cfg.MainConfig, cc, args[1])
	if err != nil {
		return fmt.Errorf("error decoding %s: %w", args[1], err)
	}
	if a.Equal(b) {
		return nil
	}
	if !cfg.Quiet {
		patch, err := a.DiffMergePatch(b)
		if err != nil {
			return err
		}
		var pv any
		if err := segjson.Unmarshal(patch, &pv); err != nil {
			return err
		}
		r := newRenderer(cfg.colorize())
		r.renderDiff(cc.Out, a, pv, nil)
	}
	return cli.ExitCodeErr(1)
}

// renderDiff walks a merge patch against the old snapshot and prints one
// line per changed leaf.
func (r *renderer) renderDiff(w io.Writer, old *snaptree.Snapshot, patch any, segs []string) {
	if pm, ok := patch.(map[string]any); ok {
		if _, isMap := old.Value().(map[string]any); isMap || old.Value() == nil {
			for k, sub := range pm {
				r.renderDiff(w, old.Child(jsonptr.Escape(k)), sub, append(segs, k))
			}
			return
		}
	}
	path := jsonptr.Join(segs...)
	if path == "" {
		path = "/"
	}
	oldV := old.Value()
	switch {
	case patch == nil && oldV != nil:
		fmt.Fprintf(w, "%s: %s\n", path, r.del(r.scalar(oldV)))
	case oldV == nil:
		fmt.Fprintf(w, "%s: %s\n", path, r.ins(r.scalar(patch)))
	default:
		os, oOK := oldV.(string)
		ns, nOK := patch.(string)
		if oOK && nOK {
			fmt.Fprintf(w, "%s: %s\n", path, r.stringDiff(os, ns))
			return
		}
		fmt.Fprintf(w, "%s: %s -> %s\n", path, r.del(r.scalar(oldV)), r.ins(r.scalar(patch)))
	}
}
