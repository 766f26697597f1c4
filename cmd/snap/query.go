package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	snaptree "github.com/snaptree/go-snaptree"
)

func query(cfg *QueryConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Query.Parse(cc, args)
	if err != nil {
		cfg.Query.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: query requires an expression", cli.ErrUsage)
	}
	code := args[0]
	files := args[1:]
	if len(files) == 0 {
		files = []string{"-"}
	}
	for _, arg := range files {
		s, err := loadSnapshot(cfg.MainConfig, cc, arg)
		if err != nil {
			return fmt.Errorf("error decoding %s: %w", arg, err)
		}
		res, err := s.Query(code)
		if err != nil {
			return fmt.Errorf("error querying %s: %w", arg, err)
		}
		out, err := snaptree.New(res, s.Registry())
		if err != nil {
			return err
		}
		if err := writeSnapshot(cfg.MainConfig, cc.Out, out); err != nil {
			return err
		}
	}
	return nil
}
