package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
	segjson "github.com/segmentio/encoding/json"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		cfg.Set.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a pointer path and a value", cli.ErrUsage)
	}
	path, valArg := args[0], args[1]
	file := "-"
	if len(args) > 2 {
		file = args[2]
	}

	// the value argument is JSON; bare words fall back to strings so
	// `snap set /name Ann` works without quoting
	var value any
	if err := segjson.Unmarshal([]byte(valArg), &value); err != nil {
		value = valArg
	}

	s, err := loadSnapshot(cfg.MainConfig, cc, file)
	if err != nil {
		return err
	}
	n, err := s.SetPath(path, value)
	if err != nil {
		return fmt.Errorf("error setting %s in %s: %w", path, file, err)
	}
	return writeSnapshot(cfg.MainConfig, cc.Out, n)
}
