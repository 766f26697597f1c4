package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	snaptree "github.com/snaptree/go-snaptree"
)

type MainConfig struct {
	J bool `cli:"name=j aliases=json desc='do i/o in JSON'"`
	Y bool `cli:"name=y aliases=yaml desc='do i/o in YAML'"`

	Color bool `cli:"name=color desc='force colored output'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

type GetConfig struct {
	*MainConfig
	Get *cli.Command
}

type SetConfig struct {
	*MainConfig
	Set *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Quiet bool `cli:"name=q aliases=quiet desc='suppress output, only set the exit code'"`
	Diff  *cli.Command
}

type ViewConfig struct {
	*MainConfig
	View *cli.Command
}

type QueryConfig struct {
	*MainConfig
	Query *cli.Command
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// colorize reports whether output should be colored: forced by -color,
// otherwise only when stdout is a terminal.
func (cfg *MainConfig) colorize() bool {
	if cfg.Color {
		return true
	}
	if cfg.Out != "" && cfg.Out != "-" {
		return false
	}
	return isatty.IsTerminal(os.Stdout.Fd())
}

// loadSnapshot reads one input, "-" meaning stdin, and parses it as JSON
// or YAML. Without -j or -y, the file extension decides and JSON is the
// default.
func loadSnapshot(cfg *MainConfig, cc *cli.Context, arg string) (*snaptree.Snapshot, error) {
	var (
		r   io.Reader
		err error
	)
	if arg == "-" {
		r = cc.In
	} else {
		f, err := os.Open(arg)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", arg, err)
		}
		defer f.Close()
		r = f
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", arg, err)
	}
	if cfg.yamlIn(arg) {
		return snaptree.FromYAML(data, nil)
	}
	return snaptree.FromJSON(data, nil)
}

func (cfg *MainConfig) yamlIn(arg string) bool {
	if cfg.Y {
		return true
	}
	if cfg.J {
		return false
	}
	return strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml")
}

// writeSnapshot encodes a snapshot to the configured output format.
func writeSnapshot(cfg *MainConfig, w io.Writer, s *snaptree.Snapshot) error {
	if cfg.Y {
		d, err := s.YAML()
		if err != nil {
			return err
		}
		_, err = w.Write(d)
		return err
	}
	d, err := s.MarshalJSON()
	if err != nil {
		return err
	}
	if _, err := w.Write(d); err != nil {
		return err
	}
	_, err = w.Write([]byte("\n"))
	return err
}
