package main

import (
	"bytes"
	"fmt"

	"github.com/g2crowd/json-schema-tools/encode"
	"github.com/g2crowd/json-schema-tools/libdiff"

	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: diff requires one schema name", cli.ErrUsage)
	}
	name := args[0]
	src, err := cfg.source()
	if err != nil {
		return err
	}
	raw, err := src.LoadRaw(name)
	if err != nil {
		return err
	}
	r, err := cfg.reader()
	if err != nil {
		return err
	}
	s, err := r.Read(name)
	if err != nil {
		return err
	}
	resolved := s.Document()
	if !cfg.Lines {
		d := libdiff.Diff(raw, resolved)
		if d == nil {
			return nil
		}
		return encode.Encode(d, cc.Out, cfg.encOpts(cc.Out)...)
	}
	opts := []encode.EncodeOption{encode.EncodeFormat(cfg.format())}
	from := bytes.NewBuffer(nil)
	if err := encode.Encode(raw, from, opts...); err != nil {
		return err
	}
	to := bytes.NewBuffer(nil)
	if err := encode.Encode(resolved, to, opts...); err != nil {
		return err
	}
	lines := libdiff.Lines(from.String(), to.String())
	if !libdiff.Changed(lines) {
		return nil
	}
	return libdiff.WriteLines(cc.Out, lines, cfg.colors(cc.Out))
}
