package main

import (
	"fmt"
	"io"

	"github.com/g2crowd/json-schema-tools/encode"
	"github.com/g2crowd/json-schema-tools/schema"

	"github.com/scott-cotton/cli"
)

func read(cfg *ReadConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Read.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 && !cfg.All {
		return fmt.Errorf("%w: read requires schema names or -a", cli.ErrUsage)
	}
	r, err := cfg.reader()
	if err != nil {
		return err
	}
	var schemas []*schema.Schema
	if cfg.All {
		schemas, err = r.ReadAll()
		if err != nil {
			return err
		}
	}
	for _, name := range args {
		s, err := r.Read(name)
		if err != nil {
			return err
		}
		schemas = append(schemas, s)
	}
	for i, s := range schemas {
		if i > 0 && cfg.format().IsYAML() {
			if err := writeSep(cc.Out); err != nil {
				return err
			}
		}
		if err := encode.Encode(s.Document(), cc.Out, cfg.encOpts(cc.Out)...); err != nil {
			return fmt.Errorf("error encoding %s: %w", s.Name(), err)
		}
	}
	return nil
}

func writeSep(w io.Writer) error {
	_, err := w.Write([]byte("---\n"))
	return err
}
