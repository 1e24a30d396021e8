package main

import (
	"fmt"
	"io"

	"github.com/g2crowd/json-schema-tools/ir"
	"github.com/g2crowd/json-schema-tools/schema"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/scott-cotton/cli"
)

func list(cfg *ListConfig, cc *cli.Context, args []string) error {
	args, err := cfg.List.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: list takes no arguments", cli.ErrUsage)
	}
	src, err := cfg.source()
	if err != nil {
		return err
	}
	names, err := src.ListNames()
	if err != nil {
		return err
	}
	if cfg.Where == "" {
		return writeNames(cc.Out, names)
	}
	prg, err := compileWhere(cfg.Where)
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	r, err := cfg.reader()
	if err != nil {
		return err
	}
	var res []string
	for _, name := range names {
		s, err := r.Read(name)
		if err != nil {
			return err
		}
		ok, err := where(prg, s)
		if err != nil {
			return fmt.Errorf("evaluating %q on %s: %w", cfg.Where, name, err)
		}
		if ok {
			res = append(res, name)
		}
	}
	return writeNames(cc.Out, res)
}

func writeNames(w io.Writer, names []string) error {
	for _, name := range names {
		if _, err := fmt.Fprintln(w, name); err != nil {
			return err
		}
	}
	return nil
}

func whereEnv(s *schema.Schema) map[string]any {
	str := func(key string) string {
		if v := s.Field(key); v != nil && v.Type == ir.StringType {
			return v.String
		}
		return ""
	}
	return map[string]any{
		"name":        s.Name(),
		"properties":  s.Properties().Keys(),
		"count":       s.Properties().Len(),
		"title":       str("title"),
		"description": str("description"),
	}
}

func compileWhere(input string) (*vm.Program, error) {
	return expr.Compile(input, expr.Env(map[string]any{
		"name":        "",
		"properties":  []string{},
		"count":       0,
		"title":       "",
		"description": "",
	}), expr.AsBool())
}

func where(prg *vm.Program, s *schema.Schema) (bool, error) {
	out, err := expr.Run(prg, whereEnv(s))
	if err != nil {
		return false, err
	}
	b, _ := out.(bool)
	return b, nil
}
