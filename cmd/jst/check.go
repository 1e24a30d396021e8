package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	if len(args) != 0 {
		return fmt.Errorf("%w: check takes no arguments", cli.ErrUsage)
	}
	src, err := cfg.source()
	if err != nil {
		return err
	}
	names, err := src.ListNames()
	if err != nil {
		return err
	}
	r, err := cfg.reader()
	if err != nil {
		return err
	}
	failed := 0
	for _, name := range names {
		s, err := r.Read(name)
		if err != nil {
			failed++
			theLog.Error("schema does not resolve", "name", name, "error", err)
			continue
		}
		theLog.Debug("schema ok", "name", name, "properties", s.Properties().Len())
	}
	fmt.Fprintf(cc.Out, "%d schemas, %d failed\n", len(names), failed)
	if failed != 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}
