package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "O",
		Aliases:     []string{"ofmt"},
		Description: "output format: json/j, yaml/y",
		Type:        cli.NamedFuncOpt(cfg.fmtFunc(&cfg.OutFormat), "(format)"),
	})

	return cli.NewCommandAt(&cfg.Main, "jst").
		WithSynopsis("jst [opts] command [opts]").
		WithDescription("jst reads json schemas, resolving $ref and extends.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jstMain(cfg, cc, args)
		}).
		WithSubs(
			ReadCommand(cfg),
			ListCommand(cfg),
			DiffCommand(cfg),
			CheckCommand(cfg))
}

func ReadCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ReadConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Read, "read").
		WithAliases("r").
		WithSynopsis("read [-a] [names]").
		WithDescription("print resolved schemas").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return read(cfg, cc, args)
		})
}

func ListCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ListConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.List, "list").
		WithAliases("l", "ls").
		WithSynopsis("list [-where expr]").
		WithDescription(listDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return list(cfg, cc, args)
		})
}

const listDescription = `list the names of the schemas in the schema directory.

With -where, each schema is resolved and listed only if the expression
evaluates to true. The expression sees

  name         the schema name
  properties   the property keys, in order
  count        the number of properties
  title        the title field, or ""
  description  the description field, or ""

for example

  jst list -where 'count > 3 && "email" in properties'`

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d", "di").
		WithSynopsis("diff [-lines] <name>").
		WithDescription("show what resolution changed in a schema").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check").
		WithDescription("resolve every schema and report failures").
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}
