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
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "odb").
		WithSynopsis("odb [opts] command [opts]").
		WithDescription("odb inspects types and converts documents to and from field nodes.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return odbMain(cfg, cc, args)
		}).
		WithSubs(
			TypesCommand(cfg),
			SymbolsCommand(cfg),
			DecodeCommand(cfg),
			CheckCommand(cfg),
			WorldCommand(cfg))
}

func TypesCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &TypesConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Types, "types").
		WithAliases("ty").
		WithSynopsis("types").
		WithDescription("list the types of the registry with their ancestors").
		WithRun(func(cc *cli.Context, args []string) error {
			return listTypes(cfg, cc, args)
		})
}

func SymbolsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SymbolsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Symbols, "symbols").
		WithAliases("sym", "s").
		WithSynopsis("symbols [-d] [-a] [types]").
		WithDescription("list the symbols of types, all registry types by default").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return symbols(cfg, cc, args)
		})
}

func DecodeCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DecodeConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Decode, "decode").
		WithAliases("d", "de").
		WithSynopsis("decode -t type [-where expr] [-patch file] [files]").
		WithDescription(decodeDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return decode(cfg, cc, args)
		})
}

const decodeDescription = `decode decodes json documents as values of a registry type.

Each document is decoded field by field following the symbols of the type.
Fields the type does not declare are ignored.  The decoded fields are
written back as json, or as nodes with -n.

-where keeps the fields matching an expr predicate, for example

  odb decode -t Player -where 'kind == "composite" || name == "hp"'

-patch applies an RFC 6902 json patch to each document before decoding.`

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check -t type [files]").
		WithDescription("check that documents survive a decode and encode round trip, printing what does not").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func WorldCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &WorldConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.World, "world").
		WithAliases("w").
		WithSynopsis("world [-s] [-p] [files]").
		WithDescription("read save files with the registry types as components and rewrite them").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return world(cfg, cc, args)
		})
}
