package main

import (
	"fmt"
	"strings"

	"github.com/odb-go/serial/pipeline"
	"github.com/odb-go/serial/symbol"
	"github.com/odb-go/serial/typeinfo"
	"github.com/odb-go/serial/xduce"

	"github.com/scott-cotton/cli"
)

func listTypes(cfg *TypesConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Types.Parse(cc, args); err != nil {
		return err
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	for _, t := range reg.Types() {
		var chain []string
		for a := range typeinfo.Ancestors(t) {
			chain = append(chain, a.Name())
		}
		fmt.Fprintln(cc.Out, strings.Join(chain, " < "))
	}
	return nil
}

func symbols(cfg *SymbolsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Symbols.Parse(cc, args)
	if err != nil {
		return err
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	types := reg.Types()
	if len(args) != 0 {
		types = types[:0:0]
		for _, name := range args {
			t, err := cfg.lookup(name)
			if err != nil {
				return err
			}
			types = append(types, t)
		}
	}
	fields := pipeline.ValidFields()
	if cfg.All {
		fields = xduce.Identity[pipeline.Member]()
	}
	for _, t := range types {
		build := pipeline.AsSymbolsOf(t)
		if cfg.Declared {
			build = pipeline.AsSymbols()
		}
		syms, err := xduce.Into(xduce.Comp3(pipeline.AllFields(), fields, build), []typeinfo.Type{t})
		if err != nil {
			return err
		}
		printSymbols(cc, syms)
	}
	return nil
}

func printSymbols(cc *cli.Context, syms []symbol.Symbol) {
	for _, s := range syms {
		fmt.Fprintln(cc.Out, s)
	}
}
