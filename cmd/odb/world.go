package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/entity"
	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/pipeline"
	"github.com/odb-go/serial/savefile"
	"github.com/odb-go/serial/xduce"

	"github.com/scott-cotton/cli"
)

func world(cfg *WorldConfig, cc *cli.Context, args []string) error {
	args, err := cfg.World.Parse(cc, args)
	if err != nil {
		return err
	}
	reg, err := cfg.registry()
	if err != nil {
		return err
	}
	ser := savefile.NewSerializer(cfg.codec()).PrettyPrint(cfg.Pretty && !cfg.WireOut)
	for _, t := range reg.Types() {
		ser.RegisterType(t)
	}
	if cfg.Pretty && cfg.useColor(cc.Out) {
		ser.Colors(encode.NewColors())
	}
	all := entity.Symbols(reg.Types()...)
	return eachInput(args, func(name string, d []byte) error {
		ents, err := ser.Load(bytes.NewReader(d))
		if err != nil {
			return err
		}
		if !cfg.Symbols {
			return ser.Save(cc.Out, ents)
		}
		stage := pipeline.NodesToSymbols(all, node.OnUnresolved(func(n *node.Node) {
			fmt.Fprintf(os.Stderr, "%s: unresolved component %s\n", name, n.Name)
		}))
		for _, e := range ents {
			syms, err := xduce.Into(stage, []*entity.Data{e})
			if err != nil {
				return err
			}
			fmt.Fprintf(cc.Out, "entity %d:\n", e.ID)
			for _, s := range syms {
				fmt.Fprintf(cc.Out, "\t%s\n", s)
			}
		}
		return nil
	})
}
