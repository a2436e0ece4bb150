package main

import (
	"fmt"
	"os"

	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/ir"
	"github.com/odb-go/serial/libdiff"
	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/parse"
	"github.com/odb-go/serial/pipeline"
	"github.com/odb-go/serial/query"
	"github.com/odb-go/serial/xduce"

	"github.com/scott-cotton/cli"
)

func decode(cfg *DecodeConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Decode.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Type == "" {
		return fmt.Errorf("%w: decode requires -t type", cli.ErrUsage)
	}
	t, err := cfg.lookup(cfg.Type)
	if err != nil {
		return err
	}
	codec := cfg.codec()
	stage := pipeline.DocToNodes(codec, t)
	if cfg.Where != "" {
		q, err := query.Compile(cfg.Where)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		stage = xduce.Comp(stage, pipeline.Where(q))
	}
	var patch *ir.Node
	if cfg.Patch != "" {
		d, err := os.ReadFile(cfg.Patch)
		if err != nil {
			return fmt.Errorf("could not read patch %q: %w", cfg.Patch, err)
		}
		patch, err = parse.Parse(d)
		if err != nil {
			return fmt.Errorf("error parsing patch %s: %w", cfg.Patch, err)
		}
	}
	return eachInput(args, func(_ string, d []byte) error {
		doc, err := parse.Parse(d)
		if err != nil {
			return err
		}
		if patch != nil {
			doc, err = libdiff.ApplyPatch(doc, patch)
			if err != nil {
				return err
			}
		}
		nodes, err := xduce.Into(stage, []*ir.Node{doc})
		if err != nil {
			return err
		}
		return writeNodes(cfg.MainConfig, cc, codec, nodes, cfg.Nodes)
	})
}

func writeNodes(cfg *MainConfig, cc *cli.Context, codec *node.Codec, nodes []*node.Node, asNodes bool) error {
	if asNodes {
		for _, n := range nodes {
			fmt.Fprintln(cc.Out, n)
		}
		return nil
	}
	out, err := codec.NodesToIR(nodes)
	if err != nil {
		return err
	}
	return encode.Encode(out, cc.Out, cfg.encOpts(cc.Out)...)
}
