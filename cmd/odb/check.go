package main

import (
	"fmt"

	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/libdiff"
	"github.com/odb-go/serial/parse"

	"github.com/scott-cotton/cli"
)

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Type == "" {
		return fmt.Errorf("%w: check requires -t type", cli.ErrUsage)
	}
	t, err := cfg.lookup(cfg.Type)
	if err != nil {
		return err
	}
	codec := cfg.codec()
	changed := 0
	err = eachInput(args, func(name string, d []byte) error {
		doc, err := parse.Parse(d)
		if err != nil {
			return err
		}
		nodes, err := codec.Decode(t, doc)
		if err != nil {
			return err
		}
		again, err := codec.NodesToIR(nodes)
		if err != nil {
			return err
		}
		same, err := libdiff.Same(doc, again)
		if err != nil {
			return err
		}
		if same {
			return nil
		}
		changed++
		from, err := encode.String(doc)
		if err != nil {
			return err
		}
		to, err := encode.String(again)
		if err != nil {
			return err
		}
		patch, err := libdiff.MergePatch(doc, again)
		if err != nil {
			return err
		}
		fmt.Fprintf(cc.Out, "--- %s\n+++ %s (round trip)\n%s", name, name, libdiff.Text(from+"\n", to+"\n"))
		fmt.Fprintf(cc.Out, "merge patch: %s\n", encode.MustString(patch, encode.EncodeWire(true)))
		return nil
	})
	if err != nil {
		return err
	}
	if changed > 0 {
		return fmt.Errorf("%d document(s) changed by a round trip", changed)
	}
	return nil
}
