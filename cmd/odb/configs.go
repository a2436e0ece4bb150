package main

import (
	"fmt"
	"io"
	"os"

	"github.com/odb-go/serial/debug"
	"github.com/odb-go/serial/encode"
	"github.com/odb-go/serial/node"
	"github.com/odb-go/serial/typeinfo"

	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	"go.uber.org/zap"
)

type MainConfig struct {
	Registry string `cli:"name=r aliases=registry desc='type registry file (yaml)'"`
	Strict   bool   `cli:"name=strict desc='fields missing from documents are errors'"`
	Color    bool   `cli:"name=color desc='encode with color'"`
	WireOut  bool   `cli:"name=wire desc='output in compact format'"`
	Verbose  bool   `cli:"name=v desc='debug logging'"`
	Gops     bool   `cli:"name=gops desc='start a gops diagnostics agent'"`

	Settings *Settings

	Out      string
	CloseOut func() error

	reg *typeinfo.Registry

	Main *cli.Command
}

// flagSet reports whether the main option name was given on the
// command line.
func (cfg *MainConfig) flagSet(name string) bool {
	for _, opt := range cfg.Main.Opts {
		if opt.Name == name {
			return opt.Value != nil
		}
	}
	return false
}

func (cfg *MainConfig) registry() (*typeinfo.Registry, error) {
	if cfg.reg != nil {
		return cfg.reg, nil
	}
	path := cfg.Registry
	if path == "" && cfg.Settings != nil {
		path = cfg.Settings.Registry
	}
	if path == "" {
		return nil, fmt.Errorf("%w: no type registry, use -r or set registry in odb.yaml", cli.ErrUsage)
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open %q: %w", path, err)
	}
	defer f.Close()
	reg := typeinfo.NewRegistry()
	if err := reg.Load(f); err != nil {
		return nil, fmt.Errorf("error loading registry %s: %w", path, err)
	}
	cfg.reg = reg
	return reg, nil
}

func (cfg *MainConfig) lookup(name string) (typeinfo.Type, error) {
	reg, err := cfg.registry()
	if err != nil {
		return nil, err
	}
	t, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: type %q", typeinfo.ErrUndefined, name)
	}
	return t, nil
}

func (cfg *MainConfig) codec() *node.Codec {
	strict := cfg.Strict
	if !cfg.flagSet("strict") && cfg.Settings != nil {
		strict = cfg.Settings.Strict
	}
	opts := []node.Option{node.Strict(strict)}
	if cfg.Settings != nil {
		opts = append(opts, node.MaxDepth(cfg.Settings.MaxDepth))
	}
	return node.NewCodec(opts...)
}

func (cfg *MainConfig) setupLogging() error {
	if !cfg.Verbose {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return err
	}
	debug.SetLogger(l)
	debug.EnableAll()
	return nil
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{
		encode.EncodeWire(cfg.WireOut),
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

// useColor decides coloring: -color, then the color setting, then
// whether w is a terminal.
func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.flagSet("color") {
		return cfg.Color
	}
	if cfg.Settings != nil {
		switch cfg.Settings.Color {
		case "always":
			return true
		case "never":
			return false
		}
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type TypesConfig struct {
	*MainConfig
	Types *cli.Command
}

type SymbolsConfig struct {
	*MainConfig
	Declared bool `cli:"name=d aliases=declared desc='owner is the declaring type'"`
	All      bool `cli:"name=a aliases=all desc='include static and transient fields'"`

	Symbols *cli.Command
}

type DecodeConfig struct {
	*MainConfig
	Type  string `cli:"name=t aliases=type desc='type of the documents'"`
	Where string `cli:"name=where desc='keep fields matching an expr predicate'"`
	Patch string `cli:"name=patch desc='json patch file applied before decoding'"`
	Nodes bool   `cli:"name=n aliases=nodes desc='print nodes instead of json'"`

	Decode *cli.Command
}

type CheckConfig struct {
	*MainConfig
	Type string `cli:"name=t aliases=type desc='type of the documents'"`

	Check *cli.Command
}

type WorldConfig struct {
	*MainConfig
	Symbols bool `cli:"name=s aliases=symbols desc='list the component symbols of each file'"`
	Pretty  bool `cli:"name=p aliases=pretty desc='pretty print the rewritten save file'"`

	World *cli.Command
}
