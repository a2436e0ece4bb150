package main

import (
	"context"
	"fmt"
	"os"

	"github.com/odb-go/serial/codegen"

	"github.com/scott-cotton/cli"
)

func main() {
	cli.MainContext(context.Background(), MainCommand())
}

func MainCommand() *cli.Command {
	cfg := &Config{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}

	return cli.NewCommand("odb-gen").
		WithSynopsis("odb-gen [opts] <package> [types]").
		WithDescription("Generate a YAML type registry from the struct types of a Go package.").
		WithOpts(sOpts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return run(cfg, cc, args)
		})
}

type Config struct {
	OutputFile string `cli:"name=o desc='output file (default: stdout)'"`
	Dir        string `cli:"name=dir desc='directory to resolve the package from (default: current directory)'"`
}

func run(cfg *Config, cc *cli.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("%w: missing package pattern", cli.ErrUsage)
	}
	loader := codegen.NewPackageLoader(cfg.Dir)
	pkgs, err := loader.Load(args[0])
	if err != nil {
		return err
	}
	if len(pkgs) != 1 && len(args) > 1 {
		return fmt.Errorf("%w: type names need a pattern matching one package, %q matches %d", cli.ErrUsage, args[0], len(pkgs))
	}
	gen := codegen.NewGenerator()
	for _, pkg := range pkgs {
		if err := gen.AddPackage(pkg.Types, args[1:]...); err != nil {
			return fmt.Errorf("failed to process package %q: %w", pkg.PkgPath, err)
		}
	}
	d, err := gen.Registry().YAML()
	if err != nil {
		return err
	}
	if cfg.OutputFile == "" || cfg.OutputFile == "-" {
		_, err = cc.Out.Write(d)
		return err
	}
	if err := os.WriteFile(cfg.OutputFile, d, 0644); err != nil {
		return fmt.Errorf("failed to write %q: %w", cfg.OutputFile, err)
	}
	return nil
}
