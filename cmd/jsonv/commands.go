package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "jsonv").
		WithSynopsis("jsonv [opts] command [opts]").
		WithDescription("jsonv migrates versioned json documents.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return jsonvMain(cfg, cc, args)
		}).
		WithSubs(
			VersionsCommand(cfg),
			MigrateCommand(cfg),
			DiffCommand(cfg))
}

func jsonvMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func VersionsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &VersionsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Versions, "versions").
		WithAliases("v").
		WithSynopsis("versions -s <steps>").
		WithDescription("list the versions known to the step set").
		WithRun(func(cc *cli.Context, args []string) error {
			return versions(cfg, cc, args)
		})
}

func MigrateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &MigrateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Migrate, "migrate").
		WithAliases("m").
		WithSynopsis("migrate -s <steps> -t <version> [file]").
		WithDescription("migrate a document to a target version").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runMigrate(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff -s <steps> -t <version> [file]").
		WithDescription("show what migrating a document would change").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return runDiff(cfg, cc, args)
		})
}
