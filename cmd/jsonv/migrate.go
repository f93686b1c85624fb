package main

import (
	"fmt"
	"slices"

	"github.com/jcooke22/json/version"

	"github.com/scott-cotton/cli"
)

type VersionsConfig struct {
	*MainConfig
	Versions *cli.Command
}

func versions(cfg *VersionsConfig, cc *cli.Context, args []string) error {
	if _, err := cfg.Versions.Parse(cc, args); err != nil {
		return err
	}
	mgr, err := cfg.manager()
	if err != nil {
		return err
	}
	for _, v := range mgr.KnownVersions() {
		fmt.Fprintln(cc.Out, v)
	}
	return nil
}

type MigrateConfig struct {
	*MainConfig
	Target string `cli:"name=t aliases=target desc='target version'"`

	Migrate *cli.Command
}

func runMigrate(cfg *MigrateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Migrate.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Target == "" {
		return fmt.Errorf("%w: a target version (-t) is required", cli.ErrUsage)
	}
	mgr, err := cfg.manager()
	if err != nil {
		return err
	}
	known := mgr.KnownVersions()
	if _, ok := slices.BinarySearchFunc(known, cfg.Target, version.Compare); !ok {
		return fmt.Errorf("unknown target version %q (known: %v)", cfg.Target, known)
	}
	file := ""
	if len(args) > 0 {
		file = args[0]
	}
	d, err := readDoc(file)
	if err != nil {
		return err
	}
	if declared, ok := d.Version(); !ok {
		return fmt.Errorf("document has no version field")
	} else if _, ok := slices.BinarySearchFunc(known, declared, version.Compare); !ok {
		return fmt.Errorf("unknown document version %q (known: %v)", declared, known)
	}
	out, err := mgr.Migrate(d, cfg.Target)
	if err != nil {
		return err
	}
	return cfg.writeDoc(cc.Out, out)
}
