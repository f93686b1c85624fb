package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

type DiffConfig struct {
	*MainConfig
	Target string `cli:"name=t aliases=target desc='target version'"`

	Diff *cli.Command
}

func runDiff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
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
	file := ""
	if len(args) > 0 {
		file = args[0]
	}
	d, err := readDoc(file)
	if err != nil {
		return err
	}
	before, err := json.MarshalIndent(map[string]any(d), "", "  ")
	if err != nil {
		return err
	}
	migrated, err := mgr.Migrate(d.Clone(), cfg.Target)
	if err != nil {
		return err
	}
	after, err := json.MarshalIndent(map[string]any(migrated), "", "  ")
	if err != nil {
		return err
	}
	diffCfg := diffpatch.New()
	diffs := diffCfg.DiffMain(string(before), string(after), false)
	diffs = diffCfg.DiffCleanupSemantic(diffs)
	colored := cfg.Color || isatty.IsTerminal(os.Stdout.Fd())
	for _, diff := range diffs {
		switch diff.Type {
		case diffpatch.DiffInsert:
			if colored {
				fmt.Fprint(cc.Out, color.GreenString("%s", diff.Text))
			} else {
				fmt.Fprintf(cc.Out, "{+%s+}", diff.Text)
			}
		case diffpatch.DiffDelete:
			if colored {
				fmt.Fprint(cc.Out, color.RedString("%s", diff.Text))
			} else {
				fmt.Fprintf(cc.Out, "[-%s-]", diff.Text)
			}
		case diffpatch.DiffEqual:
			fmt.Fprint(cc.Out, diff.Text)
		}
	}
	fmt.Fprintln(cc.Out)
	return nil
}
