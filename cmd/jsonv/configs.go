package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/jcooke22/json/doc"
	"github.com/jcooke22/json/migrate"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"
)

type MainConfig struct {
	Steps string `cli:"name=s aliases=steps desc='migration step set file (yaml or json)'"`
	Y     bool   `cli:"name=y aliases=yaml desc='write output as yaml'"`
	Color bool   `cli:"name=color desc='force colored diff output'"`

	Main *cli.Command
}

func (cfg *MainConfig) manager() (*migrate.Manager, error) {
	if cfg.Steps == "" {
		return nil, fmt.Errorf("%w: a step set file (-s) is required", cli.ErrUsage)
	}
	steps, err := migrate.LoadStepsFile(cfg.Steps)
	if err != nil {
		return nil, err
	}
	return migrate.NewManager(steps...)
}

// readDoc reads a JSON or YAML document from file, or stdin when file
// is "-" or empty.
func readDoc(file string) (doc.Doc, error) {
	var (
		r    io.Reader = os.Stdin
		name           = "stdin"
	)
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
		name = file
	}
	in, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", name, err)
	}
	jdata, err := yaml.YAMLToJSON(in)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	d, err := doc.Parse(jdata)
	if err != nil {
		return nil, fmt.Errorf("error decoding %s: %w", name, err)
	}
	return d, nil
}

func (cfg *MainConfig) writeDoc(w io.Writer, d doc.Doc) error {
	var (
		out []byte
		err error
	)
	if cfg.Y {
		out, err = yaml.Marshal(map[string]any(d))
	} else {
		out, err = json.MarshalIndent(map[string]any(d), "", "  ")
	}
	if err != nil {
		return fmt.Errorf("error encoding result: %w", err)
	}
	if _, err := w.Write(out); err != nil {
		return err
	}
	if !cfg.Y {
		_, err = w.Write([]byte("\n"))
	}
	return err
}
