package migrate

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// stepDef is one entry of a step set definition:
//
//	steps:
//	  - from: "1.0"
//	    to: "2.0"
//	    forward:
//	      - {op: move, from: /name, path: /title}
//	    backward:
//	      - {op: move, from: /title, path: /name}
//
// forward and backward are RFC 6902 patches; backward is optional and
// its absence makes the step irreversible.
type stepDef struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Forward  json.RawMessage `json:"forward"`
	Backward json.RawMessage `json:"backward,omitempty"`
}

type stepFile struct {
	Steps []stepDef `json:"steps"`
}

// LoadSteps parses a YAML or JSON step set definition into patch-backed
// Migrations, ready for NewManager.
func LoadSteps(data []byte) ([]Migration, error) {
	jdata, err := yaml.YAMLToJSON(data)
	if err != nil {
		return nil, fmt.Errorf("bad step set: %w", err)
	}
	var f stepFile
	if err := json.Unmarshal(jdata, &f); err != nil {
		return nil, fmt.Errorf("bad step set: %w", err)
	}
	if len(f.Steps) == 0 {
		return nil, fmt.Errorf("step set defines no steps")
	}
	steps := make([]Migration, 0, len(f.Steps))
	for i, def := range f.Steps {
		if def.From == "" || def.To == "" {
			return nil, fmt.Errorf("step %d: from and to versions are required", i)
		}
		if def.Forward == nil {
			return nil, fmt.Errorf("step %d (%s -> %s): forward patch is required", i, def.From, def.To)
		}
		step, err := PatchFromJSON(def.From, def.To, def.Forward, def.Backward)
		if err != nil {
			return nil, fmt.Errorf("step %d: %w", i, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// LoadStepsFile reads a step set definition from path.
func LoadStepsFile(path string) ([]Migration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	steps, err := LoadSteps(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return steps, nil
}
