package debug

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/jcooke22/json/doc"
)

// Logf writes a debug line to stderr, pretty-printing document-shaped
// arguments (documents, maps, slices) as indented JSON.
func Logf(msg string, args ...any) {
	for i := range args {
		a := args[i]
		switch x := a.(type) {
		case doc.Doc:
			args[i] = indented(map[string]any(x))
		case map[string]any, []any, json.Number:
			args[i] = indented(a)
		case bool, string, float64, int:

		default:
		}
	}
	fmt.Fprintf(os.Stderr, msg, args...)
}

func indented(a any) string {
	d, err := json.MarshalIndent(a, "   |", "  ")
	if err != nil {
		return fmt.Sprintf("%v", a)
	}
	return string(d)
}
