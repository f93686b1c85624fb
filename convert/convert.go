package convert

import (
	"github.com/jcooke22/json/doc"
)

// Converter encodes domain values into documents and decodes documents
// into domain values. Decode fills the value pointed to by v, in the
// manner of json.Unmarshal.
type Converter interface {
	Encode(v any, opts ...Option) (doc.Doc, error)
	Decode(d doc.Doc, v any) error
}

// Option configures a single Encode call.
type Option func(*encState)

type encState struct {
	targetVersion string
}

// TargetVersion requests that the encoded document be migrated to the
// given version before it is returned. The default is the encoding
// converter's current version. Converters without version awareness
// ignore it.
func TargetVersion(v string) Option {
	return func(es *encState) { es.targetVersion = v }
}

func stateFromOpts(opts []Option) *encState {
	es := &encState{}
	for _, opt := range opts {
		opt(es)
	}
	return es
}
