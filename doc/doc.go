// Package doc holds the generic document model: an open JSON object
// carrying a distinguished "version" field. Documents flow through the
// migrate and convert packages by value of this type; nothing here is
// tied to any particular schema.
package doc

import (
	"encoding/json"
	"errors"
	"fmt"
)

// VersionField is the key under which a document declares its version.
const VersionField = "version"

var ErrNotObject = errors.New("document is not an object")

// Doc is a JSON object with arbitrary JSON-compatible values.
type Doc map[string]any

// Version returns the document's declared version. A missing or
// non-string version field reads as absent.
func (d Doc) Version() (string, bool) {
	v, ok := d[VersionField].(string)
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// SetVersion stamps the document's version field.
func (d Doc) SetVersion(v string) {
	d[VersionField] = v
}

// Clone returns a deep copy of the document. Maps and slices are copied
// recursively; scalars are shared.
func (d Doc) Clone() Doc {
	if d == nil {
		return nil
	}
	return Doc(cloneMap(d))
}

func cloneMap(m map[string]any) map[string]any {
	dst := make(map[string]any, len(m))
	for k, v := range m {
		dst[k] = cloneValue(v)
	}
	return dst
}

func cloneValue(v any) any {
	switch x := v.(type) {
	case Doc:
		return x.Clone()
	case map[string]any:
		return cloneMap(x)
	case []any:
		dst := make([]any, len(x))
		for i, e := range x {
			dst[i] = cloneValue(e)
		}
		return dst
	default:
		return x
	}
}

// FromAny checks that v is a well formed document object. Scalars,
// arrays, and nil fail with ErrNotObject.
func FromAny(v any) (Doc, error) {
	switch x := v.(type) {
	case Doc:
		if x == nil {
			return nil, ErrNotObject
		}
		return x, nil
	case map[string]any:
		if x == nil {
			return nil, ErrNotObject
		}
		return Doc(x), nil
	case nil:
		return nil, ErrNotObject
	default:
		return nil, fmt.Errorf("%w: %T", ErrNotObject, v)
	}
}

// Parse decodes data as a JSON object document.
func Parse(data []byte) (Doc, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return FromAny(v)
}

// MarshalTo serializes the document as JSON.
func (d Doc) MarshalTo() ([]byte, error) {
	return json.Marshal(map[string]any(d))
}
