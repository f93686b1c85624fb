package convert

import (
	"encoding/json"

	"github.com/jcooke22/json/doc"
)

// Reflect returns a Converter bridging Go values and documents through
// their JSON form. Field names and shapes follow encoding/json struct
// tags. The converter is stateless and version-unaware.
func Reflect() Converter {
	return reflectConverter{}
}

type reflectConverter struct{}

func (reflectConverter) Encode(v any, _ ...Option) (doc.Doc, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &ConversionError{Message: "cannot marshal value", Err: err}
	}
	var raw any
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, &ConversionError{Message: "cannot build document", Err: err}
	}
	d, err := doc.FromAny(raw)
	if err != nil {
		return nil, &ConversionError{Message: "value does not encode to an object", Err: err}
	}
	return d, nil
}

func (reflectConverter) Decode(d doc.Doc, v any) error {
	data, err := d.MarshalTo()
	if err != nil {
		return &ConversionError{Message: "cannot marshal document", Err: err}
	}
	if err := json.Unmarshal(data, v); err != nil {
		return &ConversionError{Message: "cannot decode document", Err: err}
	}
	return nil
}
