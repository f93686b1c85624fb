package migrate

import (
	"github.com/jcooke22/json/doc"

	jsonpatch "github.com/evanphx/json-patch"
)

// Patch returns a Migration whose transforms are RFC 6902 JSON patches.
// A nil backward patch makes the step irreversible.
func Patch(source, target string, forward, backward jsonpatch.Patch) Migration {
	return &patchStep{source: source, target: target, forward: forward, backward: backward}
}

// PatchFromJSON decodes forward and backward patch documents and returns
// the resulting step. backward may be nil for an irreversible step.
func PatchFromJSON(source, target string, forward, backward []byte) (Migration, error) {
	fwd, err := jsonpatch.DecodePatch(forward)
	if err != nil {
		return nil, &Error{Source: source, Target: target, Message: "bad forward patch", Err: err}
	}
	var bwd jsonpatch.Patch
	if backward != nil {
		bwd, err = jsonpatch.DecodePatch(backward)
		if err != nil {
			return nil, &Error{Source: source, Target: target, Message: "bad backward patch", Err: err}
		}
	}
	return Patch(source, target, fwd, bwd), nil
}

type patchStep struct {
	source, target    string
	forward, backward jsonpatch.Patch
}

func (s *patchStep) Source() string { return s.source }
func (s *patchStep) Target() string { return s.target }

func (s *patchStep) Apply(d doc.Doc) (doc.Doc, error) {
	return s.patch(d, s.forward)
}

func (s *patchStep) Reverse(d doc.Doc) (doc.Doc, error) {
	if s.backward == nil {
		return nil, &Error{Source: s.source, Target: s.target, Message: "step is not reversible"}
	}
	return s.patch(d, s.backward)
}

// patch round-trips the document through its JSON form, since json-patch
// operates on serialized documents.
func (s *patchStep) patch(d doc.Doc, p jsonpatch.Patch) (doc.Doc, error) {
	data, err := d.MarshalTo()
	if err != nil {
		return nil, err
	}
	out, err := p.Apply(data)
	if err != nil {
		return nil, err
	}
	return doc.Parse(out)
}
