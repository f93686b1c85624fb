package convert

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/jcooke22/json/doc"
	"github.com/jcooke22/json/migrate"
)

// spyConverter counts delegations and records the document it was asked
// to decode.
type spyConverter struct {
	encodes    int
	decodes    int
	encodeDoc  doc.Doc
	lastDecode doc.Doc
}

func (s *spyConverter) Encode(v any, _ ...Option) (doc.Doc, error) {
	s.encodes++
	return s.encodeDoc.Clone(), nil
}

func (s *spyConverter) Decode(d doc.Doc, v any) error {
	s.decodes++
	s.lastDecode = d.Clone()
	return nil
}

// chainManager registers 1.0 -> 2.0 (name/title rename) and 2.0 -> 3.0
// (adds kind), logging each applied step.
func chainManager(t *testing.T, log *[]string) *migrate.Manager {
	t.Helper()
	rename, err := migrate.PatchFromJSON("1.0", "2.0",
		[]byte(`[{"op": "move", "from": "/name", "path": "/title"}]`),
		[]byte(`[{"op": "move", "from": "/title", "path": "/name"}]`))
	if err != nil {
		t.Fatal(err)
	}
	logged := func(step migrate.Migration) migrate.Migration {
		return migrate.Func(step.Source(), step.Target(),
			func(d doc.Doc) (doc.Doc, error) {
				*log = append(*log, step.Source()+"->"+step.Target())
				return step.Apply(d)
			},
			func(d doc.Doc) (doc.Doc, error) {
				*log = append(*log, step.Target()+"->"+step.Source())
				return step.Reverse(d)
			})
	}
	addKind, err := migrate.PatchFromJSON("2.0", "3.0",
		[]byte(`[{"op": "add", "path": "/kind", "value": "note"}]`),
		[]byte(`[{"op": "remove", "path": "/kind"}]`))
	if err != nil {
		t.Fatal(err)
	}
	mgr, err := migrate.NewManager(logged(rename), logged(addKind))
	if err != nil {
		t.Fatal(err)
	}
	return mgr
}

func TestKnownVersionsIncludeCurrent(t *testing.T) {
	var log []string
	mgr := chainManager(t, &log)

	c := NewMigrating(&spyConverter{}, "4.0", mgr)
	want := []string{"1.0", "2.0", "3.0", "4.0"}
	if diff := cmp.Diff(want, c.KnownVersions()); diff != "" {
		t.Errorf("KnownVersions mismatch (-want +got):\n%s", diff)
	}

	// a current version covered by the chain is not duplicated
	c = NewMigrating(&spyConverter{}, "3.0", mgr)
	want = []string{"1.0", "2.0", "3.0"}
	if diff := cmp.Diff(want, c.KnownVersions()); diff != "" {
		t.Errorf("KnownVersions mismatch (-want +got):\n%s", diff)
	}
}

func TestEncodeUnsupportedTargetFailsFast(t *testing.T) {
	var log []string
	spy := &spyConverter{encodeDoc: doc.Doc{"title": "x"}}
	c := NewMigrating(spy, "3.0", chainManager(t, &log))

	_, err := c.Encode(struct{}{}, TargetVersion("9.9"))
	var uerr *UnsupportedVersionError
	if !errors.As(err, &uerr) {
		t.Fatalf("Encode = %v, want *UnsupportedVersionError", err)
	}
	if uerr.Version != "9.9" {
		t.Errorf("offending version = %q, want 9.9", uerr.Version)
	}
	if diff := cmp.Diff([]string{"1.0", "2.0", "3.0"}, uerr.Known); diff != "" {
		t.Errorf("known list mismatch (-want +got):\n%s", diff)
	}
	if spy.encodes != 0 {
		t.Errorf("inner converter ran %d times before validation", spy.encodes)
	}
}

func TestEncodeDefaultsToCurrent(t *testing.T) {
	var log []string
	spy := &spyConverter{encodeDoc: doc.Doc{"title": "x", "kind": "note"}}
	c := NewMigrating(spy, "3.0", chainManager(t, &log))

	d, err := c.Encode(struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Version(); v != "3.0" {
		t.Errorf("version = %q, want current version 3.0", v)
	}
	if len(log) != 0 {
		t.Errorf("migration ran for current-version encode: %v", log)
	}
}

func TestEncodeMigratesDown(t *testing.T) {
	var log []string
	spy := &spyConverter{encodeDoc: doc.Doc{"title": "x", "kind": "note"}}
	c := NewMigrating(spy, "3.0", chainManager(t, &log))

	d, err := c.Encode(struct{}{}, TargetVersion("1.0"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"3.0->2.0", "2.0->1.0"}, log); diff != "" {
		t.Errorf("reverse step order mismatch (-want +got):\n%s", diff)
	}
	want := doc.Doc{"version": "1.0", "name": "x"}
	if diff := cmp.Diff(want, d); diff != "" {
		t.Errorf("encoded document mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeMigratesUp(t *testing.T) {
	var log []string
	spy := &spyConverter{}
	c := NewMigrating(spy, "3.0", chainManager(t, &log))

	err := c.Decode(doc.Doc{"version": "1.0", "name": "x"}, &struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{"1.0->2.0", "2.0->3.0"}, log); diff != "" {
		t.Errorf("step order mismatch (-want +got):\n%s", diff)
	}
	if spy.decodes != 1 {
		t.Fatalf("inner decode ran %d times, want 1", spy.decodes)
	}
	want := doc.Doc{"version": "3.0", "title": "x", "kind": "note"}
	if diff := cmp.Diff(want, spy.lastDecode); diff != "" {
		t.Errorf("delegated document mismatch (-want +got):\n%s", diff)
	}
}

func TestDecodeValidation(t *testing.T) {
	var log []string
	spy := &spyConverter{}
	c := NewMigrating(spy, "3.0", chainManager(t, &log))

	t.Run("missing version", func(t *testing.T) {
		err := c.Decode(doc.Doc{"title": "x"}, &struct{}{})
		var cerr *ConversionError
		if !errors.As(err, &cerr) {
			t.Fatalf("Decode = %v, want *ConversionError", err)
		}
	})
	t.Run("unknown version", func(t *testing.T) {
		err := c.Decode(doc.Doc{"version": "9.9"}, &struct{}{})
		var uerr *UnsupportedVersionError
		if !errors.As(err, &uerr) {
			t.Fatalf("Decode = %v, want *UnsupportedVersionError", err)
		}
		if uerr.Version != "9.9" {
			t.Errorf("offending version = %q, want 9.9", uerr.Version)
		}
	})
	t.Run("nil document", func(t *testing.T) {
		err := c.Decode(nil, &struct{}{})
		var cerr *ConversionError
		if !errors.As(err, &cerr) {
			t.Fatalf("Decode = %v, want *ConversionError", err)
		}
	})
	if spy.decodes != 0 {
		t.Errorf("inner decode ran %d times on invalid input", spy.decodes)
	}
}

// Encode translates migration failures into *ConversionError; Decode
// lets the *migrate.Error through untouched. The asymmetry is part of
// the contract.
func TestMigrationErrorAsymmetry(t *testing.T) {
	step, err := migrate.PatchFromJSON("1.0", "2.0",
		[]byte(`[{"op": "add", "path": "/kind", "value": "note"}]`),
		[]byte(`[{"op": "remove", "path": "/kind"}]`))
	if err != nil {
		t.Fatal(err)
	}
	mgr, err := migrate.NewManager(step)
	if err != nil {
		t.Fatal(err)
	}
	// the chain stops at 2.0, the converter lives at 3.0
	spy := &spyConverter{encodeDoc: doc.Doc{"title": "x"}}
	c := NewMigrating(spy, "3.0", mgr)

	_, err = c.Encode(struct{}{}, TargetVersion("1.0"))
	var cerr *ConversionError
	if !errors.As(err, &cerr) {
		t.Fatalf("Encode = %v, want *ConversionError", err)
	}
	var merr *migrate.Error
	if !errors.As(err, &merr) {
		t.Errorf("Encode error %v does not wrap the *migrate.Error cause", err)
	}

	err = c.Decode(doc.Doc{"version": "1.0"}, &struct{}{})
	if !errors.As(err, &merr) {
		t.Fatalf("Decode = %v, want *migrate.Error", err)
	}
	if errors.As(err, &cerr) {
		t.Errorf("Decode error %v is wrapped in *ConversionError", err)
	}
}

func TestRoundTrip(t *testing.T) {
	type note struct {
		Title string `json:"title"`
		Kind  string `json:"kind"`
	}
	var log []string
	c := NewMigrating(Reflect(), "3.0", chainManager(t, &log))

	in := doc.Doc{"version": "1.0", "name": "hello"}
	var n note
	if err := c.Decode(in.Clone(), &n); err != nil {
		t.Fatal(err)
	}
	if n.Title != "hello" || n.Kind != "note" {
		t.Fatalf("decoded note = %+v", n)
	}
	out, err := c.Encode(n, TargetVersion("1.0"))
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestNestedMigrating(t *testing.T) {
	// a Migrating converter is itself a Converter and can be wrapped
	var log []string
	inner := NewMigrating(&spyConverter{encodeDoc: doc.Doc{"title": "x", "kind": "note"}}, "3.0", chainManager(t, &log))
	empty, err := migrate.NewManager()
	if err != nil {
		t.Fatal(err)
	}
	outer := NewMigrating(inner, "3.0", empty)
	d, err := outer.Encode(struct{}{})
	if err != nil {
		t.Fatal(err)
	}
	if v, _ := d.Version(); v != "3.0" {
		t.Errorf("version = %q, want 3.0", v)
	}
}
