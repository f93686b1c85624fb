package convert

import (
	"fmt"
	"slices"

	"github.com/jcooke22/json/debug"
	"github.com/jcooke22/json/doc"
	"github.com/jcooke22/json/migrate"
	"github.com/jcooke22/json/version"
)

// Migrating is a version-aware Converter. It wraps an inner converter
// fixed to one current version and bridges version differences with a
// migrate.Manager: decoded documents are first migrated up (or down) to
// the current version, and encoded documents are migrated to the target
// version requested with TargetVersion.
//
// The instance is immutable after NewMigrating and safe for concurrent
// use; the documents passed to a call are owned by that call.
type Migrating struct {
	inner   Converter
	current string
	mgr     *migrate.Manager
	known   []string
}

// NewMigrating wraps inner, which encodes and decodes documents of
// version current, with the migrations held by mgr. The known-versions
// set is computed here, once: mgr's known versions plus current.
func NewMigrating(inner Converter, current string, mgr *migrate.Manager) *Migrating {
	known := mgr.KnownVersions()
	known = version.Insert(known, current)
	return &Migrating{
		inner:   inner,
		current: current,
		mgr:     mgr,
		known:   known,
	}
}

// CurrentVersion returns the version the inner converter works in.
func (c *Migrating) CurrentVersion() string {
	return c.current
}

// KnownVersions returns the sorted versions this converter can read and
// write.
func (c *Migrating) KnownVersions() []string {
	res := make([]string, len(c.known))
	copy(res, c.known)
	return res
}

func (c *Migrating) knows(v string) bool {
	_, found := slices.BinarySearchFunc(c.known, v, version.Compare)
	return found
}

// Encode converts v to a document of the requested target version. The
// target is validated before the inner converter runs, so an unknown
// target performs no work at all. Migration failures surface as a
// *ConversionError wrapping the *migrate.Error cause.
func (c *Migrating) Encode(v any, opts ...Option) (doc.Doc, error) {
	es := stateFromOpts(opts)
	target := es.targetVersion
	if target == "" {
		target = c.current
	}
	if !c.knows(target) {
		return nil, &UnsupportedVersionError{Version: target, Known: c.KnownVersions()}
	}
	d, err := c.inner.Encode(v)
	if err != nil {
		return nil, err
	}
	d, err = doc.FromAny(d)
	if err != nil {
		return nil, &ConversionError{Message: "inner converter produced no document", Err: err}
	}
	d.SetVersion(c.current)
	if target == c.current {
		return d, nil
	}
	if debug.Convert() {
		debug.Logf("encode: migrating %s -> %s\n", c.current, target)
	}
	d, err = c.mgr.Migrate(d, target)
	if err != nil {
		return nil, &ConversionError{
			Message: fmt.Sprintf("cannot migrate document to version %s", target),
			Err:     err,
		}
	}
	return d, nil
}

// Decode converts d, whose declared version may be any known version,
// into v. Unlike Encode, migration failures propagate as *migrate.Error
// without translation.
func (c *Migrating) Decode(d doc.Doc, v any) error {
	d, err := doc.FromAny(d)
	if err != nil {
		return &ConversionError{Message: "malformed document", Err: err}
	}
	declared, ok := d.Version()
	if !ok {
		return &ConversionError{Message: "missing version property"}
	}
	if !c.knows(declared) {
		return &UnsupportedVersionError{Version: declared, Known: c.KnownVersions()}
	}
	if declared != c.current {
		if debug.Convert() {
			debug.Logf("decode: migrating %s -> %s\n", declared, c.current)
		}
		d, err = c.mgr.Migrate(d, c.current)
		if err != nil {
			return err
		}
	}
	return c.inner.Decode(d, v)
}
