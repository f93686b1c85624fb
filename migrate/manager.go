package migrate

import (
	"fmt"

	"github.com/jcooke22/json/debug"
	"github.com/jcooke22/json/doc"
	"github.com/jcooke22/json/version"
)

// Manager holds a registered set of Migrations and runs directed
// migrations along the chain they form. It is immutable after NewManager
// and safe for concurrent use, as long as callers do not share a single
// document across concurrent calls.
type Manager struct {
	steps    []Migration
	bySource map[string]Migration
	byTarget map[string]Migration
	known    []string
}

// NewManager registers the given steps. Registration fails when a step
// declares equal source and target, or when two steps share a source or
// a target: either would make the direction of the chain ambiguous.
// Whether the steps form a contiguous chain is not checked here; a gap
// surfaces as an *Error from Migrate at call time.
func NewManager(steps ...Migration) (*Manager, error) {
	m := &Manager{
		steps:    steps,
		bySource: make(map[string]Migration, len(steps)),
		byTarget: make(map[string]Migration, len(steps)),
	}
	for _, s := range steps {
		src, tgt := s.Source(), s.Target()
		if src == "" || tgt == "" {
			return nil, fmt.Errorf("migration must declare source and target versions")
		}
		if version.Compare(src, tgt) == 0 {
			return nil, fmt.Errorf("migration %s -> %s has equal source and target", src, tgt)
		}
		if prev, ok := m.bySource[src]; ok {
			return nil, fmt.Errorf("conflicting migrations from version %s (%s -> %s and %s -> %s)",
				src, prev.Source(), prev.Target(), src, tgt)
		}
		if prev, ok := m.byTarget[tgt]; ok {
			return nil, fmt.Errorf("conflicting migrations to version %s (%s -> %s and %s -> %s)",
				tgt, prev.Source(), prev.Target(), src, tgt)
		}
		m.bySource[src] = s
		m.byTarget[tgt] = s
		m.known = version.Insert(m.known, src)
		m.known = version.Insert(m.known, tgt)
	}
	return m, nil
}

// KnownVersions returns the sorted, de-duplicated versions appearing as
// a source or target of any registered step.
func (m *Manager) KnownVersions() []string {
	res := make([]string, len(m.known))
	copy(res, m.known)
	return res
}

// Migrate transforms d from its declared version to target by applying
// the chain of registered steps in between, forward when the declared
// version orders before target and in reverse otherwise. The version
// field is stamped after every applied step, so on failure the document
// is left at the last version it actually reached. When the declared
// version equals target the document is returned unchanged.
//
// Both versions must be known; the caller validates that.
func (m *Manager) Migrate(d doc.Doc, target string) (doc.Doc, error) {
	cur, ok := d.Version()
	if !ok {
		return nil, &Error{Target: target, Message: "document has no version field"}
	}
	for version.Compare(cur, target) != 0 {
		var (
			step Migration
			next string
		)
		if version.Less(cur, target) {
			step = m.bySource[cur]
			if step == nil {
				return nil, &Error{Source: cur, Target: target,
					Message: fmt.Sprintf("no migration from version %s", cur)}
			}
			next = step.Target()
			if !version.Less(cur, next) || version.Less(target, next) {
				return nil, &Error{Source: cur, Target: target,
					Message: fmt.Sprintf("migration chain skips version %s", target)}
			}
		} else {
			step = m.byTarget[cur]
			if step == nil {
				return nil, &Error{Source: cur, Target: target,
					Message: fmt.Sprintf("no migration to version %s", cur)}
			}
			next = step.Source()
			if !version.Less(next, cur) || version.Less(next, target) {
				return nil, &Error{Source: cur, Target: target,
					Message: fmt.Sprintf("migration chain skips version %s", target)}
			}
		}
		if debug.Migrate() {
			debug.Logf("migrate step %s -> %s on %v\n", cur, next, d)
		}
		var err error
		if version.Less(cur, target) {
			d, err = step.Apply(d)
		} else {
			d, err = step.Reverse(d)
		}
		if err != nil {
			if merr, ok := err.(*Error); ok {
				return nil, merr
			}
			return nil, &Error{Source: step.Source(), Target: step.Target(),
				Message: "migration step failed", Err: err}
		}
		d.SetVersion(next)
		cur = next
	}
	return d, nil
}
