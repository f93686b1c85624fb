package migrate

import (
	"fmt"

	"github.com/jcooke22/json/doc"
)

// Migration is one step between two adjacent versions. Implementations
// are immutable values: constructed once, registered with a Manager, and
// never mutated. Apply transforms a document from Source to Target;
// Reverse transforms it back. A step may return the document it was
// given, mutated, or a replacement.
type Migration interface {
	Source() string
	Target() string
	Apply(d doc.Doc) (doc.Doc, error)
	Reverse(d doc.Doc) (doc.Doc, error)
}

// Error reports a failed or impossible migration. Source and Target
// identify the step (or requested span) that failed; Err carries the
// underlying step failure, if any.
type Error struct {
	Source  string
	Target  string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "migration failed"
	}
	if e.Source != "" || e.Target != "" {
		msg = fmt.Sprintf("%s (%s -> %s)", msg, e.Source, e.Target)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Func returns a Migration backed by plain transform functions. A nil
// down makes the step irreversible: Reverse fails with an *Error.
func Func(source, target string, up, down func(doc.Doc) (doc.Doc, error)) Migration {
	return &funcStep{source: source, target: target, up: up, down: down}
}

type funcStep struct {
	source, target string
	up, down       func(doc.Doc) (doc.Doc, error)
}

func (s *funcStep) Source() string { return s.source }
func (s *funcStep) Target() string { return s.target }

func (s *funcStep) Apply(d doc.Doc) (doc.Doc, error) {
	if s.up == nil {
		return nil, &Error{Source: s.source, Target: s.target, Message: "no forward transform"}
	}
	return s.up(d)
}

func (s *funcStep) Reverse(d doc.Doc) (doc.Doc, error) {
	if s.down == nil {
		return nil, &Error{Source: s.source, Target: s.target, Message: "step is not reversible"}
	}
	return s.down(d)
}
