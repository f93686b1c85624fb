package migrate

import (
	"slices"

	"github.com/jcooke22/json/doc"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Expr returns a Migration whose transforms are field assignments
// computed by expr programs. Each map entry names a top-level field and
// an expression evaluated with the document as environment; the field is
// set to the result, or deleted when the result is nil. Programs are
// compiled here, so a bad expression fails at construction rather than
// on first use. A nil down map makes the step irreversible.
func Expr(source, target string, up, down map[string]string) (Migration, error) {
	upProgs, err := compileAssignments(source, target, up)
	if err != nil {
		return nil, err
	}
	downProgs, err := compileAssignments(source, target, down)
	if err != nil {
		return nil, err
	}
	return &exprStep{source: source, target: target, up: upProgs, down: downProgs}, nil
}

func compileAssignments(source, target string, exprs map[string]string) (map[string]*vm.Program, error) {
	if exprs == nil {
		return nil, nil
	}
	progs := make(map[string]*vm.Program, len(exprs))
	for field, src := range exprs {
		prog, err := expr.Compile(src, expr.AllowUndefinedVariables())
		if err != nil {
			return nil, &Error{Source: source, Target: target,
				Message: "bad expression for field " + field, Err: err}
		}
		progs[field] = prog
	}
	return progs, nil
}

type exprStep struct {
	source, target string
	up, down       map[string]*vm.Program
}

func (s *exprStep) Source() string { return s.source }
func (s *exprStep) Target() string { return s.target }

func (s *exprStep) Apply(d doc.Doc) (doc.Doc, error) {
	return s.assign(d, s.up)
}

func (s *exprStep) Reverse(d doc.Doc) (doc.Doc, error) {
	if s.down == nil {
		return nil, &Error{Source: s.source, Target: s.target, Message: "step is not reversible"}
	}
	return s.assign(d, s.down)
}

// assign evaluates every program against a snapshot of the incoming
// document, so assignments see the pre-step values regardless of order.
func (s *exprStep) assign(d doc.Doc, progs map[string]*vm.Program) (doc.Doc, error) {
	env := map[string]any(d.Clone())
	fields := make([]string, 0, len(progs))
	for field := range progs {
		fields = append(fields, field)
	}
	slices.Sort(fields)
	for _, field := range fields {
		out, err := expr.Run(progs[field], env)
		if err != nil {
			return nil, &Error{Source: s.source, Target: s.target,
				Message: "expression for field " + field + " failed", Err: err}
		}
		if out == nil {
			delete(d, field)
			continue
		}
		d[field] = out
	}
	return d, nil
}
