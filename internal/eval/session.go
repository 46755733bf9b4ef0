package eval

import (
	"github.com/breeze-lang/breeze/internal/ast"
	"github.com/breeze-lang/breeze/internal/module"
	"github.com/breeze-lang/breeze/internal/value"
)

// Session is a REPL-facing evaluator: one ad hoc Module sharing a single
// persistent Stack across successive lines, instead of the fresh
// per-module Stack a full Run builds.
type Session struct {
	eval *Evaluator
}

// NewSession builds a Session around builtins, pushing the built-ins Scope
// and one initial Scope onto a fresh Stack exactly as Run does for a single
// module, except the Scope is never popped between lines.
func NewSession(builtins *value.Scope) *Session {
	m := &module.Module{AbsPath: "<repl>", Exports: value.NewScope()}
	m.Stack = value.NewStack()
	m.Stack.PushScope(builtins)
	m.Stack.Push()

	return &Session{eval: &Evaluator{
		builtins: builtins,
		registry: module.NewRegistry(),
		module:   m,
		stack:    m.Stack,
	}}
}

// Eval executes prog's statements at depth 0 against the session's
// persistent Stack. A trailing expression statement's Container is
// returned for the REPL to print; any other final statement yields nil.
func (s *Session) Eval(prog *ast.Program) (*value.Container, error) {
	var last *value.Container
	for _, stmt := range prog.Stmts {
		if es, ok := stmt.(*ast.ExpressionStmt); ok {
			c, err := s.eval.evalExpr(es.Expr)
			if err != nil {
				return nil, err
			}
			last = c
			continue
		}
		if _, err := s.eval.execStmt(stmt, 0); err != nil {
			return nil, err
		}
		last = nil
	}
	return last, nil
}
