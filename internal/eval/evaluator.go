// Package eval implements the tree-walking Evaluator: module lifecycle,
// statement execution with depth tracking, expression evaluation against
// the Container/Scope/Stack substrate, and the function call contract,
// using a type-switch dispatcher over the module graph and
// capability-tagged values.
package eval

import (
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/module"
	"github.com/breeze-lang/breeze/internal/source"
	"github.com/breeze-lang/breeze/internal/value"
)

// Evaluator walks one module's AST at a time. module/stack are swapped as
// execution moves between modules and, during a call, into a function's
// closure Stack, saving and restoring the field around each call.
type Evaluator struct {
	builtins *value.Scope
	registry *module.Registry
	cfg      source.Config

	module *module.Module
	stack  *value.Stack
}

// New builds an Evaluator around an already-populated built-ins Scope
//, to be shared by reference across every module.
func New(builtins *value.Scope) *Evaluator {
	return &Evaluator{builtins: builtins}
}

// Run executes sorted (the C4 topological order) against reg and cfg.
// A runtime-phase failure aborts only the module in which it occurred
//; every other module still runs, and every failure is
// collected into the returned Report.
func (e *Evaluator) Run(reg *module.Registry, sorted []*module.Module, cfg source.Config) *apperrors.Report {
	e.registry = reg
	e.cfg = cfg

	// loadModules
	for _, m := range sorted {
		m.Stack = value.NewStack()
		m.Exports = value.NewScope()
	}
	// registerBuiltins: append the shared Scope, by reference, to every
	// module's Stack (step 2).
	for _, m := range sorted {
		m.Stack.PushScope(e.builtins)
	}

	report := &apperrors.Report{}
	for _, m := range sorted {
		e.module = m
		e.stack = m.Stack
		e.stack.Push()
		for _, stmt := range m.AST.Stmts {
			if _, err := e.execStmt(stmt, 0); err != nil {
				report.Add(asSourceError(err))
				break
			}
		}
		e.stack.Pop()
	}
	return report
}

// asSourceError normalizes any error surfaced from statement/expression
// evaluation into the diagnostic shape the rest of the pipeline uses.
func asSourceError(err error) *apperrors.SourceError {
	if se, ok := err.(*apperrors.SourceError); ok {
		return se
	}
	return apperrors.New(apperrors.ExpressionError, "%v", err)
}
