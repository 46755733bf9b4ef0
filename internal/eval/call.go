package eval

import (
	"github.com/breeze-lang/breeze/internal/ast"
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/value"
)

// buildFunction wraps decl into a first-class Function value whose closure
// is a reference to the Stack in scope where the declaration executes
//, so later mutations of the defining
// scope are visible the next time the function is called.
func (e *Evaluator) buildFunction(decl *ast.FunctionDecl) *value.Function {
	closure := e.stack
	fn := &value.Function{Name: decl.Name, Arity: len(decl.Params), Closure: closure}
	fn.Call = func(args []*value.Container) (*value.Container, error) {
		return e.callUserFunction(decl, closure, args)
	}
	return fn
}

// callUserFunction binds arguments against parameters (applying defaults for
// omitted optional ones), pushes a fresh scope chained onto the function's
// captured closure, executes the body, and unwraps any return value.
func (e *Evaluator) callUserFunction(decl *ast.FunctionDecl, closure *value.Stack, args []*value.Container) (*value.Container, error) {
	for _, a := range args {
		if _, err := a.Read(); err != nil {
			return nil, apperrors.NewAt(apperrors.TypeError, decl.Position, "argument to %s is not readable: %v", decl.Name, err)
		}
	}

	required := 0
	seenOptional := false
	for _, p := range decl.Params {
		if p.Default == nil {
			if seenOptional {
				return nil, apperrors.NewAt(apperrors.ParameterError, decl.Position, "required parameter %q follows an optional parameter in %s", p.Name, decl.Name)
			}
			required++
		} else {
			seenOptional = true
		}
	}

	n := len(decl.Params)
	argc := len(args)
	if argc < required || argc > n {
		return nil, apperrors.NewAt(apperrors.ValueError, decl.Position, "%s expects between %d and %d arguments, got %d", decl.Name, required, n, argc)
	}

	callerStack := e.stack
	e.stack = closure
	e.stack.Push()
	defer func() {
		e.stack.Pop()
		e.stack = callerStack
	}()

	for i, p := range decl.Params {
		var v value.Value
		if i < argc {
			rv, _ := args[i].Read() // already validated readable above
			v = rv
		} else {
			defC, err := e.evalExpr(p.Default)
			if err != nil {
				return nil, err
			}
			rv, err := defC.Read()
			if err != nil {
				return nil, apperrors.NewAt(apperrors.TypeError, decl.Position, "%v", err)
			}
			v = rv
		}
		if err := e.stack.AddContainer(value.NewContainer(p.Name, v, value.Transform)); err != nil {
			return nil, apperrors.NewAt(apperrors.NameError, decl.Position, "%v", err)
		}
	}

	sig, err := e.execStmts(decl.Body.Stmts, 1)
	if err != nil {
		return nil, err
	}
	if sig.kind == ctrlReturn {
		return sig.value, nil
	}
	return value.Anon(value.Null{}), nil
}
