package eval

import (
	"github.com/breeze-lang/breeze/internal/ast"
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/source"
	"github.com/breeze-lang/breeze/internal/value"
)

// execStmt dispatches one statement. depth is the nesting
// level of enclosing Blocks, used to reject import/export below depth 0.
func (e *Evaluator) execStmt(stmt ast.Stmt, depth int) (ctrl, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return e.execBlock(s, depth)
	case *ast.VarDecl:
		return e.execVarDecl(s)
	case *ast.ConstDecl:
		return e.execConstDecl(s)
	case *ast.If:
		return e.execIf(s, depth)
	case *ast.While:
		return e.execWhile(s, depth)
	case *ast.For:
		return e.execFor(s, depth)
	case *ast.Break:
		return ctrl{kind: ctrlBreak}, nil
	case *ast.Continue:
		return ctrl{kind: ctrlContinue}, nil
	case *ast.FunctionDecl:
		return none, e.execFunctionDecl(s)
	case *ast.Return:
		return e.execReturn(s)
	case *ast.Import:
		if depth > 0 {
			return none, apperrors.NewAt(apperrors.ExpressionError, s.Position, "import is only allowed at module top level")
		}
		return none, e.execImport(s)
	case *ast.Export:
		if depth > 0 {
			return none, apperrors.NewAt(apperrors.ExpressionError, s.Position, "export is only allowed at module top level")
		}
		return none, e.execExport(s)
	case *ast.ExpressionStmt:
		_, err := e.evalExpr(s.Expr)
		return none, err
	default:
		return none, apperrors.NewAt(apperrors.ExpressionError, stmt.Pos(), "unsupported statement %T", stmt)
	}
}

// execStmts runs a sequence of statements already inside the caller's
// scope, stopping at the first error or non-none control signal.
func (e *Evaluator) execStmts(stmts []ast.Stmt, depth int) (ctrl, error) {
	for _, stmt := range stmts {
		sig, err := e.execStmt(stmt, depth)
		if err != nil {
			return none, err
		}
		if sig.kind != ctrlNone {
			return sig, nil
		}
	}
	return none, nil
}

func (e *Evaluator) execBlock(b *ast.Block, depth int) (ctrl, error) {
	e.stack.Push()
	defer e.stack.Pop()
	return e.execStmts(b.Stmts, depth+1)
}

func (e *Evaluator) execVarDecl(s *ast.VarDecl) (ctrl, error) {
	v := value.Value(value.Null{})
	if s.Init != nil {
		c, err := e.evalExpr(s.Init)
		if err != nil {
			return none, err
		}
		rv, err := c.Read()
		if err != nil {
			return none, apperrors.NewAt(apperrors.TypeError, s.Position, "%v", err)
		}
		v = rv
	}
	if err := e.stack.AddContainer(value.NewContainer(s.Name, v, value.Transform)); err != nil {
		return none, apperrors.NewAt(apperrors.NameError, s.Position, "%v", err)
	}
	return none, nil
}

func (e *Evaluator) execConstDecl(s *ast.ConstDecl) (ctrl, error) {
	c, err := e.evalExpr(s.Init)
	if err != nil {
		return none, err
	}
	rv, err := c.Read()
	if err != nil {
		return none, apperrors.NewAt(apperrors.TypeError, s.Position, "%v", err)
	}
	if err := e.stack.AddContainer(value.NewContainer(s.Name, rv, value.Readable)); err != nil {
		return none, apperrors.NewAt(apperrors.NameError, s.Position, "%v", err)
	}
	return none, nil
}

func (e *Evaluator) execIf(s *ast.If, depth int) (ctrl, error) {
	c, err := e.evalExpr(s.Cond)
	if err != nil {
		return none, err
	}
	rv, err := c.Read()
	if err != nil {
		return none, apperrors.NewAt(apperrors.TypeError, s.Position, "%v", err)
	}
	if value.Truthy(rv) {
		return e.execStmt(s.Then, depth)
	}
	if s.Else != nil {
		return e.execStmt(s.Else, depth)
	}
	return none, nil
}

func (e *Evaluator) execWhile(s *ast.While, depth int) (ctrl, error) {
	for {
		c, err := e.evalExpr(s.Cond)
		if err != nil {
			return none, err
		}
		rv, err := c.Read()
		if err != nil {
			return none, apperrors.NewAt(apperrors.TypeError, s.Position, "%v", err)
		}
		if !value.Truthy(rv) {
			return none, nil
		}
		sig, err := e.execStmt(s.Body, depth)
		if err != nil {
			return none, err
		}
		switch sig.kind {
		case ctrlBreak:
			return none, nil
		case ctrlReturn:
			return sig, nil
		}
	}
}

// isElidedClause reports whether a for-loop clause was left empty by the
// parser, represented as a bare *ast.Null.
func isElidedClause(e ast.Expr) bool {
	_, ok := e.(*ast.Null)
	return ok
}

func (e *Evaluator) execFor(s *ast.For, depth int) (ctrl, error) {
	e.stack.Push()
	defer e.stack.Pop()

	if s.Init != nil {
		if _, err := e.execStmt(s.Init, depth); err != nil {
			return none, err
		}
	}

	for {
		if !isElidedClause(s.Cond) {
			c, err := e.evalExpr(s.Cond)
			if err != nil {
				return none, err
			}
			rv, err := c.Read()
			if err != nil {
				return none, apperrors.NewAt(apperrors.TypeError, s.Position, "%v", err)
			}
			if !value.Truthy(rv) {
				return none, nil
			}
		}

		sig, err := e.execStmt(s.Body, depth)
		if err != nil {
			return none, err
		}
		if sig.kind == ctrlBreak {
			return none, nil
		}
		if sig.kind == ctrlReturn {
			return sig, nil
		}

		if s.Incr != nil {
			if _, err := e.execStmt(s.Incr, depth); err != nil {
				return none, err
			}
		}
	}
}

func (e *Evaluator) execFunctionDecl(s *ast.FunctionDecl) error {
	fn := e.buildFunction(s)
	c := value.NewContainer(s.Name, fn, value.Transform)
	if err := e.stack.AddContainer(c); err != nil {
		return apperrors.NewAt(apperrors.NameError, s.Position, "%v", err)
	}
	return nil
}

func (e *Evaluator) execReturn(s *ast.Return) (ctrl, error) {
	if s.Value == nil {
		return ctrl{kind: ctrlReturn, value: value.Anon(value.Null{})}, nil
	}
	c, err := e.evalExpr(s.Value)
	if err != nil {
		return none, err
	}
	return ctrl{kind: ctrlReturn, value: c}, nil
}

func (e *Evaluator) execImport(s *ast.Import) error {
	targetPath, err := source.Resolve(e.module.AbsPath, s.Path, e.cfg)
	if err != nil {
		return err
	}
	target, ok := e.registry.Get(targetPath)
	if !ok {
		return apperrors.NewAt(apperrors.ImportError, s.Position, "module not registered: %s", targetPath)
	}

	if s.Star {
		for _, c := range target.Exports.Entries() {
			rv, err := c.Read()
			if err != nil {
				return apperrors.NewAt(apperrors.TypeError, s.Position, "%v", err)
			}
			if err := e.stack.AddContainer(value.NewContainer(c.Name, rv, value.Readable)); err != nil {
				return apperrors.NewAt(apperrors.NameError, s.Position, "%v", err)
			}
		}
		return nil
	}

	for _, name := range s.Names {
		c, ok := target.Exports.Get(name)
		if !ok {
			return apperrors.NewAt(apperrors.ImportError, s.Position, "%s does not export %q", targetPath, name)
		}
		rv, err := c.Read()
		if err != nil {
			return apperrors.NewAt(apperrors.TypeError, s.Position, "%v", err)
		}
		if err := e.stack.AddContainer(value.NewContainer(name, rv, value.Readable)); err != nil {
			return apperrors.NewAt(apperrors.NameError, s.Position, "%v", err)
		}
	}
	return nil
}

func (e *Evaluator) execExport(s *ast.Export) error {
	var name string
	switch decl := s.Decl.(type) {
	case *ast.ConstDecl:
		if _, err := e.execConstDecl(decl); err != nil {
			return err
		}
		name = decl.Name
	case *ast.FunctionDecl:
		if err := e.execFunctionDecl(decl); err != nil {
			return err
		}
		name = decl.Name
	default:
		return apperrors.NewAt(apperrors.ParserError, s.Position, "export may only wrap a const or function declaration")
	}

	c, _ := e.stack.Lookup(name)
	if err := e.module.Exports.Add(c); err != nil {
		return apperrors.NewAt(apperrors.NameError, s.Position, "%v", err)
	}
	return nil
}
