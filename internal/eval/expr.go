package eval

import (
	"strconv"

	"github.com/breeze-lang/breeze/internal/ast"
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/token"
	"github.com/breeze-lang/breeze/internal/value"
)

// evalExpr evaluates expr to a Container. For an Identifier, a `.` member, or an `obj[key]`
// index, the returned Container is the one actually stored in the
// environment/object, not a copy, so writes through it are observed.
func (e *Evaluator) evalExpr(expr ast.Expr) (*value.Container, error) {
	switch n := expr.(type) {
	case *ast.Null:
		return value.Anon(value.Null{}), nil
	case *ast.Literal:
		v, err := literalValue(n)
		if err != nil {
			return nil, err
		}
		return value.Anon(v), nil
	case *ast.Identifier:
		c, ok := e.stack.Lookup(n.Name)
		if !ok {
			return nil, apperrors.NewAt(apperrors.NameError, n.Position, "undefined name %q", n.Name)
		}
		return c, nil
	case *ast.PrefixUnary:
		return e.evalPrefixUnary(n)
	case *ast.SuffixUnary:
		return e.evalSuffixUnary(n)
	case *ast.Binary:
		return e.evalBinary(n)
	case *ast.Grouping:
		return e.evalGrouping(n)
	case *ast.GroupingApplication:
		return e.evalGroupingApplication(n)
	case *ast.Association:
		return e.evalAssociation(n)
	default:
		return nil, apperrors.NewAt(apperrors.ExpressionError, expr.Pos(), "unsupported expression %T", expr)
	}
}

// literalValue converts the token backing a Literal node to a runtime
// Value, per the token kinds parsePrimary accepts for a Literal.
func literalValue(n *ast.Literal) (value.Value, error) {
	switch n.Token.Kind {
	case token.NUMBER:
		f, err := strconv.ParseFloat(n.Token.Lexeme, 64)
		if err != nil {
			return nil, apperrors.NewAt(apperrors.ParserError, n.Position, "invalid number literal %q", n.Token.Lexeme)
		}
		return value.Number(f), nil
	case token.STRING:
		return value.String(n.Token.Lexeme), nil
	case token.TRUE:
		return value.Boolean(true), nil
	case token.FALSE:
		return value.Boolean(false), nil
	case token.NULL:
		return value.Null{}, nil
	default:
		return nil, apperrors.NewAt(apperrors.ParserError, n.Position, "unsupported literal token %s", n.Token.Kind)
	}
}

func (e *Evaluator) evalPrefixUnary(n *ast.PrefixUnary) (*value.Container, error) {
	switch n.Op {
	case token.BANG:
		c, err := e.evalExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		v, err := c.Read()
		if err != nil {
			return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
		}
		return value.Anon(value.Boolean(!value.Truthy(v))), nil

	case token.TILDE:
		v, err := e.readOperand(n.Operand, n.Position)
		if err != nil {
			return nil, err
		}
		num, ok := v.(value.Number)
		if !ok {
			return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "~ requires a number, got %s", v.TypeName())
		}
		return value.Anon(value.Number(^toInt(num))), nil

	case token.INCR, token.DECR:
		c, err := e.evalExpr(n.Operand)
		if err != nil {
			return nil, err
		}
		if err := c.RequireTransform(); err != nil {
			return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
		}
		v, err := c.Read()
		if err != nil {
			return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
		}
		num, ok := v.(value.Number)
		if !ok {
			return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%s requires a number, got %s", n.Op, v.TypeName())
		}
		newVal := num + step(n.Op)
		if err := c.Write(newVal); err != nil {
			return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
		}
		return value.Anon(newVal), nil

	default:
		return nil, apperrors.NewAt(apperrors.ExpressionError, n.Position, "unsupported prefix operator %s", n.Op)
	}
}

func (e *Evaluator) evalSuffixUnary(n *ast.SuffixUnary) (*value.Container, error) {
	c, err := e.evalExpr(n.Operand)
	if err != nil {
		return nil, err
	}
	if err := c.RequireTransform(); err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	v, err := c.Read()
	if err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	num, ok := v.(value.Number)
	if !ok {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%s requires a number, got %s", n.Op, v.TypeName())
	}
	if err := c.Write(num + step(n.Op)); err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	return value.Anon(num), nil // postfix yields the pre-update value
}

func step(op token.Kind) value.Number {
	if op == token.DECR {
		return -1
	}
	return 1
}

// readOperand evaluates expr and requires its Container readable, folding
// the capability error into a positioned TypeError.
func (e *Evaluator) readOperand(expr ast.Expr, pos token.Position) (value.Value, error) {
	c, err := e.evalExpr(expr)
	if err != nil {
		return nil, err
	}
	v, err := c.Read()
	if err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, pos, "%v", err)
	}
	return v, nil
}

func (e *Evaluator) readBothOperands(n *ast.Binary) (value.Value, value.Value, error) {
	lv, err := e.readOperand(n.Left, n.Position)
	if err != nil {
		return nil, nil, err
	}
	rv, err := e.readOperand(n.Right, n.Position)
	if err != nil {
		return nil, nil, err
	}
	return lv, rv, nil
}

func (e *Evaluator) evalGrouping(n *ast.Grouping) (*value.Container, error) {
	elems := make([]*value.Container, len(n.Items))
	for i, item := range n.Items {
		v, err := e.readOperand(item, n.Position)
		if err != nil {
			return nil, err
		}
		elems[i] = value.Anon(v)
	}
	if n.Opening == token.LPAREN {
		return value.Anon(&value.Tuple{Elements: elems}), nil
	}
	return value.Anon(&value.List{Elements: elems}), nil
}

func (e *Evaluator) evalGroupingApplication(n *ast.GroupingApplication) (*value.Container, error) {
	if n.Grouping.Opening == token.LPAREN {
		return e.evalCall(n)
	}
	return e.evalIndex(n)
}

func (e *Evaluator) evalCall(n *ast.GroupingApplication) (*value.Container, error) {
	calleeV, err := e.readOperand(n.Callee, n.Position)
	if err != nil {
		return nil, err
	}
	fn, ok := calleeV.(*value.Function)
	if !ok {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "cannot call a %s", calleeV.TypeName())
	}

	args := make([]*value.Container, len(n.Grouping.Items))
	for i, item := range n.Grouping.Items {
		c, err := e.evalExpr(item)
		if err != nil {
			return nil, err
		}
		args[i] = c
	}

	result, err := fn.Call(args)
	if err != nil {
		return nil, err
	}
	if _, err := result.Read(); err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	return result, nil
}

func (e *Evaluator) evalIndex(n *ast.GroupingApplication) (*value.Container, error) {
	objV, err := e.readOperand(n.Callee, n.Position)
	if err != nil {
		return nil, err
	}
	obj, ok := objV.(*value.Object)
	if !ok {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "indexing requires an object, got %s", objV.TypeName())
	}

	key, err := e.evalSingletonKey(n.Grouping, n.Position)
	if err != nil {
		return nil, err
	}
	c, ok := obj.Get(key)
	if !ok {
		return nil, apperrors.NewAt(apperrors.NameError, n.Position, "object has no key %s", key)
	}
	return c, nil
}

// evalSingletonKey evaluates a bracketed grouping as a List, used
// both by index application and by dynamic association keys.
func (e *Evaluator) evalSingletonKey(g *ast.Grouping, pos token.Position) (value.ObjectKey, error) {
	listC, err := e.evalGrouping(g)
	if err != nil {
		return value.ObjectKey{}, err
	}
	listV, _ := listC.Read()
	lst, ok := listV.(*value.List)
	if !ok || len(lst.Elements) != 1 {
		return value.ObjectKey{}, apperrors.NewAt(apperrors.TypeError, pos, "key expression must evaluate to a single-element list")
	}
	elemVal, err := lst.Elements[0].Read()
	if err != nil {
		return value.ObjectKey{}, apperrors.NewAt(apperrors.TypeError, pos, "%v", err)
	}
	return toObjectKey(elemVal, pos)
}

func toObjectKey(v value.Value, pos token.Position) (value.ObjectKey, error) {
	switch x := v.(type) {
	case value.Number:
		return value.NumberKey(float64(x)), nil
	case value.String:
		return value.StringKey(string(x)), nil
	default:
		return value.ObjectKey{}, apperrors.NewAt(apperrors.TypeError, pos, "key must be a string or number, got %s", v.TypeName())
	}
}

func (e *Evaluator) evalAssociation(n *ast.Association) (*value.Container, error) {
	obj := value.NewObject()
	for _, entry := range n.Entries {
		key, err := e.associationKey(entry, n.Position)
		if err != nil {
			return nil, err
		}
		v, err := e.readOperand(entry.Value, n.Position)
		if err != nil {
			return nil, err
		}
		obj.Set(key, value.Anon(v))
	}
	return value.Anon(obj), nil
}

func (e *Evaluator) associationKey(entry ast.AssociationEntry, pos token.Position) (value.ObjectKey, error) {
	if entry.DynamicKey != nil {
		g, ok := entry.DynamicKey.(*ast.Grouping)
		if !ok {
			g = &ast.Grouping{Position: pos, Opening: token.LBRACKET, Items: []ast.Expr{entry.DynamicKey}}
		}
		return e.evalSingletonKey(g, pos)
	}
	switch k := entry.Key.(type) {
	case *ast.Identifier:
		return value.StringKey(k.Name), nil
	case *ast.Literal:
		v, err := literalValue(k)
		if err != nil {
			return value.ObjectKey{}, err
		}
		return toObjectKey(v, k.Position)
	default:
		return value.ObjectKey{}, apperrors.NewAt(apperrors.ExpressionError, pos, "unsupported association key %T", entry.Key)
	}
}
