package eval

import (
	"math"

	"github.com/breeze-lang/breeze/internal/ast"
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/token"
	"github.com/breeze-lang/breeze/internal/value"
)

// compoundBase maps a compound-assign operator to the binary operator it
// performs before writing back.
var compoundBase = map[token.Kind]token.Kind{
	token.PLUS_EQ:    token.PLUS,
	token.MINUS_EQ:   token.MINUS,
	token.STAR_EQ:    token.STAR,
	token.SLASH_EQ:   token.SLASH,
	token.PERCENT_EQ: token.PERCENT,
	token.POW_EQ:     token.POW,
	token.AMP_EQ:      token.AMP,
	token.PIPE_EQ:     token.PIPEOP,
	token.CARET_EQ:    token.CARET,
	token.SHL_EQ:      token.SHL,
	token.SHR_EQ:      token.SHR,
}

func (e *Evaluator) evalBinary(n *ast.Binary) (*value.Container, error) {
	switch n.Op {
	case token.ASSIGN:
		return e.evalAssign(n)
	case token.AND:
		return e.evalAnd(n)
	case token.OR:
		return e.evalOr(n)
	case token.DOT:
		return e.evalMemberAccess(n)
	case token.EQ, token.NEQ:
		return e.evalEquality(n)
	case token.LT, token.LTE, token.GT, token.GTE:
		return e.evalComparison(n)
	case token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.POW,
		token.AMP, token.PIPEOP, token.CARET, token.SHL, token.SHR:
		lv, rv, err := e.readBothOperands(n)
		if err != nil {
			return nil, err
		}
		result, err := applyBinaryOp(n.Op, lv, rv, n.Position)
		if err != nil {
			return nil, err
		}
		return value.Anon(result), nil
	default:
		if _, ok := compoundBase[n.Op]; ok {
			return e.evalCompoundAssign(n)
		}
		return nil, apperrors.NewAt(apperrors.ExpressionError, n.Position, "unsupported operator %s", n.Op)
	}
}

func (e *Evaluator) evalAssign(n *ast.Binary) (*value.Container, error) {
	lhs, err := e.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	rv, err := e.readOperand(n.Right, n.Position)
	if err != nil {
		return nil, err
	}
	if err := lhs.Write(rv); err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	return value.Anon(rv), nil
}

func (e *Evaluator) evalCompoundAssign(n *ast.Binary) (*value.Container, error) {
	lhs, err := e.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	if err := lhs.RequireTransform(); err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	lv, err := lhs.Read()
	if err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	rv, err := e.readOperand(n.Right, n.Position)
	if err != nil {
		return nil, err
	}
	result, err := applyBinaryOp(compoundBase[n.Op], lv, rv, n.Position)
	if err != nil {
		return nil, err
	}
	if err := lhs.Write(result); err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	return value.Anon(result), nil
}

func (e *Evaluator) evalAnd(n *ast.Binary) (*value.Container, error) {
	lc, err := e.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	lv, err := lc.Read()
	if err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	if !value.Truthy(lv) {
		return lc, nil
	}
	rc, err := e.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	if _, err := rc.Read(); err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	return rc, nil
}

func (e *Evaluator) evalOr(n *ast.Binary) (*value.Container, error) {
	lc, err := e.evalExpr(n.Left)
	if err != nil {
		return nil, err
	}
	lv, err := lc.Read()
	if err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	if value.Truthy(lv) {
		return lc, nil
	}
	rc, err := e.evalExpr(n.Right)
	if err != nil {
		return nil, err
	}
	if _, err := rc.Read(); err != nil {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "%v", err)
	}
	return rc, nil
}

func (e *Evaluator) evalMemberAccess(n *ast.Binary) (*value.Container, error) {
	lv, err := e.readOperand(n.Left, n.Position)
	if err != nil {
		return nil, err
	}
	obj, ok := lv.(*value.Object)
	if !ok {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "member access requires an object, got %s", lv.TypeName())
	}
	name := n.Right.(*ast.Identifier).Name
	c, ok := obj.Get(value.StringKey(name))
	if !ok {
		return nil, apperrors.NewAt(apperrors.NameError, n.Position, "object has no member %q", name)
	}
	return c, nil
}

func (e *Evaluator) evalEquality(n *ast.Binary) (*value.Container, error) {
	lv, rv, err := e.readBothOperands(n)
	if err != nil {
		return nil, err
	}
	eq := value.Equal(lv, rv)
	if n.Op == token.NEQ {
		eq = !eq
	}
	return value.Anon(value.Boolean(eq)), nil
}

func (e *Evaluator) evalComparison(n *ast.Binary) (*value.Container, error) {
	lv, rv, err := e.readBothOperands(n)
	if err != nil {
		return nil, err
	}
	ln, ok := lv.(value.Number)
	if !ok {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "comparison requires numbers, got %s", lv.TypeName())
	}
	rn, ok := rv.(value.Number)
	if !ok {
		return nil, apperrors.NewAt(apperrors.TypeError, n.Position, "comparison requires numbers, got %s", rv.TypeName())
	}
	var result bool
	switch n.Op {
	case token.LT:
		result = ln < rn
	case token.LTE:
		result = ln <= rn
	case token.GT:
		result = ln > rn
	case token.GTE:
		result = ln >= rn
	}
	return value.Anon(value.Boolean(result)), nil
}

func toInt(n value.Number) int64 {
	return int64(math.Round(float64(n)))
}

// applyBinaryOp implements the numeric/string operator table, shared by
// plain binary expressions and compound-assign.
func applyBinaryOp(op token.Kind, lv, rv value.Value, pos token.Position) (value.Value, error) {
	switch op {
	case token.PLUS:
		if ln, ok := lv.(value.Number); ok {
			rn, ok := rv.(value.Number)
			if !ok {
				return nil, apperrors.NewAt(apperrors.TypeError, pos, "cannot add number and %s", rv.TypeName())
			}
			return ln + rn, nil
		}
		if ls, ok := lv.(value.String); ok {
			rs, ok := rv.(value.String)
			if !ok {
				return nil, apperrors.NewAt(apperrors.TypeError, pos, "cannot concatenate string and %s", rv.TypeName())
			}
			return ls + rs, nil
		}
		return nil, apperrors.NewAt(apperrors.TypeError, pos, "+ requires two numbers or two strings, got %s and %s", lv.TypeName(), rv.TypeName())

	case token.MINUS, token.STAR, token.SLASH, token.PERCENT, token.POW:
		ln, ok := lv.(value.Number)
		if !ok {
			return nil, apperrors.NewAt(apperrors.TypeError, pos, "%s requires numbers, got %s", op, lv.TypeName())
		}
		rn, ok := rv.(value.Number)
		if !ok {
			return nil, apperrors.NewAt(apperrors.TypeError, pos, "%s requires numbers, got %s", op, rv.TypeName())
		}
		switch op {
		case token.MINUS:
			return ln - rn, nil
		case token.STAR:
			return ln * rn, nil
		case token.SLASH:
			if rn == 0 {
				return nil, apperrors.NewAt(apperrors.ValueError, pos, "division by zero")
			}
			return ln / rn, nil
		case token.PERCENT:
			if rn == 0 {
				return nil, apperrors.NewAt(apperrors.ValueError, pos, "division by zero")
			}
			return value.Number(math.Mod(float64(ln), float64(rn))), nil
		default: // token.POW
			if ln < 0 {
				return nil, apperrors.NewAt(apperrors.ValueError, pos, "exponentiation requires a non-negative base")
			}
			return value.Number(math.Pow(float64(ln), float64(rn))), nil
		}

	case token.AMP, token.PIPEOP, token.CARET, token.SHL, token.SHR:
		ln, ok := lv.(value.Number)
		if !ok {
			return nil, apperrors.NewAt(apperrors.TypeError, pos, "%s requires numbers, got %s", op, lv.TypeName())
		}
		rn, ok := rv.(value.Number)
		if !ok {
			return nil, apperrors.NewAt(apperrors.TypeError, pos, "%s requires numbers, got %s", op, rv.TypeName())
		}
		li, ri := toInt(ln), toInt(rn)
		switch op {
		case token.AMP:
			return value.Number(li & ri), nil
		case token.PIPEOP:
			return value.Number(li | ri), nil
		case token.CARET:
			return value.Number(li ^ ri), nil
		case token.SHL:
			return value.Number(li << uint(ri)), nil
		default: // token.SHR
			return value.Number(li >> uint(ri)), nil
		}

	default:
		return nil, apperrors.NewAt(apperrors.ExpressionError, pos, "unsupported operator %s", op)
	}
}
