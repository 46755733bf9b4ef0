package builtins

import (
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/value"
)

// BuildScope installs every decl into a fresh Scope, the shared built-ins
// Scope pushed onto every module's Stack before evaluation starts.
// Registering the same name twice is rejected, matching value.Scope.Add's
// duplicate-binding rule.
func BuildScope(decls []Decl) (*value.Scope, error) {
	scope := value.NewScope()
	for _, d := range decls {
		c, err := buildContainer(d)
		if err != nil {
			return nil, err
		}
		if err := scope.Add(c); err != nil {
			return nil, apperrors.New(apperrors.NameError, "built-in %q: %v", d.declName(), err)
		}
	}
	return scope, nil
}

func buildContainer(d Decl) (*value.Container, error) {
	switch decl := d.(type) {
	case Constant:
		return value.NewContainer(decl.Name, decl.Value, value.Readable), nil
	case Function:
		fn := &value.Function{Name: decl.Name, Arity: decl.Arity, Call: callable(decl)}
		return value.NewContainer(decl.Name, fn, value.Readable), nil
	default:
		return nil, apperrors.New(apperrors.NameError, "unknown built-in declaration %T", d)
	}
}

// callable wraps a host function to match value.Callable: validate arity,
// unwrap readable argument Containers to raw values, invoke Host, wrap the
// raw result in a fresh anonymous readable Container.
func callable(decl Function) value.Callable {
	return func(args []*value.Container) (*value.Container, error) {
		if len(args) != decl.Arity {
			return nil, apperrors.New(apperrors.ValueError, "%s expects %d arguments, got %d", decl.Name, decl.Arity, len(args))
		}
		raw := make([]value.Value, len(args))
		for i, a := range args {
			v, err := a.Read()
			if err != nil {
				return nil, apperrors.New(apperrors.TypeError, "argument %d to %s: %v", i, decl.Name, err)
			}
			raw[i] = v
		}
		result, err := decl.Host(raw)
		if err != nil {
			return nil, err
		}
		return value.Anon(result), nil
	}
}
