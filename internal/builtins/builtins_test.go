package builtins

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/breeze-lang/breeze/internal/value"
)

func TestBuildScopeRejectsDuplicateNames(t *testing.T) {
	decls := []Decl{
		Constant{Name: "x", Value: value.Number(1)},
		Constant{Name: "x", Value: value.Number(2)},
	}
	_, err := BuildScope(decls)
	require.Error(t, err)
}

func TestBuildScopeInstallsConstantAsReadable(t *testing.T) {
	scope, err := BuildScope([]Decl{Constant{Name: "pi", Value: value.Number(3.14)}})
	require.NoError(t, err)

	c, ok := scope.Get("pi")
	require.True(t, ok)
	v, err := c.Read()
	require.NoError(t, err)
	require.Equal(t, value.Number(3.14), v)
	require.Error(t, c.Write(value.Number(0)), "a built-in constant must not be writeable")
}

func TestBuildScopeInstallsFunctionAsReadable(t *testing.T) {
	scope, err := BuildScope([]Decl{Function{
		Name:  "identity",
		Arity: 1,
		Host: func(args []value.Value) (value.Value, error) {
			return args[0], nil
		},
	}})
	require.NoError(t, err)

	c, ok := scope.Get("identity")
	require.True(t, ok)
	_, err = c.Read()
	require.NoError(t, err)
	require.Error(t, c.Write(value.Number(0)), "a built-in function must not be writeable")
	require.Error(t, c.RequireTransform(), "a built-in function must not be a transform target for ++/--/compound-assign")
}

func TestFunctionCallableValidatesArity(t *testing.T) {
	scope, err := BuildScope([]Decl{Function{
		Name:  "identity",
		Arity: 1,
		Host: func(args []value.Value) (value.Value, error) {
			return args[0], nil
		},
	}})
	require.NoError(t, err)

	c, ok := scope.Get("identity")
	require.True(t, ok)
	fn, ok := c.Value.(*value.Function)
	require.True(t, ok)

	_, err = fn.Call([]*value.Container{value.Anon(value.Number(1)), value.Anon(value.Number(2))})
	require.Error(t, err, "calling with too many arguments must fail")
}

func TestFunctionCallableUnwrapsAndWrapsValues(t *testing.T) {
	scope, err := BuildScope([]Decl{Function{
		Name:  "double",
		Arity: 1,
		Host: func(args []value.Value) (value.Value, error) {
			n, ok := args[0].(value.Number)
			if !ok {
				t.Fatalf("expected Number, got %T", args[0])
			}
			return n * 2, nil
		},
	}})
	require.NoError(t, err)

	c, _ := scope.Get("double")
	fn := c.Value.(*value.Function)

	result, err := fn.Call([]*value.Container{value.Anon(value.Number(21))})
	require.NoError(t, err)
	v, err := result.Read()
	require.NoError(t, err)
	require.Equal(t, value.Number(42), v)
}

func TestFunctionCallableRejectsUnreadableArgument(t *testing.T) {
	scope, err := BuildScope([]Decl{Function{
		Name:  "f",
		Arity: 1,
		Host: func(args []value.Value) (value.Value, error) {
			return value.Null{}, nil
		},
	}})
	require.NoError(t, err)

	c, _ := scope.Get("f")
	fn := c.Value.(*value.Function)

	writeOnly := value.NewContainer("w", value.Number(1), value.Writeable)
	_, err = fn.Call([]*value.Container{writeOnly})
	require.Error(t, err)
}

func TestReferenceStdlibTypeFunction(t *testing.T) {
	scope, err := BuildScope(Reference)
	require.NoError(t, err)

	c, ok := scope.Get("_builtin_type")
	require.True(t, ok)
	fn := c.Value.(*value.Function)

	cases := []struct {
		in   value.Value
		want value.Value
	}{
		{value.Null{}, value.String("null")},
		{value.Number(1), value.String("number")},
		{value.String("s"), value.String("string")},
		{value.Boolean(true), value.String("boolean")},
		{&value.List{}, value.String("list")},
		{&value.Tuple{}, value.String("tuple")},
		{value.NewObject(), value.String("object")},
	}
	for _, tt := range cases {
		result, err := fn.Call([]*value.Container{value.Anon(tt.in)})
		require.NoError(t, err)
		v, err := result.Read()
		require.NoError(t, err)
		require.Equal(t, tt.want, v, "type(%v)", tt.in)
	}
}

func TestReferenceStdlibNumConversion(t *testing.T) {
	scope, err := BuildScope(Reference)
	require.NoError(t, err)

	c, _ := scope.Get("_builtin_num")
	fn := c.Value.(*value.Function)

	result, err := fn.Call([]*value.Container{value.Anon(value.String("42.5"))})
	require.NoError(t, err)
	v, err := result.Read()
	require.NoError(t, err)
	require.Equal(t, value.Number(42.5), v)

	_, err = fn.Call([]*value.Container{value.Anon(value.String("not a number"))})
	require.Error(t, err)
}

func TestReferenceStdlibBoolConversion(t *testing.T) {
	scope, err := BuildScope(Reference)
	require.NoError(t, err)

	c, _ := scope.Get("_builtin_bool")
	fn := c.Value.(*value.Function)

	result, err := fn.Call([]*value.Container{value.Anon(value.Number(0))})
	require.NoError(t, err)
	v, err := result.Read()
	require.NoError(t, err)
	require.Equal(t, value.Boolean(false), v)
}
