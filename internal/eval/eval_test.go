package eval

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/breeze-lang/breeze/internal/builtins"
	apperrors "github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/module"
	"github.com/breeze-lang/breeze/internal/parser"
	"github.com/breeze-lang/breeze/internal/source"
	"github.com/breeze-lang/breeze/internal/value"
)

// recorder builds a "record" built-in that appends every argument it's
// called with, for tests to assert against without needing stdout capture.
func recorder() (*value.Scope, *[]value.Value) {
	var recorded []value.Value
	decls := append([]builtins.Decl{}, builtins.Reference...)
	decls = append(decls, builtins.Function{
		Name:  "record",
		Arity: 1,
		Host: func(args []value.Value) (value.Value, error) {
			recorded = append(recorded, args[0])
			return value.Null{}, nil
		},
	})
	scope, err := builtins.BuildScope(decls)
	if err != nil {
		panic(err)
	}
	return scope, &recorded
}

// runSingle parses src as a single, dependency-free module and runs it,
// requiring an empty Report, and returns whatever values were passed to
// record(...) together with the Module.
func runSingle(t *testing.T, src string) (*[]value.Value, *module.Module) {
	t.Helper()
	scope, recorded := recorder()

	prog, err := parser.Parse(src)
	require.NoError(t, err)

	m := &module.Module{AbsPath: "/virtual/main.br", AST: prog}
	reg := module.NewRegistry()
	reg.Add(m)

	report := New(scope).Run(reg, []*module.Module{m}, source.Config{Entrypoint: m.AbsPath})
	require.True(t, report.Empty(), "unexpected errors: %v", report.Errors)
	return recorded, m
}

func TestClosureCapture(t *testing.T) {
	src := `function makeCounter() {
  var n = 0
  function increment() {
    n = n + 1
    return n
  }
  return increment
}
var counter = makeCounter()
record(counter())
record(counter())
record(counter())
`
	recorded, _ := runSingle(t, src)
	require.Equal(t, []value.Value{value.Number(1), value.Number(2), value.Number(3)}, *recorded)
}

func TestShortCircuitAnd(t *testing.T) {
	src := `function sideEffect() {
  record("called")
  return true
}
var result = false and sideEffect()
record(result)
`
	recorded, _ := runSingle(t, src)
	require.Equal(t, []value.Value{value.Boolean(false)}, *recorded)
}

func TestShortCircuitOr(t *testing.T) {
	src := `function sideEffect() {
  record("called")
  return false
}
var result = true or sideEffect()
record(result)
`
	recorded, _ := runSingle(t, src)
	require.Equal(t, []value.Value{value.Boolean(true)}, *recorded)
}

func TestDynamicObjectKeys(t *testing.T) {
	src := `var k = "dynamic"
var obj = {[k]: 42, fixed: 1}
record(obj["dynamic"])
record(obj.fixed)
`
	recorded, _ := runSingle(t, src)
	require.Equal(t, []value.Value{value.Number(42), value.Number(1)}, *recorded)
}

func TestDefaultParametersAndArity(t *testing.T) {
	src := `function greet(name, suffix = "!") {
  return name + suffix
}
record(greet("hi"))
record(greet("hi", "?"))
`
	recorded, _ := runSingle(t, src)
	require.Equal(t, []value.Value{value.String("hi!"), value.String("hi?")}, *recorded)
}

func TestRequiredAfterOptionalIsParameterError(t *testing.T) {
	src := `function bad(a = 1, b) {
  return a + b
}
bad(1, 2)
`
	scope, _ := recorder()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	m := &module.Module{AbsPath: "/virtual/main.br", AST: prog}
	reg := module.NewRegistry()
	reg.Add(m)

	report := New(scope).Run(reg, []*module.Module{m}, source.Config{Entrypoint: m.AbsPath})
	require.False(t, report.Empty())
	require.Equal(t, apperrors.ParameterError, report.Errors[0].Kind)
}

func TestDivisionByZeroIsRuntimeError(t *testing.T) {
	src := "var x = 1 / 0\n"
	scope, _ := recorder()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	m := &module.Module{AbsPath: "/virtual/main.br", AST: prog}
	reg := module.NewRegistry()
	reg.Add(m)

	report := New(scope).Run(reg, []*module.Module{m}, source.Config{Entrypoint: m.AbsPath})
	require.False(t, report.Empty())
}

func TestNegativeExponentIsValueError(t *testing.T) {
	src := "var neg = 0 - 1\nvar x = neg ** 0.5\n"
	scope, _ := recorder()
	prog, err := parser.Parse(src)
	require.NoError(t, err)
	m := &module.Module{AbsPath: "/virtual/main.br", AST: prog}
	reg := module.NewRegistry()
	reg.Add(m)

	report := New(scope).Run(reg, []*module.Module{m}, source.Config{Entrypoint: m.AbsPath})
	require.False(t, report.Empty())
	require.Equal(t, apperrors.ValueError, report.Errors[0].Kind)
}

// TestRuntimeErrorIsolatedToModule runs two independent modules (no import
// between them) where the first fails at runtime; the second must still
// execute.
func TestRuntimeErrorIsolatedToModule(t *testing.T) {
	scope, recorded := recorder()

	failing, err := parser.Parse("var x = 1 / 0\n")
	require.NoError(t, err)
	ok, err := parser.Parse("record(\"still ran\")\n")
	require.NoError(t, err)

	mFail := &module.Module{AbsPath: "/virtual/fail.br", AST: failing}
	mOK := &module.Module{AbsPath: "/virtual/ok.br", AST: ok}
	reg := module.NewRegistry()
	reg.Add(mFail)
	reg.Add(mOK)

	report := New(scope).Run(reg, []*module.Module{mFail, mOK}, source.Config{})
	require.False(t, report.Empty())
	require.Equal(t, []value.Value{value.String("still ran")}, *recorded)
}

// TestImportExportAcrossModules exercises the full C1-C5 pipeline end to
// end against real files on disk.
func TestImportExportAcrossModules(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.br")
	mainPath := filepath.Join(dir, "main.br")

	require.NoError(t, os.WriteFile(libPath, []byte(`
export const greeting = "hello"
export function square(x) {
	return x * x
}
`), 0644))
	require.NoError(t, os.WriteFile(mainPath, []byte(`
import { greeting, square } from "lib.br"
record(greeting)
record(square(4))
`), 0644))

	cfg := source.Config{Entrypoint: mainPath}
	reg, err := module.BuildGraph(mainPath, cfg)
	require.NoError(t, err)
	sorted, err := module.TopologicalSort(reg)
	require.NoError(t, err)

	scope, recorded := recorder()
	report := New(scope).Run(reg, sorted, cfg)
	require.True(t, report.Empty(), "unexpected errors: %v", report.Errors)
	require.Equal(t, []value.Value{value.String("hello"), value.Number(16)}, *recorded)
}

// TestImportStarAcrossModules exercises the `import *` star-selector path.
func TestImportStarAcrossModules(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.br")
	mainPath := filepath.Join(dir, "main.br")

	require.NoError(t, os.WriteFile(libPath, []byte(`
export const a = 1
export const b = 2
`), 0644))
	require.NoError(t, os.WriteFile(mainPath, []byte(`
import * from "lib.br"
record(a + b)
`), 0644))

	cfg := source.Config{Entrypoint: mainPath}
	reg, err := module.BuildGraph(mainPath, cfg)
	require.NoError(t, err)
	sorted, err := module.TopologicalSort(reg)
	require.NoError(t, err)

	scope, recorded := recorder()
	report := New(scope).Run(reg, sorted, cfg)
	require.True(t, report.Empty(), "unexpected errors: %v", report.Errors)
	require.Equal(t, []value.Value{value.Number(3)}, *recorded)
}

func TestNestedImportIsRejected(t *testing.T) {
	dir := t.TempDir()
	libPath := filepath.Join(dir, "lib.br")
	mainPath := filepath.Join(dir, "main.br")
	require.NoError(t, os.WriteFile(libPath, []byte("export const a = 1\n"), 0644))
	require.NoError(t, os.WriteFile(mainPath, []byte(`
if (true) {
	import { a } from "lib.br"
}
`), 0644))

	cfg := source.Config{Entrypoint: mainPath}
	reg, err := module.BuildGraph(mainPath, cfg)
	require.NoError(t, err)
	sorted, err := module.TopologicalSort(reg)
	require.NoError(t, err)

	scope, _ := recorder()
	report := New(scope).Run(reg, sorted, cfg)
	require.False(t, report.Empty())
}

func TestBreakAndContinueInLoops(t *testing.T) {
	src := `
var i = 0
while (true) {
	i = i + 1
	if (i == 2) {
		continue
	}
	if (i > 3) {
		break
	}
	record(i)
}
`
	recorded, _ := runSingle(t, src)
	require.Equal(t, []value.Value{value.Number(1), value.Number(3)}, *recorded)
}

// TestListLiteralElementOrder uses go-cmp for the deep-equality check
// (rather than testify) since a List's Elements are themselves Containers
// wrapping Values, not directly comparable with ==.
func TestListLiteralElementOrder(t *testing.T) {
	src := "var xs = [1, 2, 3]\nrecord(xs)\n"
	recorded, _ := runSingle(t, src)
	require.Len(t, *recorded, 1)

	list, ok := (*recorded)[0].(*value.List)
	require.True(t, ok)

	got := make([]value.Value, len(list.Elements))
	for i, c := range list.Elements {
		v, err := c.Read()
		require.NoError(t, err)
		got[i] = v
	}
	want := []value.Value{value.Number(1), value.Number(2), value.Number(3)}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("list elements mismatch (-want +got):\n%s", diff)
	}
}

func TestForLoopElidedClauses(t *testing.T) {
	src := `
var i = 0
for (;;) {
	if (i >= 3) {
		break
	}
	record(i)
	i = i + 1
}
`
	recorded, _ := runSingle(t, src)
	require.Equal(t, []value.Value{value.Number(0), value.Number(1), value.Number(2)}, *recorded)
}
