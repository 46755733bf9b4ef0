// Package builtins implements the host built-in registration surface plus a
// minimal reference standard library exercising it. The registration
// mechanism (this file and register.go) uses a name→metadata registry
// populated at startup; the concrete built-in set lives separately in
// stdlib.go so a host can swap it without touching the registration
// mechanism or the evaluator.
package builtins

import "github.com/breeze-lang/breeze/internal/value"

// Decl is one built-in declaration, either a Constant or a Function.
type Decl interface {
	declName() string
}

// Constant installs a readable Container under name holding Value verbatim.
type Constant struct {
	Name  string
	Value value.Value
}

func (c Constant) declName() string { return c.Name }

// HostFunc is the raw-value shape a host built-in implements: arguments
// already unwrapped from their Containers, result to be wrapped back into
// an anonymous readable Container by the registration mechanism.
type HostFunc func(args []value.Value) (value.Value, error)

// Function installs a Function value whose callable validates arity,
// unwraps readable argument Containers, invokes Host, and wraps the result.
// Arity is exact; host built-ins needing variable arity are out of scope
// of this reference set.
type Function struct {
	Name  string
	Arity int
	Host  HostFunc
}

func (f Function) declName() string { return f.Name }
