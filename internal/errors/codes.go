// Package errors provides the structured error taxonomy shared by every
// phase of the interpreter (source resolution, lexing, parsing, module
// resolution, evaluation), using a kind-to-phase table.
package errors

// Kind identifies one entry in the error taxonomy.
type Kind string

const (
	PathError       Kind = "PathError"
	ModuleError     Kind = "ModuleError"
	ResolutionError Kind = "ResolutionError"
	LexerError      Kind = "LexerError"
	ParserError     Kind = "ParserError"
	NameError       Kind = "NameError"
	TypeError       Kind = "TypeError"
	ValueError      Kind = "ValueError"
	ParameterError  Kind = "ParameterError"
	ExpressionError Kind = "ExpressionError"
	ImportError     Kind = "ImportError"
)

// Phase groups kinds by where in the pipeline they can originate, used to
// decide the propagation policy: compile-time phases abort the whole run
// before evaluation begins, the runtime phase aborts only the current
// module.
type Phase string

const (
	PhaseSource  Phase = "source"
	PhaseLex     Phase = "lex"
	PhaseParse   Phase = "parse"
	PhaseResolve Phase = "resolve"
	PhaseRuntime Phase = "runtime"
)

var kindPhase = map[Kind]Phase{
	PathError:       PhaseSource,
	ModuleError:     PhaseSource,
	ResolutionError: PhaseResolve,
	LexerError:      PhaseLex,
	ParserError:     PhaseParse,
	NameError:       PhaseRuntime,
	TypeError:       PhaseRuntime,
	ValueError:      PhaseRuntime,
	ParameterError:  PhaseRuntime,
	ExpressionError: PhaseRuntime,
	ImportError:     PhaseRuntime,
}

// PhaseOf reports which phase a Kind belongs to.
func PhaseOf(k Kind) Phase {
	return kindPhase[k]
}

// IsCompileTime reports whether an error of this kind aborts the whole run
// before evaluation begins, as opposed to
// aborting only the current module.
func IsCompileTime(k Kind) bool {
	p := PhaseOf(k)
	return p == PhaseSource || p == PhaseLex || p == PhaseParse || p == PhaseResolve
}
