// Package module implements the module graph and topological sorter: it
// drives parsing depth-first from the entry point, builds the dependency
// graph, detects cycles, and produces an execution order with dependencies
// before dependents, cached in a path-keyed registry.
package module

import (
	"github.com/breeze-lang/breeze/internal/ast"
	"github.com/breeze-lang/breeze/internal/errors"
	"github.com/breeze-lang/breeze/internal/parser"
	"github.com/breeze-lang/breeze/internal/source"
	"github.com/breeze-lang/breeze/internal/value"
)

// Module is a parsed source file together with its environment, exports,
// and dependency set. Identity is AbsPath.
type Module struct {
	AbsPath      string
	AST          *ast.Program
	Dependencies []string // absolute, canonicalized paths, no duplicates

	Stack   *value.Stack
	Exports *value.Scope
}

// Registry is the ordered, path-indexed collection of Module records.
type Registry struct {
	order []string
	byPath map[string]*Module
}

func NewRegistry() *Registry {
	return &Registry{byPath: make(map[string]*Module)}
}

// Add installs m if its path is not already present; re-adding a known path
// is a silent no-op.
func (r *Registry) Add(m *Module) {
	if _, exists := r.byPath[m.AbsPath]; exists {
		return
	}
	r.order = append(r.order, m.AbsPath)
	r.byPath[m.AbsPath] = m
}

// Get returns the Module at path, if present.
func (r *Registry) Get(path string) (*Module, bool) {
	m, ok := r.byPath[path]
	return m, ok
}

// Modules returns every registered Module in registration order.
func (r *Registry) Modules() []*Module {
	out := make([]*Module, len(r.order))
	for i, p := range r.order {
		out[i] = r.byPath[p]
	}
	return out
}

// BuildGraph parses entrypointAbsPath and every module it transitively
// imports, starting a fresh Registry, and returns it without sorting.
func BuildGraph(entrypointAbsPath string, cfg source.Config) (*Registry, error) {
	reg := NewRegistry()
	analyzing := map[string]bool{}
	analyzed := map[string]bool{}

	var search func(path string) error
	search = func(path string) error {
		if analyzed[path] {
			return nil
		}
		if analyzing[path] {
			return errors.New(errors.ResolutionError, "circular dependency including %s", path)
		}

		m, err := parseModule(path)
		if err != nil {
			return err
		}

		deps, err := extractDependencyPaths(m, cfg)
		if err != nil {
			return err
		}
		m.Dependencies = deps

		reg.Add(m)
		analyzing[path] = true

		for _, dep := range deps {
			if err := search(dep); err != nil {
				return err
			}
		}

		delete(analyzing, path)
		analyzed[path] = true
		return nil
	}

	if err := search(entrypointAbsPath); err != nil {
		return nil, err
	}
	return reg, nil
}

// parseModule reads and parses the file at path into a bare Module (no
// dependencies or Stack/Exports yet).
func parseModule(path string) (*Module, error) {
	content, err := source.ReadSource(path)
	if err != nil {
		return nil, err
	}
	prog, err := parser.Parse(content)
	if err != nil {
		return nil, err
	}
	return &Module{AbsPath: path, AST: prog}, nil
}

// extractDependencyPaths scans only statement-root-level import statements
// and resolves each to an absolute, deduplicated path.
func extractDependencyPaths(m *Module, cfg source.Config) ([]string, error) {
	seen := map[string]bool{}
	var deps []string
	for _, stmt := range m.AST.Stmts {
		imp, ok := stmt.(*ast.Import)
		if !ok {
			continue
		}
		abs, err := source.Resolve(m.AbsPath, imp.Path, cfg)
		if err != nil {
			return nil, err
		}
		if !seen[abs] {
			seen[abs] = true
			deps = append(deps, abs)
		}
	}
	return deps, nil
}
