package module

import "github.com/breeze-lang/breeze/internal/errors"

// TopologicalSort orders reg's modules so that every dependency appears
// before its dependent: a Kahn-style in-degree pre-pass (in-degree of a
// module counts how many other modules import it) selects the modules
// nobody imports to seed a DFS that recurses into dependencies before
// appending the module itself, yielding a dependency-first order directly.
func TopologicalSort(reg *Registry) ([]*Module, error) {
	modules := reg.Modules()

	inDegree := make(map[string]int, len(modules))
	for _, m := range modules {
		inDegree[m.AbsPath] = 0
	}
	for _, m := range modules {
		for _, dep := range m.Dependencies {
			inDegree[dep]++
		}
	}

	discovered := map[string]bool{}
	analyzed := map[string]bool{}
	var sorted []*Module

	var dfs func(m *Module) error
	dfs = func(m *Module) error {
		if discovered[m.AbsPath] {
			return errors.New(errors.ResolutionError, "circular dependency including %s", m.AbsPath)
		}
		if analyzed[m.AbsPath] {
			return nil
		}
		discovered[m.AbsPath] = true

		for _, depPath := range m.Dependencies {
			dep, ok := reg.Get(depPath)
			if !ok {
				return errors.New(errors.ResolutionError, "registry inconsistency: dependency %s not found", depPath)
			}
			if err := dfs(dep); err != nil {
				return err
			}
		}

		delete(discovered, m.AbsPath)
		analyzed[m.AbsPath] = true
		sorted = append(sorted, m)
		return nil
	}

	for _, m := range modules {
		if inDegree[m.AbsPath] == 0 {
			if err := dfs(m); err != nil {
				return nil, err
			}
		}
	}

	if len(modules) > 0 && len(sorted) == 0 {
		return nil, errors.New(errors.ResolutionError, "circular dependency: every module is dependent on others")
	}
	if len(sorted) != len(modules) {
		return nil, errors.New(errors.ResolutionError, "circular dependency: not every module could be ordered")
	}

	// dfs recurses into each module's dependencies before appending the
	// module itself, so sorted is already dependency-first: no further
	// reversal is needed.
	return sorted, nil
}
