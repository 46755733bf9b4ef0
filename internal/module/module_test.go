package module

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/breeze-lang/breeze/internal/source"
	"github.com/stretchr/testify/require"
)

func writeModule(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestBuildGraphAndTopologicalSort_LinearChain(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "c.br", "const z = 1\n")
	writeModule(t, dir, "b.br", "import {z} from \"./c.br\"\n")
	aPath := writeModule(t, dir, "a.br", "import {z} from \"./b.br\"\n")

	reg, err := BuildGraph(aPath, source.Config{})
	require.NoError(t, err)

	sorted, err := TopologicalSort(reg)
	require.NoError(t, err)
	require.Len(t, sorted, 3)

	names := make([]string, len(sorted))
	for i, m := range sorted {
		names[i] = filepath.Base(m.AbsPath)
	}
	require.Equal(t, []string{"c.br", "b.br", "a.br"}, names)
}

func TestBuildGraphDetectsCycle(t *testing.T) {
	dir := t.TempDir()
	writeModule(t, dir, "a.br", "import * from \"./b.br\"\n")
	bPath := writeModule(t, dir, "b.br", "import * from \"./a.br\"\n")

	_, err := BuildGraph(bPath, source.Config{})
	require.Error(t, err)
}

func TestRegistryAddIsIdempotentByPath(t *testing.T) {
	reg := NewRegistry()
	m1 := &Module{AbsPath: "/a.br"}
	m2 := &Module{AbsPath: "/a.br"}
	reg.Add(m1)
	reg.Add(m2)
	require.Len(t, reg.Modules(), 1)
	got, ok := reg.Get("/a.br")
	require.True(t, ok)
	require.Same(t, m1, got)
}
