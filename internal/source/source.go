// Package source implements the source reader and alias resolver: turning
// an import string into an absolute, canonical file path, and reading its
// contents, with path-normalization helpers shared by every caller.
package source

import (
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/breeze-lang/breeze/internal/errors"
)

// AliasPrefix opens an alias-qualified import string.
const AliasPrefix = "@"

// SourceExtension is the recognized extension for in-language modules.
const SourceExtension = ".br"

// Config supplies the already-normalized project configuration: an absolute
// entry point and an alias table mapping alias name to absolute root
// directory.
type Config struct {
	Entrypoint string
	Aliases    map[string]string
}

// Resolve turns importString, seen while parsing importerAbsPath, into an
// absolute, canonical path.
func Resolve(importerAbsPath, importString string, cfg Config) (string, error) {
	if !filepath.IsAbs(importerAbsPath) {
		return "", errors.New(errors.PathError, "importer path is not absolute: %s", importerAbsPath)
	}

	var target string
	if strings.HasPrefix(importString, AliasPrefix) {
		rest := strings.TrimPrefix(importString, AliasPrefix)
		alias, ok := longestMatchingAlias(rest, cfg.Aliases)
		if !ok {
			return "", errors.New(errors.PathError, "no alias matches %q", importString)
		}
		suffix := strings.TrimPrefix(rest, alias)
		target = filepath.Join(cfg.Aliases[alias], suffix)
	} else {
		target = filepath.Join(filepath.Dir(importerAbsPath), importString)
	}

	canonical, err := canonicalize(target)
	if err != nil {
		return "", errors.New(errors.PathError, "cannot resolve %q: %v", importString, err)
	}

	info, err := os.Stat(canonical)
	if err != nil || info.IsDir() {
		return "", errors.New(errors.PathError, "file does not exist: %s", canonical)
	}
	if filepath.Ext(canonical) != SourceExtension {
		return "", errors.New(errors.PathError, "unrecognized source extension: %s", canonical)
	}
	return canonical, nil
}

// longestMatchingAlias finds the registered alias name that is the longest
// prefix of rest. A name matches only when rest equals it or continues with
// "/" right after it. Names containing "/" are not rejected.
func longestMatchingAlias(rest string, aliases map[string]string) (string, bool) {
	names := make([]string, 0, len(aliases))
	for name := range aliases {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	for _, name := range names {
		if rest == name || strings.HasPrefix(rest, name+"/") {
			return name, true
		}
	}
	return "", false
}

// canonicalize resolves ".." segments and symlinks. filepath.EvalSymlinks
// requires the path to exist; when it fails, the cleaned path is returned
// with a nil error, and Resolve's own os.Stat afterward reports the missing
// file as a PathError.
func canonicalize(path string) (string, error) {
	clean := filepath.Clean(path)
	resolved, err := filepath.EvalSymlinks(clean)
	if err != nil {
		return clean, nil
	}
	return resolved, nil
}

// ReadSource opens and reads the file at absPath, guaranteeing Close on
// every exit path.
func ReadSource(absPath string) (string, error) {
	f, err := os.Open(absPath)
	if err != nil {
		return "", errors.New(errors.ModuleError, "cannot open %s: %v", absPath, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return "", errors.New(errors.ModuleError, "cannot read %s: %v", absPath, err)
	}
	return string(data), nil
}
