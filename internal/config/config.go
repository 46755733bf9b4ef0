// Package config reads a project configuration file and builds the
// normalized {entrypoint, aliases} struct the core accepts, using
// gopkg.in/yaml.v3 for the on-disk YAML format.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/breeze-lang/breeze/internal/source"
	"gopkg.in/yaml.v3"
)

// FileName is the conventional project configuration file name.
const FileName = "breeze.config.yaml"

// raw mirrors the on-disk YAML shape.
type raw struct {
	Entrypoint string            `yaml:"entrypoint"`
	Aliases    map[string]string `yaml:"aliases"`
}

// Load reads and parses the configuration file at path, resolving
// entrypoint and every alias root to an absolute path relative to the
// config file's own directory.
func Load(path string) (source.Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return source.Config{}, fmt.Errorf("config: cannot read %s: %w", path, err)
	}

	var r raw
	if err := yaml.Unmarshal(data, &r); err != nil {
		return source.Config{}, fmt.Errorf("config: cannot parse %s: %w", path, err)
	}
	if r.Entrypoint == "" {
		return source.Config{}, fmt.Errorf("config: %s: entrypoint is required", path)
	}

	base := filepath.Dir(path)
	entrypoint, err := toAbs(base, r.Entrypoint)
	if err != nil {
		return source.Config{}, err
	}
	if ext := filepath.Ext(entrypoint); ext != source.SourceExtension {
		return source.Config{}, fmt.Errorf("config: entrypoint %s must have extension %s", entrypoint, source.SourceExtension)
	}
	if info, err := os.Stat(entrypoint); err != nil || info.IsDir() {
		return source.Config{}, fmt.Errorf("config: entrypoint %s does not exist", entrypoint)
	}

	aliases := make(map[string]string, len(r.Aliases))
	for name, root := range r.Aliases {
		abs, err := toAbs(base, root)
		if err != nil {
			return source.Config{}, err
		}
		aliases[name] = abs
	}

	return source.Config{Entrypoint: entrypoint, Aliases: aliases}, nil
}

func toAbs(base, p string) (string, error) {
	if filepath.IsAbs(p) {
		return filepath.Clean(p), nil
	}
	abs, err := filepath.Abs(filepath.Join(base, p))
	if err != nil {
		return "", fmt.Errorf("config: cannot resolve %s: %w", p, err)
	}
	return abs, nil
}
