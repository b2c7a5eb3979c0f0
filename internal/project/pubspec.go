// Package project resolves the ambient context of an analyzed file: the
// owning package's name from the nearest pubspec.yaml and the optional
// dartlint.toml tool configuration.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"dartlint/internal/directive"
)

// Pubspec carries the fields of pubspec.yaml the linter cares about.
type Pubspec struct {
	Path string
	Name string `yaml:"name"`
}

// FindPubspec walks up from startDir to locate the nearest pubspec.yaml.
func FindPubspec(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, "pubspec.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

// LoadPubspec reads and decodes one pubspec.yaml.
func LoadPubspec(path string) (*Pubspec, error) {
	// #nosec G304 -- path comes from the walk-up above
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	spec := &Pubspec{Path: path}
	if err := yaml.Unmarshal(content, spec); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return spec, nil
}

// ResolvePackageContext derives the package identity for files under dir.
// A missing or unreadable pubspec, or one without a name, yields a nil
// context: that is a recognized configuration state, not an error, and
// disables the own/third-party checks downstream.
func ResolvePackageContext(dir string) *directive.PackageContext {
	path, ok, err := FindPubspec(dir)
	if err != nil || !ok {
		return nil
	}
	spec, err := LoadPubspec(path)
	if err != nil || spec.Name == "" {
		return nil
	}
	return &directive.PackageContext{Name: spec.Name}
}
