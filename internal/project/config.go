package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"dartlint/internal/ordering"
)

const configFileName = "dartlint.toml"

// Config is the decoded dartlint.toml. All checks default to enabled;
// the analysis table can pin the package name and exclude paths from
// directory walks.
type Config struct {
	Path     string         `toml:"-"`
	Checks   ChecksConfig   `toml:"checks"`
	Analysis AnalysisConfig `toml:"analysis"`
}

type ChecksConfig struct {
	DartFirst             *bool `toml:"dart_first"`
	PackageBeforeRelative *bool `toml:"package_before_relative"`
	ThirdPartyBeforeOwn   *bool `toml:"third_party_before_own"`
	ExportAfterImport     *bool `toml:"export_after_import"`
	Alphabetize           *bool `toml:"alphabetize"`
}

type AnalysisConfig struct {
	// Package overrides the pubspec-derived package name.
	Package string `toml:"package"`
	// Exclude lists glob patterns (matched against slash-separated paths
	// relative to the walk root) skipped during directory lints.
	Exclude []string `toml:"exclude"`
}

// DefaultConfig returns the configuration used when no dartlint.toml is
// found: every check on, no excludes.
func DefaultConfig() *Config {
	return &Config{}
}

// FindConfig walks up from startDir to the nearest dartlint.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
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

// LoadConfig decodes one dartlint.toml.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{Path: path}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %q: %w", path, err)
	}
	return cfg, nil
}

// ResolveConfig loads the nearest config, or an explicit one when path is
// non-empty. Absence of a config file is not an error.
func ResolveConfig(startDir, path string) (*Config, error) {
	if path != "" {
		return LoadConfig(path)
	}
	found, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, err
	}
	if !ok {
		return DefaultConfig(), nil
	}
	return LoadConfig(found)
}

// CheckSet translates the config into the engine's check switches.
// Unset fields stay enabled.
func (c *Config) CheckSet() ordering.Config {
	set := ordering.AllChecks()
	apply := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	apply(&set.DartFirst, c.Checks.DartFirst)
	apply(&set.PackageBeforeRelative, c.Checks.PackageBeforeRelative)
	apply(&set.ThirdPartyBeforeOwn, c.Checks.ThirdPartyBeforeOwn)
	apply(&set.ExportAfterImport, c.Checks.ExportAfterImport)
	apply(&set.Alphabetize, c.Checks.Alphabetize)
	return set
}

// Excluded reports whether relPath (slash-separated, relative to the walk
// root) matches any exclude pattern. Patterns also match whole directory
// prefixes, so "build" excludes everything under build/.
func (c *Config) Excluded(relPath string) bool {
	for _, pattern := range c.Analysis.Exclude {
		if ok, err := filepath.Match(pattern, relPath); err == nil && ok {
			return true
		}
		// Directory prefix match.
		for dir := filepath.Dir(relPath); dir != "." && dir != "/"; dir = filepath.Dir(dir) {
			if ok, err := filepath.Match(pattern, dir); err == nil && ok {
				return true
			}
		}
	}
	return false
}
