package project

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func TestResolvePackageContext_WalksUpToPubspec(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "pubspec.yaml"), "name: myapp\ndescription: test\n")
	dartFile := filepath.Join(tmp, "lib", "src", "util.dart")
	writeFile(t, dartFile, "import 'dart:io';\n")

	ctx := ResolvePackageContext(filepath.Dir(dartFile))
	if ctx == nil {
		t.Fatalf("expected a package context")
	}
	if ctx.Name != "myapp" {
		t.Errorf("Name = %q, want %q", ctx.Name, "myapp")
	}
}

func TestResolvePackageContext_NoPubspec(t *testing.T) {
	tmp := t.TempDir()
	dartFile := filepath.Join(tmp, "main.dart")
	writeFile(t, dartFile, "import 'dart:io';\n")

	if ctx := ResolvePackageContext(filepath.Dir(dartFile)); ctx != nil {
		t.Errorf("expected nil context without pubspec, got %+v", ctx)
	}
}

func TestResolvePackageContext_NamelessPubspec(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "pubspec.yaml"), "description: no name here\n")
	dartFile := filepath.Join(tmp, "main.dart")
	writeFile(t, dartFile, "")

	if ctx := ResolvePackageContext(filepath.Dir(dartFile)); ctx != nil {
		t.Errorf("expected nil context for nameless pubspec, got %+v", ctx)
	}
}

func TestResolvePackageContext_MalformedPubspec(t *testing.T) {
	tmp := t.TempDir()
	writeFile(t, filepath.Join(tmp, "pubspec.yaml"), ":\tnot yaml at all {{{")
	dartFile := filepath.Join(tmp, "main.dart")
	writeFile(t, dartFile, "")

	if ctx := ResolvePackageContext(filepath.Dir(dartFile)); ctx != nil {
		t.Errorf("expected nil context for malformed pubspec, got %+v", ctx)
	}
}

func TestLoadConfig(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "dartlint.toml")
	writeFile(t, path, `
[checks]
dart_first = true
alphabetize = false

[analysis]
package = "pinned"
exclude = ["build", "*_generated.dart"]
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	set := cfg.CheckSet()
	if !set.DartFirst {
		t.Errorf("DartFirst should stay enabled")
	}
	if set.Alphabetize {
		t.Errorf("Alphabetize should be disabled")
	}
	if !set.ExportAfterImport {
		t.Errorf("unset checks must default to enabled")
	}
	if cfg.Analysis.Package != "pinned" {
		t.Errorf("Package = %q, want %q", cfg.Analysis.Package, "pinned")
	}
}

func TestResolveConfig_MissingFileGivesDefaults(t *testing.T) {
	tmp := t.TempDir()

	cfg, err := ResolveConfig(tmp, "")
	if err != nil {
		t.Fatalf("ResolveConfig failed: %v", err)
	}
	set := cfg.CheckSet()
	if !set.DartFirst || !set.PackageBeforeRelative || !set.ThirdPartyBeforeOwn ||
		!set.ExportAfterImport || !set.Alphabetize {
		t.Errorf("default config must enable every check, got %+v", set)
	}
}

func TestConfig_Excluded(t *testing.T) {
	cfg := &Config{}
	cfg.Analysis.Exclude = []string{"build", "*_generated.dart"}

	tests := []struct {
		name     string
		relPath  string
		expected bool
	}{
		{name: "file under excluded dir", relPath: "build/main.dart", expected: true},
		{name: "deeply nested under excluded dir", relPath: "build/sub/x.dart", expected: true},
		{name: "generated file pattern", relPath: "models_generated.dart", expected: true},
		{name: "regular file", relPath: "lib/main.dart", expected: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cfg.Excluded(tt.relPath); got != tt.expected {
				t.Errorf("Excluded(%q) = %v, want %v", tt.relPath, got, tt.expected)
			}
		})
	}
}
