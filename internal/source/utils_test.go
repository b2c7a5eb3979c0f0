package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestToLineCol(t *testing.T) {
	content := []byte("import 'a.dart';\nimport 'b.dart';\n\nexport 'c.dart';")
	lineIdx := buildLineIndex(content)

	tests := []struct {
		name     string
		off      uint32
		expected LineCol
	}{
		{name: "first byte", off: 0, expected: LineCol{Line: 1, Col: 1}},
		{name: "middle of first line", off: 7, expected: LineCol{Line: 1, Col: 8}},
		{name: "newline belongs to its line", off: 16, expected: LineCol{Line: 1, Col: 17}},
		{name: "start of second line", off: 17, expected: LineCol{Line: 2, Col: 1}},
		{name: "empty third line", off: 34, expected: LineCol{Line: 3, Col: 1}},
		{name: "start of fourth line", off: 35, expected: LineCol{Line: 4, Col: 1}},
		{name: "middle of fourth line", off: 42, expected: LineCol{Line: 4, Col: 8}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := toLineCol(lineIdx, tt.off)
			if got != tt.expected {
				t.Errorf("toLineCol(%d) = %v, want %v", tt.off, got, tt.expected)
			}
		})
	}
}

func TestToLineCol_NoNewlines(t *testing.T) {
	got := toLineCol(nil, 5)
	if (got != LineCol{Line: 1, Col: 6}) {
		t.Errorf("toLineCol(5) = %v, want 1:6", got)
	}
}

func TestNormalizeCRLF(t *testing.T) {
	tests := []struct {
		name        string
		in          string
		expected    string
		wantChanged bool
	}{
		{name: "no carriage returns", in: "a\nb\n", expected: "a\nb\n", wantChanged: false},
		{name: "crlf pairs replaced", in: "a\r\nb\r\n", expected: "a\nb\n", wantChanged: true},
		{name: "lone cr preserved", in: "a\rb", expected: "a\rb", wantChanged: false},
		{name: "mixed", in: "a\r\nb\rc\n", expected: "a\nb\rc\n", wantChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := normalizeCRLF([]byte(tt.in))
			if string(got) != tt.expected {
				t.Errorf("normalizeCRLF(%q) = %q, want %q", tt.in, got, tt.expected)
			}
			if changed != tt.wantChanged {
				t.Errorf("changed = %v, want %v", changed, tt.wantChanged)
			}
		})
	}
}

func TestRemoveBOM(t *testing.T) {
	withBOM := []byte{0xEF, 0xBB, 0xBF, 'a'}
	got, had := removeBOM(withBOM)
	if !had || string(got) != "a" {
		t.Errorf("removeBOM = (%q, %v), want (\"a\", true)", got, had)
	}

	plain := []byte("abc")
	got, had = removeBOM(plain)
	if had || string(got) != "abc" {
		t.Errorf("removeBOM = (%q, %v), want (\"abc\", false)", got, had)
	}
}

func TestRelativePathInsideBaseStaysRelative(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		t.Fatalf("failed to create base dir: %v", err)
	}

	target := filepath.Join(baseDir, "nested", "file.dart")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(filepath.Join("nested", "file.dart"))
	if got != want {
		t.Fatalf("expected relative path %q, got %q", want, got)
	}
}

func TestRelativePathOutsideBaseFallsBackToAbsolute(t *testing.T) {
	tmp := t.TempDir()

	baseDir := filepath.Join(tmp, "base")
	otherDir := filepath.Join(tmp, "other")
	for _, dir := range []string{baseDir, otherDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("failed to create dir: %v", err)
		}
	}

	target := filepath.Join(otherDir, "file.dart")
	got, err := RelativePath(target, baseDir)
	if err != nil {
		t.Fatalf("RelativePath returned error: %v", err)
	}

	want := normalizePath(target)
	if got != want {
		t.Fatalf("expected absolute fallback %q, got %q", want, got)
	}
}
