package source

import (
	"testing"
)

func TestFileSet_AddVirtualAndResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.dart", []byte("import 'a.dart';\nimport 'b.dart';\n"))

	f := fs.Get(id)
	if f.Flags&FileVirtual == 0 {
		t.Errorf("expected FileVirtual flag on %q", f.Path)
	}

	// Span of "'b.dart'" on the second line.
	start, end := fs.Resolve(Span{File: id, Start: 24, End: 32})
	if (start != LineCol{Line: 2, Col: 8}) {
		t.Errorf("start = %v, want 2:8", start)
	}
	if (end != LineCol{Line: 2, Col: 16}) {
		t.Errorf("end = %v, want 2:16", end)
	}
}

func TestFileSet_GetByPathReturnsLatest(t *testing.T) {
	fs := NewFileSet()
	fs.AddVirtual("lib/a.dart", []byte("old"))
	second := fs.AddVirtual("lib/a.dart", []byte("new"))

	f, ok := fs.GetByPath("lib/a.dart")
	if !ok {
		t.Fatalf("expected lib/a.dart to be present")
	}
	if f.ID != second {
		t.Errorf("expected latest ID %d, got %d", second, f.ID)
	}
	if string(f.Content) != "new" {
		t.Errorf("expected latest content, got %q", f.Content)
	}
}

func TestFile_GetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("test.dart", []byte("line one\nline two\nline three"))
	f := fs.Get(id)

	tests := []struct {
		name     string
		lineNum  uint32
		expected string
	}{
		{name: "first line", lineNum: 1, expected: "line one"},
		{name: "middle line", lineNum: 2, expected: "line two"},
		{name: "last line without newline", lineNum: 3, expected: "line three"},
		{name: "line zero", lineNum: 0, expected: ""},
		{name: "past the end", lineNum: 4, expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.GetLine(tt.lineNum); got != tt.expected {
				t.Errorf("GetLine(%d) = %q, want %q", tt.lineNum, got, tt.expected)
			}
		})
	}
}
