package directive

import (
	"dartlint/internal/source"
)

// Kind distinguishes import directives from export directives.
type Kind uint8

const (
	KindImport Kind = iota
	KindExport
)

func (k Kind) String() string {
	switch k {
	case KindImport:
		return "import"
	case KindExport:
		return "export"
	}
	return "unknown"
}

// Directive is one import or export declaration of a source file, carrying
// its URI and the span of the whole declaration. Immutable once extracted.
type Directive struct {
	Kind Kind
	URI  string
	Span source.Span
}

// List holds the directives of one compilation unit exactly in the order
// they appear in the file. The list is never re-sorted; every derived view
// preserves the original relative order.
type List []Directive

// PackageContext identifies the package owning the analyzed file.
// A nil *PackageContext disables the own/third-party distinction.
type PackageContext struct {
	Name string
}
