package directive

import (
	"strings"
)

// Classification is a set of pure predicates over one directive. URIs are
// classified by prefix only; malformed URIs are never rejected.

const (
	dartPrefix    = "dart:"
	packagePrefix = "package:"
)

func (d Directive) IsImport() bool {
	return d.Kind == KindImport
}

func (d Directive) IsExport() bool {
	return d.Kind == KindExport
}

// IsDart reports whether the URI names an SDK library ("dart:" scheme).
func (d Directive) IsDart() bool {
	return strings.HasPrefix(d.URI, dartPrefix)
}

// IsAbsolute reports whether the URI carries a scheme colon. Both "dart:"
// and "package:" URIs are absolute.
func (d Directive) IsAbsolute() bool {
	return strings.Contains(d.URI, ":")
}

// IsRelative reports whether the URI has no scheme at all.
func (d Directive) IsRelative() bool {
	return !d.IsAbsolute()
}

// IsPackage reports whether the URI uses the "package:" scheme.
func (d Directive) IsPackage() bool {
	return strings.HasPrefix(d.URI, packagePrefix)
}

// IsOwnPackage reports whether the URI points into the package named by ctx.
// With a nil context no directive counts as own; a package import that is
// not own is third-party.
func (d Directive) IsOwnPackage(ctx *PackageContext) bool {
	if ctx == nil || ctx.Name == "" {
		return false
	}
	return strings.HasPrefix(d.URI, packagePrefix+ctx.Name+"/")
}
