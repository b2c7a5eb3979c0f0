package directive

// Section is an order-preserving selection from a List, referencing
// directives by their position in the original list. Positions double as
// stable directive identities for the ordering engine's claim set.
type Section []int

// Filter selects the positions whose directive satisfies pred, in original
// order.
func (l List) Filter(pred func(Directive) bool) Section {
	out := make(Section, 0, len(l))
	for i, d := range l {
		if pred(d) {
			out = append(out, i)
		}
	}
	return out
}

// Narrow selects from the section the positions whose directive satisfies
// pred, keeping relative order.
func (s Section) Narrow(l List, pred func(Directive) bool) Section {
	out := make(Section, 0, len(s))
	for _, i := range s {
		if pred(l[i]) {
			out = append(out, i)
		}
	}
	return out
}

// Imports returns all import directives.
func (l List) Imports() Section {
	return l.Filter(Directive.IsImport)
}

// Exports returns all export directives.
func (l List) Exports() Section {
	return l.Filter(Directive.IsExport)
}

// DartImports returns the "dart:" imports.
func (l List) DartImports() Section {
	return l.Filter(func(d Directive) bool { return d.IsImport() && d.IsDart() })
}

// NonDartImports returns package and relative imports, i.e. every import
// except the "dart:" ones.
func (l List) NonDartImports() Section {
	return l.Filter(func(d Directive) bool { return d.IsImport() && !d.IsDart() })
}

// RelativeImports returns the imports without a scheme.
func (l List) RelativeImports() Section {
	return l.Filter(func(d Directive) bool { return d.IsImport() && d.IsRelative() })
}

// PackageImports returns the "package:" imports.
func (l List) PackageImports() Section {
	return l.Filter(func(d Directive) bool { return d.IsImport() && d.IsPackage() })
}

// SplitOwnership partitions the package imports into third-party and
// own-package sections. Meaningful only with a non-nil context.
func (l List) SplitOwnership(ctx *PackageContext) (thirdParty, own Section) {
	pkg := l.PackageImports()
	thirdParty = pkg.Narrow(l, func(d Directive) bool { return !d.IsOwnPackage(ctx) })
	own = pkg.Narrow(l, func(d Directive) bool { return d.IsOwnPackage(ctx) })
	return thirdParty, own
}
