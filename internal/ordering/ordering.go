// Package ordering implements the directive-ordering checks for one
// compilation unit. Five checks run in a fixed priority order over the
// extracted directive list, sharing a claim set so every directive is
// reported at most once: dart-imports-first, package-before-relative,
// third-party-before-own, export-after-import, alphabetical-within-section.
package ordering

import (
	"dartlint/internal/diag"
	"dartlint/internal/directive"
)

// The five fixed messages, one per check.
const (
	MsgDartImportGoFirst           = "Place 'dart:' imports before other imports."
	MsgPackageImportBeforeRelative = "Place 'package:' imports before relative imports."
	MsgThirdPartyBeforeOwn         = "Place 'third-party' 'package:' imports before own package imports."
	MsgExportAfterImport           = "Specify exports in a separate section after all imports."
	MsgSectionNotAlphabetical      = "Sort directive sections alphabetically."
)

// Config enables individual checks. The zero value disables everything;
// use AllChecks for the default configuration.
type Config struct {
	DartFirst             bool
	PackageBeforeRelative bool
	ThirdPartyBeforeOwn   bool
	ExportAfterImport     bool
	Alphabetize           bool
}

// AllChecks returns a Config with every check enabled.
func AllChecks() Config {
	return Config{
		DartFirst:             true,
		PackageBeforeRelative: true,
		ThirdPartyBeforeOwn:   true,
		ExportAfterImport:     true,
		Alphabetize:           true,
	}
}

// Run executes the enabled checks over one directive list and emits a
// warning for every violating directive. ctx may be nil; that disables the
// third-party/own distinction (check 3 and the ownership sections of check
// 5) while leaving the other checks fully active. The claim set is scoped
// to this single run: no state survives across files.
func Run(list directive.List, ctx *directive.PackageContext, cfg Config, r diag.Reporter) {
	e := &engine{
		list:    list,
		ctx:     ctx,
		r:       r,
		claimed: make(map[int]struct{}, len(list)),
	}

	// Priority order is deterministic: an earlier check's claim on a
	// directive suppresses every later check's claim on the same one.
	if cfg.DartFirst {
		e.checkDartImportsGoFirst()
	}
	if cfg.PackageBeforeRelative {
		e.checkPackageImportsBeforeRelative()
	}
	if cfg.ThirdPartyBeforeOwn && ctx != nil {
		e.checkThirdPartyImportsBeforeOwn()
	}
	if cfg.ExportAfterImport {
		e.checkExportDirectivesLast()
	}
	if cfg.Alphabetize {
		e.checkSectionsAlphabetical()
	}
}

type engine struct {
	list directive.List
	ctx  *directive.PackageContext
	r    diag.Reporter

	// claimed holds the positions of directives already reported by any
	// check in this run.
	claimed map[int]struct{}
}

// flag reports the directive at position idx unless an earlier check
// already claimed it.
func (e *engine) flag(idx int, code diag.Code, msg string) {
	if _, ok := e.claimed[idx]; ok {
		return
	}
	e.claimed[idx] = struct{}{}
	diag.ReportWarning(e.r, code, e.list[idx].Span, msg).Emit()
}

// Check 1: a dart import is in place only inside the leading contiguous run
// of dart imports; every dart import after that run is flagged.
func (e *engine) checkDartImportsGoFirst() {
	imports := e.list.Imports()

	i := 0
	for i < len(imports) && e.list[imports[i]].IsDart() {
		i++
	}
	for ; i < len(imports); i++ {
		if e.list[imports[i]].IsDart() {
			e.flag(imports[i], diag.OrdDartImportFirst, MsgDartImportGoFirst)
		}
	}
}

// Check 2: over the non-dart imports, package imports must form a leading
// run; a package import appearing after relative imports have started is
// out of order.
func (e *engine) checkPackageImportsBeforeRelative() {
	imports := e.list.NonDartImports()

	i := 0
	for i < len(imports) && e.list[imports[i]].IsAbsolute() {
		i++
	}
	for ; i < len(imports); i++ {
		if e.list[imports[i]].IsPackage() {
			e.flag(imports[i], diag.OrdPackageBeforeRelative, MsgPackageImportBeforeRelative)
		}
	}
}

// Check 3: over the package imports, third-party imports must precede
// own-package imports. Runs only with a package context.
func (e *engine) checkThirdPartyImportsBeforeOwn() {
	pkg := e.list.PackageImports()

	i := 0
	for i < len(pkg) && !e.list[pkg[i]].IsOwnPackage(e.ctx) {
		i++
	}
	for ; i < len(pkg); i++ {
		if !e.list[pkg[i]].IsOwnPackage(e.ctx) {
			e.flag(pkg[i], diag.OrdThirdPartyBeforeOwn, MsgThirdPartyBeforeOwn)
		}
	}
}

// Check 4: exports form a single trailing block. Walking the full directive
// list backwards, skip the trailing contiguous run of exports; any export
// found further in is interleaved with or precedes imports.
func (e *engine) checkExportDirectivesLast() {
	i := len(e.list) - 1
	for i >= 0 && e.list[i].IsExport() {
		i--
	}
	for ; i >= 0; i-- {
		if e.list[i].IsExport() {
			e.flag(i, diag.OrdExportAfterImport, MsgExportAfterImport)
		}
	}
}

// Check 5: each section must be sorted alphabetically by URI. Sections run
// in a fixed order; with a package context the package imports are checked
// as two sections (third-party, then own), otherwise as one.
func (e *engine) checkSectionsAlphabetical() {
	sections := []directive.Section{
		e.list.DartImports(),
		e.list.RelativeImports(),
		e.list.Exports(),
	}
	if e.ctx != nil {
		thirdParty, own := e.list.SplitOwnership(e.ctx)
		sections = append(sections, thirdParty, own)
	} else {
		sections = append(sections, e.list.PackageImports())
	}

	for _, section := range sections {
		e.checkSectionInOrder(section)
	}
}

// checkSectionInOrder flags every directive whose URI compares less than
// its immediate predecessor's. The baseline advances on every step, flagged
// or not: a flagged directive still serves as the next comparison's
// predecessor, it is only exempt from being reported twice.
func (e *engine) checkSectionInOrder(section directive.Section) {
	for j := 1; j < len(section); j++ {
		prev := e.list[section[j-1]]
		cur := e.list[section[j]]
		if prev.URI > cur.URI {
			e.flag(section[j], diag.OrdSectionAlphabetical, MsgSectionNotAlphabetical)
		}
	}
}
