package ordering

import (
	"testing"

	"dartlint/internal/diag"
	"dartlint/internal/directive"
	"dartlint/internal/source"
)

func imp(uri string) directive.Directive {
	return directive.Directive{Kind: directive.KindImport, URI: uri}
}

func exp(uri string) directive.Directive {
	return directive.Directive{Kind: directive.KindExport, URI: uri}
}

// makeList assigns every directive a distinct span so findings can be
// traced back to positions in the list.
func makeList(ds ...directive.Directive) directive.List {
	list := make(directive.List, len(ds))
	for i, d := range ds {
		d.Span = source.Span{File: 0, Start: uint32(i * 100), End: uint32(i*100 + 10)}
		list[i] = d
	}
	return list
}

func runChecks(list directive.List, ctx *directive.PackageContext) []diag.Diagnostic {
	bag := diag.NewBag(100)
	Run(list, ctx, AllChecks(), diag.BagReporter{Bag: bag})
	return bag.Items()
}

type finding struct {
	pos  int // position in the directive list
	code diag.Code
}

func assertFindings(t *testing.T, got []diag.Diagnostic, want []finding) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d findings, want %d: %+v", len(got), len(want), got)
	}
	for i, w := range want {
		if got[i].Code != w.code {
			t.Errorf("finding %d: code = %v, want %v", i, got[i].Code, w.code)
		}
		if wantStart := uint32(w.pos * 100); got[i].Primary.Start != wantStart {
			t.Errorf("finding %d: points at offset %d, want directive %d (offset %d)",
				i, got[i].Primary.Start, w.pos, wantStart)
		}
	}
}

func TestDartImportsGoFirst(t *testing.T) {
	list := makeList(
		imp("package:bar/bar.dart"),
		imp("package:foo/foo.dart"),
		imp("dart:async"),
		imp("dart:html"),
	)

	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 2, code: diag.OrdDartImportFirst},
		{pos: 3, code: diag.OrdDartImportFirst},
	})
}

func TestDartImportsInLeadingRunAreFine(t *testing.T) {
	list := makeList(
		imp("dart:async"),
		imp("dart:html"),
		imp("package:foo/foo.dart"),
		imp("a.dart"),
	)

	assertFindings(t, runChecks(list, nil), nil)
}

func TestPackageImportsBeforeRelative(t *testing.T) {
	list := makeList(
		imp("a.dart"),
		imp("b.dart"),
		imp("package:bar/bar.dart"),
		imp("package:foo/foo.dart"),
	)

	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 2, code: diag.OrdPackageBeforeRelative},
		{pos: 3, code: diag.OrdPackageBeforeRelative},
	})
}

func TestThirdPartyImportsBeforeOwn(t *testing.T) {
	list := makeList(
		imp("package:myapp/io.dart"),
		imp("package:myapp/util.dart"),
		imp("package:bar/bar.dart"),
		imp("package:foo/foo.dart"),
	)

	ctx := &directive.PackageContext{Name: "myapp"}
	assertFindings(t, runChecks(list, ctx), []finding{
		{pos: 2, code: diag.OrdThirdPartyBeforeOwn},
		{pos: 3, code: diag.OrdThirdPartyBeforeOwn},
	})
}

func TestThirdPartyCheckSkippedWithoutContext(t *testing.T) {
	list := makeList(
		imp("package:myapp/io.dart"),
		imp("package:bar/bar.dart"),
	)

	// Without a package context the only finding comes from the
	// alphabetical check over the combined package section.
	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 1, code: diag.OrdSectionAlphabetical},
	})
}

func TestExportDirectivesLast(t *testing.T) {
	list := makeList(
		imp("src/error.dart"),
		exp("src/error.dart"),
		imp("src/string_source.dart"),
	)

	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 1, code: diag.OrdExportAfterImport},
	})
}

func TestTrailingExportBlockIsFine(t *testing.T) {
	list := makeList(
		imp("dart:async"),
		imp("package:foo/foo.dart"),
		exp("src/a.dart"),
		exp("src/b.dart"),
	)

	assertFindings(t, runChecks(list, nil), nil)
}

func TestEveryExportOutsideTrailingBlockFlagged(t *testing.T) {
	list := makeList(
		exp("src/a.dart"),
		imp("dart:async"),
		exp("src/b.dart"),
		imp("dart:html"),
		exp("src/c.dart"),
	)

	got := runChecks(list, nil)

	// Check 4 scans backwards, so the findings arrive in reverse order.
	assertFindings(t, got, []finding{
		{pos: 2, code: diag.OrdExportAfterImport},
		{pos: 0, code: diag.OrdExportAfterImport},
	})
}

func TestSectionNotAlphabetical(t *testing.T) {
	list := makeList(
		imp("package:foo/bar.dart"),
		imp("package:bar/bar.dart"),
	)

	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 1, code: diag.OrdSectionAlphabetical},
	})
}

func TestAlphabeticalBaselineAdvancesPastFlaggedDirectives(t *testing.T) {
	// z, a, b: "a" is flagged against "z", but then becomes the baseline
	// for "b", which is in order and stays unflagged.
	list := makeList(
		imp("z.dart"),
		imp("a.dart"),
		imp("b.dart"),
	)

	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 1, code: diag.OrdSectionAlphabetical},
	})
}

func TestAlphabeticalFlagsEveryDescent(t *testing.T) {
	list := makeList(
		imp("c.dart"),
		imp("a.dart"),
		imp("d.dart"),
		imp("b.dart"),
	)

	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 1, code: diag.OrdSectionAlphabetical},
		{pos: 3, code: diag.OrdSectionAlphabetical},
	})
}

func TestAlphabeticalChecksOwnershipSectionsIndependently(t *testing.T) {
	// Both ownership sections are sorted even though the combined package
	// sequence is not; with a context there is nothing to report.
	list := makeList(
		imp("package:aaa/a.dart"),
		imp("package:zzz/z.dart"),
		imp("package:myapp/a.dart"),
		imp("package:myapp/b.dart"),
	)

	ctx := &directive.PackageContext{Name: "myapp"}
	assertFindings(t, runChecks(list, ctx), nil)

	// Without a context the same list is one section, and the descent
	// from zzz to myapp is flagged.
	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 2, code: diag.OrdSectionAlphabetical},
	})
}

func TestAtMostOneReportPerDirective(t *testing.T) {
	// Both dart imports violate check 1; the second also violates the
	// alphabetical check. The claim set keeps the earlier check's report.
	list := makeList(
		imp("a.dart"),
		imp("dart:z"),
		imp("dart:a"),
	)

	assertFindings(t, runChecks(list, nil), []finding{
		{pos: 1, code: diag.OrdDartImportFirst},
		{pos: 2, code: diag.OrdDartImportFirst},
	})
}

func TestClaimPriorityShiftsWhenEarlierCheckDisabled(t *testing.T) {
	list := makeList(
		imp("a.dart"),
		imp("dart:z"),
		imp("dart:a"),
	)

	cfg := AllChecks()
	cfg.DartFirst = false

	bag := diag.NewBag(100)
	Run(list, nil, cfg, diag.BagReporter{Bag: bag})

	// With check 1 off, the alphabetical check claims "dart:a".
	assertFindings(t, bag.Items(), []finding{
		{pos: 2, code: diag.OrdSectionAlphabetical},
	})
}

func TestDeterminism(t *testing.T) {
	list := makeList(
		exp("src/a.dart"),
		imp("package:bar/bar.dart"),
		imp("dart:async"),
		imp("a.dart"),
		imp("package:foo/foo.dart"),
	)
	ctx := &directive.PackageContext{Name: "bar"}

	first := runChecks(list, ctx)
	second := runChecks(list, ctx)

	if len(first) != len(second) {
		t.Fatalf("runs differ in length: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].Code != second[i].Code || first[i].Primary != second[i].Primary {
			t.Errorf("finding %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestEmptyAndSingletonListsProduceNothing(t *testing.T) {
	assertFindings(t, runChecks(nil, nil), nil)
	assertFindings(t, runChecks(makeList(imp("dart:async")), nil), nil)
	assertFindings(t, runChecks(makeList(exp("src/a.dart")), nil), nil)
}
