package diag

import (
	"fmt"
)

// Code identifies one diagnostic kind. The numeric space is grouped by
// producer: 1000–1999 for directive-ordering checks, 4000–4999 for IO.
type Code uint16

const (
	UnknownCode Code = 0

	// Directive ordering. The declaration order mirrors check priority:
	// a directive claimed by an earlier check is never reported by a
	// later one.
	OrdDartImportFirst       Code = 1001
	OrdPackageBeforeRelative Code = 1002
	OrdThirdPartyBeforeOwn   Code = 1003
	OrdExportAfterImport     Code = 1004
	OrdSectionAlphabetical   Code = 1005

	// IO / driver.
	IOReadFailed Code = 4001
)

var codeDescription = map[Code]string{
	UnknownCode:              "unknown diagnostic",
	OrdDartImportFirst:       "dart: import after other imports",
	OrdPackageBeforeRelative: "package: import after relative imports",
	OrdThirdPartyBeforeOwn:   "third-party import after own-package imports",
	OrdExportAfterImport:     "export before the trailing export section",
	OrdSectionAlphabetical:   "directive section not sorted alphabetically",
	IOReadFailed:             "failed to read source file",
}

// ID returns the stable string form of the code, e.g. "ORD1001".
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("ORD%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
