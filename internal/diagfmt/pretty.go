package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"dartlint/internal/diag"
	"dartlint/internal/source"
)

var (
	errorColor   = color.New(color.FgRed, color.Bold)
	warningColor = color.New(color.FgYellow, color.Bold)
	infoColor    = color.New(color.FgCyan, color.Bold)
	codeColor    = color.New(color.FgWhite, color.Faint)
)

// Pretty renders diagnostics in a human-readable form, one per block:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~~~~~
//
// followed by notes in the same shape. Expects bag.Sort() to have run.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	for _, d := range bag.Items() {
		writeHeading(w, fs, d.Primary, d.Severity, d.Code, d.Message, opts)
		if opts.Context {
			writeContext(w, fs, d.Primary)
		}
		if opts.ShowNotes {
			for _, note := range d.Notes {
				fmt.Fprintf(w, "  note: %s\n", note.Msg)
				if opts.Context {
					writeContext(w, fs, note.Span)
				}
			}
		}
	}
}

func writeHeading(w io.Writer, fs *source.FileSet, span source.Span, sev diag.Severity, code diag.Code, msg string, opts PrettyOpts) {
	f := fs.Get(span.File)
	start, _ := fs.Resolve(span)
	path := f.FormatPath(pathModeName(opts.PathMode), fs.BaseDir())

	sevStr := sev.String()
	codeStr := code.ID()
	if opts.Color {
		sevStr = severityColor(sev).Sprint(sevStr)
		codeStr = codeColor.Sprint(codeStr)
	}

	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sevStr, codeStr, msg)
}

// writeContext prints the first line the span touches with a caret
// underline below it. Tabs in the prefix are preserved so the underline
// stays aligned.
func writeContext(w io.Writer, fs *source.FileSet, span source.Span) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)

	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	fmt.Fprintf(w, "    %s\n", expandTabs(line))

	prefix := line
	if int(start.Col-1) <= len(line) {
		prefix = line[:start.Col-1]
	}
	pad := strings.Repeat(" ", runewidth.StringWidth(expandTabs(prefix)))

	// Underline within this line only; multi-line spans fall back to the
	// rest of the line.
	underlineLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		underlineLen = int(end.Col - start.Col)
	} else if rest := len(line) - int(start.Col-1); rest > 0 {
		underlineLen = rest
	}

	fmt.Fprintf(w, "    %s^%s\n", pad, strings.Repeat("~", max(0, underlineLen-1)))
}

func expandTabs(s string) string {
	return strings.ReplaceAll(s, "\t", "    ")
}

func severityColor(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return errorColor
	case diag.SevWarning:
		return warningColor
	default:
		return infoColor
	}
}

func pathModeName(mode PathMode) string {
	switch mode {
	case PathModeAbsolute:
		return "absolute"
	case PathModeRelative:
		return "relative"
	case PathModeBasename:
		return "basename"
	default:
		return "auto"
	}
}
