package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"dartlint/internal/directive"
	"dartlint/internal/source"
)

// DirectiveOutput is one extracted directive in JSON output.
type DirectiveOutput struct {
	Kind string      `json:"kind"`
	URI  string      `json:"uri"`
	Span source.Span `json:"span"`
}

// FormatDirectivesPretty writes one line per directive with its position.
func FormatDirectivesPretty(w io.Writer, list directive.List, fs *source.FileSet) error {
	for i, d := range list {
		startPos, endPos := fs.Resolve(d.Span)
		fmt.Fprintf(w, "%3d: %-6s %q at %d:%d-%d:%d\n",
			i+1, d.Kind.String(), d.URI,
			startPos.Line, startPos.Col,
			endPos.Line, endPos.Col)
	}
	return nil
}

// FormatDirectivesJSON writes the directive list as indented JSON.
func FormatDirectivesJSON(w io.Writer, list directive.List) error {
	output := make([]DirectiveOutput, 0, len(list))
	for _, d := range list {
		output = append(output, DirectiveOutput{
			Kind: d.Kind.String(),
			URI:  d.URI,
			Span: d.Span,
		})
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
