package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"dartlint/internal/diagfmt"
	"dartlint/internal/parser"
	"dartlint/internal/source"
)

var directivesCmd = &cobra.Command{
	Use:   "directives [flags] file.dart",
	Short: "Dump the import and export directives of a Dart file",
	Long:  `Directives lists every import and export directive extracted from a Dart source file, in source order`,
	Args:  cobra.ExactArgs(1),
	RunE:  runDirectives,
}

func init() {
	directivesCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runDirectives(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	fs := source.NewFileSet()
	id, err := fs.Load(filePath)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", filePath, err)
	}
	list := parser.Extract(fs.Get(id))

	switch format {
	case "pretty":
		return diagfmt.FormatDirectivesPretty(os.Stdout, list, fs)
	case "json":
		return diagfmt.FormatDirectivesJSON(os.Stdout, list)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
