package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dartlint/internal/diag"
	"dartlint/internal/diagfmt"
	"dartlint/internal/driver"
	"dartlint/internal/observ"
	"dartlint/internal/project"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.dart|directory|->",
	Short: "Check directive ordering in Dart sources",
	Long:  `Check reports every import or export directive that violates the ordering convention; "-" reads a single file from stdin`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().String("config", "", "explicit dartlint.toml path")
	checkCmd.Flags().String("package", "", "pin the package name instead of reading pubspec.yaml")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory runs (0=auto)")
	checkCmd.Flags().Bool("cache", false, "enable the persistent per-file result cache")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	checkCmd.Flags().Bool("no-warnings", false, "hide warnings, report only errors")
	checkCmd.Flags().Bool("timings", false, "show stage timing information")
}

func runCheck(cmd *cobra.Command, args []string) error {
	target := args[0]

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format: %s", format)
	}

	opts, err := buildOptions(cmd, target)
	if err != nil {
		return err
	}

	showTimings, _ := cmd.Flags().GetBool("timings")
	if showTimings {
		opts.Timer = observ.NewTimer()
	}

	results, err := lintTarget(target, opts)
	if err != nil {
		return err
	}

	if noWarnings, _ := cmd.Flags().GetBool("no-warnings"); noWarnings {
		for _, res := range results {
			res.Bag = dropWarnings(res.Bag)
		}
	}

	pathMode := diagfmt.PathModeAuto
	if fullpath, _ := cmd.Flags().GetBool("fullpath"); fullpath {
		pathMode = diagfmt.PathModeAbsolute
	}

	total := 0
	for _, res := range results {
		total += res.Bag.Len()
	}

	switch format {
	case "json":
		if err := writeJSON(os.Stdout, results, pathMode); err != nil {
			return err
		}
	case "pretty":
		prettyOpts := diagfmt.PrettyOpts{
			Color:    useColor(cmd, os.Stdout),
			PathMode: pathMode,
			Context:  true,
		}
		for _, res := range results {
			diagfmt.Pretty(os.Stdout, res.Bag, res.FileSet, prettyOpts)
		}
		if quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet"); !quiet {
			fmt.Fprintf(os.Stdout, "%d issue(s) in %d file(s)\n", total, len(results))
		}
	}

	if opts.Timer != nil {
		fmt.Fprint(os.Stderr, opts.Timer.Summary())
	}

	if total > 0 {
		os.Exit(1)
	}
	return nil
}

func buildOptions(cmd *cobra.Command, target string) (driver.Options, error) {
	var opts driver.Options

	configPath, _ := cmd.Flags().GetString("config")
	startDir := target
	if target == "-" {
		startDir = "."
	} else if fi, err := os.Stat(target); err == nil && !fi.IsDir() {
		startDir = filepath.Dir(target)
	}
	cfg, err := project.ResolveConfig(startDir, configPath)
	if err != nil {
		return opts, err
	}
	opts.Config = cfg

	opts.PackageOverride, _ = cmd.Flags().GetString("package")
	opts.Jobs, _ = cmd.Flags().GetInt("jobs")
	opts.MaxDiagnostics, _ = cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	if enabled, _ := cmd.Flags().GetBool("cache"); enabled {
		cache, err := driver.OpenResultCache("dartlint")
		if err != nil {
			return opts, fmt.Errorf("failed to open result cache: %w", err)
		}
		opts.Cache = cache
	}
	return opts, nil
}

func lintTarget(target string, opts driver.Options) ([]*driver.FileResult, error) {
	if target == "-" {
		content, err := io.ReadAll(os.Stdin)
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		res, err := driver.LintSource("<stdin>", content, opts)
		if err != nil {
			return nil, err
		}
		return []*driver.FileResult{res}, nil
	}

	fi, err := os.Stat(target)
	if err != nil {
		return nil, err
	}
	if fi.IsDir() {
		return driver.LintDir(target, opts)
	}

	res, err := driver.LintFile(target, opts)
	if err != nil {
		return nil, err
	}
	return []*driver.FileResult{res}, nil
}

// dropWarnings rebuilds a bag with everything below error severity removed.
func dropWarnings(bag *diag.Bag) *diag.Bag {
	out := diag.NewBag(bag.Len())
	for _, d := range bag.Items() {
		if d.Severity >= diag.SevError {
			out.Add(d)
		}
	}
	return out
}

// writeJSON merges the per-file outputs into one document.
func writeJSON(w io.Writer, results []*driver.FileResult, pathMode diagfmt.PathMode) error {
	combined := diagfmt.DiagnosticsOutput{Diagnostics: []diagfmt.DiagnosticJSON{}}
	jsonOpts := diagfmt.JSONOpts{
		IncludePositions: true,
		PathMode:         pathMode,
	}
	for _, res := range results {
		out := diagfmt.BuildDiagnosticsOutput(res.Bag, res.FileSet, jsonOpts)
		combined.Diagnostics = append(combined.Diagnostics, out.Diagnostics...)
	}
	combined.Count = len(combined.Diagnostics)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(combined)
}
