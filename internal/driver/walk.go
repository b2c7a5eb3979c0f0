package driver

import (
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"dartlint/internal/diag"
	"dartlint/internal/source"
)

// LintDir lints every .dart file under root, honoring the config's
// exclude patterns. Files are processed in parallel but results come back
// in path order, so output stays deterministic regardless of scheduling.
func LintDir(root string, opts Options) ([]*FileResult, error) {
	paths, err := collectDartFiles(root, opts)
	if err != nil {
		return nil, err
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}

	// The timer is not safe for concurrent phases; per-file timings make
	// no sense interleaved across workers anyway.
	opts.Timer = nil

	results := make([]*FileResult, len(paths))
	var g errgroup.Group
	g.SetLimit(jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			res, err := LintFile(path, opts)
			if err != nil {
				// One unreadable file must not abort the whole run.
				res = readFailure(path, err, opts)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// readFailure wraps a load error into a diagnostic result for path.
func readFailure(path string, err error, opts Options) *FileResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, nil)
	bag := diag.NewBag(opts.maxDiagnostics())
	diag.ReportError(diag.BagReporter{Bag: bag}, diag.IOReadFailed,
		source.Span{File: id}, err.Error()).Emit()
	return &FileResult{Path: path, Bag: bag, FileSet: fs}
}

func collectDartFiles(root string, opts Options) ([]string, error) {
	cfg := opts.config()
	var paths []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		rel, relErr := filepath.Rel(root, path)
		if relErr != nil {
			rel = path
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if path == root {
				return nil
			}
			// Tooling directories never hold hand-written sources.
			if strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			if cfg.Excluded(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if !strings.HasSuffix(d.Name(), ".dart") {
			return nil
		}
		if cfg.Excluded(rel) {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}
