// Package driver orchestrates lint runs: loading files, extracting
// directives, resolving package identity, running the ordering checks and
// collecting the resulting diagnostics. Every file is analyzed
// independently with its own bag and claim state, so directory runs can
// fan out without locking.
package driver

import (
	"path/filepath"

	"dartlint/internal/diag"
	"dartlint/internal/directive"
	"dartlint/internal/observ"
	"dartlint/internal/ordering"
	"dartlint/internal/parser"
	"dartlint/internal/project"
	"dartlint/internal/source"
)

// Options configures a lint run.
type Options struct {
	// MaxDiagnostics caps the per-file bag.
	MaxDiagnostics int
	// Config is the resolved dartlint.toml; nil means defaults.
	Config *project.Config
	// PackageOverride pins the package name, bypassing pubspec discovery.
	PackageOverride string
	// Jobs bounds directory-walk parallelism; 0 picks the CPU count.
	Jobs int
	// Cache, when non-nil, memoizes per-file findings keyed by content.
	Cache *ResultCache
	// Timer, when non-nil, records stage durations.
	Timer *observ.Timer
}

func (o Options) config() *project.Config {
	if o.Config != nil {
		return o.Config
	}
	return project.DefaultConfig()
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics > 0 {
		return o.MaxDiagnostics
	}
	return 100
}

// FileResult holds everything one file's run produced. The FileSet is
// per-result: spans in the bag resolve against it.
type FileResult struct {
	Path    string
	Bag     *diag.Bag
	FileSet *source.FileSet
}

// LintFile lints a single file from disk.
func LintFile(path string, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()

	loadPhase := beginPhase(opts.Timer, "load")
	id, err := fs.Load(path)
	endPhase(opts.Timer, loadPhase, path)
	if err != nil {
		return nil, err
	}

	return lintLoaded(fs, id, filepath.Dir(path), opts)
}

// LintSource lints in-memory content (stdin, tests). Package identity is
// resolved from the working directory unless overridden.
func LintSource(name string, content []byte, opts Options) (*FileResult, error) {
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return lintLoaded(fs, id, ".", opts)
}

func lintLoaded(fs *source.FileSet, id source.FileID, contextDir string, opts Options) (*FileResult, error) {
	f := fs.Get(id)
	cfg := opts.config()
	checkSet := cfg.CheckSet()

	ctxPhase := beginPhase(opts.Timer, "context")
	ctx := resolveContext(contextDir, cfg, opts)
	endPhase(opts.Timer, ctxPhase, contextName(ctx))

	if opts.Cache != nil {
		key := CacheKey(f.Hash, checkSet, ctx)
		if bag, ok := opts.Cache.Lookup(key, id, opts.maxDiagnostics()); ok {
			return &FileResult{Path: f.Path, Bag: bag, FileSet: fs}, nil
		}
	}

	extractPhase := beginPhase(opts.Timer, "extract")
	list := parser.Extract(f)
	endPhase(opts.Timer, extractPhase, "")

	bag := diag.NewBag(opts.maxDiagnostics())
	checkPhase := beginPhase(opts.Timer, "check")
	ordering.Run(list, ctx, checkSet, diag.NewDedupReporter(diag.BagReporter{Bag: bag}))
	endPhase(opts.Timer, checkPhase, "")

	bag.Sort()

	if opts.Cache != nil {
		key := CacheKey(f.Hash, checkSet, ctx)
		opts.Cache.Store(key, bag)
	}

	return &FileResult{Path: f.Path, Bag: bag, FileSet: fs}, nil
}

// resolveContext picks the package identity: explicit flag, then config,
// then the nearest pubspec.yaml. A nil result disables the ownership
// checks and is never an error.
func resolveContext(contextDir string, cfg *project.Config, opts Options) *directive.PackageContext {
	if opts.PackageOverride != "" {
		return &directive.PackageContext{Name: opts.PackageOverride}
	}
	if cfg.Analysis.Package != "" {
		return &directive.PackageContext{Name: cfg.Analysis.Package}
	}
	return project.ResolvePackageContext(contextDir)
}

func contextName(ctx *directive.PackageContext) string {
	if ctx == nil {
		return "no package"
	}
	return ctx.Name
}

func beginPhase(t *observ.Timer, name string) int {
	if t == nil {
		return -1
	}
	return t.Begin(name)
}

func endPhase(t *observ.Timer, idx int, note string) {
	if t != nil {
		t.End(idx, note)
	}
}
