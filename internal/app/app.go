// Package app implements the application layer for lockviz.
package app

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/render"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/telemetry"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/ports"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	source  ports.LockfileSource
	parser  ports.LockfileParser
	watcher ports.Watcher
	logger  ports.Logger
	tracer  ports.Tracer

	stdout io.Writer
	stderr io.Writer
	now    func() time.Time

	// outMu serializes writes to stdout during a watch session.
	outMu sync.Mutex
}

// New creates a new App instance.
func New(
	source ports.LockfileSource,
	parser ports.LockfileParser,
	watcher ports.Watcher,
	log ports.Logger,
	tracer ports.Tracer,
) *App {
	return &App{
		source:  source,
		parser:  parser,
		watcher: watcher,
		logger:  log,
		tracer:  tracer,
		stdout:  os.Stdout,
		stderr:  os.Stderr,
		now:     time.Now,
	}
}

// WithOutput redirects rendered views to stdout and exported spans to stderr.
func (a *App) WithOutput(stdout, stderr io.Writer) *App {
	a.stdout = stdout
	a.stderr = stderr
	return a
}

// WithClock replaces the clock used for load times. This is primarily used for testing.
func (a *App) WithClock(now func() time.Time) *App {
	a.now = now
	return a
}

// Options are shared by every command that loads a lockfile.
type Options struct {
	// Dir is where discovery starts and relative paths are resolved. Empty means the working directory.
	Dir string
	// Lockfile is an explicit lockfile path. Empty means discover.
	Lockfile string
	// RootManifest is the package.json that importer keys are relative to.
	RootManifest string
	// Trace exports spans to stderr.
	Trace bool
	// JSONLogs switches the logger to JSON output.
	JSONLogs bool
}

// Document is a parsed lockfile together with where and when it was read.
type Document struct {
	Path     string
	Lockfile *domain.Lockfile
	LoadedAt time.Time
}

// jsonSwitcher is implemented by loggers that can emit JSON.
type jsonSwitcher interface {
	SetJSON(enabled bool)
}

// Load reads and parses the lockfile selected by opts.
func (a *App) Load(ctx context.Context, opts Options) (*Document, error) {
	path, err := a.lockfilePath(opts)
	if err != nil {
		return nil, err
	}
	return a.loadPath(ctx, path, opts.RootManifest)
}

// Summary prints the counts of the lockfile.
func (a *App) Summary(ctx context.Context, opts Options) error {
	return a.run(ctx, opts, func(doc *Document, r *render.Renderer) error {
		return r.Summary(render.SummaryInfo{Path: doc.Path, Lockfile: doc.Lockfile})
	})
}

// Importers prints every workspace project.
func (a *App) Importers(ctx context.Context, opts Options) error {
	return a.run(ctx, opts, func(doc *Document, r *render.Renderer) error {
		return r.Entries(doc.Lockfile.Importers())
	})
}

// PackagesOptions configuration for the Packages method.
type PackagesOptions struct {
	// Filter is a glob matched against package names, such as "@types/*".
	Filter string
}

// Packages prints package versions, optionally filtered by name.
func (a *App) Packages(ctx context.Context, opts Options, pkgOpts PackagesOptions) error {
	if pkgOpts.Filter != "" && !doublestar.ValidatePattern(pkgOpts.Filter) {
		return zerr.With(zerr.Wrap(domain.ErrInvalidFilter, "failed to list packages"), "filter", pkgOpts.Filter)
	}

	return a.run(ctx, opts, func(doc *Document, r *render.Renderer) error {
		return r.Entries(filterPackages(doc.Lockfile.Packages(), pkgOpts.Filter))
	})
}

// Show prints one entry with its dependencies and referencers.
func (a *App) Show(ctx context.Context, opts Options, query string) error {
	return a.run(ctx, opts, func(doc *Document, r *render.Renderer) error {
		entry, err := doc.Lockfile.Find(query)
		if err != nil {
			return err
		}
		return r.Entry(entry)
	})
}

// WhyOptions configuration for the Why method.
type WhyOptions struct {
	// Limit caps the number of chains. Zero means no limit.
	Limit int
}

// Why prints the dependency chains that pull an entry into the lockfile.
func (a *App) Why(ctx context.Context, opts Options, query string, whyOpts WhyOptions) error {
	return a.run(ctx, opts, func(doc *Document, r *render.Renderer) error {
		entry, err := doc.Lockfile.Find(query)
		if err != nil {
			return err
		}
		return r.Why(entry, domain.WhyPaths(entry, whyOpts.Limit))
	})
}

// run loads the lockfile and hands it to view.
func (a *App) run(ctx context.Context, opts Options, view func(*Document, *render.Renderer) error) error {
	shutdown, err := a.setup(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = shutdown(ctx)
	}()

	doc, err := a.Load(ctx, opts)
	if err != nil {
		return err
	}
	return view(doc, render.NewRenderer(a.stdout))
}

// setup applies the logging and tracing options of a command.
func (a *App) setup(opts Options) (func(context.Context) error, error) {
	if s, ok := a.logger.(jsonSwitcher); ok {
		s.SetJSON(opts.JSONLogs)
	}

	shutdown, err := telemetry.Setup(telemetry.Config{Enabled: opts.Trace, Writer: a.stderr})
	if err != nil {
		return nil, err
	}
	return func(ctx context.Context) error {
		_ = a.tracer.Shutdown(ctx)
		return shutdown(ctx)
	}, nil
}

func (a *App) lockfilePath(opts Options) (string, error) {
	if opts.Lockfile == "" {
		return a.source.Discover(opts.Dir)
	}
	if opts.Dir != "" && !filepath.IsAbs(opts.Lockfile) {
		return filepath.Join(opts.Dir, opts.Lockfile), nil
	}
	return opts.Lockfile, nil
}

func (a *App) loadPath(ctx context.Context, path, rootManifest string) (*Document, error) {
	ctx, span := a.tracer.Start(ctx, "lockfile.load", ports.WithAttribute("lockfile.path", path))
	defer span.End()

	text, err := a.source.Read(path)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	lock, err := a.parser.Parse(ctx, text, rootManifest)
	if err != nil {
		span.RecordError(err)
		return nil, zerr.With(err, "path", path)
	}

	return &Document{Path: path, Lockfile: lock, LoadedAt: a.now()}, nil
}

// filterPackages keeps packages whose name matches pattern. An empty pattern keeps all.
// Packages whose key did not parse are matched on their raw key.
func filterPackages(pkgs []*domain.Entry, pattern string) []*domain.Entry {
	if pattern == "" {
		return pkgs
	}

	var out []*domain.Entry
	for _, e := range pkgs {
		name := e.PackageName()
		if name == "" {
			name = strings.TrimPrefix(e.RawID(), "/")
		}
		if ok, _ := doublestar.Match(pattern, name); ok {
			out = append(out, e)
		}
	}
	return out
}
