package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/render"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/adapters/watcher"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/domain"
	"github.com/octogonz/pnpm-lockfile-visualizer/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// WatchOptions configuration for the Watch method.
type WatchOptions struct {
	// Debounce is the quiet period after a change before the lockfile is reloaded.
	Debounce time.Duration
	// Interval is how often the status line is printed. Zero disables it.
	Interval time.Duration
}

// Session holds the document of a running watch.
type Session struct {
	current atomic.Pointer[Document]
	// reloading is a one-slot semaphore held from read to publish, so the
	// last reload to run always reads the newest file content.
	reloading chan struct{}
}

// Current returns the last document that parsed successfully.
func (s *Session) Current() (*Document, error) {
	doc := s.current.Load()
	if doc == nil {
		return nil, domain.ErrNoLockfileLoaded
	}
	return doc, nil
}

// Watch loads the lockfile and reloads it whenever it changes, until ctx is canceled.
// A reload that fails keeps the previous document.
func (a *App) Watch(ctx context.Context, opts Options, watchOpts WatchOptions) error {
	shutdown, err := a.setup(opts)
	if err != nil {
		return err
	}
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	doc, err := a.Load(ctx, opts)
	if err != nil {
		return err
	}

	session := &Session{reloading: make(chan struct{}, 1)}
	session.current.Store(doc)
	r := render.NewRenderer(a.stdout)
	a.printStatus(r, doc)

	if err := a.watcher.Start(ctx, doc.Path); err != nil {
		return err
	}
	defer func() {
		_ = a.watcher.Stop()
	}()

	window := watchOpts.Debounce
	if window <= 0 {
		window = watcher.DefaultDebounceWindow
	}
	debouncer := watcher.NewDebouncer(window, func(events []ports.WatchEvent) {
		a.reload(ctx, session, r, opts.RootManifest, events)
	})

	a.logger.Info(fmt.Sprintf("watching %s", doc.Path))

	g, ctx := errgroup.WithContext(ctx)

	// Event Routine
	g.Go(func() error {
		for event := range a.watcher.Events() {
			if ctx.Err() != nil {
				return nil
			}
			debouncer.Add(event)
		}
		return nil
	})

	// Status Routine
	if watchOpts.Interval > 0 {
		g.Go(func() error {
			ticker := time.NewTicker(watchOpts.Interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					current, err := session.Current()
					if err != nil {
						return err
					}
					a.printStatus(r, current)
				}
			}
		})
	}

	// Shutdown Routine
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// reload re-reads the watched file after a batch of events.
func (a *App) reload(ctx context.Context, session *Session, r *render.Renderer, rootManifest string, events []ports.WatchEvent) {
	session.reloading <- struct{}{}
	defer func() { <-session.reloading }()

	if ctx.Err() != nil {
		return
	}

	previous, err := session.Current()
	if err != nil {
		a.logger.Error(err)
		return
	}

	ops := make([]string, 0, len(events))
	for _, e := range events {
		ops = append(ops, e.Operation.String())
	}

	text, err := a.source.Read(previous.Path)
	if err != nil {
		a.logger.Warn(fmt.Sprintf("failed to read lockfile after %s: %v; keeping the previous version", strings.Join(ops, ", "), err))
		return
	}
	if domain.ContentDigest(text) == previous.Lockfile.Digest {
		return
	}

	ctx, span := a.tracer.Start(ctx, "lockfile.reload", ports.WithAttribute("lockfile.path", previous.Path))
	defer span.End()

	lock, err := a.parser.Parse(ctx, text, rootManifest)
	if err != nil {
		span.RecordError(err)
		a.logger.Error(zerr.With(zerr.Wrap(err, "reload failed; keeping the previous version"), "path", previous.Path))
		return
	}

	doc := &Document{Path: previous.Path, Lockfile: lock, LoadedAt: a.now()}
	session.current.Store(doc)
	a.logger.Info(fmt.Sprintf("reloaded %s", previous.Path))
	a.printStatus(r, doc)
}

func (a *App) printStatus(r *render.Renderer, doc *Document) {
	a.outMu.Lock()
	defer a.outMu.Unlock()
	_ = r.Status(doc.Lockfile, domain.FormatAgo(a.now().Sub(doc.LoadedAt)))
}
