// Package session is the picker dialog: it owns the catalog state, the preview
// and drawable caches and the background task group, and saves the selection
// into a host project on Confirm.
package session

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/Abhimanyu14/material-symbols/cache"
	"github.com/Abhimanyu14/material-symbols/render"
	"github.com/Abhimanyu14/material-symbols/resource"
	"github.com/Abhimanyu14/material-symbols/symbol"
	"github.com/Abhimanyu14/material-symbols/worker"
)

var (
	ErrDisposed         = errors.New("session disposed")
	ErrCatalogNotLoaded = errors.New("icon catalog not loaded")
	ErrNoSelection      = errors.New("no icons selected")
)

// DefaultWorkers bounds the background task group.
const DefaultWorkers = 8

type Config struct {
	AssetHost string
	Workers   int
	Options   symbol.Options

	// Dispatch delivers preview notifications, e.g. onto a UI goroutine.
	// Nil calls them on the worker goroutine.
	Dispatch func(func())
}

// Deps are the remote sources and the host. Catalog, SVG and Text are usually
// *fetcher.Catalog and *fetcher.Assets.
type Deps struct {
	Host    Host
	Catalog CatalogSource
	SVG     render.SVGSource
	Text    resource.TextSource
}

type Session struct {
	ID string

	host      Host
	catalog   CatalogSource
	log       *logrus.Entry
	group     *worker.Group
	state     *State
	previews  *render.Previews
	drawables *resource.Materializer

	// confirmMu serializes Confirm against itself and against Dispose.
	confirmMu sync.Mutex
	mu        sync.Mutex
	disposed  bool
}

func New(ctx context.Context, cfg Config, deps Deps) *Session {
	id := uuid.NewString()
	log := logrus.WithField("session", id)

	workers := cfg.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	group := worker.New(ctx, workers, log)

	cacheOpts := []cache.Option{cache.WithRunner(group)}
	if cfg.Dispatch != nil {
		cacheOpts = append(cacheOpts, cache.WithDispatcher(cfg.Dispatch))
	}

	s := &Session{
		ID:        id,
		host:      deps.Host,
		catalog:   deps.Catalog,
		log:       log,
		group:     group,
		state:     NewState(cfg.Options),
		previews:  render.NewPreviews(cfg.AssetHost, deps.SVG, cacheOpts...),
		drawables: resource.New(cfg.AssetHost, deps.Text, []cache.Option{cache.WithRunner(group)}, resource.WithConcurrency(workers)),
	}
	log.WithField("workers", workers).Debug("session opened")
	return s
}

func (s *Session) State() *State { return s.state }

func (s *Session) Previews() *render.Previews { return s.previews }

func (s *Session) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// LoadCatalog fetches the catalog unless it is already loaded. A failure is
// shown on the host and leaves the session without a catalog.
func (s *Session) LoadCatalog(ctx context.Context) error {
	if s.Disposed() {
		return ErrDisposed
	}
	ctx, cancel := s.bind(ctx)
	defer cancel()

	if err := s.state.LoadCatalog(ctx, s.catalog); err != nil {
		if s.Disposed() {
			return ErrDisposed
		}
		s.host.ShowError(fmt.Sprintf("Failed to load the icon catalog: %v", err))
		return fmt.Errorf("failed to load catalog: %w", err)
	}
	s.log.WithField("icons", s.state.CatalogSize()).Info("catalog loaded")
	return nil
}

// Modules lists the host modules Confirm can save into.
func (s *Session) Modules(ctx context.Context) ([]Module, error) {
	if s.Disposed() {
		return nil, ErrDisposed
	}
	return s.host.ListModules(ctx)
}

// RequestPreview returns the preview raster of icon at px if cached; otherwise
// it starts loading it and calls notify when done.
func (s *Session) RequestPreview(icon symbol.Icon, opts symbol.Options, px int, notify func(image.Image, error)) (image.Image, bool) {
	return s.previews.Request(symbol.PreviewKeyFor(icon, opts), px, notify)
}

// Confirm saves every selected icon with the current options into module.
// All drawables are downloaded before anything is written, and the writes
// happen in one atomic host action. The first saved file is then opened in
// the editor.
func (s *Session) Confirm(ctx context.Context, module Module) ([]File, error) {
	s.confirmMu.Lock()
	defer s.confirmMu.Unlock()

	if s.Disposed() {
		return nil, ErrDisposed
	}
	if !s.state.Loaded() {
		return nil, ErrCatalogNotLoaded
	}
	icons := s.state.Selected()
	if len(icons) == 0 {
		return nil, ErrNoSelection
	}
	opts := s.state.Options()

	ctx, cancel := s.bind(ctx)
	defer cancel()

	log := s.log.WithFields(logrus.Fields{"module": module.Name, "count": len(icons)})

	drawables, err := s.drawables.MaterializeAll(ctx, icons, opts)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to download drawables: %w", err))
	}

	dir, err := s.host.ResolveResourceDir(module)
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to resolve resource directory of %s: %w", module.Name, err))
	}

	var saved []File
	err = s.host.RunAtomicWrite(ctx, func(ctx context.Context) error {
		saved = saved[:0]
		for _, d := range drawables {
			if err := ctx.Err(); err != nil {
				return err
			}
			f, err := s.host.WriteFile(dir, d.Name, d.Content)
			if err != nil {
				return fmt.Errorf("failed to write %s: %w", d.Name, err)
			}
			saved = append(saved, f)
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(fmt.Errorf("failed to save drawables: %w", err))
	}
	var size int
	for _, d := range drawables {
		size += d.Size()
	}
	log.WithFields(logrus.Fields{"dir": dir.Path, "bytes": size}).Info("drawables saved")

	if len(saved) > 0 {
		if err := s.host.OpenInEditor(saved[0]); err != nil {
			log.WithError(err).WithField("file", saved[0].Path).Warn("failed to open in editor")
		}
	}
	return saved, nil
}

func (s *Session) fail(err error) error {
	if s.Disposed() {
		return ErrDisposed
	}
	s.host.ShowError(err.Error())
	return err
}

// bind derives a context that is also canceled when the session is disposed.
func (s *Session) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(s.group.Context(), cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// Dispose cancels all background work and waits for it. A Confirm that is
// writing finishes or rolls back first. Dispose is idempotent.
// Stats reports the session caches.
type Stats struct {
	Sources   cache.Stats
	Rasters   cache.Stats
	Drawables cache.Stats
}

func (s *Session) Stats() Stats {
	sources, rasters := s.previews.Stats()
	return Stats{Sources: sources, Rasters: rasters, Drawables: s.drawables.Stats()}
}

func (s *Session) Dispose() {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		return
	}
	s.disposed = true
	s.mu.Unlock()

	stats := s.Stats()
	s.previews.Close()
	s.drawables.Close()
	_ = s.group.Close()

	s.confirmMu.Lock()
	defer s.confirmMu.Unlock()

	s.log.WithFields(logrus.Fields{
		"sources":   stats.Sources.Entries,
		"rasters":   stats.Rasters.Entries,
		"drawables": stats.Drawables.Entries,
		"loads":     stats.Sources.Loads + stats.Rasters.Loads + stats.Drawables.Loads,
	}).Debug("session disposed")
}
