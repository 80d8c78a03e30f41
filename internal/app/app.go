// Package app implements the application layer for parcel.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	"go.trai.ch/parcel/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/parcel/internal/engine/catalogsync"
	"go.trai.ch/parcel/internal/engine/publisher"
	"go.trai.ch/parcel/internal/engine/scheduler"
	"go.trai.ch/zerr"
)

// SourcePassthrough is reported for catalogs synthesized from the source tree.
const SourcePassthrough = "passthrough"

// MetricsRecorder is a ports.Metrics that can serve its registry.
type MetricsRecorder interface {
	ports.Metrics
	Handler() http.Handler
}

// Deps holds everything the App needs.
type Deps struct {
	Config      *domain.Config
	Definitions ports.DefinitionLoader
	Syncer      *catalogsync.Syncer
	Publisher   *publisher.Publisher
	Lister      publisher.Lister
	Fetcher     ports.Fetcher
	Files       ports.FileStore
	KV          ports.KVStore
	Bundles     ports.BundleCodec
	Hasher      ports.ContentHasher
	Watcher     ports.Watcher
	Tracer      ports.Tracer
	Metrics     MetricsRecorder
	Logger      ports.Logger
}

// App represents the main application logic.
type App struct {
	cfg         *domain.Config
	definitions ports.DefinitionLoader
	syncer      *catalogsync.Syncer
	publisher   *publisher.Publisher
	lister      publisher.Lister
	fetcher     ports.Fetcher
	files       ports.FileStore
	kv          ports.KVStore
	bundles     ports.BundleCodec
	hasher      ports.ContentHasher
	watcher     ports.Watcher
	tracer      ports.Tracer
	metrics     MetricsRecorder
	logger      ports.Logger
}

// New creates a new App instance.
func New(d Deps) *App {
	return &App{
		cfg:         d.Config,
		definitions: d.Definitions,
		syncer:      d.Syncer,
		publisher:   d.Publisher,
		lister:      d.Lister,
		fetcher:     d.Fetcher,
		files:       d.Files,
		kv:          d.KV,
		bundles:     d.Bundles,
		hasher:      d.Hasher,
		watcher:     d.Watcher,
		tracer:      d.Tracer,
		metrics:     d.Metrics,
		logger:      d.Logger,
	}
}

// Config returns the resolved project configuration.
func (a *App) Config() *domain.Config {
	return a.cfg
}

// Sync runs the catalog transport, or synthesizes the passthrough catalog in
// passthrough mode.
func (a *App) Sync(ctx context.Context) (*catalogsync.Result, error) {
	return a.catalog(ctx, false)
}

func (a *App) catalog(ctx context.Context, offline bool) (*catalogsync.Result, error) {
	switch {
	case a.cfg.Passthrough:
		c, err := a.passthroughCatalog()
		if err != nil {
			return nil, err
		}
		return &catalogsync.Result{Catalog: c, Source: SourcePassthrough}, nil
	case offline:
		return a.syncer.Local(ctx)
	default:
		return a.syncer.Sync(ctx)
	}
}

func (a *App) passthroughCatalog() (*domain.Catalog, error) {
	def, err := a.definitions.LoadDefinition(a.cfg.Publish.Definition)
	if err != nil {
		return nil, err
	}
	return publisher.PassthroughCatalog(def, a.lister, a.cfg.SourceRoot)
}

// FetchOptions configuration for the Fetch method.
type FetchOptions struct {
	Assets   []string
	Fallback string
	Strategy domain.Strategy
	// Offline skips the remote version check and uses the local catalog.
	Offline bool
}

// FetchResult is the outcome of one requested asset.
type FetchResult struct {
	Name  string
	Asset *domain.LoadedAsset
	Err   error
}

// Fetch obtains the catalog and loads every requested asset through one
// scheduler. Results are returned in request order; the error joins every
// failed request.
func (a *App) Fetch(ctx context.Context, opts FetchOptions) ([]FetchResult, error) {
	if len(opts.Assets) == 0 {
		return nil, domain.ErrNoAssetsSpecified
	}

	shutdown := telemetry.Setup(telemetry.NewBridge(a.logger))
	defer func() {
		_ = shutdown(context.WithoutCancel(ctx))
	}()

	res, err := a.catalog(ctx, opts.Offline)
	if err != nil {
		return nil, err
	}

	sched := scheduler.NewScheduler(
		a.fetcher,
		a.files,
		a.bundles,
		a.hasher,
		a.tracer,
		a.metrics,
		a.logger,
		scheduler.OptionsFor(a.cfg),
	)
	sched.Start(ctx)
	sched.SetCatalog(res.Catalog)

	results := make([]FetchResult, len(opts.Assets))
	done := make(chan struct{}, len(opts.Assets))
	for i, name := range opts.Assets {
		results[i].Name = name
		sched.RequestAsset(name, opts.Fallback, opts.Strategy, func(o scheduler.Outcome) {
			results[i].Asset, results[i].Err = o.Asset, o.Err
			done <- struct{}{}
		})
	}
	for range opts.Assets {
		<-done
	}
	sched.Stop()
	sched.Wait()

	var errs error
	for _, r := range results {
		if r.Err != nil {
			errs = errors.Join(errs, zerr.With(r.Err, "request", r.Name))
		}
	}
	return results, errs
}

// InspectOptions configuration for the Inspect method.
type InspectOptions struct {
	// Asset limits the report to the closure of the asset's bundle.
	Asset   string
	Offline bool
}

// InspectReport describes a catalog and dependency closures.
type InspectReport struct {
	Source   string
	Version  domain.CatalogVersion
	Catalog  *domain.Catalog
	Closures []domain.DependencyClosure
	// Missing lists, per closure root, the members that still need a download.
	Missing map[string][]string
}

// Inspect loads the catalog and computes dependency closures.
func (a *App) Inspect(ctx context.Context, opts InspectOptions) (*InspectReport, error) {
	res, err := a.catalog(ctx, opts.Offline)
	if err != nil {
		return nil, err
	}

	report := &InspectReport{
		Source:  res.Source,
		Version: res.Version,
		Catalog: res.Catalog,
		Missing: make(map[string][]string),
	}

	var roots []string
	if opts.Asset != "" {
		b, err := res.Catalog.ContainingBundle(opts.Asset)
		if err != nil {
			return nil, err
		}
		roots = []string{b.Name}
	} else {
		for b := range res.Catalog.Bundles() {
			roots = append(roots, b.Name)
		}
	}

	for _, root := range roots {
		full, err := res.Catalog.Closure(root, false)
		if err != nil {
			return nil, err
		}
		download, err := res.Catalog.Closure(root, true)
		if err != nil {
			return nil, err
		}
		report.Closures = append(report.Closures, full)
		if len(download.Bundles) > 0 {
			report.Missing[root] = download.Bundles
		}
	}
	return report, nil
}

// BuildOptions configuration for the Build method. Empty fields fall back to
// the publish section of the configuration.
type BuildOptions struct {
	Output         string
	Compression    string
	EmbeddedOutput string
}

// Build publishes the bundle definition.
func (a *App) Build(ctx context.Context, opts BuildOptions) (*publisher.Result, error) {
	cfg := *a.cfg
	if opts.Output != "" {
		cfg.Publish.Output = opts.Output
	}
	if opts.Compression != "" {
		cfg.Publish.Compression = opts.Compression
	}
	if opts.EmbeddedOutput != "" {
		cfg.Publish.EmbeddedOutput = opts.EmbeddedOutput
	}

	pubOpts, err := publisher.OptionsFor(&cfg)
	if err != nil {
		return nil, err
	}
	def, err := a.definitions.LoadDefinition(cfg.Publish.Definition)
	if err != nil {
		return nil, err
	}
	return a.publisher.Publish(ctx, def, pubOpts)
}

// CleanOptions configuration for the Clean method.
type CleanOptions struct {
	Cache bool
	State bool
}

// Clean removes the bundle cache and the persisted state.
func (a *App) Clean(_ context.Context, options CleanOptions) error {
	var errs error

	remove := func(path string, name string) {
		a.logger.Info(fmt.Sprintf("removing %s...", name))
		if err := os.RemoveAll(path); err != nil {
			errs = errors.Join(errs, zerr.With(zerr.Wrap(err, "failed to remove "+name), "path", path))
			return
		}
		a.logger.Info(fmt.Sprintf("removed %s", name))
	}

	if options.Cache {
		remove(a.cfg.CacheRoot, "bundle cache")
	}

	if options.State {
		if err := a.kv.Close(); err != nil {
			errs = errors.Join(errs, err)
		}
		remove(a.cfg.StatePath, "state database")
		for _, suffix := range []string{"-wal", "-shm"} {
			_ = os.Remove(a.cfg.StatePath + suffix)
		}
	}

	return errs
}
