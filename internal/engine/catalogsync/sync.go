// Package catalogsync obtains the current catalog: it compares the remote
// version descriptor with the persisted one, reuses the persisted or embedded
// catalog when they match and otherwise downloads, reconciles and persists a
// new catalog.
package catalogsync

import (
	"context"
	"encoding/base64"
	"fmt"

	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Result is the outcome of a sync.
type Result struct {
	Catalog *domain.Catalog
	// Version is the version Catalog belongs to. It is zero when no version
	// is known (local-only load without an embedded version).
	Version domain.CatalogVersion
	// Updated is true when a new catalog was downloaded.
	Updated bool
	// Source names where Catalog came from: remote, persisted or embedded.
	Source string
}

// Catalog sources reported in Result.Source.
const (
	SourceRemote    = "remote"
	SourcePersisted = "persisted"
	SourceEmbedded  = "embedded"
)

// Syncer runs the catalog transport.
type Syncer struct {
	fetcher  ports.Fetcher
	files    ports.FileStore
	kv       ports.KVStore
	catalogs ports.CatalogCodec
	versions ports.VersionCodec
	hasher   ports.ContentHasher
	tracer   ports.Tracer
	metrics  ports.Metrics
	logger   ports.Logger
	cfg      *domain.Config

	group singleflight.Group
}

// New creates a Syncer.
func New(
	fetcher ports.Fetcher,
	files ports.FileStore,
	kv ports.KVStore,
	catalogs ports.CatalogCodec,
	versions ports.VersionCodec,
	hasher ports.ContentHasher,
	tracer ports.Tracer,
	metrics ports.Metrics,
	logger ports.Logger,
	cfg *domain.Config,
) *Syncer {
	return &Syncer{
		fetcher:  fetcher,
		files:    files,
		kv:       kv,
		catalogs: catalogs,
		versions: versions,
		hasher:   hasher,
		tracer:   tracer,
		metrics:  metrics,
		logger:   logger,
		cfg:      cfg,
	}
}

// Sync brings the catalog up to date. Concurrent calls share one run.
func (s *Syncer) Sync(ctx context.Context) (*Result, error) {
	// The shared run outlives any single caller; each caller still stops
	// waiting when its own ctx is done.
	ch := s.group.DoChan("sync", func() (any, error) {
		return s.sync(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*Result), nil
	case <-ctx.Done():
		return nil, domain.Fail(domain.ErrCatalogUnavailable, ctx.Err())
	}
}

type snapshot struct {
	remote    *domain.CatalogVersion
	persisted *domain.CatalogVersion
	local     *domain.Catalog
	source    string
}

func (s *Syncer) sync(ctx context.Context) (*Result, error) {
	ctx, span := s.tracer.Start(ctx, domain.SpanSync)
	defer span.End()

	var snap snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		v, err := s.remoteVersion(gctx)
		snap.remote = v
		return err
	})
	g.Go(func() error {
		snap.persisted = s.persistedVersion(gctx)
		return nil
	})
	g.Go(func() error {
		snap.local, snap.source = s.localCatalog(gctx)
		return nil
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, domain.Fail(domain.ErrCatalogUnavailable, err)
	}

	if snap.local != nil && snap.remote.Equal(snap.persisted) {
		snap.local.SetHash(snap.remote.ContentHash)
		snap.local.ApplyCacheState(s.files.HasCached)
		s.metrics.CatalogSynced(true)
		s.logger.Info("catalog up to date")
		span.SetAttribute("parcel.updated", false)
		return &Result{Catalog: snap.local, Version: *snap.remote, Source: snap.source}, nil
	}

	next, err := s.download(ctx, snap.remote, snap.local)
	if err != nil {
		span.RecordError(err)
		return nil, domain.Fail(domain.ErrCatalogUnavailable, err, "version", snap.remote.ContentHash)
	}

	s.metrics.CatalogSynced(false)
	s.logger.Info(fmt.Sprintf("catalog updated to %s (build %d)", snap.remote.ContentHash, snap.remote.BuildID))
	span.SetAttribute("parcel.updated", true)
	return &Result{Catalog: next, Version: *snap.remote, Updated: true, Source: SourceRemote}, nil
}

// Local loads the persisted or embedded catalog without contacting the
// remote. It fails with domain.ErrCatalogUnavailable when neither exists.
func (s *Syncer) Local(ctx context.Context) (*Result, error) {
	catalog, source := s.localCatalog(ctx)
	if catalog == nil {
		return nil, domain.Annotate(domain.ErrCatalogUnavailable, "reason", "no persisted or embedded catalog")
	}
	catalog.ApplyCacheState(s.files.HasCached)

	res := &Result{Catalog: catalog, Source: source}
	if v := s.persistedVersion(ctx); v != nil {
		res.Version = *v
	}
	return res, nil
}

func (s *Syncer) remoteVersion(ctx context.Context) (*domain.CatalogVersion, error) {
	url := s.cfg.RemoteDir() + "/" + domain.VersionFileName
	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	v, err := s.versions.Decode(data)
	if err != nil {
		return nil, zerr.With(err, "url", url)
	}
	return v, nil
}

// persistedVersion reads the stored version. Without a readable one it
// synthesizes the embedded build's version and stores that.
func (s *Syncer) persistedVersion(ctx context.Context) *domain.CatalogVersion {
	raw, ok, err := s.kv.Get(ctx, domain.KeyCatalogVersion)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("persisted catalog version unreadable: %v", err))
	}
	if ok {
		v, decodeErr := s.versions.Decode([]byte(raw))
		if decodeErr == nil {
			return v
		}
		s.logger.Warn("persisted catalog version corrupt, using embedded version")
	}

	if s.cfg.EmbeddedVersion.ContentHash == "" {
		return nil
	}
	v := s.cfg.EmbeddedVersion
	if err := s.storeVersion(ctx, &v); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to persist embedded catalog version: %v", err))
	}
	return &v
}

// localCatalog loads the persisted catalog, falling back to the embedded one.
func (s *Syncer) localCatalog(ctx context.Context) (*domain.Catalog, string) {
	raw, ok, err := s.kv.Get(ctx, domain.KeyCatalogBlob)
	if err == nil && ok {
		data, decodeErr := base64.StdEncoding.DecodeString(raw)
		if decodeErr == nil {
			var c *domain.Catalog
			if c, decodeErr = s.catalogs.Decode(data); decodeErr == nil {
				return c, SourcePersisted
			}
		}
		s.logger.Warn("persisted catalog unreadable, using embedded catalog")
	}

	hash := s.cfg.EmbeddedVersion.ContentHash
	if hash == "" {
		return nil, ""
	}
	data, err := s.files.ReadEmbedded(domain.CatalogFileName(hash))
	if err != nil {
		return nil, ""
	}
	c, err := s.catalogs.Decode(data)
	if err != nil {
		s.logger.Warn(fmt.Sprintf("embedded catalog unreadable: %v", err))
		return nil, ""
	}
	return c, SourceEmbedded
}

// download fetches, verifies and decodes the catalog for v, reconciles it
// against prev and persists it.
func (s *Syncer) download(ctx context.Context, v *domain.CatalogVersion, prev *domain.Catalog) (*domain.Catalog, error) {
	url := s.cfg.RemoteDir() + "/" + v.CatalogFileName()
	data, err := s.fetcher.Fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if got := s.hasher.CatalogHash(data); got != v.ContentHash {
		return nil, domain.Annotate(domain.ErrIntegrityMismatch, "catalog", v.CatalogFileName(), "actual", got)
	}

	next, err := s.catalogs.Decode(data)
	if err != nil {
		return nil, err
	}
	next.SetHash(v.ContentHash)
	domain.Reconcile(next, prev)
	next.ApplyCacheState(s.files.HasCached)

	if err := s.persist(ctx, v, data, next); err != nil {
		s.logger.Warn(fmt.Sprintf("failed to persist catalog: %v", err))
	}
	return next, nil
}

// persist stores the reconciled catalog, so carried-forward origins survive a
// restart, and keeps the verified payload in the cache under its hashed name.
func (s *Syncer) persist(ctx context.Context, v *domain.CatalogVersion, payload []byte, c *domain.Catalog) error {
	blob, err := s.catalogs.Encode(c)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, domain.KeyCatalogBlob, base64.StdEncoding.EncodeToString(blob)); err != nil {
		return err
	}
	if err := s.files.WriteCached(v.CatalogFileName(), payload); err != nil {
		return err
	}
	return s.storeVersion(ctx, v)
}

func (s *Syncer) storeVersion(ctx context.Context, v *domain.CatalogVersion) error {
	encoded, err := s.versions.Encode(v)
	if err != nil {
		return err
	}
	return s.kv.Set(ctx, domain.KeyCatalogVersion, string(encoded))
}
