// Package publisher packs a bundle definition into a publish tree: one
// compressed archive per bundle, the catalog payload and its version
// descriptor.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"runtime"

	"github.com/dustin/go-humanize"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Lister lists the files directly inside a source directory.
type Lister interface {
	ListFiles(dir string, ignores []string) []string
}

// Options controls one publish run.
type Options struct {
	Platform      string
	ClientVersion string
	// SourceRoot is the directory bundle sources are listed from when a
	// bundle declares no assets.
	SourceRoot  string
	Output      string
	Compression domain.Compression
	// EmbeddedOutput, when set, receives the bundles marked embedded plus a
	// catalog that records them as Embedded.
	EmbeddedOutput string
}

// OptionsFor derives publish options from a project configuration.
func OptionsFor(cfg *domain.Config) (Options, error) {
	c, err := domain.ParseCompression(cfg.Publish.Compression)
	if err != nil {
		return Options{}, err
	}
	return Options{
		Platform:       cfg.Platform,
		ClientVersion:  cfg.ClientVersion,
		SourceRoot:     cfg.SourceRoot,
		Output:         cfg.Publish.Output,
		Compression:    c,
		EmbeddedOutput: cfg.Publish.EmbeddedOutput,
	}, nil
}

// Result describes a finished publish.
type Result struct {
	Catalog *domain.Catalog
	Version domain.CatalogVersion
	// Dir is <output>/<platform>/<clientVersion>.
	Dir string
	// Bundles lists the hashed bundle names in definition order.
	Bundles []string
	// Embedded lists the hashed names copied into the embedded tree.
	Embedded []string
	// Changed is false when the output already held this exact catalog.
	Changed bool
	// Bytes is the total archive size.
	Bytes uint64
}

// Publisher builds publish trees.
type Publisher struct {
	files    ports.FileStore
	lister   Lister
	bundles  ports.BundleCodec
	catalogs ports.CatalogCodec
	versions ports.VersionCodec
	hasher   ports.ContentHasher
	logger   ports.Logger
}

// New creates a Publisher. Source files are read through files.ReadSource.
func New(
	files ports.FileStore,
	lister Lister,
	bundles ports.BundleCodec,
	catalogs ports.CatalogCodec,
	versions ports.VersionCodec,
	hasher ports.ContentHasher,
	logger ports.Logger,
) *Publisher {
	return &Publisher{
		files:    files,
		lister:   lister,
		bundles:  bundles,
		catalogs: catalogs,
		versions: versions,
		hasher:   hasher,
		logger:   logger,
	}
}

type packed struct {
	def    domain.BundleDefinition
	name   string
	assets []string
	data   []byte
}

// Publish packs every bundle of def and writes the publish tree.
func (p *Publisher) Publish(ctx context.Context, def *domain.Definition, opts Options) (*Result, error) {
	out := make([]packed, len(def.Bundles))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, b := range def.Bundles {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			pk, err := p.pack(b, opts)
			if err != nil {
				return err
			}
			out[i] = pk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	catalog, err := buildCatalog(out, func(domain.BundleDefinition) domain.Origin { return domain.OriginRequireDownload })
	if err != nil {
		return nil, err
	}
	payload, err := p.catalogs.Encode(catalog)
	if err != nil {
		return nil, err
	}

	dir := filepath.Join(opts.Output, opts.Platform, opts.ClientVersion)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return nil, domain.Fail(domain.ErrPublishFailed, err, "path", dir)
	}

	version, changed, err := p.nextVersion(dir, p.hasher.CatalogHash(payload))
	if err != nil {
		return nil, err
	}
	catalog.SetHash(version.ContentHash)

	res := &Result{Catalog: catalog, Version: version, Dir: dir, Changed: changed}
	for _, pk := range out {
		if err := writeOnce(filepath.Join(dir, pk.name), pk.data); err != nil {
			return nil, err
		}
		res.Bundles = append(res.Bundles, pk.name)
		res.Bytes += uint64(len(pk.data))
	}
	if err := p.writeCatalog(dir, &version, payload); err != nil {
		return nil, err
	}

	p.logger.Info(fmt.Sprintf("published %d bundles (%s) to %s", len(out), humanize.Bytes(res.Bytes), dir))
	p.logger.Info(fmt.Sprintf("catalog %s (build %d)", version.ContentHash, version.BuildID))

	if opts.EmbeddedOutput != "" {
		if res.Embedded, err = p.writeEmbedded(out, &version, opts.EmbeddedOutput); err != nil {
			return nil, err
		}
	}
	return res, nil
}

// pack reads a bundle's sources and encodes its archive.
func (p *Publisher) pack(b domain.BundleDefinition, opts Options) (packed, error) {
	dir := b.SourceDir()
	content := domain.NewBundleContent(b.Name)
	pk := packed{def: b}

	files := b.Assets
	if len(files) == 0 && len(b.Prefabs) == 0 {
		files = p.lister.ListFiles(filepath.Join(opts.SourceRoot, filepath.FromSlash(dir)), nil)
	}

	var errs error
	for _, file := range files {
		name, ext, err := domain.SplitAssetFile(file)
		if err != nil {
			errs = errors.Join(errs, zerr.With(err, "bundle", b.Name))
			continue
		}
		data, err := p.files.ReadSource(path.Join(dir, file))
		if err != nil {
			errs = errors.Join(errs, zerr.With(err, "bundle", b.Name))
			continue
		}
		content.Items[name] = domain.Item{Name: name, Kind: domain.KindResource, Extension: ext, Data: data}
		pk.assets = append(pk.assets, name+"."+ext)
	}

	for _, prefab := range b.Prefabs {
		item, err := p.packPrefab(dir, prefab)
		if err != nil {
			errs = errors.Join(errs, zerr.With(err, "bundle", b.Name))
			continue
		}
		content.Items[item.Name] = item
		pk.assets = append(pk.assets, prefab.Asset)
	}
	if errs != nil {
		return packed{}, errs
	}

	data, err := p.bundles.Encode(content, opts.Compression)
	if err != nil {
		return packed{}, err
	}
	pk.data = data
	pk.name = domain.HashedName(b.Name, p.hasher.BundleHash(data))
	return pk, nil
}

func (p *Publisher) packPrefab(dir string, def domain.PrefabDefinition) (domain.Item, error) {
	name, ext, err := domain.SplitAssetFile(def.Asset)
	if err != nil {
		return domain.Item{}, err
	}
	item := domain.Item{Name: name, Kind: domain.KindPrefab, Extension: ext}
	if def.Data != "" {
		if item.Data, err = p.files.ReadSource(path.Join(dir, def.Data)); err != nil {
			return domain.Item{}, err
		}
	}
	for _, c := range def.Components {
		data, err := p.files.ReadSource(path.Join(dir, c.File))
		if err != nil {
			return domain.Item{}, err
		}
		item.Components = append(item.Components, domain.Component{Name: c.Name, Data: data})
	}
	return item, nil
}

// buildCatalog translates base-name dependencies to hashed names and
// validates the result.
func buildCatalog(bundles []packed, origin func(domain.BundleDefinition) domain.Origin) (*domain.Catalog, error) {
	hashed := make(map[string]string, len(bundles))
	for _, pk := range bundles {
		hashed[pk.def.Name] = pk.name
	}

	c := domain.NewCatalog("")
	var errs error
	for _, pk := range bundles {
		b := domain.Bundle{Name: pk.name, Origin: origin(pk.def)}
		for _, dep := range pk.def.Dependencies {
			name, ok := hashed[dep]
			if !ok {
				errs = errors.Join(errs, domain.Annotate(domain.ErrMalformedCatalog, "bundle", pk.def.Name, "missing_dependency", dep))
				continue
			}
			b.Dependencies = append(b.Dependencies, name)
		}
		if err := c.AddBundle(b, pk.assets); err != nil {
			errs = errors.Join(errs, err)
		}
	}
	if errs != nil {
		return nil, errs
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// nextVersion keeps the existing version when the catalog hash is unchanged
// and otherwise increments its build id.
func (p *Publisher) nextVersion(dir, hash string) (domain.CatalogVersion, bool, error) {
	data, err := os.ReadFile(filepath.Join(dir, domain.VersionFileName)) //nolint:gosec // Path is built from config
	if errors.Is(err, fs.ErrNotExist) {
		return domain.CatalogVersion{ContentHash: hash, BuildID: 1}, true, nil
	}
	if err != nil {
		return domain.CatalogVersion{}, false, domain.Fail(domain.ErrPublishFailed, err, "path", dir)
	}

	prev, err := p.versions.Decode(data)
	if err != nil {
		p.logger.Warn(fmt.Sprintf("existing %s unreadable, starting at build 1", domain.VersionFileName))
		return domain.CatalogVersion{ContentHash: hash, BuildID: 1}, true, nil
	}
	if prev.ContentHash == hash {
		return *prev, false, nil
	}
	return domain.CatalogVersion{ContentHash: hash, BuildID: prev.BuildID + 1}, true, nil
}

func (p *Publisher) writeCatalog(dir string, v *domain.CatalogVersion, payload []byte) error {
	if err := writeOnce(filepath.Join(dir, v.CatalogFileName()), payload); err != nil {
		return err
	}
	encoded, err := p.versions.Encode(v)
	if err != nil {
		return err
	}
	return writeFile(filepath.Join(dir, domain.VersionFileName), encoded)
}

// writeEmbedded copies the bundles marked embedded and writes a catalog that
// records them as Embedded. The embedded catalog is stored under the
// published version so a fresh client starts up to date.
func (p *Publisher) writeEmbedded(bundles []packed, v *domain.CatalogVersion, root string) ([]string, error) {
	if err := os.MkdirAll(root, domain.DirPerm); err != nil {
		return nil, domain.Fail(domain.ErrPublishFailed, err, "path", root)
	}

	var names []string
	for _, pk := range bundles {
		if !pk.def.Embedded {
			continue
		}
		if err := writeOnce(filepath.Join(root, pk.name), pk.data); err != nil {
			return nil, err
		}
		names = append(names, pk.name)
	}

	catalog, err := buildCatalog(bundles, func(d domain.BundleDefinition) domain.Origin {
		if d.Embedded {
			return domain.OriginEmbedded
		}
		return domain.OriginRequireDownload
	})
	if err != nil {
		return nil, err
	}
	payload, err := p.catalogs.Encode(catalog)
	if err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(root, v.CatalogFileName()), payload); err != nil {
		return nil, err
	}
	encoded, err := p.versions.Encode(v)
	if err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(root, domain.VersionFileName), encoded); err != nil {
		return nil, err
	}

	p.logger.Info(fmt.Sprintf("embedded %d bundles in %s", len(names), root))
	return names, nil
}

// PassthroughCatalog synthesizes a catalog from def in which every bundle is
// served from the source tree. Bundles keep their base names.
func PassthroughCatalog(def *domain.Definition, lister Lister, sourceRoot string) (*domain.Catalog, error) {
	bundles := make([]packed, 0, len(def.Bundles))
	for _, b := range def.Bundles {
		pk := packed{def: b, name: b.Name}
		files := b.Assets
		if len(files) == 0 && len(b.Prefabs) == 0 {
			files = lister.ListFiles(filepath.Join(sourceRoot, filepath.FromSlash(b.SourceDir())), nil)
		}
		pk.assets = append(pk.assets, files...)
		for _, prefab := range b.Prefabs {
			pk.assets = append(pk.assets, prefab.Asset)
		}
		bundles = append(bundles, pk)
	}
	return buildCatalog(bundles, func(domain.BundleDefinition) domain.Origin { return domain.OriginLocalPassthrough })
}

// writeOnce writes a content addressed file unless it already exists.
func writeOnce(path string, data []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}
	return writeFile(path, data)
}

func writeFile(path string, data []byte) error {
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil { //nolint:gosec // Path is built from config
		return domain.Fail(domain.ErrPublishFailed, err, "path", path)
	}
	return nil
}
