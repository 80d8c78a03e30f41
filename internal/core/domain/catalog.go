// Package domain contains the core models for bundle catalogs, dependency closures and fetch outcomes.
package domain

import (
	"errors"
	"iter"
	"maps"
	"slices"
	"strings"
)

// Catalog maps asset names to bundles and bundles to their direct dependencies
// for one content version.
type Catalog struct {
	hash    string
	bundles map[string]*Bundle
	assets  map[string]Asset
}

// NewCatalog creates an empty catalog for the given version hash.
func NewCatalog(hash string) *Catalog {
	return &Catalog{
		hash:    hash,
		bundles: make(map[string]*Bundle),
		assets:  make(map[string]Asset),
	}
}

// Hash returns the catalog version hash.
func (c *Catalog) Hash() string {
	return c.hash
}

// SetHash replaces the catalog version hash.
func (c *Catalog) SetHash(hash string) {
	c.hash = hash
}

// AddBundle adds a bundle and its asset list. Asset file names must be
// <name>.<extension>. A duplicate bundle fails immediately; asset problems are
// collected and returned together while the remaining assets are still added.
func (c *Catalog) AddBundle(b Bundle, assetFiles []string) error {
	if err := ValidateBundleName(b.Name); err != nil {
		return err
	}
	if _, exists := c.bundles[b.Name]; exists {
		return Annotate(ErrDuplicateDefinition, "bundle", b.Name)
	}

	stored := b.Clone()
	c.bundles[b.Name] = &stored

	var errs error
	for _, file := range assetFiles {
		name, ext, err := SplitAssetFile(file)
		if err != nil {
			errs = errors.Join(errs, err)
			continue
		}
		if existing, ok := c.assets[name]; ok {
			errs = errors.Join(errs, Annotate(ErrDuplicateDefinition, "asset", name, "bundle", existing.BundleName))
			continue
		}
		c.assets[name] = Asset{Name: name, BundleName: b.Name, Extension: ext}
	}
	return errs
}

// AddAsset records an asset without checking that its bundle exists. It is
// used when restoring a catalog from its wire form; Validate reports dangling
// references.
func (c *Catalog) AddAsset(a Asset) error {
	if err := ValidateBaseName(a.Name); err != nil {
		return err
	}
	if existing, ok := c.assets[a.Name]; ok {
		return Annotate(ErrDuplicateDefinition, "asset", a.Name, "bundle", existing.BundleName)
	}
	c.assets[a.Name] = a
	return nil
}

// Bundle returns a copy of the named bundle.
func (c *Catalog) Bundle(name string) (Bundle, bool) {
	b, ok := c.bundles[name]
	if !ok {
		return Bundle{}, false
	}
	return b.Clone(), true
}

// Asset returns the named asset record.
func (c *Catalog) Asset(name string) (Asset, bool) {
	a, ok := c.assets[name]
	return a, ok
}

// AssetExists reports whether the asset is present in the catalog.
func (c *Catalog) AssetExists(name string) bool {
	_, ok := c.assets[name]
	return ok
}

// BundleCount returns the number of bundles.
func (c *Catalog) BundleCount() int {
	return len(c.bundles)
}

// AssetCount returns the number of assets.
func (c *Catalog) AssetCount() int {
	return len(c.assets)
}

// Bundles yields bundles sorted by name.
func (c *Catalog) Bundles() iter.Seq[Bundle] {
	return func(yield func(Bundle) bool) {
		for _, name := range slices.Sorted(maps.Keys(c.bundles)) {
			if !yield(c.bundles[name].Clone()) {
				return
			}
		}
	}
}

// Assets yields assets sorted by name.
func (c *Catalog) Assets() iter.Seq[Asset] {
	return func(yield func(Asset) bool) {
		for _, name := range slices.Sorted(maps.Keys(c.assets)) {
			if !yield(c.assets[name]) {
				return
			}
		}
	}
}

// AssetsIn returns the assets contained in a bundle, sorted by name.
func (c *Catalog) AssetsIn(bundleName string) []Asset {
	var out []Asset
	for a := range c.Assets() {
		if a.BundleName == bundleName {
			out = append(out, a)
		}
	}
	return out
}

// ContainingBundle resolves the bundle that holds an asset.
func (c *Catalog) ContainingBundle(assetName string) (Bundle, error) {
	asset, ok := c.assets[assetName]
	if !ok {
		return Bundle{}, Annotate(ErrNotFound, "asset", assetName)
	}
	b, ok := c.bundles[asset.BundleName]
	if !ok {
		return Bundle{}, Annotate(ErrMalformedCatalog, "asset", assetName, "bundle", asset.BundleName)
	}
	return b.Clone(), nil
}

// IsBundleCached reports whether the bundle's bytes are in the cache root.
func (c *Catalog) IsBundleCached(name string) bool {
	b, ok := c.bundles[name]
	return ok && b.Origin == OriginCached
}

// IsAssetCached reports whether the asset's containing bundle is cached.
func (c *Catalog) IsAssetCached(assetName string) bool {
	b, err := c.ContainingBundle(assetName)
	return err == nil && b.Origin == OriginCached
}

// SetOrigin replaces a bundle's origin. It reports false if the bundle is unknown.
func (c *Catalog) SetOrigin(name string, origin Origin) bool {
	b, ok := c.bundles[name]
	if !ok {
		return false
	}
	b.Origin = origin
	return true
}

// ApplyCacheState marks every RequireDownload bundle for which has reports
// true as Cached, and returns the names that changed.
func (c *Catalog) ApplyCacheState(has func(name string) bool) []string {
	var changed []string
	for _, name := range slices.Sorted(maps.Keys(c.bundles)) {
		b := c.bundles[name]
		if b.Origin == OriginRequireDownload && has(name) {
			b.Origin = OriginCached
			changed = append(changed, name)
		}
	}
	return changed
}

// Clone returns a deep copy of the catalog.
func (c *Catalog) Clone() *Catalog {
	out := NewCatalog(c.hash)
	for name, b := range c.bundles {
		cp := b.Clone()
		out.bundles[name] = &cp
	}
	maps.Copy(out.assets, c.assets)
	return out
}

// DependencyClosure is the set of bundles required to make a root bundle usable.
type DependencyClosure struct {
	Root string
	// Bundles lists members with dependencies before their dependents.
	Bundles []string
}

// Contains reports whether name is a member of the closure.
func (d DependencyClosure) Contains(name string) bool {
	return slices.Contains(d.Bundles, name)
}

// Closure walks the dependencies of name depth-first. Every bundle is expanded
// at most once, so diamonds and cycles terminate. When downloadOnly is set,
// only bundles whose origin is RequireDownload are returned, but traversal
// still continues through the excluded bundles.
func (c *Catalog) Closure(name string, downloadOnly bool) (DependencyClosure, error) {
	if _, ok := c.bundles[name]; !ok {
		return DependencyClosure{}, Annotate(ErrNotFound, "bundle", name)
	}

	closure := DependencyClosure{Root: name}
	expanded := make(map[string]bool)

	var visit func(n string) error
	visit = func(n string) error {
		expanded[n] = true
		b := c.bundles[n]
		for _, dep := range b.Dependencies {
			if expanded[dep] {
				continue
			}
			if _, ok := c.bundles[dep]; !ok {
				return Annotate(ErrMalformedCatalog, "bundle", n, "missing_dependency", dep)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		if !downloadOnly || b.Origin == OriginRequireDownload {
			closure.Bundles = append(closure.Bundles, n)
		}
		return nil
	}

	if err := visit(name); err != nil {
		return DependencyClosure{}, err
	}
	return closure, nil
}

// Validate checks that every reference resolves and that the dependency graph
// is acyclic. It is meant for catalog build time; Closure tolerates cycles.
func (c *Catalog) Validate() error {
	for a := range c.Assets() {
		if _, ok := c.bundles[a.BundleName]; !ok {
			return Annotate(ErrMalformedCatalog, "asset", a.Name, "bundle", a.BundleName)
		}
	}

	visited := make(map[string]int) // 0: unvisited, 1: visiting, 2: visited
	var path []string

	var visit func(u string) error
	visit = func(u string) error {
		visited[u] = 1
		path = append(path, u)

		b, exists := c.bundles[u]
		if !exists {
			return Annotate(ErrMalformedCatalog, "missing_dependency", u)
		}

		for _, dep := range b.Dependencies {
			if visited[dep] == 1 {
				return buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		return nil
	}

	// Sorted so the reported cycle is deterministic.
	for _, name := range slices.Sorted(maps.Keys(c.bundles)) {
		if visited[name] == 0 {
			if err := visit(name); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func buildCycleError(path []string, dep string) error {
	start := slices.Index(path, dep)
	cycle := append(slices.Clone(path[start:]), dep)
	return Annotate(ErrCycleDetected, "cycle", strings.Join(cycle, " -> "))
}

// Reconcile carries local availability forward from prev into next. Every
// bundle in next is reset to RequireDownload, then bundles whose name also
// appears in prev take prev's origin. prev may be nil.
func Reconcile(next, prev *Catalog) {
	for _, b := range next.bundles {
		b.Origin = OriginRequireDownload
	}
	if prev == nil {
		return
	}
	for name, b := range next.bundles {
		if old, ok := prev.bundles[name]; ok {
			b.Origin = old.Origin
		}
	}
}
