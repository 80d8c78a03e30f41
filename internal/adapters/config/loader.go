// Package config provides the configuration loader for parcel.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	mm "github.com/Masterminds/semver/v3"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// supportedVersion is the only accepted value of the version field.
const supportedVersion = "1"

var (
	_ ports.ConfigLoader     = (*Loader)(nil)
	_ ports.DefinitionLoader = (*Loader)(nil)
)

// Loader implements ports.ConfigLoader and ports.DefinitionLoader using YAML files.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load finds parcel.yaml in cwd or the nearest parent and resolves it into a
// domain.Config. Without a config file the defaults rooted at cwd are returned.
func (l *Loader) Load(cwd string) (*domain.Config, error) {
	configPath, found := findConfiguration(cwd)
	if !found {
		return domain.DefaultConfig(cwd), nil
	}

	var file Parcelfile
	if err := readAndUnmarshalYAML(configPath, &file, domain.ErrConfigReadFailed); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	cfg, err := l.resolve(filepath.Dir(configPath), &file)
	if err != nil {
		return nil, zerr.With(err, "path", configPath)
	}
	return cfg, nil
}

func findConfiguration(cwd string) (string, bool) {
	currentDir := cwd
	for {
		candidate := filepath.Join(currentDir, domain.ConfigFileName)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", false
		}
		currentDir = parentDir
	}
}

//nolint:cyclop // flat field-by-field resolution
func (l *Loader) resolve(root string, file *Parcelfile) (*domain.Config, error) {
	if file.Version != "" && file.Version != supportedVersion {
		return nil, invalid("version", file.Version, "unsupported config version")
	}

	cfg := domain.DefaultConfig(root)

	if err := resolveRemote(&cfg.Remote, &file.Remote); err != nil {
		return nil, err
	}

	if file.Platform != "" {
		if strings.ContainsAny(file.Platform, `/\`+domain.HashSeparator) {
			return nil, invalid("platform", file.Platform, "must be a single path segment")
		}
		cfg.Platform = file.Platform
	}

	if file.ClientVersion != "" {
		v, err := mm.NewVersion(file.ClientVersion)
		if err != nil {
			return nil, zerr.With(invalid("clientVersion", file.ClientVersion, "not a semantic version"), "cause", err.Error())
		}
		cfg.ClientVersion = v.String()
	}

	switch {
	case file.MaxParallelFetches < 0:
		return nil, invalid("maxParallelFetches", file.MaxParallelFetches, "must be at least 1")
	case file.MaxParallelFetches > 0:
		cfg.MaxParallelFetches = file.MaxParallelFetches
	}

	cfg.EmbeddedRoot = resolvePath(root, file.Paths.Embedded, cfg.EmbeddedRoot)
	cfg.CacheRoot = resolvePath(root, file.Paths.Cache, cfg.CacheRoot)
	cfg.StatePath = resolvePath(root, file.Paths.State, cfg.StatePath)

	if file.Embedded.ContentHash != "" {
		if strings.Contains(file.Embedded.ContentHash, domain.HashSeparator) {
			return nil, invalid("embedded.contentHash", file.Embedded.ContentHash, "contains reserved separator")
		}
		cfg.EmbeddedVersion = domain.CatalogVersion{
			ContentHash: file.Embedded.ContentHash,
			BuildID:     file.Embedded.BuildID,
		}
	}

	cfg.Passthrough = file.Passthrough.Enabled
	cfg.SourceRoot = resolvePath(root, file.Passthrough.Source, cfg.SourceRoot)

	cfg.Publish.Definition = resolvePath(root, file.Publish.Definition, cfg.Publish.Definition)
	cfg.Publish.Output = resolvePath(root, file.Publish.Output, cfg.Publish.Output)
	if file.Publish.EmbeddedOutput != "" {
		cfg.Publish.EmbeddedOutput = resolvePath(root, file.Publish.EmbeddedOutput, "")
	}
	if file.Publish.Compression != "" {
		if _, err := domain.ParseCompression(file.Publish.Compression); err != nil {
			return nil, err
		}
		cfg.Publish.Compression = file.Publish.Compression
	}

	if cfg.Passthrough && cfg.Remote.BaseURL != "" {
		l.Logger.Warn("passthrough is enabled; remote.baseURL is ignored")
	}
	return cfg, nil
}

func resolveRemote(out *domain.RemoteConfig, dto *RemoteDTO) error {
	if dto.BaseURL != "" {
		u, err := url.Parse(dto.BaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return invalid("remote.baseURL", dto.BaseURL, "must be an absolute http(s) URL")
		}
		out.BaseURL = strings.TrimRight(dto.BaseURL, "/")
	}

	if dto.Timeout != 0 {
		if dto.Timeout < domain.MinTimeout || dto.Timeout > domain.MaxTimeout {
			return invalid("remote.timeout", dto.Timeout, outOfRange(domain.MinTimeout, domain.MaxTimeout))
		}
		out.Timeout = dto.Timeout
	}
	if dto.Retries != nil {
		if *dto.Retries < domain.MinRetries || *dto.Retries > domain.MaxRetries {
			return invalid("remote.retries", *dto.Retries, outOfRange(domain.MinRetries, domain.MaxRetries))
		}
		out.Retries = *dto.Retries
	}
	if dto.RetryDelay != 0 {
		if dto.RetryDelay < domain.MinRetryDelay || dto.RetryDelay > domain.MaxRetryDelay {
			return invalid("remote.retryDelay", dto.RetryDelay, outOfRange(domain.MinRetryDelay, domain.MaxRetryDelay))
		}
		out.RetryDelay = dto.RetryDelay
	}
	if dto.Backoff != 0 {
		if dto.Backoff < domain.MinBackoff || dto.Backoff > domain.MaxBackoff {
			return invalid("remote.backoff", dto.Backoff, outOfRange(domain.MinBackoff, domain.MaxBackoff))
		}
		out.Backoff = dto.Backoff
	}
	for k, v := range dto.Headers {
		out.Headers[k] = v
	}
	return nil
}

// LoadDefinition parses bundles.yaml into a domain.Definition.
func (l *Loader) LoadDefinition(path string) (*domain.Definition, error) {
	var file Bundlefile
	if err := readAndUnmarshalYAML(path, &file, domain.ErrDefinitionReadFailed); err != nil {
		return nil, zerr.With(err, "path", path)
	}
	if file.Version != "" && file.Version != supportedVersion {
		return nil, zerr.With(invalid("version", file.Version, "unsupported definition version"), "path", path)
	}

	def := &domain.Definition{Bundles: make([]domain.BundleDefinition, 0, len(file.Bundles))}
	seen := make(map[string]bool, len(file.Bundles))
	var errs error

	for i, dto := range file.Bundles {
		if dto == nil {
			errs = errors.Join(errs, zerr.With(invalid("bundles", i, "empty bundle entry"), "path", path))
			continue
		}
		if err := domain.ValidateBaseName(dto.Name); err != nil {
			errs = errors.Join(errs, zerr.With(err, "path", path))
			continue
		}
		if seen[dto.Name] {
			errs = errors.Join(errs, domain.Annotate(domain.ErrDuplicateDefinition, "bundle", dto.Name, "path", path))
			continue
		}
		seen[dto.Name] = true
		def.Bundles = append(def.Bundles, buildBundleDefinition(dto))
	}

	for _, b := range def.Bundles {
		for _, dep := range b.Dependencies {
			if !seen[dep] {
				errs = errors.Join(errs, domain.Annotate(domain.ErrMalformedCatalog, "bundle", b.Name, "missing_dependency", dep))
			}
		}
	}

	if errs != nil {
		return nil, errs
	}
	return def, nil
}

func buildBundleDefinition(dto *BundleDTO) domain.BundleDefinition {
	b := domain.BundleDefinition{
		Name:         dto.Name,
		Dependencies: dto.DependsOn,
		Assets:       dto.Assets,
		Embedded:     dto.Embedded,
	}
	for _, p := range dto.Prefabs {
		prefab := domain.PrefabDefinition{Asset: p.Asset, Data: p.Data}
		for _, c := range p.Components {
			prefab.Components = append(prefab.Components, domain.ComponentDefinition{Name: c.Name, File: c.File})
		}
		b.Prefabs = append(b.Prefabs, prefab)
	}
	return b
}

func resolvePath(root, value, fallback string) string {
	switch {
	case value == "":
		return fallback
	case filepath.IsAbs(value):
		return filepath.Clean(value)
	default:
		return filepath.Join(root, value)
	}
}

func invalid(field string, value any, reason string) error {
	return domain.Annotate(domain.ErrInvalidConfig, "field", field, "value", value, "reason", reason)
}

func outOfRange[T any](lo, hi T) string {
	return fmt.Sprintf("must be between %v and %v", lo, hi)
}

func readAndUnmarshalYAML[T any](path string, target *T, readErr error) error {
	// #nosec G304 -- path is found or configured by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Fail(readErr, err)
	}

	if parseErr := yaml.Unmarshal(data, target); parseErr != nil {
		return domain.Fail(domain.ErrConfigParseFailed, parseErr)
	}
	return nil
}
