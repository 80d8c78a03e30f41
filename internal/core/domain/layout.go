package domain

import "path/filepath"

const (
	// ParcelDirName is the name of the internal workspace directory.
	ParcelDirName = ".parcel"

	// CacheDirName is the name of the bundle cache directory.
	CacheDirName = "cache"

	// StateFileName is the name of the key-value state database.
	StateFileName = "state.db"

	// ConfigFileName is the name of the project configuration file.
	ConfigFileName = "parcel.yaml"

	// DefinitionFileName is the default name of the bundle definition file.
	DefinitionFileName = "bundles.yaml"

	// EmbeddedDirName is the default name of the embedded bundle root.
	EmbeddedDirName = "EmbeddedBundles"

	// PublishDirName is the default publish output directory.
	PublishDirName = "dist"

	// SourceDirName is the default passthrough source root.
	SourceDirName = "assets"

	// VersionFileName is the name of the catalog version descriptor.
	VersionFileName = "CatalogVersion.json"

	// CatalogBaseName is the base name of catalog payload files.
	CatalogBaseName = "CatalogManifest"

	// CatalogExtension is the extension of catalog payload files.
	CatalogExtension = ".bytes"

	// DefaultMaxParallelFetches is the default cap on concurrently active fetch jobs.
	DefaultMaxParallelFetches = 3

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644

	// PrivateFilePerm is the default permission for private files (rw-------).
	PrivateFilePerm = 0o600
)

// Key-value store keys.
const (
	// KeyCatalogVersion holds the JSON-encoded persisted CatalogVersion.
	KeyCatalogVersion = "catalog.version"

	// KeyCatalogBlob holds the base64-encoded persisted catalog payload.
	KeyCatalogBlob = "catalog.blob"
)

// DefaultParcelPath returns the default root directory for parcel metadata.
func DefaultParcelPath() string {
	return ParcelDirName
}

// DefaultCachePath returns the default bundle cache root.
// It joins .parcel and cache.
func DefaultCachePath() string {
	return filepath.Join(ParcelDirName, CacheDirName)
}

// DefaultStatePath returns the default key-value database path.
// It joins .parcel and state.db.
func DefaultStatePath() string {
	return filepath.Join(ParcelDirName, StateFileName)
}

// RemotePath returns the remote directory for a platform and client version,
// relative to the remote base URL.
func RemotePath(platform, clientVersion string) string {
	return platform + "/" + clientVersion
}
