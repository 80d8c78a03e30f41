package ports

// FileStore reads and writes bundle and catalog files under the embedded
// root (read-only) and the cache root (read-write).
//
//go:generate mockgen -source=filestore.go -destination=mocks/mock_filestore.go -package=mocks
type FileStore interface {
	// ReadEmbedded reads a file shipped with the client.
	// Returns domain.ErrMissingFile if it does not exist.
	ReadEmbedded(name string) ([]byte, error)

	// ReadCached reads a file from the cache root.
	// Returns domain.ErrMissingFile if it does not exist.
	ReadCached(name string) ([]byte, error)

	// WriteCached atomically stores a file in the cache root.
	WriteCached(name string, data []byte) error

	// HasCached reports whether the cache root holds the file.
	HasCached(name string) bool

	// RemoveCached deletes a file from the cache root. Missing files are not an error.
	RemoveCached(name string) error

	// ReadSource reads a passthrough source file relative to the source root.
	ReadSource(path string) ([]byte, error)

	// EmbeddedRoot returns the embedded root directory.
	EmbeddedRoot() string

	// CacheRoot returns the cache root directory.
	CacheRoot() string
}
