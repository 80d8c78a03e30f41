// Package cas implements the content addressed bundle store. Files are named
// by their content hash, so a name is written once and never changes.
package cas

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

var _ ports.FileStore = (*Store)(nil)

// Store implements ports.FileStore over three directories.
type Store struct {
	embeddedRoot string
	cacheRoot    string
	sourceRoot   string
}

// NewStore creates a Store. The cache root is created lazily on first write.
func NewStore(embeddedRoot, cacheRoot, sourceRoot string) *Store {
	return &Store{
		embeddedRoot: filepath.Clean(embeddedRoot),
		cacheRoot:    filepath.Clean(cacheRoot),
		sourceRoot:   filepath.Clean(sourceRoot),
	}
}

// EmbeddedRoot returns the embedded root directory.
func (s *Store) EmbeddedRoot() string { return s.embeddedRoot }

// CacheRoot returns the cache root directory.
func (s *Store) CacheRoot() string { return s.cacheRoot }

// ReadEmbedded reads a file shipped with the client.
func (s *Store) ReadEmbedded(name string) ([]byte, error) {
	path, err := flatPath(s.embeddedRoot, name)
	if err != nil {
		return nil, err
	}
	return readFile(path, name)
}

// ReadCached reads a file from the cache root.
func (s *Store) ReadCached(name string) ([]byte, error) {
	path, err := flatPath(s.cacheRoot, name)
	if err != nil {
		return nil, err
	}
	return readFile(path, name)
}

// HasCached reports whether the cache root holds the file.
func (s *Store) HasCached(name string) bool {
	path, err := flatPath(s.cacheRoot, name)
	if err != nil {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// WriteCached stores a file in the cache root. The data is written to a
// temporary file first and renamed into place, so readers never observe a
// partial file.
func (s *Store) WriteCached(name string, data []byte) error {
	path, err := flatPath(s.cacheRoot, name)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.cacheRoot, domain.DirPerm); err != nil {
		return domain.Fail(domain.ErrStoreCreateFailed, err, "path", s.cacheRoot)
	}

	tmp, err := os.CreateTemp(s.cacheRoot, "."+name+".*")
	if err != nil {
		return domain.Fail(domain.ErrStoreWriteFailed, err, "bundle", name)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return domain.Fail(domain.ErrStoreWriteFailed, err, "bundle", name)
	}
	if err := tmp.Close(); err != nil {
		return domain.Fail(domain.ErrStoreWriteFailed, err, "bundle", name)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return domain.Fail(domain.ErrStoreWriteFailed, err, "bundle", name)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return domain.Fail(domain.ErrStoreWriteFailed, err, "bundle", name)
	}
	return nil
}

// RemoveCached deletes a file from the cache root.
func (s *Store) RemoveCached(name string) error {
	path, err := flatPath(s.cacheRoot, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return domain.Fail(domain.ErrStoreWriteFailed, err, "bundle", name)
	}
	return nil
}

// ReadSource reads a passthrough source file. path uses forward slashes and
// must stay inside the source root.
func (s *Store) ReadSource(path string) ([]byte, error) {
	rel := filepath.FromSlash(path)
	if !filepath.IsLocal(rel) {
		return nil, domain.Annotate(domain.ErrInvalidName, "path", path, "reason", "escapes source root")
	}
	return readFile(filepath.Join(s.sourceRoot, rel), path)
}

// flatPath joins a single file name onto root, rejecting names that would
// address anything but a direct child.
func flatPath(root, name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return "", domain.Annotate(domain.ErrInvalidName, "name", name, "reason", "not a plain file name")
	}
	return filepath.Join(root, name), nil
}

func readFile(path, name string) ([]byte, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is built from a validated name
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.Annotate(domain.ErrMissingFile, "file", name)
		}
		return nil, domain.Fail(domain.ErrStoreReadFailed, err, "file", name)
	}
	return data, nil
}
