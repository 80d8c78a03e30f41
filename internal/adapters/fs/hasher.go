package fs

import (
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/blake3"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.ContentHasher = (*Hasher)(nil)

// catalogHashBytes is the number of BLAKE3 digest bytes kept in catalog names.
const catalogHashBytes = 16

// Hasher computes content hashes for bundle archives and catalog payloads.
type Hasher struct{}

// NewHasher creates a new Hasher.
func NewHasher() *Hasher {
	return &Hasher{}
}

// BundleHash returns the XXHash of an archive as 16 hex digits.
func (h *Hasher) BundleHash(data []byte) string {
	return fmt.Sprintf("%016x", xxhash.Sum64(data))
}

// CatalogHash returns the first 128 bits of the BLAKE3 digest as 32 hex digits.
func (h *Hasher) CatalogHash(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:catalogHashBytes])
}

// ComputeFileHash computes the XXHash of a file's content.
func (h *Hasher) ComputeFileHash(path string) (uint64, error) {
	f, err := os.Open(path) //nolint:gosec // Path is controlled by caller
	if err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to open file"), "path", path)
	}
	defer f.Close() //nolint:errcheck // Best effort close in defer

	hasher := xxhash.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return 0, zerr.With(zerr.Wrap(err, "failed to hash file content"), "path", path)
	}
	return hasher.Sum64(), nil
}
