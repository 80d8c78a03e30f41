package ports

// ContentHasher computes the content hashes embedded in persisted names.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type ContentHasher interface {
	// BundleHash returns the hash used in <bundle>~<hash> names.
	BundleHash(data []byte) string
	// CatalogHash returns the hash used in CatalogManifest~<hash>.bytes names.
	CatalogHash(data []byte) string
}
