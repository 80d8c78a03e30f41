package ports

import "go.trai.ch/parcel/internal/core/domain"

//go:generate mockgen -source=codec.go -destination=mocks/mock_codec.go -package=mocks

// CatalogCodec turns a catalog into its transportable form and back.
type CatalogCodec interface {
	Encode(c *domain.Catalog) ([]byte, error)
	Decode(data []byte) (*domain.Catalog, error)
}

// VersionCodec turns a catalog version descriptor into text and back.
type VersionCodec interface {
	Encode(v *domain.CatalogVersion) ([]byte, error)
	Decode(data []byte) (*domain.CatalogVersion, error)
}

// BundleCodec packs and unpacks bundle archives.
type BundleCodec interface {
	Encode(content *domain.BundleContent, compression domain.Compression) ([]byte, error)
	Decode(name string, data []byte) (*domain.BundleContent, error)
}
