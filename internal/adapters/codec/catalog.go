package codec

import (
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

var _ ports.CatalogCodec = (*CatalogCodec)(nil)

type wireCatalog struct {
	Hash    string       `cbor:"1,keyasint"`
	Bundles []wireBundle `cbor:"2,keyasint"`
	Assets  []wireAsset  `cbor:"3,keyasint"`
}

type wireBundle struct {
	Name   string   `cbor:"1,keyasint"`
	Origin uint8    `cbor:"2,keyasint"`
	Deps   []string `cbor:"3,keyasint,omitempty"`
}

type wireAsset struct {
	Name      string `cbor:"1,keyasint"`
	Bundle    string `cbor:"2,keyasint"`
	Extension string `cbor:"3,keyasint"`
}

// CatalogCodec stores catalogs as zstd-compressed deterministic CBOR.
type CatalogCodec struct{}

// NewCatalogCodec creates a new CatalogCodec.
func NewCatalogCodec() *CatalogCodec {
	return &CatalogCodec{}
}

// Encode serializes the catalog. Bundles and assets are written in name order
// so equal catalogs produce equal bytes.
func (CatalogCodec) Encode(c *domain.Catalog) ([]byte, error) {
	w := wireCatalog{
		Hash:    c.Hash(),
		Bundles: make([]wireBundle, 0, c.BundleCount()),
		Assets:  make([]wireAsset, 0, c.AssetCount()),
	}
	for b := range c.Bundles() {
		w.Bundles = append(w.Bundles, wireBundle{Name: b.Name, Origin: uint8(b.Origin), Deps: b.Dependencies})
	}
	for a := range c.Assets() {
		w.Assets = append(w.Assets, wireAsset{Name: a.Name, Bundle: a.BundleName, Extension: a.Extension})
	}

	raw, err := marshal(w)
	if err != nil {
		return nil, domain.Fail(domain.ErrEncodeFailed, err, "kind", "catalog")
	}
	return compressFrame(raw, domain.CompressionZstd)
}

// Decode restores a catalog. Dangling asset references are kept so that
// Validate and Closure can report them.
func (CatalogCodec) Decode(data []byte) (*domain.Catalog, error) {
	raw, err := decompressFrame(data)
	if err != nil {
		return nil, err
	}

	var w wireCatalog
	if err := unmarshal(raw, &w); err != nil {
		return nil, domain.Fail(domain.ErrDecodeFailed, err, "kind", "catalog")
	}

	c := domain.NewCatalog(w.Hash)
	for _, b := range w.Bundles {
		origin := domain.Origin(b.Origin)
		if origin.String() == "unknown" {
			return nil, domain.Annotate(domain.ErrDecodeFailed, "bundle", b.Name, "origin", b.Origin)
		}
		if err := c.AddBundle(domain.Bundle{Name: b.Name, Origin: origin, Dependencies: b.Deps}, nil); err != nil {
			return nil, domain.Fail(domain.ErrDecodeFailed, err, "bundle", b.Name)
		}
	}
	for _, a := range w.Assets {
		if err := c.AddAsset(domain.Asset{Name: a.Name, BundleName: a.Bundle, Extension: a.Extension}); err != nil {
			return nil, domain.Fail(domain.ErrDecodeFailed, err, "asset", a.Name)
		}
	}
	return c, nil
}
