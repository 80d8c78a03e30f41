package codec

import (
	"encoding/json"

	"github.com/tidwall/jsonc"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

var _ ports.VersionCodec = (*VersionCodec)(nil)

// VersionCodec reads and writes CatalogVersion.json. Comments and trailing
// commas are tolerated on read.
type VersionCodec struct{}

// NewVersionCodec creates a new VersionCodec.
func NewVersionCodec() *VersionCodec {
	return &VersionCodec{}
}

// Encode returns the indented JSON form of v.
func (VersionCodec) Encode(v *domain.CatalogVersion) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, domain.Fail(domain.ErrEncodeFailed, err, "kind", "version")
	}
	return append(data, '\n'), nil
}

// Decode parses a version descriptor. The content hash is required.
func (VersionCodec) Decode(data []byte) (*domain.CatalogVersion, error) {
	var v domain.CatalogVersion
	if err := json.Unmarshal(jsonc.ToJSON(data), &v); err != nil {
		return nil, domain.Fail(domain.ErrDecodeFailed, err, "kind", "version")
	}
	if v.ContentHash == "" {
		return nil, domain.Annotate(domain.ErrDecodeFailed, "kind", "version", "reason", "missing contentHash")
	}
	return &v, nil
}
