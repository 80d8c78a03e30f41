package codec

import (
	"maps"
	"slices"

	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

var _ ports.BundleCodec = (*BundleCodec)(nil)

type wireArchive struct {
	Name  string        `cbor:"1,keyasint"`
	Items []domain.Item `cbor:"2,keyasint"`
}

// BundleCodec packs bundle content into a compressed CBOR archive.
type BundleCodec struct{}

// NewBundleCodec creates a new BundleCodec.
func NewBundleCodec() *BundleCodec {
	return &BundleCodec{}
}

// Encode packs content. The archive records the base name only, so the bytes
// do not depend on the hash later appended to the file name.
func (BundleCodec) Encode(content *domain.BundleContent, c domain.Compression) ([]byte, error) {
	base, _, _ := domain.SplitHashedName(content.Name)
	w := wireArchive{Name: base, Items: make([]domain.Item, 0, len(content.Items))}
	for _, name := range slices.Sorted(maps.Keys(content.Items)) {
		w.Items = append(w.Items, content.Items[name])
	}

	raw, err := marshal(w)
	if err != nil {
		return nil, domain.Fail(domain.ErrEncodeFailed, err, "bundle", content.Name)
	}
	return compressFrame(raw, c)
}

// Decode unpacks an archive fetched under name.
func (BundleCodec) Decode(name string, data []byte) (*domain.BundleContent, error) {
	raw, err := decompressFrame(data)
	if err != nil {
		return nil, err
	}

	var w wireArchive
	if err := unmarshal(raw, &w); err != nil {
		return nil, domain.Fail(domain.ErrDecodeFailed, err, "bundle", name)
	}

	base, _, _ := domain.SplitHashedName(name)
	if w.Name != base {
		return nil, domain.Annotate(domain.ErrDecodeFailed, "bundle", name, "archive", w.Name)
	}

	content := domain.NewBundleContent(name)
	for _, item := range w.Items {
		if _, dup := content.Items[item.Name]; dup {
			return nil, domain.Annotate(domain.ErrDecodeFailed, "bundle", name, "duplicate_item", item.Name)
		}
		content.Items[item.Name] = item
	}
	return content, nil
}
