package codec

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/parcel/internal/core/ports"
)

const (
	// CatalogNodeID provides the ports.CatalogCodec.
	CatalogNodeID graft.ID = "adapter.codec.catalog"
	// VersionNodeID provides the ports.VersionCodec.
	VersionNodeID graft.ID = "adapter.codec.version"
	// BundleNodeID provides the ports.BundleCodec.
	BundleNodeID graft.ID = "adapter.codec.bundle"
)

func init() {
	graft.Register(graft.Node[ports.CatalogCodec]{
		ID:        CatalogNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.CatalogCodec, error) {
			return NewCatalogCodec(), nil
		},
	})

	graft.Register(graft.Node[ports.VersionCodec]{
		ID:        VersionNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.VersionCodec, error) {
			return NewVersionCodec(), nil
		},
	})

	graft.Register(graft.Node[ports.BundleCodec]{
		ID:        BundleNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BundleCodec, error) {
			return NewBundleCodec(), nil
		},
	})
}
