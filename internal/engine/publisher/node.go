package publisher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/parcel/internal/adapters/cas"    //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/codec"  //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/fs"     //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/logger" //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/core/ports"
)

// NodeID is the unique identifier for the publisher Graft node.
const NodeID graft.ID = "engine.publisher"

func init() {
	graft.Register(graft.Node[*Publisher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			cas.NodeID,
			fs.WalkerNodeID,
			codec.BundleNodeID,
			codec.CatalogNodeID,
			codec.VersionNodeID,
			fs.HasherNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Publisher, error) {
			files, err := graft.Dep[ports.FileStore](ctx)
			if err != nil {
				return nil, err
			}
			walker, err := graft.Dep[*fs.Walker](ctx)
			if err != nil {
				return nil, err
			}
			bundles, err := graft.Dep[ports.BundleCodec](ctx)
			if err != nil {
				return nil, err
			}
			catalogs, err := graft.Dep[ports.CatalogCodec](ctx)
			if err != nil {
				return nil, err
			}
			versions, err := graft.Dep[ports.VersionCodec](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.ContentHasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(files, walker, bundles, catalogs, versions, hasher, log), nil
		},
	})
}
