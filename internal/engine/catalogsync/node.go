package catalogsync

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/parcel/internal/adapters/cas"       //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/codec"     //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/config"    //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/fs"        //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/httpfetch" //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/kv"        //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/logger"    //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/metrics"   //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/adapters/telemetry" //nolint:depguard // Wired in engine node
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

// NodeID is the unique identifier for the catalog syncer Graft node.
const NodeID graft.ID = "engine.catalogsync"

func init() {
	graft.Register(graft.Node[*Syncer]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			httpfetch.NodeID,
			cas.NodeID,
			kv.NodeID,
			codec.CatalogNodeID,
			codec.VersionNodeID,
			fs.HasherNodeID,
			telemetry.NodeID,
			metrics.NodeID,
			logger.NodeID,
			config.ProjectNodeID,
		},
		Run: runNode,
	})
}

func runNode(ctx context.Context) (*Syncer, error) {
	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}
	files, err := graft.Dep[ports.FileStore](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.KVStore](ctx)
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
	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}
	recorder, err := graft.Dep[*metrics.Recorder](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}
	cfg, err := graft.Dep[*domain.Config](ctx)
	if err != nil {
		return nil, err
	}
	return New(fetcher, files, store, catalogs, versions, hasher, tracer, recorder, log, cfg), nil
}
