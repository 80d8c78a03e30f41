package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/parcel/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/codec"     //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/httpfetch" //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/kv"        //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/metrics"   //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/parcel/internal/engine/catalogsync"
	"go.trai.ch/parcel/internal/engine/publisher"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.ProjectNodeID,
			config.DefinitionNodeID,
			catalogsync.NodeID,
			publisher.NodeID,
			fs.WalkerNodeID,
			httpfetch.NodeID,
			cas.NodeID,
			kv.NodeID,
			codec.BundleNodeID,
			fs.HasherNodeID,
			watcher.NodeID,
			telemetry.NodeID,
			metrics.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: runComponentsNode,
	})
}

//nolint:cyclop // one lookup per dependency
func runAppNode(ctx context.Context) (*App, error) {
	var (
		d   Deps
		err error
	)
	if d.Config, err = graft.Dep[*domain.Config](ctx); err != nil {
		return nil, err
	}
	if d.Definitions, err = graft.Dep[ports.DefinitionLoader](ctx); err != nil {
		return nil, err
	}
	if d.Syncer, err = graft.Dep[*catalogsync.Syncer](ctx); err != nil {
		return nil, err
	}
	if d.Publisher, err = graft.Dep[*publisher.Publisher](ctx); err != nil {
		return nil, err
	}
	if d.Lister, err = graft.Dep[*fs.Walker](ctx); err != nil {
		return nil, err
	}
	if d.Fetcher, err = graft.Dep[ports.Fetcher](ctx); err != nil {
		return nil, err
	}
	if d.Files, err = graft.Dep[ports.FileStore](ctx); err != nil {
		return nil, err
	}
	if d.KV, err = graft.Dep[ports.KVStore](ctx); err != nil {
		return nil, err
	}
	if d.Bundles, err = graft.Dep[ports.BundleCodec](ctx); err != nil {
		return nil, err
	}
	if d.Hasher, err = graft.Dep[ports.ContentHasher](ctx); err != nil {
		return nil, err
	}
	if d.Watcher, err = graft.Dep[ports.Watcher](ctx); err != nil {
		return nil, err
	}
	if d.Tracer, err = graft.Dep[ports.Tracer](ctx); err != nil {
		return nil, err
	}
	if d.Metrics, err = graft.Dep[*metrics.Recorder](ctx); err != nil {
		return nil, err
	}
	if d.Logger, err = graft.Dep[ports.Logger](ctx); err != nil {
		return nil, err
	}
	return New(d), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return &Components{
		App:    app,
		Logger: log,
	}, nil
}
