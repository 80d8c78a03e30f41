package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/parcel/internal/adapters/config"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

// NodeID is the unique identifier for the bundle store Graft node.
const NodeID graft.ID = "adapter.cas"

func init() {
	graft.Register(graft.Node[ports.FileStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID},
		Run: func(ctx context.Context) (ports.FileStore, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.EmbeddedRoot, cfg.CacheRoot, cfg.SourceRoot), nil
		},
	})
}
