package httpfetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/parcel/internal/adapters/config"
	"go.trai.ch/parcel/internal/adapters/logger"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
)

// NodeID is the unique identifier for the HTTP fetcher Graft node.
const NodeID graft.ID = "adapter.httpfetch"

func init() {
	graft.Register(graft.Node[ports.Fetcher]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.ProjectNodeID, logger.NodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			cfg, err := graft.Dep[*domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(cfg.Remote, log), nil
		},
	})
}
