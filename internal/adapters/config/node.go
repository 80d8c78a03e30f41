package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/parcel/internal/adapters/logger"
	"go.trai.ch/parcel/internal/core/domain"
	"go.trai.ch/parcel/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// NodeID provides the ports.ConfigLoader.
	NodeID graft.ID = "adapter.config_loader"
	// DefinitionNodeID provides the ports.DefinitionLoader.
	DefinitionNodeID graft.ID = "adapter.definition_loader"
	// ProjectNodeID provides the *domain.Config of the working directory.
	ProjectNodeID graft.ID = "adapter.config"
)

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[ports.DefinitionLoader]{
		ID:        DefinitionNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.DefinitionLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})

	graft.Register(graft.Node[*domain.Config]{
		ID:        ProjectNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (*domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return nil, err
			}
			cwd, err := os.Getwd()
			if err != nil {
				return nil, zerr.Wrap(err, "failed to determine working directory")
			}
			return loader.Load(cwd)
		},
	})
}
