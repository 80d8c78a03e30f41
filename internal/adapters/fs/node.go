package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/parcel/internal/core/ports"
)

const (
	WalkerNodeID graft.ID = "adapter.fs.walker"
	HasherNodeID graft.ID = "adapter.fs.hasher"
)

func init() {
	graft.Register(graft.Node[*Walker]{
		ID:        WalkerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Walker, error) {
			return NewWalker(), nil
		},
	})

	graft.Register(graft.Node[ports.ContentHasher]{
		ID:        HasherNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ContentHasher, error) {
			return NewHasher(), nil
		},
	})
}
