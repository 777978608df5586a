package sources

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/adapters/httpfetch"
	"go.trai.ch/lift/internal/adapters/sources/github"
	"go.trai.ch/lift/internal/adapters/sources/patreon"
	"go.trai.ch/lift/internal/core/ports"
)

// NodeID is the unique identifier for the release source registry Graft node.
const NodeID graft.ID = "adapter.sources"

func init() {
	graft.Register(graft.Node[ports.SourceRegistry]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpfetch.ClientNodeID},
		Run: func(ctx context.Context) (ports.SourceRegistry, error) {
			client, err := graft.Dep[*httpfetch.Client](ctx)
			if err != nil {
				return nil, err
			}
			return NewRegistry(github.New(client), patreon.New(client)), nil
		},
	})
}
