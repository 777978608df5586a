package auth

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/adapters/httpfetch"
	"go.trai.ch/lift/internal/core/ports"
)

// NodeID is the unique identifier for the authenticator Graft node.
const NodeID graft.ID = "adapter.auth"

func init() {
	graft.Register(graft.Node[ports.Authenticator]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpfetch.ClientNodeID},
		Run: func(ctx context.Context) (ports.Authenticator, error) {
			client, err := graft.Dep[*httpfetch.Client](ctx)
			if err != nil {
				return nil, err
			}
			return New(client), nil
		},
	})
}
