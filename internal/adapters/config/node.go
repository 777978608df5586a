package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/adapters/httpfetch"
	"go.trai.ch/lift/internal/adapters/logger"
	"go.trai.ch/lift/internal/core/ports"
)

const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{httpfetch.FetcherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Loader, error) {
			fetcher, err := graft.Dep[ports.Fetcher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(fetcher, log), nil
		},
	})
}
