package httpfetch

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/core/ports"
)

const (
	// ClientNodeID provides the concrete *Client for adapters that need raw requests.
	ClientNodeID graft.ID = "adapter.http.client"
	// FetcherNodeID provides the Client as a ports.Fetcher.
	FetcherNodeID graft.ID = "adapter.http.fetcher"
)

func init() {
	graft.Register(graft.Node[*Client]{
		ID:        ClientNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Client, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Fetcher]{
		ID:        FetcherNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{ClientNodeID},
		Run: func(ctx context.Context) (ports.Fetcher, error) {
			return graft.Dep[*Client](ctx)
		},
	})
}
