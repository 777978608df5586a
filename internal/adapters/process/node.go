package process

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/core/ports"
)

// NodeID is the unique identifier for the process lister Graft node.
const NodeID graft.ID = "adapter.process_lister"

func init() {
	graft.Register(graft.Node[ports.ProcessLister]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ProcessLister, error) {
			return NewLister(), nil
		},
	})
}
