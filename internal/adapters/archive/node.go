package archive

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/core/ports"
)

// NodeID is the unique identifier for the archive opener Graft node.
const NodeID graft.ID = "adapter.archive"

func init() {
	graft.Register(graft.Node[ports.ArchiveOpener]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ArchiveOpener, error) {
			return NewOpener(), nil
		},
	})
}
