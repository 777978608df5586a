package shortcut

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/core/ports"
)

// NodeID is the unique identifier for the shortcut creator Graft node.
const NodeID graft.ID = "adapter.shortcut_creator"

func init() {
	graft.Register(graft.Node[ports.ShortcutCreator]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ShortcutCreator, error) {
			return NewCreator()
		},
	})
}
