package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/core/ports"
)

const (
	// LoggerNodeID is the unique identifier for the concrete logger Graft node.
	// The app layer uses it to switch output modes and attach the log file.
	LoggerNodeID graft.ID = "adapter.logger.concrete"
	// NodeID is the unique identifier for the logger port Graft node.
	NodeID graft.ID = "adapter.logger"
)

func init() {
	graft.Register(graft.Node[*Logger]{
		ID:        LoggerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Logger, error) {
			return New(), nil
		},
	})

	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{LoggerNodeID},
		Run: func(ctx context.Context) (ports.Logger, error) {
			return graft.Dep[*Logger](ctx)
		},
	})
}
