package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lift/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/lift/internal/adapters/launcher"  //nolint:depguard // Wired in app layer
	"go.trai.ch/lift/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/lift/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/lift/internal/installer/tasks"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	// App Node
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			logger.LoggerNodeID,
			tasks.NodeID,
			launcher.NodeID,
			fs.VerifierNodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	// Components Node
	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewComponents(app, log), nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[*config.Loader](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[*logger.Logger](ctx)
	if err != nil {
		return nil, err
	}

	svc, err := graft.Dep[*tasks.Services](ctx)
	if err != nil {
		return nil, err
	}

	launch, err := graft.Dep[ports.Launcher](ctx)
	if err != nil {
		return nil, err
	}

	verifier, err := graft.Dep[ports.InstallVerifier](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, log, svc, launch, verifier, tracer), nil
}
