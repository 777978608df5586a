package tasks

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/lift/internal/adapters/archive"
	"go.trai.ch/lift/internal/adapters/auth"
	"go.trai.ch/lift/internal/adapters/httpfetch"
	"go.trai.ch/lift/internal/adapters/logger"
	"go.trai.ch/lift/internal/adapters/process"
	"go.trai.ch/lift/internal/adapters/shortcut"
	"go.trai.ch/lift/internal/adapters/sources"
	"go.trai.ch/lift/internal/adapters/store"
	"go.trai.ch/lift/internal/core/ports"
)

// NodeID is the unique identifier for the task services Graft node.
const NodeID graft.ID = "installer.services"

func init() {
	graft.Register(graft.Node[*Services]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			sources.NodeID,
			httpfetch.FetcherNodeID,
			auth.NodeID,
			archive.NodeID,
			shortcut.NodeID,
			process.NodeID,
			store.NodeID,
			logger.NodeID,
		},
		Run: runServicesNode,
	})
}

func runServicesNode(ctx context.Context) (*Services, error) {
	srcs, err := graft.Dep[ports.SourceRegistry](ctx)
	if err != nil {
		return nil, err
	}
	fetcher, err := graft.Dep[ports.Fetcher](ctx)
	if err != nil {
		return nil, err
	}
	authenticator, err := graft.Dep[ports.Authenticator](ctx)
	if err != nil {
		return nil, err
	}
	archives, err := graft.Dep[ports.ArchiveOpener](ctx)
	if err != nil {
		return nil, err
	}
	shortcuts, err := graft.Dep[ports.ShortcutCreator](ctx)
	if err != nil {
		return nil, err
	}
	processes, err := graft.Dep[ports.ProcessLister](ctx)
	if err != nil {
		return nil, err
	}
	manifests, err := graft.Dep[ports.ManifestStore](ctx)
	if err != nil {
		return nil, err
	}
	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return NewServices(srcs, fetcher, authenticator, archives, shortcuts, processes, manifests, log), nil
}
