package ports

import (
	"context"

	"go.trai.ch/lift/internal/core/domain"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// ReleaseSource lists the published releases of a package.
type ReleaseSource interface {
	// Name is the identifier used by package descriptions (e.g. "github").
	Name() string

	// CurrentReleases queries the source using the package's source configuration.
	CurrentReleases(ctx context.Context, config map[string]any) ([]domain.Release, error)
}

// SourceRegistry resolves release sources by name.
type SourceRegistry interface {
	Lookup(name string) (ReleaseSource, bool)
}
