package ports

import (
	"context"

	"go.trai.ch/lift/internal/core/domain"
)

// ConfigLoader defines the interface for loading installer configuration.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadAttributes returns the bootstrap attributes the binary was built with.
	LoadAttributes() (*domain.BaseAttributes, error)

	// LoadConfig fetches and decodes the remote installer configuration.
	LoadConfig(ctx context.Context, url string) (*domain.Config, error)
}
