package ports

import "go.trai.ch/lift/internal/core/domain"

// ManifestStore persists the installation manifest inside an install directory.
//
//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks
type ManifestStore interface {
	// Load reads the manifest stored in dir.
	Load(dir string) (*domain.Manifest, error)

	// Save writes the manifest into dir, replacing any previous copy.
	Save(dir string, manifest *domain.Manifest) error

	// Remove deletes the manifest file from dir.
	Remove(dir string) error

	// Exists reports whether dir holds a manifest.
	Exists(dir string) bool
}
