// Package store persists the installation manifest as metadata.json.
package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Store implements ports.ManifestStore using a JSON file inside the install
// directory.
type Store struct{}

var _ ports.ManifestStore = (*Store)(nil)

// NewStore returns a Store.
func NewStore() *Store {
	return &Store{}
}

// Load reads the manifest in dir. Lists missing from older files come back
// empty rather than nil.
func (s *Store) Load(dir string) (*domain.Manifest, error) {
	path := domain.MetadataPath(dir)

	//nolint:gosec // path is the fixed metadata file inside the install directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestReadFailed.Error()), "path", path)
	}

	manifest := domain.NewManifest()
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrManifestUnmarshalFailed.Error()), "path", path)
	}
	normalize(&manifest)
	return &manifest, nil
}

func normalize(m *domain.Manifest) {
	if m.Packages == nil {
		m.Packages = []domain.LocalInstallation{}
	}
	if m.Shortcuts == nil {
		m.Shortcuts = []string{}
	}
	for i := range m.Packages {
		if m.Packages[i].Files == nil {
			m.Packages[i].Files = []string{}
		}
		if m.Packages[i].Shortcuts == nil {
			m.Packages[i].Shortcuts = []string{}
		}
	}
}

// Save writes the manifest into dir.
func (s *Store) Save(dir string, manifest *domain.Manifest) error {
	path := domain.MetadataPath(dir)

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return zerr.Wrap(err, domain.ErrManifestMarshalFailed.Error())
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", dir)
	}

	//nolint:gosec // path is the fixed metadata file inside the install directory
	if err := os.WriteFile(path, data, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrManifestWriteFailed.Error()), "path", path)
	}
	return nil
}

// Remove deletes the manifest from dir. A missing file is not an error.
func (s *Store) Remove(dir string) error {
	path := domain.MetadataPath(dir)
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return zerr.With(zerr.Wrap(err, domain.ErrRemoveFailed.Error()), "path", path)
	}
	return nil
}

// Exists reports whether dir holds a manifest.
func (s *Store) Exists(dir string) bool {
	info, err := os.Stat(domain.MetadataPath(dir))
	return err == nil && info.Mode().IsRegular()
}
