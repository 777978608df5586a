package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/store"
	"go.trai.ch/lift/internal/core/domain"
)

func TestStore_SaveAndLoad(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "install")
	s := store.NewStore()
	assert.False(t, s.Exists(dir))

	manifest := domain.NewManifest()
	manifest.Packages = append(manifest.Packages, domain.LocalInstallation{
		Name:      "yuzu",
		Version:   domain.NewNumber(42),
		Files:     []string{"bin", "bin/yuzu"},
		Shortcuts: []string{"/apps/yuzu.desktop"},
		Checksums: map[string]string{"bin/yuzu": "00000000deadbeef"},
	})
	manifest.Shortcuts = []string{"/apps/maintenancetool.desktop"}
	manifest.Credentials = domain.Credentials{Username: "alice", Token: "secret"}

	require.NoError(t, s.Save(dir, &manifest))
	assert.True(t, s.Exists(dir))

	got, err := s.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, &manifest, got)
}

func TestStore_LoadFillsMissingLists(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.MetadataPath(dir),
		[]byte(`{"packages":[{"name":"yuzu","version":{"Integer":3},"files":["a"]}]}`), 0o600))

	got, err := store.NewStore().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{}, got.Shortcuts)
	require.Len(t, got.Packages, 1)
	assert.Equal(t, []string{}, got.Packages[0].Shortcuts)
	assert.Equal(t, "", got.Credentials.Username)
}

func TestStore_LoadErrors(t *testing.T) {
	s := store.NewStore()

	_, err := s.Load(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrManifestReadFailed.Error())

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(domain.MetadataPath(dir), []byte("{"), 0o600))
	_, err = s.Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrManifestUnmarshalFailed.Error())
}

func TestStore_Remove(t *testing.T) {
	dir := t.TempDir()
	s := store.NewStore()
	manifest := domain.NewManifest()
	require.NoError(t, s.Save(dir, &manifest))

	require.NoError(t, s.Remove(dir))
	assert.False(t, s.Exists(dir))
	require.NoError(t, s.Remove(dir))
}
