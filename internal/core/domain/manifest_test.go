package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/core/domain"
)

func TestManifest_FindAndRemove(t *testing.T) {
	m := domain.NewManifest()
	m.Packages = append(m.Packages,
		domain.LocalInstallation{Name: "a", Version: domain.NewNumber(1)},
		domain.LocalInstallation{Name: "b", Version: domain.NewNumber(2)},
	)

	pkg, ok := m.Find("b")
	require.True(t, ok)
	assert.Equal(t, "b", pkg.Name)

	removed, ok := m.Remove("a")
	require.True(t, ok)
	assert.Equal(t, "a", removed.Name)
	assert.Equal(t, []string{"b"}, m.Names())

	_, ok = m.Remove("a")
	assert.False(t, ok)
}

func TestManifest_ReadsLegacyMetadata(t *testing.T) {
	legacy := `{
		"packages": [
			{"name": "yuzu", "version": {"Integer": 1220}, "files": ["bin", "bin/yuzu"], "shortcuts": []}
		],
		"shortcuts": ["/home/u/.local/share/applications/yuzu.desktop"]
	}`

	var m domain.Manifest
	require.NoError(t, json.Unmarshal([]byte(legacy), &m))

	pkg, ok := m.Find("yuzu")
	require.True(t, ok)
	assert.True(t, pkg.Version.Equal(domain.NewNumber(1220)))
	assert.Equal(t, []string{"bin", "bin/yuzu"}, pkg.Files)
	assert.Nil(t, pkg.Checksums)
	assert.Empty(t, m.Credentials.Username)
}

func TestInstallation_Package(t *testing.T) {
	state := domain.NewInstallation(domain.BaseAttributes{Name: "yuzu"})

	_, err := state.Package("x")
	require.ErrorIs(t, err, domain.ErrNoConfig)

	state.Config = &domain.Config{Packages: []domain.PackageDescription{{Name: "x"}}}
	pkg, err := state.Package("x")
	require.NoError(t, err)
	assert.Equal(t, "x", pkg.Name)

	_, err = state.Package("y")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "package could not be found")
}

func TestInstallation_StatusHidesToken(t *testing.T) {
	state := domain.NewInstallation(domain.BaseAttributes{Name: "yuzu"})
	state.Manifest.Credentials = domain.Credentials{Username: "u", Token: "secret"}

	status := state.Status()
	assert.Equal(t, "u", status.Database.Credentials.Username)
	assert.Empty(t, status.Database.Credentials.Token)
}
