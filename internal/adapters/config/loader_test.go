package config_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/config"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

const tomlConfig = `
installing_message = "Installing yuzu"
new_tool = "https://example.com/maintenancetool"
hide_advanced = true

[authentication]
auth_url = "https://api.example.com/jwt/installer/"
pub_key_base64 = "MIIB"

[authentication.validation]
iss = "citra-core"
aud = "installer"

[[packages]]
name = "yuzu Nightly"
description = "The nightly build"
default = true

[packages.source]
name = "github"
match = "^yuzu-#PLATFORM#-[0-9]*-[0-9a-f]*.tar.xz$"

[packages.source.config]
repo = "yuzu-emu/yuzu-nightly"

[[packages.shortcuts]]
name = "yuzu Nightly"
relative_path = "nightly/yuzu"
description = "Launch yuzu Nightly"

[[packages]]
name = "yuzu Early Access"
description = "Early access build"

[packages.source]
name = "patreon"
match = "^yuzu-#PLATFORM#-[0-9]*.tar.xz$"

[packages.source.config]
repo = "earlyaccess"
`

const yamlConfig = `
installing_message: Installing yuzu
packages:
  - name: yuzu
    description: Stable
    source:
      name: github
      match: "^yuzu.zip$"
      config:
        repo: yuzu-emu/yuzu
`

const jsonConfig = `{
  "installing_message": "Installing yuzu",
  "packages": [
    {"name": "yuzu", "description": "Stable", "source": {"name": "github", "match": "^yuzu.zip$", "config": {"repo": "yuzu-emu/yuzu"}}}
  ]
}`

func newLoader(t *testing.T) (*config.Loader, *mocks.MockFetcher) {
	t.Helper()
	ctrl := gomock.NewController(t)
	fetcher := mocks.NewMockFetcher(ctrl)
	logger := mocks.NewMockLogger(ctrl)
	logger.EXPECT().Info(gomock.Any()).AnyTimes()
	return config.NewLoader(fetcher, logger), fetcher
}

func TestLoader_LoadAttributesEmbedded(t *testing.T) {
	l, _ := newLoader(t)

	attrs, err := l.LoadAttributes()
	require.NoError(t, err)
	assert.Equal(t, "yuzu", attrs.Name)
	assert.Contains(t, attrs.TargetURL, "https://")
}

func TestLoader_SetBootstrap(t *testing.T) {
	l, _ := newLoader(t)

	l.SetBootstrap([]byte("name = \"citra\"\ntarget_url = \"https://example.com/config.toml\"\n"))
	attrs, err := l.LoadAttributes()
	require.NoError(t, err)
	assert.Equal(t, domain.BaseAttributes{Name: "citra", TargetURL: "https://example.com/config.toml"}, *attrs)

	l.SetBootstrap([]byte("name = \"citra\"\n"))
	_, err = l.LoadAttributes()
	require.Error(t, err)

	l.SetBootstrap([]byte("name = "))
	_, err = l.LoadAttributes()
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrAttributesParseFailed.Error())
}

func TestLoader_LoadConfigTOML(t *testing.T) {
	l, fetcher := newLoader(t)
	fetcher.EXPECT().FetchText(gomock.Any(), "https://example.com/config.toml").Return(tomlConfig, nil)

	cfg, err := l.LoadConfig(context.Background(), "https://example.com/config.toml")
	require.NoError(t, err)

	assert.Equal(t, "Installing yuzu", cfg.InstallingMessage)
	require.NotNil(t, cfg.NewTool)
	assert.Equal(t, "https://example.com/maintenancetool", *cfg.NewTool)
	assert.True(t, cfg.HideAdvanced)

	require.NotNil(t, cfg.Authentication)
	assert.Equal(t, "https://api.example.com/jwt/installer/", cfg.Authentication.AuthURL)
	require.NotNil(t, cfg.Authentication.Validation)
	assert.Equal(t, "citra-core", *cfg.Authentication.Validation.Iss)

	require.Len(t, cfg.Packages, 2)
	nightly := cfg.Packages[0]
	assert.Equal(t, "github", nightly.Source.Name)
	assert.Equal(t, "yuzu-emu/yuzu-nightly", nightly.Source.Config["repo"])
	require.Len(t, nightly.Shortcuts, 1)
	assert.Equal(t, "nightly/yuzu", nightly.Shortcuts[0].RelativePath)
	assert.Equal(t, []string{"yuzu Nightly"}, cfg.Defaults())
	assert.Nil(t, cfg.Packages[1].Default)
}

func TestLoader_LoadConfigYAMLAndJSON(t *testing.T) {
	for url, body := range map[string]string{
		"https://example.com/config.yaml?ref=main": yamlConfig,
		"https://example.com/config.yml":           yamlConfig,
		"https://example.com/config.json":          jsonConfig,
	} {
		t.Run(url, func(t *testing.T) {
			l, fetcher := newLoader(t)
			fetcher.EXPECT().FetchText(gomock.Any(), url).Return(body, nil)

			cfg, err := l.LoadConfig(context.Background(), url)
			require.NoError(t, err)
			require.Len(t, cfg.Packages, 1)
			assert.Equal(t, "yuzu-emu/yuzu", cfg.Packages[0].Source.Config["repo"])
		})
	}
}

func TestLoader_LoadConfigErrors(t *testing.T) {
	t.Run("fetch", func(t *testing.T) {
		l, fetcher := newLoader(t)
		fetcher.EXPECT().FetchText(gomock.Any(), gomock.Any()).Return("", errors.New("offline"))

		_, err := l.LoadConfig(context.Background(), "https://example.com/config.toml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrConfigReadFailed.Error())
		assert.Contains(t, err.Error(), "offline")
	})

	t.Run("parse", func(t *testing.T) {
		l, fetcher := newLoader(t)
		fetcher.EXPECT().FetchText(gomock.Any(), gomock.Any()).Return("packages = [", nil)

		_, err := l.LoadConfig(context.Background(), "https://example.com/config.toml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
	})
}

func TestParse_Validation(t *testing.T) {
	tests := map[string]string{
		"missing name":   `[[packages]]` + "\n" + `description = "x"`,
		"missing source": `[[packages]]` + "\n" + `name = "a"`,
		"duplicate": `[[packages]]
name = "a"
[packages.source]
name = "github"
[[packages]]
name = "a"
[packages.source]
name = "github"`,
	}

	for name, text := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := config.Parse(text, config.FormatTOML)
			require.Error(t, err)
			assert.Contains(t, err.Error(), domain.ErrConfigParseFailed.Error())
		})
	}
}

func TestDetectFormat(t *testing.T) {
	assert.Equal(t, config.FormatTOML, config.DetectFormat("https://example.com/config.linux.v3.toml"))
	assert.Equal(t, config.FormatTOML, config.DetectFormat("https://example.com/config"))
	assert.Equal(t, config.FormatYAML, config.DetectFormat("https://example.com/CONFIG.YAML"))
	assert.Equal(t, config.FormatJSON, config.DetectFormat("https://example.com/c.json#frag"))
}
