package github_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/lift/internal/adapters/httpfetch"
	"go.trai.ch/lift/internal/adapters/sources/github"
	"go.trai.ch/lift/internal/core/domain"
)

func newSource(t *testing.T, h http.HandlerFunc) *github.Releases {
	t.Helper()
	srv := httptest.NewTLSServer(h)
	t.Cleanup(srv.Close)

	src := github.New(httpfetch.New(httpfetch.WithHTTPClient(srv.Client())))
	src.BaseURL = srv.URL
	return src
}

func TestReleases_CurrentReleases(t *testing.T) {
	src := newSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/yuzu-emu/yuzu-nightly/releases", r.URL.Path)
		assert.Equal(t, httpfetch.DefaultUserAgent, r.Header.Get("User-Agent"))
		_, _ = w.Write([]byte(`[
			{"id": 2, "assets": [{"name": "yuzu-linux.tar.xz", "browser_download_url": "https://dl/2"}]},
			{"id": 1, "assets": []}
		]`))
	})

	releases, err := src.CurrentReleases(context.Background(), map[string]any{"repo": "yuzu-emu/yuzu-nightly"})
	require.NoError(t, err)
	require.Len(t, releases, 2)
	assert.Equal(t, domain.NewNumber(2), releases[0].Version)
	assert.Equal(t, []domain.File{{Name: "yuzu-linux.tar.xz", URL: "https://dl/2"}}, releases[0].Files)
	assert.Empty(t, releases[1].Files)
	assert.Equal(t, "github", src.Name())
}

func TestReleases_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"rate limited", http.StatusForbidden, "", "GitHub is rate limiting you"},
		{"bad status", http.StatusInternalServerError, "", domain.ErrUnexpectedStatus.Error()},
		{"not an array", http.StatusOK, `{"id": 1}`, domain.ErrInvalidReleasePayload.Error()},
		{"missing id", http.StatusOK, `[{"assets": []}]`, domain.ErrInvalidReleasePayload.Error()},
		{"missing url", http.StatusOK, `[{"id": 1, "assets": [{"name": "a"}]}]`, domain.ErrInvalidReleasePayload.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSource(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := src.CurrentReleases(context.Background(), map[string]any{"repo": "a/b"})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestReleases_MissingRepo(t *testing.T) {
	src := github.New(httpfetch.New())

	_, err := src.CurrentReleases(context.Background(), map[string]any{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), domain.ErrInvalidSourceConfig.Error())
}
