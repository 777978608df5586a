// Package github lists releases through the GitHub REST API.
package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.trai.ch/lift/internal/adapters/httpfetch"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public GitHub API.
const DefaultBaseURL = "https://api.github.com"

// Name is the source name packages refer to.
const Name = "github"

// Releases implements ports.ReleaseSource.
type Releases struct {
	client  *httpfetch.Client
	limiter *rate.Limiter
	// BaseURL is the API root, without a trailing slash.
	BaseURL string
}

var _ ports.ReleaseSource = (*Releases)(nil)

// New returns a source allowing one request per second with bursts of five.
func New(client *httpfetch.Client) *Releases {
	return &Releases{
		client:  client,
		limiter: rate.NewLimiter(rate.Every(time.Second), 5),
		BaseURL: DefaultBaseURL,
	}
}

// Name returns "github".
func (r *Releases) Name() string {
	return Name
}

type release struct {
	ID     *uint64 `json:"id"`
	Assets []asset `json:"assets"`
}

type asset struct {
	Name               *string `json:"name"`
	BrowserDownloadURL *string `json:"browser_download_url"`
}

// CurrentReleases lists the releases of config["repo"]. Each release is
// versioned by its numeric id.
func (r *Releases) CurrentReleases(ctx context.Context, config map[string]any) ([]domain.Release, error) {
	repo, err := domain.SourceRepo(config)
	if err != nil {
		return nil, err
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSourceRequestFailed.Error())
	}

	url := fmt.Sprintf("%s/repos/%s/releases", r.BaseURL, repo)
	header := http.Header{"Accept": {"application/vnd.github+json"}}
	resp, err := r.client.Do(ctx, http.MethodGet, url, header, nil)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSourceRequestFailed.Error())
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return nil, domain.ErrRateLimited
	default:
		return nil, zerr.With(zerr.With(domain.ErrUnexpectedStatus, "status", resp.StatusCode), "url", url)
	}

	var payload []release
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidReleasePayload.Error()), "url", url)
	}

	results := make([]domain.Release, 0, len(payload))
	for _, entry := range payload {
		if entry.ID == nil {
			return nil, zerr.With(domain.ErrInvalidReleasePayload, "missing", "id")
		}
		files := make([]domain.File, 0, len(entry.Assets))
		for _, a := range entry.Assets {
			if a.Name == nil {
				return nil, zerr.With(domain.ErrInvalidReleasePayload, "missing", "name")
			}
			if a.BrowserDownloadURL == nil {
				return nil, zerr.With(domain.ErrInvalidReleasePayload, "missing", "browser_download_url")
			}
			files = append(files, domain.File{Name: *a.Name, URL: *a.BrowserDownloadURL})
		}
		results = append(results, domain.Release{Version: domain.NewNumber(*entry.ID), Files: files})
	}
	return results, nil
}
