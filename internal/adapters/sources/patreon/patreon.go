// Package patreon lists early access releases from the yuzu download API.
// Every file it returns requires an authorization token.
package patreon

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

// DefaultBaseURL is the download API root.
const DefaultBaseURL = "https://api.yuzu-emu.org"

// Name is the source name packages refer to.
const Name = "patreon"

// Releases implements ports.ReleaseSource.
type Releases struct {
	client  *httpfetch.Client
	limiter *rate.Limiter
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

// Name returns "patreon".
func (r *Releases) Name() string {
	return Name
}

type payload struct {
	Version *uint64 `json:"version"`
	Files   *[]file `json:"files"`
}

type file struct {
	Name *string `json:"name"`
	URL  *string `json:"url"`
}

// CurrentReleases returns the single current release of config["repo"].
func (r *Releases) CurrentReleases(ctx context.Context, config map[string]any) ([]domain.Release, error) {
	repo, err := domain.SourceRepo(config)
	if err != nil {
		return nil, err
	}
	if err := r.limiter.Wait(ctx); err != nil {
		return nil, zerr.Wrap(err, domain.ErrSourceRequestFailed.Error())
	}

	url := fmt.Sprintf("%s/downloads/%s/", r.BaseURL, repo)
	resp, err := r.client.Do(ctx, http.MethodGet, url, nil, nil)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrSourceRequestFailed.Error())
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusForbidden:
		return nil, domain.ErrNotEligible
	default:
		return nil, zerr.With(zerr.With(domain.ErrUnexpectedStatus, "status", resp.StatusCode), "url", url)
	}

	var body payload
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrInvalidReleasePayload.Error()), "url", url)
	}
	if body.Version == nil {
		return nil, zerr.With(domain.ErrInvalidReleasePayload, "missing", "version")
	}
	if body.Files == nil {
		return nil, zerr.With(domain.ErrInvalidReleasePayload, "missing", "files")
	}

	files := make([]domain.File, 0, len(*body.Files))
	for _, f := range *body.Files {
		if f.Name == nil || f.URL == nil {
			return nil, zerr.With(domain.ErrInvalidReleasePayload, "missing", "name or url")
		}
		files = append(files, domain.File{Name: *f.Name, URL: *f.URL, RequiresAuthorization: true})
	}
	return []domain.Release{{Version: domain.NewNumber(*body.Version), Files: files}}, nil
}
