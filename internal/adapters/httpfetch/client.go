// Package httpfetch implements ports.Fetcher on net/http. Every request is
// bounded by a client timeout and must use https.
package httpfetch

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	// DefaultTimeout bounds every request, body included.
	DefaultTimeout = 8 * time.Second

	// DefaultUserAgent identifies the installer to remote APIs.
	DefaultUserAgent = "liftinstall (j-selby)"

	chunkSize = 8192
)

// Client issues https requests on behalf of the installer.
type Client struct {
	http      *http.Client
	userAgent string
}

var _ ports.Fetcher = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) {
		cl.http = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(cl *Client) {
		cl.userAgent = ua
	}
}

// New returns a Client with an 8 second timeout.
func New(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{Timeout: DefaultTimeout},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AssertSSL rejects any URL that is not https.
func AssertSSL(url string) error {
	if !strings.HasPrefix(url, "https://") {
		return zerr.With(domain.ErrInsecureURL, "url", url)
	}
	return nil
}

// Do sends a request to url. header entries are added to the request. The
// caller owns the returned body.
func (c *Client) Do(ctx context.Context, method, url string, header http.Header, body io.Reader) (*http.Response, error) {
	if err := AssertSSL(url); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	req.Header.Set("User-Agent", c.userAgent)
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	return resp, nil
}

// Stream downloads url in chunks of at most 8 KiB.
func (c *Client) Stream(ctx context.Context, url, token string, fn func(chunk []byte, size uint64)) error {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.get(ctx, url, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	var size uint64
	if resp.ContentLength > 0 {
		size = uint64(resp.ContentLength)
	}

	buf := make([]byte, chunkSize)
	for {
		n, err := resp.Body.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			fn(chunk, size)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
		}
	}
}

// FetchText downloads url and returns its body.
func (c *Client) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := c.get(ctx, url, nil)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, domain.ErrDownloadFailed.Error()), "url", url)
	}
	return string(data), nil
}

// get issues a GET and rejects any status other than 200.
func (c *Client) get(ctx context.Context, url string, header http.Header) (*http.Response, error) {
	resp, err := c.Do(ctx, http.MethodGet, url, header, nil)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return nil, zerr.With(zerr.With(domain.ErrUnexpectedStatus, "status", resp.StatusCode), "url", url)
	}
	return resp, nil
}
