package ports

import "context"

// Fetcher performs the installer's HTTP transfers.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Stream downloads url and calls fn for every chunk received. size is the
	// declared content length, or 0 when the server did not send one. A non-empty
	// token is sent as a bearer credential.
	Stream(ctx context.Context, url, token string, fn func(chunk []byte, size uint64)) error

	// FetchText downloads url and returns the body as a string.
	FetchText(ctx context.Context, url string) (string, error)
}
