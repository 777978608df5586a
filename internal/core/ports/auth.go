package ports

import (
	"context"

	"go.trai.ch/lift/internal/core/domain"
)

// Authenticator exchanges stored credentials for a signed token and validates it.
//
//go:generate mockgen -source=auth.go -destination=mocks/mock_auth.go -package=mocks
type Authenticator interface {
	// Authenticate posts the credentials to authURL and returns the issued token.
	Authenticate(ctx context.Context, authURL, username, token string) (string, error)

	// Validate checks the token signature and claims against cfg.
	Validate(token string, cfg domain.AuthenticationConfig) (*domain.Claims, error)
}
