// Package auth exchanges account credentials for a signed token and
// validates the token's entitlement claims.
package auth

import (
	"bytes"
	"context"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"io"
	"net/http"
	"slices"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.trai.ch/lift/internal/adapters/httpfetch"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
)

// Authenticator implements ports.Authenticator with RS256 tokens.
type Authenticator struct {
	client *httpfetch.Client
}

var _ ports.Authenticator = (*Authenticator)(nil)

// New returns an Authenticator sending requests through client.
func New(client *httpfetch.Client) *Authenticator {
	return &Authenticator{client: client}
}

// Authenticate posts the credentials as X-USERNAME and X-TOKEN headers and
// returns the response body as the token.
func (a *Authenticator) Authenticate(ctx context.Context, authURL, username, token string) (string, error) {
	header := http.Header{}
	header.Set("X-USERNAME", username)
	header.Set("X-TOKEN", token)

	resp, err := a.client.Do(ctx, http.MethodPost, authURL, header, nil)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrAuthenticationFailed.Error())
	}
	defer resp.Body.Close() //nolint:errcheck // read-only body

	if resp.StatusCode != http.StatusOK {
		return "", zerr.With(domain.ErrAuthenticationFailed, "status", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrAuthenticationFailed.Error())
	}
	return strings.TrimSpace(string(body)), nil
}

type claims struct {
	jwt.RegisteredClaims
	Roles        []string `json:"roles"`
	Channels     []string `json:"releaseChannels"`
	IsLinked     bool     `json:"isPatreonAccountLinked"`
	IsSubscribed bool     `json:"isPatreonSubscriptionActive"`
}

// Validate verifies the RS256 signature of token with the configured key
// and checks issuer and audience when cfg restricts them. Expiry is not
// enforced.
func (a *Authenticator) Validate(token string, cfg domain.AuthenticationConfig) (*domain.Claims, error) {
	key, err := ParsePublicKey(cfg.PubKeyBase64)
	if err != nil {
		return nil, err
	}

	var c claims
	_, err = jwt.ParseWithClaims(token, &c,
		func(*jwt.Token) (any, error) { return key, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithoutClaimsValidation(),
	)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidToken.Error())
	}

	if v := cfg.Validation; v != nil {
		if v.Iss != nil && c.Issuer != *v.Iss {
			return nil, zerr.With(domain.ErrInvalidToken, "iss", c.Issuer)
		}
		if v.Aud != nil && !slices.Contains(c.Audience, *v.Aud) {
			return nil, zerr.With(domain.ErrInvalidToken, "aud", strings.Join(c.Audience, ","))
		}
	}

	return &domain.Claims{
		Subject:      c.Subject,
		Issuer:       c.Issuer,
		Audience:     c.Audience,
		Roles:        c.Roles,
		Channels:     c.Channels,
		IsLinked:     c.IsLinked,
		IsSubscribed: c.IsSubscribed,
	}, nil
}

// ParsePublicKey decodes a base64 RSA public key. The decoded bytes may be
// PEM or DER in PKIX or PKCS#1 form.
func ParsePublicKey(b64 string) (*rsa.PublicKey, error) {
	if b64 == "" {
		return nil, zerr.With(domain.ErrInvalidPublicKey, "reason", "empty")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(b64))
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidPublicKey.Error())
	}

	if bytes.HasPrefix(bytes.TrimSpace(raw), []byte("-----BEGIN")) {
		key, err := jwt.ParseRSAPublicKeyFromPEM(raw)
		if err != nil {
			return nil, zerr.Wrap(err, domain.ErrInvalidPublicKey.Error())
		}
		return key, nil
	}

	if pub, err := x509.ParsePKIXPublicKey(raw); err == nil {
		key, ok := pub.(*rsa.PublicKey)
		if !ok {
			return nil, zerr.With(domain.ErrInvalidPublicKey, "reason", "not an RSA key")
		}
		return key, nil
	}
	key, err := x509.ParsePKCS1PublicKey(raw)
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrInvalidPublicKey.Error())
	}
	return key, nil
}
