// Package config loads the bootstrap attributes compiled into the binary
// and the remote installer configuration they point to.
package config

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"net/url"
	"path"
	"strings"

	"github.com/BurntSushi/toml"
	"go.trai.ch/lift/internal/core/domain"
	"go.trai.ch/lift/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

//go:embed bootstrap.toml
var defaultBootstrap []byte

// Format is an encoding of the remote configuration.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// Loader implements ports.ConfigLoader.
type Loader struct {
	fetcher   ports.Fetcher
	logger    ports.Logger
	bootstrap []byte
}

var _ ports.ConfigLoader = (*Loader)(nil)

// NewLoader returns a Loader using the embedded bootstrap attributes.
func NewLoader(fetcher ports.Fetcher, logger ports.Logger) *Loader {
	return &Loader{
		fetcher:   fetcher,
		logger:    logger,
		bootstrap: defaultBootstrap,
	}
}

// SetBootstrap replaces the embedded bootstrap attributes.
func (l *Loader) SetBootstrap(data []byte) {
	l.bootstrap = data
}

// LoadAttributes decodes the bootstrap TOML.
func (l *Loader) LoadAttributes() (*domain.BaseAttributes, error) {
	var attrs domain.BaseAttributes
	if _, err := toml.NewDecoder(bytes.NewReader(l.bootstrap)).Decode(&attrs); err != nil {
		return nil, zerr.Wrap(err, domain.ErrAttributesParseFailed.Error())
	}
	if attrs.Name == "" || attrs.TargetURL == "" {
		return nil, zerr.With(domain.ErrAttributesParseFailed, "reason", "name and target_url are required")
	}
	return &attrs, nil
}

// LoadConfig downloads and decodes the configuration at rawURL.
func (l *Loader) LoadConfig(ctx context.Context, rawURL string) (*domain.Config, error) {
	l.logger.Info("Fetching config from " + rawURL)

	text, err := l.fetcher.FetchText(ctx, rawURL)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "url", rawURL)
	}

	cfg, err := Parse(text, DetectFormat(rawURL))
	if err != nil {
		return nil, zerr.With(err, "url", rawURL)
	}
	return cfg, nil
}

// DetectFormat picks the format from the URL path extension. TOML is the
// default.
func DetectFormat(rawURL string) Format {
	p := rawURL
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}
	switch strings.ToLower(path.Ext(p)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".json":
		return FormatJSON
	default:
		return FormatTOML
	}
}

// Parse decodes and validates a configuration.
func Parse(text string, format Format) (*domain.Config, error) {
	var (
		cfg domain.Config
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal([]byte(text), &cfg)
	case FormatJSON:
		err = json.Unmarshal([]byte(text), &cfg)
	default:
		_, err = toml.Decode(text, &cfg)
	}
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "format", string(format))
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg *domain.Config) error {
	seen := make(map[string]bool, len(cfg.Packages))
	for _, pkg := range cfg.Packages {
		if pkg.Name == "" {
			return zerr.With(domain.ErrConfigParseFailed, "reason", "package without a name")
		}
		if seen[pkg.Name] {
			return zerr.With(zerr.With(domain.ErrConfigParseFailed, "reason", "duplicate package"), "package", pkg.Name)
		}
		seen[pkg.Name] = true

		if pkg.Source.Name == "" {
			return zerr.With(zerr.With(domain.ErrConfigParseFailed, "reason", "package without a source"), "package", pkg.Name)
		}
	}
	return nil
}
