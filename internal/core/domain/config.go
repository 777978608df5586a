package domain

import "go.trai.ch/zerr"

// BaseAttributes describe the application itself. They are embedded into the
// binary at build time.
type BaseAttributes struct {
	Name      string `json:"name"       toml:"name"       yaml:"name"`
	TargetURL string `json:"target_url" toml:"target_url" yaml:"target_url"`
}

// PackageSource names the release source of a package and its settings.
type PackageSource struct {
	Name   string         `json:"name"   toml:"name"   yaml:"name"`
	Match  string         `json:"match"  toml:"match"  yaml:"match"`
	Config map[string]any `json:"config" toml:"config" yaml:"config"`
}

// PackageShortcut describes a shortcut to build for an installed package.
type PackageShortcut struct {
	Name         string `json:"name"          toml:"name"          yaml:"name"`
	RelativePath string `json:"relative_path" toml:"relative_path" yaml:"relative_path"`
	Description  string `json:"description"   toml:"description"   yaml:"description"`
}

// PackageDescription is a package the installer offers.
type PackageDescription struct {
	Name        string            `json:"name"        toml:"name"        yaml:"name"`
	Description string            `json:"description" toml:"description" yaml:"description"`
	Default     *bool             `json:"default"     toml:"default"     yaml:"default"`
	Source      PackageSource     `json:"source"      toml:"source"      yaml:"source"`
	Shortcuts   []PackageShortcut `json:"shortcuts"   toml:"shortcuts"   yaml:"shortcuts"`
}

// JWTValidation restricts accepted tokens to an issuer and audience.
type JWTValidation struct {
	Iss *string `json:"iss" toml:"iss" yaml:"iss"`
	Aud *string `json:"aud" toml:"aud" yaml:"aud"`
}

// AuthenticationConfig locates the token endpoint and the key tokens are signed with.
type AuthenticationConfig struct {
	AuthURL      string         `json:"auth_url"       toml:"auth_url"       yaml:"auth_url"`
	PubKeyBase64 string         `json:"pub_key_base64" toml:"pub_key_base64" yaml:"pub_key_base64"`
	Validation   *JWTValidation `json:"validation"     toml:"validation"     yaml:"validation"`
}

// Config is the remote installer configuration.
type Config struct {
	InstallingMessage string                `json:"installing_message" toml:"installing_message" yaml:"installing_message"`
	NewTool           *string               `json:"new_tool"           toml:"new_tool"           yaml:"new_tool"`
	Packages          []PackageDescription  `json:"packages"           toml:"packages"           yaml:"packages"`
	HideAdvanced      bool                  `json:"hide_advanced"      toml:"hide_advanced"      yaml:"hide_advanced"`
	Authentication    *AuthenticationConfig `json:"authentication"     toml:"authentication"     yaml:"authentication"`
}

// Package returns the description of the named package.
func (c *Config) Package(name string) (*PackageDescription, bool) {
	for i := range c.Packages {
		if c.Packages[i].Name == name {
			return &c.Packages[i], true
		}
	}
	return nil, false
}

// Defaults returns the names of packages selected by default.
func (c *Config) Defaults() []string {
	var names []string
	for _, pkg := range c.Packages {
		if pkg.Default != nil && *pkg.Default {
			names = append(names, pkg.Name)
		}
	}
	return names
}

// SourceRepo returns the "repo" setting of a release source config.
func SourceRepo(config map[string]any) (string, error) {
	repo, ok := config["repo"].(string)
	if !ok || repo == "" {
		return "", zerr.With(ErrInvalidSourceConfig, "field", "repo")
	}
	return repo, nil
}
