package domain

// File is a single downloadable asset of a release.
type File struct {
	Name                  string `json:"name"`
	URL                   string `json:"url"`
	RequiresAuthorization bool   `json:"requires_authorization"`
}

// Release is one published version of a package and its assets.
type Release struct {
	Version Version
	Files   []File
}

// Claims are the validated entitlements carried by an authorization token.
type Claims struct {
	Subject      string
	Issuer       string
	Audience     []string
	Roles        []string
	Channels     []string
	IsLinked     bool
	IsSubscribed bool
}

// Entitled reports whether the claims grant access to early releases.
func (c *Claims) Entitled() bool {
	for _, role := range c.Roles {
		if role == "vip" {
			return true
		}
	}
	for _, channel := range c.Channels {
		if channel == "early-access" {
			return true
		}
	}
	return false
}

// Process is a running process as seen by the single-instance check.
type Process struct {
	PID  int
	Name string
	// Exe is the executable path when the platform exposes it.
	Exe string
}

// Shortcut describes a launcher artifact to create on the host.
type Shortcut struct {
	Name        string
	Description string
	Target      string
	Args        string
	WorkingDir  string
	ExePath     string
}
