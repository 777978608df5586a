package domain

import "go.trai.ch/zerr"

// Installation is the mutable installer state that tasks operate on. It is
// owned by a single operation at a time.
type Installation struct {
	Attributes BaseAttributes
	Config     *Config
	Manifest   Manifest

	InstallPath        string
	PreexistingInstall bool
	IsLauncher         bool
	// LauncherPath is started when the installer shuts down.
	LauncherPath string
	// BurnAfterExit requests removal of the install directory after exit.
	BurnAfterExit bool
}

// NewInstallation returns the state of a fresh install.
func NewInstallation(attrs BaseAttributes) *Installation {
	return &Installation{
		Attributes: attrs,
		Manifest:   NewManifest(),
	}
}

// Package looks up a package description in the loaded configuration.
func (i *Installation) Package(name string) (*PackageDescription, error) {
	if i.Config == nil {
		return nil, ErrNoConfig
	}
	pkg, ok := i.Config.Package(name)
	if !ok {
		return nil, zerr.With(ErrPackageNotFound, "package", name)
	}
	return pkg, nil
}

// Path returns the install path or ErrNoInstallPath.
func (i *Installation) Path() (string, error) {
	if i.InstallPath == "" {
		return "", ErrNoInstallPath
	}
	return i.InstallPath, nil
}

// Status returns a snapshot of the installation for frontends.
func (i *Installation) Status() InstallationStatus {
	manifest := i.Manifest
	manifest.Packages = append([]LocalInstallation(nil), i.Manifest.Packages...)
	manifest.Shortcuts = append([]string(nil), i.Manifest.Shortcuts...)
	manifest.Credentials = Credentials{Username: i.Manifest.Credentials.Username}

	return InstallationStatus{
		Database:           manifest,
		InstallPath:        i.InstallPath,
		PreexistingInstall: i.PreexistingInstall,
		IsLauncher:         i.IsLauncher,
		LauncherPath:       i.LauncherPath,
	}
}

// InstallationStatus is a read-only view of an Installation.
type InstallationStatus struct {
	Database           Manifest `json:"database"`
	InstallPath        string   `json:"install_path,omitempty"`
	PreexistingInstall bool     `json:"preexisting_install"`
	IsLauncher         bool     `json:"is_launcher"`
	LauncherPath       string   `json:"launcher_path,omitempty"`
}
