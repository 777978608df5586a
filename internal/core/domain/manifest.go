package domain

// LocalInstallation tracks one installed package.
type LocalInstallation struct {
	Name    string  `json:"name"`
	Version Version `json:"version"`
	// Files are paths relative to the install directory, directories included.
	Files []string `json:"files"`
	// Shortcuts are absolute paths to generated shortcut files.
	Shortcuts []string `json:"shortcuts"`
	// Checksums maps installed files to their xxhash64 digest.
	Checksums map[string]string `json:"checksums,omitempty"`
}

// Credentials are the account details used to request authorization tokens.
type Credentials struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Manifest is the persisted record of an installation, stored as metadata.json.
type Manifest struct {
	Packages    []LocalInstallation `json:"packages"`
	Shortcuts   []string            `json:"shortcuts"`
	Credentials Credentials         `json:"credentials"`
}

// NewManifest returns an empty manifest.
func NewManifest() Manifest {
	return Manifest{
		Packages:  []LocalInstallation{},
		Shortcuts: []string{},
	}
}

// Find returns the installed package with the given name.
func (m *Manifest) Find(name string) (*LocalInstallation, bool) {
	for i := range m.Packages {
		if m.Packages[i].Name == name {
			return &m.Packages[i], true
		}
	}
	return nil, false
}

// Remove deletes the named package and returns it.
func (m *Manifest) Remove(name string) (LocalInstallation, bool) {
	for i := range m.Packages {
		if m.Packages[i].Name == name {
			pkg := m.Packages[i]
			m.Packages = append(m.Packages[:i], m.Packages[i+1:]...)
			return pkg, true
		}
	}
	return LocalInstallation{}, false
}

// Names returns the installed package names in manifest order.
func (m *Manifest) Names() []string {
	names := make([]string, 0, len(m.Packages))
	for _, pkg := range m.Packages {
		names = append(names, pkg.Name)
	}
	return names
}
